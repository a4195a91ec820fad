package model

// EstimatorState はモデルのキャッシュ状態を表す
type EstimatorState int

const (
	// NotFitted は分解がまだ無い、または学習データ変更後に無効化された状態
	NotFitted EstimatorState = iota
	// Fitted は共分散の分解と重みベクトルが有効な状態
	Fitted
)

// String は状態名を返す
func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// BaseEstimator は全てのモデルの基底となる構造体
// 学習状態と、学習時に見たデータの形状を保持する
type BaseEstimator struct {
	state     EstimatorState
	nFeatures int
	nSamples  int
}

// IsFitted はモデルが学習済みかどうかを返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// State は現在の状態を返す
func (e *BaseEstimator) State() EstimatorState {
	return e.state
}

// SetFitted はモデルを学習済み状態に設定する
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset はモデルを未学習状態に戻す。形状の情報は保持する
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}

// SetDimensions は学習データの特徴量数とサンプル数を記録する
func (e *BaseEstimator) SetDimensions(nFeatures, nSamples int) {
	e.nFeatures = nFeatures
	e.nSamples = nSamples
}

// Dimensions は記録された特徴量数とサンプル数を返す
func (e *BaseEstimator) Dimensions() (nFeatures, nSamples int) {
	return e.nFeatures, e.nSamples
}
