package gp

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/linalg"
	"github.com/YuminosukeSato/gaussproc/metrics"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

// Predict は x における予測平均 m(x) + k*(x)ᵀ α を返す
func (gp *GaussianProcess) Predict(x []float64) (mean float64, err error) {
	defer errors.Recover(&err, "GaussianProcess.Predict")

	if err := gp.checkQuery("GaussianProcess.Predict", x); err != nil {
		return 0, err
	}
	return gp.prior.Mean(x) + floats.Dot(gp.crossVec(x), gp.alpha), nil
}

// PredictSeveral は各行の予測平均を返す
func (gp *GaussianProcess) PredictSeveral(X [][]float64) (means []float64, err error) {
	defer errors.Recover(&err, "GaussianProcess.PredictSeveral")

	q, err := gp.checkQueries("GaussianProcess.PredictSeveral", X)
	if err != nil {
		return nil, err
	}
	cross := linalg.Cross(q, gp.inputs, gp.kernel)
	var kAlpha mat.VecDense
	kAlpha.MulVec(cross, mat.NewVecDense(len(gp.alpha), gp.alpha))

	means = make([]float64, len(X))
	for i, x := range X {
		means[i] = gp.prior.Mean(x) + kAlpha.AtVec(i)
	}
	return means, nil
}

// PredictVariance は x における予測分散 k(x,x) − vᵀv（v = L⁻¹ k*）を返す。
// 丸め誤差による負の値は 0 に切り上げる。
func (gp *GaussianProcess) PredictVariance(x []float64) (variance float64, err error) {
	defer errors.Recover(&err, "GaussianProcess.PredictVariance")

	if err := gp.checkQuery("GaussianProcess.PredictVariance", x); err != nil {
		return 0, err
	}
	return gp.variance(x), nil
}

// PredictVarianceSeveral は各行の予測分散を返す
func (gp *GaussianProcess) PredictVarianceSeveral(X [][]float64) (variances []float64, err error) {
	defer errors.Recover(&err, "GaussianProcess.PredictVarianceSeveral")

	if _, err := gp.checkQueries("GaussianProcess.PredictVarianceSeveral", X); err != nil {
		return nil, err
	}
	variances = make([]float64, len(X))
	for i, x := range X {
		variances[i] = gp.variance(x)
	}
	return variances, nil
}

// PredictCovarianceSeveral は行の同時予測共分散 Kxx − Vᵀ V（V = L⁻¹ K*x）を返す
func (gp *GaussianProcess) PredictCovarianceSeveral(X [][]float64) (cov *mat.SymDense, err error) {
	defer errors.Recover(&err, "GaussianProcess.PredictCovarianceSeveral")

	q, err := gp.checkQueries("GaussianProcess.PredictCovarianceSeveral", X)
	if err != nil {
		return nil, err
	}
	return gp.covariance(q), nil
}

// Score は X に対する予測の決定係数 R² を返す
func (gp *GaussianProcess) Score(X [][]float64, y []float64) (float64, error) {
	pred, err := gp.PredictSeveral(X)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2Score(y, pred)
	if err != nil {
		return 0, err
	}
	gp.logger.Debug("Model scored",
		log.OperationKey, log.OperationScore,
		log.QueriesKey, len(X),
		log.ScoreKey, score,
	)
	return score, nil
}

// NegLogPredictiveDensity は観測ノイズを含む予測分布のもとでの y の平均負対数密度を返す
func (gp *GaussianProcess) NegLogPredictiveDensity(X [][]float64, y []float64) (float64, error) {
	mean, err := gp.PredictSeveral(X)
	if err != nil {
		return 0, err
	}
	variance, err := gp.PredictVarianceSeveral(X)
	if err != nil {
		return 0, err
	}
	noise2 := gp.noise * gp.noise
	for i := range variance {
		variance[i] += noise2
	}
	return metrics.MeanNegLogPredictiveDensity(y, mean, variance)
}

func (gp *GaussianProcess) crossVec(x []float64) []float64 {
	n := len(gp.outputs)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = gp.kernel.Eval(x, linalg.Row(gp.inputs, i))
	}
	return out
}

func (gp *GaussianProcess) variance(x []float64) float64 {
	v := gp.factor.SolveLower(gp.crossVec(x))
	return clamp(gp.kernel.Eval(x, x) - floats.Dot(v, v))
}

func (gp *GaussianProcess) covariance(q *mat.Dense) *mat.SymDense {
	kxx := linalg.Covariance(q, gp.kernel, 0)
	v := gp.factor.SolveLowerMatrix(linalg.Cross(gp.inputs, q, gp.kernel))

	var cov mat.SymDense
	cov.SymRankK(kxx, -1, v.T())
	for i := 0; i < cov.SymmetricDim(); i++ {
		cov.SetSym(i, i, clamp(cov.At(i, i)))
	}
	return &cov
}

func (gp *GaussianProcess) checkQuery(op string, x []float64) error {
	if !gp.IsFitted() {
		return errors.NewNotFittedError(modelName, op)
	}
	if len(x) != gp.NumFeatures() {
		return errors.NewDimensionError(op, gp.NumFeatures(), len(x), 1)
	}
	return errors.CheckNumericalStability(op, x, 0)
}

func (gp *GaussianProcess) checkQueries(op string, X [][]float64) (*mat.Dense, error) {
	if !gp.IsFitted() {
		return nil, errors.NewNotFittedError(modelName, op)
	}
	return queryMatrix(op, X, gp.NumFeatures())
}

func clamp(variance float64) float64 {
	if variance < 0 {
		return 0
	}
	return variance
}
