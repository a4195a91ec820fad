// Package gp implements Gaussian process regression.
//
// A GaussianProcess owns its training data, a prior mean, a kernel and an
// observation noise, and caches the Cholesky factor of the training
// covariance together with the weight vector alpha = K⁻¹(y − m). Every
// prediction reads that cache; FitParameters and AddSamplesFit rebuild it.
//
// A GaussianProcess is not safe for concurrent use. Mutating calls require
// exclusive access.
package gp

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/core/model"
	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/linalg"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
	"github.com/YuminosukeSato/gaussproc/prior"
)

const (
	modelName = "GaussianProcess"

	// DefaultNoise is the observation noise of NewDefault and NewBuilder.
	DefaultNoise = 1e-7
	// DefaultIterations is the number of gradient steps of FitParameters.
	DefaultIterations = 100
	// DefaultRate is the learning rate of FitParameters.
	DefaultRate = 0.01
)

var _ model.Regressor = (*GaussianProcess)(nil)

// GaussianProcess はガウス過程回帰モデル
type GaussianProcess struct {
	model.BaseEstimator

	prior  prior.Prior
	kernel kernel.Kernel
	noise  float64

	inputs  *mat.Dense // n×d
	outputs []float64

	// キャッシュ。IsFitted() が true の間だけ有効
	factor   *linalg.Factor
	residual []float64 // y − m(X)
	alpha    []float64 // K⁻¹ residual

	iterations int
	rate       float64

	id         string
	baseLogger log.Logger
	logger     log.Logger
}

// New は学習データから GaussianProcess を作成し、共分散行列を分解する。
// ハイパーパラメータの最適化は行わない。
func New(p prior.Prior, k kernel.Kernel, noise float64, inputs [][]float64, outputs []float64, opts ...Option) (gp *GaussianProcess, err error) {
	defer errors.Recover(&err, "gp.New")

	if p == nil {
		return nil, errors.NewValidationError("prior", "must not be nil", nil)
	}
	if k == nil {
		return nil, errors.NewValidationError("kernel", "must not be nil", nil)
	}
	if !errors.IsFinite(noise) || noise < 0 {
		return nil, errors.NewValidationError("noise", "must be a finite non-negative number", noise)
	}

	x, err := trainingMatrix("gp.New", inputs, outputs, 0)
	if err != nil {
		return nil, err
	}
	_, d := x.Dims()
	if lp, ok := p.(interface{ Dim() int }); ok && lp.Dim() != d {
		return nil, errors.NewDimensionError("gp.New", d, lp.Dim(), 1)
	}

	gp = &GaussianProcess{
		prior:      p,
		kernel:     k,
		noise:      noise,
		inputs:     x,
		outputs:    append([]float64(nil), outputs...),
		iterations: DefaultIterations,
		rate:       DefaultRate,
	}
	for _, opt := range opts {
		opt(gp)
	}
	if err := validateOptimizer(gp.iterations, gp.rate); err != nil {
		return nil, err
	}
	if gp.id == "" {
		gp.id = uuid.NewString()
	}
	if gp.baseLogger == nil {
		gp.baseLogger = log.GetLogger()
	}
	gp.logger = gp.baseLogger.With(
		log.ModelNameKey, modelName,
		log.EstimatorIDKey, gp.id,
	)

	if err := gp.refresh(); err != nil {
		gp.logger.Error("Initial factorization failed",
			err,
			log.OperationKey, log.OperationFit,
			log.SamplesKey, len(gp.outputs),
		)
		return nil, err
	}

	gp.logger.Debug("Gaussian process created",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(gp.outputs),
		log.FeaturesKey, d,
		log.KernelKey, k.Name(),
		log.PriorKey, prior.Name(p),
		log.NoiseKey, noise,
	)
	return gp, nil
}

// NewDefault は定数事前分布（0）、ガウスカーネル、ノイズ 1e-7 で GaussianProcess を作成する
func NewDefault(inputs [][]float64, outputs []float64, opts ...Option) (*GaussianProcess, error) {
	d := 0
	if len(inputs) > 0 {
		d = len(inputs[0])
	}
	p, err := prior.Default(prior.KindConstant, d)
	if err != nil {
		return nil, err
	}
	return New(p, kernel.Default(), DefaultNoise, inputs, outputs, opts...)
}

// Kernel returns the covariance function. Parameters changed through it take
// effect at the next fit.
func (gp *GaussianProcess) Kernel() kernel.Kernel { return gp.kernel }

// Prior returns the mean function.
func (gp *GaussianProcess) Prior() prior.Prior { return gp.prior }

// Noise returns the observation noise standard deviation.
func (gp *GaussianProcess) Noise() float64 { return gp.noise }

// NumSamples returns the number of training rows.
func (gp *GaussianProcess) NumSamples() int { return len(gp.outputs) }

// NumFeatures returns the width of every input row.
func (gp *GaussianProcess) NumFeatures() int {
	_, d := gp.inputs.Dims()
	return d
}

// ID returns the estimator id used in logs.
func (gp *GaussianProcess) ID() string { return gp.id }

// AddSamplesFit は学習データを追加し、必要ならハイパーパラメータを再学習する。
// キャッシュは常に一から再計算される。空の追加データも受け付ける。
func (gp *GaussianProcess) AddSamplesFit(inputs [][]float64, outputs []float64, fitPrior, fitKernel bool) (err error) {
	defer errors.Recover(&err, "GaussianProcess.AddSamplesFit")

	if len(inputs) != len(outputs) {
		return errors.NewDimensionError("GaussianProcess.AddSamplesFit", len(inputs), len(outputs), 0)
	}

	// 失敗してキャッシュが無効のまま終わった場合は追加前の状態に戻す
	snap := gp.snapshot()
	defer func() {
		if !gp.IsFitted() {
			gp.restore(snap)
			gp.logger.Warn("Training samples rolled back",
				log.OperationKey, log.OperationAddSamples,
				log.SamplesKey, len(gp.outputs),
				log.AddedSamplesKey, len(inputs),
			)
		}
	}()

	if len(inputs) > 0 {
		extra, err := trainingMatrix("GaussianProcess.AddSamplesFit", inputs, outputs, gp.NumFeatures())
		if err != nil {
			return err
		}
		var grown mat.Dense
		grown.Stack(gp.inputs, extra)
		gp.inputs = &grown
		gp.outputs = append(gp.outputs, outputs...)
	}
	gp.Reset()

	gp.logger.Info("Training samples added",
		log.OperationKey, log.OperationAddSamples,
		log.SamplesKey, len(gp.outputs),
		log.AddedSamplesKey, len(inputs),
	)

	if fitPrior || fitKernel {
		return gp.optimize(selection{prior: fitPrior, kernel: fitKernel}, gp.iterations, gp.rate, false)
	}
	return gp.refresh()
}

// state は AddSamplesFit の失敗時に戻すための学習データとキャッシュの写し
type state struct {
	inputs   *mat.Dense
	outputs  []float64
	params   []float64
	factor   *linalg.Factor
	residual []float64
	alpha    []float64
	fitted   bool
}

func (gp *GaussianProcess) snapshot() state {
	return state{
		inputs:   gp.inputs,
		outputs:  gp.outputs[:len(gp.outputs):len(gp.outputs)],
		params:   gp.parameters(selection{prior: true, kernel: true}),
		factor:   gp.factor,
		residual: gp.residual,
		alpha:    gp.alpha,
		fitted:   gp.IsFitted(),
	}
}

// restore は snapshot の時点の状態に戻す。キャッシュはその時点のパラメータに対応する
func (gp *GaussianProcess) restore(s state) {
	if err := gp.setParameters(selection{prior: true, kernel: true}, s.params); err != nil {
		gp.logger.Error("Restoring parameters failed", err, log.HyperParamsKey, s.params)
	}
	gp.inputs, gp.outputs = s.inputs, s.outputs
	gp.factor, gp.residual, gp.alpha = s.factor, s.residual, s.alpha
	gp.SetDimensions(gp.NumFeatures(), len(s.outputs))
	if s.fitted {
		gp.SetFitted()
	}
}

// refresh は現在のパラメータで共分散行列の分解と alpha を再計算する
func (gp *GaussianProcess) refresh() error {
	gp.Reset()
	gp.factor, gp.residual, gp.alpha = nil, nil, nil

	_, factor, err := linalg.TrainingCovariance(gp.inputs, gp.kernel, gp.noise)
	if err != nil {
		return err
	}

	n := len(gp.outputs)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		residual[i] = gp.outputs[i] - gp.prior.Mean(linalg.Row(gp.inputs, i))
	}
	if err := errors.CheckNumericalStability("prior.Mean", residual, 0); err != nil {
		return err
	}

	gp.factor = factor
	gp.residual = residual
	gp.alpha = factor.Solve(residual)
	gp.SetDimensions(gp.NumFeatures(), n)
	gp.SetFitted()
	return nil
}

// trainingMatrix は行の幅と出力の数を検証して n×d 行列を作る。
// width が 0 のときは最初の行の幅を使う。
func trainingMatrix(op string, inputs [][]float64, outputs []float64, width int) (*mat.Dense, error) {
	if len(inputs) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if len(outputs) != len(inputs) {
		return nil, errors.NewDimensionError(op, len(inputs), len(outputs), 0)
	}
	if width == 0 {
		width = len(inputs[0])
	}
	if width == 0 {
		return nil, errors.NewModelError(op, "empty rows", errors.ErrEmptyData)
	}
	x, err := queryMatrix(op, inputs, width)
	if err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability(op, outputs, 0); err != nil {
		return nil, err
	}
	return x, nil
}

// queryMatrix は全ての行が width 列であることを確認して行列にまとめる
func queryMatrix(op string, rows [][]float64, width int) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	x := mat.NewDense(len(rows), width, nil)
	for i, row := range rows {
		if len(row) != width {
			return nil, errors.NewDimensionError(op, width, len(row), 1)
		}
		if err := errors.CheckNumericalStability(op, row, 0); err != nil {
			return nil, err
		}
		x.SetRow(i, row)
	}
	return x, nil
}

func validateOptimizer(iterations int, rate float64) error {
	if iterations <= 0 {
		return errors.NewValidationError("iterations", "must be positive", iterations)
	}
	if !errors.IsFinite(rate) || rate <= 0 {
		return errors.NewValidationError("rate", "must be a finite positive number", rate)
	}
	return nil
}
