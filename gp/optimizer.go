package gp

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

const optimizerName = "gradient_ascent"

// gradientTolerance を超える勾配ノルムで反復を使い切ると収束警告を出す
const gradientTolerance = 1e-3

// OptimizeParameters はカーネルとノイズ、学習可能なら事前分布のパラメータを
// 固定学習率の勾配上昇法で iterations 回更新する。
//
// 各ステップで θ ← θ + rate·∇θ log p(y|X) とし、共分散行列・分解・alpha を
// 作り直す。分解の失敗、パラメータの拒否、尤度や勾配の非有限値が起きた場合は
// 最後に評価できたパラメータに戻してキャッシュを再構築し、*errors.ConvergenceError を返す。
// verbose のとき各反復の尤度を info レベルで記録する。
func (gp *GaussianProcess) OptimizeParameters(iterations int, rate float64, verbose bool) (err error) {
	defer errors.Recover(&err, "GaussianProcess.OptimizeParameters")

	if err := validateOptimizer(iterations, rate); err != nil {
		return err
	}
	return gp.optimize(selection{prior: true, kernel: true}, iterations, rate, verbose)
}

// FitParameters は選択したパラメータ群を既定の反復回数と学習率で最適化する。
// どちらも選択しない場合はキャッシュの再計算だけを行う。
func (gp *GaussianProcess) FitParameters(fitPrior, fitKernel bool) (err error) {
	defer errors.Recover(&err, "GaussianProcess.FitParameters")
	return gp.fitParameters(fitPrior, fitKernel, false)
}

func (gp *GaussianProcess) fitParameters(fitPrior, fitKernel, verbose bool) error {
	if !fitPrior && !fitKernel {
		return gp.refresh()
	}
	return gp.optimize(selection{prior: fitPrior, kernel: fitKernel}, gp.iterations, gp.rate, verbose)
}

func (gp *GaussianProcess) optimize(sel selection, iterations int, rate float64, verbose bool) error {
	if !gp.IsFitted() {
		if err := gp.refresh(); err != nil {
			return err
		}
	}

	logger := gp.logger.With(log.OperationKey, log.OperationOptimize)
	emit := logger.Debug
	if verbose {
		emit = logger.Info
	}

	if sel.prior {
		if _, ok := gp.trainablePrior(sel); !ok {
			logger.Debug("Prior has no trainable parameters")
		}
	}

	last := gp.parameters(sel)
	if len(last) == 0 {
		return nil
	}

	start := time.Now()
	logger.Info("Hyperparameter optimization started",
		log.SamplesKey, gp.NumSamples(),
		log.HyperParamsKey, last,
		log.LearningRateKey, rate,
		log.MaxIterationsKey, iterations,
	)

	for it := 0; it < iterations; it++ {
		ll := gp.logLikelihood()
		if err := errors.CheckScalar("likelihood", ll, it); err != nil {
			return gp.abort(sel, it, last, err)
		}
		grad := gp.gradient(sel)
		if err := errors.CheckNumericalStability("likelihood_gradient", grad, it); err != nil {
			return gp.abort(sel, it, last, err)
		}

		emit("Optimizer step",
			log.IterationKey, it,
			log.LikelihoodKey, ll,
			log.GradientNormKey, floats.Norm(grad, 2),
		)

		last = gp.parameters(sel)
		next := append([]float64(nil), last...)
		floats.AddScaled(next, rate, grad)

		if err := gp.setParameters(sel, next); err != nil {
			return gp.abort(sel, it, last, err)
		}
		if err := gp.refresh(); err != nil {
			return gp.abort(sel, it, last, err)
		}
	}

	ll := gp.logLikelihood()
	if err := errors.CheckScalar("likelihood", ll, iterations); err != nil {
		return gp.abort(sel, iterations, last, err)
	}
	gradNorm := floats.Norm(gp.gradient(sel), 2)

	logger.Info("Hyperparameter optimization finished",
		log.IterationKey, iterations,
		log.LikelihoodKey, ll,
		log.GradientNormKey, gradNorm,
		log.HyperParamsKey, gp.parameters(sel),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	if !(gradNorm <= gradientTolerance) {
		errors.Warn(errors.NewConvergenceWarning(optimizerName, iterations,
			fmt.Sprintf("gradient norm %.3g is above %g", gradNorm, gradientTolerance)))
	}
	return nil
}

// abort は最後に評価できたパラメータへ戻し、キャッシュを作り直してから失敗を返す
func (gp *GaussianProcess) abort(sel selection, iteration int, last []float64, cause error) error {
	if err := gp.setParameters(sel, last); err != nil {
		cause = errors.Wrapf(cause, "restoring parameters: %v", err)
	} else if err := gp.refresh(); err != nil {
		cause = errors.Wrapf(cause, "rebuilding cache: %v", err)
	}

	convErr := errors.NewConvergenceError(optimizerName, iteration, cause)
	gp.logger.Error("Hyperparameter optimization failed",
		convErr,
		log.OperationKey, log.OperationOptimize,
		log.IterationKey, iteration,
		log.HyperParamsKey, last,
	)
	return convErr
}
