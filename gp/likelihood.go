package gp

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/linalg"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/prior"
)

// Likelihood は現在のパラメータでの対数周辺尤度を返す
//
//	log p(y|X) = −½ (y−m)ᵀ α − ½ log|K| − (n/2) log 2π
func (gp *GaussianProcess) Likelihood() (float64, error) {
	if !gp.IsFitted() {
		return 0, errors.NewNotFittedError(modelName, "Likelihood")
	}
	return gp.logLikelihood(), nil
}

func (gp *GaussianProcess) logLikelihood() float64 {
	n := float64(len(gp.residual))
	return -0.5*floats.Dot(gp.residual, gp.alpha) -
		0.5*gp.factor.LogDeterminant() -
		0.5*n*math.Log(2*math.Pi)
}

// selection は最適化の対象とするパラメータ群
type selection struct {
	prior  bool
	kernel bool
}

// trainablePrior は事前分布が学習可能な場合にそれを返す
func (gp *GaussianProcess) trainablePrior(sel selection) (prior.Trainable, bool) {
	if !sel.prior {
		return nil, false
	}
	tp, ok := gp.prior.(prior.Trainable)
	return tp, ok
}

// parameters はベクトル [kernel..., noise, prior...] を返す。選択されていない群は含まない
func (gp *GaussianProcess) parameters(sel selection) []float64 {
	var params []float64
	if sel.kernel {
		params = append(params, gp.kernel.Parameters()...)
		params = append(params, gp.noise)
	}
	if tp, ok := gp.trainablePrior(sel); ok {
		params = append(params, tp.Parameters()...)
	}
	return params
}

// setParameters は parameters と同じ並びのベクトルを反映する。
// ノイズは符号に依存しないため絶対値で保持する。
func (gp *GaussianProcess) setParameters(sel selection, params []float64) error {
	if err := errors.CheckNumericalStability("GaussianProcess.setParameters", params, 0); err != nil {
		return err
	}
	if want := len(gp.parameters(sel)); len(params) != want {
		return errors.NewDimensionError("GaussianProcess.setParameters", want, len(params), 0)
	}
	if sel.kernel {
		nk := gp.kernel.NumParameters()
		if err := gp.kernel.SetParameters(params[:nk]); err != nil {
			return err
		}
		gp.noise = math.Abs(params[nk])
		params = params[nk+1:]
	}
	if tp, ok := gp.trainablePrior(sel); ok {
		if err := tp.SetParameters(params); err != nil {
			return err
		}
	}
	return nil
}

// gradient は parameters と同じ並びで対数周辺尤度の勾配を返す。
//
// カーネルのパラメータ θ_p について ½ (αᵀ dK α − tr(K⁻¹ dK))、
// ノイズについては dK = 2σI から σ (αᵀα − tr(K⁻¹))、
// 事前分布のパラメータについては Σ α_i ∂m(x_i)/∂θ となる。
func (gp *GaussianProcess) gradient(sel selection) []float64 {
	var grad []float64
	if sel.kernel {
		for _, dK := range linalg.GradientMatrices(gp.inputs, gp.kernel) {
			grad = append(grad, 0.5*(quadForm(dK, gp.alpha)-traceSolve(gp.factor, dK)))
		}
		grad = append(grad, gp.noise*(floats.Dot(gp.alpha, gp.alpha)-gp.factor.TraceInverse()))
	}
	if tp, ok := gp.trainablePrior(sel); ok {
		pg := make([]float64, tp.NumParameters())
		for i, a := range gp.alpha {
			floats.AddScaled(pg, a, tp.Gradient(linalg.Row(gp.inputs, i)))
		}
		grad = append(grad, pg...)
	}
	return grad
}

// quadForm は xᵀ A x を返す
func quadForm(a mat.Symmetric, x []float64) float64 {
	v := mat.NewVecDense(len(x), x)
	return mat.Inner(v, a, v)
}

// traceSolve は tr(K⁻¹ A) を K⁻¹ を作らずに求める
func traceSolve(f *linalg.Factor, a mat.Matrix) float64 {
	return mat.Trace(f.SolveMatrix(a))
}
