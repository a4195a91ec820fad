package gp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/linalg"
	"github.com/YuminosukeSato/gaussproc/prior"
)

func TestLikelihoodMatchesDirectFormula(t *testing.T) {
	inputs, outputs := sineData(6)
	gp, err := New(prior.NewConstant(0.3), kernel.NewMatern52(1), 0.2, inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)

	got, err := gp.Likelihood()
	require.NoError(t, err)

	cov := linalg.Covariance(gp.inputs, gp.kernel, 0.2)
	var inv mat.Dense
	require.NoError(t, inv.Inverse(cov))
	r := mat.NewVecDense(len(outputs), nil)
	for i, y := range outputs {
		r.SetVec(i, y-0.3)
	}
	logDet, sign := mat.LogDet(cov)
	require.Equal(t, 1.0, sign)

	want := -0.5*mat.Inner(r, &inv, r) - 0.5*logDet - 0.5*float64(len(outputs))*math.Log(2*math.Pi)
	assert.InDelta(t, want, got, 1e-9)
}

func TestLikelihoodGradientMatchesFiniteDifferences(t *testing.T) {
	inputs, outputs := sineData(7)
	k := kernel.NewScaled(1.5, kernel.NewGaussian(0.8))
	p := prior.NewLinear(0.1, []float64{-0.2})
	gp, err := New(p, k, 0.3, inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)

	sel := selection{prior: true, kernel: true}
	params := gp.parameters(sel)
	require.Len(t, params, 5) // variance, length scale, noise, intercept, weight

	analytic := gp.gradient(sel)
	require.Len(t, analytic, len(params))

	const h = 1e-6
	at := func(theta []float64) float64 {
		require.NoError(t, gp.setParameters(sel, theta))
		require.NoError(t, gp.refresh())
		return gp.logLikelihood()
	}
	for i := range params {
		plus := append([]float64(nil), params...)
		minus := append([]float64(nil), params...)
		plus[i] += h
		minus[i] -= h
		numeric := (at(plus) - at(minus)) / (2 * h)
		assert.InDelta(t, numeric, analytic[i], 1e-4*math.Max(1, math.Abs(numeric)), "parameter %d", i)
	}
	at(params)
}

func TestParameterSelection(t *testing.T) {
	inputs, outputs := stepData()
	gp, err := New(prior.NewConstant(1), kernel.NewRationalQuadratic(2, 1), 0.1, inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, []float64{2, 1, 0.1}, gp.parameters(selection{kernel: true}))
	assert.Equal(t, []float64{1}, gp.parameters(selection{prior: true}))
	assert.Equal(t, []float64{2, 1, 0.1, 1}, gp.parameters(selection{prior: true, kernel: true}))
	assert.Empty(t, gp.parameters(selection{}))

	require.NoError(t, gp.setParameters(selection{kernel: true}, []float64{3, 0.5, -0.2}))
	assert.Equal(t, 0.2, gp.Noise())
	assert.Equal(t, []float64{3, 0.5}, gp.Kernel().Parameters())

	assert.Error(t, gp.setParameters(selection{kernel: true}, []float64{3, 0.5}))
	assert.Error(t, gp.setParameters(selection{kernel: true}, []float64{3, math.NaN(), 0.1}))
}
