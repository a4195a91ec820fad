package gp

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func TestSampleAtSeveralIsReproducible(t *testing.T) {
	inputs, outputs := stepData()
	gp, err := NewDefault(inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)

	dist, err := gp.SampleAtSeveral([][]float64{{0.5}, {2.5}, {5}})
	require.NoError(t, err)
	assert.Equal(t, 3, dist.Dim())

	a := dist.SampleN(rand.NewPCG(42, 7), 5)
	b := dist.SampleN(rand.NewPCG(42, 7), 5)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a[0], a[1], "consecutive draws must differ")

	other, err := gp.SampleAtSeveral([][]float64{{0.5}, {2.5}, {5}})
	require.NoError(t, err)
	assert.Equal(t, a[0], other.Sample(rand.NewPCG(42, 7)))
}

func TestSampleMomentsConverge(t *testing.T) {
	inputs, outputs := stepData()
	gp, err := NewDefault(inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)

	queries := [][]float64{{0.5}, {2.5}, {3}, {5}}
	dist, err := gp.SampleAtSeveral(queries)
	require.NoError(t, err)

	const draws = 20000
	samples := dist.SampleN(rand.NewPCG(1, 1), draws)
	dim := dist.Dim()

	mean := make([]float64, dim)
	for _, s := range samples {
		for i, v := range s {
			mean[i] += v / draws
		}
	}
	assert.InDeltaSlice(t, dist.Mean(), mean, 0.05)

	cov := mat.NewSymDense(dim, nil)
	for _, s := range samples {
		for i := 0; i < dim; i++ {
			for j := 0; j <= i; j++ {
				cov.SetSym(i, j, cov.At(i, j)+(s[i]-mean[i])*(s[j]-mean[j])/(draws-1))
			}
		}
	}
	assert.True(t, mat.EqualApprox(cov, dist.Covariance(), 0.05))
}

func TestMultivariateNormalJitter(t *testing.T) {
	var warnings []error
	errors.SetZerologWarnFunc(func(w error) { warnings = append(warnings, w) })
	defer errors.SetZerologWarnFunc(nil)

	// rank one: both values are the same draw
	cov := mat.NewSymDense(2, []float64{1, 1, 1, 1})
	dist, err := NewMultivariateNormal([]float64{1, 1}, cov)
	require.NoError(t, err)
	assert.Greater(t, dist.Jitter(), 0.0)
	require.Len(t, warnings, 1)

	var jw *errors.JitterWarning
	require.True(t, errors.As(warnings[0], &jw))
	assert.Equal(t, 2, jw.Size)

	s := dist.Sample(rand.NewPCG(3, 3))
	assert.InDelta(t, s[0], s[1], 1e-3)
}

func TestSampleAtRepeatedRows(t *testing.T) {
	inputs, outputs := stepData()
	gp, err := NewDefault(inputs, outputs, WithLogger(quietLogger()))
	require.NoError(t, err)

	dist, err := gp.SampleAtSeveral([][]float64{{2}, {2}, {0.8}})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		s := dist.Sample(rand.NewPCG(uint64(i), 9))
		assert.InDelta(t, s[0], s[1], 1e-3)
		assert.InDelta(t, 3.0, s[2], 1e-3)
	}
}

func TestNewMultivariateNormalValidation(t *testing.T) {
	_, err := NewMultivariateNormal(nil, mat.NewSymDense(1, nil))
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	_, err = NewMultivariateNormal([]float64{0, 0}, mat.NewSymDense(3, nil))
	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}
