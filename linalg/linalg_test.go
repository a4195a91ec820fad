package linalg

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

func randomInputs(rng *rand.Rand, n, d int) *mat.Dense {
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	return mat.NewDense(n, d, data)
}

func TestCrossIsSymmetricOnSameInputs(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	x := randomInputs(rng, 12, 3)

	for _, kind := range kernel.Kinds() {
		k, err := kernel.New(kind)
		require.NoError(t, err)
		m := Cross(x, x, k)
		for i := 0; i < 12; i++ {
			for j := 0; j < 12; j++ {
				assert.Equal(t, m.At(i, j), m.At(j, i), "%s (%d,%d)", kind, i, j)
			}
		}
	}
}

func TestCrossShape(t *testing.T) {
	a := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})
	b := mat.NewDense(2, 2, []float64{0, 0, 5, 5})
	m := Cross(a, b, kernel.NewGaussian(1))
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, 1.0, m.At(0, 0))
	assert.InDelta(t, math.Exp(-1), m.At(1, 0), 1e-15)
}

func TestTrainingCovarianceFactorReconstructs(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	x := randomInputs(rng, 20, 2)

	cov, f, err := TrainingCovariance(x, kernel.NewMatern52(0.8), 0.1)
	require.NoError(t, err)
	require.Equal(t, 20, f.Size())

	var llt mat.Dense
	llt.Mul(f.L(), f.L().T())
	assert.True(t, mat.EqualApprox(&llt, cov, 1e-10))

	for i := 0; i < 20; i++ {
		assert.InDelta(t, 1.01, cov.At(i, i), 1e-12)
	}
}

func TestTrainingCovarianceDuplicateRows(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 1, 2})
	_, _, err := TrainingCovariance(x, kernel.NewGaussian(1), 0)
	require.Error(t, err)

	var fe *errors.FactorizationError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 3, fe.Size)
	assert.True(t, errors.Is(err, errors.ErrNotPositiveDefinite))

	_, _, err = TrainingCovariance(x, kernel.NewGaussian(1), 1e-3)
	assert.NoError(t, err)
}

func TestFactorSolve(t *testing.T) {
	a := mat.NewSymDense(3, []float64{
		4, 2, 0.4,
		2, 5, 1,
		0.4, 1, 3,
	})
	f, err := Factorize(a)
	require.NoError(t, err)

	b := []float64{1, -2, 0.5}
	x := f.Solve(b)
	var got mat.VecDense
	got.MulVec(a, mat.NewVecDense(3, x))
	for i := range b {
		assert.InDelta(t, b[i], got.AtVec(i), 1e-12)
	}
	assert.Equal(t, []float64{1, -2, 0.5}, b, "input must not be modified")

	v := f.SolveLower(b)
	var lv mat.VecDense
	lv.MulVec(f.L(), mat.NewVecDense(3, v))
	for i := range b {
		assert.InDelta(t, b[i], lv.AtVec(i), 1e-12)
	}

	inv := f.SolveMatrix(identity(3))
	var prod mat.Dense
	prod.Mul(a, inv)
	assert.True(t, mat.EqualApprox(&prod, identity(3), 1e-12))

	var tr float64
	for i := 0; i < 3; i++ {
		tr += inv.At(i, i)
	}
	assert.InDelta(t, tr, f.TraceInverse(), 1e-12)

	assert.InDelta(t, math.Log(mat.Det(a)), f.LogDeterminant(), 1e-12)
}

func TestFactorizeWithJitter(t *testing.T) {
	// rank one, positive semi-definite
	a := mat.NewSymDense(2, []float64{1, 1, 1, 1})
	_, err := Factorize(a)
	require.Error(t, err)

	f, jitter, err := FactorizeWithJitter(a, 8)
	require.NoError(t, err)
	assert.Greater(t, jitter, 0.0)
	assert.Equal(t, 2, f.Size())
	assert.Equal(t, 1.0, a.At(0, 0), "input must not be modified")

	pd := mat.NewSymDense(2, []float64{2, 0, 0, 2})
	_, jitter, err = FactorizeWithJitter(pd, 8)
	require.NoError(t, err)
	assert.Equal(t, 0.0, jitter)

	neg := mat.NewSymDense(2, []float64{-1, 0, 0, -1})
	_, _, err = FactorizeWithJitter(neg, 3)
	assert.True(t, errors.Is(err, errors.ErrNotPositiveDefinite))
}

func TestGradientMatrices(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 1, 3})
	k := kernel.NewRationalQuadratic(1.5, 0.7)
	grads := GradientMatrices(x, k)
	require.Len(t, grads, 2)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := k.Gradient(Row(x, i), Row(x, j))
			assert.InDelta(t, want[0], grads[0].At(i, j), 1e-15)
			assert.InDelta(t, want[1], grads[1].At(i, j), 1e-15)
		}
	}
}

func TestRowOnNonDense(t *testing.T) {
	d := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.Equal(t, []float64{1, 3}, Row(d.T(), 0))
	assert.Equal(t, []float64{3, 4}, Row(d, 1))
}
