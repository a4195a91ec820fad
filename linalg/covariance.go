// Package linalg builds Gaussian process covariance matrices and solves the
// linear systems they define through their Cholesky factor.
package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Row returns row i of m. Dense matrices are viewed without copying; the
// result must not be modified.
func Row(m mat.Matrix, i int) []float64 {
	if d, ok := m.(mat.RawRowViewer); ok {
		return d.RawRowView(i)
	}
	return mat.Row(nil, i, m)
}

func rows(m mat.Matrix) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = Row(m, i)
	}
	return out
}

// Cross returns the r_a × r_b matrix with entries k(a_i, b_j).
func Cross(a, b mat.Matrix, k kernel.Kernel) *mat.Dense {
	ra, rb := rows(a), rows(b)
	out := mat.NewDense(len(ra), len(rb), nil)
	for i, x := range ra {
		for j, y := range rb {
			out.Set(i, j, k.Eval(x, y))
		}
	}
	return out
}

// Covariance returns the symmetric matrix k(x_i, x_j) with noise² added to
// the diagonal. Only the lower triangle is evaluated.
func Covariance(inputs mat.Matrix, k kernel.Kernel, noise float64) *mat.SymDense {
	xs := rows(inputs)
	n := len(xs)
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			out.SetSym(i, j, k.Eval(xs[i], xs[j]))
		}
		out.SetSym(i, i, k.Eval(xs[i], xs[i])+noise*noise)
	}
	return out
}

// TrainingCovariance builds the training covariance and factorizes it. It
// fails with a *errors.FactorizationError when the matrix is not positive
// definite, typically for duplicate inputs with too little noise.
func TrainingCovariance(inputs mat.Matrix, k kernel.Kernel, noise float64) (*mat.SymDense, *Factor, error) {
	cov := Covariance(inputs, k, noise)
	if err := errors.CheckMatrix("linalg.TrainingCovariance", cov, cov.SymmetricDim(), cov.SymmetricDim(), 0); err != nil {
		return nil, nil, err
	}
	f, err := factorize("linalg.TrainingCovariance", cov, 0)
	if err != nil {
		return nil, nil, err
	}
	return cov, f, nil
}

// GradientMatrices returns, for every kernel hyperparameter p, the symmetric
// matrix ∂k(x_i, x_j)/∂θ_p. Each pair is evaluated once.
func GradientMatrices(inputs mat.Matrix, k kernel.Kernel) []*mat.SymDense {
	xs := rows(inputs)
	n := len(xs)
	out := make([]*mat.SymDense, k.NumParameters())
	for p := range out {
		out[p] = mat.NewSymDense(n, nil)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			for p, g := range k.Gradient(xs[i], xs[j]) {
				out[p].SetSym(i, j, g)
			}
		}
	}
	return out
}
