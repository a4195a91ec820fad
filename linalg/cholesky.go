package linalg

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Factor is the lower Cholesky factor L of a symmetric positive definite
// matrix K, with L·Lᵀ = K.
type Factor struct {
	l *mat.TriDense
}

// Factorize computes the Cholesky factor of a. It returns a
// *errors.FactorizationError when a is not positive definite.
func Factorize(a *mat.SymDense) (*Factor, error) {
	return factorize("linalg.Factorize", a, 0)
}

func factorize(op string, a *mat.SymDense, jitter float64) (*Factor, error) {
	n := a.SymmetricDim()
	if n == 0 {
		return nil, errors.NewModelError(op, "empty matrix", errors.ErrEmptyData)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok {
		return nil, errors.NewFactorizationError(op, n, jitter)
	}
	l := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(l)
	return &Factor{l: l}, nil
}

const minJitter = 1e-10

// FactorizeWithJitter factorizes a, adding an escalating multiple of the
// identity when a is only positive semi-definite. The first attempt uses no
// jitter; each retry multiplies the jitter by ten, starting at 1e-10 times the
// mean diagonal and never below 1e-10. It returns the jitter that succeeded.
func FactorizeWithJitter(a *mat.SymDense, maxTries int) (*Factor, float64, error) {
	const op = "linalg.FactorizeWithJitter"
	if f, err := factorize(op, a, 0); err == nil {
		return f, 0, nil
	} else if !errors.Is(err, errors.ErrNotPositiveDefinite) {
		return nil, 0, err
	}

	n := a.SymmetricDim()
	var trace float64
	for i := 0; i < n; i++ {
		trace += a.At(i, i)
	}
	jitter := 1e-10 * trace / float64(n)
	if !(jitter > minJitter) || math.IsInf(jitter, 0) {
		jitter = minJitter
	}

	work := mat.NewSymDense(n, nil)
	for try := 0; try < maxTries; try++ {
		work.CopySym(a)
		for i := 0; i < n; i++ {
			work.SetSym(i, i, work.At(i, i)+jitter)
		}
		if f, err := factorize(op, work, jitter); err == nil {
			return f, jitter, nil
		}
		jitter *= 10
	}
	return nil, jitter / 10, errors.NewFactorizationError(op, n, jitter/10)
}

// L returns the lower triangular factor. It must not be modified.
func (f *Factor) L() *mat.TriDense { return f.l }

// Size is the dimension n of the factored matrix.
func (f *Factor) Size() int {
	n, _ := f.l.Triangle()
	return n
}

// LogDeterminant returns log|K| = 2·Σ log L_ii.
func (f *Factor) LogDeterminant() float64 {
	var sum float64
	for i := 0; i < f.Size(); i++ {
		sum += math.Log(f.l.At(i, i))
	}
	return 2 * sum
}

// Solve returns x with L·Lᵀ·x = b using a forward and a back substitution.
func (f *Factor) Solve(b []float64) []float64 {
	x := f.checkedCopy(b)
	v := blas64.Vector{N: len(x), Data: x, Inc: 1}
	blas64.Trsv(blas.NoTrans, f.l.RawTriangular(), v)
	blas64.Trsv(blas.Trans, f.l.RawTriangular(), v)
	return x
}

// SolveLower returns L⁻¹·b.
func (f *Factor) SolveLower(b []float64) []float64 {
	x := f.checkedCopy(b)
	blas64.Trsv(blas.NoTrans, f.l.RawTriangular(), blas64.Vector{N: len(x), Data: x, Inc: 1})
	return x
}

// SolveMatrix returns K⁻¹·B, column by column, without forming K⁻¹.
func (f *Factor) SolveMatrix(b mat.Matrix) *mat.Dense {
	x := f.checkedDense(b)
	raw := x.RawMatrix()
	blas64.Trsm(blas.Left, blas.NoTrans, 1, f.l.RawTriangular(), raw)
	blas64.Trsm(blas.Left, blas.Trans, 1, f.l.RawTriangular(), raw)
	return x
}

// SolveLowerMatrix returns L⁻¹·B.
func (f *Factor) SolveLowerMatrix(b mat.Matrix) *mat.Dense {
	x := f.checkedDense(b)
	blas64.Trsm(blas.Left, blas.NoTrans, 1, f.l.RawTriangular(), x.RawMatrix())
	return x
}

// TraceInverse returns trace(K⁻¹) = ‖L⁻¹‖²_F.
func (f *Factor) TraceInverse() float64 {
	n := f.Size()
	inv := f.SolveLowerMatrix(identity(n))
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := inv.At(i, j)
			sum += v * v
		}
	}
	return sum
}

func (f *Factor) checkedCopy(b []float64) []float64 {
	if len(b) != f.Size() {
		panic(errors.NewDimensionError("linalg.Factor.Solve", f.Size(), len(b), 0))
	}
	return append([]float64(nil), b...)
}

func (f *Factor) checkedDense(b mat.Matrix) *mat.Dense {
	r, _ := b.Dims()
	if r != f.Size() {
		panic(errors.NewDimensionError("linalg.Factor.SolveMatrix", f.Size(), r, 0))
	}
	return mat.DenseCopyOf(b)
}

func identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}
