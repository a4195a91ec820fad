// Package kernel provides covariance functions for Gaussian process regression.
//
// Every kernel is a deterministic, symmetric function k(x, y) with a fixed
// number of hyperparameters. Gradient returns the partial derivatives of k
// with respect to those hyperparameters, in the order of Parameters.
package kernel

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Kernel is the capability set consumed by the covariance builder.
type Kernel interface {
	// Eval returns k(x, y). x and y have the same length.
	Eval(x, y []float64) float64

	// Gradient returns ∂k/∂θ_p at (x, y) for p in [0, NumParameters()).
	Gradient(x, y []float64) []float64

	// NumParameters returns the fixed number of hyperparameters.
	NumParameters() int

	// Parameters returns a copy of the current hyperparameters.
	Parameters() []float64

	// SetParameters replaces the hyperparameters. It fails when the length is
	// wrong or a value is outside the kernel's domain.
	SetParameters(params []float64) error

	// Name identifies the kernel in logs and configuration.
	Name() string
}

// Kind enumerates the built-in kernel families.
type Kind string

const (
	KindGaussian          Kind = "gaussian"
	KindExponential       Kind = "exponential"
	KindMatern32          Kind = "matern32"
	KindMatern52          Kind = "matern52"
	KindRationalQuadratic Kind = "rational_quadratic"
	KindLinear            Kind = "linear"
)

var defaults = map[Kind]func() Kernel{
	KindGaussian:          func() Kernel { return NewGaussian(1) },
	KindExponential:       func() Kernel { return NewExponential(1) },
	KindMatern32:          func() Kernel { return NewMatern32(1) },
	KindMatern52:          func() Kernel { return NewMatern52(1) },
	KindRationalQuadratic: func() Kernel { return NewRationalQuadratic(1, 1) },
	KindLinear:            func() Kernel { return NewLinear(0) },
}

// New returns the default instance of a kernel family.
func New(kind Kind) (Kernel, error) {
	ctor, ok := defaults[kind]
	if !ok {
		return nil, errors.NewValidationError("kernel", fmt.Sprintf("unknown kernel, expected one of %v", Kinds()), string(kind))
	}
	return ctor(), nil
}

// Default returns the kernel used when none is configured: a gaussian kernel
// with unit length scale.
func Default() Kernel {
	return NewGaussian(1)
}

// Kinds lists the built-in kernel families in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(defaults))
	for k := range defaults {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func sqDistance(x, y []float64) float64 {
	d := floats.Distance(x, y, 2)
	return d * d
}

func checkParams(name string, params []float64, want int) error {
	if len(params) != want {
		return errors.NewDimensionError(name+".SetParameters", want, len(params), 1)
	}
	return errors.CheckNumericalStability(name+".SetParameters", params, 0)
}

func checkPositive(param string, v float64) error {
	if !(v > 0) {
		return errors.NewValidationError(param, "must be positive", v)
	}
	return nil
}
