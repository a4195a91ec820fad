// Package prior provides mean functions for Gaussian process regression.
//
// A prior is the value the model falls back to where no training data informs
// a prediction. Priors with hyperparameters implement Trainable and can be
// fitted together with the kernel.
package prior

import (
	"fmt"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Prior is a mean function m(x).
type Prior interface {
	Mean(x []float64) float64
}

// Trainable is a prior with hyperparameters.
type Trainable interface {
	Prior

	NumParameters() int
	Parameters() []float64
	SetParameters(params []float64) error

	// Gradient returns ∂m/∂θ_p at x, in the order of Parameters.
	Gradient(x []float64) []float64
}

// Kind enumerates the built-in prior families.
type Kind string

const (
	KindZero     Kind = "zero"
	KindConstant Kind = "constant"
	KindLinear   Kind = "linear"
)

// Default returns the baseline instance of a prior family for inputs of width
// dim. All parameters start at zero.
func Default(kind Kind, dim int) (Prior, error) {
	switch kind {
	case KindZero:
		return Zero{}, nil
	case KindConstant:
		return NewConstant(0), nil
	case KindLinear:
		if dim < 1 {
			return nil, errors.NewValidationError("dim", "must be positive", dim)
		}
		return NewLinear(0, make([]float64, dim)), nil
	default:
		return nil, errors.NewValidationError("prior",
			fmt.Sprintf("unknown prior, expected one of %v", Kinds()), string(kind))
	}
}

// Kinds lists the built-in prior families.
func Kinds() []Kind {
	return []Kind{KindConstant, KindLinear, KindZero}
}

// Name returns a short identifier for p, used in logs.
func Name(p Prior) string {
	switch p.(type) {
	case Zero, *Zero:
		return string(KindZero)
	case *Constant:
		return string(KindConstant)
	case *Linear:
		return string(KindLinear)
	default:
		return fmt.Sprintf("%T", p)
	}
}

func checkParams(name string, params []float64, want int) error {
	if len(params) != want {
		return errors.NewDimensionError(name+".SetParameters", want, len(params), 1)
	}
	return errors.CheckNumericalStability(name+".SetParameters", params, 0)
}
