package kernel

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

var _ Kernel = (*Linear)(nil)

// Linear is the dot-product kernel k(x, y) = x·y + c. It yields a Bayesian
// linear regression when used alone.
type Linear struct {
	offset float64
}

// NewLinear creates a linear kernel with offset c ≥ 0.
func NewLinear(offset float64) *Linear {
	return &Linear{offset: offset}
}

func (k *Linear) Name() string       { return string(KindLinear) }
func (k *Linear) NumParameters() int { return 1 }

func (k *Linear) Parameters() []float64 { return []float64{k.offset} }

func (k *Linear) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, 1); err != nil {
		return err
	}
	if params[0] < 0 {
		return errors.NewValidationError("offset", "must be non-negative", params[0])
	}
	k.offset = params[0]
	return nil
}

func (k *Linear) Eval(x, y []float64) float64 {
	return floats.Dot(x, y) + k.offset
}

func (k *Linear) Gradient(x, y []float64) []float64 {
	return []float64{1}
}
