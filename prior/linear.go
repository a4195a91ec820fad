package prior

import (
	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

var _ Trainable = (*Linear)(nil)

// Linear is m(x) = b + w·x. Parameters are ordered (b, w_0, ..., w_{d-1}).
type Linear struct {
	intercept float64
	weights   []float64
}

// NewLinear creates a linear prior. The weights slice is copied.
func NewLinear(intercept float64, weights []float64) *Linear {
	return &Linear{intercept: intercept, weights: append([]float64(nil), weights...)}
}

func (p *Linear) Mean(x []float64) float64 {
	if len(x) != len(p.weights) {
		panic(errors.NewDimensionError("prior.Linear.Mean", len(p.weights), len(x), 1))
	}
	return p.intercept + floats.Dot(p.weights, x)
}

func (p *Linear) NumParameters() int { return 1 + len(p.weights) }

// Dim is the input width the prior was sized for.
func (p *Linear) Dim() int { return len(p.weights) }

func (p *Linear) Parameters() []float64 {
	return append([]float64{p.intercept}, p.weights...)
}

func (p *Linear) SetParameters(params []float64) error {
	if err := checkParams(string(KindLinear), params, p.NumParameters()); err != nil {
		return err
	}
	p.intercept = params[0]
	copy(p.weights, params[1:])
	return nil
}

func (p *Linear) Gradient(x []float64) []float64 {
	return append([]float64{1}, x...)
}
