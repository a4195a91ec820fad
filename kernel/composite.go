package kernel

var (
	_ Kernel = (*Scaled)(nil)
	_ Kernel = (*Sum)(nil)
	_ Kernel = (*Product)(nil)
)

// Scaled multiplies a kernel by a signal variance: k(x, y) = σ²·inner(x, y).
// Parameters are ordered (σ², inner parameters...).
type Scaled struct {
	variance float64
	inner    Kernel
}

// NewScaled wraps inner with a signal variance.
func NewScaled(variance float64, inner Kernel) *Scaled {
	return &Scaled{variance: variance, inner: inner}
}

func (k *Scaled) Name() string       { return "scaled(" + k.inner.Name() + ")" }
func (k *Scaled) NumParameters() int { return 1 + k.inner.NumParameters() }

func (k *Scaled) Parameters() []float64 {
	return append([]float64{k.variance}, k.inner.Parameters()...)
}

func (k *Scaled) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, k.NumParameters()); err != nil {
		return err
	}
	if err := checkPositive("variance", params[0]); err != nil {
		return err
	}
	if err := k.inner.SetParameters(params[1:]); err != nil {
		return err
	}
	k.variance = params[0]
	return nil
}

func (k *Scaled) Eval(x, y []float64) float64 {
	return k.variance * k.inner.Eval(x, y)
}

func (k *Scaled) Gradient(x, y []float64) []float64 {
	grad := make([]float64, 0, k.NumParameters())
	grad = append(grad, k.inner.Eval(x, y))
	for _, g := range k.inner.Gradient(x, y) {
		grad = append(grad, k.variance*g)
	}
	return grad
}

// Sum is k(x, y) = a(x, y) + b(x, y). Parameters are a's followed by b's.
type Sum struct {
	a, b Kernel
}

// NewSum adds two kernels.
func NewSum(a, b Kernel) *Sum {
	return &Sum{a: a, b: b}
}

func (k *Sum) Name() string       { return k.a.Name() + "+" + k.b.Name() }
func (k *Sum) NumParameters() int { return k.a.NumParameters() + k.b.NumParameters() }

func (k *Sum) Parameters() []float64 {
	return append(k.a.Parameters(), k.b.Parameters()...)
}

func (k *Sum) SetParameters(params []float64) error {
	return setPair(k.Name(), k.a, k.b, params)
}

func (k *Sum) Eval(x, y []float64) float64 {
	return k.a.Eval(x, y) + k.b.Eval(x, y)
}

func (k *Sum) Gradient(x, y []float64) []float64 {
	return append(k.a.Gradient(x, y), k.b.Gradient(x, y)...)
}

// Product is k(x, y) = a(x, y)·b(x, y). Parameters are a's followed by b's.
type Product struct {
	a, b Kernel
}

// NewProduct multiplies two kernels.
func NewProduct(a, b Kernel) *Product {
	return &Product{a: a, b: b}
}

func (k *Product) Name() string       { return k.a.Name() + "*" + k.b.Name() }
func (k *Product) NumParameters() int { return k.a.NumParameters() + k.b.NumParameters() }

func (k *Product) Parameters() []float64 {
	return append(k.a.Parameters(), k.b.Parameters()...)
}

func (k *Product) SetParameters(params []float64) error {
	return setPair(k.Name(), k.a, k.b, params)
}

func (k *Product) Eval(x, y []float64) float64 {
	return k.a.Eval(x, y) * k.b.Eval(x, y)
}

func (k *Product) Gradient(x, y []float64) []float64 {
	va, vb := k.a.Eval(x, y), k.b.Eval(x, y)
	grad := make([]float64, 0, k.NumParameters())
	for _, g := range k.a.Gradient(x, y) {
		grad = append(grad, g*vb)
	}
	for _, g := range k.b.Gradient(x, y) {
		grad = append(grad, va*g)
	}
	return grad
}

// setPair updates both halves or neither.
func setPair(name string, a, b Kernel, params []float64) error {
	na := a.NumParameters()
	if err := checkParams(name, params, na+b.NumParameters()); err != nil {
		return err
	}
	old := a.Parameters()
	if err := a.SetParameters(params[:na]); err != nil {
		return err
	}
	if err := b.SetParameters(params[na:]); err != nil {
		if restoreErr := a.SetParameters(old); restoreErr != nil {
			return restoreErr
		}
		return err
	}
	return nil
}
