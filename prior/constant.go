package prior

var _ Trainable = (*Constant)(nil)

// Constant is m(x) = c.
type Constant struct {
	c float64
}

// NewConstant creates a constant prior.
func NewConstant(c float64) *Constant {
	return &Constant{c: c}
}

func (p *Constant) Mean([]float64) float64 { return p.c }

func (p *Constant) NumParameters() int            { return 1 }
func (p *Constant) Parameters() []float64         { return []float64{p.c} }
func (p *Constant) Gradient([]float64) []float64 { return []float64{1} }

func (p *Constant) SetParameters(params []float64) error {
	if err := checkParams(string(KindConstant), params, 1); err != nil {
		return err
	}
	p.c = params[0]
	return nil
}
