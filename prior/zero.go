package prior

var _ Prior = Zero{}

// Zero is m(x) = 0.
type Zero struct{}

func (Zero) Mean([]float64) float64 { return 0 }
