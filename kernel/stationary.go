package kernel

import (
	"math"
)

var (
	_ Kernel = (*Gaussian)(nil)
	_ Kernel = (*Exponential)(nil)
	_ Kernel = (*Matern32)(nil)
	_ Kernel = (*Matern52)(nil)
	_ Kernel = (*RationalQuadratic)(nil)
)

// Gaussian is the squared exponential kernel
//
//	k(x, y) = exp(-‖x-y‖² / (2 l²))
type Gaussian struct {
	lengthScale float64
}

// NewGaussian creates a gaussian kernel. lengthScale must be positive.
func NewGaussian(lengthScale float64) *Gaussian {
	return &Gaussian{lengthScale: lengthScale}
}

func (k *Gaussian) Name() string       { return string(KindGaussian) }
func (k *Gaussian) NumParameters() int { return 1 }

func (k *Gaussian) Parameters() []float64 { return []float64{k.lengthScale} }

func (k *Gaussian) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, 1); err != nil {
		return err
	}
	if err := checkPositive("length_scale", params[0]); err != nil {
		return err
	}
	k.lengthScale = params[0]
	return nil
}

func (k *Gaussian) Eval(x, y []float64) float64 {
	l := k.lengthScale
	return math.Exp(-sqDistance(x, y) / (2 * l * l))
}

func (k *Gaussian) Gradient(x, y []float64) []float64 {
	l := k.lengthScale
	d2 := sqDistance(x, y)
	// ∂/∂l exp(-d²/2l²) = k·d²/l³
	return []float64{math.Exp(-d2/(2*l*l)) * d2 / (l * l * l)}
}

// Exponential is the Ornstein-Uhlenbeck kernel
//
//	k(x, y) = exp(-‖x-y‖ / l)
type Exponential struct {
	lengthScale float64
}

// NewExponential creates an exponential kernel.
func NewExponential(lengthScale float64) *Exponential {
	return &Exponential{lengthScale: lengthScale}
}

func (k *Exponential) Name() string       { return string(KindExponential) }
func (k *Exponential) NumParameters() int { return 1 }

func (k *Exponential) Parameters() []float64 { return []float64{k.lengthScale} }

func (k *Exponential) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, 1); err != nil {
		return err
	}
	if err := checkPositive("length_scale", params[0]); err != nil {
		return err
	}
	k.lengthScale = params[0]
	return nil
}

func (k *Exponential) Eval(x, y []float64) float64 {
	return math.Exp(-math.Sqrt(sqDistance(x, y)) / k.lengthScale)
}

func (k *Exponential) Gradient(x, y []float64) []float64 {
	l := k.lengthScale
	d := math.Sqrt(sqDistance(x, y))
	return []float64{math.Exp(-d/l) * d / (l * l)}
}

// Matern32 is the Matérn kernel with ν = 3/2
//
//	k(x, y) = (1 + √3 r/l) exp(-√3 r/l)
type Matern32 struct {
	lengthScale float64
}

// NewMatern32 creates a Matérn 3/2 kernel.
func NewMatern32(lengthScale float64) *Matern32 {
	return &Matern32{lengthScale: lengthScale}
}

func (k *Matern32) Name() string       { return string(KindMatern32) }
func (k *Matern32) NumParameters() int { return 1 }

func (k *Matern32) Parameters() []float64 { return []float64{k.lengthScale} }

func (k *Matern32) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, 1); err != nil {
		return err
	}
	if err := checkPositive("length_scale", params[0]); err != nil {
		return err
	}
	k.lengthScale = params[0]
	return nil
}

func (k *Matern32) Eval(x, y []float64) float64 {
	s := math.Sqrt(3) * math.Sqrt(sqDistance(x, y)) / k.lengthScale
	return (1 + s) * math.Exp(-s)
}

func (k *Matern32) Gradient(x, y []float64) []float64 {
	s := math.Sqrt(3) * math.Sqrt(sqDistance(x, y)) / k.lengthScale
	// dk/ds = -s·exp(-s), ds/dl = -s/l
	return []float64{s * s * math.Exp(-s) / k.lengthScale}
}

// Matern52 is the Matérn kernel with ν = 5/2
//
//	k(x, y) = (1 + √5 r/l + 5r²/3l²) exp(-√5 r/l)
type Matern52 struct {
	lengthScale float64
}

// NewMatern52 creates a Matérn 5/2 kernel.
func NewMatern52(lengthScale float64) *Matern52 {
	return &Matern52{lengthScale: lengthScale}
}

func (k *Matern52) Name() string       { return string(KindMatern52) }
func (k *Matern52) NumParameters() int { return 1 }

func (k *Matern52) Parameters() []float64 { return []float64{k.lengthScale} }

func (k *Matern52) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, 1); err != nil {
		return err
	}
	if err := checkPositive("length_scale", params[0]); err != nil {
		return err
	}
	k.lengthScale = params[0]
	return nil
}

func (k *Matern52) Eval(x, y []float64) float64 {
	s := math.Sqrt(5) * math.Sqrt(sqDistance(x, y)) / k.lengthScale
	return (1 + s + s*s/3) * math.Exp(-s)
}

func (k *Matern52) Gradient(x, y []float64) []float64 {
	s := math.Sqrt(5) * math.Sqrt(sqDistance(x, y)) / k.lengthScale
	// dk/ds = -s(1+s)/3·exp(-s), ds/dl = -s/l
	return []float64{s * s * (1 + s) / 3 * math.Exp(-s) / k.lengthScale}
}

// RationalQuadratic is a scale mixture of gaussian kernels
//
//	k(x, y) = (1 + ‖x-y‖² / (2 α l²))^(-α)
//
// Parameters are ordered (alpha, length scale).
type RationalQuadratic struct {
	alpha       float64
	lengthScale float64
}

// NewRationalQuadratic creates a rational quadratic kernel.
func NewRationalQuadratic(alpha, lengthScale float64) *RationalQuadratic {
	return &RationalQuadratic{alpha: alpha, lengthScale: lengthScale}
}

func (k *RationalQuadratic) Name() string       { return string(KindRationalQuadratic) }
func (k *RationalQuadratic) NumParameters() int { return 2 }

func (k *RationalQuadratic) Parameters() []float64 {
	return []float64{k.alpha, k.lengthScale}
}

func (k *RationalQuadratic) SetParameters(params []float64) error {
	if err := checkParams(k.Name(), params, 2); err != nil {
		return err
	}
	if err := checkPositive("alpha", params[0]); err != nil {
		return err
	}
	if err := checkPositive("length_scale", params[1]); err != nil {
		return err
	}
	k.alpha, k.lengthScale = params[0], params[1]
	return nil
}

func (k *RationalQuadratic) Eval(x, y []float64) float64 {
	a, l := k.alpha, k.lengthScale
	return math.Pow(1+sqDistance(x, y)/(2*a*l*l), -a)
}

func (k *RationalQuadratic) Gradient(x, y []float64) []float64 {
	a, l := k.alpha, k.lengthScale
	d2 := sqDistance(x, y)
	u := d2 / (2 * a * l * l)
	base := 1 + u
	val := math.Pow(base, -a)
	dAlpha := val * (u/base - math.Log(base))
	dLength := val * d2 / (l * l * l * base)
	return []float64{dAlpha, dLength}
}
