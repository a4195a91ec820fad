package gp

import (
	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
	"github.com/YuminosukeSato/gaussproc/prior"
)

// Builder collects the configuration of a GaussianProcess before training.
//
// The defaults are a constant prior at zero, a gaussian kernel with unit length
// scale, noise 1e-7, and no hyperparameter fitting.
type Builder struct {
	inputs  [][]float64
	outputs []float64

	prior     prior.Prior
	kernel    kernel.Kernel
	noise     float64
	fitPrior  bool
	fitKernel bool
	verbose   bool

	opts []Option
}

// NewBuilder starts a configuration for the given training data.
func NewBuilder(inputs [][]float64, outputs []float64) *Builder {
	return &Builder{
		inputs:  inputs,
		outputs: outputs,
		kernel:  kernel.Default(),
		noise:   DefaultNoise,
	}
}

// SetPrior replaces the mean function.
func (b *Builder) SetPrior(p prior.Prior) *Builder {
	b.prior = p
	return b
}

// SetKernel replaces the covariance function.
func (b *Builder) SetKernel(k kernel.Kernel) *Builder {
	b.kernel = k
	return b
}

// SetNoise sets the observation noise standard deviation.
func (b *Builder) SetNoise(noise float64) *Builder {
	b.noise = noise
	return b
}

// SetFitPrior selects whether Train fits the prior parameters.
func (b *Builder) SetFitPrior(fit bool) *Builder {
	b.fitPrior = fit
	return b
}

// SetFitKernel selects whether Train fits the kernel parameters and noise.
func (b *Builder) SetFitKernel(fit bool) *Builder {
	b.fitKernel = fit
	return b
}

// SetVerbose logs every optimizer step at info level instead of debug.
func (b *Builder) SetVerbose(verbose bool) *Builder {
	b.verbose = verbose
	return b
}

// SetOptimizer sets the iteration count and learning rate used when fitting.
func (b *Builder) SetOptimizer(iterations int, rate float64) *Builder {
	b.opts = append(b.opts, WithOptimizer(iterations, rate))
	return b
}

// SetLogger sets the logger of the trained model.
func (b *Builder) SetLogger(logger log.Logger) *Builder {
	b.opts = append(b.opts, WithLogger(logger))
	return b
}

// Train builds the model and, when requested, fits its parameters.
func (b *Builder) Train() (*GaussianProcess, error) {
	p := b.prior
	if p == nil {
		d := 0
		if len(b.inputs) > 0 {
			d = len(b.inputs[0])
		}
		var err error
		if p, err = prior.Default(prior.KindConstant, d); err != nil {
			return nil, err
		}
	}

	gp, err := New(p, b.kernel, b.noise, b.inputs, b.outputs, b.opts...)
	if err != nil {
		return nil, err
	}
	if b.fitPrior || b.fitKernel {
		if err := b.fit(gp); err != nil {
			return nil, err
		}
	}
	return gp, nil
}

func (b *Builder) fit(gp *GaussianProcess) (err error) {
	defer errors.Recover(&err, "Builder.Train")
	return gp.fitParameters(b.fitPrior, b.fitKernel, b.verbose)
}
