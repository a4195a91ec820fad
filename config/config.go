// Package config loads the YAML run configuration of the gaussproc command.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/gaussproc/gp"
	"github.com/YuminosukeSato/gaussproc/kernel"
	"github.com/YuminosukeSato/gaussproc/pkg/errors"
	"github.com/YuminosukeSato/gaussproc/pkg/log"
	"github.com/YuminosukeSato/gaussproc/prior"
)

// KernelConfig selects a covariance function.
type KernelConfig struct {
	// Kind is one of kernel.Kinds()
	Kind kernel.Kind `yaml:"kind"`

	// Params overrides the default hyperparameters of Kind (optional)
	Params []float64 `yaml:"params,omitempty"`

	// Variance wraps the kernel in a signal variance when positive (optional)
	Variance float64 `yaml:"variance,omitempty"`
}

// PriorConfig selects a mean function.
type PriorConfig struct {
	// Kind is one of prior.Kinds()
	Kind prior.Kind `yaml:"kind"`

	// Params overrides the all-zero default parameters (optional)
	Params []float64 `yaml:"params,omitempty"`
}

// OptimizerConfig controls hyperparameter fitting.
type OptimizerConfig struct {
	FitKernel  bool    `yaml:"fit_kernel"`
	FitPrior   bool    `yaml:"fit_prior"`
	Iterations int     `yaml:"iterations"`
	Rate       float64 `yaml:"rate"`
	Verbose    bool    `yaml:"verbose"` // info-level log per optimizer step
}

// LoggingConfig controls the process-wide logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

// Config holds the complete run configuration.
type Config struct {
	Kernel    KernelConfig    `yaml:"kernel"`
	Prior     PriorConfig     `yaml:"prior"`
	Noise     float64         `yaml:"noise"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Standardize rescales every input column to zero mean and unit
	// variance before training; queries go through the same transform.
	Standardize bool `yaml:"standardize"`
}

// Default returns the configuration matching gp.NewDefault.
func Default() *Config {
	return &Config{
		Kernel: KernelConfig{Kind: kernel.KindGaussian},
		Prior:  PriorConfig{Kind: prior.KindConstant},
		Noise:  gp.DefaultNoise,
		Optimizer: OptimizerConfig{
			Iterations: gp.DefaultIterations,
			Rate:       gp.DefaultRate,
		},
		Logging: LoggingConfig{Level: "warn"},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return cfg, nil
}

// Validate checks the configuration without building anything that depends
// on the data width.
func (c *Config) Validate() error {
	if _, err := c.BuildKernel(); err != nil {
		return errors.Wrap(err, "kernel")
	}
	switch c.Prior.Kind {
	case prior.KindZero, prior.KindConstant, prior.KindLinear:
	default:
		return errors.NewValidationError("prior.kind", "unknown prior", string(c.Prior.Kind))
	}
	if !errors.IsFinite(c.Noise) || c.Noise < 0 {
		return errors.NewValidationError("noise", "must be a finite non-negative number", c.Noise)
	}
	if c.Optimizer.Iterations <= 0 {
		return errors.NewValidationError("optimizer.iterations", "must be positive", c.Optimizer.Iterations)
	}
	if !errors.IsFinite(c.Optimizer.Rate) || c.Optimizer.Rate <= 0 {
		return errors.NewValidationError("optimizer.rate", "must be a finite positive number", c.Optimizer.Rate)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// BuildKernel constructs the configured kernel.
func (c *Config) BuildKernel() (kernel.Kernel, error) {
	k, err := kernel.New(c.Kernel.Kind)
	if err != nil {
		return nil, err
	}
	if len(c.Kernel.Params) > 0 {
		if err := k.SetParameters(c.Kernel.Params); err != nil {
			return nil, err
		}
	}
	if c.Kernel.Variance < 0 {
		return nil, errors.NewValidationError("kernel.variance", "must be non-negative", c.Kernel.Variance)
	}
	if c.Kernel.Variance > 0 {
		k = kernel.NewScaled(c.Kernel.Variance, k)
	}
	return k, nil
}

// BuildPrior constructs the configured prior for inputs of width dim.
func (c *Config) BuildPrior(dim int) (prior.Prior, error) {
	p, err := prior.Default(c.Prior.Kind, dim)
	if err != nil {
		return nil, err
	}
	if len(c.Prior.Params) == 0 {
		return p, nil
	}
	tp, ok := p.(prior.Trainable)
	if !ok {
		return nil, errors.NewValidationError("prior.params", "prior has no parameters", c.Prior.Params)
	}
	if err := tp.SetParameters(c.Prior.Params); err != nil {
		return nil, err
	}
	return tp, nil
}

// Builder returns a gp.Builder configured for the given training data.
func (c *Config) Builder(inputs [][]float64, outputs []float64, logger log.Logger) (*gp.Builder, error) {
	k, err := c.BuildKernel()
	if err != nil {
		return nil, err
	}
	dim := 0
	if len(inputs) > 0 {
		dim = len(inputs[0])
	}
	p, err := c.BuildPrior(dim)
	if err != nil {
		return nil, err
	}

	b := gp.NewBuilder(inputs, outputs).
		SetKernel(k).
		SetPrior(p).
		SetNoise(c.Noise).
		SetFitKernel(c.Optimizer.FitKernel).
		SetFitPrior(c.Optimizer.FitPrior).
		SetVerbose(c.Optimizer.Verbose).
		SetOptimizer(c.Optimizer.Iterations, c.Optimizer.Rate)
	if logger != nil {
		b.SetLogger(logger)
	}
	return b, nil
}
