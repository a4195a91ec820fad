package gp

import (
	"github.com/YuminosukeSato/gaussproc/pkg/log"
)

// Option is a function that configures a GaussianProcess
type Option func(*GaussianProcess)

// WithLogger sets the logger the model derives its own logger from
func WithLogger(logger log.Logger) Option {
	return func(gp *GaussianProcess) {
		gp.baseLogger = logger
	}
}

// WithOptimizer sets the iteration count and learning rate used by FitParameters
func WithOptimizer(iterations int, rate float64) Option {
	return func(gp *GaussianProcess) {
		gp.iterations = iterations
		gp.rate = rate
	}
}

// WithID sets the estimator id reported in logs
func WithID(id string) Option {
	return func(gp *GaussianProcess) {
		gp.id = id
	}
}
