// Package gaussproc provides Gaussian process regression for Go.
//
// A Gaussian process models an unknown function as a distribution over
// functions. Given training rows and outputs it predicts a mean and an
// uncertainty at new rows, and the log marginal likelihood of the data
// drives the fitting of its hyperparameters.
//
// # Packages
//
//   - gp: the model. Construction, hyperparameter fitting, incremental
//     refits, prediction of mean, variance and covariance, and posterior
//     sampling.
//   - kernel: covariance functions (gaussian, exponential, Matérn 3/2 and
//     5/2, rational quadratic, linear) and their scaled, summed and
//     multiplied combinations.
//   - prior: mean functions (zero, constant, linear).
//   - linalg: covariance construction and Cholesky solves on gonum.
//   - metrics: regression and probabilistic scores.
//   - preprocessing: input standardization.
//   - config: YAML configuration of the gaussproc command.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "math/rand/v2"
//
//	    "github.com/YuminosukeSato/gaussproc/gp"
//	)
//
//	func main() {
//	    inputs := [][]float64{{0.8}, {1.2}, {3.8}, {4.2}}
//	    outputs := []float64{3, 4, -2, -2}
//
//	    model, err := gp.NewDefault(inputs, outputs)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    mean, _ := model.Predict([]float64{1})
//	    variance, _ := model.PredictVariance([]float64{1})
//	    fmt.Println(mean, variance)
//
//	    if err := model.OptimizeParameters(100, 0.01, false); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    dist, _ := model.SampleAtSeveral([][]float64{{1}, {2}})
//	    fmt.Println(dist.Sample(rand.NewPCG(1, 2)))
//	}
//
// # Error Handling
//
// Errors are created with github.com/cockroachdb/errors and carry stack
// traces. Factorization failures are *errors.FactorizationError, optimizer
// divergence is *errors.ConvergenceError, and shape problems are reported
// before any numeric work as *errors.DimensionError or
// *errors.ValidationError.
//
// # Logging
//
// Models log through pkg/log, a structured logger backed by zerolog. Call
// log.SetupLogger to choose the level, or pass gp.WithLogger.
//
// # Concurrency
//
// A model is not safe for concurrent use. Fitting and refitting rebuild the
// cached factorization and need exclusive access.
package gaussproc
