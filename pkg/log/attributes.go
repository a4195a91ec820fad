// Package log defines standard attribute keys for Gaussian process operations.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so records can be filtered by category.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of model, e.g. "GaussianProcess".
	ModelNameKey = "model.name"

	// EstimatorIDKey is the unique identifier of a model instance (a UUID).
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey is the number of training rows.
	SamplesKey = "data.samples"

	// FeaturesKey is the width of each input row.
	FeaturesKey = "data.features"

	// AddedSamplesKey is the number of rows appended by an incremental refit.
	AddedSamplesKey = "data.added"

	// QueriesKey is the number of query rows in a prediction batch.
	QueriesKey = "data.queries"
)

// Model Configuration
const (
	// KernelKey is the name of the covariance function.
	KernelKey = "gp.kernel"

	// PriorKey is the name of the mean function.
	PriorKey = "gp.prior"

	// NoiseKey is the observation noise standard deviation.
	NoiseKey = "gp.noise"

	// HyperParamsKey is the current vector of trainable parameters.
	HyperParamsKey = "model.hyperparams"

	// LearningRateKey is the fixed step size of gradient ascent.
	LearningRateKey = "hyperparams.learning_rate"

	// JitterKey is the diagonal jitter added to factorize a matrix.
	JitterKey = "linalg.jitter"
)

// Optimization Progress
const (
	// IterationKey is the current optimizer iteration.
	IterationKey = "training.iteration"

	// MaxIterationsKey is the iteration budget of an optimizer run.
	MaxIterationsKey = "training.max_iterations"

	// LikelihoodKey is the log marginal likelihood.
	LikelihoodKey = "gp.likelihood"

	// GradientNormKey is the Euclidean norm of the likelihood gradient.
	GradientNormKey = "gp.gradient_norm"

	// ScoreKey is the coefficient of determination of a scored prediction.
	ScoreKey = "metrics.r2"

	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error Context
const (
	// ErrorKey holds the error attached to a record.
	ErrorKey = "error"

	// StacktraceKey contains stack trace information extracted from
	// cockroachdb/errors safe details.
	StacktraceKey = "error.stacktrace"

	// ErrorTypeKey categorizes the error, e.g. "FactorizationError".
	ErrorTypeKey = "error.type"
)

// Standard operation values.
const (
	OperationFit        = "fit"
	OperationOptimize   = "optimize"
	OperationAddSamples = "add_samples"
	OperationPredict    = "predict"
	OperationSample     = "sample"
	OperationScore      = "score"
)
