// Package log provides the structured logging interface used across gaussproc.
//
// The Logger interface is slog-compatible in shape so backends can be swapped,
// while the default backend is zerolog (see zerolog.go). Attribute keys for
// estimator context, data shapes and optimization progress live in
// attributes.go.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "GaussianProcess",
//	    log.EstimatorIDKey, id,
//	)
//	logger.Info("Hyperparameter optimization finished",
//	    log.OperationKey, log.OperationOptimize,
//	    log.IterationKey, 100,
//	    log.LikelihoodKey, -3.2,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key/value pairs. If the number of fields is
// odd and the first one is an error, it is attached as the error of the record
// together with its stack trace.
type Logger interface {
	// Debug logs detailed diagnostic information, such as per-iteration
	// likelihood values when the optimizer is not verbose.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs potentially problematic situations that do not stop execution.
	Warn(msg string, fields ...any)

	// Error logs error conditions.
	//
	// Example:
	//   logger.Error("Factorization failed",
	//       err,
	//       log.OperationKey, log.OperationFit,
	//       log.SamplesKey, 8,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to skip building expensive fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
