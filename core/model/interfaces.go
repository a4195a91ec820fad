// Package model provides the estimator state shared by models and the
// prediction interfaces they expose.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Predictor is the interface for models that predict a scalar per input row.
type Predictor interface {
	// Predict returns the predicted mean at a single row.
	Predict(x []float64) (float64, error)

	// PredictSeveral returns the predicted mean at each row.
	PredictSeveral(X [][]float64) ([]float64, error)
}

// UncertaintyPredictor is implemented by models that quantify predictive uncertainty.
type UncertaintyPredictor interface {
	Predictor

	// PredictVariance returns the non-negative predictive variance at a row.
	PredictVariance(x []float64) (float64, error)

	// PredictVarianceSeveral returns the predictive variance at each row.
	PredictVarianceSeveral(X [][]float64) ([]float64, error)

	// PredictCovarianceSeveral returns the joint predictive covariance of the rows.
	PredictCovarianceSeveral(X [][]float64) (*mat.SymDense, error)
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the coefficient of determination R^2 of the prediction.
	Score(X [][]float64, y []float64) (float64, error)
}

// Regressor combines interfaces for probabilistic regression models.
type Regressor interface {
	UncertaintyPredictor
	Scorer
}
