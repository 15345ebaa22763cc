// Package model defines the estimator interfaces shared across valgap.
package model

import "gonum.org/v1/gonum/mat"

// Fitter is a model that can be trained.
type Fitter interface {
	// Fit trains the model on X and y.
	Fit(X, y mat.Matrix) error
}

// Predictor is a model that can predict.
type Predictor interface {
	// Predict returns predictions for X as an n×1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer is a model that can score itself.
type Scorer interface {
	// Score returns the coefficient of determination R² on X, y.
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor combines the interfaces a regression model exposes.
type Regressor interface {
	Fitter
	Predictor
	Scorer
}
