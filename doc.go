// Package valgap is an instructional experiment showing how validation-set
// performance can diverge from test-set performance during model selection.
//
// The repository generates synthetic tabular data with known ground truth
// (a handful of informative features buried in a hundred random columns),
// splits it into train/validation/test partitions, and sweeps the
// hyperparameters of a regression tree under two competing selection
// criteria:
//
//   - maximize the validation R² score
//   - minimize bootstrap-estimated bias² + variance
//
// The two winners are then evaluated on the test partition, which no
// selection code path ever sees, and their scores and feature-importance
// distributions are compared. With enough hyperparameter candidates, the
// validation-maximizing strategy reliably picks a model whose validation
// score overstates its test score; the bias/variance criterion is more
// conservative and generalizes better.
//
// # Running the experiment
//
// The whole narrative lives in one command:
//
//	go run ./cmd/valgap
//
// All randomness is seeded, so repeated runs reproduce the same numbers.
// Pass -seed to explore other draws, -out to choose where the plots land.
//
// # Packages
//
//   - dataset: synthetic data generation and the three-way split
//   - tree: CART regression tree with gain-based feature importances
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - selection: the hyperparameter sweep, both criteria, and the
//     bootstrap bias²+variance estimator
//   - report: gonum/plot renderings of the sweep and the importance
//     comparison
package valgap
