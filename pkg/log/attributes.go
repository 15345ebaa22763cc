// Package log defines standard attribute keys for experiment logging.
//
// Using these keys consistently keeps the JSON output of a sweep easy to
// filter: every fit carries the same model/operation/data-shape fields.
package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, e.g. "DecisionTreeRegressor".
	ModelNameKey = "model.name"

	// OperationKey names the operation: "fit", "predict", "score",
	// "grid_search", "bias_variance".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package performing the operation.
	ComponentKey = "ml.component"

	// PhaseKey indicates the experiment phase: "generate", "split",
	// "selection", "evaluation", "report".
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) being processed.
	FeaturesKey = "data.features"

	// SeedKey is the RNG seed governing the operation.
	SeedKey = "data.seed"
)

// Scores and performance.
const (
	// ScoreKey is a generic metric value; pair with MetricKey.
	ScoreKey = "eval.score"

	// MetricKey names the metric a ScoreKey value was computed with.
	MetricKey = "eval.metric"

	// DurationMsKey records the execution time of an operation in
	// milliseconds.
	DurationMsKey = "perf.duration_ms"

	// CandidatesKey is the number of hyperparameter candidates examined.
	CandidatesKey = "sweep.candidates"

	// BootstrapsKey is the number of bootstrap resamples used.
	BootstrapsKey = "sweep.bootstraps"
)
