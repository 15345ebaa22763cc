package tree

// Option configures a DecisionTreeRegressor.
type Option func(*DecisionTreeRegressor)

// WithMaxDepth limits the tree depth. Zero or negative means no limit.
func WithMaxDepth(depth int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.maxDepth = depth
	}
}

// WithMinSamplesLeaf sets the minimum number of samples a leaf may hold.
func WithMinSamplesLeaf(n int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.minSamplesLeaf = n
	}
}

// WithMinSamplesSplit sets the minimum number of samples required to split
// an internal node.
func WithMinSamplesSplit(n int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.minSamplesSplit = n
	}
}

// WithMaxFeatures limits how many features are examined per split. Zero
// means all features. Values above the feature count are clamped at fit.
func WithMaxFeatures(n int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.maxFeatures = n
	}
}

// WithRandomState sets the seed for the per-split feature subsampling.
func WithRandomState(seed int) Option {
	return func(dt *DecisionTreeRegressor) {
		dt.randomState = seed
	}
}
