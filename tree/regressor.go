// Package tree implements a CART regression tree with a scikit-learn style
// API. Splits minimize the sum of squared errors; importances are the
// normalized total gain contributed by each feature.
package tree

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/valgap/core/model"
	"github.com/YuminosukeSato/valgap/metrics"
	"github.com/YuminosukeSato/valgap/pkg/errors"
)

// node is one entry in the flat tree representation. Children are indices
// into the node slice; leaves have left == -1 and right == -1.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
	gain      float64
	samples   int
}

func (n node) isLeaf() bool {
	return n.left == -1 && n.right == -1
}

// splitInfo describes the best split found for a node.
type splitInfo struct {
	feature    int
	threshold  float64
	gain       float64
	leftCount  int
	rightCount int
}

// DecisionTreeRegressor is a regression tree with variance-reduction splits.
type DecisionTreeRegressor struct {
	model.BaseEstimator

	// Hyperparameters.
	maxDepth        int
	minSamplesLeaf  int
	minSamplesSplit int
	maxFeatures     int
	randomState     int

	// Fitted state.
	nFeatures   int
	nodes       []node
	importances []float64

	// Training-time scratch, released after Fit.
	x   *mat.Dense
	y   []float64
	rng *rand.Rand
}

// NewDecisionTreeRegressor creates a regressor with the given options.
// Defaults: unlimited depth, minSamplesLeaf 1, minSamplesSplit 2, all
// features considered at every split.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	dt := &DecisionTreeRegressor{
		maxDepth:        0,
		minSamplesLeaf:  1,
		minSamplesSplit: 2,
		maxFeatures:     0,
		randomState:     42,
	}
	for _, opt := range opts {
		opt(dt)
	}
	return dt
}

func (dt *DecisionTreeRegressor) validateParams() error {
	if dt.minSamplesLeaf < 1 {
		return errors.NewValidationError("minSamplesLeaf", "must be at least 1", dt.minSamplesLeaf)
	}
	if dt.minSamplesSplit < 2 {
		return errors.NewValidationError("minSamplesSplit", "must be at least 2", dt.minSamplesSplit)
	}
	if dt.maxFeatures < 0 {
		return errors.NewValidationError("maxFeatures", "must be non-negative", dt.maxFeatures)
	}
	return nil
}

// Fit grows the tree on X and y. A dataset too small to split yields a
// single-leaf tree predicting the mean, not an error.
func (dt *DecisionTreeRegressor) Fit(X, y mat.Matrix) error {
	if err := dt.validateParams(); err != nil {
		return err
	}

	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError("DecisionTreeRegressor.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows != rows {
		return errors.NewDimensionError("DecisionTreeRegressor.Fit", rows, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewValueError("DecisionTreeRegressor.Fit", "y must be a column vector (n×1 matrix)")
	}

	dt.Reset()
	dt.nFeatures = cols
	dt.nodes = dt.nodes[:0]
	dt.importances = make([]float64, cols)

	// Copy the inputs; the tree must not alias caller data while growing.
	dt.x = mat.NewDense(rows, cols, nil)
	dt.x.Copy(X)
	dt.y = make([]float64, rows)
	for i := 0; i < rows; i++ {
		dt.y[i] = y.At(i, 0)
	}
	dt.rng = rand.New(rand.NewPCG(uint64(dt.randomState), uint64(dt.randomState)))

	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}
	dt.buildNode(indices, 0)

	// Normalize gain totals into importances.
	total := 0.0
	for _, v := range dt.importances {
		total += v
	}
	if total > 0 {
		for i := range dt.importances {
			dt.importances[i] /= total
		}
	}

	// Release training scratch.
	dt.x = nil
	dt.y = nil
	dt.rng = nil

	dt.SetFitted()
	return nil
}

// buildNode recursively grows the tree and returns the new node's index.
func (dt *DecisionTreeRegressor) buildNode(indices []int, depth int) int {
	nodeIdx := len(dt.nodes)

	mean := dt.meanTarget(indices)
	if (dt.maxDepth > 0 && depth >= dt.maxDepth) ||
		len(indices) < dt.minSamplesSplit ||
		len(indices) < 2*dt.minSamplesLeaf {
		dt.nodes = append(dt.nodes, node{left: -1, right: -1, value: mean, samples: len(indices)})
		return nodeIdx
	}

	best := dt.findBestSplit(indices)
	if best.gain <= 0 {
		dt.nodes = append(dt.nodes, node{left: -1, right: -1, value: mean, samples: len(indices)})
		return nodeIdx
	}

	dt.nodes = append(dt.nodes, node{
		feature:   best.feature,
		threshold: best.threshold,
		left:      -1,
		right:     -1,
		value:     mean,
		gain:      best.gain,
		samples:   len(indices),
	})
	dt.importances[best.feature] += best.gain

	var leftIndices, rightIndices []int
	for _, idx := range indices {
		if dt.x.At(idx, best.feature) <= best.threshold {
			leftIndices = append(leftIndices, idx)
		} else {
			rightIndices = append(rightIndices, idx)
		}
	}

	left := dt.buildNode(leftIndices, depth+1)
	right := dt.buildNode(rightIndices, depth+1)
	dt.nodes[nodeIdx].left = left
	dt.nodes[nodeIdx].right = right
	return nodeIdx
}

// findBestSplit searches the candidate features for the SSE-reducing split.
func (dt *DecisionTreeRegressor) findBestSplit(indices []int) splitInfo {
	best := splitInfo{feature: -1, gain: -math.MaxFloat64}

	for _, j := range dt.candidateFeatures() {
		split := dt.findBestSplitForFeature(indices, j)
		if split.gain > best.gain {
			best = split
		}
	}
	if best.feature == -1 {
		best.gain = 0
	}
	return best
}

// candidateFeatures returns the features examined at a split: all of them,
// or a random subset when maxFeatures is set.
func (dt *DecisionTreeRegressor) candidateFeatures() []int {
	if dt.maxFeatures <= 0 || dt.maxFeatures >= dt.nFeatures {
		features := make([]int, dt.nFeatures)
		for j := range features {
			features[j] = j
		}
		return features
	}
	return dt.rng.Perm(dt.nFeatures)[:dt.maxFeatures]
}

// findBestSplitForFeature enumerates thresholds between consecutive sorted
// values, tracking left/right sums with prefix accumulation.
func (dt *DecisionTreeRegressor) findBestSplitForFeature(indices []int, feature int) splitInfo {
	values := make([]struct {
		value  float64
		target float64
	}, len(indices))
	for i, idx := range indices {
		values[i].value = dt.x.At(idx, feature)
		values[i].target = dt.y[idx]
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].value < values[j].value
	})

	var totalSum, totalSumSq float64
	for _, v := range values {
		totalSum += v.target
		totalSumSq += v.target * v.target
	}
	n := float64(len(values))
	parentSSE := totalSumSq - totalSum*totalSum/n

	best := splitInfo{feature: feature, gain: -math.MaxFloat64}

	var leftSum, leftSumSq float64
	leftCount := 0
	for i := 0; i < len(values)-1; i++ {
		leftSum += values[i].target
		leftSumSq += values[i].target * values[i].target
		leftCount++

		if values[i].value == values[i+1].value {
			continue
		}
		rightCount := len(values) - leftCount
		if leftCount < dt.minSamplesLeaf || rightCount < dt.minSamplesLeaf {
			continue
		}

		rightSum := totalSum - leftSum
		rightSumSq := totalSumSq - leftSumSq
		leftSSE := leftSumSq - leftSum*leftSum/float64(leftCount)
		rightSSE := rightSumSq - rightSum*rightSum/float64(rightCount)

		gain := parentSSE - leftSSE - rightSSE
		if gain > best.gain {
			best.gain = gain
			best.threshold = (values[i].value + values[i+1].value) / 2
			best.leftCount = leftCount
			best.rightCount = rightCount
		}
	}
	return best
}

func (dt *DecisionTreeRegressor) meanTarget(indices []int) float64 {
	var sum float64
	for _, idx := range indices {
		sum += dt.y[idx]
	}
	return sum / float64(len(indices))
}

// Predict returns predictions for X as an n×1 matrix.
func (dt *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !dt.IsFitted() {
		return nil, errors.NewNotFittedError("DecisionTreeRegressor", "Predict")
	}
	rows, cols := X.Dims()
	if cols != dt.nFeatures {
		return nil, errors.NewDimensionError("DecisionTreeRegressor.Predict", dt.nFeatures, cols, 1)
	}

	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, dt.predictRow(X, i))
	}
	return out, nil
}

func (dt *DecisionTreeRegressor) predictRow(X mat.Matrix, row int) float64 {
	nodeIdx := 0
	for {
		n := dt.nodes[nodeIdx]
		if n.isLeaf() {
			return n.value
		}
		if X.At(row, n.feature) <= n.threshold {
			nodeIdx = n.left
		} else {
			nodeIdx = n.right
		}
	}
}

// Score returns the coefficient of determination R² on X, y.
func (dt *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := dt.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}

// FeatureImportances returns the normalized gain-based importances, or nil
// before Fit. The returned slice is a copy.
func (dt *DecisionTreeRegressor) FeatureImportances() []float64 {
	if !dt.IsFitted() {
		return nil
	}
	out := make([]float64, len(dt.importances))
	copy(out, dt.importances)
	return out
}

// NumLeaves returns the number of leaf nodes, zero before Fit.
func (dt *DecisionTreeRegressor) NumLeaves() int {
	count := 0
	for _, n := range dt.nodes {
		if n.isLeaf() {
			count++
		}
	}
	return count
}

// Depth returns the depth of the fitted tree; a single leaf has depth 0.
func (dt *DecisionTreeRegressor) Depth() int {
	if len(dt.nodes) == 0 {
		return 0
	}
	return dt.depthFrom(0)
}

func (dt *DecisionTreeRegressor) depthFrom(nodeIdx int) int {
	n := dt.nodes[nodeIdx]
	if n.isLeaf() {
		return 0
	}
	left := dt.depthFrom(n.left)
	right := dt.depthFrom(n.right)
	if left > right {
		return left + 1
	}
	return right + 1
}
