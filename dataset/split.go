package dataset

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/valgap/pkg/errors"
)

// Split holds the three disjoint partitions of a dataset, plus the row
// indices each partition was drawn from.
type Split struct {
	XTrain, YTrain *mat.Dense
	XVal, YVal     *mat.Dense
	XTest, YTest   *mat.Dense

	TrainIndices []int
	ValIndices   []int
	TestIndices  []int
}

// TrainValTestSplit shuffles the rows of X and y once and partitions them
// into train, validation and test sets. Train receives floor(trainFrac·n)
// rows, validation floor(valFrac·n), test the remainder. The shuffle is
// deterministic per seed.
func TrainValTestSplit(X, y mat.Matrix, trainFrac, valFrac float64, seed int64) (*Split, error) {
	nSamples, _ := X.Dims()
	yRows, yCols := y.Dims()

	if nSamples == 0 {
		return nil, errors.NewModelError("dataset.TrainValTestSplit", "empty data", errors.ErrEmptyData)
	}
	if yRows != nSamples {
		return nil, errors.NewDimensionError("dataset.TrainValTestSplit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewValueError("dataset.TrainValTestSplit", "y must be a column vector (n×1 matrix)")
	}
	if trainFrac <= 0 || trainFrac >= 1 {
		return nil, errors.NewValidationError("trainFrac", "must be in (0, 1)", trainFrac)
	}
	if valFrac <= 0 || valFrac >= 1 {
		return nil, errors.NewValidationError("valFrac", "must be in (0, 1)", valFrac)
	}
	if trainFrac+valFrac >= 1 {
		return nil, errors.NewValidationError("trainFrac+valFrac", "must leave room for a test partition", trainFrac+valFrac)
	}

	nTrain := int(trainFrac * float64(nSamples))
	nVal := int(valFrac * float64(nSamples))
	nTest := nSamples - nTrain - nVal
	if nTrain == 0 || nVal == 0 || nTest == 0 {
		return nil, errors.NewValidationError("fractions", "each partition needs at least one sample", nSamples)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	split := &Split{
		TrainIndices: append([]int(nil), indices[:nTrain]...),
		ValIndices:   append([]int(nil), indices[nTrain:nTrain+nVal]...),
		TestIndices:  append([]int(nil), indices[nTrain+nVal:]...),
	}

	split.XTrain, split.YTrain = takeRows(X, y, split.TrainIndices)
	split.XVal, split.YVal = takeRows(X, y, split.ValIndices)
	split.XTest, split.YTest = takeRows(X, y, split.TestIndices)

	return split, nil
}

// takeRows extracts a row subset of X and y. Indices are copied and sorted
// so partition contents do not depend on shuffle order.
func takeRows(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	rows := len(indices)
	_, xCols := X.Dims()
	_, yCols := y.Dims()

	sortedIndices := make([]int, len(indices))
	copy(sortedIndices, indices)
	sort.Ints(sortedIndices)

	xSubset := mat.NewDense(rows, xCols, nil)
	ySubset := mat.NewDense(rows, yCols, nil)
	for i, idx := range sortedIndices {
		for j := 0; j < xCols; j++ {
			xSubset.Set(i, j, X.At(idx, j))
		}
		for j := 0; j < yCols; j++ {
			ySubset.Set(i, j, y.At(idx, j))
		}
	}
	return xSubset, ySubset
}
