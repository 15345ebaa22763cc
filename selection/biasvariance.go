// Package selection implements the hyperparameter sweep and the two model
// selection criteria compared by the experiment: raw validation score and
// bootstrap-estimated bias² + variance.
package selection

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/valgap/core/model"
	"github.com/YuminosukeSato/valgap/core/parallel"
	"github.com/YuminosukeSato/valgap/pkg/errors"
)

// BiasVariance is the decomposition of expected prediction error estimated
// over bootstrap resamples. Bias² measures how far the average prediction
// sits from the target; variance measures how much individual resample fits
// disagree with that average.
type BiasVariance struct {
	Bias2    float64
	Variance float64
}

// Total returns bias² + variance, the quantity minimized during selection.
func (bv BiasVariance) Total() float64 {
	return bv.Bias2 + bv.Variance
}

// minTrainSamples is the size below which bootstrap estimates get noisy
// enough to warn about.
const minTrainSamples = 30

// EstimateBiasVariance fits one model per bootstrap resample of the training
// rows and decomposes the prediction error on the eval rows. newModel must
// return a fresh, unfitted model on every call. Resamples are fitted in
// parallel; each draws from its own seed-derived stream, so the result does
// not depend on scheduling.
func EstimateBiasVariance(newModel func() model.Regressor, XTrain, yTrain, XEval, yEval mat.Matrix,
	nBootstrap int, seed int64) (BiasVariance, error) {

	if newModel == nil {
		return BiasVariance{}, errors.NewValidationError("newModel", "must not be nil", nil)
	}
	if nBootstrap < 2 {
		return BiasVariance{}, errors.NewValidationError("nBootstrap", "must be at least 2", nBootstrap)
	}

	nTrain, trainCols := XTrain.Dims()
	yTrainRows, _ := yTrain.Dims()
	nEval, evalCols := XEval.Dims()
	yEvalRows, _ := yEval.Dims()

	if nTrain == 0 || nEval == 0 {
		return BiasVariance{}, errors.NewModelError("selection.EstimateBiasVariance", "empty data", errors.ErrEmptyData)
	}
	if yTrainRows != nTrain {
		return BiasVariance{}, errors.NewDimensionError("selection.EstimateBiasVariance", nTrain, yTrainRows, 0)
	}
	if yEvalRows != nEval {
		return BiasVariance{}, errors.NewDimensionError("selection.EstimateBiasVariance", nEval, yEvalRows, 0)
	}
	if trainCols != evalCols {
		return BiasVariance{}, errors.NewDimensionError("selection.EstimateBiasVariance", trainCols, evalCols, 1)
	}
	if nTrain < minTrainSamples {
		errors.Warn(errors.NewSmallSampleWarning("selection.EstimateBiasVariance", nTrain, minTrainSamples))
	}

	preds := make([][]float64, nBootstrap)
	errs := make([]error, nBootstrap)

	parallel.ForWithThreshold(nBootstrap, 1, func(start, end int) {
		for b := start; b < end; b++ {
			preds[b], errs[b] = fitResample(newModel, XTrain, yTrain, XEval, b, seed)
		}
	})

	for _, err := range errs {
		if err != nil {
			return BiasVariance{}, err
		}
	}

	// Per-point decomposition, averaged over the eval rows.
	var bias2, variance float64
	for j := 0; j < nEval; j++ {
		var meanPred float64
		for b := 0; b < nBootstrap; b++ {
			meanPred += preds[b][j]
		}
		meanPred /= float64(nBootstrap)

		diff := meanPred - yEval.At(j, 0)
		bias2 += diff * diff

		var spread float64
		for b := 0; b < nBootstrap; b++ {
			d := preds[b][j] - meanPred
			spread += d * d
		}
		variance += spread / float64(nBootstrap)
	}
	bias2 /= float64(nEval)
	variance /= float64(nEval)

	if err := errors.CheckNumericalStability("selection.EstimateBiasVariance", []float64{bias2, variance}, 0); err != nil {
		return BiasVariance{}, err
	}

	return BiasVariance{Bias2: bias2, Variance: variance}, nil
}

// fitResample draws one bootstrap resample, fits a fresh model on it and
// predicts the eval rows. Panics from the model are converted to errors so
// a bad fit cannot take down the worker pool.
func fitResample(newModel func() model.Regressor, XTrain, yTrain, XEval mat.Matrix,
	b int, seed int64) (pred []float64, err error) {

	defer errors.Recover(&err, "selection.fitResample")

	nTrain, cols := XTrain.Dims()
	nEval, _ := XEval.Dims()

	// Stream b+1 keeps resamples independent of each other and of the
	// caller's other uses of seed.
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(b)+1))

	xb := mat.NewDense(nTrain, cols, nil)
	yb := mat.NewDense(nTrain, 1, nil)
	for i := 0; i < nTrain; i++ {
		idx := rng.IntN(nTrain)
		for j := 0; j < cols; j++ {
			xb.Set(i, j, XTrain.At(idx, j))
		}
		yb.Set(i, 0, yTrain.At(idx, 0))
	}

	m := newModel()
	if err := m.Fit(xb, yb); err != nil {
		return nil, errors.Wrapf(err, "bootstrap resample %d", b)
	}
	out, err := m.Predict(XEval)
	if err != nil {
		return nil, errors.Wrapf(err, "bootstrap resample %d", b)
	}

	pred = make([]float64, nEval)
	for j := 0; j < nEval; j++ {
		pred[j] = out.At(j, 0)
	}
	return pred, nil
}
