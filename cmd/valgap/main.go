// Command valgap runs the validation/test divergence experiment end to end:
// generate synthetic data, split it, sweep tree hyperparameters under two
// selection criteria, then compare the winners on the held-out test set.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/valgap/dataset"
	"github.com/YuminosukeSato/valgap/metrics"
	"github.com/YuminosukeSato/valgap/pkg/errors"
	"github.com/YuminosukeSato/valgap/pkg/log"
	"github.com/YuminosukeSato/valgap/report"
	"github.com/YuminosukeSato/valgap/selection"
	"github.com/YuminosukeSato/valgap/tree"
)

func main() {
	seed := flag.Int64("seed", 42, "random seed for the whole experiment")
	samples := flag.Int("samples", 1000, "number of synthetic samples")
	features := flag.Int("features", 100, "number of feature columns")
	informative := flag.Int("informative", 5, "number of informative features")
	noise := flag.Float64("noise", 1.0, "target noise standard deviation")
	bootstrap := flag.Int("bootstrap", 50, "bootstrap resamples for bias/variance")
	out := flag.String("out", ".", "directory for the output plots")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.LevelDebug)
	} else {
		log.SetLevel(log.LevelWarn)
	}

	// Route library warnings through zerolog so structured warning types
	// keep their fields.
	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(w error) {
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			zl.Warn().EmbedObject(obj).Msg("library warning")
			return
		}
		zl.Warn().Err(w).Msg("library warning")
	})

	if err := run(*seed, *samples, *features, *informative, *noise, *bootstrap, *out); err != nil {
		logger := log.GetLoggerWithName("valgap")
		logger.Error("Experiment failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run(seed int64, samples, features, informative int, noise float64, bootstrap int, out string) error {
	logger := log.GetLoggerWithName("valgap")

	fmt.Println("=== Why a great validation score can lie ===")
	fmt.Println()
	fmt.Println("We generate data where only a few columns carry signal, then select")
	fmt.Println("a regression tree two ways: by maximizing the validation score, and")
	fmt.Println("by minimizing bootstrap-estimated bias²+variance. The test set stays")
	fmt.Println("untouched until the very end.")

	// --- Data ---------------------------------------------------------
	cfg := dataset.Config{
		NSamples:     samples,
		NFeatures:    features,
		NInformative: informative,
		NoiseStd:     noise,
		Seed:         seed,
	}
	X, y, coef, err := dataset.Generate(cfg)
	if err != nil {
		return err
	}
	logger.Info("Data generated",
		log.PhaseKey, "generate",
		log.SamplesKey, cfg.NSamples,
		log.FeaturesKey, cfg.NFeatures,
		log.SeedKey, cfg.Seed,
	)

	split, err := dataset.TrainValTestSplit(X, y, 0.5, 0.25, seed)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("--- Dataset ---")
	fmt.Printf("%d samples, %d features (%d informative, %d pure noise), noise σ=%.2f\n",
		cfg.NSamples, cfg.NFeatures, cfg.NInformative, cfg.NFeatures-cfg.NInformative, cfg.NoiseStd)
	fmt.Printf("Split: %d train / %d validation / %d test\n",
		len(split.TrainIndices), len(split.ValIndices), len(split.TestIndices))

	// --- Sweep --------------------------------------------------------
	gs := selection.NewGridSearch()
	gs.Seed = seed
	gs.NBootstrap = bootstrap

	result, err := gs.Run(split.XTrain, split.YTrain, split.XVal, split.YVal)
	if err != nil {
		return err
	}

	valWinner := result.ValidationWinner()
	bvWinner := result.BiasVarianceWinner()

	fmt.Println()
	fmt.Println("--- Hyperparameter sweep ---")
	fmt.Printf("Candidates evaluated: %d (coarse grid + refinement)\n", len(result.Records))
	fmt.Printf("Winner by validation score:  depth=%d, min_samples_leaf=%d (val R²=%.4f)\n",
		valWinner.MaxDepth, valWinner.MinSamplesLeaf, valWinner.ValidationScore)
	fmt.Printf("Winner by bias²+variance:    depth=%d, min_samples_leaf=%d (bias²=%.4f, var=%.4f)\n",
		bvWinner.MaxDepth, bvWinner.MinSamplesLeaf, bvWinner.Bias2, bvWinner.Variance)

	// --- Final evaluation: test set is opened here, not before --------
	valModel, err := fitWinner(valWinner, split.XTrain, split.YTrain, seed)
	if err != nil {
		return err
	}
	bvModel, err := fitWinner(bvWinner, split.XTrain, split.YTrain, seed)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("--- Test-set reckoning ---")
	fmt.Printf("%-28s %-14s %-14s %-10s %-10s\n", "strategy", "validation R²", "test R²", "gap", "test MSE")
	fmt.Println("--------------------------------------------------------------------------------")
	if err := printScores("maximize validation", valModel, valWinner.ValidationScore, split); err != nil {
		return err
	}
	if err := printScores("minimize bias²+variance", bvModel, bvWinner.ValidationScore, split); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("The validation-maximizing model was chosen precisely because it looked")
	fmt.Println("good on the validation set; part of that score was luck, and the luck")
	fmt.Println("does not transfer to the test set.")

	// --- Feature importances -------------------------------------------
	fmt.Println()
	fmt.Println("--- Feature importances ---")
	printImportances("maximize validation", valModel, coef, informative)
	printImportances("minimize bias²+variance", bvModel, coef, informative)

	// --- Plots ----------------------------------------------------------
	sweepPath := filepath.Join(out, "sweep.png")
	if err := report.SaveSweepPlot(sweepPath, result.Records); err != nil {
		return err
	}
	importancePath := filepath.Join(out, "importances.png")
	if err := report.SaveImportancePlot(importancePath,
		valModel.FeatureImportances(), bvModel.FeatureImportances(),
		"max validation", "min bias²+variance"); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Plots written: %s, %s\n", sweepPath, importancePath)
	return nil
}

// fitWinner refits a winning candidate on the training partition.
func fitWinner(rec selection.Record, XTrain, yTrain mat.Matrix, seed int64) (*tree.DecisionTreeRegressor, error) {
	m := tree.NewDecisionTreeRegressor(
		tree.WithMaxDepth(rec.MaxDepth),
		tree.WithMinSamplesLeaf(rec.MinSamplesLeaf),
		tree.WithRandomState(int(seed)),
	)
	if err := m.Fit(XTrain, yTrain); err != nil {
		return nil, err
	}
	return m, nil
}

func printScores(name string, m *tree.DecisionTreeRegressor, valScore float64, split *dataset.Split) error {
	testScore, err := m.Score(split.XTest, split.YTest)
	if err != nil {
		return err
	}
	pred, err := m.Predict(split.XTest)
	if err != nil {
		return err
	}
	testMSE, err := metrics.MSEMatrix(split.YTest, pred)
	if err != nil {
		return err
	}
	fmt.Printf("%-28s %-14.4f %-14.4f %-+10.4f %-10.4f\n", name, valScore, testScore, testScore-valScore, testMSE)
	return nil
}

// printImportances lists the ten most important features, tagging each as
// signal or noise against the generator's ground truth.
func printImportances(name string, m *tree.DecisionTreeRegressor, coef []float64, informative int) {
	imps := m.FeatureImportances()

	order := make([]int, len(imps))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return imps[order[a]] > imps[order[b]]
	})

	var signalMass float64
	for j := 0; j < informative; j++ {
		signalMass += imps[j]
	}

	fmt.Printf("\n%s (importance mass on true signal: %.1f%%)\n", name, signalMass*100)
	fmt.Printf("%-10s %-12s %-10s %s\n", "feature", "importance", "kind", "true coefficient")
	for _, j := range order[:min(10, len(order))] {
		kind := "noise"
		if j < informative {
			kind = "signal"
		}
		fmt.Printf("x%-9d %-12.4f %-10s %+.3f\n", j, imps[j], kind, coef[j])
	}
}
