package selection

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/valgap/core/model"
	"github.com/YuminosukeSato/valgap/pkg/errors"
	"github.com/YuminosukeSato/valgap/pkg/log"
	"github.com/YuminosukeSato/valgap/tree"
)

// Candidate is one point of the hyperparameter grid.
type Candidate struct {
	MaxDepth       int
	MinSamplesLeaf int
}

// NewModel returns a factory producing fresh trees for this candidate.
func (c Candidate) NewModel(seed int64) func() model.Regressor {
	return func() model.Regressor {
		return tree.NewDecisionTreeRegressor(
			tree.WithMaxDepth(c.MaxDepth),
			tree.WithMinSamplesLeaf(c.MinSamplesLeaf),
			tree.WithRandomState(int(seed)),
		)
	}
}

// Record holds everything measured for one candidate during the sweep. The
// test partition never contributes to any of these fields.
type Record struct {
	Candidate
	ValidationScore float64
	Bias2           float64
	Variance        float64
}

// BiasVarianceTotal returns the bias²+variance criterion value.
func (r Record) BiasVarianceTotal() float64 {
	return r.Bias2 + r.Variance
}

// SweepResult is the outcome of a grid sweep: every evaluated candidate plus
// the index of the winner under each criterion.
type SweepResult struct {
	Records            []Record
	BestByValidation   int
	BestByBiasVariance int
}

// ValidationWinner returns the record chosen by maximizing validation score.
func (sr *SweepResult) ValidationWinner() Record {
	return sr.Records[sr.BestByValidation]
}

// BiasVarianceWinner returns the record chosen by minimizing bias²+variance.
func (sr *SweepResult) BiasVarianceWinner() Record {
	return sr.Records[sr.BestByBiasVariance]
}

// GridSearch is a brute-force sweep over tree depth × leaf size, followed by
// one refinement pass on the unit-step neighborhood of each criterion's
// incumbent.
type GridSearch struct {
	// MaxDepths and MinSamplesLeaves span the coarse grid.
	MaxDepths        []int
	MinSamplesLeaves []int

	// NBootstrap is the resample count for the bias/variance estimate.
	NBootstrap int

	// Seed drives every randomized step of the sweep.
	Seed int64

	// Refine enables the neighborhood pass around the incumbents.
	Refine bool
}

// NewGridSearch returns a sweep with the canonical experiment grid.
func NewGridSearch() *GridSearch {
	return &GridSearch{
		MaxDepths:        []int{2, 4, 6, 8, 10, 12, 15},
		MinSamplesLeaves: []int{1, 2, 5, 10, 20, 50},
		NBootstrap:       50,
		Seed:             42,
		Refine:           true,
	}
}

func (gs *GridSearch) validate() error {
	if len(gs.MaxDepths) == 0 {
		return errors.NewValidationError("MaxDepths", "must not be empty", gs.MaxDepths)
	}
	if len(gs.MinSamplesLeaves) == 0 {
		return errors.NewValidationError("MinSamplesLeaves", "must not be empty", gs.MinSamplesLeaves)
	}
	for _, d := range gs.MaxDepths {
		if d < 1 {
			return errors.NewValidationError("MaxDepths", "depths must be at least 1", d)
		}
	}
	for _, l := range gs.MinSamplesLeaves {
		if l < 1 {
			return errors.NewValidationError("MinSamplesLeaves", "leaf sizes must be at least 1", l)
		}
	}
	if gs.NBootstrap < 2 {
		return errors.NewValidationError("NBootstrap", "must be at least 2", gs.NBootstrap)
	}
	return nil
}

// Run sweeps the grid using only the train and validation partitions.
// Candidates are evaluated in deterministic order; re-running with the same
// inputs reproduces the same records and the same winners.
func (gs *GridSearch) Run(XTrain, yTrain, XVal, yVal mat.Matrix) (*SweepResult, error) {
	if err := gs.validate(); err != nil {
		return nil, err
	}

	nTrain, _ := XTrain.Dims()
	logger := log.GetLoggerWithName("selection")
	start := time.Now()
	logger.Info("Sweep started",
		log.OperationKey, "grid_search",
		log.SamplesKey, nTrain,
		log.CandidatesKey, len(gs.MaxDepths)*len(gs.MinSamplesLeaves),
		log.BootstrapsKey, gs.NBootstrap,
		log.SeedKey, gs.Seed,
	)

	result := &SweepResult{}
	seen := make(map[Candidate]bool)

	// Coarse grid.
	for _, depth := range gs.MaxDepths {
		for _, leaf := range gs.MinSamplesLeaves {
			cand := Candidate{MaxDepth: depth, MinSamplesLeaf: leaf}
			if err := gs.evaluate(cand, XTrain, yTrain, XVal, yVal, seen, result); err != nil {
				return nil, err
			}
		}
	}
	gs.pickWinners(result)

	// Refinement pass: probe the unit-step neighborhood of each incumbent.
	if gs.Refine {
		incumbents := []Record{result.ValidationWinner(), result.BiasVarianceWinner()}
		for _, inc := range incumbents {
			for _, depth := range []int{inc.MaxDepth - 1, inc.MaxDepth, inc.MaxDepth + 1} {
				for _, leaf := range []int{inc.MinSamplesLeaf - 1, inc.MinSamplesLeaf, inc.MinSamplesLeaf + 1} {
					if depth < 1 || leaf < 1 {
						continue
					}
					cand := Candidate{MaxDepth: depth, MinSamplesLeaf: leaf}
					if err := gs.evaluate(cand, XTrain, yTrain, XVal, yVal, seen, result); err != nil {
						return nil, err
					}
				}
			}
		}
		gs.pickWinners(result)
	}

	logger.Info("Sweep finished",
		log.OperationKey, "grid_search",
		log.CandidatesKey, len(result.Records),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return result, nil
}

// evaluate measures one candidate under both criteria and appends a record.
// Already-seen candidates are skipped so the refinement pass cannot
// duplicate grid points.
func (gs *GridSearch) evaluate(cand Candidate, XTrain, yTrain, XVal, yVal mat.Matrix,
	seen map[Candidate]bool, result *SweepResult) error {

	if seen[cand] {
		return nil
	}
	seen[cand] = true

	factory := cand.NewModel(gs.Seed)

	m := factory()
	if err := m.Fit(XTrain, yTrain); err != nil {
		return errors.Wrapf(err, "candidate depth=%d leaf=%d", cand.MaxDepth, cand.MinSamplesLeaf)
	}
	valScore, err := m.Score(XVal, yVal)
	if err != nil {
		return errors.Wrapf(err, "candidate depth=%d leaf=%d", cand.MaxDepth, cand.MinSamplesLeaf)
	}
	if err := errors.CheckScalar("grid_search.validation_score", valScore, len(result.Records)); err != nil {
		return err
	}

	// Each candidate draws its bootstrap streams from a value-derived seed
	// so refinement order cannot change its estimate.
	candSeed := gs.Seed + int64(cand.MaxDepth)*1009 + int64(cand.MinSamplesLeaf)*9176
	bv, err := EstimateBiasVariance(factory, XTrain, yTrain, XVal, yVal, gs.NBootstrap, candSeed)
	if err != nil {
		return errors.Wrapf(err, "candidate depth=%d leaf=%d", cand.MaxDepth, cand.MinSamplesLeaf)
	}

	result.Records = append(result.Records, Record{
		Candidate:       cand,
		ValidationScore: valScore,
		Bias2:           bv.Bias2,
		Variance:        bv.Variance,
	})
	return nil
}

// pickWinners recomputes both winner indices. Ties break toward the earlier
// record, which the deterministic evaluation order makes stable.
func (gs *GridSearch) pickWinners(result *SweepResult) {
	bestVal, bestBV := 0, 0
	for i, rec := range result.Records {
		if rec.ValidationScore > result.Records[bestVal].ValidationScore {
			bestVal = i
		}
		if rec.BiasVarianceTotal() < result.Records[bestBV].BiasVarianceTotal() {
			bestBV = i
		}
	}
	result.BestByValidation = bestVal
	result.BestByBiasVariance = bestBV
}
