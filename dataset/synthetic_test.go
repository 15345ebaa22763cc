package dataset

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGenerateShapes(t *testing.T) {
	cfg := Config{NSamples: 50, NFeatures: 20, NInformative: 3, NoiseStd: 0.5, Seed: 7}

	X, y, coef, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	rows, cols := X.Dims()
	if rows != 50 || cols != 20 {
		t.Errorf("X dims = (%d, %d), want (50, 20)", rows, cols)
	}
	yRows, yCols := y.Dims()
	if yRows != 50 || yCols != 1 {
		t.Errorf("y dims = (%d, %d), want (50, 1)", yRows, yCols)
	}
	if len(coef) != 20 {
		t.Errorf("len(coef) = %d, want 20", len(coef))
	}
}

func TestGenerateInformativeStructure(t *testing.T) {
	cfg := Config{NSamples: 10, NFeatures: 10, NInformative: 4, NoiseStd: 1.0, Seed: 1}

	_, _, coef, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	for j := 0; j < 4; j++ {
		if coef[j] == 0 {
			t.Errorf("informative coefficient %d is zero", j)
		}
		if math.Abs(coef[j]) < 2 || math.Abs(coef[j]) >= 10 {
			t.Errorf("coefficient %d magnitude %v outside [2, 10)", j, coef[j])
		}
	}
	for j := 4; j < 10; j++ {
		if coef[j] != 0 {
			t.Errorf("distractor coefficient %d = %v, want 0", j, coef[j])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{NSamples: 30, NFeatures: 8, NInformative: 2, NoiseStd: 1.0, Seed: 42}

	X1, y1, _, err := Generate(cfg)
	if err != nil {
		t.Fatalf("first Generate() failed: %v", err)
	}
	X2, y2, _, err := Generate(cfg)
	if err != nil {
		t.Fatalf("second Generate() failed: %v", err)
	}

	if !mat.Equal(X1, X2) {
		t.Error("feature matrices differ across runs with the same seed")
	}
	if !mat.Equal(y1, y2) {
		t.Error("targets differ across runs with the same seed")
	}
}

func TestGenerateSeedChangesData(t *testing.T) {
	cfg := Config{NSamples: 30, NFeatures: 8, NInformative: 2, NoiseStd: 1.0, Seed: 1}
	X1, _, _, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	cfg.Seed = 2
	X2, _, _, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if mat.Equal(X1, X2) {
		t.Error("different seeds produced identical feature matrices")
	}
}

func TestGenerateNoiselessTarget(t *testing.T) {
	cfg := Config{NSamples: 25, NFeatures: 6, NInformative: 2, NoiseStd: 0, Seed: 3}

	X, y, coef, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// With zero noise the target is exactly the linear combination.
	for i := 0; i < 25; i++ {
		want := coef[0]*X.At(i, 0) + coef[1]*X.At(i, 1)
		if math.Abs(y.At(i, 0)-want) > 1e-12 {
			t.Fatalf("row %d: y = %v, want %v", i, y.At(i, 0), want)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero samples", Config{NSamples: 0, NFeatures: 5, NInformative: 1}},
		{"zero features", Config{NSamples: 5, NFeatures: 0, NInformative: 0}},
		{"informative above features", Config{NSamples: 5, NFeatures: 3, NInformative: 4}},
		{"negative informative", Config{NSamples: 5, NFeatures: 3, NInformative: -1}},
		{"negative noise", Config{NSamples: 5, NFeatures: 3, NInformative: 1, NoiseStd: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := Generate(tt.cfg); err == nil {
				t.Error("Generate() should reject invalid config")
			}
		})
	}
}
