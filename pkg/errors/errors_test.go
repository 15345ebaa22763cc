package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "Fit",
			kind:     "invalid input",
			err:      fmt.Errorf("test error"),
			wantMsg:  "valgap: Fit: invalid input: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "Predict",
			kind:     "not fitted",
			err:      nil,
			wantMsg:  "valgap: Predict: not fitted",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 10, 7, 0)

	want := "valgap: Predict: dimension mismatch on axis 0 (rows). Expected 10, got 7"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var dimErr *DimensionError
	if !As(err, &dimErr) {
		t.Error("Error should be castable to *DimensionError")
	}
	if dimErr.Got != 7 {
		t.Errorf("Got = %d, want 7", dimErr.Got)
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("DecisionTreeRegressor", "Predict")

	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("unexpected message: %v", err.Error())
	}

	var nfErr *NotFittedError
	if !As(err, &nfErr) {
		t.Error("Error should be castable to *NotFittedError")
	}
	if nfErr.ModelName != "DecisionTreeRegressor" {
		t.Errorf("ModelName = %v", nfErr.ModelName)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("nBootstrap", "must be at least 2", 1)

	want := "valgap: validation failed for parameter 'nBootstrap': must be at least 2 (got: 1)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) { captured = w })
	defer SetWarningHandler(func(w error) {})

	warning := NewUndefinedMetricWarning("R2Score", "zero variance in yTrue", 0)
	Warn(warning)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "R2Score") {
		t.Errorf("unexpected warning: %v", captured)
	}
}

func TestSmallSampleWarning(t *testing.T) {
	w := NewSmallSampleWarning("selection.EstimateBiasVariance", 10, 30)
	if !strings.Contains(w.Error(), "only 10 samples") {
		t.Errorf("unexpected message: %v", w.Error())
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("test", []float64{1.0, 2.0, 3.0}, 0); err != nil {
		t.Errorf("stable values flagged: %v", err)
	}

	err := CheckNumericalStability("test", []float64{1.0, nan(), 3.0}, 5)
	if err == nil {
		t.Fatal("NaN not detected")
	}
	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Error("Error should be castable to *NumericalInstabilityError")
	}
	if numErr.Iteration != 5 {
		t.Errorf("Iteration = %d, want 5", numErr.Iteration)
	}
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}
