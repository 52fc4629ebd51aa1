package model

import (
	"reflect"
	"testing"

	"github.com/spigell/attrition-report/internal/dataset"
)

func mixedFeatures() *dataset.Features {
	return &dataset.Features{
		Names:       []string{"MonthlyIncome", "OverTime"},
		Kinds:       []dataset.FeatureKind{dataset.NumericFeature, dataset.CategoricalFeature},
		Cardinality: []int{0, 2},
	}
}

func mixedTrainingData() ([][]float64, []int) {
	// Class 1 rows earn little and work overtime (level 1); class 0 rows the
	// opposite. Small within-class jitter keeps variances positive.
	X := [][]float64{
		{2000, 1}, {2100, 1}, {1900, 1}, {2050, 0},
		{8000, 0}, {8100, 0}, {7900, 0}, {8050, 1},
	}
	y := []int{1, 1, 1, 1, 0, 0, 0, 0}
	return X, y
}

func TestNaiveBayesGaussian(t *testing.T) {
	X, y := mixedTrainingData()
	m := NewNaiveBayes("naive bayes", mixedFeatures())
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pred := m.Predict([][]float64{{2020, 1}, {7990, 0}})
	if !reflect.DeepEqual(pred, []int{1, 0}) {
		t.Fatalf("unexpected predictions: %v", pred)
	}
}

func TestNaiveBayesLaplace(t *testing.T) {
	// Without smoothing an unseen (class, level) pair zeroes out the
	// posterior; Laplace keeps it finite and the numeric evidence decides.
	X := [][]float64{
		{2000, 1}, {2100, 1}, {1900, 1},
		{8000, 0}, {8100, 0}, {7900, 0},
	}
	y := []int{1, 1, 1, 0, 0, 0}

	m := NewNaiveBayes("naive bayes (laplace=2)", mixedFeatures())
	m.Laplace = 2
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Income says attrition, overtime level was never seen for class 1.
	pred := m.Predict([][]float64{{2000, 0}})
	if pred[0] != 1 {
		t.Fatalf("expected the numeric evidence to win with smoothing, got %v", pred)
	}
}

func TestNaiveBayesKernel(t *testing.T) {
	X, y := mixedTrainingData()
	m := NewNaiveBayes("naive bayes (kernel)", mixedFeatures())
	m.Kernel = true
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pred := m.Predict([][]float64{{2020, 1}, {7990, 0}})
	if !reflect.DeepEqual(pred, []int{1, 0}) {
		t.Fatalf("unexpected predictions: %v", pred)
	}
}

func TestNaiveBayesZeroVarianceWarning(t *testing.T) {
	feats := &dataset.Features{
		Names:       []string{"Constant"},
		Kinds:       []dataset.FeatureKind{dataset.NumericFeature},
		Cardinality: []int{0},
	}
	X := [][]float64{{5}, {5}, {5}, {5}}
	y := []int{0, 0, 1, 1}

	m := NewNaiveBayes("naive bayes", feats)
	if err := m.Fit(X, y); err != nil {
		t.Fatalf("zero variance must not be an error: %v", err)
	}
	if len(m.Warnings()) == 0 {
		t.Fatalf("expected zero-variance warnings")
	}
	if got := m.Predict(X); len(got) != 4 {
		t.Fatalf("expected predictions from the degraded model")
	}
}

func TestNaiveBayesValidation(t *testing.T) {
	m := NewNaiveBayes("naive bayes", mixedFeatures())
	if err := m.Fit(nil, nil); err == nil {
		t.Fatalf("expected error for empty training set")
	}

	m = NewNaiveBayes("naive bayes", mixedFeatures())
	m.Laplace = -1
	X, y := mixedTrainingData()
	if err := m.Fit(X, y); err == nil {
		t.Fatalf("expected error for negative laplace factor")
	}

	m = NewNaiveBayes("naive bayes", mixedFeatures())
	if err := m.Fit([][]float64{{1, 0}, {2, 1}}, []int{0, 0}); err == nil {
		t.Fatalf("expected error when a class is missing")
	}
}
