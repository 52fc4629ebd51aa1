package evaluation

import (
	"math"
	"testing"
)

func TestConfusionMatrixCounts(t *testing.T) {
	actual := []int{1, 1, 1, 0, 0, 0, 0, 0}
	predicted := []int{1, 1, 0, 1, 0, 0, 0, 0}

	cm := NewConfusionMatrix(actual, predicted)
	if cm.TP != 2 || cm.FN != 1 || cm.FP != 1 || cm.TN != 4 {
		t.Fatalf("unexpected matrix: %+v", cm)
	}
	if cm.Total() != len(actual) {
		t.Fatalf("cell counts do not sum to the scored set: %d != %d", cm.Total(), len(actual))
	}
	if got, want := cm.Accuracy(), 6.0/8.0; got != want {
		t.Fatalf("accuracy = %v, want %v", got, want)
	}
	if got, want := cm.Recall(), 2.0/3.0; got != want {
		t.Fatalf("recall = %v, want %v", got, want)
	}
	if got, want := cm.Specificity(), 4.0/5.0; got != want {
		t.Fatalf("specificity = %v, want %v", got, want)
	}
}

func TestConfusionMatrixUndefinedRates(t *testing.T) {
	// No actual positives: recall is undefined, not zero.
	cm := NewConfusionMatrix([]int{0, 0, 0}, []int{0, 1, 0})
	if !math.IsNaN(cm.Recall()) {
		t.Fatalf("expected NaN recall without actual positives, got %v", cm.Recall())
	}
	if math.IsNaN(cm.Specificity()) {
		t.Fatalf("specificity should still be defined: %v", cm.Specificity())
	}

	// No actual negatives: specificity is undefined.
	cm = NewConfusionMatrix([]int{1, 1}, []int{1, 0})
	if !math.IsNaN(cm.Specificity()) {
		t.Fatalf("expected NaN specificity without actual negatives, got %v", cm.Specificity())
	}

	empty := ConfusionMatrix{}
	if !math.IsNaN(empty.Accuracy()) || !math.IsNaN(empty.NoInformationRate()) {
		t.Fatalf("expected NaN rates for an empty matrix")
	}
}

func TestNoInformationRate(t *testing.T) {
	// 3 positives, 7 negatives: always guessing "No" scores 0.7.
	cm := NewConfusionMatrix(
		[]int{1, 1, 1, 0, 0, 0, 0, 0, 0, 0},
		[]int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	)
	if got := cm.NoInformationRate(); got != 0.7 {
		t.Fatalf("NIR = %v, want 0.7", got)
	}
}
