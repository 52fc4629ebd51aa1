package evaluation

import (
	"math"
	"testing"
)

func sweepData() ([][]float64, []int, [][]float64, []int) {
	trainX := [][]float64{{0}, {0.05}, {0.1}, {0.15}, {0.85}, {0.9}, {0.95}, {1}}
	trainY := []int{0, 0, 0, 0, 1, 1, 1, 1}
	testX := [][]float64{{0.02}, {0.12}, {0.88}, {0.98}}
	testY := []int{0, 0, 1, 1}
	return trainX, trainY, testX, testY
}

func TestSweepKOnePointPerK(t *testing.T) {
	trainX, trainY, testX, testY := sweepData()

	points, err := SweepK(trainX, trainY, testX, testY, 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 points, got %d", len(points))
	}
	for i, p := range points {
		if p.K != i+1 {
			t.Fatalf("point %d has k=%d", i, p.K)
		}
		if p.ErrorRate < 0 || p.ErrorRate > 1 {
			t.Fatalf("k=%d: error rate %v out of range", p.K, p.ErrorRate)
		}
		if math.IsNaN(p.Recall) || p.Recall < 0 || p.Recall > 1 {
			t.Fatalf("k=%d: recall %v out of range", p.K, p.Recall)
		}
	}

	// Well-separated clusters are easy at small k.
	if points[0].ErrorRate != 0 {
		t.Fatalf("k=1 error rate = %v, want 0", points[0].ErrorRate)
	}
}

func TestSweepKInvalidRange(t *testing.T) {
	trainX, trainY, testX, testY := sweepData()

	if _, err := SweepK(trainX, trainY, testX, testY, 0, 5); err == nil {
		t.Fatalf("expected error for k from 0")
	}
	if _, err := SweepK(trainX, trainY, testX, testY, 5, 3); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	// k exceeding the training size surfaces the fit error.
	if _, err := SweepK(trainX, trainY, testX, testY, 1, len(trainX)+1); err == nil {
		t.Fatalf("expected error when k exceeds training rows")
	}
}
