package model

// Classifier is the fit/predict contract every trainer implements. Labels are
// ints with 1 as the positive class. A fitted classifier is never mutated by
// Predict, so the evaluator can reuse it freely.
type Classifier interface {
	Name() string
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) []int
}

// Warner is implemented by classifiers that can finish training in a degraded
// state (failed convergence, zero-variance attributes). Warnings never abort
// a run; the results are produced and marked.
type Warner interface {
	Warnings() []string
}

// Importancer is implemented by tree-based classifiers exposing per-attribute
// importance scores keyed by feature name.
type Importancer interface {
	Importance() map[string]float64
}

func argmaxInt(counts []int) int {
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return best
}
