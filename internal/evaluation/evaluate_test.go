package evaluation

import (
	"math/rand"
	"testing"

	"github.com/spigell/attrition-report/internal/dataset"
	"github.com/spigell/attrition-report/internal/model"
)

func TestEvaluateWiresMatrixAndRates(t *testing.T) {
	X := [][]float64{{0}, {0.1}, {0.9}, {1}}
	y := []int{0, 0, 1, 1}

	knn := model.NewKNN(1)
	if err := knn.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := Evaluate(knn, X, y)
	if res.Model != knn.Name() {
		t.Fatalf("model name = %q, want %q", res.Model, knn.Name())
	}
	if res.Accuracy != 1 || res.Recall != 1 || res.Specificity != 1 {
		t.Fatalf("expected perfect rates on memorized data: %+v", res)
	}
	if res.Matrix.Total() != len(y) {
		t.Fatalf("matrix covers %d rows, want %d", res.Matrix.Total(), len(y))
	}
	if res.Degraded {
		t.Fatalf("KNN cannot degrade, got warnings %v", res.Warnings)
	}
}

func TestEvaluateMarksDegradedModels(t *testing.T) {
	X := [][]float64{{0}, {0}, {1}, {1}}
	y := []int{0, 0, 1, 1}

	lr := model.NewLogistic("logistic regression")
	lr.MaxIter = 1
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := Evaluate(lr, X, y)
	if !res.Degraded || len(res.Warnings) == 0 {
		t.Fatalf("expected a degraded result after one iteration, got %+v", res)
	}
}

// Naive Bayes with Laplace smoothing must keep a usable recall on an
// imbalanced but separable population. Guards against smoothing or prior
// regressions washing out the minority class.
func TestNaiveBayesLaplaceRecall(t *testing.T) {
	feats := &dataset.Features{
		Names:       []string{"Age", "OverTime"},
		Kinds:       []dataset.FeatureKind{dataset.NumericFeature, dataset.CategoricalFeature},
		Cardinality: []int{0, 2},
	}

	rnd := rand.New(rand.NewSource(3))
	var trainX, testX [][]float64
	var trainY, testY []int
	emit := func(n, label int, meanAge float64, overtime float64, X *[][]float64, y *[]int) {
		for i := 0; i < n; i++ {
			*X = append(*X, []float64{meanAge + rnd.NormFloat64()*2, overtime})
			*y = append(*y, label)
		}
	}
	// Roughly one leaver in six, like the population being modeled.
	emit(20, 1, 26, 1, &trainX, &trainY)
	emit(100, 0, 47, 0, &trainX, &trainY)
	emit(10, 1, 26, 1, &testX, &testY)
	emit(50, 0, 47, 0, &testX, &testY)

	nb := model.NewNaiveBayes("naive bayes (laplace=2)", feats)
	nb.Laplace = 2
	if err := nb.Fit(trainX, trainY); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := Evaluate(nb, testX, testY)
	if res.Recall <= 0.60 {
		t.Fatalf("recall = %v, want > 0.60", res.Recall)
	}
}
