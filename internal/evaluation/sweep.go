package evaluation

import (
	"fmt"

	"github.com/spigell/attrition-report/internal/model"
)

// KPoint is one entry of the k-sweep error curve.
type KPoint struct {
	K         int
	ErrorRate float64
	Recall    float64
}

// SweepK fits one KNN per k in [from, to] and records its test error rate and
// recall. No elbow detection happens here: a human inspects the curve.
func SweepK(trainX [][]float64, trainY []int, testX [][]float64, testY []int, from, to int) ([]KPoint, error) {
	if from < 1 || to < from {
		return nil, fmt.Errorf("evaluation: invalid k range [%d, %d]", from, to)
	}
	points := make([]KPoint, 0, to-from+1)
	for k := from; k <= to; k++ {
		knn := model.NewKNN(k)
		if err := knn.Fit(trainX, trainY); err != nil {
			return nil, fmt.Errorf("k=%d: %w", k, err)
		}
		res := Evaluate(knn, testX, testY)
		points = append(points, KPoint{
			K:         k,
			ErrorRate: 1 - res.Accuracy,
			Recall:    res.Recall,
		})
	}
	return points, nil
}
