package evaluation

import "math"

// ConfusionMatrix counts (predicted, actual) pairs for a binary outcome with
// attrition ("Yes", label 1) as the positive class.
type ConfusionMatrix struct {
	TP, FP, FN, TN int
}

// NewConfusionMatrix accumulates the matrix from aligned prediction and
// actual-label vectors.
func NewConfusionMatrix(actual, predicted []int) ConfusionMatrix {
	var cm ConfusionMatrix
	for i := range actual {
		switch {
		case predicted[i] == 1 && actual[i] == 1:
			cm.TP++
		case predicted[i] == 1 && actual[i] == 0:
			cm.FP++
		case predicted[i] == 0 && actual[i] == 1:
			cm.FN++
		default:
			cm.TN++
		}
	}
	return cm
}

// Total returns the number of scored records.
func (cm ConfusionMatrix) Total() int { return cm.TP + cm.FP + cm.FN + cm.TN }

// Accuracy is the fraction of correct predictions.
func (cm ConfusionMatrix) Accuracy() float64 {
	n := cm.Total()
	if n == 0 {
		return math.NaN()
	}
	return float64(cm.TP+cm.TN) / float64(n)
}

// Recall is TP/(TP+FN). With no actual positives the metric is undefined and
// NaN is returned, never zero.
func (cm ConfusionMatrix) Recall() float64 {
	if cm.TP+cm.FN == 0 {
		return math.NaN()
	}
	return float64(cm.TP) / float64(cm.TP+cm.FN)
}

// Specificity is TN/(TN+FP), NaN when there are no actual negatives.
func (cm ConfusionMatrix) Specificity() float64 {
	if cm.TN+cm.FP == 0 {
		return math.NaN()
	}
	return float64(cm.TN) / float64(cm.TN+cm.FP)
}

// NoInformationRate is the accuracy of always predicting the majority class.
func (cm ConfusionMatrix) NoInformationRate() float64 {
	n := cm.Total()
	if n == 0 {
		return math.NaN()
	}
	pos := cm.TP + cm.FN
	neg := cm.TN + cm.FP
	if neg > pos {
		return float64(neg) / float64(n)
	}
	return float64(pos) / float64(n)
}
