package evaluation

import (
	"github.com/spigell/attrition-report/internal/model"
)

// Result is the evaluation of one fitted model on the held-out set.
type Result struct {
	Model       string
	Matrix      ConfusionMatrix
	Accuracy    float64
	Recall      float64
	Specificity float64
	NIR         float64
	// Degraded marks models that finished training with warnings (failed
	// convergence, zero-variance attributes). Their numbers are still real.
	Degraded bool
	Warnings []string
}

// Evaluate applies a fitted classifier to the test rows and derives the
// confusion matrix and its scalar rates.
func Evaluate(c model.Classifier, X [][]float64, y []int) Result {
	cm := NewConfusionMatrix(y, c.Predict(X))
	res := Result{
		Model:       c.Name(),
		Matrix:      cm,
		Accuracy:    cm.Accuracy(),
		Recall:      cm.Recall(),
		Specificity: cm.Specificity(),
		NIR:         cm.NoInformationRate(),
	}
	if w, ok := c.(model.Warner); ok {
		res.Warnings = w.Warnings()
		res.Degraded = len(res.Warnings) > 0
	}
	return res
}
