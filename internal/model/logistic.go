package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Logistic is a binary logistic-regression classifier fitted by full-batch
// gradient descent on the log-likelihood. Weights start at zero, so training
// is deterministic. Failing to converge within MaxIter is a warning, not an
// error: the partially-fitted model still predicts and the run marks it
// degraded.
type Logistic struct {
	ModelName    string
	LearningRate float64
	MaxIter      int
	Tol          float64

	w        *mat.VecDense
	bias     float64
	fitted   bool
	warnings []string
}

// NewLogistic returns a trainer with the defaults used by the report.
func NewLogistic(name string) *Logistic {
	return &Logistic{
		ModelName:    name,
		LearningRate: 0.1,
		MaxIter:      2000,
		Tol:          1e-4,
	}
}

func (m *Logistic) Name() string { return m.ModelName }

// Warnings reports non-fatal conditions from the last Fit.
func (m *Logistic) Warnings() []string { return m.warnings }

// Converged reports whether the last Fit reached the gradient tolerance.
func (m *Logistic) Converged() bool { return m.fitted && len(m.warnings) == 0 }

// Fit trains on X (n x p) and binary labels y.
func (m *Logistic) Fit(X [][]float64, y []int) error {
	n := len(X)
	if n == 0 {
		return errors.New("logistic: empty training set")
	}
	if len(y) != n {
		return errors.New("logistic: X and y length mismatch")
	}
	p := len(X[0])

	Xm := mat.NewDense(n, p, nil)
	for i, row := range X {
		if len(row) != p {
			return errors.New("logistic: ragged feature matrix")
		}
		Xm.SetRow(i, row)
	}
	yv := make([]float64, n)
	for i, lab := range y {
		yv[i] = float64(lab)
	}

	m.w = mat.NewVecDense(p, nil)
	m.bias = 0
	m.warnings = nil
	m.fitted = true

	z := mat.NewVecDense(n, nil)
	resid := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(p, nil)

	converged := false
	for it := 0; it < m.MaxIter; it++ {
		z.MulVec(Xm, m.w)
		biasGrad := 0.0
		for i := 0; i < n; i++ {
			pi := sigmoid(z.AtVec(i) + m.bias)
			r := pi - yv[i]
			resid.SetVec(i, r)
			biasGrad += r
		}
		biasGrad /= float64(n)

		grad.MulVec(Xm.T(), resid)
		grad.ScaleVec(1/float64(n), grad)

		if math.Hypot(mat.Norm(grad, 2), biasGrad) < m.Tol {
			converged = true
			break
		}
		m.w.AddScaledVec(m.w, -m.LearningRate, grad)
		m.bias -= m.LearningRate * biasGrad
	}
	if !converged {
		m.warnings = append(m.warnings,
			fmt.Sprintf("did not converge within %d iterations", m.MaxIter))
	}
	return nil
}

// PredictProba returns p(y=1) per row.
func (m *Logistic) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		s := m.bias
		for j, v := range row {
			s += m.w.AtVec(j) * v
		}
		out[i] = sigmoid(s)
	}
	return out
}

// Predict thresholds PredictProba at 0.5.
func (m *Logistic) Predict(X [][]float64) []int {
	proba := m.PredictProba(X)
	out := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

func sigmoid(z float64) float64 { return 1 / (1 + math.Exp(-z)) }
