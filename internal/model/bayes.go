package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/spigell/attrition-report/internal/dataset"
)

// minSigma replaces a zero within-class standard deviation so the Gaussian
// likelihood stays finite. Hitting it is reported as a warning.
const minSigma = 1e-9

// NaiveBayes models per-class attribute likelihoods assuming conditional
// independence given the label. Continuous attributes use a per-class Gaussian
// by default or a kernel density estimate when Kernel is set; categorical
// attributes use level frequencies with an additive Laplace pseudo-count.
// One trainer, three configuration variants.
type NaiveBayes struct {
	ModelName string
	Laplace   float64
	Kernel    bool
	Feats     *dataset.Features

	priors   [2]float64
	gaussian [2][]gaussParam
	kde      [2][]kdeParam
	catLogs  [2][][]float64
	warnings []string
	fitted   bool
}

type gaussParam struct {
	mu, sigma float64
}

type kdeParam struct {
	samples   []float64
	bandwidth float64
}

// NewNaiveBayes returns a Gaussian naive Bayes trainer; set Laplace or Kernel
// before Fit to select a variant.
func NewNaiveBayes(name string, feats *dataset.Features) *NaiveBayes {
	return &NaiveBayes{ModelName: name, Feats: feats}
}

func (m *NaiveBayes) Name() string { return m.ModelName }

// Warnings reports zero-variance attributes found during the last Fit.
func (m *NaiveBayes) Warnings() []string { return m.warnings }

// Fit estimates class priors and per-class attribute likelihoods.
func (m *NaiveBayes) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("bayes: empty training set")
	}
	if len(y) != len(X) {
		return errors.New("bayes: X and y length mismatch")
	}
	if m.Laplace < 0 {
		return fmt.Errorf("bayes: laplace factor %v must be >= 0", m.Laplace)
	}
	p := len(X[0])
	if m.Feats == nil || len(m.Feats.Kinds) != p {
		return errors.New("bayes: feature metadata does not match matrix width")
	}

	byClass := [2][][]float64{}
	for i, row := range X {
		byClass[y[i]] = append(byClass[y[i]], row)
	}
	if len(byClass[0]) == 0 || len(byClass[1]) == 0 {
		return errors.New("bayes: training set misses a class")
	}

	m.warnings = nil
	for c := 0; c < 2; c++ {
		rows := byClass[c]
		m.priors[c] = float64(len(rows)) / float64(len(X))
		m.gaussian[c] = make([]gaussParam, p)
		m.kde[c] = make([]kdeParam, p)
		m.catLogs[c] = make([][]float64, p)

		for j := 0; j < p; j++ {
			col := make([]float64, len(rows))
			for i, row := range rows {
				col[i] = row[j]
			}
			if m.Feats.Kinds[j] == dataset.CategoricalFeature {
				m.catLogs[c][j] = m.fitCategorical(col, m.Feats.Cardinality[j])
				continue
			}
			mu, sigma := stat.MeanStdDev(col, nil)
			if math.IsNaN(sigma) || sigma < minSigma {
				sigma = minSigma
				m.warnings = append(m.warnings,
					fmt.Sprintf("attribute %s has zero variance in class %d", m.Feats.Names[j], c))
			}
			if m.Kernel {
				m.kde[c][j] = kdeParam{samples: col, bandwidth: silverman(sigma, len(col))}
			} else {
				m.gaussian[c][j] = gaussParam{mu: mu, sigma: sigma}
			}
		}
	}
	m.fitted = true
	return nil
}

func (m *NaiveBayes) fitCategorical(col []float64, levels int) []float64 {
	counts := make([]float64, levels)
	for _, v := range col {
		counts[int(v)]++
	}
	total := float64(len(col)) + m.Laplace*float64(levels)
	logs := make([]float64, levels)
	for l := range counts {
		logs[l] = math.Log((counts[l] + m.Laplace) / total)
	}
	return logs
}

// Predict returns the class with the larger posterior per row.
func (m *NaiveBayes) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		if m.logPosterior(1, row) > m.logPosterior(0, row) {
			out[i] = 1
		}
	}
	return out
}

func (m *NaiveBayes) logPosterior(class int, row []float64) float64 {
	score := math.Log(m.priors[class])
	for j, v := range row {
		if m.Feats.Kinds[j] == dataset.CategoricalFeature {
			score += m.catLogs[class][j][int(v)]
			continue
		}
		if m.Kernel {
			score += logKDE(m.kde[class][j], v)
			continue
		}
		g := m.gaussian[class][j]
		score += distuv.Normal{Mu: g.mu, Sigma: g.sigma}.LogProb(v)
	}
	return score
}

func logKDE(k kdeParam, v float64) float64 {
	kernel := distuv.Normal{Sigma: k.bandwidth}
	density := 0.0
	for _, x := range k.samples {
		kernel.Mu = x
		density += kernel.Prob(v)
	}
	density /= float64(len(k.samples))
	if density <= 0 {
		return math.Log(math.SmallestNonzeroFloat64)
	}
	return math.Log(density)
}

// silverman is the rule-of-thumb kernel bandwidth 1.06 * sigma * n^(-1/5).
func silverman(sigma float64, n int) float64 {
	bw := 1.06 * sigma * math.Pow(float64(n), -0.2)
	if bw < minSigma {
		bw = minSigma
	}
	return bw
}
