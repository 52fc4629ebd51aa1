package model

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
)

// KNN classifies a query by majority vote among its K nearest training points
// under Euclidean distance. Callers are expected to feed it one-hot expanded,
// min-max normalized features so every attribute contributes on the same
// scale. Fit only stores the training data.
type KNN struct {
	K int

	x [][]float64
	y []int
}

// NewKNN returns a k-nearest-neighbors classifier.
func NewKNN(k int) *KNN { return &KNN{K: k} }

func (m *KNN) Name() string { return fmt.Sprintf("knn (k=%d)", m.K) }

// Fit stores the training data.
func (m *KNN) Fit(X [][]float64, y []int) error {
	if m.K <= 0 {
		return fmt.Errorf("knn: k must be positive, got %d", m.K)
	}
	if len(X) == 0 {
		return errors.New("knn: empty training set")
	}
	if len(X) != len(y) {
		return errors.New("knn: X and y length mismatch")
	}
	if m.K > len(X) {
		return fmt.Errorf("knn: k=%d exceeds %d training rows", m.K, len(X))
	}
	m.x = X
	m.y = y
	return nil
}

// Predict votes among the K nearest neighbors of each row. A tied vote is
// broken by the label of the single nearest neighbor.
func (m *KNN) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	if len(X) == 0 {
		return out
	}

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0)
	perWorker := (len(X) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := min(start+perWorker, len(X))
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				out[i] = m.predictSingle(X[i])
			}
		}(start, end)
	}
	wg.Wait()
	return out
}

func (m *KNN) predictSingle(xi []float64) int {
	type neighbor struct {
		d   float64
		lab int
	}

	// Small sorted list of the K nearest seen so far.
	nbrs := make([]neighbor, 0, m.K+1)
	for j, xj := range m.x {
		d := euclidSquared(xi, xj)
		if len(nbrs) < m.K {
			nbrs = append(nbrs, neighbor{d, m.y[j]})
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		} else if d < nbrs[len(nbrs)-1].d {
			nbrs[len(nbrs)-1] = neighbor{d, m.y[j]}
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		}
	}

	votes := [2]int{}
	for _, nb := range nbrs {
		votes[nb.lab]++
	}
	if votes[0] == votes[1] {
		return nbrs[0].lab
	}
	if votes[1] > votes[0] {
		return 1
	}
	return 0
}

// euclidSquared keeps the comparison monotone without the square root.
func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
