package model

import (
	"errors"
	"math"
	"math/rand"
	"sync"

	"github.com/spigell/attrition-report/internal/dataset"
)

// Forest is a random-forest classifier: NTrees CART trees, each grown on a
// bootstrap resample with a random sqrt(p) attribute subset per split, voting
// by majority. Each tree seeds its own source with Seed+i, so a fixed Seed
// makes the ensemble reproducible while the trees stay independent enough to
// fit concurrently.
type Forest struct {
	ModelName       string
	NTrees          int
	MinSamplesSplit int
	MaxFeatures     int // 0 picks sqrt(p)
	Seed            int64
	Feats           *dataset.Features

	trees []*Tree
}

// NewForest returns a random-forest trainer with the report defaults.
func NewForest(name string, feats *dataset.Features) *Forest {
	return &Forest{
		ModelName:       name,
		NTrees:          500,
		MinSamplesSplit: 2,
		Feats:           feats,
	}
}

func (f *Forest) Name() string { return f.ModelName }

// Fit grows the ensemble. Tree fits run concurrently; every tree reads only
// X/y and writes only its own slot.
func (f *Forest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("forest: empty training set")
	}
	if len(y) != len(X) {
		return errors.New("forest: X and y length mismatch")
	}
	if f.NTrees <= 0 {
		return errors.New("forest: NTrees must be positive")
	}
	if f.Feats == nil || len(f.Feats.Kinds) != len(X[0]) {
		return errors.New("forest: feature metadata does not match matrix width")
	}
	maxFeatures := f.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(f.Feats.Kinds))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	n := len(X)
	f.trees = make([]*Tree, f.NTrees)
	var wg sync.WaitGroup
	errCh := make(chan error, f.NTrees)
	for i := 0; i < f.NTrees; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(f.Seed + int64(i)))
			sample := make([]int, n)
			for j := range sample {
				sample[j] = rnd.Intn(n)
			}
			tree := &Tree{
				ModelName:       f.ModelName,
				MinSamplesSplit: f.MinSamplesSplit,
				MaxFeatures:     maxFeatures,
				Seed:            f.Seed + int64(i),
				Feats:           f.Feats,
			}
			if err := tree.FitIndices(X, y, sample); err != nil {
				errCh <- err
				return
			}
			f.trees[i] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		return err
	}
	return nil
}

// Predict returns the majority vote across the ensemble, ties to the
// negative class.
func (f *Forest) Predict(X [][]float64) []int {
	votes := make([]int, len(X))
	for _, tree := range f.trees {
		for i, p := range tree.Predict(X) {
			votes[i] += p
		}
	}
	out := make([]int, len(X))
	for i, v := range votes {
		if 2*v > len(f.trees) {
			out[i] = 1
		}
	}
	return out
}

// Importance averages per-attribute impurity reduction across the ensemble.
func (f *Forest) Importance() map[string]float64 {
	out := make(map[string]float64)
	if len(f.trees) == 0 {
		return out
	}
	for _, tree := range f.trees {
		for name, v := range tree.Importance() {
			out[name] += v
		}
	}
	for name := range out {
		out[name] /= float64(len(f.trees))
	}
	return out
}
