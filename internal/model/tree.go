package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/spigell/attrition-report/internal/dataset"
)

// competitorShare is the fraction of the chosen split's gain a runner-up split
// must reach for its attribute to collect surrogate importance credit.
const competitorShare = 0.8

// Tree is a CART-style classifier grown by recursive binary splitting on
// entropy until MinSamplesSplit stops it. Categorical features split by level
// equality, numeric features by threshold. MaxFeatures > 0 samples a random
// attribute subset per split (used by the forest); with MaxFeatures == 0 the
// tree is fully deterministic.
type Tree struct {
	ModelName       string
	MinSamplesSplit int
	MaxFeatures     int
	Seed            int64
	Feats           *dataset.Features

	root       *treeNode
	nTrain     int
	importance map[string]float64
}

type treeNode struct {
	leaf        bool
	feature     int
	threshold   float64
	categorical bool
	left, right *treeNode

	n      int
	counts [2]int
	pred   int
}

// NewTree returns a decision-tree trainer with the report defaults.
func NewTree(name string, feats *dataset.Features) *Tree {
	return &Tree{
		ModelName:       name,
		MinSamplesSplit: 20,
		Feats:           feats,
	}
}

func (t *Tree) Name() string { return t.ModelName }

// Importance returns per-attribute aggregate impurity reduction, including
// surrogate credit for attributes whose candidate splits came within
// competitorShare of the chosen one.
func (t *Tree) Importance() map[string]float64 {
	out := make(map[string]float64, len(t.importance))
	for k, v := range t.importance {
		out[k] = v
	}
	return out
}

// LeafCount returns the number of terminal nodes.
func (t *Tree) LeafCount() int { return countLeaves(t.root) }

// Fit grows the tree on X and binary labels y.
func (t *Tree) Fit(X [][]float64, y []int) error {
	if len(X) == 0 {
		return errors.New("tree: empty training set")
	}
	if len(y) != len(X) {
		return errors.New("tree: X and y length mismatch")
	}
	p := len(X[0])
	if t.Feats == nil || len(t.Feats.Kinds) != p {
		return errors.New("tree: feature metadata does not match matrix width")
	}
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}

	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	t.nTrain = len(X)
	t.importance = make(map[string]float64)
	rnd := rand.New(rand.NewSource(t.Seed))
	t.root = t.build(X, y, idx, rnd)
	return nil
}

// FitIndices grows the tree on the rows of X at idx, counting duplicates.
// The forest uses it for bootstrap resamples without copying rows.
func (t *Tree) FitIndices(X [][]float64, y []int, idx []int) error {
	if len(idx) == 0 {
		return errors.New("tree: empty training sample")
	}
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}
	t.nTrain = len(idx)
	t.importance = make(map[string]float64)
	rnd := rand.New(rand.NewSource(t.Seed))
	t.root = t.build(X, y, append([]int(nil), idx...), rnd)
	return nil
}

func (t *Tree) build(X [][]float64, y []int, idx []int, rnd *rand.Rand) *treeNode {
	node := &treeNode{n: len(idx)}
	for _, i := range idx {
		node.counts[y[i]]++
	}
	node.pred = argmaxInt(node.counts[:])

	if node.counts[0] == 0 || node.counts[1] == 0 || len(idx) < t.MinSamplesSplit {
		node.leaf = true
		return node
	}

	p := len(t.Feats.Kinds)
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rnd.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	parent := entropy(node.counts)
	var best splitCandidate
	perFeature := make([]splitCandidate, 0, len(features))
	for _, f := range features {
		cand := t.bestSplitForFeature(X, y, idx, f, parent)
		perFeature = append(perFeature, cand)
		if cand.gain > best.gain {
			best = cand
		}
	}
	if best.gain <= 0 {
		node.leaf = true
		return node
	}

	// Importance: size-weighted gain of the chosen split plus surrogate credit
	// for near-competitive attributes that were never chosen here.
	weight := float64(len(idx)) / float64(t.nTrain)
	t.importance[t.Feats.Names[best.feature]] += weight * best.gain
	for _, cand := range perFeature {
		if cand.feature != best.feature && cand.gain >= competitorShare*best.gain {
			t.importance[t.Feats.Names[cand.feature]] += weight * cand.gain
		}
	}

	node.feature = best.feature
	node.threshold = best.threshold
	node.categorical = best.categorical
	node.left = t.build(X, y, best.left, rnd)
	node.right = t.build(X, y, best.right, rnd)
	return node
}

type splitCandidate struct {
	gain        float64
	feature     int
	threshold   float64
	categorical bool
	left, right []int
}

func (t *Tree) bestSplitForFeature(X [][]float64, y []int, idx []int, f int, parent float64) splitCandidate {
	best := splitCandidate{feature: f}
	total := float64(len(idx))

	if t.Feats.Kinds[f] == dataset.CategoricalFeature {
		for level := 0; level < t.Feats.Cardinality[f]; level++ {
			var left, right []int
			var lc, rc [2]int
			for _, i := range idx {
				if int(X[i][f]) == level {
					left = append(left, i)
					lc[y[i]]++
				} else {
					right = append(right, i)
					rc[y[i]]++
				}
			}
			if len(left) == 0 || len(right) == 0 {
				continue
			}
			gain := parent - (float64(len(left))/total)*entropy(lc) - (float64(len(right))/total)*entropy(rc)
			if gain > best.gain {
				best = splitCandidate{gain: gain, feature: f, threshold: float64(level), categorical: true, left: left, right: right}
			}
		}
		return best
	}

	type pair struct {
		v float64
		i int
	}
	vals := make([]pair, len(idx))
	for k, i := range idx {
		vals[k] = pair{X[i][f], i}
	}
	sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })

	// Scan thresholds between distinct adjacent values, shifting class counts
	// left to right instead of recounting.
	var lc, rc [2]int
	for _, pv := range vals {
		rc[y[pv.i]]++
	}
	for s := 1; s < len(vals); s++ {
		lab := y[vals[s-1].i]
		lc[lab]++
		rc[lab]--
		if vals[s].v == vals[s-1].v {
			continue
		}
		gain := parent - (float64(s)/total)*entropy(lc) - (float64(len(vals)-s)/total)*entropy(rc)
		if gain > best.gain {
			best = splitCandidate{
				gain:      gain,
				feature:   f,
				threshold: (vals[s-1].v + vals[s].v) / 2,
			}
			left := make([]int, s)
			right := make([]int, len(vals)-s)
			for k := 0; k < s; k++ {
				left[k] = vals[k].i
			}
			for k := s; k < len(vals); k++ {
				right[k-s] = vals[k].i
			}
			best.left, best.right = left, right
		}
	}
	return best
}

// Predict walks each row down to a leaf.
func (t *Tree) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		node := t.root
		for !node.leaf {
			v := row[node.feature]
			goLeft := v <= node.threshold
			if node.categorical {
				goLeft = v == node.threshold
			}
			if goLeft {
				node = node.left
			} else {
				node = node.right
			}
		}
		out[i] = node.pred
	}
	return out
}

// Prune returns a copy of the tree with every subtree whose cost-complexity
// contribution falls below alpha collapsed into a leaf (weakest-link pruning).
// The receiver is left untouched; the result never has more terminal nodes.
func (t *Tree) Prune(alpha float64) *Tree {
	pruned := &Tree{
		ModelName:       t.ModelName + " (pruned)",
		MinSamplesSplit: t.MinSamplesSplit,
		MaxFeatures:     t.MaxFeatures,
		Seed:            t.Seed,
		Feats:           t.Feats,
		nTrain:          t.nTrain,
		importance:      t.Importance(),
		root:            cloneNode(t.root),
	}
	for pruned.collapseWeakest(alpha) {
	}
	return pruned
}

// collapseWeakest collapses the internal node with the smallest per-leaf error
// increase if that increase is within alpha, reporting whether it pruned.
func (t *Tree) collapseWeakest(alpha float64) bool {
	var weakest *treeNode
	weakestG := math.Inf(1)
	var walk func(n *treeNode)
	walk = func(n *treeNode) {
		if n == nil || n.leaf {
			return
		}
		walk(n.left)
		walk(n.right)
		leaves := countLeaves(n)
		nodeErr := float64(minorityCount(n)) / float64(t.nTrain)
		subErr := float64(subtreeErrors(n)) / float64(t.nTrain)
		g := (nodeErr - subErr) / float64(leaves-1)
		if g < weakestG {
			weakestG = g
			weakest = n
		}
	}
	walk(t.root)
	if weakest == nil || weakestG > alpha {
		return false
	}
	weakest.leaf = true
	weakest.left = nil
	weakest.right = nil
	return true
}

func cloneNode(n *treeNode) *treeNode {
	if n == nil {
		return nil
	}
	c := *n
	c.left = cloneNode(n.left)
	c.right = cloneNode(n.right)
	return &c
}

func countLeaves(n *treeNode) int {
	if n == nil {
		return 0
	}
	if n.leaf {
		return 1
	}
	return countLeaves(n.left) + countLeaves(n.right)
}

func minorityCount(n *treeNode) int {
	return n.n - n.counts[n.pred]
}

func subtreeErrors(n *treeNode) int {
	if n.leaf {
		return minorityCount(n)
	}
	return subtreeErrors(n.left) + subtreeErrors(n.right)
}

func entropy(counts [2]int) float64 {
	n := float64(counts[0] + counts[1])
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		res -= p * math.Log2(p)
	}
	return res
}
