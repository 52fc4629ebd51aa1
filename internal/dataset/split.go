package dataset

import (
	"math/rand"
	"sort"
)

// Split holds the row indexes of a train/test partition. The two sets are
// disjoint and together cover every row of the source dataset.
type Split struct {
	Train []int
	Test  []int
}

// StratifiedSplit partitions the dataset rows into train and test sets while
// preserving the label's class proportions in both. Rows are grouped per label
// value, each stratum is shuffled under the seeded source, and the first
// int(ratio*len + 0.5) rows of each stratum go to train. Identical
// (dataset order, ratio, seed) inputs yield identical partitions.
func StratifiedSplit(d *Dataset, ratio float64, seed int64) (*Split, error) {
	y, err := d.Labels()
	if err != nil {
		return nil, err
	}

	strata := map[int][]int{0: {}, 1: {}}
	for i, c := range y {
		strata[c] = append(strata[c], i)
	}
	for _, level := range []int{1, 0} {
		if len(strata[level]) == 0 {
			return nil, &InsufficientDataError{Stratum: d.Label.Levels[1-level], Rows: 0}
		}
	}

	rnd := rand.New(rand.NewSource(seed))
	split := &Split{}
	// Positive stratum first so the consumed pseudo-random sequence does not
	// depend on map iteration order.
	for _, level := range []int{1, 0} {
		rows := strata[level]
		perm := rnd.Perm(len(rows))
		nTrain := int(ratio*float64(len(rows)) + 0.5)
		for i, p := range perm {
			if i < nTrain {
				split.Train = append(split.Train, rows[p])
			} else {
				split.Test = append(split.Test, rows[p])
			}
		}
	}
	sort.Ints(split.Train)
	sort.Ints(split.Test)
	return split, nil
}
