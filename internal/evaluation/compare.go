package evaluation

import "math"

// Best returns the index of the maximum-recall result. Results whose recall is
// undefined (NaN) never win. The second return is false when no result has a
// defined recall. Pure function of its input.
func Best(results []Result) (int, bool) {
	best := -1
	for i, r := range results {
		if math.IsNaN(r.Recall) {
			continue
		}
		if best < 0 || r.Recall > results[best].Recall {
			best = i
		}
	}
	return best, best >= 0
}
