package drill

import (
	"fmt"
	"math"
	"sort"
)

// WeightedChoice picks one of ids with probability proportional to its weight.
// u must be uniform in [0, 1); it is scaled to [0, total) and located in the
// cumulative distribution of weights.
func WeightedChoice(ids []int, weights []float64, u float64) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyPool
	}
	if len(ids) != len(weights) {
		return 0, fmt.Errorf("drill: %d ids but %d weights", len(ids), len(weights))
	}

	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return 0, fmt.Errorf("%w: card %d has weight %v", ErrDegenerateWeights, ids[i], w)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return 0, fmt.Errorf("%w: total %v", ErrDegenerateWeights, total)
	}

	target := u * total
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > target })
	if i == len(cum) {
		// Rounding put target at total; fall back to the last bucket with weight.
		i = len(cum) - 1
		for i > 0 && weights[i] == 0 {
			i--
		}
	}
	return ids[i], nil
}
