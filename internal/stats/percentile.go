package stats

import (
	"math"
	"slices"
)

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between the closest ranks. NaN for an empty sample.
func Percentile(values []float64, p float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))

	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}

// Band is the 5th, 50th and 95th percentile of a distribution.
type Band struct {
	Lower float64
	Mean  float64
	Upper float64
}

func Describe(values []float64) Band {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	return Band{
		Lower: percentileSorted(sorted, 5),
		Mean:  percentileSorted(sorted, 50),
		Upper: percentileSorted(sorted, 95),
	}
}
