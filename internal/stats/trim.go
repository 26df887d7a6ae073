package stats

import (
	"slices"
)

const (
	smallSampleSize  = 20
	mediumSampleSize = 100

	smallSampleCut  = 2
	mediumSampleCut = 5

	trimPercentile = 95
)

// Trim removes outliers from a price sample. Below 20 values the two
// smallest and largest are dropped, below 100 the five smallest and largest,
// otherwise only values strictly inside the 5th..95th percentile are kept.
// The result is sorted ascending and never empty: a sample the policy would
// consume entirely is reported as *EmptyTrimResultError.
func Trim(values []float64) ([]float64, error) {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var trimmed []float64
	switch n := len(sorted); {
	case n < smallSampleSize:
		trimmed = cut(sorted, smallSampleCut)
	case n < mediumSampleSize:
		trimmed = cut(sorted, mediumSampleCut)
	default:
		upper := percentileSorted(sorted, trimPercentile)
		lower := percentileSorted(sorted, 100-trimPercentile)

		trimmed = make([]float64, 0, n)
		for _, v := range sorted {
			if lower < v && v < upper {
				trimmed = append(trimmed, v)
			}
		}
	}

	if len(trimmed) == 0 {
		return nil, NewEmptyTrimResultError(len(values))
	}

	return trimmed, nil
}

func cut(sorted []float64, count int) []float64 {
	if len(sorted) <= 2*count {
		return nil
	}

	return sorted[count : len(sorted)-count]
}
