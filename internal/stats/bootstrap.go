package stats

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
)

// Resample draws trials samples with replacement, each as large as values,
// and returns the mean of every sample. A nil rng uses the global source.
func Resample(values []float64, trials int, rng *rand.Rand) []float64 {
	if len(values) == 0 || trials <= 0 {
		return nil
	}

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	means := make([]float64, trials)
	sample := make([]float64, len(values))
	for i := range means {
		for j := range sample {
			sample[j] = values[intN(len(values))]
		}

		means[i] = stat.Mean(sample, nil)
	}

	return means
}

// Bootstrap trims values, resamples the trimmed sample and describes the
// distribution of the resampled means.
func Bootstrap(values []float64, trials int, rng *rand.Rand) (Band, error) {
	if trials <= 0 {
		return Band{}, fmt.Errorf("bootstrap needs a positive number of trials, got %d", trials)
	}

	trimmed, err := Trim(values)
	if err != nil {
		return Band{}, err
	}

	return Describe(Resample(trimmed, trials, rng)), nil
}
