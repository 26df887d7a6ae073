package stats

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	values := []float64{4, 1, 3, 2}

	assert.InDelta(t, 1.15, Percentile(values, 5), 1e-9)
	assert.InDelta(t, 2.5, Percentile(values, 50), 1e-9)
	assert.InDelta(t, 3.85, Percentile(values, 95), 1e-9)
	assert.Equal(t, 1.0, Percentile(values, 0))
	assert.Equal(t, 4.0, Percentile(values, 100))
	assert.True(t, math.IsNaN(Percentile(nil, 50)))
}

func TestResample_LengthAndRange(t *testing.T) {
	values := []float64{1200, 1850, 2100, 2400, 3100, 3300}
	rng := rand.New(rand.NewPCG(3, 4))

	means := Resample(values, 500, rng)

	require.Len(t, means, 500)
	lo, hi := slices.Min(values), slices.Max(values)
	for _, m := range means {
		assert.GreaterOrEqual(t, m, lo)
		assert.LessOrEqual(t, m, hi)
	}
}

func TestResample_UnseededStillInRange(t *testing.T) {
	values := []float64{10, 20, 30}

	means := Resample(values, 50, nil)

	require.Len(t, means, 50)
	for _, m := range means {
		assert.GreaterOrEqual(t, m, 10.0)
		assert.LessOrEqual(t, m, 30.0)
	}
}

func TestResample_Empty(t *testing.T) {
	assert.Empty(t, Resample(nil, 100, nil))
	assert.Empty(t, Resample([]float64{1}, 0, nil))
}

func TestBootstrap_BandOrdering(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	values := make([]float64, 60)
	for i := range values {
		values[i] = 2000 + rng.Float64()*2000
	}

	band, err := Bootstrap(values, 1000, rng)

	require.NoError(t, err)
	assert.LessOrEqual(t, band.Lower, band.Mean)
	assert.LessOrEqual(t, band.Mean, band.Upper)
	assert.InDelta(t, 3000, band.Mean, 300)
}

func TestBootstrap_PropagatesTrimError(t *testing.T) {
	_, err := Bootstrap([]float64{1, 2, 3}, 100, nil)

	assert.ErrorIs(t, err, &EmptyTrimResultError{})
}

func TestBootstrap_RejectsNonPositiveTrials(t *testing.T) {
	_, err := Bootstrap(sequence(30), 0, nil)

	assert.Error(t, err)
}
