package bench

import (
	"errors"
	"math"
	"sort"
)

// ErrNoSamples is returned when a statistic is requested over an
// empty sample set.
var ErrNoSamples = errors.New("no latency samples")

// Summary holds the reduced statistics for one set of latency
// samples, all in seconds.
type Summary struct {
	Mean   float64
	Median float64
	Stdev  float64
	Min    float64
	Max    float64
	P95    float64
	P99    float64
}

// Summarize reduces a non-empty set of latency samples into a
// Summary. The input slice is not modified.
func Summarize(latencies []float64) (Summary, error) {
	if len(latencies) == 0 {
		return Summary{}, ErrNoSamples
	}

	sorted := sortedCopy(latencies)

	return Summary{
		Mean:   mean(latencies),
		Median: median(sorted),
		Stdev:  stdev(latencies),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		P95:    interpolate(sorted, 95),
		P99:    interpolate(sorted, 99),
	}, nil
}

// Percentile returns the p-th percentile (0-100) of data using
// linear interpolation between the two closest ranks, clamping at
// the top rank. The input slice is not modified.
func Percentile(data []float64, p float64) (float64, error) {
	if len(data) == 0 {
		return 0, ErrNoSamples
	}

	return interpolate(sortedCopy(data), p), nil
}

// interpolate computes the interpolated percentile over an already
// sorted slice. sorted must be non-empty.
func interpolate(sorted []float64, p float64) float64 {
	index := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := lower + 1
	weight := index - float64(lower)

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func sortedCopy(data []float64) []float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	return sorted
}

func mean(data []float64) float64 {
	var sum float64
	for _, v := range data {
		sum += v
	}

	return sum / float64(len(data))
}

// median expects a sorted, non-empty slice. For even lengths it
// averages the two middle elements.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return sorted[n/2]
}

// stdev is the Bessel-corrected sample standard deviation, defined
// as 0.0 for a single sample.
func stdev(data []float64) float64 {
	n := len(data)
	if n < 2 {
		return 0.0
	}

	m := mean(data)

	var sumsq float64
	for _, v := range data {
		d := v - m
		sumsq += d * d
	}

	return math.Sqrt(sumsq / float64(n-1))
}
