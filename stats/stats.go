package stats

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is a read-only view over one completed batch of successful
// samples. All aggregates are in milliseconds.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// NewSummary computes aggregates over the given durations. An empty slice
// yields a zero Summary; callers check NoData before rendering numbers.
func NewSummary(durationsMs []float64) Summary {
	if len(durationsMs) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(durationsMs))
	copy(sorted, durationsMs)
	slices.Sort(sorted)
	return Summary{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: median(sorted),
		Min:    floats.Min(sorted),
		Max:    floats.Max(sorted),
	}
}

func (s Summary) NoData() bool {
	return s.Count == 0
}

// median expects xs sorted. Even-length input averages the two middle
// elements.
func median(xs []float64) float64 {
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}
