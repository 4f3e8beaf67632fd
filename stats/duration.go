package stats

import (
	"math"
	"sort"
)

// DurationStats summarizes a scope's pooled (capped) duration samples.
// An empty scope has Count 0 and null statistics; consumers can render
// it without guarding against division errors.
type DurationStats struct {
	Median *float64 `json:"median"`
	Mean   *float64 `json:"mean"`
	P90    *float64 `json:"p90"`
	Count  int      `json:"count"`
}

// SummarizeDurations computes median, mean and the nearest-rank 90th
// percentile over the samples. Median of an even-sized pool is the
// average of the two middle values.
func SummarizeDurations(samples []float64) DurationStats {
	n := len(samples)
	if n == 0 {
		return DurationStats{}
	}
	s := make([]float64, n)
	copy(s, samples)
	sort.Float64s(s)

	median := round1((s[(n-1)/2] + s[n/2]) / 2)

	sum := 0.0
	for _, v := range s {
		sum += v
	}
	mean := round1(sum / float64(n))

	// nearest-rank: value at rank ceil(0.9 * n), 1-based
	rank := int(math.Ceil(0.9 * float64(n)))
	if rank < 1 {
		rank = 1
	}
	p90 := round1(s[rank-1])

	return DurationStats{Median: &median, Mean: &mean, P90: &p90, Count: n}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
