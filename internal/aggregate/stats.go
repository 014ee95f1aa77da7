package aggregate

import "slices"

// DurationStats summarizes a distribution of durations.
type DurationStats struct {
	Count  int     `json:"count"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Describe computes count, min, max, mean and median of values.
// An empty input yields the zero value.
func Describe(values []int) DurationStats {
	if len(values) == 0 {
		return DurationStats{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}

	stats := DurationStats{
		Count: len(sorted),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		Mean:  float64(sum) / float64(len(sorted)),
	}

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	} else {
		stats.Median = float64(sorted[mid])
	}

	return stats
}
