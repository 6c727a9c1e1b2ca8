// Package rank computes percentile ranks for rating values against a
// user's rating history.
package rank

import "math"

// MinDistinctValues is the number of distinct rating values a user must
// already have (across other games) before a percentile can be computed.
const MinDistinctValues = 4

// Percentile returns the percentile rank of value against population,
// where population holds the user's other rating values. The result is
// floor((lower + tied/2) / total * 100) with total = len(population)+1,
// clamped to [0, 99]. Ties are split at the midpoint.
func Percentile(value int, population []int) int {
	total := len(population) + 1

	var lower, tied int
	for _, v := range population {
		switch {
		case v < value:
			lower++
		case v == value:
			tied++
		}
	}

	p := math.Floor((float64(lower) + float64(tied)/2) / float64(total) * 100)

	if p < 0 {
		return 0
	}
	if p > 99 {
		return 99
	}
	return int(p)
}

// DistinctValues returns the number of distinct values in population.
func DistinctValues(population []int) int {
	seen := make(map[int]struct{}, len(population))
	for _, v := range population {
		seen[v] = struct{}{}
	}
	return len(seen)
}
