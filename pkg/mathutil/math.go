// Package mathutil provides small numeric helpers shared by the report builders.
package mathutil

import "math"

// Ratio divides a by b and returns 0 when b is zero.
func Ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}

	return float64(a) / float64(b)
}

// Percent returns 100*a/b, or 0 when b is zero.
func Percent(a, b int) float64 {
	return Ratio(a, b) * 100 //nolint:mnd // percentage scale.
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places < 0 {
		return v
	}

	scale := math.Pow10(places)

	return math.Round(v*scale) / scale
}
