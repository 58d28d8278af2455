// Package astro holds the closed-form angle arithmetic used by the chart
// engine: degree normalization, ayanamsa, obliquity and the ascendant.
package astro

import "math"

// Normalize reduces an angle in degrees to [0, 360).
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	// -1e-15 + 360 rounds to exactly 360.
	if m >= 360 {
		m = 0
	}
	return m
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
