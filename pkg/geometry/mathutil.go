package geometry

// Map re-maps value from the range [start1, stop1] to [start2, stop2].
// The result is not clamped. A degenerate source range maps everything to start2.
func Map(value, start1, stop1, start2, stop2 float64) float64 {
	if stop1 == start1 {
		return start2
	}
	return start2 + (stop2-start2)*((value-start1)/(stop1-start1))
}

// Constrain clamps value to [min, max].
func Constrain(value, min, max float64) float64 {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}
