package geometry

import "math"

// L1Distance calculates the Manhattan distance between two coordinates.
func L1Distance(x1, y1, x2, y2 float64) float64 {
	return math.Abs(x2-x1) + math.Abs(y2-y1)
}

// IsHorizontal returns true if the vector (dx, dy) is at least as horizontal
// as it is vertical. Ties count as horizontal; routing relies on this rule
// being deterministic.
func IsHorizontal(dx, dy float64) bool {
	return math.Abs(dx) >= math.Abs(dy)
}
