package shared

import "fmt"

// Vector is a world-space coordinate.
type Vector struct {
	X float64
	Y float64
	Z float64
}

// NewVector creates a vector from its three components
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Equals reports whether both vectors describe the same point, allowing for
// the rounding that happens when coordinates pass through a data file.
func (v Vector) Equals(other Vector) bool {
	const epsilon = 0.5
	return abs(v.X-other.X) < epsilon && abs(v.Y-other.Y) < epsilon && abs(v.Z-other.Z) < epsilon
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
