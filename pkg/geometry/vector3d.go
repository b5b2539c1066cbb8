package geometry

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Epsilon is the tolerance used by Eq.
const (
	Epsilon = 1e-9
)

// ErrDivisionByZero is returned by Div and DivVec when a divisor is zero.
var ErrDivisionByZero = errors.New("vector cannot be divided by zero")

// Vector3D is a point or direction in cartesian space.
// The steering code only ever moves on the X/Y plane, Z stays at 0 unless set explicitly.
// All methods use value receivers and return new values, use Accumulator for in-place sums.
type Vector3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVector creates a new Vector3D.
func NewVector(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// NewVector2D creates a vector on the X/Y plane.
func NewVector2D(x, y float64) Vector3D {
	return Vector3D{X: x, Y: y}
}

// RandomDirection2D returns a unit vector on the X/Y plane pointing in a random direction.
func RandomDirection2D(rng *rand.Rand) Vector3D {
	theta := rng.Float64() * 2 * math.Pi
	return Vector3D{X: math.Cos(theta), Y: math.Sin(theta)}
}

// String implements the fmt.Stringer interface.
func (v Vector3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return Vector3D{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub subtracts the other vector from the current vector.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return Vector3D{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul scales the vector by a scalar value.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return Vector3D{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MulVec multiplies the two vectors component by component.
func (v Vector3D) MulVec(other Vector3D) Vector3D {
	return Vector3D{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Div scales the vector by 1/scalar.
// A zero scalar leaves the vector unchanged and returns ErrDivisionByZero,
// so a bad divisor can never leak Inf or NaN into the caller's state.
func (v Vector3D) Div(scalar float64) (Vector3D, error) {
	if scalar == 0 {
		return v, ErrDivisionByZero
	}
	return Vector3D{v.X / scalar, v.Y / scalar, v.Z / scalar}, nil
}

// DivVec divides the vector component by component.
// A component whose divisor is zero is left unchanged, and ErrDivisionByZero is returned
// unless that component is itself zero (0/0 on an unused axis, like Z on the plane).
func (v Vector3D) DivVec(other Vector3D) (Vector3D, error) {
	var err error
	div := func(a, b float64) float64 {
		if b == 0 {
			if a != 0 {
				err = ErrDivisionByZero
			}
			return a
		}
		return a / b
	}
	return Vector3D{div(v.X, other.X), div(v.Y, other.Y), div(v.Z, other.Z)}, err
}

// Dot calculates the dot product of two vectors.
func (v Vector3D) Dot(other Vector3D) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// InverseX mirrors the vector on the X axis.
func (v Vector3D) InverseX() Vector3D { return Vector3D{-v.X, v.Y, v.Z} }

// InverseY mirrors the vector on the Y axis.
func (v Vector3D) InverseY() Vector3D { return Vector3D{v.X, -v.Y, v.Z} }

// InverseZ mirrors the vector on the Z axis.
func (v Vector3D) InverseZ() Vector3D { return Vector3D{v.X, v.Y, -v.Z} }

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr calculates the squared magnitude of the vector.
// Use it for comparisons to avoid the square root.
func (v Vector3D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Len calculates the magnitude (length) of the vector.
func (v Vector3D) Len() float64 {
	return math.Sqrt(v.LenSqr())
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vector3D) Normalize() Vector3D {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vector3D{v.X / l, v.Y / l, v.Z / l}
}

// Limit caps the magnitude of the vector to max, keeping its direction.
// Vectors already shorter than max are returned unchanged.
func (v Vector3D) Limit(max float64) Vector3D {
	if v.LenSqr() > max*max {
		return v.Normalize().Mul(max)
	}
	return v
}

// SetMag returns a vector with the same direction and a magnitude of mag.
func (v Vector3D) SetMag(mag float64) Vector3D {
	return v.Normalize().Mul(mag)
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector3D) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo calculates the Euclidean distance to another vector.
func (v Vector3D) DistanceTo(other Vector3D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo calculates the squared Euclidean distance to another vector.
func (v Vector3D) DistanceSquaredTo(other Vector3D) float64 {
	return v.Sub(other).LenSqr()
}

// Heading returns the orientation of the vector on the X/Y plane in radians,
// measured clockwise from screen-up (negative Y). A vector pointing right gives Pi/2.
func (v Vector3D) Heading() float64 {
	return math.Atan2(v.X, -v.Y)
}

// ---------------------------------------------------------------------
// Comparison
// ---------------------------------------------------------------------

// Eq checks if two vectors are approximately equal using the Epsilon constant.
func (v Vector3D) Eq(other Vector3D) bool {
	return math.Abs(v.X-other.X) <= Epsilon &&
		math.Abs(v.Y-other.Y) <= Epsilon &&
		math.Abs(v.Z-other.Z) <= Epsilon
}
