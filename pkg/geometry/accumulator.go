package geometry

// Accumulator is the only mutable vector in the package.
// It is meant for local sums (a steering average, a per-tick force total) and copies
// every vector it receives, so adding a live position to it can never alias that position.
// The zero value is an empty accumulator at the origin.
type Accumulator struct {
	v Vector3D
}

// Add adds other to the accumulated value.
func (a *Accumulator) Add(other Vector3D) {
	a.v = a.v.Add(other)
}

// Scale multiplies the accumulated value by scalar.
func (a *Accumulator) Scale(scalar float64) {
	a.v = a.v.Mul(scalar)
}

// Divide divides the accumulated value by scalar. On a zero scalar the value is kept.
func (a *Accumulator) Divide(scalar float64) error {
	v, err := a.v.Div(scalar)
	if err != nil {
		return err
	}
	a.v = v
	return nil
}

// Normalize turns the accumulated value into a unit vector, the zero vector stays zero.
func (a *Accumulator) Normalize() {
	a.v = a.v.Normalize()
}

// Limit caps the magnitude of the accumulated value.
func (a *Accumulator) Limit(max float64) {
	a.v = a.v.Limit(max)
}

// SetMag rescales the accumulated value to magnitude mag.
func (a *Accumulator) SetMag(mag float64) {
	a.v = a.v.SetMag(mag)
}

// Reset sets the accumulated value back to the zero vector.
func (a *Accumulator) Reset() {
	a.v = Vector3D{}
}

// Vector returns a copy of the accumulated value.
func (a *Accumulator) Vector() Vector3D {
	return a.v
}

// IsZero reports whether nothing (or only cancelling vectors) has been accumulated.
func (a *Accumulator) IsZero() bool {
	return a.v == Vector3D{}
}
