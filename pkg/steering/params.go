package steering

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when vehicle constants cannot produce a finite simulation.
var ErrInvalidParams = errors.New("invalid steering parameters")

// Default constants of a vehicle.
const (
	DefaultMaxSpeed           = 5.0
	DefaultMaxForce           = 0.04
	DefaultMass               = 1.0
	DefaultRadius             = 10.0
	DefaultConnectionRadius   = 30.0
	DefaultDecelerationRadius = 100.0
)

// Weights scale each steering behaviour before it is applied.
// Separation dominates so that vehicles never pile up, arrive is the weakest.
type Weights struct {
	Separation float64
	Seek       float64
	Arrive     float64
}

// DefaultWeights returns the default behaviour weights.
func DefaultWeights() Weights {
	return Weights{Separation: 1.5, Seek: 0.5, Arrive: 0.2}
}

// Params are the fixed constants shared by every vehicle of a pool.
// They are copied into each vehicle at construction and never change afterwards.
type Params struct {
	MaxSpeed           float64
	MaxForce           float64
	Mass               float64
	Radius             float64
	ConnectionRadius   float64
	DecelerationRadius float64
	Weights            Weights
}

// DefaultParams returns the constants the simulation was tuned with.
func DefaultParams() Params {
	return Params{
		MaxSpeed:           DefaultMaxSpeed,
		MaxForce:           DefaultMaxForce,
		Mass:               DefaultMass,
		Radius:             DefaultRadius,
		ConnectionRadius:   DefaultConnectionRadius,
		DecelerationRadius: DefaultDecelerationRadius,
		Weights:            DefaultWeights(),
	}
}

// DesiredSeparation is the distance under which a neighbour pushes a vehicle away.
func (p Params) DesiredSeparation() float64 {
	return p.Radius * 2
}

// Validate checks that the constants are usable.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"maxSpeed", p.MaxSpeed},
		{"maxForce", p.MaxForce},
		{"mass", p.Mass},
		{"radius", p.Radius},
		{"connectionRadius", p.ConnectionRadius},
		{"decelerationRadius", p.DecelerationRadius},
	}
	for _, c := range checks {
		if !(c.value > 0) {
			return fmt.Errorf("%w: %s must be > 0, got %v", ErrInvalidParams, c.name, c.value)
		}
	}
	if p.Weights.Separation < 0 || p.Weights.Seek < 0 || p.Weights.Arrive < 0 {
		return fmt.Errorf("%w: weights must be >= 0, got %+v", ErrInvalidParams, p.Weights)
	}
	return nil
}
