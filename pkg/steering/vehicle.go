package steering

import (
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
)

// Vehicle is an autonomous agent steering on the X/Y plane.
// Craig Reynolds described these "vehicles" in Steering Behaviors For Autonomous Characters
// (GDC 1999): each one computes bounded steering forces from what it wants (seek a target,
// arrive softly on it, keep its distance from the others) and integrates them into motion.
//
// Position and velocity only change in Integrate. The steering methods never touch the
// kinematic state: their result depends only on that state and their arguments, though
// Separate and FindConnections reuse the vehicle's neighbour scratch buffer.
type Vehicle struct {
	position     geometry.Vector3D
	velocity     geometry.Vector3D
	acceleration geometry.Accumulator
	heading      float64

	params Params

	// reused between ticks
	connections []geometry.Vector3D
	neighbors   []Neighbor
}

// NewVehicle creates a vehicle at rest at position.
func NewVehicle(position geometry.Vector3D, params Params) *Vehicle {
	return &Vehicle{
		position: position,
		params:   params,
	}
}

// Position returns the current location.
func (v *Vehicle) Position() geometry.Vector3D { return v.position }

// Velocity returns the current velocity, its magnitude never exceeds MaxSpeed.
func (v *Vehicle) Velocity() geometry.Vector3D { return v.velocity }

// Acceleration returns the force accumulated since the last Integrate.
func (v *Vehicle) Acceleration() geometry.Vector3D { return v.acceleration.Vector() }

// Heading returns the orientation derived from the velocity at the last Integrate.
func (v *Vehicle) Heading() float64 { return v.heading }

// Params returns the constants of the vehicle.
func (v *Vehicle) Params() Params { return v.params }

// Connections returns the positions recorded by the last call to RecordConnections.
// The slice is reused on the next tick, copy it to keep it.
func (v *Vehicle) Connections() []geometry.Vector3D { return v.connections }

// ---------------------------------------------------------------------
// Steering behaviours
// ---------------------------------------------------------------------

// Seek returns the force steering the vehicle toward target at full speed.
func (v *Vehicle) Seek(target geometry.Vector3D) geometry.Vector3D {
	desired := target.Sub(v.position).Normalize().Mul(v.params.MaxSpeed)
	return desired.Sub(v.velocity).Limit(v.params.MaxForce)
}

// Arrive is Seek with a linear slow-down: inside DecelerationRadius the desired speed
// ramps from MaxSpeed at the edge down to 0 on the target.
func (v *Vehicle) Arrive(target geometry.Vector3D) geometry.Vector3D {
	desired := target.Sub(v.position)
	d := desired.Len()
	speed := v.params.MaxSpeed
	if d < v.params.DecelerationRadius {
		speed = geometry.Map(d, 0, v.params.DecelerationRadius, 0, v.params.MaxSpeed)
	}
	desired = desired.Normalize().Mul(speed)
	return desired.Sub(v.velocity).Limit(v.params.MaxForce)
}

// Separate returns the force pushing the vehicle away from the vehicles of pool closer
// than DesiredSeparation. Without any such neighbour it returns the zero vector.
func (v *Vehicle) Separate(pool []*Vehicle) geometry.Vector3D {
	v.neighbors = NeighborsWithin(v.neighbors[:0], v, pool, v.params.DesiredSeparation())
	if len(v.neighbors) == 0 {
		return geometry.Vector3D{}
	}

	var sum geometry.Accumulator
	for _, n := range v.neighbors {
		sum.Add(v.position.Sub(n.Vehicle.position).Normalize())
	}
	// cannot fail, len(v.neighbors) > 0
	_ = sum.Divide(float64(len(v.neighbors)))
	sum.SetMag(v.params.MaxSpeed)

	return sum.Vector().Sub(v.velocity).Limit(v.params.MaxForce)
}

// FindConnections returns, in pool order, the positions of the vehicles of pool
// closer than ConnectionRadius. It is used for drawing only.
func (v *Vehicle) FindConnections(pool []*Vehicle) []geometry.Vector3D {
	return v.appendConnections(nil, pool)
}

// RecordConnections stores FindConnections(pool) in the vehicle, reusing its buffer.
func (v *Vehicle) RecordConnections(pool []*Vehicle) {
	v.connections = v.appendConnections(v.connections[:0], pool)
}

func (v *Vehicle) appendConnections(dst []geometry.Vector3D, pool []*Vehicle) []geometry.Vector3D {
	v.neighbors = NeighborsWithin(v.neighbors[:0], v, pool, v.params.ConnectionRadius)
	for _, n := range v.neighbors {
		dst = append(dst, n.Vehicle.position)
	}
	return dst
}

// ApplyBehaviours accumulates the weighted separation, seek and arrive forces.
// A non finite target (no pointer yet) only leaves separation active.
func (v *Vehicle) ApplyBehaviours(pool []*Vehicle, target geometry.Vector3D) {
	w := v.params.Weights
	v.ApplyForce(v.Separate(pool).Mul(w.Separation))
	if !target.IsFinite() {
		return
	}
	v.ApplyForce(v.Seek(target).Mul(w.Seek))
	v.ApplyForce(v.Arrive(target).Mul(w.Arrive))
}

// ApplyForce adds force / Mass to the acceleration.
// A force that cannot be turned into a finite acceleration is dropped.
func (v *Vehicle) ApplyForce(force geometry.Vector3D) {
	f, err := force.Div(v.params.Mass)
	if err != nil || !f.IsFinite() {
		return
	}
	v.acceleration.Add(f)
}

// Integrate advances the vehicle by one tick: the acceleration is added to the velocity,
// the velocity is capped to MaxSpeed and added to the position, then the acceleration
// is cleared for the next tick.
func (v *Vehicle) Integrate() {
	v.velocity = v.velocity.Add(v.acceleration.Vector()).Limit(v.params.MaxSpeed)
	v.heading = v.velocity.Heading()
	v.position = v.position.Add(v.velocity)
	v.acceleration.Reset()
}

// IsFinite reports whether the kinematic state of the vehicle holds no NaN or Inf.
func (v *Vehicle) IsFinite() bool {
	return v.position.IsFinite() && v.velocity.IsFinite() && v.acceleration.Vector().IsFinite()
}
