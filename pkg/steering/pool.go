package steering

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
)

// ErrUnstable is returned by Pool.Healthy when a vehicle holds a NaN or Inf.
var ErrUnstable = errors.New("vehicle state is not finite")

// Input is what the renderer hands to the pool before every tick.
type Input struct {
	// Target is the pointer position in surface coordinates.
	Target geometry.Vector3D
	// Engaged is true while the pointer button is held. It only changes colours.
	Engaged bool
}

// PoolConfig describes a population spread over a width x height surface.
type PoolConfig struct {
	Size   int
	Width  float64
	Height float64
	Params Params
}

// Pool is the fixed, ordered population of vehicles.
// It is not safe for concurrent use: exactly one goroutine (the world actor) drives it.
type Pool struct {
	vehicles []*Vehicle
	ticks    uint64
}

// NewPool places cfg.Size vehicles uniformly at random over the surface using rng.
// Two pools built from generators with the same seed are identical.
func NewPool(cfg PoolConfig, rng *rand.Rand) (*Pool, error) {
	if cfg.Size < 0 {
		return nil, fmt.Errorf("%w: pool size must be >= 0, got %d", ErrInvalidParams, cfg.Size)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: surface must be positive, got %vx%v", ErrInvalidParams, cfg.Width, cfg.Height)
	}
	positions := make([]geometry.Vector3D, cfg.Size)
	for i := range positions {
		positions[i] = geometry.NewVector2D(rng.Float64()*cfg.Width, rng.Float64()*cfg.Height)
	}
	return NewPoolFromPositions(positions, cfg.Params)
}

// NewPoolFromPositions creates one vehicle at rest per position, in the given order.
func NewPoolFromPositions(positions []geometry.Vector3D, params Params) (*Pool, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	p := &Pool{vehicles: make([]*Vehicle, 0, len(positions))}
	for _, pos := range positions {
		p.vehicles = append(p.vehicles, NewVehicle(pos, params))
	}
	return p, nil
}

// Len returns the population size.
func (p *Pool) Len() int { return len(p.vehicles) }

// Vehicles returns the vehicles in pool order. Callers must not modify the slice.
func (p *Pool) Vehicles() []*Vehicle { return p.vehicles }

// TickCount returns the number of ticks run so far.
func (p *Pool) TickCount() uint64 { return p.ticks }

// Tick advances every vehicle once, in pool order.
//
// Each vehicle computes its forces and integrates before the next one is looked at,
// so vehicle i sees vehicles j < i at their new position and vehicles j > i at their
// previous one. The result is deterministic for a given order and input.
func (p *Pool) Tick(in Input) {
	for _, v := range p.vehicles {
		v.ApplyBehaviours(p.vehicles, in.Target)
		v.RecordConnections(p.vehicles)
		v.Integrate()
	}
	p.ticks++
}

// Healthy returns ErrUnstable wrapped with the index of the first vehicle whose state
// holds a NaN or Inf.
func (p *Pool) Healthy() error {
	for i, v := range p.vehicles {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vehicle %d at %s velocity %s", ErrUnstable, i, v.position, v.velocity)
		}
	}
	return nil
}
