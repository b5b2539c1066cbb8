package steering

import "github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"

// VehicleState is what the renderer needs to draw one vehicle.
type VehicleState struct {
	Position    geometry.Vector3D   `json:"position"`
	Velocity    geometry.Vector3D   `json:"velocity"`
	Heading     float64             `json:"heading"`
	Connections []geometry.Vector3D `json:"connections,omitempty"`
}

// Snapshot is a copy of the pool after a tick. It shares no memory with the pool
// and can be handed to another goroutine.
type Snapshot struct {
	Tick     uint64         `json:"tick"`
	Engaged  bool           `json:"engaged"`
	Vehicles []VehicleState `json:"vehicles"`
}

// Snapshot copies the current state of every vehicle in pool order.
func (p *Pool) Snapshot(engaged bool) *Snapshot {
	s := &Snapshot{
		Tick:     p.ticks,
		Engaged:  engaged,
		Vehicles: make([]VehicleState, 0, len(p.vehicles)),
	}
	for _, v := range p.vehicles {
		var conns []geometry.Vector3D
		if len(v.connections) > 0 {
			conns = make([]geometry.Vector3D, len(v.connections))
			copy(conns, v.connections)
		}
		s.Vehicles = append(s.Vehicles, VehicleState{
			Position:    v.position,
			Velocity:    v.velocity,
			Heading:     v.heading,
			Connections: conns,
		})
	}
	return s
}

// ConnectionCount returns the total number of connection lines in the snapshot.
func (s *Snapshot) ConnectionCount() int {
	n := 0
	for _, v := range s.Vehicles {
		n += len(v.Connections)
	}
	return n
}
