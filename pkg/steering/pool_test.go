package steering

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
)

func newTestPool(t *testing.T, params Params, positions ...geometry.Vector3D) *Pool {
	t.Helper()
	p, err := NewPoolFromPositions(positions, params)
	if err != nil {
		t.Fatalf("NewPoolFromPositions() error = %v", err)
	}
	return p
}

func TestNewPool(t *testing.T) {
	cfg := PoolConfig{Size: 100, Width: 640, Height: 480, Params: DefaultParams()}
	p, err := NewPool(cfg, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("NewPool() error = %v", err)
	}
	if p.Len() != 100 {
		t.Fatalf("Len() = %d; want 100", p.Len())
	}
	for i, v := range p.Vehicles() {
		pos := v.Position()
		if pos.X < 0 || pos.X >= cfg.Width || pos.Y < 0 || pos.Y >= cfg.Height || pos.Z != 0 {
			t.Errorf("vehicle %d spawned outside the surface at %v", i, pos)
		}
		if v.Velocity() != (geometry.Vector3D{}) || v.Acceleration() != (geometry.Vector3D{}) {
			t.Errorf("vehicle %d not at rest: vel %v acc %v", i, v.Velocity(), v.Acceleration())
		}
	}

	t.Run("InvalidConfig", func(t *testing.T) {
		bad := []PoolConfig{
			{Size: -1, Width: 10, Height: 10, Params: DefaultParams()},
			{Size: 5, Width: 0, Height: 10, Params: DefaultParams()},
			{Size: 5, Width: 10, Height: 10, Params: Params{}},
		}
		for _, c := range bad {
			if _, err := NewPool(c, rand.New(rand.NewPCG(1, 1))); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("NewPool(%+v) error = %v; want ErrInvalidParams", c, err)
			}
		}
	})
}

func TestPool_TwoCloseVehiclesSeparate(t *testing.T) {
	p := newTestPool(t, DefaultParams(), vec(100, 100), vec(105, 100))
	a, b := p.Vehicles()[0], p.Vehicles()[1]

	// pointer far below: seek and arrive barely pull on X
	p.Tick(Input{Target: vec(102.5, 10000)})

	if a.Velocity().X >= 0 {
		t.Errorf("left vehicle velocity = %v; want pushed to negative X", a.Velocity())
	}
	if b.Velocity().X <= 0 {
		t.Errorf("right vehicle velocity = %v; want pushed to positive X", b.Velocity())
	}
	if math.Abs(a.Velocity().X+0.06) > 1e-4 || math.Abs(b.Velocity().X-0.06) > 1e-4 {
		t.Errorf("separation velocities = %v, %v; want -0.06 and 0.06", a.Velocity().X, b.Velocity().X)
	}
	if d := a.Position().DistanceTo(b.Position()); d <= 5 {
		t.Errorf("distance after one tick = %v; want > 5", d)
	}
}

func TestPool_NoConnectionsWhenFarApart(t *testing.T) {
	p := newTestPool(t, DefaultParams(), vec(0, 0), vec(100, 0), vec(0, 100))
	for _, v := range p.Vehicles() {
		if got := v.FindConnections(p.Vehicles()); len(got) != 0 {
			t.Errorf("FindConnections = %v; want empty", got)
		}
	}
	p.Tick(Input{Target: vec(50, 50)})
	if n := p.Snapshot(false).ConnectionCount(); n != 0 {
		t.Errorf("snapshot has %d connections; want 0", n)
	}
}

func TestPool_ConnectionsRecordedDuringTick(t *testing.T) {
	p := newTestPool(t, DefaultParams(), vec(0, 0), vec(25, 0), vec(200, 200))
	p.Tick(Input{Target: vec(0, 0)})
	s := p.Snapshot(true)
	if !s.Engaged || s.Tick != 1 {
		t.Errorf("snapshot header = tick %d engaged %v; want 1 true", s.Tick, s.Engaged)
	}
	if len(s.Vehicles[0].Connections) != 1 || len(s.Vehicles[1].Connections) != 1 {
		t.Errorf("connections = %v / %v; want one each", s.Vehicles[0].Connections, s.Vehicles[1].Connections)
	}
	if len(s.Vehicles[2].Connections) != 0 {
		t.Errorf("isolated vehicle has connections %v", s.Vehicles[2].Connections)
	}

	// the snapshot must not change when the pool moves on
	before := s.Vehicles[0].Connections[0]
	p.Tick(Input{Target: vec(1000, 1000)})
	if s.Vehicles[0].Connections[0] != before {
		t.Error("snapshot shares memory with the pool")
	}
}

func TestPool_SemiSynchronousOrder(t *testing.T) {
	// The first vehicle integrates before the second looks at it,
	// so the second one sees the first one's new position.
	params := DefaultParams()
	p := newTestPool(t, params, vec(0, 0), vec(19.99, 0))
	p.Tick(Input{Target: vec(math.NaN(), math.NaN())})

	a, b := p.Vehicles()[0], p.Vehicles()[1]
	if a.Velocity().X >= 0 {
		t.Fatalf("first vehicle should be pushed left, got %v", a.Velocity())
	}
	// After a moved left the pair is 20.05 apart: b no longer sees a.
	if b.Velocity() != (geometry.Vector3D{}) {
		t.Errorf("second vehicle velocity = %v; want zero (first one already left)", b.Velocity())
	}
}

func TestPool_SingleVehicleArrives(t *testing.T) {
	params := DefaultParams()
	params.MaxForce = 0.5
	params.Weights = Weights{Arrive: 1}
	p := newTestPool(t, params, vec(0, 0))
	v := p.Vehicles()[0]
	in := Input{Target: vec(200, 0)}

	lastX := 0.0
	peak := 0.0
	for i := 0; i < 200; i++ {
		p.Tick(in)
		x := v.Position().X
		if x < lastX {
			t.Fatalf("tick %d: x went back from %v to %v", i, lastX, x)
		}
		if x > 200 {
			t.Fatalf("tick %d: overshot the target, x = %v", i, x)
		}
		lastX = x
		peak = math.Max(peak, v.Velocity().Len())
	}
	if peak < params.MaxSpeed-tolerance {
		t.Errorf("peak speed = %v; want to reach %v", peak, params.MaxSpeed)
	}
	if math.Abs(lastX-200) > 0.1 {
		t.Errorf("final x = %v; want close to 200", lastX)
	}
	if s := v.Velocity().Len(); s > 0.01 {
		t.Errorf("final speed = %v; want close to 0", s)
	}
}

func TestPool_SingleVehicleDefaultWeights(t *testing.T) {
	// With the default weights seek keeps pushing at full strength, the vehicle
	// reaches the target, overshoots, brakes and comes back.
	params := DefaultParams()
	p := newTestPool(t, params, vec(0, 0))
	v := p.Vehicles()[0]
	in := Input{Target: vec(200, 0)}

	lastX := 0.0
	reached := -1
	peak := 0.0
	maxX := 0.0
	for i := 0; i < 200; i++ {
		p.Tick(in)
		x := v.Position().X
		if reached < 0 && x < lastX {
			t.Fatalf("tick %d: moved away before reaching the target", i)
		}
		if reached < 0 && x >= 200 {
			reached = i
		}
		speed := v.Velocity().Len()
		if speed > params.MaxSpeed+tolerance {
			t.Fatalf("tick %d: speed %v above MaxSpeed", i, speed)
		}
		if v.Position().Y != 0 {
			t.Fatalf("tick %d: left the X axis, pos %v", i, v.Position())
		}
		peak = math.Max(peak, speed)
		maxX = math.Max(maxX, x)
		lastX = x
	}
	if reached < 0 {
		t.Fatal("target never reached in 200 ticks")
	}
	if final := v.Velocity().Len(); final >= peak {
		t.Errorf("final speed %v should be below peak %v after overshooting", final, peak)
	}
	if maxX > 400 {
		t.Errorf("overshoot too large, max x = %v", maxX)
	}
}

func TestPool_NeverProducesNaN(t *testing.T) {
	params := DefaultParams()
	positions := make([]geometry.Vector3D, 0, 40)
	for i := 0; i < 20; i++ {
		positions = append(positions, vec(50, 50)) // all coincident
	}
	for i := 0; i < 20; i++ {
		positions = append(positions, vec(50+float64(i%5), 50+float64(i/5)))
	}
	p := newTestPool(t, params, positions...)

	targets := []geometry.Vector3D{vec(50, 50), vec(math.NaN(), 0), vec(0, 0), vec(math.Inf(1), 3), vec(300, 10)}
	for i := 0; i < 300; i++ {
		p.Tick(Input{Target: targets[i%len(targets)]})
		if err := p.Healthy(); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		for _, v := range p.Vehicles() {
			if s := v.Velocity().Len(); s > params.MaxSpeed+tolerance {
				t.Fatalf("tick %d: speed %v above MaxSpeed", i, s)
			}
		}
	}
	if p.TickCount() != 300 {
		t.Errorf("TickCount() = %d; want 300", p.TickCount())
	}
}

func TestPool_Healthy(t *testing.T) {
	p := newTestPool(t, DefaultParams(), vec(0, 0), vec(1, 1))
	if err := p.Healthy(); err != nil {
		t.Fatalf("Healthy() = %v; want nil", err)
	}
	p.Vehicles()[1].position = vec(math.NaN(), 0)
	if err := p.Healthy(); !errors.Is(err, ErrUnstable) {
		t.Errorf("Healthy() = %v; want ErrUnstable", err)
	}
}

func TestPool_Deterministic(t *testing.T) {
	cfg := PoolConfig{Size: 100, Width: 800, Height: 600, Params: DefaultParams()}
	run := func() [][]geometry.Vector3D {
		p, err := NewPool(cfg, rand.New(rand.NewPCG(42, 1337)))
		if err != nil {
			t.Fatalf("NewPool() error = %v", err)
		}
		var trajectory [][]geometry.Vector3D
		for i := 0; i < 150; i++ {
			angle := float64(i) / 20
			p.Tick(Input{Target: vec(400+200*math.Cos(angle), 300+200*math.Sin(angle)), Engaged: i%2 == 0})
			frame := make([]geometry.Vector3D, 0, p.Len())
			for _, v := range p.Vehicles() {
				frame = append(frame, v.Position())
			}
			trajectory = append(trajectory, frame)
		}
		return trajectory
	}

	first, second := run(), run()
	for tick := range first {
		for i := range first[tick] {
			if first[tick][i] != second[tick][i] {
				t.Fatalf("tick %d vehicle %d: %v != %v", tick, i, first[tick][i], second[tick][i])
			}
		}
	}
}

func BenchmarkPool_Tick(b *testing.B) {
	cfg := PoolConfig{Size: 100, Width: 1000, Height: 800, Params: DefaultParams()}
	p, err := NewPool(cfg, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		b.Fatal(err)
	}
	in := Input{Target: vec(500, 400)}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Tick(in)
	}
}
