package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/steering"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// WorldActor owns the pool of vehicles. The actor mailbox serializes the ticks,
// so the physics always runs on a single goroutine and the pool needs no lock.
type WorldActor struct {
	pool *steering.Pool
	cfg  *Config
	// Communication with UI
	snapshotCh chan<- *steering.Snapshot
	lastInput  steering.Input
	unstable   bool
	// --- Benchmark Stats ---
	tickCount    int
	droppedCount int
	lastLogTime  time.Time
}

// NewWorldActor creates the world logic unit
func NewWorldActor(snapshotCh chan<- *steering.Snapshot, cfg *Config) *WorldActor {
	return &WorldActor{
		snapshotCh:  snapshotCh,
		cfg:         cfg,
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is spawning %d vehicles (seed %d)...", w.cfg.Population, w.cfg.Seed)
	return w.spawnFleet()
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Infof("World Started with %d vehicles", w.pool.Len())
		w.pushSnapshot()

	// The Main Simulation Step (Driven by Game Loop)
	case *structpb.Struct:
		in, err := InputFromTick(msg)
		if err != nil {
			ctx.Logger().Warnf("dropping tick: %v", err)
			return
		}
		w.Step(in)
		if err := w.pool.Healthy(); err != nil && !w.unstable {
			w.unstable = true
			ctx.Logger().Errorf("world became unstable at tick %d: %v", w.pool.TickCount(), err)
		}
		ctx.Logger().Debugf("tick %d target %s engaged %v", w.pool.TickCount(), in.Target, in.Engaged)
		w.logBenchmarks(ctx)
		w.pushSnapshot()

	case *emptypb.Empty:
		w.pushSnapshot()

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World is shutdown after %d ticks...", w.pool.TickCount())
	return nil
}

// Step runs one tick of the pool with in as the pointer input.
func (w *WorldActor) Step(in steering.Input) {
	w.lastInput = in
	w.pool.Tick(in)
	w.tickCount++
}

// Snapshot returns a copy of the current state of the world.
func (w *WorldActor) Snapshot() *steering.Snapshot {
	return w.pool.Snapshot(w.lastInput.Engaged)
}

func (w *WorldActor) pushSnapshot() {
	select {
	case w.snapshotCh <- w.Snapshot():
	default:
		// UI busy, skip frame
		w.droppedCount++
	}
}

func (w *WorldActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec (dropped frames: %d) | Vehicles: %d",
			w.tickCount, w.droppedCount, w.pool.Len())
		w.tickCount = 0
		w.droppedCount = 0
		w.lastLogTime = time.Now()
	}
}

// spawnFleet places the vehicles. The pointer starts in the middle of the surface
// until the first tick says otherwise.
func (w *WorldActor) spawnFleet() error {
	pool, err := steering.NewPool(w.cfg.PoolConfig(), rand.New(rand.NewPCG(w.cfg.Seed, w.cfg.Seed)))
	if err != nil {
		return fmt.Errorf("failed to create the vehicle pool: %w", err)
	}
	w.pool = pool
	w.lastInput = steering.Input{
		Target: geometry.NewVector2D(w.cfg.WorldWidth/2, w.cfg.WorldHeight/2),
	}
	return nil
}
