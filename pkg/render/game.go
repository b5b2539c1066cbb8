package render

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/steering"
	"github.com/lao-tseu-is-alive/go-steering-vehicles/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

// Stroke colours, the "engaged" ones are used on the pale background.
var (
	bodyColor              = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	bodyEngagedColor       = color.RGBA{R: 20, G: 25, B: 35, A: 255}
	connectionColor        = color.NRGBA{R: 255, G: 245, B: 230, A: 26}
	connectionEngagedColor = color.NRGBA{R: 0, G: 10, B: 15, A: 26}
)

// Game is the ebiten front end of the simulation: it feeds the pointer to the world
// actor once per frame and draws the last snapshot it received back.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *steering.Snapshot
	lastState  *steering.Snapshot

	cfg *simulation.Config

	// pointer
	target     geometry.Vector3D
	lastCursor [2]int
	paused     bool

	// HUD
	panel                 *ui.Panel
	widgetShowConnections *ui.Toggle
	widgetShowBodies      *ui.Toggle
	widgetPause           *ui.Button
	backgroundIdle        *ebiten.Image
	backgroundEngaged     *ebiten.Image

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

// NewGame spawns the world actor in system and builds the HUD.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem) (*Game, error) {
	// Buffer to avoid blocking the world when a frame is slow
	snapshotCh := make(chan *steering.Snapshot, 10)

	worldPID, err := system.Spawn(ctx, "world", simulation.NewWorldActor(snapshotCh, cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	w, h := int(cfg.WorldWidth), int(cfg.WorldHeight)
	g := &Game{
		ctx:               ctx,
		System:            system,
		worldPID:          worldPID,
		snapshotCh:        snapshotCh,
		lastState:         &steering.Snapshot{}, // Avoid nil pointer
		cfg:               cfg,
		target:            geometry.NewVector2D(cfg.WorldWidth/2, cfg.WorldHeight/2),
		backgroundIdle:    newRadialGradient(w, h, idleInner, idleOuter),
		backgroundEngaged: newRadialGradient(w, h, engagedInner, engagedOuter),
	}
	g.lastCursor[0], g.lastCursor[1] = ebiten.CursorPosition()

	g.panel = ui.NewPanel("Display", 10, 10, 170)
	g.widgetShowConnections = ui.NewToggle("Connections", cfg.ShowConnections, g.logToggle("connections"))
	g.widgetShowBodies = ui.NewToggle("Vehicles", cfg.ShowBodies, g.logToggle("vehicles"))
	g.widgetPause = ui.NewButton(150, 22, "Pause", g.togglePause)
	g.panel.Add(g.widgetShowConnections)
	g.panel.Add(g.widgetShowBodies)
	g.panel.Add(g.widgetPause)

	return g, nil
}

func (g *Game) logToggle(name string) func(bool) {
	return func(on bool) {
		g.System.Logger().Infof("display %s: %v", name, on)
	}
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if g.paused {
		g.widgetPause.Label = "Resume"
		// the last snapshot of a running world may have been dropped, ask for the final one
		if err := actor.Tell(g.ctx, g.worldPID, simulation.NewRefreshMessage()); err != nil {
			g.System.Logger().Warnf("failed to refresh the world: %v", err)
		}
	} else {
		g.widgetPause.Label = "Pause"
	}
}

// input reads the pointer. The target only follows the cursor once it has moved,
// until then vehicles head for the centre of the surface.
func (g *Game) input() steering.Input {
	mx, my := ebiten.CursorPosition()
	if mx != g.lastCursor[0] || my != g.lastCursor[1] {
		g.lastCursor[0], g.lastCursor[1] = mx, my
		g.target = geometry.NewVector2D(float64(mx), float64(my))
	}
	engaged := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) &&
		!g.panel.Contains(float64(mx), float64(my))
	return steering.Input{Target: g.target, Engaged: engaged}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	g.panel.Update()

	// Retrieve Latest State (Non-blocking)
Drain:
	for {
		select {
		case snap := <-g.snapshotCh:
			g.lastState = snap
		default:
			break Drain
		}
	}

	if g.paused {
		return nil
	}
	// Trigger Simulation Step
	if err := actor.Tell(g.ctx, g.worldPID, simulation.NewTickMessage(g.input())); err != nil {
		return fmt.Errorf("failed to tick the world: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()

	engaged := g.lastState.Engaged
	if engaged {
		screen.DrawImage(g.backgroundEngaged, nil)
	} else {
		screen.DrawImage(g.backgroundIdle, nil)
	}

	if g.widgetShowConnections.Value {
		g.drawConnections(screen, engaged)
	}
	if g.widgetShowBodies.Value {
		g.drawBodies(screen, engaged)
	}

	g.panel.Draw(screen)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d\nLinks: %d\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		g.lastState.ConnectionCount(),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, 10)
}

// drawConnections strokes a faint line from each vehicle to its close neighbours,
// thicker when the vehicle heads down the screen.
func (g *Game) drawConnections(screen *ebiten.Image, engaged bool) {
	clr := connectionColor
	if engaged {
		clr = connectionEngagedColor
	}
	for _, v := range g.lastState.Vehicles {
		width := float32(geometry.Constrain(v.Heading, 1, 3))
		for _, c := range v.Connections {
			vector.StrokeLine(screen,
				float32(v.Position.X), float32(v.Position.Y),
				float32(c.X), float32(c.Y),
				width, clr, true)
		}
	}
}

// drawBodies draws every vehicle as a short segment along its heading inside a circle.
func (g *Game) drawBodies(screen *ebiten.Image, engaged bool) {
	clr := bodyColor
	if engaged {
		clr = bodyEngagedColor
	}
	size := g.cfg.VehicleRadius
	half := size / 2
	for _, v := range g.lastState.Vehicles {
		dx, dy := half*math.Cos(v.Heading), half*math.Sin(v.Heading)
		vector.StrokeLine(screen,
			float32(v.Position.X-dx), float32(v.Position.Y-dy),
			float32(v.Position.X+dx), float32(v.Position.Y+dy),
			1, clr, true)
		vector.StrokeCircle(screen,
			float32(v.Position.X), float32(v.Position.Y),
			float32(size), 1, clr, true)
	}
}

func (g *Game) Layout(w, h int) (int, int) { return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight) }
