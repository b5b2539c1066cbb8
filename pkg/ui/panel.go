package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	panelPadding = 8.0
	titleHeight  = 20.0
)

// Panel is a small heads-up display stacking widgets vertically under a title.
type Panel struct {
	Title   string
	X, Y    float64
	Width   float64
	Widgets []Widget

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel at x, y.
func NewPanel(title string, x, y, width float64) *Panel {
	return &Panel{
		Title:       title,
		X:           x,
		Y:           y,
		Width:       width,
		BGColor:     color.RGBA{R: 20, G: 14, B: 6, A: 200},
		BorderColor: color.RGBA{R: 120, G: 100, B: 80, A: 255},
	}
}

// Add appends w below the previous widgets.
func (p *Panel) Add(w Widget) {
	w.MoveTo(p.X+panelPadding, p.Y+p.Height()-panelPadding)
	p.Widgets = append(p.Widgets, w)
}

// Height returns the total height of the panel.
func (p *Panel) Height() float64 {
	h := titleHeight + 2*panelPadding
	for _, w := range p.Widgets {
		h += w.Height()
	}
	return h
}

// Contains reports whether (x, y) is over the panel. Clicks there belong to the HUD.
func (p *Panel) Contains(x, y float64) bool {
	return inside(x, y, p.X, p.Y, p.Width, p.Height())
}

func (p *Panel) Update() {
	for _, w := range p.Widgets {
		w.Update()
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height()),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height()),
		1, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+panelPadding), int(p.Y+4))

	for _, w := range p.Widgets {
		w.Draw(screen)
	}
}
