package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable UI button
type Button struct {
	Label   string
	X, Y    float64
	W, H    float64
	clicked bool   // Track if already clicked this frame
	OnClick func() // Callback function

	// Styling
	BGColor    color.RGBA
	HoverColor color.RGBA
}

// NewButton creates a new button instance
func NewButton(width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		W:          width,
		H:          height,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 60, G: 45, B: 30, A: 230},
		HoverColor: color.RGBA{R: 90, G: 70, B: 45, A: 255},
	}
}

func (b *Button) MoveTo(x, y float64) { b.X, b.Y = x, y }

func (b *Button) Height() float64 { return b.H + 6 }

// Update fires OnClick once per press.
func (b *Button) Update() {
	if cursorInside(b.X, b.Y, b.W, b.H) && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !b.clicked && b.OnClick != nil {
			b.OnClick()
			b.clicked = true
		}
	} else {
		b.clicked = false
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bgColor := b.BGColor
	if cursorInside(b.X, b.Y, b.W, b.H) {
		bgColor = b.HoverColor
	}

	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.W), float32(b.H),
		bgColor, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.W), float32(b.H),
		1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+6), int(b.Y+(b.H-16)/2))
}
