package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Toggle is a labelled checkbox bound to a display option.
type Toggle struct {
	Label    string
	Value    bool
	X, Y     float64
	Size     float64
	OnChange func(bool)
	clicked  bool // debounce: one toggle per press
}

// NewToggle creates a new toggle instance
func NewToggle(label string, value bool, onChange func(bool)) *Toggle {
	return &Toggle{
		Label:    label,
		Value:    value,
		Size:     14,
		OnChange: onChange,
	}
}

func (t *Toggle) MoveTo(x, y float64) { t.X, t.Y = x, y }

func (t *Toggle) Height() float64 { return t.Size + 8 }

// Update flips the value on a click inside the box or on its label.
func (t *Toggle) Update() {
	over := cursorInside(t.X, t.Y, t.Size+8+float64(len(t.Label))*6, t.Size)
	if over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !t.clicked {
			t.Set(!t.Value)
			t.clicked = true
		}
	} else {
		t.clicked = false
	}
}

// Set changes the value and notifies OnChange when it actually changed.
func (t *Toggle) Set(value bool) {
	if value == t.Value {
		return
	}
	t.Value = value
	if t.OnChange != nil {
		t.OnChange(value)
	}
}

func (t *Toggle) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(t.X), float32(t.Y),
		float32(t.Size), float32(t.Size),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if t.Value {
		vector.FillRect(screen,
			float32(t.X+3), float32(t.Y+3),
			float32(t.Size-6), float32(t.Size-6),
			color.RGBA{R: 255, G: 245, B: 230, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, t.Label, int(t.X+t.Size+8), int(t.Y-1))
}
