package ui

import "github.com/hajimehoshi/ebiten/v2"

// Widget is implemented by everything the HUD can stack.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	// Height is the vertical space the widget takes in a panel, label included.
	Height() float64
	// MoveTo places the top-left corner of the widget.
	MoveTo(x, y float64)
}

// inside reports whether the point (px, py) lies in the rectangle.
func inside(px, py, x, y, w, h float64) bool {
	return px >= x && px <= x+w && py >= y && py <= y+h
}

// cursorInside reports whether the mouse cursor lies in the rectangle.
func cursorInside(x, y, w, h float64) bool {
	mx, my := ebiten.CursorPosition()
	return inside(float64(mx), float64(my), x, y, w, h)
}
