package render

import (
	"math"
	"testing"
)

func TestGradientOffset(t *testing.T) {
	const width = 1000.0
	tests := []struct {
		name   string
		px, py float64
		want   float64
	}{
		{"StartCentre", 75, 50, 0},
		{"InsideStartCircle", 78, 50, 0},
		{"OnEndCircle", 1090, 60, 1},
		{"BeyondEndCircle", 5000, 5000, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gradientOffset(tt.px, tt.py, width); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("gradientOffset(%v, %v) = %v; want %v", tt.px, tt.py, got, tt.want)
			}
		})
	}

	t.Run("GrowsOutward", func(t *testing.T) {
		prev := -1.0
		for x := 100.0; x <= 1090; x += 10 {
			got := gradientOffset(x, 60, width)
			if got < prev {
				t.Fatalf("gradientOffset(%v, 60) = %v; smaller than %v closer in", x, got, prev)
			}
			prev = got
		}
	})
}
