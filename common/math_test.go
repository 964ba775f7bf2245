package common

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestNormalizeRect(t *testing.T) {
	bb := NormalizeRect(cp.Vector{X: 30, Y: 5}, cp.Vector{X: 10, Y: 25})
	if bb != (cp.BB{L: 10, B: 5, R: 30, T: 25}) {
		t.Fatalf("got %+v", bb)
	}
	if c := RectCenter(bb); c != (cp.Vector{X: 20, Y: 15}) {
		t.Fatalf("center = %v", c)
	}
	if !RectContains(bb, cp.Vector{X: 10, Y: 25}) || RectContains(bb, cp.Vector{X: 9, Y: 10}) {
		t.Fatalf("containment is wrong for %+v", bb)
	}
}

func TestPolygonArea(t *testing.T) {
	cases := []struct {
		name  string
		verts []cp.Vector
		want  float64
	}{
		{"square_ccw", []cp.Vector{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}, 4},
		{"square_cw", []cp.Vector{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}}, 4},
		{"triangle", []cp.Vector{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 3}}, 6},
		{"degenerate", []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := PolygonArea(c.verts); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("area = %v, want %v", got, c.want)
			}
		})
	}
}

func TestUnits(t *testing.T) {
	u := NewUnits(0)
	if u.PixelsPerMeter != DefaultPixelsPerMeter {
		t.Fatalf("zero ppm should fall back to the default, got %v", u.PixelsPerMeter)
	}
	p := cp.Vector{X: 100, Y: -25}
	if got := u.ToPixels(u.ToMeters(p)); got.Distance(p) > 1e-9 {
		t.Fatalf("round trip moved %v to %v", p, got)
	}
	if got := u.Meters(75); got != 1.5 {
		t.Fatalf("Meters(75) = %v", got)
	}
	if ClampInt(9, 0, 5) != 5 || Clamp(-1, 0, 1) != 0 || Lerp(2, 4, 0.5) != 3 {
		t.Fatalf("clamp/lerp helpers are off")
	}
}
