package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeRect returns the axis-aligned box spanned by two corner points.
// B and T hold the smaller and larger y, which is top and bottom on screen.
func NormalizeRect(a, b cp.Vector) cp.BB {
	return cp.BB{
		L: math.Min(a.X, b.X),
		B: math.Min(a.Y, b.Y),
		R: math.Max(a.X, b.X),
		T: math.Max(a.Y, b.Y),
	}
}

func RectContains(bb cp.BB, p cp.Vector) bool {
	return p.X >= bb.L && p.X <= bb.R && p.Y >= bb.B && p.Y <= bb.T
}

// PolygonArea is the unsigned shoelace area of a closed vertex loop.
func PolygonArea(verts []cp.Vector) float64 {
	if len(verts) < 3 {
		return 0
	}
	area := 0.0
	for i := range verts {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		area += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(area) * 0.5
}

func RectCenter(bb cp.BB) cp.Vector {
	return cp.Vector{X: (bb.L + bb.R) * 0.5, Y: (bb.B + bb.T) * 0.5}
}
