package common

import "github.com/jakecoffman/cp"

const DefaultPixelsPerMeter = 50.0

// Units converts between screen pixels and solver meters. Both spaces share
// the same axes: x to the right, y down.
type Units struct {
	PixelsPerMeter float64
}

func NewUnits(ppm float64) Units {
	if ppm <= 0 {
		ppm = DefaultPixelsPerMeter
	}
	return Units{PixelsPerMeter: ppm}
}

func (u Units) ppm() float64 {
	if u.PixelsPerMeter <= 0 {
		return DefaultPixelsPerMeter
	}
	return u.PixelsPerMeter
}

func (u Units) ToMeters(p cp.Vector) cp.Vector {
	return p.Mult(1 / u.ppm())
}

func (u Units) ToPixels(p cp.Vector) cp.Vector {
	return p.Mult(u.ppm())
}

func (u Units) Meters(px float64) float64 {
	return px / u.ppm()
}

// VertsToMeters converts a local vertex list in one allocation.
func (u Units) VertsToMeters(verts []cp.Vector) []cp.Vector {
	out := make([]cp.Vector, len(verts))
	for i, v := range verts {
		out[i] = u.ToMeters(v)
	}
	return out
}
