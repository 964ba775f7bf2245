package sandbox

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/physics"
)

type Kind int

const (
	KindBox Kind = iota
	KindCircle
	KindTriangle
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

type Feature int

const (
	FeatureBouncy Feature = iota
	FeatureSlippery
	FeatureSticky
	FeatureGlass
)

func (f Feature) String() string {
	switch f {
	case FeatureBouncy:
		return "bouncy"
	case FeatureSlippery:
		return "slippery"
	case FeatureSticky:
		return "sticky"
	case FeatureGlass:
		return "glass"
	default:
		return "unknown"
	}
}

type Features struct {
	Bouncy   bool
	Slippery bool
	Sticky   bool
	Glass    bool
}

func (f Features) Has(feature Feature) bool {
	switch feature {
	case FeatureBouncy:
		return f.Bouncy
	case FeatureSlippery:
		return f.Slippery
	case FeatureSticky:
		return f.Sticky
	case FeatureGlass:
		return f.Glass
	}
	return false
}

// Body is a registry entry. Geometry is kept in body-local pixels so it can
// be drawn and measured without asking the solver.
type Body struct {
	ID         physics.BodyID
	Kind       Kind
	LocalVerts []cp.Vector
	Radius     float64

	Selected bool
	Wheel    bool
	Features Features

	// Glass only.
	Stress float64
	Grace  int
}

// WorldOutline places the local outline at center (px) rotated by angle.
// Circles return nil.
func (b *Body) WorldOutline(center cp.Vector, angle float64) []cp.Vector {
	if b == nil || b.Kind == KindCircle {
		return nil
	}
	rot := cp.ForAngle(angle)
	out := make([]cp.Vector, len(b.LocalVerts))
	for i, v := range b.LocalVerts {
		out[i] = center.Add(rot.Rotate(v))
	}
	return out
}

// AreaPx is the shape area in square pixels, never below 1.
func (b *Body) AreaPx() float64 {
	if b == nil {
		return 1
	}
	if b.Kind == KindCircle {
		return math.Pi * b.Radius * b.Radius
	}
	if len(b.LocalVerts) < 3 {
		r := b.approxRadius(0)
		return r * r
	}
	return math.Max(1, common.PolygonArea(b.LocalVerts))
}

func (b *Body) approxRadius(floor float64) float64 {
	if b.Kind == KindCircle {
		return math.Max(8, b.Radius)
	}
	r := 0.0
	for _, v := range b.LocalVerts {
		r = math.Max(r, v.Length())
	}
	return math.Max(r, floor)
}

// Joint is a registry joint entry. Endpoints are identities so a joint can
// still be matched after one of its bodies is gone.
type Joint struct {
	ID    physics.JointID
	A, B  physics.BodyID
	Wheel bool
}

func (j Joint) Touches(id physics.BodyID) bool {
	return j.A == id || j.B == id
}

// Particle is a purely visual shard or water droplet.
type Particle struct {
	Pos     cp.Vector
	Vel     cp.Vector
	Radius  float64
	Life    float64
	MaxLife float64
}

// LifeFraction is the remaining life in [0,1], used for fading.
func (p Particle) LifeFraction() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, p.Life/p.MaxLife))
}

type Location int

const (
	LocationLand Location = iota
	LocationWater
)

func (l Location) String() string {
	if l == LocationWater {
		return "water"
	}
	return "land"
}

type Tool int

const (
	ToolCursor Tool = iota
	ToolWeld
	ToolWheel
	ToolBounce
	ToolSlip
	ToolSticky
	ToolGlass
)

func (t Tool) String() string {
	return [...]string{"cursor", "weld", "wheel", "bounce", "slip", "sticky", "glass"}[t]
}

// Feature maps a modifier tool to the flag it toggles.
func (t Tool) Feature() (Feature, bool) {
	switch t {
	case ToolBounce:
		return FeatureBouncy, true
	case ToolSlip:
		return FeatureSlippery, true
	case ToolSticky:
		return FeatureSticky, true
	case ToolGlass:
		return FeatureGlass, true
	}
	return 0, false
}

type DrawTool int

const (
	DrawNone DrawTool = iota
	DrawQuad
	DrawCircle
	DrawTriangle
	DrawFreeform
)

func (d DrawTool) String() string {
	return [...]string{"none", "quad", "circle", "triangle", "freeform"}[d]
}
