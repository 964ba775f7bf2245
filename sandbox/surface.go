package sandbox

import (
	"math"

	"github.com/milk9111/physbox/physics"
)

// SurfaceTuning holds the base values and the clamps each modifier applies.
type SurfaceTuning struct {
	PolygonFriction float64 `yaml:"polygon_friction"`
	CircleFriction  float64 `yaml:"circle_friction"`

	LinearDamping         float64 `yaml:"linear_damping"`
	PolygonAngularDamping float64 `yaml:"polygon_angular_damping"`
	CircleAngularDamping  float64 `yaml:"circle_angular_damping"`

	SlipperyFriction       float64 `yaml:"slippery_friction"`
	SlipperyLinearDamping  float64 `yaml:"slippery_linear_damping"`
	SlipperyAngularDamping float64 `yaml:"slippery_angular_damping"`

	StickyFriction       float64 `yaml:"sticky_friction"`
	StickyRolling        float64 `yaml:"sticky_rolling"`
	StickyLinearDamping  float64 `yaml:"sticky_linear_damping"`
	StickyAngularDamping float64 `yaml:"sticky_angular_damping"`

	BouncyRestitution   float64 `yaml:"bouncy_restitution"`
	BouncyLinearDamping float64 `yaml:"bouncy_linear_damping"`
}

func DefaultSurfaceTuning() SurfaceTuning {
	return SurfaceTuning{
		PolygonFriction:        1.6,
		CircleFriction:         0.95,
		LinearDamping:          0.08,
		PolygonAngularDamping:  1.2,
		CircleAngularDamping:   0.03,
		SlipperyFriction:       0.015,
		SlipperyLinearDamping:  0.015,
		SlipperyAngularDamping: 0.05,
		StickyFriction:         3.2,
		StickyRolling:          0.02,
		StickyLinearDamping:    0.09,
		StickyAngularDamping:   1,
		BouncyRestitution:      0.78,
		BouncyLinearDamping:    0.03,
	}
}

type SurfaceParams struct {
	Friction          float64
	Restitution       float64
	RollingResistance float64
	LinearDamping     float64
	AngularDamping    float64
}

// SurfaceFor maps a kind and its modifier flags to solver parameters.
// Modifiers apply in a fixed order, slippery then sticky then bouncy, so when
// two of them clamp the same value the later one wins.
func SurfaceFor(kind Kind, f Features, t SurfaceTuning) SurfaceParams {
	p := SurfaceParams{
		Friction:       t.PolygonFriction,
		LinearDamping:  t.LinearDamping,
		AngularDamping: t.PolygonAngularDamping,
	}
	if kind == KindCircle {
		p.Friction = t.CircleFriction
		p.AngularDamping = t.CircleAngularDamping
	}

	if f.Slippery {
		p.Friction = math.Min(p.Friction, t.SlipperyFriction)
		p.RollingResistance = 0
		p.LinearDamping = t.SlipperyLinearDamping
		p.AngularDamping = math.Min(p.AngularDamping, t.SlipperyAngularDamping)
	}
	if f.Sticky {
		p.Friction = math.Max(p.Friction, t.StickyFriction)
		p.RollingResistance = math.Max(p.RollingResistance, t.StickyRolling)
		p.LinearDamping = math.Max(p.LinearDamping, t.StickyLinearDamping)
		p.AngularDamping = math.Max(p.AngularDamping, t.StickyAngularDamping)
	}
	if f.Bouncy {
		p.Restitution = math.Max(p.Restitution, t.BouncyRestitution)
		p.LinearDamping = math.Min(p.LinearDamping, t.BouncyLinearDamping)
	}
	return p
}

func (s *Scene) applySurface(i int) {
	if !s.valid(i) {
		return
	}
	b := &s.bodies[i]
	p := SurfaceFor(b.Kind, b.Features, s.cfg.Surface)
	s.solver.SetMaterial(b.ID, physics.Material{
		Friction:          p.Friction,
		Restitution:       p.Restitution,
		RollingResistance: p.RollingResistance,
	})
	s.solver.SetDamping(b.ID, p.LinearDamping, p.AngularDamping)
}

// ToggleFeature flips one modifier on entry i and re-applies its surface.
// Enabling glass starts a grace period with no stress.
func (s *Scene) ToggleFeature(i int, feature Feature) {
	if s == nil || !s.valid(i) {
		return
	}
	b := &s.bodies[i]
	switch feature {
	case FeatureBouncy:
		b.Features.Bouncy = !b.Features.Bouncy
	case FeatureSlippery:
		b.Features.Slippery = !b.Features.Slippery
	case FeatureSticky:
		b.Features.Sticky = !b.Features.Sticky
	case FeatureGlass:
		b.Features.Glass = !b.Features.Glass
		b.Stress = 0
		b.Grace = 0
		if b.Features.Glass {
			b.Grace = s.cfg.Fracture.GraceTicks
		}
	default:
		return
	}
	s.applySurface(i)
}
