package sandbox

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSurfaceFor(t *testing.T) {
	tune := DefaultSurfaceTuning()
	cases := []struct {
		name     string
		kind     Kind
		features Features
		want     SurfaceParams
	}{
		{
			name: "plain_box",
			kind: KindBox,
			want: SurfaceParams{Friction: 1.6, LinearDamping: 0.08, AngularDamping: 1.2},
		},
		{
			name:     "slippery_circle",
			kind:     KindCircle,
			features: Features{Slippery: true},
			want:     SurfaceParams{Friction: 0.015, LinearDamping: 0.015, AngularDamping: 0.03},
		},
		{
			name:     "sticky_wins_over_slippery",
			kind:     KindBox,
			features: Features{Slippery: true, Sticky: true},
			want:     SurfaceParams{Friction: 3.2, RollingResistance: 0.02, LinearDamping: 0.09, AngularDamping: 1},
		},
		{
			name:     "bouncy_sticky",
			kind:     KindPolygon,
			features: Features{Sticky: true, Bouncy: true},
			want:     SurfaceParams{Friction: 3.2, Restitution: 0.78, RollingResistance: 0.02, LinearDamping: 0.03, AngularDamping: 1.2},
		},
		{
			name:     "glass_changes_nothing",
			kind:     KindTriangle,
			features: Features{Glass: true},
			want:     SurfaceParams{Friction: 1.6, LinearDamping: 0.08, AngularDamping: 1.2},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SurfaceFor(c.kind, c.features, tune)
			if !closeParams(got, c.want) {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func closeParams(a, b SurfaceParams) bool {
	eq := func(x, y float64) bool { return math.Abs(x-y) < 1e-9 }
	return eq(a.Friction, b.Friction) &&
		eq(a.Restitution, b.Restitution) &&
		eq(a.RollingResistance, b.RollingResistance) &&
		eq(a.LinearDamping, b.LinearDamping) &&
		eq(a.AngularDamping, b.AngularDamping)
}

func TestToggleFeature(t *testing.T) {
	s := newTestScene(t, false)
	i := s.IndexOf(s.SpawnBox(cp.Vector{X: 300, Y: 300}))

	s.ToggleFeature(i, FeatureGlass)
	b, _ := s.Body(i)
	if !b.Features.Glass || b.Grace != 60 || b.Stress != 0 {
		t.Fatalf("enabling glass: %+v", b)
	}
	s.ToggleFeature(i, FeatureGlass)
	b, _ = s.Body(i)
	if b.Features.Glass || b.Grace != 0 {
		t.Fatalf("disabling glass: %+v", b)
	}

	s.ToggleFeature(i, FeatureSticky)
	s.ToggleFeature(i, FeatureBouncy)
	b, _ = s.Body(i)
	if !b.Features.Has(FeatureSticky) || !b.Features.Has(FeatureBouncy) || b.Features.Has(FeatureSlippery) {
		t.Fatalf("unexpected features %+v", b.Features)
	}
}

func TestApplyToolTogglesFeatureUnderPointer(t *testing.T) {
	s := newTestScene(t, false)
	i := s.IndexOf(s.SpawnBox(cp.Vector{X: 300, Y: 300}))

	if !s.ApplyTool(ToolSlip, cp.Vector{X: 300, Y: 300}) {
		t.Fatalf("tool should hit the box")
	}
	if b, _ := s.Body(i); !b.Features.Slippery {
		t.Fatalf("slip tool did not apply")
	}
	if s.ApplyTool(ToolBounce, cp.Vector{X: 900, Y: 100}) {
		t.Fatalf("tool should miss empty space")
	}
}
