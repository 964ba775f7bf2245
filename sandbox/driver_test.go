package sandbox

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestIterationsFor(t *testing.T) {
	d := NewDriver(newTestScene(t, false), DefaultConfig().Driver)
	cases := []struct {
		bodies int
		want   int
	}{
		{0, 20},
		{24, 20},
		{25, 14},
		{80, 14},
		{81, 10},
		{400, 10},
	}
	for _, c := range cases {
		if got := d.IterationsFor(c.bodies); got != c.want {
			t.Fatalf("IterationsFor(%d) = %d, want %d", c.bodies, got, c.want)
		}
	}
}

func TestAdvanceRunsAtMostOneTick(t *testing.T) {
	s := newTestScene(t, false)
	d := NewDriver(s, s.Config().Driver)
	step := d.FixedDt()

	if ran := d.Advance(1); ran != 1 {
		t.Fatalf("long frame ran %d ticks, want 1", ran)
	}
	if ran := d.Advance(0); ran != 0 {
		t.Fatalf("leftover time should have been dropped, ran %d", ran)
	}
	if ran := d.Advance(step / 2); ran != 0 {
		t.Fatalf("half step ran %d ticks", ran)
	}
	if ran := d.Advance(step / 2); ran != 1 {
		t.Fatalf("two half steps ran %d ticks, want 1", ran)
	}
	if d.Ticks() != 2 {
		t.Fatalf("ticks = %d, want 2", d.Ticks())
	}
}

func TestPauseStillMovesParticles(t *testing.T) {
	s := newTestScene(t, false)
	id := s.SpawnBox(cp.Vector{X: 300, Y: 100})
	start := s.Position(s.IndexOf(id))
	s.shards = append(s.shards, Particle{Pos: cp.Vector{X: 100, Y: 100}, Life: 0.5, MaxLife: 0.5})

	d := NewDriver(s, s.Config().Driver)
	if !d.TogglePause() || !d.Paused() {
		t.Fatalf("toggle should pause")
	}
	for k := 0; k < 10; k++ {
		if ran := d.Advance(0.1); ran != 0 {
			t.Fatalf("paused driver ran %d ticks", ran)
		}
	}
	if p := s.Position(s.IndexOf(id)); p != start {
		t.Fatalf("paused body moved from %v to %v", start, p)
	}
	if len(s.Shards()) != 0 {
		t.Fatalf("shard should have expired while paused")
	}

	d.Resume()
	d.Advance(0.1)
	if v := s.Velocity(s.IndexOf(id)); v.Y <= 0 {
		t.Fatalf("resumed body gained no downward velocity: %v", v)
	}
	d.Advance(0.1)
	if p := s.Position(s.IndexOf(id)); p.Y <= start.Y {
		t.Fatalf("resumed body did not fall, y %v -> %v", start.Y, p.Y)
	}
}

func TestTickIgnoresPause(t *testing.T) {
	s := newTestScene(t, false)
	d := NewDriver(s, s.Config().Driver)
	d.Pause()
	d.Tick()
	if d.Ticks() != 1 {
		t.Fatalf("explicit tick should run while paused")
	}
	if d.Iterations() != 20 {
		t.Fatalf("iterations = %d, want 20 for an empty scene", d.Iterations())
	}
}

func TestTimeScaleEases(t *testing.T) {
	s := newTestScene(t, false)
	d := NewDriver(s, s.Config().Driver)

	d.SetTimeScale(0.5)
	if d.TargetTimeScale() != 0.5 {
		t.Fatalf("target = %v, want 0.5", d.TargetTimeScale())
	}
	if d.TimeScale() != 1 {
		t.Fatalf("scale should not jump, got %v", d.TimeScale())
	}
	d.Advance(0.1)
	if got := d.TimeScale(); got >= 1 || got <= 0.5 {
		t.Fatalf("mid-ease scale = %v, want between 0.5 and 1", got)
	}
	d.Advance(0.3)
	if got := d.TimeScale(); got != 0.5 {
		t.Fatalf("eased scale = %v, want 0.5", got)
	}

	d.ToggleTimeScale(0.5)
	if d.TargetTimeScale() != 1 {
		t.Fatalf("toggle should return to 1, got %v", d.TargetTimeScale())
	}
}

func TestTimeScaleClamped(t *testing.T) {
	cfg := DefaultConfig().Driver
	cfg.TimeScaleEase = 0
	d := NewDriver(newTestScene(t, false), cfg)

	d.SetTimeScale(100)
	if d.TimeScale() != 4 {
		t.Fatalf("scale = %v, want clamped to 4", d.TimeScale())
	}
	d.SetTimeScale(0.01)
	if math.Abs(d.TimeScale()-0.1) > 1e-12 {
		t.Fatalf("scale = %v, want clamped to 0.1", d.TimeScale())
	}
}

func TestSlowMotionTicksLessOften(t *testing.T) {
	cfg := DefaultConfig().Driver
	cfg.TimeScaleEase = 0
	s := newTestScene(t, false)
	d := NewDriver(s, cfg)
	d.SetTimeScale(0.5)

	ran := 0
	for k := 0; k < 20; k++ {
		ran += d.Advance(d.FixedDt())
	}
	if ran != 10 {
		t.Fatalf("half speed ran %d ticks over 20 frames, want 10", ran)
	}
}
