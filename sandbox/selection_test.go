package sandbox

import (
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sceneWithClock(t *testing.T) (*Scene, *fakeClock) {
	t.Helper()
	s := newTestScene(t, false)
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s.SetClock(clock.Now)
	return s, clock
}

func TestPickBody(t *testing.T) {
	s := newTestScene(t, false)
	s.SpawnBox(cp.Vector{X: 300, Y: 300})
	newer := s.SpawnBox(cp.Vector{X: 320, Y: 300})

	cases := []struct {
		name string
		at   cp.Vector
		want int
	}{
		{"overlap_prefers_newest", cp.Vector{X: 310, Y: 300}, s.IndexOf(newer)},
		{"older_only", cp.Vector{X: 276, Y: 300}, 0},
		{"padding_hit", cp.Vector{X: 358, Y: 300}, s.IndexOf(newer)},
		{"miss", cp.Vector{X: 900, Y: 100}, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := s.PickBody(c.at); got != c.want {
				t.Fatalf("PickBody(%v) = %d, want %d", c.at, got, c.want)
			}
		})
	}
}

func TestDragReleaseVelocity(t *testing.T) {
	s, clock := sceneWithClock(t)
	i := s.IndexOf(s.SpawnBox(cp.Vector{X: 300, Y: 300}))

	s.BeginDrag(cp.Vector{X: 300, Y: 300})
	if !s.Dragging() {
		t.Fatalf("drag did not start")
	}
	clock.Advance(100 * time.Millisecond)
	s.UpdateDrag(cp.Vector{X: 350, Y: 300})

	if p := s.Position(i); math.Abs(p.X-350) > 1e-6 || math.Abs(p.Y-300) > 1e-6 {
		t.Fatalf("dragged body at %v, want (350, 300)", p)
	}
	s.EndDrag()
	if s.Dragging() {
		t.Fatalf("drag still active after release")
	}
	if v := s.Velocity(i); math.Abs(v.X-10) > 1e-6 || math.Abs(v.Y) > 1e-6 {
		t.Fatalf("release velocity = %v, want (10, 0)", v)
	}
}

func TestDragReleaseClamped(t *testing.T) {
	s, clock := sceneWithClock(t)
	i := s.IndexOf(s.SpawnBox(cp.Vector{X: 300, Y: 300}))

	s.BeginDrag(cp.Vector{X: 300, Y: 300})
	clock.Advance(100 * time.Millisecond)
	s.UpdateDrag(cp.Vector{X: 700, Y: 300})
	s.EndDrag()
	if v := s.Velocity(i).Length(); math.Abs(v-30) > 1e-6 {
		t.Fatalf("release speed = %v, want clamped to 30", v)
	}
}

func TestDragReleaseSpinsCircles(t *testing.T) {
	s, clock := sceneWithClock(t)
	id := s.SpawnCircle(cp.Vector{X: 300, Y: 300})

	s.BeginDrag(cp.Vector{X: 300, Y: 300})
	clock.Advance(100 * time.Millisecond)
	s.UpdateDrag(cp.Vector{X: 350, Y: 300})
	s.EndDrag()

	want := 10 / 0.56 * 0.8
	if w := s.Solver().AngularVelocity(id); math.Abs(w-want) > 1e-6 {
		t.Fatalf("release spin = %v, want %v", w, want)
	}
}

func TestDragMovesSelectionAsGroup(t *testing.T) {
	s, clock := sceneWithClock(t)
	a := s.IndexOf(s.SpawnBox(cp.Vector{X: 200, Y: 300}))
	b := s.IndexOf(s.SpawnBox(cp.Vector{X: 400, Y: 300}))
	s.SelectRect(cp.BB{L: 100, B: 200, R: 500, T: 400})
	if got := s.SelectedIndices(); len(got) != 2 {
		t.Fatalf("selected %v, want both", got)
	}

	s.BeginDrag(cp.Vector{X: 200, Y: 300})
	clock.Advance(50 * time.Millisecond)
	s.UpdateDrag(cp.Vector{X: 220, Y: 250})
	s.EndDrag()

	if p := s.Position(a); math.Abs(p.X-220) > 1e-6 || math.Abs(p.Y-250) > 1e-6 {
		t.Fatalf("a at %v, want (220, 250)", p)
	}
	if p := s.Position(b); math.Abs(p.X-420) > 1e-6 || math.Abs(p.Y-250) > 1e-6 {
		t.Fatalf("b at %v, want (420, 250)", p)
	}
}

func TestMarqueeSelects(t *testing.T) {
	s := newTestScene(t, false)
	s.SpawnBox(cp.Vector{X: 200, Y: 300})
	s.SpawnBox(cp.Vector{X: 600, Y: 300})

	s.BeginDrag(cp.Vector{X: 400, Y: 400})
	s.UpdateDrag(cp.Vector{X: 100, Y: 100})
	bb, ok := s.Marquee()
	if !ok {
		t.Fatalf("marquee should be active after a miss")
	}
	if bb.L != 100 || bb.R != 400 || bb.B != 100 || bb.T != 400 {
		t.Fatalf("marquee = %+v", bb)
	}
	s.EndDrag()
	if _, ok := s.Marquee(); ok {
		t.Fatalf("marquee still active after release")
	}
	if got := s.SelectedIndices(); len(got) != 1 || got[0] != 0 {
		t.Fatalf("selected %v, want [0]", got)
	}
}

func TestRotateSelectionSnaps(t *testing.T) {
	s := newTestScene(t, false)
	id := s.SpawnBox(cp.Vector{X: 300, Y: 300})
	s.SelectRect(cp.BB{L: 0, B: 0, R: 600, T: 600})

	s.RotateSelection(0.1, true)
	if a := s.Solver().Angle(id); math.Abs(a) > 1e-9 {
		t.Fatalf("small snapped turn = %v, want 0", a)
	}
	s.RotateSelection(0.2, true)
	if a := s.Solver().Angle(id); math.Abs(a-15*math.Pi/180) > 1e-9 {
		t.Fatalf("snapped turn = %v, want 15 degrees", a)
	}
	s.RotateSelection(2.8*math.Pi/180, false)
	if a := s.Solver().Angle(id); math.Abs(a-17.8*math.Pi/180) > 1e-9 {
		t.Fatalf("free turn = %v, want 17.8 degrees", a)
	}
}

func TestDrawGesture(t *testing.T) {
	s := newTestScene(t, false)
	s.BeginDraw(DrawFreeform, cp.Vector{X: 400, Y: 200})
	for k := 1; k <= 60; k++ {
		a := float64(k) / 60 * 2 * math.Pi
		s.ExtendDraw(cp.Vector{X: 400 + 60*math.Sin(a), Y: 260 - 60*math.Cos(a)})
	}
	s.ExtendDraw(cp.Vector{X: 400.5, Y: 200.5})
	preview, ok := s.Drawing()
	if !ok || preview.Tool != DrawFreeform {
		t.Fatalf("expected a freeform preview")
	}
	for k := 1; k < len(preview.Points); k++ {
		if preview.Points[k].Distance(preview.Points[k-1]) <= 5 {
			t.Fatalf("stroke points %d and %d closer than the spacing", k-1, k)
		}
	}
	if id := s.EndDraw(cp.Vector{X: 400, Y: 200}, false); s.IndexOf(id) < 0 {
		t.Fatalf("freeform draw spawned nothing")
	}
	if _, ok := s.Drawing(); ok {
		t.Fatalf("gesture still active after EndDraw")
	}

	s.BeginDraw(DrawCircle, cp.Vector{X: 700, Y: 200})
	id := s.EndDraw(cp.Vector{X: 760, Y: 220}, true)
	i := s.IndexOf(id)
	if i < 0 {
		t.Fatalf("perfect circle draw spawned nothing")
	}
	if b, _ := s.Body(i); b.Kind != KindCircle || math.Abs(b.Radius-30) > 1e-9 {
		t.Fatalf("perfect circle = %+v, want radius 30", b)
	}
}
