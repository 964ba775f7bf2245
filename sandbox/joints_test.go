package sandbox

import (
	"sort"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/physics"
)

func neighbours(s *Scene, id physics.BodyID) []physics.BodyID {
	var out []physics.BodyID
	for _, j := range s.Joints() {
		switch id {
		case j.A:
			out = append(out, j.B)
		case j.B:
			out = append(out, j.A)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i] < out[k] })
	return out
}

func TestWeldPickGesture(t *testing.T) {
	s := newTestScene(t, false)
	a := s.SpawnBox(cp.Vector{X: 300, Y: 300})
	b := s.SpawnBox(cp.Vector{X: 400, Y: 300})
	s.Events()

	s.WeldPick(s.IndexOf(a))
	if s.PendingWeld() != a {
		t.Fatalf("pending = %v, want %v", s.PendingWeld(), a)
	}
	s.WeldPick(s.IndexOf(a))
	if s.PendingWeld() != physics.NoBody || len(s.Joints()) != 0 {
		t.Fatalf("picking the same body twice should cancel")
	}

	s.WeldPick(s.IndexOf(a))
	s.WeldPick(s.IndexOf(b))
	if s.PendingWeld() != physics.NoBody {
		t.Fatalf("pending weld should clear after the second pick")
	}
	if len(s.Joints()) != 1 || s.Joints()[0].Wheel {
		t.Fatalf("expected one weld, got %+v", s.Joints())
	}
	if countEvents(s.Events(), EventWeld) != 1 {
		t.Fatalf("expected a weld event")
	}
}

func TestWeldPickStaleFirstPick(t *testing.T) {
	s := newTestScene(t, false)
	a := s.SpawnBox(cp.Vector{X: 300, Y: 300})
	b := s.SpawnBox(cp.Vector{X: 400, Y: 300})

	s.WeldPick(s.IndexOf(a))
	s.DeleteBody(s.IndexOf(a))
	s.WeldPick(s.IndexOf(b))
	if len(s.Joints()) != 0 {
		t.Fatalf("welded to a deleted body")
	}
	if s.PendingWeld() != physics.NoBody {
		t.Fatalf("stale pick should be discarded")
	}
}

func TestToggleWheelModeKeepsNeighbours(t *testing.T) {
	s := newTestScene(t, false)
	hub := s.SpawnBox(cp.Vector{X: 400, Y: 300})
	left := s.SpawnCircle(cp.Vector{X: 340, Y: 340})
	right := s.SpawnCircle(cp.Vector{X: 460, Y: 340})
	s.CreateWeld(hub, left, cp.Vector{X: 370, Y: 320})
	s.CreateWeld(hub, right, cp.Vector{X: 430, Y: 320})
	before := neighbours(s, hub)

	s.ToggleWheelMode(s.IndexOf(hub))
	if got := neighbours(s, hub); !equalIDs(got, before) {
		t.Fatalf("neighbours changed to %v, want %v", got, before)
	}
	for _, j := range s.Joints() {
		if !j.Wheel || !s.Solver().JointValid(j.ID) {
			t.Fatalf("expected live wheel joints, got %+v", j)
		}
	}
	if b, _ := s.Body(s.IndexOf(hub)); !b.Wheel {
		t.Fatalf("hub should be marked as wheel")
	}

	s.ToggleWheelMode(s.IndexOf(hub))
	if got := neighbours(s, hub); !equalIDs(got, before) {
		t.Fatalf("neighbours changed to %v after second toggle", got)
	}
	for _, j := range s.Joints() {
		if j.Wheel {
			t.Fatalf("second toggle should restore welds")
		}
	}
	if b, _ := s.Body(s.IndexOf(hub)); b.Wheel {
		t.Fatalf("hub should no longer be a wheel")
	}
}

func TestToggleWheelModeWithoutJoints(t *testing.T) {
	s := newTestScene(t, false)
	a := s.SpawnBox(cp.Vector{X: 300, Y: 300})
	s.Events()
	s.ToggleWheelMode(s.IndexOf(a))
	if len(s.Joints()) != 0 || len(s.Events()) != 0 {
		t.Fatalf("toggling a free body should do nothing")
	}
}

func TestBodiesLinkedTo(t *testing.T) {
	s := newTestScene(t, false)
	a := s.SpawnBox(cp.Vector{X: 200, Y: 300})
	b := s.SpawnBox(cp.Vector{X: 260, Y: 300})
	c := s.SpawnBox(cp.Vector{X: 320, Y: 300})
	s.SpawnBox(cp.Vector{X: 600, Y: 300})
	s.CreateWeld(a, b, cp.Vector{X: 230, Y: 300})
	s.CreateWheel(b, c, cp.Vector{X: 290, Y: 300})

	if got := s.BodiesLinkedTo(s.IndexOf(a)); len(got) != 3 {
		t.Fatalf("linked = %v, want 3 bodies", got)
	}
	if got := s.BodiesLinkedTo(3); len(got) != 1 || got[0] != 3 {
		t.Fatalf("isolated body linked = %v", got)
	}

	s.DeleteBody(s.IndexOf(b))
	got := s.BodiesLinkedTo(s.IndexOf(a))
	if len(got) != 1 || got[0] != s.IndexOf(a) {
		t.Fatalf("after deleting the middle, linked = %v", got)
	}
}

func TestCreateWheelMarksWheelBody(t *testing.T) {
	s := newTestScene(t, false)
	host := s.SpawnBox(cp.Vector{X: 400, Y: 300})
	wheel := s.SpawnCircle(cp.Vector{X: 440, Y: 340})
	if !s.CreateWheel(host, wheel, cp.Vector{X: 440, Y: 340}) {
		t.Fatalf("wheel joint not created")
	}
	if b, _ := s.Body(s.IndexOf(wheel)); !b.Wheel {
		t.Fatalf("wheel body should be marked")
	}
	if b, _ := s.Body(s.IndexOf(host)); b.Wheel {
		t.Fatalf("host should not be marked")
	}
	if len(s.Joints()) != 1 || !s.Joints()[0].Wheel {
		t.Fatalf("expected one wheel joint, got %+v", s.Joints())
	}
}

func TestBodiesLinkedToRing(t *testing.T) {
	s := newTestScene(t, false)
	var ids []physics.BodyID
	for k := 0; k < 4; k++ {
		ids = append(ids, s.SpawnBox(cp.Vector{X: 200 + float64(k)*70, Y: 300}))
	}
	for k := range ids {
		next := ids[(k+1)%len(ids)]
		s.CreateWeld(ids[k], next, cp.Vector{X: 235 + float64(k)*70, Y: 300})
	}
	got := s.BodiesLinkedTo(s.IndexOf(ids[2]))
	if len(got) != 4 {
		t.Fatalf("linked = %v, want all 4", got)
	}
	for k, idx := range got {
		if idx != k {
			t.Fatalf("linked = %v, want entry order", got)
		}
	}
}

func TestJointsRejectSelfAndStale(t *testing.T) {
	s := newTestScene(t, false)
	a := s.SpawnBox(cp.Vector{X: 200, Y: 300})
	b := s.SpawnBox(cp.Vector{X: 300, Y: 300})
	if s.CreateWeld(a, a, cp.Vector{X: 200, Y: 300}) {
		t.Fatalf("self weld should fail")
	}
	s.DeleteBody(s.IndexOf(b))
	if s.CreateWheel(a, b, cp.Vector{X: 250, Y: 300}) {
		t.Fatalf("wheel to a deleted body should fail")
	}
}

func equalIDs(a, b []physics.BodyID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
