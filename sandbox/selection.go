package sandbox

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/physics"
)

type dragOffset struct {
	id     physics.BodyID
	offset cp.Vector
}

type dragState struct {
	active      bool
	offsets     []dragOffset
	prevPointer cp.Vector
	prevTime    time.Time
	// release is the latest pointer velocity in m/s.
	release cp.Vector
}

type marqueeState struct {
	active         bool
	start, current cp.Vector
}

// PickBody returns the index of the body under p (pixels), or -1. Newer
// bodies win. Without an exact hit the nearest body whose padded bounds
// contain p is used.
func (s *Scene) PickBody(p cp.Vector) int {
	if s == nil {
		return -1
	}
	pm := s.units.ToMeters(p)
	pad := s.cfg.Drag.PickPadding
	nearest, best := -1, math.MaxFloat64
	for i := len(s.bodies) - 1; i >= 0; i-- {
		id := s.bodies[i].ID
		if !s.solver.BodyValid(id) {
			continue
		}
		if s.solver.TestPoint(id, pm) {
			return i
		}
		bb := s.solver.Bounds(id)
		bb = cp.BB{L: bb.L - pad, B: bb.B - pad, R: bb.R + pad, T: bb.T + pad}
		if !common.RectContains(bb, pm) {
			continue
		}
		if d := s.solver.Position(id).DistanceSq(pm); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

func (s *Scene) ClearSelection() {
	if s == nil {
		return
	}
	for i := range s.bodies {
		s.bodies[i].Selected = false
	}
}

func (s *Scene) SelectedIndices() []int {
	if s == nil {
		return nil
	}
	var out []int
	for i := range s.bodies {
		if s.bodies[i].Selected && s.solver.BodyValid(s.bodies[i].ID) {
			out = append(out, i)
		}
	}
	return out
}

// SelectRect replaces the selection with every body whose center lies in bb
// (pixels).
func (s *Scene) SelectRect(bb cp.BB) {
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Selected = false
		if !s.solver.BodyValid(b.ID) {
			continue
		}
		b.Selected = common.RectContains(bb, s.units.ToPixels(s.solver.Position(b.ID)))
	}
}

// Marquee returns the selection rectangle while one is being dragged.
func (s *Scene) Marquee() (cp.BB, bool) {
	if s == nil || !s.marquee.active {
		return cp.BB{}, false
	}
	return common.NormalizeRect(s.marquee.start, s.marquee.current), true
}

func (s *Scene) Dragging() bool {
	return s != nil && s.drag.active
}

// BeginDrag starts a cursor gesture at p. A miss starts a marquee. A hit on
// an unselected body selects only that body; a hit on a selected one drags
// the whole selection keeping its formation.
func (s *Scene) BeginDrag(p cp.Vector) {
	if s == nil {
		return
	}
	i := s.PickBody(p)
	if i < 0 {
		s.marquee = marqueeState{active: true, start: p, current: p}
		return
	}
	if !s.bodies[i].Selected {
		s.ClearSelection()
		s.bodies[i].Selected = true
	}

	s.drag = dragState{active: true, prevPointer: p, prevTime: s.now()}
	for _, si := range s.SelectedIndices() {
		id := s.bodies[si].ID
		c := s.units.ToPixels(s.solver.Position(id))
		s.drag.offsets = append(s.drag.offsets, dragOffset{id: id, offset: c.Sub(p)})
		s.solver.Wake(id)
	}
}

// UpdateDrag moves dragged bodies kinematically to the pointer and sets
// their velocity to the pointer's, measured on the wall clock.
func (s *Scene) UpdateDrag(p cp.Vector) {
	if s == nil {
		return
	}
	if s.marquee.active {
		s.marquee.current = p
	}
	if !s.drag.active {
		return
	}
	now := s.now()
	if dt := now.Sub(s.drag.prevTime).Seconds(); dt > 0.0001 {
		s.drag.release = s.units.ToMeters(p.Sub(s.drag.prevPointer).Mult(1 / dt))
		s.drag.prevPointer = p
		s.drag.prevTime = now
	}
	for _, o := range s.drag.offsets {
		if !s.solver.BodyValid(o.id) {
			continue
		}
		target := s.units.ToMeters(p.Add(o.offset))
		s.solver.SetTransform(o.id, target, s.solver.Angle(o.id))
		s.solver.SetVelocity(o.id, s.drag.release)
		s.solver.SetAngularVelocity(o.id, 0)
	}
}

// EndDrag releases the gesture. Dragged bodies keep the clamped pointer
// velocity and circles pick up spin as if rolling off the hand. A marquee
// selects what it covers.
func (s *Scene) EndDrag() {
	if s == nil {
		return
	}
	if s.drag.active {
		release := s.drag.release
		if limit := s.cfg.Drag.MaxReleaseSpeed; release.Length() > limit {
			release = release.Clamp(limit)
		}
		for _, o := range s.drag.offsets {
			i := s.IndexOf(o.id)
			if i < 0 {
				continue
			}
			s.solver.SetVelocity(o.id, release)
			if b := &s.bodies[i]; b.Kind == KindCircle {
				r := math.Max(0.01, s.units.Meters(b.Radius))
				s.solver.SetAngularVelocity(o.id, release.X/r*s.cfg.Drag.SpinFactor)
			}
		}
		s.drag = dragState{}
	}
	if s.marquee.active {
		s.SelectRect(common.NormalizeRect(s.marquee.start, s.marquee.current))
		s.marquee = marqueeState{}
	}
}

// RotateSelection turns every selected body by delta radians. With snap the
// result lands on the nearest snap increment.
func (s *Scene) RotateSelection(delta float64, snap bool) {
	if s == nil {
		return
	}
	step := s.cfg.Drag.SnapDegrees * deg
	for _, i := range s.SelectedIndices() {
		id := s.bodies[i].ID
		a := s.solver.Angle(id) + delta
		if snap && step > 0 {
			a = math.Round(a/step) * step
		}
		s.solver.SetTransform(id, s.solver.Position(id), a)
		s.solver.SetAngularVelocity(id, 0)
		s.solver.Wake(id)
	}
}
