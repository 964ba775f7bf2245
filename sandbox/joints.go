package sandbox

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/physics"
)

func (s *Scene) addJoint(kind physics.JointKind, a, b physics.BodyID, anchor cp.Vector) bool {
	if a == b || !s.solver.BodyValid(a) || !s.solver.BodyValid(b) {
		return false
	}
	id := s.solver.CreateJoint(kind, a, b, s.units.ToMeters(anchor))
	if id == physics.NoJoint {
		return false
	}
	s.joints = append(s.joints, Joint{ID: id, A: a, B: b, Wheel: kind == physics.JointRevolute})
	return true
}

// CreateWeld rigidly joins a and b at a world anchor in pixels. The bodies'
// current relative pose becomes the joint's rest pose.
func (s *Scene) CreateWeld(a, b physics.BodyID, anchor cp.Vector) bool {
	if s == nil || !s.addJoint(physics.JointWeld, a, b, anchor) {
		return false
	}
	s.emit(Event{Kind: EventWeld, Body: a, Other: b, At: anchor})
	return true
}

// CreateWheel pins wheel to host at anchor and lets it spin freely.
func (s *Scene) CreateWheel(host, wheel physics.BodyID, anchor cp.Vector) bool {
	if s == nil || !s.addJoint(physics.JointRevolute, host, wheel, anchor) {
		return false
	}
	if i := s.IndexOf(wheel); i >= 0 {
		s.bodies[i].Wheel = true
	}
	return true
}

// ToggleWheelMode flips every joint on entry i between weld and wheel while
// keeping the same set of neighbours. If any attached joint is a wheel they
// all become welds, otherwise they all become wheels.
func (s *Scene) ToggleWheelMode(i int) {
	if s == nil || !s.valid(i) {
		return
	}
	self := s.bodies[i].ID

	// Snapshot neighbours before touching the joint list.
	var hosts []physics.BodyID
	seen := make(map[physics.BodyID]bool)
	anyWheel, anyJoint := false, false
	for _, j := range s.joints {
		if !j.Touches(self) || !s.solver.JointValid(j.ID) {
			continue
		}
		anyJoint = true
		if j.Wheel {
			anyWheel = true
		}
		host := j.A
		if host == self {
			host = j.B
		}
		if host == self || !s.solver.BodyValid(host) || seen[host] {
			continue
		}
		seen[host] = true
		hosts = append(hosts, host)
	}
	if !anyJoint {
		return
	}

	s.detachJoints(self)

	anchor := s.units.ToPixels(s.solver.Position(self))
	for _, host := range hosts {
		if anyWheel {
			hostPos := s.units.ToPixels(s.solver.Position(host))
			s.addJoint(physics.JointWeld, host, self, hostPos.Add(anchor).Mult(0.5))
		} else {
			s.addJoint(physics.JointRevolute, host, self, anchor)
		}
	}
	s.bodies[i].Wheel = !anyWheel
	s.emit(Event{Kind: EventWheelToggle, Body: self, At: anchor})
}

// BodiesLinkedTo walks the joint graph breadth first from entry i and
// returns the indices of every live body reachable through live joints, i
// included. Indices come back in entry order.
func (s *Scene) BodiesLinkedTo(i int) []int {
	if s == nil || i < 0 || i >= len(s.bodies) {
		return nil
	}
	source := s.bodies[i].ID
	visited := map[physics.BodyID]bool{source: true}
	queue := []physics.BodyID{source}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, j := range s.joints {
			if !s.solver.JointValid(j.ID) {
				continue
			}
			if j.A == cur && !visited[j.B] {
				visited[j.B] = true
				queue = append(queue, j.B)
			}
			if j.B == cur && !visited[j.A] {
				visited[j.A] = true
				queue = append(queue, j.A)
			}
		}
	}

	var out []int
	for idx, b := range s.bodies {
		if visited[b.ID] && s.solver.BodyValid(b.ID) {
			out = append(out, idx)
		}
	}
	return out
}

// PendingWeld is the first pick of an unfinished weld, or NoBody.
func (s *Scene) PendingWeld() physics.BodyID {
	if s == nil {
		return physics.NoBody
	}
	return s.pendingWeld
}

// WeldPick advances the two-click weld gesture. The first pick is
// remembered; picking it again cancels; a second distinct live body welds
// the pair at their midpoint.
func (s *Scene) WeldPick(i int) {
	if s == nil || i < 0 || i >= len(s.bodies) {
		return
	}
	id := s.bodies[i].ID
	pending := s.pendingWeld
	if pending == physics.NoBody {
		s.pendingWeld = id
		return
	}
	s.pendingWeld = physics.NoBody
	if pending == id || !s.solver.BodyValid(pending) || !s.solver.BodyValid(id) {
		return
	}
	a := s.units.ToPixels(s.solver.Position(pending))
	b := s.units.ToPixels(s.solver.Position(id))
	s.CreateWeld(pending, id, a.Add(b).Mult(0.5))
}
