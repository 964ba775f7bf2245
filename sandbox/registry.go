package sandbox

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/physics"
)

// Bodies returns the live entries in spawn order. Callers must not modify
// the slice.
func (s *Scene) Bodies() []Body {
	if s == nil {
		return nil
	}
	return s.bodies
}

func (s *Scene) Joints() []Joint {
	if s == nil {
		return nil
	}
	return s.joints
}

func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bodies)
}

// Body returns a copy of entry i.
func (s *Scene) Body(i int) (Body, bool) {
	if s == nil || i < 0 || i >= len(s.bodies) {
		return Body{}, false
	}
	return s.bodies[i], true
}

// IndexOf finds the entry for a live identity, or -1.
func (s *Scene) IndexOf(id physics.BodyID) int {
	if s == nil || id == physics.NoBody {
		return -1
	}
	for i := range s.bodies {
		if s.bodies[i].ID == id && s.solver.BodyValid(id) {
			return i
		}
	}
	return -1
}

func (s *Scene) valid(i int) bool {
	return i >= 0 && i < len(s.bodies) && s.solver.BodyValid(s.bodies[i].ID)
}

// SpawnHistory is a copy of the spawn-order stack, oldest first.
func (s *Scene) SpawnHistory() []physics.BodyID {
	return append([]physics.BodyID(nil), s.spawnOrder...)
}

func (s *Scene) pushSpawn(id physics.BodyID) {
	s.spawnOrder = append(s.spawnOrder, id)
	if limit := s.cfg.Spawn.HistoryCap; len(s.spawnOrder) > limit {
		drop := limit / 2
		s.spawnOrder = append(s.spawnOrder[:0], s.spawnOrder[drop:]...)
	}
}

func (s *Scene) register(b Body) {
	s.bodies = append(s.bodies, b)
	s.applySurface(len(s.bodies) - 1)
	s.pushSpawn(b.ID)
	s.emit(Event{Kind: EventSpawn, Body: b.ID, At: s.units.ToPixels(s.solver.Position(b.ID))})
}

// DeleteBody removes entry i. Joints touching it go first, then the solver
// body, then the entry and every piece of bookkeeping keyed by its identity.
func (s *Scene) DeleteBody(i int) {
	if s == nil || i < 0 || i >= len(s.bodies) {
		return
	}
	id := s.bodies[i].ID
	alive := s.solver.BodyValid(id)

	s.waterStates.Remove(ecs.Entity(id))
	s.detachJoints(id)

	if alive {
		s.solver.DestroyBody(id)
	}
	s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)

	kept := s.spawnOrder[:0]
	for _, sid := range s.spawnOrder {
		if sid != id {
			kept = append(kept, sid)
		}
	}
	s.spawnOrder = kept
	if alive {
		s.emit(Event{Kind: EventDelete, Body: id})
	}
}

// detachJoints destroys every joint touching id, along with any joint whose
// solver handle is already gone.
func (s *Scene) detachJoints(id physics.BodyID) {
	kept := s.joints[:0]
	for _, j := range s.joints {
		alive := s.solver.JointValid(j.ID)
		if j.Touches(id) || !alive {
			if alive {
				s.solver.DestroyJoint(j.ID)
			}
			continue
		}
		kept = append(kept, j)
	}
	s.joints = kept
}

// DeleteBodyAt deletes whatever PickBody finds at p.
func (s *Scene) DeleteBodyAt(p cp.Vector) bool {
	i := s.PickBody(p)
	if i < 0 {
		return false
	}
	s.DeleteBody(i)
	return true
}

// UndoLastSpawn deletes the newest body that still exists. Identities of
// bodies that are already gone are discarded on the way.
func (s *Scene) UndoLastSpawn() bool {
	if s == nil {
		return false
	}
	for len(s.spawnOrder) > 0 {
		last := len(s.spawnOrder) - 1
		id := s.spawnOrder[last]
		s.spawnOrder = s.spawnOrder[:last]
		if i := s.IndexOf(id); i >= 0 {
			s.DeleteBody(i)
			return true
		}
	}
	return false
}

// Reset deletes everything and clears gesture, water and particle state.
func (s *Scene) Reset() {
	if s == nil {
		return
	}
	n := len(s.bodies)
	for i := n - 1; i >= 0; i-- {
		s.DeleteBody(i)
	}
	s.pendingWeld = physics.NoBody
	s.drag = dragState{}
	s.marquee = marqueeState{}
	s.draw = drawState{}
	s.field.Reset()
	s.waterStates.Clear()
	s.shards = s.shards[:0]
	s.chunks = s.chunks[:0]
	s.emit(Event{Kind: EventReset})
	log.Printf("Scene: reset, removed %d bodies", n)
}

// CleanupInvalid purges entries whose solver handles are gone and joints
// that no longer connect two live bodies.
func (s *Scene) CleanupInvalid() {
	if s == nil {
		return
	}
	bodies := s.bodies[:0]
	for _, b := range s.bodies {
		if s.solver.BodyValid(b.ID) {
			bodies = append(bodies, b)
			continue
		}
		s.waterStates.Remove(ecs.Entity(b.ID))
	}
	s.bodies = bodies

	joints := s.joints[:0]
	for _, j := range s.joints {
		if !s.solver.JointValid(j.ID) {
			continue
		}
		if !s.solver.BodyValid(j.A) || !s.solver.BodyValid(j.B) {
			s.solver.DestroyJoint(j.ID)
			continue
		}
		joints = append(joints, j)
	}
	s.joints = joints
}
