package sandbox

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/physics"
)

type EventKind int

const (
	EventSpawn EventKind = iota
	EventDelete
	EventFracture
	EventSplash
	EventWeld
	EventWheelToggle
	EventReset
	EventLocation
)

func (k EventKind) String() string {
	return [...]string{"spawn", "delete", "fracture", "splash", "weld", "wheel_toggle", "reset", "location"}[k]
}

// Event is something the UI, scripts or tests may want to react to. At is in
// screen pixels.
type Event struct {
	Kind  EventKind
	Body  physics.BodyID
	Other physics.BodyID
	At    cp.Vector
}

const eventLimit = 512

func (s *Scene) emit(evt Event) {
	s.events.Push(evt)
}

// Events drains everything emitted since the previous call.
func (s *Scene) Events() []Event {
	if s == nil {
		return nil
	}
	return s.events.Drain()
}
