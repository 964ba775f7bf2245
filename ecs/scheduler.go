package ecs

// System advances one stage of a fixed tick.
type System interface {
	Update(dt float64)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(dt float64)

func (f SystemFunc) Update(dt float64) {
	if f != nil {
		f(dt)
	}
}

// Scheduler runs systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(dt float64) {
	if s == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(dt)
	}
}

func (s *Scheduler) Systems() []System {
	if s == nil {
		return nil
	}
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
