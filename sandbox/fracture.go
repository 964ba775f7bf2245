package sandbox

import (
	"log"
	"math"
	"sort"

	"github.com/milk9111/physbox/physics"
)

// GlassThreshold is the stress a glass body withstands before breaking.
// It grows with the square root of the area (m²) and with the mass.
func GlassThreshold(cfg FractureConfig, areaM2, mass float64) float64 {
	scale := math.Max(cfg.MinScale, math.Sqrt(math.Max(0, areaM2)))
	return cfg.Base + scale*cfg.AreaScale + mass*cfg.MassScale
}

func (s *Scene) glassThreshold(b *Body) float64 {
	areaM2 := b.AreaPx() / (s.units.PixelsPerMeter * s.units.PixelsPerMeter)
	mass := 1.0
	if s.solver.BodyValid(b.ID) {
		mass = s.solver.Mass(b.ID)
	}
	return GlassThreshold(s.cfg.Fracture, areaM2, mass)
}

// stepFracture runs after the solver step so contacts and hits are fresh.
func (s *Scene) stepFracture(dt float64) {
	cfg := s.cfg.Fracture
	anyGlass := false
	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.Features.Glass || !s.solver.BodyValid(b.ID) {
			continue
		}
		anyGlass = true
		b.Stress = math.Max(0, b.Stress-dt*cfg.Decay)
		if b.Grace > 0 {
			b.Grace--
		}
	}
	if !anyGlass {
		return
	}

	var toBreak []int
	for i := range s.bodies {
		b := &s.bodies[i]
		if !b.Features.Glass || b.Grace > 0 || !s.solver.BodyValid(b.ID) {
			continue
		}
		center := s.units.ToPixels(s.solver.Position(b.ID))
		impulse, load := 0.0, 0.0
		for _, c := range s.solver.Contacts(b.ID) {
			impulse += math.Max(0, c.Impulse)
			if c.Other == physics.NoBody || c.Other == b.ID || !s.solver.BodyValid(c.Other) {
				continue
			}
			other := s.units.ToPixels(s.solver.Position(c.Other))
			if other.Y < center.Y-cfg.LoadMargin {
				load += math.Max(0, s.solver.Mass(c.Other))
			}
		}
		b.Stress += math.Max(0, impulse-cfg.ImpulseFloor) * cfg.ImpulseScale * dt * 60
		if load > 0 {
			b.Stress += math.Max(0, load-s.solver.Mass(b.ID)*cfg.LoadRatio) * dt * cfg.LoadScale
		}
		if b.Stress > s.glassThreshold(b) {
			toBreak = append(toBreak, i)
		}
	}

	for _, hit := range s.solver.HitEvents() {
		for _, pair := range [][2]physics.BodyID{{hit.A, hit.B}, {hit.B, hit.A}} {
			i := s.IndexOf(pair[0])
			if i < 0 {
				continue
			}
			b := &s.bodies[i]
			if !b.Features.Glass || b.Grace > 0 {
				continue
			}
			mass := s.solver.Mass(b.ID)
			if pair[1] != physics.NoBody && s.solver.BodyValid(pair[1]) {
				mass = s.solver.Mass(pair[1])
			}
			b.Stress += hit.ApproachSpeed * mass * cfg.HitScale
			if b.Stress > s.glassThreshold(b) {
				toBreak = append(toBreak, i)
			}
		}
	}

	if len(toBreak) == 0 {
		return
	}
	sort.Sort(sort.Reverse(sort.IntSlice(toBreak)))
	prev := -1
	for _, i := range toBreak {
		if i == prev || i >= len(s.bodies) {
			continue
		}
		prev = i
		s.fracture(i)
	}
}

func (s *Scene) fracture(i int) {
	b := s.bodies[i]
	at := s.units.ToPixels(s.solver.Position(b.ID))
	s.spawnShards(&b)
	s.DeleteBody(i)
	s.emit(Event{Kind: EventFracture, Body: b.ID, At: at})
	log.Printf("Scene: %s fractured at stress %.1f", b.ID, b.Stress)
}
