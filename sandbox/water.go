package sandbox

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
)

// waterState is kept per body identity between ticks. splashed latches after
// an entry splash and clears once the body is dry again.
type waterState struct {
	depth    float64
	splashed bool
}

// WaterDepth is the submersion fraction measured for entry i on the last
// water tick.
func (s *Scene) WaterDepth(i int) float64 {
	if s == nil || i < 0 || i >= len(s.bodies) {
		return 0
	}
	st, _ := s.waterStates.Get(ecs.Entity(s.bodies[i].ID))
	return st.depth
}

// extent returns the body's screen-space bounds in pixels.
func (s *Scene) extent(b *Body, c cp.Vector) cp.BB {
	if b.Kind == KindCircle {
		return cp.BB{L: c.X - b.Radius, B: c.Y - b.Radius, R: c.X + b.Radius, T: c.Y + b.Radius}
	}
	bb := cp.BB{L: c.X, B: c.Y, R: c.X, T: c.Y}
	for _, p := range b.WorldOutline(c, s.solver.Angle(b.ID)) {
		bb.L = math.Min(bb.L, p.X)
		bb.R = math.Max(bb.R, p.X)
		bb.B = math.Min(bb.B, p.Y)
		bb.T = math.Max(bb.T, p.Y)
	}
	return bb
}

// stepWater integrates the surface and couples it with every dynamic body:
// buoyancy, drag, wave disturbance and entry splashes.
func (s *Scene) stepWater(dt float64) {
	if s.location != LocationWater || s.field == nil {
		return
	}
	s.field.Step(dt)

	cfg := s.cfg.Water
	for i := range s.bodies {
		b := &s.bodies[i]
		if !s.solver.BodyValid(b.ID) || !s.solver.Dynamic(b.ID) {
			continue
		}
		c := s.units.ToPixels(s.solver.Position(b.ID))
		bb := s.extent(b, c)

		waterY := s.field.HeightAt(c.X)
		span := math.Max(1, bb.T-bb.B)
		depth := common.Clamp((bb.T-waterY)/span, 0, cfg.MaxDepth)

		key := ecs.Entity(b.ID)
		st, _ := s.waterStates.Get(key)
		prev := st.depth
		st.depth = depth
		if depth <= cfg.DryDepth {
			st.splashed = false
		}
		if depth <= 0 {
			s.waterStates.Set(key, st)
			continue
		}

		mass := s.solver.Mass(b.ID)
		lift := mass * cfg.Buoyancy * (cfg.BuoyancyBase + cfg.BuoyancyDepth*depth)
		s.solver.ApplyForce(b.ID, cp.Vector{X: 0, Y: -lift})

		v := s.solver.Velocity(b.ID)
		xDamp := math.Max(0, 1-dt*depth*cfg.DampX)
		yDamp := math.Max(0, 1-dt*depth*cfg.DampY)
		s.solver.SetVelocity(b.ID, cp.Vector{X: v.X * xDamp, Y: v.Y * yDamp})
		spin := math.Max(0, 1-dt*depth*cfg.DampSpin)
		s.solver.SetAngularVelocity(b.ID, s.solver.AngularVelocity(b.ID)*spin)

		width := math.Max(8, bb.R-bb.L)
		samples := common.ClampInt(int(width/cfg.SampleWidth), 1, cfg.MaxSamples)
		for k := 0; k < samples; k++ {
			t := 0.5
			if samples > 1 {
				t = float64(k) / float64(samples-1)
			}
			s.field.Disturb(bb.L+width*t, -v.Y*cfg.DisturbScale/float64(samples))
		}

		entering := depth - prev
		if !st.splashed && (entering > cfg.SplashJump ||
			(prev <= cfg.DryDepth && depth > cfg.WetDepth && math.Abs(v.Y) > cfg.SplashSpeed)) {
			st.splashed = true
			if cfg.Splash {
				s.spawnEntryChunks(c, waterY, v)
			}
			s.emit(Event{Kind: EventSplash, Body: b.ID, At: cp.Vector{X: c.X, Y: waterY}})
		}
		s.waterStates.Set(key, st)
	}
}

// PokeWater disturbs the surface at x and throws a splash of the given
// energy. Land scenes ignore it.
func (s *Scene) PokeWater(x, impulse, energy float64) {
	if s == nil || s.location != LocationWater {
		return
	}
	y := s.field.HeightAt(x)
	s.field.Disturb(x, impulse)
	if energy > 0 {
		s.SpawnWaterSplash(cp.Vector{X: x, Y: y}, energy)
	}
}

// KickWave nudges the surface at x by a small random impulse.
func (s *Scene) KickWave(x float64) {
	if s == nil || s.location != LocationWater {
		return
	}
	s.field.Disturb(x, s.randRange(-220, 220)*0.0016)
}

// JitterWave is the small ripple left by rotating bodies near the surface.
func (s *Scene) JitterWave(x float64) {
	if s == nil || s.location != LocationWater {
		return
	}
	s.field.Disturb(x, s.randRange(-20, 20)*0.001)
}
