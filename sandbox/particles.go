package sandbox

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
)

// Particle motion is in pixels per second.
const (
	shardGravity = 1700.0
	chunkGravity = 980.0
	deg          = math.Pi / 180
)

func (s *Scene) Shards() []Particle {
	if s == nil {
		return nil
	}
	return s.shards
}

func (s *Scene) Chunks() []Particle {
	if s == nil {
		return nil
	}
	return s.chunks
}

func (s *Scene) randRange(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Scene) spawnShards(b *Body) {
	if !s.solver.BodyValid(b.ID) {
		return
	}
	c := s.units.ToPixels(s.solver.Position(b.ID))
	inherit := s.units.ToPixels(s.solver.Velocity(b.ID)).Mult(0.45)

	area := b.AreaPx()
	count := common.ClampInt(int(area/800), 14, 90)
	spread := common.Clamp(math.Sqrt(area)*0.09, 6, 26)
	rr := math.Max(1, math.Sqrt(area)*0.02)
	for i := 0; i < count; i++ {
		a := s.randRange(0, 2*math.Pi)
		speed := spread * (0.75 + s.rng.Float64()*0.6)
		life := 0.45 + s.rng.Float64()*0.35
		s.shards = append(s.shards, Particle{
			Pos:     c,
			Vel:     cp.ForAngle(a).Mult(speed).Add(inherit),
			Radius:  rr * (0.6 + s.rng.Float64()),
			Life:    life,
			MaxLife: life,
		})
	}
}

// spawnEntryChunks throws droplets up where a body breaks the surface. v is
// the body's velocity in m/s.
func (s *Scene) spawnEntryChunks(center cp.Vector, waterY float64, v cp.Vector) {
	vy := math.Abs(v.Y)
	count := common.ClampInt(int(4+vy*0.8), 4, 18)
	base := 55 + vy*18
	for i := 0; i < count; i++ {
		a := s.randRange(-80, 80) * deg
		speed := base * (0.55 + s.rng.Float64()*0.7)
		life := 0.3 + s.rng.Float64()*0.45
		s.chunks = append(s.chunks, Particle{
			Pos: cp.Vector{X: center.X + s.randRange(-20, 20), Y: waterY + s.randRange(-6, 4)},
			Vel: cp.Vector{
				X: math.Cos(a)*speed + v.X*8,
				Y: math.Sin(a)*speed - vy*6,
			},
			Radius:  1.4 + s.rng.Float64()*2.8,
			Life:    life,
			MaxLife: life,
		})
	}
}

// SpawnWaterSplash bursts droplets at a point on the surface. energy is
// roughly 0..1.
func (s *Scene) SpawnWaterSplash(at cp.Vector, energy float64) {
	if s == nil || s.location != LocationWater || !s.cfg.Water.Splash {
		return
	}
	count := common.ClampInt(int(5+energy*35), 5, 24)
	for i := 0; i < count; i++ {
		a := s.randRange(-85, 85) * deg
		speed := (80 + energy*180) * (0.5 + s.rng.Float64()*0.8)
		life := 0.26 + s.rng.Float64()*0.5
		s.chunks = append(s.chunks, Particle{
			Pos:     cp.Vector{X: at.X + s.randRange(-16, 16), Y: at.Y + s.randRange(-4, 4)},
			Vel:     cp.Vector{X: math.Cos(a) * speed, Y: math.Sin(a)*speed - speed*0.15},
			Radius:  1.2 + s.rng.Float64()*3,
			Life:    life,
			MaxLife: life,
		})
	}
}

// UpdateParticles advances shards and chunks by frame time. Chunks only live
// in the water location and die once they leave the playfield margins.
func (s *Scene) UpdateParticles(dt float64) {
	if s == nil {
		return
	}
	s.shards = integrate(s.shards, dt, shardGravity, 0.94, 0.96, nil)

	if s.location != LocationWater {
		s.chunks = s.chunks[:0]
		return
	}
	w, h := s.cfg.Width, s.cfg.Height
	s.chunks = integrate(s.chunks, dt, chunkGravity, 0.97, 0.985, func(p Particle) bool {
		return p.Pos.X < -80 || p.Pos.X > w+80 || p.Pos.Y > h+120
	})
}

// integrate applies gravity and per-60Hz-frame drag, then drops dead
// particles in place.
func integrate(ps []Particle, dt, gravity, dragX, dragY float64, gone func(Particle) bool) []Particle {
	kx := math.Pow(dragX, dt*60)
	ky := math.Pow(dragY, dt*60)
	kept := ps[:0]
	for _, p := range ps {
		p.Life -= dt
		p.Vel.Y += gravity * dt
		p.Vel.X *= kx
		p.Vel.Y *= ky
		p.Pos = p.Pos.Add(p.Vel.Mult(dt))
		if p.Life <= 0 || (gone != nil && gone(p)) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
