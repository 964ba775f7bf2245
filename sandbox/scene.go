package sandbox

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/physics"
	"github.com/milk9111/physbox/water"
)

// Scene owns every body and joint entry, the water surface and the visual
// particles. All methods must be called from one goroutine.
type Scene struct {
	cfg    Config
	units  common.Units
	solver physics.Solver
	rng    *rand.Rand
	now    func() time.Time

	bodies     []Body
	joints     []Joint
	spawnOrder []physics.BodyID

	location    Location
	groundY     float64
	field       *water.Field
	waterStates *ecs.SparseSet[waterState]

	shards []Particle
	chunks []Particle

	pendingWeld physics.BodyID
	drag        dragState
	marquee     marqueeState
	draw        drawState

	events *ecs.EventQueue[Event]
}

// NewScene builds an empty scene. A nil solver gets a Chipmunk solver built
// from cfg.Solver.
func NewScene(cfg Config, solver physics.Solver) *Scene {
	cfg = cfg.normalized()
	if solver == nil {
		solver = physics.NewChipmunk(cfg.Solver)
	}
	s := &Scene{
		cfg:         cfg,
		units:       common.NewUnits(cfg.PixelsPerMeter),
		solver:      solver,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		now:         time.Now,
		waterStates: ecs.NewSparseSet[waterState](),
		events:      ecs.NewEventQueue[Event](eventLimit),
		groundY:     -1,
	}
	s.field = water.New(cfg.Width, cfg.Height*cfg.Water.BaselineRatio, cfg.Water.Field)
	if cfg.StartInWater {
		s.location = LocationWater
	}
	s.placeGround()
	return s
}

func (s *Scene) Config() Config         { return s.cfg }
func (s *Scene) Units() common.Units    { return s.units }
func (s *Scene) Solver() physics.Solver { return s.solver }
func (s *Scene) Width() float64         { return s.cfg.Width }
func (s *Scene) Height() float64        { return s.cfg.Height }

// SetClock replaces the wall clock used for drag velocity estimation.
func (s *Scene) SetClock(now func() time.Time) {
	if s == nil || now == nil {
		return
	}
	s.now = now
}

// SetRand replaces the particle randomness source.
func (s *Scene) SetRand(rng *rand.Rand) {
	if s == nil || rng == nil {
		return
	}
	s.rng = rng
}

// Retune swaps tuning without rebuilding the scene. Geometry (size, pixel
// scale) and solver settings stay as they were; every live body gets its
// surface parameters re-applied.
func (s *Scene) Retune(cfg Config) {
	if s == nil {
		return
	}
	cfg.Width, cfg.Height, cfg.PixelsPerMeter = s.cfg.Width, s.cfg.Height, s.cfg.PixelsPerMeter
	cfg.Solver = s.cfg.Solver
	s.cfg = cfg.normalized()
	s.field.SetParams(s.cfg.Water.Field)
	s.field.SetBaseline(s.cfg.Height * s.cfg.Water.BaselineRatio)
	s.groundY = -1
	s.placeGround()
	for i := range s.bodies {
		s.applySurface(i)
	}
	log.Printf("Scene: retuned %d bodies", len(s.bodies))
}

func (s *Scene) Location() Location {
	if s == nil {
		return LocationLand
	}
	return s.location
}

// SetLocation switches between land and water. The ground moves with it;
// the water surface only integrates in LocationWater.
func (s *Scene) SetLocation(loc Location) {
	if s == nil || s.location == loc {
		return
	}
	s.location = loc
	s.placeGround()
	if loc != LocationWater {
		s.chunks = s.chunks[:0]
	}
	s.emit(Event{Kind: EventLocation})
	log.Printf("Scene: location %s", loc)
}

func (s *Scene) groundCenterY() float64 {
	if s.location == LocationWater {
		return s.cfg.Height * s.cfg.Spawn.WaterGroundRatio
	}
	return s.cfg.Height * s.cfg.Spawn.LandGroundRatio
}

// GroundTop is the y of the active ground line in pixels.
func (s *Scene) GroundTop() float64 {
	return s.groundCenterY() - s.cfg.Spawn.GroundHalfThickness
}

// GroundRect is the ground box in pixels, for drawing.
func (s *Scene) GroundRect() cp.BB {
	cy := s.groundCenterY()
	halfW := s.cfg.Width * s.cfg.Spawn.GroundWidthRatio
	halfH := s.cfg.Spawn.GroundHalfThickness
	cx := s.cfg.Width * 0.5
	return cp.BB{L: cx - halfW, B: cy - halfH, R: cx + halfW, T: cy + halfH}
}

func (s *Scene) placeGround() {
	target := s.groundCenterY()
	if math.Abs(target-s.groundY) <= 0.5 {
		return
	}
	center := s.units.ToMeters(cp.Vector{X: s.cfg.Width * 0.5, Y: target})
	halfW := s.units.Meters(s.cfg.Width * s.cfg.Spawn.GroundWidthRatio)
	halfH := s.units.Meters(s.cfg.Spawn.GroundHalfThickness)
	s.solver.SetGround(center, halfW, halfH, s.cfg.Spawn.GroundFriction)
	s.groundY = target
}

// Water exposes the surface field for drawing and scripted pokes.
func (s *Scene) Water() *water.Field {
	if s == nil {
		return nil
	}
	return s.field
}

// WaterProfile is the surface polyline in pixels, or nil on land.
func (s *Scene) WaterProfile() []cp.Vector {
	if s == nil || s.location != LocationWater {
		return nil
	}
	return s.field.Profile()
}

// Position returns the body's center in pixels.
func (s *Scene) Position(i int) cp.Vector {
	if i < 0 || i >= len(s.bodies) {
		return cp.Vector{}
	}
	return s.units.ToPixels(s.solver.Position(s.bodies[i].ID))
}

func (s *Scene) Angle(i int) float64 {
	if i < 0 || i >= len(s.bodies) {
		return 0
	}
	return s.solver.Angle(s.bodies[i].ID)
}

// Velocity returns the body's linear velocity in m/s.
func (s *Scene) Velocity(i int) cp.Vector {
	if i < 0 || i >= len(s.bodies) {
		return cp.Vector{}
	}
	return s.solver.Velocity(s.bodies[i].ID)
}

// Outline is the body's world outline in pixels, nil for circles.
func (s *Scene) Outline(i int) []cp.Vector {
	if i < 0 || i >= len(s.bodies) {
		return nil
	}
	return s.bodies[i].WorldOutline(s.Position(i), s.Angle(i))
}
