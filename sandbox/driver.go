package sandbox

import (
	"log"
	"math"

	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Driver turns variable frame time into fixed simulation ticks. Each tick
// runs water, then the solver step, then fracture.
type Driver struct {
	scene *Scene
	cfg   DriverConfig
	sched *ecs.Scheduler

	accumulator float64
	paused      bool
	iterations  int
	ticks       uint64

	scale       float64
	targetScale float64
	scaleTween  *gween.Tween
}

func NewDriver(scene *Scene, cfg DriverConfig) *Driver {
	d := &Driver{
		scene:       scene,
		cfg:         cfg,
		scale:       1,
		targetScale: 1,
	}
	if d.cfg.TickRate <= 0 {
		d.cfg.TickRate = DefaultConfig().Driver.TickRate
	}
	if d.cfg.MaxTicksPerFrame < 1 {
		d.cfg.MaxTicksPerFrame = 1
	}
	d.sched = ecs.NewScheduler(
		ecs.SystemFunc(scene.stepWater),
		ecs.SystemFunc(d.stepSolver),
		ecs.SystemFunc(scene.stepFracture),
	)
	return d
}

func (d *Driver) Scene() *Scene { return d.scene }

// FixedDt is the simulation tick in seconds.
func (d *Driver) FixedDt() float64 {
	return 1 / d.cfg.TickRate
}

// IterationsFor picks the solver iteration count for a dynamic body count:
// more when the scene is small, fewer when it is crowded.
func (d *Driver) IterationsFor(dynamic int) int {
	switch {
	case dynamic <= d.cfg.FewBodies:
		return d.cfg.IterationsHigh
	case dynamic > d.cfg.ManyBodies:
		return d.cfg.IterationsLow
	default:
		return d.cfg.IterationsBase
	}
}

func (d *Driver) stepSolver(dt float64) {
	d.scene.solver.Step(dt, d.iterations)
}

// Tick runs exactly one fixed tick regardless of pause state.
func (d *Driver) Tick() {
	if d == nil || d.scene == nil {
		return
	}
	s := d.scene
	dynamic := 0
	for i := range s.bodies {
		if s.solver.BodyValid(s.bodies[i].ID) && s.solver.Dynamic(s.bodies[i].ID) {
			dynamic++
		}
	}
	d.iterations = d.IterationsFor(dynamic)
	d.sched.Update(d.FixedDt())
	d.ticks++
	if d.cfg.Debug {
		log.Printf("Driver: tick %d bodies=%d iterations=%d", d.ticks, dynamic, d.iterations)
	}
}

// Advance feeds one frame of wall time. At most MaxTicksPerFrame ticks run;
// time beyond that is dropped so a stall slows the simulation down instead
// of making it catch up. Particles and cleanup run every frame. It returns
// the number of ticks run.
func (d *Driver) Advance(frameDt float64) int {
	if d == nil || d.scene == nil {
		return 0
	}
	d.easeScale(frameDt)

	ran := 0
	if !d.paused {
		step := d.FixedDt()
		d.accumulator += frameDt * d.scale
		limit := step * float64(d.cfg.MaxTicksPerFrame)
		if d.accumulator > limit {
			d.accumulator = limit
		}
		for d.accumulator >= step && ran < d.cfg.MaxTicksPerFrame {
			d.Tick()
			d.accumulator -= step
			ran++
		}
	}

	d.scene.UpdateParticles(frameDt)
	d.scene.CleanupInvalid()
	return ran
}

func (d *Driver) Pause()  { d.paused = true }
func (d *Driver) Resume() { d.paused = false }

func (d *Driver) TogglePause() bool {
	d.paused = !d.paused
	return d.paused
}

func (d *Driver) Paused() bool { return d.paused }

func (d *Driver) Ticks() uint64 { return d.ticks }

func (d *Driver) Iterations() int { return d.iterations }

// SetTimeScale eases the simulation speed toward scale over the configured
// duration. A zero duration applies it at once.
func (d *Driver) SetTimeScale(scale float64) {
	lo, hi := d.cfg.MinTimeScale, d.cfg.MaxTimeScale
	if hi <= 0 {
		hi = math.Inf(1)
	}
	scale = common.Clamp(scale, lo, hi)
	d.targetScale = scale
	if d.cfg.TimeScaleEase <= 0 || scale == d.scale {
		d.scale = scale
		d.scaleTween = nil
		return
	}
	d.scaleTween = gween.New(float32(d.scale), float32(scale), float32(d.cfg.TimeScaleEase), ease.OutQuad)
}

// TimeScale is the scale currently in effect, which lags the target while
// easing.
func (d *Driver) TimeScale() float64 { return d.scale }

func (d *Driver) TargetTimeScale() float64 { return d.targetScale }

// ToggleTimeScale switches between preset and 1.
func (d *Driver) ToggleTimeScale(preset float64) {
	if math.Abs(d.targetScale-preset) < 0.001 {
		d.SetTimeScale(1)
		return
	}
	d.SetTimeScale(preset)
}

func (d *Driver) easeScale(dt float64) {
	if d.scaleTween == nil {
		return
	}
	v, done := d.scaleTween.Update(float32(dt))
	d.scale = float64(v)
	if done {
		d.scale = d.targetScale
		d.scaleTween = nil
	}
}
