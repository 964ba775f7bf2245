// Package water simulates a 1-D spring-mesh surface: a row of samples, each
// pulled back toward a flat baseline by a damped spring, with lateral
// diffusion passes that carry waves sideways.
package water

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
)

// Params tunes the surface. All distances are in screen pixels.
type Params struct {
	Step    float64 `yaml:"step"`
	Spring  float64 `yaml:"spring"`
	Damping float64 `yaml:"damping"`
	Spread  float64 `yaml:"spread"`
	Passes  int     `yaml:"passes"`
	// Reach is how many samples on each side of the nearest one a
	// disturbance touches.
	Reach int `yaml:"reach"`
}

func DefaultParams() Params {
	return Params{
		Step:    8,
		Spring:  27,
		Damping: 0.038,
		Spread:  0.28,
		Passes:  6,
		Reach:   3,
	}
}

const minSamples = 8

// Field is the height field. Displacement is positive downward, matching
// screen y.
type Field struct {
	params   Params
	baseline float64

	disp  []float64
	vel   []float64
	left  []float64
	right []float64
}

// New sizes the field to cover width pixels. The sample count is fixed for
// the field's lifetime.
func New(width, baseline float64, params Params) *Field {
	if params.Step <= 0 {
		params.Step = DefaultParams().Step
	}
	n := int(math.Ceil(width/params.Step)) + 1
	if n < minSamples {
		n = minSamples
	}
	return &Field{
		params:   params,
		baseline: baseline,
		disp:     make([]float64, n),
		vel:      make([]float64, n),
		left:     make([]float64, n),
		right:    make([]float64, n),
	}
}

func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.disp)
}

func (f *Field) Baseline() float64 {
	if f == nil {
		return 0
	}
	return f.baseline
}

func (f *Field) SetBaseline(y float64) {
	if f == nil {
		return
	}
	f.baseline = y
}

// SetParams swaps tuning without touching the sample state. Step changes are
// ignored because the sample count is fixed.
func (f *Field) SetParams(p Params) {
	if f == nil {
		return
	}
	p.Step = f.params.Step
	f.params = p
}

func (f *Field) Params() Params {
	if f == nil {
		return Params{}
	}
	return f.params
}

// Displacement returns sample i, or 0 out of range.
func (f *Field) Displacement(i int) float64 {
	if f == nil || i < 0 || i >= len(f.disp) {
		return 0
	}
	return f.disp[i]
}

// Step integrates every spring with semi-implicit Euler and then runs the
// diffusion passes.
func (f *Field) Step(dt float64) {
	if f == nil || len(f.disp) < 3 || dt <= 0 {
		return
	}
	k, c := f.params.Spring, f.params.Damping
	for i := range f.disp {
		accel := -k*f.disp[i] - c*f.vel[i]
		f.vel[i] += accel * dt
		f.disp[i] += f.vel[i] * dt
	}

	spread := f.params.Spread
	last := len(f.disp) - 1
	for pass := 0; pass < f.params.Passes; pass++ {
		for i := range f.disp {
			if i > 0 {
				f.left[i] = spread * (f.disp[i] - f.disp[i-1])
				f.vel[i-1] += f.left[i]
			}
			if i < last {
				f.right[i] = spread * (f.disp[i] - f.disp[i+1])
				f.vel[i+1] += f.right[i]
			}
		}
		for i := range f.disp {
			if i > 0 {
				f.disp[i-1] += f.left[i]
			}
			if i < last {
				f.disp[i+1] += f.right[i]
			}
		}
	}
}

func (f *Field) indexFor(x float64) int {
	idx := int(math.Round(x / f.params.Step))
	return common.ClampInt(idx, 0, len(f.disp)-1)
}

// HeightAt interpolates the surface y at screen x between the two nearest
// samples. Positions outside the field use the edge samples.
func (f *Field) HeightAt(x float64) float64 {
	if f == nil || len(f.disp) == 0 {
		return 0
	}
	fx := x / f.params.Step
	i0 := common.ClampInt(int(math.Floor(fx)), 0, len(f.disp)-1)
	i1 := common.ClampInt(i0+1, 0, len(f.disp)-1)
	t := common.Clamp(fx-float64(i0), 0, 1)
	return f.baseline + common.Lerp(f.disp[i0], f.disp[i1], t)
}

// Disturb adds impulse to the sample velocities around x, tapering linearly
// with distance from the nearest sample.
func (f *Field) Disturb(x, impulse float64) {
	if f == nil || len(f.vel) == 0 {
		return
	}
	reach := f.params.Reach
	center := f.indexFor(x)
	for k := -reach; k <= reach; k++ {
		i := center + k
		if i < 0 || i >= len(f.vel) {
			continue
		}
		w := 1 - math.Abs(float64(k))/float64(reach+1)
		f.vel[i] += impulse * math.Max(0, w)
	}
}

// Energy is the modified energy of the spring integrator at tick dt,
// summed over samples:
//
//	E = ½v² + ½k·d² − ½·dt·k·d·v
//
// Semi-implicit Euler conserves it exactly for an undamped spring, so unlike
// the plain ½v² + ½k·d² it does not wobble from tick to tick. Damping and the
// diffusion passes drain it once a disturbance stops.
func (f *Field) Energy(dt float64) float64 {
	if f == nil {
		return 0
	}
	k := f.params.Spring
	e := 0.0
	for i := range f.disp {
		d, v := f.disp[i], f.vel[i]
		e += 0.5*v*v + 0.5*k*d*d - 0.5*dt*k*d*v
	}
	return e
}

// Profile returns the surface as a polyline in screen space.
func (f *Field) Profile() []cp.Vector {
	if f == nil {
		return nil
	}
	out := make([]cp.Vector, len(f.disp))
	for i, d := range f.disp {
		out[i] = cp.Vector{X: float64(i) * f.params.Step, Y: f.baseline + d}
	}
	return out
}

// Reset flattens the surface.
func (f *Field) Reset() {
	if f == nil {
		return
	}
	for i := range f.disp {
		f.disp[i] = 0
		f.vel[i] = 0
		f.left[i] = 0
		f.right[i] = 0
	}
}
