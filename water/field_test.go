package water

import (
	"math"
	"testing"
)

const tick = 1.0 / 55.0

func TestNewSampleCount(t *testing.T) {
	cases := []struct {
		name  string
		width float64
		want  int
	}{
		{"wide", 1400, 176},
		{"exact", 64, 9},
		{"narrow", 10, minSamples},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := New(c.width, 500, DefaultParams())
			if f.Len() != c.want {
				t.Fatalf("expected %d samples, got %d", c.want, f.Len())
			}
		})
	}
}

func TestHeightAtInterpolates(t *testing.T) {
	f := New(400, 100, DefaultParams())
	f.disp[2] = 4
	f.disp[3] = 8

	cases := []struct {
		name string
		x    float64
		want float64
	}{
		{"on_sample", 16, 104},
		{"midway", 20, 106},
		{"quarter", 26, 108 - 2},
		{"left_of_field", -50, 100},
		{"right_of_field", 10000, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := f.HeightAt(c.x); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("HeightAt(%v) = %v, want %v", c.x, got, c.want)
			}
		})
	}
}

func TestDisturbTapers(t *testing.T) {
	f := New(400, 100, DefaultParams())
	f.Disturb(80, 1)

	want := map[int]float64{6: 0, 7: 0.25, 8: 0.5, 9: 0.75, 10: 1, 11: 0.75, 12: 0.5, 13: 0.25, 14: 0}
	for i, w := range want {
		if math.Abs(f.vel[i]-w) > 1e-12 {
			t.Fatalf("sample %d: expected %v, got %v", i, w, f.vel[i])
		}
	}

	edge := New(400, 100, DefaultParams())
	edge.Disturb(-30, 2)
	if edge.vel[0] != 2 || edge.vel[1] != 1.5 {
		t.Fatalf("edge disturbance not clipped correctly: %v %v", edge.vel[0], edge.vel[1])
	}
}

func TestFlatFieldStaysFlat(t *testing.T) {
	f := New(400, 100, DefaultParams())
	for i := 0; i < 100; i++ {
		f.Step(tick)
	}
	if e := f.Energy(tick); e != 0 {
		t.Fatalf("undisturbed field gained energy: %v", e)
	}
	for i := 0; i < f.Len(); i++ {
		if f.Displacement(i) != 0 {
			t.Fatalf("sample %d moved without input", i)
		}
	}
}

func TestEnergyDecaysWithoutInput(t *testing.T) {
	cases := []struct {
		name    string
		x       float64
		impulse float64
	}{
		{"centre", 700, 40},
		{"near_edge", 80, -25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := New(1400, 500, DefaultParams())
			f.Disturb(c.x, c.impulse)
			start := f.Energy(tick)
			prev := start
			for i := 0; i < 1100; i++ {
				f.Step(tick)
				e := f.Energy(tick)
				if e > prev+1e-9*start {
					t.Fatalf("tick %d: energy rose from %v to %v", i, prev, e)
				}
				prev = e
				if i == 549 && e > 0.1*start {
					t.Fatalf("energy barely decayed after 10s: %v of %v", e, start)
				}
			}
		})
	}
}

func TestResetAndParams(t *testing.T) {
	f := New(400, 100, DefaultParams())
	f.Disturb(200, 5)
	f.Step(tick)
	f.Reset()
	if f.Energy(tick) != 0 {
		t.Fatalf("reset should flatten the field")
	}

	p := DefaultParams()
	p.Step = 99
	p.Spring = 10
	f.SetParams(p)
	if f.Params().Step != DefaultParams().Step {
		t.Fatalf("step must stay fixed, got %v", f.Params().Step)
	}
	if f.Params().Spring != 10 {
		t.Fatalf("spring not applied")
	}

	prof := f.Profile()
	if len(prof) != f.Len() || prof[3].X != 24 || prof[3].Y != 100 {
		t.Fatalf("unexpected profile sample %+v", prof[3])
	}

	var nilField *Field
	nilField.Step(tick)
	if nilField.HeightAt(5) != 0 || nilField.Len() != 0 {
		t.Fatalf("nil field should be inert")
	}
}
