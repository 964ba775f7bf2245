package scenario

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMeasureSamplesEveryTick(t *testing.T) {
	r, s := newRunner(t)
	src := []byte(`
sandbox.location("water")
sandbox.spawn_box(700, 300)
sandbox.poke(400, 0.2)
`)
	if err := r.Run(context.Background(), src); err != nil {
		t.Fatalf("run: %v", err)
	}
	rep := r.Measure("poke", 40)
	if len(rep.Energy) != 40 || len(rep.Speed) != 40 {
		t.Fatalf("got %d energy and %d speed samples, want 40", len(rep.Energy), len(rep.Speed))
	}
	if rep.Ticks != 40 || rep.Bodies != s.Len() || rep.Location != "water" {
		t.Fatalf("unexpected report %+v", rep)
	}
	if len(rep.Profile) != s.Water().Len() {
		t.Fatalf("profile has %d columns, want %d", len(rep.Profile), s.Water().Len())
	}
	if rep.Energy[0] <= 0 {
		t.Fatalf("poked surface should carry energy, got %v", rep.Energy[0])
	}
	if rep.Counts["spawn"] != 1 || rep.Counts["location"] != 1 {
		t.Fatalf("unexpected counts %v", rep.Counts)
	}
}

func TestMeasureOnLandHasNoProfile(t *testing.T) {
	r, _ := newRunner(t)
	rep := r.Measure("empty", 3)
	if rep.Profile != nil || rep.Location != "land" {
		t.Fatalf("land report should have no profile: %+v", rep)
	}
	if rep.Energy[2] != 0 {
		t.Fatalf("land water energy = %v, want 0", rep.Energy[2])
	}
}

func TestRender(t *testing.T) {
	rep := Report{
		Name:     "tower",
		Location: "land",
		Ticks:    12,
		Bodies:   7,
		Counts:   map[string]int{"spawn": 7, "fracture": 1},
		Energy:   []float64{0, 1, 0.5, 0.25},
		Speed:    []float64{2, 2, 2},
	}
	cases := []struct {
		plot string
		want []string
	}{
		{PlotEnergy, []string{"physbox tower", "bodies", "fracture", "water energy per tick"}},
		{PlotSpeed, []string{"flat at 2"}},
		{PlotProfile, []string{"no samples"}},
		{PlotNone, []string{"ticks"}},
	}
	for _, c := range cases {
		t.Run(c.plot, func(t *testing.T) {
			out, err := rep.Render(c.plot)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			for _, w := range c.want {
				if !strings.Contains(out, w) {
					t.Fatalf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	if _, err := rep.Render("histogram"); !errors.Is(err, ErrUnknownPlot) {
		t.Fatalf("err = %v, want ErrUnknownPlot", err)
	}
}
