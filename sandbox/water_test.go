package sandbox

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestLandIgnoresWater(t *testing.T) {
	s := newTestScene(t, false)
	s.PokeWater(300, 5, 1)
	s.KickWave(300)
	s.SpawnWaterSplash(cp.Vector{X: 300, Y: 500}, 1)
	if len(s.Chunks()) != 0 {
		t.Fatalf("land scene spawned splash chunks")
	}
	if e := s.Water().Energy(1.0 / 55); e != 0 {
		t.Fatalf("land poke disturbed the surface, energy %v", e)
	}
}

func TestPokeWaterSplashes(t *testing.T) {
	s := newTestScene(t, true)
	s.PokeWater(300, 0.065, 0.28)
	if len(s.Chunks()) == 0 {
		t.Fatalf("poke with energy should splash")
	}
	s.SetLocation(LocationLand)
	if len(s.Chunks()) != 0 {
		t.Fatalf("leaving the water should clear chunks")
	}
}

func dropIntoWater(t *testing.T) (*Scene, *Driver, int) {
	t.Helper()
	s := newTestScene(t, true)
	id := s.SpawnBox(cp.Vector{X: 700, Y: 400})
	s.Solver().SetVelocity(id, cp.Vector{X: 0, Y: 20})
	s.Events()
	return s, NewDriver(s, s.Config().Driver), s.IndexOf(id)
}

func TestWaterEntrySplashesOnce(t *testing.T) {
	s, d, i := dropIntoWater(t)
	splashes := 0
	for k := 0; k < 600; k++ {
		d.Tick()
		splashes += countEvents(s.Events(), EventSplash)
		if s.Velocity(i).Y < 0 {
			break
		}
	}
	if splashes != 1 {
		t.Fatalf("expected exactly one entry splash, got %d", splashes)
	}
	if len(s.Chunks()) == 0 {
		t.Fatalf("entry splash spawned no chunks")
	}
}

func TestBuoyancySlowsSinking(t *testing.T) {
	s, d, i := dropIntoWater(t)
	checked := 0
	for k := 0; k < 200; k++ {
		prev := s.Velocity(i).Y
		d.Tick()
		depth := s.WaterDepth(i)
		vy := s.Velocity(i).Y
		if depth > 0.5 && prev > 0 {
			checked++
			if vy >= prev {
				t.Fatalf("tick %d: submerged body sped up sinking, %v -> %v", k, prev, vy)
			}
		}
	}
	if checked == 0 {
		t.Fatalf("body never sank past half depth")
	}
}

func TestWaterDepthClamped(t *testing.T) {
	s, d, i := dropIntoWater(t)
	for k := 0; k < 120; k++ {
		d.Tick()
		if depth := s.WaterDepth(i); depth < 0 || depth > 1.25+1e-9 || math.IsNaN(depth) {
			t.Fatalf("depth %v out of range", depth)
		}
	}
}
