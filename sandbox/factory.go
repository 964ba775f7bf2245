package sandbox

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/physics"
)

// ClampSpawn keeps a shape with the given half extents inside the playfield
// and above the active ground line.
func (s *Scene) ClampSpawn(p cp.Vector, halfW, halfH float64) cp.Vector {
	m := s.cfg.Spawn.Margin
	out := p
	out.X = clampRange(out.X, halfW+m, s.cfg.Width-halfW-m)
	out.Y = clampRange(out.Y, halfH+m, s.GroundTop()-halfH-m)
	return out
}

// clampRange clamps like common.Clamp but lets the lower bound win when the
// range is inverted by an oversized shape.
func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return common.Clamp(v, lo, hi)
}

// densityFor scales density so a drawn shape of any size keeps roughly the
// mass-to-size feel of the reference box.
func (s *Scene) densityFor(areaPx float64) float64 {
	base := s.cfg.Spawn.BaseSize * s.cfg.Spawn.BaseSize
	d := math.Sqrt(base / math.Max(1, areaPx))
	return common.Clamp(d, s.cfg.Spawn.MinDensity, s.cfg.Spawn.MaxDensity)
}

func (s *Scene) material(kind Kind, density float64) physics.Material {
	friction := s.cfg.Surface.PolygonFriction
	if kind == KindCircle {
		friction = s.cfg.Surface.CircleFriction
	}
	return physics.Material{Density: density, Friction: friction}
}

func (s *Scene) spawnCircleBody(center cp.Vector, radius, density float64) physics.BodyID {
	spawn := s.ClampSpawn(center, radius, radius)
	id := s.solver.CreateBody(physics.BodyDef{
		Position: s.units.ToMeters(spawn),
		Shape:    physics.ShapeDef{Radius: s.units.Meters(radius)},
		Material: s.material(KindCircle, density),
	})
	if id == physics.NoBody {
		return physics.NoBody
	}
	s.register(Body{ID: id, Kind: KindCircle, Radius: radius})
	return id
}

// spawnHull builds a convex body from local pixel vertices around center.
// The hull is recentred on its centroid so the body origin is its center of
// mass; fewer than three hull vertices aborts.
func (s *Scene) spawnHull(kind Kind, center cp.Vector, local []cp.Vector, density float64) physics.BodyID {
	if len(local) < 3 {
		return physics.NoBody
	}
	hull := append([]cp.Vector(nil), local...)
	n := cp.ConvexHull(len(hull), hull, nil, 0)
	if n < 3 {
		return physics.NoBody
	}
	hull = hull[:n]
	if common.PolygonArea(hull) < 1 {
		return physics.NoBody
	}
	centroid := cp.CentroidForPoly(n, hull)
	for i := range hull {
		hull[i] = hull[i].Sub(centroid)
	}
	center = center.Add(centroid)

	halfW, halfH := 0.0, 0.0
	for _, v := range hull {
		halfW = math.Max(halfW, math.Abs(v.X))
		halfH = math.Max(halfH, math.Abs(v.Y))
	}
	if density <= 0 {
		density = s.densityFor(common.PolygonArea(hull))
	}
	spawn := s.ClampSpawn(center, halfW, halfH)
	id := s.solver.CreateBody(physics.BodyDef{
		Position: s.units.ToMeters(spawn),
		Shape:    physics.ShapeDef{Verts: s.units.VertsToMeters(hull)},
		Material: s.material(kind, density),
	})
	if id == physics.NoBody {
		return physics.NoBody
	}
	s.register(Body{ID: id, Kind: kind, LocalVerts: hull})
	return id
}

// SpawnBox drops a reference-size box at p.
func (s *Scene) SpawnBox(p cp.Vector) physics.BodyID {
	h := s.cfg.Spawn.BaseSize * 0.5
	local := []cp.Vector{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
	return s.spawnHull(KindBox, p, local, 1)
}

func (s *Scene) SpawnCircle(p cp.Vector) physics.BodyID {
	return s.spawnCircleBody(p, s.cfg.Spawn.BaseSize*0.5, 1)
}

// SpawnTriangle drops an equilateral triangle whose height is the reference
// size.
func (s *Scene) SpawnTriangle(p cp.Vector) physics.BodyID {
	h := s.cfg.Spawn.BaseSize
	return s.spawnHull(KindTriangle, p, triangleVerts(2*h/math.Sqrt(3), h), 1)
}

func triangleVerts(w, h float64) []cp.Vector {
	return []cp.Vector{{X: 0, Y: -h * 0.5}, {X: w * 0.5, Y: h * 0.5}, {X: -w * 0.5, Y: h * 0.5}}
}

// SpawnPolygon builds a convex polygon from arbitrary local points. Density
// follows the area of the resulting hull.
func (s *Scene) SpawnPolygon(center cp.Vector, local []cp.Vector) physics.BodyID {
	return s.spawnHull(KindPolygon, center, local, 0)
}

// SpawnQuadFromDrag builds a rectangle spanning a and b. Tiny drags are
// ignored; thin ones are widened to a minimum size and aspect.
func (s *Scene) SpawnQuadFromDrag(a, b cp.Vector) physics.BodyID {
	cfg := s.cfg.Spawn
	r := common.NormalizeRect(a, b)
	w, h := r.R-r.L, r.T-r.B
	if w < cfg.MinQuadSide || h < cfg.MinQuadSide {
		return physics.NoBody
	}
	w = math.Max(w, cfg.MinQuadDim)
	h = math.Max(h, cfg.MinQuadDim)
	if aspect := math.Max(w, h) / math.Max(1, math.Min(w, h)); aspect > cfg.MaxQuadAspect {
		if w > h {
			h = w / cfg.MaxQuadAspect
		} else {
			w = h / cfg.MaxQuadAspect
		}
	}
	center := common.RectCenter(r)
	local := []cp.Vector{
		{X: -w * 0.5, Y: -h * 0.5}, {X: w * 0.5, Y: -h * 0.5},
		{X: w * 0.5, Y: h * 0.5}, {X: -w * 0.5, Y: h * 0.5},
	}
	return s.SpawnPolygon(center, local)
}

// SpawnCircleFromDrag fits a circle inside the dragged rectangle, or around
// its longer side when perfect is set.
func (s *Scene) SpawnCircleFromDrag(a, b cp.Vector, perfect bool) physics.BodyID {
	minD := s.cfg.Spawn.MinCircleDiam
	r := common.NormalizeRect(a, b)
	w, h := r.R-r.L, r.T-r.B
	if perfect {
		d := math.Max(minD, math.Max(w, h))
		w, h = d, d
	}
	diameter := math.Min(w, h)
	if diameter < minD {
		return physics.NoBody
	}
	radius := diameter * 0.5
	return s.spawnCircleBody(common.RectCenter(r), radius, s.densityFor(math.Pi*radius*radius))
}

// SpawnTriangleFromDrag fits the largest equilateral triangle into the
// dragged rectangle.
func (s *Scene) SpawnTriangleFromDrag(a, b cp.Vector) physics.BodyID {
	minSide := s.cfg.Spawn.MinTriangleSide
	r := common.NormalizeRect(a, b)
	rw, rh := r.R-r.L, r.T-r.B
	if rw < minSide || rh < minSide {
		return physics.NoBody
	}
	h := rh
	w := 2 * h / math.Sqrt(3)
	if w > rw {
		w = rw
		h = w * math.Sqrt(3) * 0.5
	}
	return s.SpawnPolygon(common.RectCenter(r), triangleVerts(w, h))
}

// SpawnFreeform turns a stroke into a convex polygon. Long strokes are
// resampled uniformly down to the stroke point budget first.
func (s *Scene) SpawnFreeform(points []cp.Vector) physics.BodyID {
	if len(points) < 3 {
		return physics.NoBody
	}
	pts := resample(points, s.cfg.Spawn.MaxStrokePoints)

	var c cp.Vector
	for _, p := range pts {
		c = c.Add(p)
	}
	c = c.Mult(1 / float64(len(pts)))
	local := make([]cp.Vector, len(pts))
	for i, p := range pts {
		local[i] = p.Sub(c)
	}
	return s.SpawnPolygon(c, local)
}

func resample(points []cp.Vector, budget int) []cp.Vector {
	if len(points) <= budget || budget < 2 {
		return append([]cp.Vector(nil), points...)
	}
	out := make([]cp.Vector, 0, budget)
	step := float64(len(points)-1) / float64(budget-1)
	for i := 0; i < budget; i++ {
		idx := common.ClampInt(int(math.Round(float64(i)*step)), 0, len(points)-1)
		out = append(out, points[idx])
	}
	return out
}
