package sandbox

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/physics"
)

type drawState struct {
	tool           DrawTool
	active         bool
	start, current cp.Vector
	points         []cp.Vector
}

// DrawPreview describes the shape gesture in progress, for drawing.
type DrawPreview struct {
	Tool           DrawTool
	Start, Current cp.Vector
	Points         []cp.Vector
}

func (s *Scene) Drawing() (DrawPreview, bool) {
	if s == nil || !s.draw.active {
		return DrawPreview{}, false
	}
	d := s.draw
	return DrawPreview{Tool: d.tool, Start: d.start, Current: d.current, Points: d.points}, true
}

// BeginDraw starts a shape gesture with tool at p.
func (s *Scene) BeginDraw(tool DrawTool, p cp.Vector) {
	if s == nil || tool == DrawNone {
		return
	}
	s.draw = drawState{tool: tool, active: true, start: p, current: p}
	if tool == DrawFreeform {
		s.draw.points = append(s.draw.points, p)
	}
}

// ExtendDraw follows the pointer. Freeform strokes only record points that
// moved far enough from the previous one.
func (s *Scene) ExtendDraw(p cp.Vector) {
	if s == nil || !s.draw.active {
		return
	}
	s.draw.current = p
	if s.draw.tool != DrawFreeform {
		return
	}
	n := len(s.draw.points)
	if n == 0 || s.draw.points[n-1].Distance(p) > s.cfg.Spawn.StrokeSpacing {
		s.draw.points = append(s.draw.points, p)
	}
}

// EndDraw finishes the gesture and spawns its shape. perfect forces circles
// to be round around the larger drag side.
func (s *Scene) EndDraw(p cp.Vector, perfect bool) physics.BodyID {
	if s == nil || !s.draw.active {
		return physics.NoBody
	}
	d := s.draw
	d.current = p
	s.draw = drawState{}

	switch d.tool {
	case DrawQuad:
		return s.SpawnQuadFromDrag(d.start, d.current)
	case DrawCircle:
		return s.SpawnCircleFromDrag(d.start, d.current, perfect)
	case DrawTriangle:
		return s.SpawnTriangleFromDrag(d.start, d.current)
	case DrawFreeform:
		return s.SpawnFreeform(d.points)
	}
	return physics.NoBody
}

// ApplyTool runs a non-cursor tool on whatever is under p. It reports
// whether a body was hit.
func (s *Scene) ApplyTool(tool Tool, p cp.Vector) bool {
	if s == nil {
		return false
	}
	i := s.PickBody(p)
	if i < 0 {
		return false
	}
	switch tool {
	case ToolWeld:
		s.WeldPick(i)
	case ToolWheel:
		s.ToggleWheelMode(i)
	default:
		f, ok := tool.Feature()
		if !ok {
			return false
		}
		s.ToggleFeature(i, f)
	}
	return true
}
