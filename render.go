package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/sandbox"
)

const circleSegments = 28

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// mesh batches flat-coloured triangles into one DrawTriangles call.
type mesh struct {
	verts []ebiten.Vertex
	idx   []uint16
}

func (m *mesh) reset() {
	m.verts = m.verts[:0]
	m.idx = m.idx[:0]
}

// convex fans pts out from the first point.
func (m *mesh) convex(pts []cp.Vector, clr color.NRGBA) {
	if len(pts) < 3 || len(m.verts)+len(pts) > math.MaxUint16 {
		return
	}
	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	base := uint16(len(m.verts))
	for _, p := range pts {
		m.verts = append(m.verts, ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	for i := 1; i < len(pts)-1; i++ {
		m.idx = append(m.idx, base, base+uint16(i), base+uint16(i+1))
	}
}

func (m *mesh) flush(dst *ebiten.Image) {
	if len(m.idx) == 0 {
		return
	}
	dst.DrawTriangles(m.verts, m.idx, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	m.reset()
}

func circlePoints(c cp.Vector, r float64, n int) []cp.Vector {
	out := make([]cp.Vector, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = cp.Vector{X: c.X + math.Cos(a)*r, Y: c.Y + math.Sin(a)*r}
	}
	return out
}

func strokeLoop(dst *ebiten.Image, pts []cp.Vector, width float32, clr color.Color) {
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

func strokePath(dst *ebiten.Image, pts []cp.Vector, width float32, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

func strokeBB(dst *ebiten.Image, bb cp.BB, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), width, clr, true)
}

func faded(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(float64(c.A) * common.Clamp(f, 0, 1))
	return c
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.theme.Background.NRGBA())

	g.drawWater(screen)
	g.drawGround(screen)
	g.drawBodies(screen)
	g.drawJoints(screen)
	g.drawParticles(screen)
	g.drawGestures(screen)

	g.panel.ui.Draw(screen)
	g.drawHUD(screen)
}

func (g *Game) drawWater(screen *ebiten.Image) {
	profile := g.scene.WaterProfile()
	if len(profile) < 2 {
		return
	}
	bottom := g.scene.Height()
	var m mesh
	water := g.theme.Water.NRGBA()
	for i := 1; i < len(profile); i++ {
		a, b := profile[i-1], profile[i]
		m.convex([]cp.Vector{a, b, {X: b.X, Y: bottom}, {X: a.X, Y: bottom}}, water)
	}
	// Close the gap past the last column.
	last := profile[len(profile)-1]
	if last.X < g.scene.Width() {
		m.convex([]cp.Vector{last, {X: g.scene.Width(), Y: last.Y}, {X: g.scene.Width(), Y: bottom}, {X: last.X, Y: bottom}}, water)
	}
	m.flush(screen)
	strokePath(screen, profile, 2, g.theme.WaterLine.NRGBA())
}

func (g *Game) drawGround(screen *ebiten.Image) {
	bb := g.scene.GroundRect()
	vector.FillRect(screen, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), g.theme.Ground.NRGBA(), false)
}

func (g *Game) bodyColor(b sandbox.Body) color.NRGBA {
	switch {
	case b.Features.Glass:
		return g.theme.Glass.NRGBA()
	case b.Features.Sticky:
		return g.theme.Sticky.NRGBA()
	case b.Features.Slippery:
		return g.theme.Slippery.NRGBA()
	case b.Features.Bouncy:
		return g.theme.Bouncy.NRGBA()
	}
	return g.theme.Body.NRGBA()
}

func (g *Game) drawBodies(screen *ebiten.Image) {
	bodies := g.scene.Bodies()
	pending := g.scene.PendingWeld()
	var m mesh
	outlines := make([][]cp.Vector, len(bodies))
	for i, b := range bodies {
		var pts []cp.Vector
		if b.Kind == sandbox.KindCircle {
			pts = circlePoints(g.scene.Position(i), b.Radius, circleSegments)
		} else {
			pts = g.scene.Outline(i)
		}
		outlines[i] = pts
		m.convex(pts, g.bodyColor(b))
	}
	m.flush(screen)

	for i, b := range bodies {
		outline := g.theme.Outline.NRGBA()
		width := float32(1.5)
		switch {
		case b.ID == pending:
			outline, width = g.theme.Weld.NRGBA(), 3
		case b.Selected:
			outline, width = g.theme.Selected.NRGBA(), 2.5
		case b.Wheel:
			outline = g.theme.Wheel.NRGBA()
		}
		strokeLoop(screen, outlines[i], width, outline)

		if b.Kind == sandbox.KindCircle {
			// Spoke so spin is visible.
			c := g.scene.Position(i)
			tip := c.Add(cp.ForAngle(g.scene.Angle(i)).Mult(b.Radius))
			vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(tip.X), float32(tip.Y), width, outline, true)
		}
	}
}

func (g *Game) drawJoints(screen *ebiten.Image) {
	for _, j := range g.scene.Joints() {
		a, b := g.scene.IndexOf(j.A), g.scene.IndexOf(j.B)
		if a < 0 || b < 0 {
			continue
		}
		pa, pb := g.scene.Position(a), g.scene.Position(b)
		clr := g.theme.Weld.NRGBA()
		if j.Wheel {
			clr = g.theme.Wheel.NRGBA()
		}
		vector.StrokeLine(screen, float32(pa.X), float32(pa.Y), float32(pb.X), float32(pb.Y), 2, clr, true)
		vector.FillRect(screen, float32(pb.X)-2, float32(pb.Y)-2, 4, 4, clr, false)
	}

	if i := g.scene.IndexOf(g.scene.PendingWeld()); i >= 0 {
		p, c := g.scene.Position(i), cursor()
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(c.X), float32(c.Y), 1, g.theme.Preview.NRGBA(), true)
	}
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	shard := g.theme.Shard.NRGBA()
	for _, p := range g.scene.Shards() {
		s := float32(p.Radius * 2)
		vector.FillRect(screen, float32(p.Pos.X)-s/2, float32(p.Pos.Y)-s/2, s, s, faded(shard, p.LifeFraction()), false)
	}

	var m mesh
	chunk := g.theme.Chunk.NRGBA()
	for _, p := range g.scene.Chunks() {
		m.convex(circlePoints(p.Pos, p.Radius, 8), faded(chunk, p.LifeFraction()))
	}
	m.flush(screen)
}

func (g *Game) drawGestures(screen *ebiten.Image) {
	preview := g.theme.Preview.NRGBA()
	if bb, ok := g.scene.Marquee(); ok {
		strokeBB(screen, bb, 1, preview)
	}

	d, ok := g.scene.Drawing()
	if !ok {
		return
	}
	bb := common.NormalizeRect(d.Start, d.Current)
	switch d.Tool {
	case sandbox.DrawQuad, sandbox.DrawTriangle:
		strokeBB(screen, bb, 1, preview)
	case sandbox.DrawCircle:
		strokeBB(screen, bb, 1, preview)
		r := math.Min(bb.R-bb.L, bb.T-bb.B) / 2
		if r > 0 {
			strokeLoop(screen, circlePoints(common.RectCenter(bb), r, circleSegments), 1, preview)
		}
	case sandbox.DrawFreeform:
		strokePath(screen, d.Points, 2, preview)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS %.0f  bodies %d  joints %d  iterations %d",
		ebiten.ActualFPS(), g.scene.Len(), len(g.scene.Joints()), g.driver.Iterations())
	if g.statusTimer > 0 {
		msg += "\n" + g.status
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
