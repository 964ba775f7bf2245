package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/sandbox"
)

const (
	rotateStep     = 2.8 * math.Pi / 180
	rotateSnapStep = 15 * math.Pi / 180

	slowMotion = 0.5
	fastMotion = 2
)

var toolKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7,
}

var drawKeys = map[ebiten.Key]sandbox.DrawTool{
	ebiten.KeyR: sandbox.DrawQuad,
	ebiten.KeyT: sandbox.DrawCircle,
	ebiten.KeyY: sandbox.DrawTriangle,
	ebiten.KeyU: sandbox.DrawFreeform,
}

func cursor() cp.Vector {
	x, y := ebiten.CursorPosition()
	return cp.Vector{X: float64(x), Y: float64(y)}
}

func (g *Game) selectTool(t sandbox.Tool) {
	g.tool = t
	g.drawTool = sandbox.DrawNone
}

// selectDrawTool picks a drawing tool; picking the active one again turns
// drawing off.
func (g *Game) selectDrawTool(d sandbox.DrawTool) {
	if g.drawTool == d {
		d = sandbox.DrawNone
	}
	g.drawTool = d
}

func (g *Game) handleKeyboard() {
	mouse := cursor()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	kick := false
	pressed := func(k ebiten.Key) bool {
		if inpututil.IsKeyJustPressed(k) {
			kick = true
			return true
		}
		return false
	}

	if pressed(ebiten.KeyBackspace) {
		g.reset()
	}
	if pressed(ebiten.KeyZ) {
		g.scene.UndoLastSpawn()
	}
	if pressed(ebiten.KeySpace) {
		g.driver.TogglePause()
	}
	if pressed(ebiten.KeyG) {
		g.driver.ToggleTimeScale(slowMotion)
	}
	if pressed(ebiten.KeyH) {
		g.driver.ToggleTimeScale(fastMotion)
	}

	for i, k := range toolKeys {
		if pressed(k) {
			g.selectTool(sandbox.Tool(i))
		}
	}
	for k, d := range drawKeys {
		if pressed(k) {
			g.selectDrawTool(d)
		}
	}

	if pressed(ebiten.KeyQ) {
		g.scene.SpawnBox(mouse)
	}
	if pressed(ebiten.KeyW) {
		g.scene.SpawnCircle(mouse)
	}
	if pressed(ebiten.KeyE) {
		g.scene.SpawnTriangle(mouse)
	}

	step := rotateStep
	if shift {
		step = rotateSnapStep
	}
	rotating := false
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		g.scene.RotateSelection(-step, shift)
		rotating = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		g.scene.RotateSelection(step, shift)
		rotating = true
	}

	if kick || rotating {
		g.scene.KickWave(mouse.X)
	}
	if rotating {
		g.scene.JitterWave(mouse.X)
	}
}

func (g *Game) handleMouse() {
	mouse := cursor()
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	overPanel := g.panel.contains(mouse)

	left := !overPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if !overPanel && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.scene.DeleteBodyAt(mouse)
		g.scene.PokeWater(mouse.X, -0.08, 0.35)
	}
	if left {
		g.scene.PokeWater(mouse.X, 0.065, 0.28)
	}
	if held && !overPanel {
		g.scene.PokeWater(mouse.X, 0.004, 0)
	}

	if g.drawTool != sandbox.DrawNone {
		if left {
			g.scene.BeginDraw(g.drawTool, mouse)
		}
		if held {
			g.scene.ExtendDraw(mouse)
		}
		if released {
			g.scene.EndDraw(mouse, shift)
		}
		return
	}

	if g.tool == sandbox.ToolCursor {
		if left {
			g.scene.BeginDrag(mouse)
		}
		if held {
			g.scene.UpdateDrag(mouse)
		}
		if released {
			g.scene.EndDrag()
		}
		return
	}

	if released && !overPanel {
		g.scene.ApplyTool(g.tool, mouse)
	}
}
