package main

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/sandbox"
	"golang.org/x/image/font/basicfont"
)

const panelWidth = 170

// controlPanel is the clickable side panel. Every button mirrors a key
// binding.
type controlPanel struct {
	ui    *ebitenui.UI
	box   *widget.Container
	state *widget.Text
}

func newControlPanel(g *Game) *controlPanel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 170})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressedImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x66, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	textColor := g.theme.Text.NRGBA()
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	stretch := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	box := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(3),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	heading := func(label string) {
		box.AddChild(widget.NewText(
			widget.TextOpts.Text(label, &face, color.NRGBA{R: 0x88, G: 0x88, B: 0x99, A: 0xff}),
			widget.TextOpts.WidgetOpts(stretch),
		))
	}
	button := func(label string, onClick func()) {
		box.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressedImg}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(stretch, widget.WidgetOpts.MinSize(0, 18)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	heading("Tools")
	for i := sandbox.ToolCursor; i <= sandbox.ToolGlass; i++ {
		tool := i
		button(fmt.Sprintf("%s (%d)", titled(tool.String()), int(tool)+1), func() { g.selectTool(tool) })
	}

	heading("Draw")
	drawLabels := []struct {
		tool sandbox.DrawTool
		key  string
	}{
		{sandbox.DrawQuad, "R"},
		{sandbox.DrawCircle, "T"},
		{sandbox.DrawTriangle, "Y"},
		{sandbox.DrawFreeform, "U"},
	}
	for _, d := range drawLabels {
		tool := d.tool
		button(fmt.Sprintf("%s (%s)", titled(tool.String()), d.key), func() { g.selectDrawTool(tool) })
	}

	heading("Scene")
	button("Pause (Space)", func() { g.driver.TogglePause() })
	button("Slow 0.5x (G)", func() { g.driver.ToggleTimeScale(slowMotion) })
	button("Fast 2x (H)", func() { g.driver.ToggleTimeScale(fastMotion) })
	button("Land / Water", func() {
		if g.scene.Location() == sandbox.LocationWater {
			g.scene.SetLocation(sandbox.LocationLand)
		} else {
			g.scene.SetLocation(sandbox.LocationWater)
		}
	})
	button("Undo (Z)", func() { g.scene.UndoLastSpawn() })
	button("Reset (Backspace)", g.reset)

	state := widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
		widget.TextOpts.WidgetOpts(stretch),
	)
	box.AddChild(state)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(box)

	return &controlPanel{
		ui:    &ebitenui.UI{Container: root},
		box:   box,
		state: state,
	}
}

// refresh rewrites the state readout under the buttons.
func (p *controlPanel) refresh(g *Game) {
	if p == nil {
		return
	}
	run := "running"
	if g.driver.Paused() {
		run = "paused"
	}
	p.state.Label = fmt.Sprintf("%s x%.2f\n%s / %s\n%s",
		run, g.driver.TimeScale(), g.tool, g.drawTool, g.scene.Location())
}

// contains reports whether p is over the panel, so world clicks can ignore it.
func (p *controlPanel) contains(v cp.Vector) bool {
	if p == nil {
		return false
	}
	return image.Pt(int(v.X), int(v.Y)).In(p.box.GetWidget().Rect)
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
