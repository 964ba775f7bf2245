package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/physbox/prefabs"
	"github.com/milk9111/physbox/sandbox"
	"github.com/milk9111/physbox/scenario"
)

// statusFrames is how long a status line stays up.
const statusFrames = 150

type Game struct {
	frames int

	scene   *sandbox.Scene
	driver  *sandbox.Driver
	runner  *scenario.Runner
	theme   prefabs.Theme
	panel   *controlPanel
	watcher *prefabs.Watcher

	tool      sandbox.Tool
	drawTool  sandbox.DrawTool
	sceneName string

	status      string
	statusTimer int
}

func NewGame(tuning prefabs.Tuning, sceneName string) (*Game, error) {
	cfg := tuning.Sandbox
	scene := sandbox.NewScene(cfg, nil)
	driver := sandbox.NewDriver(scene, cfg.Driver)
	g := &Game{
		scene:     scene,
		driver:    driver,
		runner:    scenario.NewRunner(driver),
		theme:     tuning.Theme,
		sceneName: sceneName,
	}

	if sceneName != "" {
		if err := g.runner.RunScene(context.Background(), sceneName); err != nil {
			return nil, err
		}
	}

	dirs := []string{"prefabs", filepath.Join("prefabs", "scenes")}
	if configFile != "" {
		dirs = append(dirs, filepath.Dir(configFile))
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		log.Printf("Game: hot reload disabled: %v", err)
	} else {
		g.watcher = w
	}

	g.panel = newControlPanel(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++

	g.reload()
	g.panel.ui.Update()

	g.handleKeyboard()
	g.handleMouse()

	g.driver.Advance(1 / float64(ebiten.TPS()))
	g.consumeEvents()
	g.panel.refresh(g)

	if g.statusTimer > 0 {
		g.statusTimer--
	}
	return nil
}

// reload applies tuning and scene script edits picked up by the watcher.
// Tuning goes back through loadTuning so --config and the flag overrides
// still hold after an edit.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		log.Printf("Game: watcher: %v", err)
	default:
	}

	for _, name := range g.watcher.Pending() {
		switch {
		case prefabs.IsActiveTuning(name, configFile):
			t, err := loadTuning()
			if err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				g.setStatus("tuning error, see log")
				continue
			}
			g.scene.Retune(t.Sandbox)
			g.theme = t.Theme
			g.setStatus("tuning reloaded")
		case prefabs.IsSceneFile(name):
			base := filepath.Base(name)
			if g.sceneName == "" || base != g.sceneName+filepath.Ext(base) {
				continue
			}
			g.reset()
			if err := g.runner.RunScene(context.Background(), g.sceneName); err != nil {
				log.Printf("Game: reload %s: %v", name, err)
				g.setStatus("scene error, see log")
				continue
			}
			g.setStatus("scene reloaded")
		}
	}
}

func (g *Game) reset() {
	g.scene.Reset()
	g.drawTool = sandbox.DrawNone
}

func (g *Game) consumeEvents() {
	for _, e := range g.scene.Events() {
		switch e.Kind {
		case sandbox.EventFracture:
			g.setStatus("glass shattered")
		case sandbox.EventWeld:
			g.setStatus("welded")
		case sandbox.EventWheelToggle:
			g.setStatus("wheel mode toggled")
		case sandbox.EventLocation:
			g.setStatus("location: " + g.scene.Location().String())
		}
	}
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTimer = statusFrames
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.scene.Width(), g.scene.Height()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
