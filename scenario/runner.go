// Package scenario runs tengo scene scripts against a sandbox scene. A script
// sees one global, sandbox, whose functions mirror the commands a user has in
// the window: spawning, joints, modifiers, water pokes and ticking.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/physbox/prefabs"
	"github.com/milk9111/physbox/sandbox"
)

var (
	ErrUnknownFeature  = errors.New("scenario: unknown feature")
	ErrUnknownLocation = errors.New("scenario: unknown location")
	ErrNoScene         = errors.New("scenario: runner has no scene")
)

// maxScriptTicks bounds tick() calls from one script run.
const maxScriptTicks = 100000

// Runner executes scripts on one scene. It tallies the scene events it
// drains while ticking so callers can report on a run.
type Runner struct {
	driver *sandbox.Driver
	ticks  int
	counts map[sandbox.EventKind]int
}

func NewRunner(driver *sandbox.Driver) *Runner {
	return &Runner{driver: driver, counts: make(map[sandbox.EventKind]int)}
}

func (r *Runner) scene() *sandbox.Scene {
	if r == nil || r.driver == nil {
		return nil
	}
	return r.driver.Scene()
}

// RunScene loads a script by name through prefabs and runs it.
func (r *Runner) RunScene(ctx context.Context, name string) error {
	src, err := prefabs.LoadScene(name)
	if err != nil {
		return fmt.Errorf("scenario: load %s: %w", name, err)
	}
	if err := r.Run(ctx, src); err != nil {
		return fmt.Errorf("scenario: run %s: %w", name, err)
	}
	log.Printf("Scenario: ran %s, %d bodies", name, r.scene().Len())
	return nil
}

// Run compiles and runs src once.
func (r *Runner) Run(ctx context.Context, src []byte) error {
	if r.scene() == nil {
		return ErrNoScene
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("sandbox", r.module()); err != nil {
		return err
	}
	compiled, err := script.Compile()
	if err != nil {
		return err
	}
	return compiled.RunContext(ctx)
}

// Tick advances the scene n fixed ticks and tallies the events seen.
func (r *Runner) Tick(n int) {
	s := r.scene()
	for i := 0; i < n; i++ {
		r.driver.Tick()
		s.UpdateParticles(r.driver.FixedDt())
		s.CleanupInvalid()
		r.ticks++
		r.tally()
	}
}

func (r *Runner) tally() {
	for _, e := range r.scene().Events() {
		r.counts[e.Kind]++
	}
}

// Ticks is the number of ticks run through this runner.
func (r *Runner) Ticks() int { return r.ticks }

// Counts returns the event tally, keyed by event name.
func (r *Runner) Counts() map[string]int {
	r.tally()
	out := make(map[string]int, len(r.counts))
	for k, v := range r.counts {
		out[k.String()] = v
	}
	return out
}

func parseFeature(name string) (sandbox.Feature, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bouncy", "bounce":
		return sandbox.FeatureBouncy, nil
	case "slippery", "slip":
		return sandbox.FeatureSlippery, nil
	case "sticky":
		return sandbox.FeatureSticky, nil
	case "glass":
		return sandbox.FeatureGlass, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

func parseLocation(name string) (sandbox.Location, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "land":
		return sandbox.LocationLand, nil
	case "water":
		return sandbox.LocationWater, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
}
