package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/physbox/prefabs"
	"github.com/milk9111/physbox/sandbox"
	"github.com/milk9111/physbox/scenario"
	"github.com/spf13/cobra"
)

var (
	width      float64
	height     float64
	configFile string
	sceneName  string
	startWater bool
	debug      bool
	seed       int64

	script string
	ticks  int
	plot   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "physbox",
		Short:        "interactive 2D physics sandbox",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	rootCmd.PersistentFlags().Float64Var(&width, "width", 0, "playfield width in pixels (0 keeps the tuning value)")
	rootCmd.PersistentFlags().Float64Var(&height, "height", 0, "playfield height in pixels (0 keeps the tuning value)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "tuning file (yaml); defaults to prefabs/sandbox.yaml")
	rootCmd.PersistentFlags().StringVar(&sceneName, "scene", "", "scene script to load at start (name under prefabs/scenes)")
	rootCmd.PersistentFlags().BoolVar(&startWater, "water", false, "start in the water location")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every simulation tick")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "particle random seed (0 keeps the tuning value)")

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run a scene script without a window and print a report",
		RunE:  runHeadless,
	}
	headlessCmd.Flags().StringVar(&script, "script", "", "scene name or path to a .tengo file")
	headlessCmd.Flags().IntVar(&ticks, "ticks", 600, "ticks to simulate after the script")
	headlessCmd.Flags().StringVar(&plot, "plot", scenario.PlotEnergy, "plot to print: energy, profile, speed or none")

	rootCmd.AddCommand(headlessCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadTuning reads the tuning file and applies the command line overrides.
func loadTuning() (prefabs.Tuning, error) {
	var (
		t   prefabs.Tuning
		err error
	)
	if configFile != "" {
		t, err = prefabs.LoadTuningFile(configFile)
	} else {
		t, err = prefabs.LoadTuning(prefabs.DefaultTuning)
	}
	if err != nil {
		return t, err
	}
	applyFlags(&t.Sandbox)
	return t, nil
}

func applyFlags(cfg *sandbox.Config) {
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	if startWater {
		cfg.StartInWater = true
	}
	if debug {
		cfg.Driver.Debug = true
	}
	if seed != 0 {
		cfg.Seed = seed
	}
}

func runWindow(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	game, err := NewGame(tuning, sceneName)
	if err != nil {
		return err
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(tuning.Sandbox.Width), int(tuning.Sandbox.Height))
	ebiten.SetWindowTitle("physbox")

	return ebiten.RunGame(game)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}
	cfg := tuning.Sandbox
	scene := sandbox.NewScene(cfg, nil)
	runner := scenario.NewRunner(sandbox.NewDriver(scene, cfg.Driver))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	name := script
	if script != "" {
		if name, err = runScript(ctx, runner, script); err != nil {
			return err
		}
	}

	rep := runner.Measure(name, ticks)
	out, err := rep.Render(plot)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// runScript runs a script file from disk when the argument names one, and an
// embedded scene otherwise. It returns the display name of the run.
func runScript(ctx context.Context, runner *scenario.Runner, arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		src, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("physbox: read %s: %w", arg, err)
		}
		if err := runner.Run(ctx, src); err != nil {
			return "", fmt.Errorf("physbox: run %s: %w", arg, err)
		}
		log.Printf("Headless: ran %s", arg)
		return filepath.Base(arg), nil
	}
	return arg, runner.RunScene(ctx, arg)
}
