package scenario

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

var ErrUnknownPlot = errors.New("scenario: unknown plot")

// Plot kinds understood by Report.Render.
const (
	PlotEnergy  = "energy"
	PlotProfile = "profile"
	PlotSpeed   = "speed"
	PlotNone    = "none"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666688"))
)

// Report summarises a measured run.
type Report struct {
	Name     string
	Location string
	Ticks    int
	Bodies   int
	Joints   int
	Glass    int
	Counts   map[string]int

	// Per tick samples.
	Energy []float64
	Speed  []float64
	// Surface displacement above the rest line at the end of the run, in
	// pixels. Empty on land.
	Profile []float64
}

// Measure runs n ticks, sampling water energy and mean body speed after
// each one, and returns the report for the scene as it ends up.
func (r *Runner) Measure(name string, n int) Report {
	rep := Report{Name: name}
	s := r.scene()
	if s == nil {
		return rep
	}
	dt := r.driver.FixedDt()
	for i := 0; i < n; i++ {
		r.Tick(1)
		rep.Energy = append(rep.Energy, s.Water().Energy(dt))
		rep.Speed = append(rep.Speed, meanSpeed(r))
	}

	rep.Location = s.Location().String()
	rep.Ticks = r.Ticks()
	rep.Bodies = s.Len()
	rep.Joints = len(s.Joints())
	for _, b := range s.Bodies() {
		if b.Features.Glass {
			rep.Glass++
		}
	}
	rep.Counts = r.Counts()
	if profile := s.WaterProfile(); len(profile) > 0 {
		rest := s.Water().Baseline()
		rep.Profile = make([]float64, len(profile))
		for i, p := range profile {
			rep.Profile[i] = rest - p.Y
		}
	}
	return rep
}

func meanSpeed(r *Runner) float64 {
	s := r.scene()
	n := s.Len()
	if n == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		total += s.Velocity(i).Length()
	}
	return total / float64(n)
}

// Render lays the report out for a terminal, followed by the requested plot.
func (rep Report) Render(plot string) (string, error) {
	graph, err := rep.graph(plot)
	if err != nil {
		return "", err
	}

	name := rep.Name
	if name == "" {
		name = "(empty scene)"
	}
	lines := []string{
		titleStyle.Render("physbox " + name),
		"",
		row("location", rep.Location),
		row("ticks", fmt.Sprintf("%d", rep.Ticks)),
		row("bodies", fmt.Sprintf("%d", rep.Bodies)),
		row("joints", fmt.Sprintf("%d", rep.Joints)),
		row("glass", fmt.Sprintf("%d", rep.Glass)),
	}
	if len(rep.Counts) > 0 {
		lines = append(lines, "", subtleStyle.Render("events"))
		keys := make([]string, 0, len(rep.Counts))
		for k := range rep.Counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			lines = append(lines, row(k, fmt.Sprintf("%d", rep.Counts[k])))
		}
	}

	out := panelStyle.Render(strings.Join(lines, "\n"))
	if graph != "" {
		out += "\n\n" + graph
	}
	return out, nil
}

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
}

func (rep Report) graph(plot string) (string, error) {
	var data []float64
	var caption string
	switch strings.ToLower(plot) {
	case PlotEnergy, "":
		data, caption = rep.Energy, "water energy per tick"
	case PlotProfile:
		data, caption = rep.Profile, "water surface (px above rest)"
	case PlotSpeed:
		data, caption = rep.Speed, "mean body speed (m/s)"
	case PlotNone:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPlot, plot)
	}
	if len(data) == 0 {
		return subtleStyle.Render(caption + ": no samples"), nil
	}
	if flat(data) {
		return subtleStyle.Render(fmt.Sprintf("%s: flat at %.3g", caption, data[0])), nil
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	), nil
}

func flat(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}
