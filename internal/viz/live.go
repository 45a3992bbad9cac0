// Package viz renders a live terminal view of a running potential sweep.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/stericap/internal/model"
	"github.com/san-kum/stericap/internal/sweep"
)

const pointsPerTick = 2

type TickMsg time.Time

// Live steps through a potential grid a few points per frame and charts the
// capacitance curve as it grows.
type Live struct {
	mdl    *model.Model
	grid   []float64
	idx    int
	points []sweep.Point
	title  string
	paused bool
}

func NewLive(mdl *model.Model, cfg sweep.Config, title string) Live {
	return Live{
		mdl:    mdl,
		grid:   floats.Span(make([]float64, cfg.Steps), cfg.Start, cfg.End),
		points: make([]sweep.Point, 0, cfg.Steps),
		title:  title,
	}
}

func (l Live) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (l Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return l, tea.Quit
		case " ":
			l.paused = !l.paused
		}
	case TickMsg:
		if !l.paused {
			for i := 0; i < pointsPerTick && l.idx < len(l.grid); i++ {
				l.points = append(l.points, sweep.Compute(l.mdl, l.grid[l.idx]))
				l.idx++
			}
		}
		return l, tick()
	}
	return l, nil
}

func (l Live) View() string {
	var caps []float64
	for _, p := range l.points {
		caps = append(caps, p.Capacitance)
	}

	var chart string
	if len(caps) > 1 {
		chart = graphStyle.Render(asciigraph.Plot(caps,
			asciigraph.Height(14),
			asciigraph.Width(70),
			asciigraph.Caption("differential capacitance (μF/cm²) vs potential"),
		))
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(l.title)) + "\n")

	status := "SWEEPING"
	if l.paused {
		status = "PAUSED"
	} else if l.idx >= len(l.grid) {
		status = "DONE"
	}
	s.WriteString(status + "\n\n")

	progress := float64(l.idx) / float64(len(l.grid))
	s.WriteString(progressBar(progress, 24) + fmt.Sprintf(" %d/%d\n\n", l.idx, len(l.grid)))

	if len(l.points) > 0 {
		p := l.points[len(l.points)-1]
		s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%+.3f V", p.Potential)) + "\n")
		s.WriteString(labelStyle.Render("Capacitance") + valueStyle.Render(fmt.Sprintf("%.3f μF/cm²", p.Capacitance)) + "\n")
		s.WriteString(labelStyle.Render("Charge") + valueStyle.Render(fmt.Sprintf("%+.4e C/m²", p.ChargeDensity)) + "\n")
		s.WriteString(labelStyle.Render("Surface φ") + valueStyle.Render(fmt.Sprintf("%.5f", p.SurfaceVolumeFraction)) + "\n")
		s.WriteString(labelStyle.Render("ε reduced") + valueStyle.Render(fmt.Sprintf("%.2f", p.ReducedDielectric)) + "\n")
	}

	diag := l.mdl.Diagnostics()
	if diag.Degraded() {
		s.WriteString("\n" + warnStyle.Render("degraded points present") + "\n")
	}

	s.WriteString(helpStyle.Render("\nSP:Pause Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, chart, statsStyle.Render(s.String()))
}
