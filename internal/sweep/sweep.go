// Package sweep runs a capacitance model across a grid of electrode
// potentials and summarizes the resulting curve.
package sweep

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/stericap/internal/model"
)

// Config describes a potential sweep in volts. Steps counts grid points
// including both endpoints.
type Config struct {
	Start float64
	End   float64
	Steps int
}

// Point holds every derived quantity at one potential.
type Point struct {
	Potential             float64 `json:"potential"`               // V
	Capacitance           float64 `json:"capacitance"`             // μF/cm²
	AnalyticalCapacitance float64 `json:"analytical_capacitance"`  // μF/cm²
	ChargeDensity         float64 `json:"charge_density"`          // C/m²
	SurfaceVolumeFraction float64 `json:"surface_volume_fraction"`
	ReducedDielectric     float64 `json:"reduced_dielectric"`
	DebyeLength           float64 `json:"debye_length"`            // m
	StericThickness       float64 `json:"steric_thickness"`        // m
}

// Result is a completed sweep with summary metrics and the model's
// diagnostics snapshot taken after the last point.
type Result struct {
	Points      []Point
	Metrics     map[string]float64
	Diagnostics model.Diagnostics
}

// Run evaluates the model at every grid potential. Cancellation is checked
// between points; a canceled context aborts with the context's error.
func Run(ctx context.Context, m *model.Model, cfg Config) (*Result, error) {
	if cfg.Steps < 2 {
		return nil, fmt.Errorf("sweep: need at least 2 steps, got %d", cfg.Steps)
	}
	if cfg.End <= cfg.Start {
		return nil, fmt.Errorf("sweep: end %g must exceed start %g", cfg.End, cfg.Start)
	}

	grid := floats.Span(make([]float64, cfg.Steps), cfg.Start, cfg.End)
	points := make([]Point, 0, len(grid))

	for _, pot := range grid {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		points = append(points, Compute(m, pot))
	}

	diag := m.Diagnostics()
	return &Result{
		Points:      points,
		Metrics:     summarize(points, diag),
		Diagnostics: diag,
	}, nil
}

// Compute evaluates every derived quantity at a single potential.
func Compute(m *model.Model, potential float64) Point {
	capacitance, sigma := m.Capacitance(potential)
	return Point{
		Potential:             potential,
		Capacitance:           capacitance,
		AnalyticalCapacitance: m.AnalyticalCapacitance(potential),
		ChargeDensity:         sigma,
		SurfaceVolumeFraction: m.SurfaceVolumeFraction(potential),
		ReducedDielectric:     m.ReducedDielectric(potential),
		DebyeLength:           m.DebyeLength(potential),
		StericThickness:       m.StericLayerThickness(potential),
	}
}

func summarize(points []Point, diag model.Diagnostics) map[string]float64 {
	metrics := make(map[string]float64)
	if len(points) == 0 {
		return metrics
	}

	maxCap, minCap := points[0].Capacitance, points[0].Capacitance
	potAtMax := points[0].Potential
	sum := 0.0
	for _, p := range points {
		if p.Capacitance > maxCap {
			maxCap = p.Capacitance
			potAtMax = p.Potential
		}
		if p.Capacitance < minCap {
			minCap = p.Capacitance
		}
		sum += p.Capacitance
	}

	metrics["max_capacitance"] = maxCap
	metrics["min_capacitance"] = minCap
	metrics["mean_capacitance"] = sum / float64(len(points))
	metrics["potential_at_max"] = potAtMax
	metrics["fallback_points"] = float64(diag.HeuristicSolves + diag.PicardSolves +
		diag.GradientSolves + diag.DielectricFallbacks +
		diag.ChargeFallbacks + diag.CapacitanceFallbacks)
	return metrics
}
