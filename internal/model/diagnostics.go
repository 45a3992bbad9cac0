package model

// Diagnostics counts solver invocations and fallback substitutions so that
// degraded results stay observable. The counters only grow; snapshot via
// Model.Diagnostics.
type Diagnostics struct {
	// SolverCalls counts full ladder runs (cache misses).
	SolverCalls int

	// Per-rung success counts, in ladder priority order.
	BracketSolves   int
	ScanSolves      int
	MinimizeSolves  int
	PicardSolves    int
	GradientSolves  int
	HeuristicSolves int

	// DielectricFallbacks counts substitutions of the bulk dielectric
	// constant for a failed mixing-rule evaluation.
	DielectricFallbacks int

	// ChargeFallbacks and CapacitanceFallbacks count Gouy-Chapman-Stern
	// linear-theory substitutions.
	ChargeFallbacks      int
	CapacitanceFallbacks int
}

// Diagnostics returns a snapshot of the model's counters.
func (m *Model) Diagnostics() Diagnostics {
	return m.diag
}

// Degraded reports whether any fallback past the bracketing rungs was taken.
func (d Diagnostics) Degraded() bool {
	return d.MinimizeSolves+d.PicardSolves+d.GradientSolves+d.HeuristicSolves+
		d.DielectricFallbacks+d.ChargeFallbacks+d.CapacitanceFallbacks > 0
}
