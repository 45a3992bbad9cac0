package model

import (
	"math"
	"testing"
)

func TestSurfaceVolumeFractionEquilibrium(t *testing.T) {
	m := testModel(t)
	phi := m.SurfaceVolumeFraction(0)

	// At zero bias the surface fraction stays near the bulk composition.
	bulk := m.BulkVolumeFraction()
	if math.Abs(phi-bulk)/bulk > 0.5 {
		t.Errorf("equilibrium surface fraction %.4e too far from bulk %.4e", phi, bulk)
	}
	if phi <= 0 || phi >= 1 {
		t.Errorf("surface fraction outside (0, 1): %g", phi)
	}
}

func TestSurfaceVolumeFractionGrowsWithBias(t *testing.T) {
	m := testModel(t)

	prev := m.SurfaceVolumeFraction(0.1)
	for _, pot := range []float64{0.3, 0.5, 0.8} {
		cur := m.SurfaceVolumeFraction(pot)
		if cur <= prev {
			t.Errorf("crowding must grow with bias: phi(%.1f)=%.4e <= phi(prev)=%.4e", pot, cur, prev)
		}
		prev = cur
	}

	prev = m.SurfaceVolumeFraction(-0.1)
	for _, pot := range []float64{-0.3, -0.5, -0.8} {
		cur := m.SurfaceVolumeFraction(pot)
		if cur <= prev {
			t.Errorf("crowding must grow with bias: phi(%.1f)=%.4e <= phi(prev)=%.4e", pot, cur, prev)
		}
		prev = cur
	}
}

func TestSurfaceVolumeFractionBounds(t *testing.T) {
	m := testModel(t)
	for _, pot := range []float64{-2, -1, -0.5, -0.01, 0, 0.01, 0.5, 1, 2} {
		phi := m.SurfaceVolumeFraction(pot)
		if phi <= 0 || phi >= 1 {
			t.Errorf("phi(%g) = %g outside (0, 1)", pot, phi)
		}
		if !isFinite(phi) {
			t.Errorf("phi(%g) not finite", pot)
		}
	}
}

func TestSurfaceVolumeFractionCached(t *testing.T) {
	m := testModel(t)

	first := m.SurfaceVolumeFraction(0.3)
	calls := m.Diagnostics().SolverCalls

	second := m.SurfaceVolumeFraction(0.3)
	if second != first {
		t.Errorf("cached value changed: %.12e != %.12e", second, first)
	}
	if got := m.Diagnostics().SolverCalls; got != calls {
		t.Errorf("cache hit must not re-run the solver: %d != %d", got, calls)
	}

	// Sub-nanovolts of noise map to the same cache entry.
	third := m.SurfaceVolumeFraction(0.3 + 1e-12)
	if third != first {
		t.Errorf("quantized potential missed the cache: %.12e != %.12e", third, first)
	}
	if got := m.Diagnostics().SolverCalls; got != calls {
		t.Errorf("quantized potential re-ran the solver: %d != %d", got, calls)
	}
}

func TestSolverResidual(t *testing.T) {
	m := testModel(t)

	for _, pot := range []float64{-0.5, -0.2, 0.2, 0.5} {
		phi := m.SurfaceVolumeFraction(pot)

		charge := -1.602176634e-19
		volume := m.ionVolumes[1]
		if pot < 0 {
			charge = -charge
			volume = m.ionVolumes[0]
		}
		excess := charge*pot + m.StericEnergy(phi, true)
		rhs := 1000 * 6.02214076e23 * volume * m.cBulk * math.Exp(-excess/m.kT)

		if math.Abs(phi-rhs) > 1e-9 {
			t.Errorf("balance residual at %.1f V: phi=%.8e rhs=%.8e", pot, phi, rhs)
		}
	}
}

func TestSolverUsesBracketRungs(t *testing.T) {
	m := testModel(t)
	for _, pot := range []float64{-0.8, -0.4, 0, 0.4, 0.8} {
		m.SurfaceVolumeFraction(pot)
	}

	d := m.Diagnostics()
	if d.SolverCalls != 5 {
		t.Errorf("expected 5 solver calls, got %d", d.SolverCalls)
	}
	if d.BracketSolves+d.ScanSolves != d.SolverCalls {
		t.Errorf("well-behaved electrolyte should solve by bracketing: %+v", d)
	}
	if d.Degraded() {
		t.Errorf("no degraded rungs expected: %+v", d)
	}
}

func TestBrent(t *testing.T) {
	root, err := brent(func(x float64) float64 { return x*x - 2 }, 0, 2)
	if err != nil {
		t.Fatalf("brent failed: %v", err)
	}
	if math.Abs(root-math.Sqrt2) > 1e-10 {
		t.Errorf("expected sqrt(2), got %.12f", root)
	}

	if _, err := brent(func(x float64) float64 { return x*x + 1 }, -1, 1); err == nil {
		t.Error("expected bracketing error for sign-definite function")
	}

	// Exact root at an endpoint.
	root, err = brent(func(x float64) float64 { return x }, 0, 1)
	if err != nil || root != 0 {
		t.Errorf("expected endpoint root 0, got %g (%v)", root, err)
	}
}

func TestHeuristicPhiDirection(t *testing.T) {
	m := testModel(t)
	bulk := m.BulkVolumeFraction()

	if got := m.heuristicPhi(0.5); got > bulk {
		t.Errorf("positive-bias heuristic must not exceed bulk: %g > %g", got, bulk)
	}
	if got := m.heuristicPhi(-0.5); got < bulk {
		t.Errorf("negative-bias heuristic must not drop below bulk: %g < %g", got, bulk)
	}
}

func TestSurfaceVolumeFractionNES(t *testing.T) {
	m := testModel(t)
	base := m.SurfaceVolumeFraction(0.4)

	m2 := testModel(t)
	// A repulsive non-electrostatic penalty lowers the surface crowding.
	penalty := 2 * m2.ThermalEnergy()
	withNES := m2.SurfaceVolumeFractionNES(0.4, []float64{penalty})

	if withNES >= base {
		t.Errorf("repulsive NES term must reduce crowding: %.4e >= %.4e", withNES, base)
	}
}
