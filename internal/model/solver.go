package model

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/san-kum/stericap/internal/echem"
)

const (
	// phiEdge keeps bracketing strictly inside the (0, 1) domain of the
	// steric equations of state.
	phiEdge = 1e-10

	// scanPoints subdivides (phiEdge, 1-phiEdge) into 19 equal intervals
	// when the coarse endpoint bracket fails.
	scanPoints = 20

	residualTol = 1e-20

	picardMaxIter = 10
	picardTol     = 1e-6

	brentTol     = 1e-14
	brentMaxIter = 100
)

// SurfaceVolumeFraction solves the self-consistent Boltzmann balance
//
//	φ₀ = 1000·N_A·v·c_bulk·exp(-(qΦ + Δμ_steric(φ₀)) / kT)
//
// for the ion volume fraction at the electrode surface. Results are memoized
// per potential. The solve never fails: a ladder of root-finding strategies
// runs in priority order and the first success wins, terminating in a
// monotone heuristic, so a numeric answer is always returned. Degraded rungs
// are counted in Diagnostics and logged.
func (m *Model) SurfaceVolumeFraction(potential float64) float64 {
	return m.SurfaceVolumeFractionNES(potential, nil)
}

// SurfaceVolumeFractionNES is SurfaceVolumeFraction with additional
// non-electrostatic energy terms (Joules) added to the exclusion penalty of
// the counterion.
func (m *Model) SurfaceVolumeFractionNES(potential float64, nes []float64) float64 {
	key := potentialKey(potential)
	if phi, ok := m.phiCache[key]; ok {
		return phi
	}

	m.diag.SolverCalls++
	root := m.solvePhi(potential, nes)

	// Final clamp into the physical open interval.
	if root <= 0 || root >= 1 {
		root = math.Max(1e-6, math.Min(0.999, root))
	}

	m.phiCache[key] = root
	return root
}

func (m *Model) solvePhi(potential float64, nes []float64) float64 {
	charge, volume, _ := m.ionParameters(potential)

	// Right-hand side of the Boltzmann balance.
	rhs := func(phi float64) float64 {
		excess := charge * potential
		for _, e := range nes {
			excess += e
		}
		excess += m.StericEnergy(phi, true)
		return echem.MolPerLiterToSI * volume * m.cBulk * math.Exp(-excess/m.kT)
	}
	g := func(phi float64) float64 { return phi - rhs(phi) }

	if root, ok := m.solveEndpointBracket(g); ok {
		m.diag.BracketSolves++
		return root
	}
	if root, ok := m.solveScanBracket(g); ok {
		m.diag.ScanSolves++
		return root
	}
	if root, ok := m.solveMinimizeResidual(g); ok {
		m.diag.MinimizeSolves++
		m.logger.Warn("surface volume fraction accepted from residual minimization",
			"potential", potential, "phi", root)
		return root
	}
	if root, ok := m.solvePicard(rhs); ok {
		m.diag.PicardSolves++
		m.logger.Warn("surface volume fraction accepted from damped fixed-point iteration",
			"potential", potential, "phi", root)
		return root
	}
	if root, ok := m.solveGradient(g); ok {
		m.diag.GradientSolves++
		m.logger.Warn("surface volume fraction accepted from gradient solve",
			"potential", potential, "phi", root)
		return root
	}

	root := m.heuristicPhi(potential)
	m.diag.HeuristicSolves++
	m.logger.Warn("surface volume fraction estimated heuristically",
		"potential", potential, "phi", root)
	return root
}

// solveEndpointBracket tries the coarse bracket spanning the whole domain.
func (m *Model) solveEndpointBracket(g func(float64) float64) (float64, bool) {
	lo, hi := phiEdge, 1-phiEdge
	flo, fhi := g(lo), g(hi)
	if !isFinite(flo) || !isFinite(fhi) || flo*fhi > 0 {
		return 0, false
	}
	root, err := brent(g, lo, hi)
	if err != nil || !isFinite(root) {
		return 0, false
	}
	return root, true
}

// solveScanBracket searches 19 equal sub-intervals for a sign change.
func (m *Model) solveScanBracket(g func(float64) float64) (float64, bool) {
	pts := floats.Span(make([]float64, scanPoints), phiEdge, 1-phiEdge)
	fprev := g(pts[0])
	for i := 1; i < len(pts); i++ {
		fcur := g(pts[i])
		if isFinite(fprev) && isFinite(fcur) && fprev*fcur <= 0 {
			root, err := brent(g, pts[i-1], pts[i])
			if err == nil && isFinite(root) {
				return root, true
			}
		}
		fprev = fcur
	}
	return 0, false
}

// solveMinimizeResidual minimizes |g| over the domain and accepts the
// minimizer only when the residual is effectively zero.
func (m *Model) solveMinimizeResidual(g func(float64) float64) (float64, bool) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			phi := x[0]
			if phi <= phiEdge || phi >= 1-phiEdge {
				return math.Inf(1)
			}
			return math.Abs(g(phi))
		},
	}
	result, err := optimize.Minimize(problem, []float64{m.startPhi()}, nil, &optimize.NelderMead{})
	if err != nil || result == nil {
		return 0, false
	}
	phi := result.X[0]
	if !isFinite(phi) || math.Abs(g(phi)) >= residualTol {
		return 0, false
	}
	return phi, true
}

// solvePicard runs a damped fixed-point iteration from the bulk volume
// fraction and accepts the last iterate.
func (m *Model) solvePicard(rhs func(float64) float64) (float64, bool) {
	phi := m.startPhi()
	for i := 0; i < picardMaxIter; i++ {
		next := rhs(phi)
		if !isFinite(next) {
			return 0, false
		}
		if math.Abs(next-phi) < picardTol {
			break
		}
		// 50% damping to avoid oscillation.
		phi = 0.5*phi + 0.5*next
	}
	if !isFinite(phi) {
		return 0, false
	}
	return phi, true
}

// solveGradient minimizes g² without domain constraints, starting from the
// bulk volume fraction. Accepted only on reported convergence with a small
// residual.
func (m *Model) solveGradient(g func(float64) float64) (float64, bool) {
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r := g(x[0])
			return r * r
		},
	}
	result, err := optimize.Minimize(problem, []float64{m.startPhi()}, nil, &optimize.BFGS{})
	if err != nil || result == nil {
		return 0, false
	}
	phi := result.X[0]
	if !isFinite(phi) || math.Abs(g(phi)) > 1e-8 {
		return 0, false
	}
	return phi, true
}

// heuristicPhi is the last-resort monotone estimate: crowding grows toward
// the attracting electrode, depletes away from it.
func (m *Model) heuristicPhi(potential float64) float64 {
	if potential > 0 {
		factor := math.Max(0.1, math.Exp(-math.Abs(potential)/m.kT/10))
		return math.Max(1e-6, m.volfracBulk*factor)
	}
	factor := math.Min(10, math.Exp(math.Abs(potential)/m.kT/10))
	return math.Min(0.999, m.volfracBulk*factor)
}

// startPhi is the solver starting point: the bulk volume fraction nudged
// inside the open domain.
func (m *Model) startPhi() float64 {
	return math.Max(phiEdge*10, math.Min(1-phiEdge*10, m.volfracBulk))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// brent finds a root of f on [a, b] by Brent's method. The endpoints must
// bracket a sign change.
func brent(f func(float64) float64, a, b float64) (float64, error) {
	fa, fb := f(a), f(b)
	if fa*fb > 0 {
		return 0, ErrNotBracketed
	}
	if fa == 0 {
		return a, nil
	}
	if fb == 0 {
		return b, nil
	}

	c, fc := a, fa
	d := b - a
	e := d

	for i := 0; i < brentMaxIter; i++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		eps := math.Nextafter(1, 2) - 1
		tol := 2*eps*math.Abs(b) + brentTol
		mid := 0.5 * (c - b)

		if math.Abs(mid) <= tol || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// Attempt inverse quadratic interpolation / secant.
			s := fb / fa
			var p, q float64
			if a == c {
				p = 2 * mid * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*mid*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*mid*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = mid
				e = d
			}
		} else {
			d = mid
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if mid > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)

		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return b, ErrNoConvergence
}
