package model

import (
	"math"

	"github.com/san-kum/stericap/internal/echem"
)

// reducedDielectricFromVolfrac applies the Clausius-Mossotti mixing rule for
// a crowded interfacial region: counterions of permittivity epsilonI occupy a
// volume fraction volfrac of the solvent.
func (m *Model) reducedDielectricFromVolfrac(epsilonI, volfrac float64) (float64, error) {
	num := (1+2*volfrac)*epsilonI + 2*(1-volfrac)*m.epsilonR
	den := (1-volfrac)*epsilonI + (2+volfrac)*m.epsilonR
	if den == 0 {
		return 0, ErrMixingDenominator
	}
	return m.epsilonR * num / den, nil
}

// ReducedDielectric returns the effective relative dielectric constant of the
// interfacial region at the given potential, cached per potential. On any
// failure the bulk dielectric constant is substituted and the substitution is
// counted and logged.
func (m *Model) ReducedDielectric(potential float64) float64 {
	key := potentialKey(potential)
	if eps, ok := m.dielectricCache[key]; ok {
		return eps
	}

	_, _, epsilonI := m.ionParameters(potential)
	volfrac := m.SurfaceVolumeFraction(potential)

	eps, err := m.reducedDielectricFromVolfrac(epsilonI, volfrac)
	if err != nil || !isFinite(eps) {
		m.diag.DielectricFallbacks++
		m.logger.Warn("reduced dielectric unavailable, using bulk value",
			"potential", potential, "error", err)
		return m.epsilonR
	}

	m.dielectricCache[key] = eps
	return eps
}

// DebyeLength returns the electrostatic screening length in meters, using
// the reduced dielectric constant at the given potential.
func (m *Model) DebyeLength(potential float64) float64 {
	epsAdjusted := echem.VacuumPermittivity * m.ReducedDielectric(potential)
	e := echem.ElementaryCharge
	return math.Sqrt(epsAdjusted * m.kT / (2 * m.cBulk * e * e * echem.MolPerLiterToSI))
}
