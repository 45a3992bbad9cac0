package model

import (
	"math"

	"github.com/san-kum/stericap/internal/echem"
)

// StericLayerThickness returns the width H of the crowded interfacial layer
// in meters, cached per potential. The radicand is negative when the surface
// charge and potential signs disagree; the NaN result is returned as-is.
func (m *Model) StericLayerThickness(potential float64) float64 {
	key := potentialKey(potential)
	if h, ok := m.thicknessCache[key]; ok {
		return h
	}

	q, _, _ := m.ionParameters(potential)
	volfrac := m.SurfaceVolumeFraction(potential)
	cSurface := m.surfaceConcentration(potential, volfrac)

	epsAdjusted := echem.VacuumPermittivity * m.ReducedDielectric(potential)

	h := math.Sqrt(-6 * potential * epsAdjusted / q / echem.MolPerLiterToSI / (cSurface + 2*m.cBulk))

	m.thicknessCache[key] = h
	return h
}

// ConcentrationProfile returns the counterion concentration in mol/L at
// distance x (meters) from the electrode: linear between the surface and bulk
// values across the steric layer, bulk beyond it.
func (m *Model) ConcentrationProfile(x, potential float64) float64 {
	volfrac := m.SurfaceVolumeFraction(potential)
	cSurface := m.surfaceConcentration(potential, volfrac)

	h := m.StericLayerThickness(potential)
	if x > h {
		return m.cBulk
	}
	return x*(m.cBulk-cSurface)/h + cSurface
}

// PotentialProfile returns the electrostatic potential in volts at distance x
// (meters) from the electrode, from integrating the linear charge-density
// profile twice. Zero beyond the steric layer.
func (m *Model) PotentialProfile(x, potential float64) float64 {
	q, _, _ := m.ionParameters(potential)
	volfrac := m.SurfaceVolumeFraction(potential)
	cs := m.surfaceConcentration(potential, volfrac)

	epsAdjusted := echem.VacuumPermittivity * m.ReducedDielectric(potential)
	h := m.StericLayerThickness(potential)

	if x > h {
		return 0
	}

	phi := q * (cs - m.cBulk) * x * x * x / 6 / h
	phi -= q * cs * x * x / 2
	phi += q * (cs + m.cBulk) * h * x / 2
	phi -= q * (cs + 2*m.cBulk) * h * h / 6
	phi /= epsAdjusted
	return phi * echem.MolPerLiterToSI
}

// FieldProfile returns the electric field in V/m at distance x (meters) from
// the electrode. Zero beyond the steric layer.
func (m *Model) FieldProfile(x, potential float64) float64 {
	q, _, _ := m.ionParameters(potential)
	volfrac := m.SurfaceVolumeFraction(potential)
	cs := m.surfaceConcentration(potential, volfrac)

	epsAdjusted := echem.VacuumPermittivity * m.ReducedDielectric(potential)
	h := m.StericLayerThickness(potential)

	if x > h {
		return 0
	}

	field := -q * (cs - m.cBulk) * x * x / 2 / h
	field += q * cs * x
	field -= q * (cs + m.cBulk) * h / 2
	field /= epsAdjusted
	return field * echem.MolPerLiterToSI
}
