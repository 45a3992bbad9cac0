package echem

import "fmt"

// System describes a symmetric binary electrolyte: one cation species, one
// anion species, a solvent, bulk concentration in mol/L and temperature in
// Kelvin. Hydrated polarizabilities are computed once at construction and the
// descriptor is immutable afterwards.
type System struct {
	Cation        Ion
	Anion         Ion
	Solvent       Solvent
	Concentration float64
	Temperature   float64

	NHydrationCation float64
	NHydrationAnion  float64

	// Effective (hydration-adjusted) polarizabilities in cubic Angstroms.
	// The hydration shell always uses the water polarizability constant,
	// regardless of the declared solvent: only aqueous hydration shells
	// are modeled.
	CationPolarizability float64
	AnionPolarizability  float64
}

// NewSystem validates the physical inputs and precomputes the hydrated ion
// polarizabilities.
func NewSystem(cation, anion Ion, solvent Solvent, concentration, temperature, nHydrationCation, nHydrationAnion float64) (*System, error) {
	if cation.Charge <= 0 {
		return nil, fmt.Errorf("echem: cation %q must carry positive charge, got %g", cation.Name, cation.Charge)
	}
	if anion.Charge >= 0 {
		return nil, fmt.Errorf("echem: anion %q must carry negative charge, got %g", anion.Name, anion.Charge)
	}
	if cation.RadiusAng <= 0 || anion.RadiusAng <= 0 {
		return nil, fmt.Errorf("echem: ion radii must be positive, got %g and %g", cation.RadiusAng, anion.RadiusAng)
	}
	if solvent.DielectricConstant <= 0 {
		return nil, fmt.Errorf("echem: solvent dielectric constant must be positive, got %g", solvent.DielectricConstant)
	}
	if concentration <= 0 {
		return nil, fmt.Errorf("echem: concentration must be positive, got %g", concentration)
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("echem: temperature must be positive, got %g", temperature)
	}
	if nHydrationCation < 0 || nHydrationAnion < 0 {
		return nil, fmt.Errorf("echem: hydration counts must be non-negative, got %g and %g", nHydrationCation, nHydrationAnion)
	}

	return &System{
		Cation:               cation,
		Anion:                anion,
		Solvent:              solvent,
		Concentration:        concentration,
		Temperature:          temperature,
		NHydrationCation:     nHydrationCation,
		NHydrationAnion:      nHydrationAnion,
		CationPolarizability: cation.HydratedPolarizability(nHydrationCation, WaterPolarizability),
		AnionPolarizability:  anion.HydratedPolarizability(nHydrationAnion, WaterPolarizability),
	}, nil
}

// IonRadii returns the (cation, anion) radii in Angstroms.
func (s *System) IonRadii() (float64, float64) {
	return s.Cation.RadiusAng, s.Anion.RadiusAng
}

// IonPolarizabilities returns the hydration-adjusted (cation, anion)
// polarizabilities in cubic Angstroms.
func (s *System) IonPolarizabilities() (float64, float64) {
	return s.CationPolarizability, s.AnionPolarizability
}

// DielectricConstant returns the relative dielectric constant of the solvent.
func (s *System) DielectricConstant() float64 {
	return s.Solvent.DielectricConstant
}
