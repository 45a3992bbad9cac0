package echem

// Physical constants (CODATA 2018).
const (
	ElementaryCharge   = 1.602176634e-19  // C
	Boltzmann          = 1.380649e-23     // J/K
	Avogadro           = 6.02214076e23    // 1/mol
	VacuumPermittivity = 8.8541878128e-12 // F/m

	// WaterPolarizability is the polarizability of a single water molecule
	// in cubic Angstroms, used as the per-molecule contribution of a
	// hydration shell.
	WaterPolarizability = 1.4255

	// MolPerLiterToSI converts mol/L concentrations to particles/m³ when
	// multiplied by a concentration in mol/L.
	MolPerLiterToSI = 1000 * Avogadro
)
