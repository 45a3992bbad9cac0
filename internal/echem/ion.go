package echem

import (
	"fmt"
	"math"
	"sort"
)

// Ion holds the physical parameters of a single ionic species. Radii are in
// Angstroms, polarizabilities in cubic Angstroms, charge in units of the
// elementary charge. Values are immutable once constructed.
type Ion struct {
	Name           string
	Charge         float64
	RadiusAng      float64
	DispersionB    float64 // dispersion coefficient, m³/mol (unused by the core model)
	Polarizability float64
}

// VolumeM3 returns the ion volume in m³ computed from its radius in Angstroms.
func (i Ion) VolumeM3() float64 {
	return 4 * 1e-30 * math.Pi * math.Pow(i.RadiusAng, 3) / 3
}

// ChargeCoulombs returns the ion charge in Coulombs.
func (i Ion) ChargeCoulombs() float64 {
	return i.Charge * ElementaryCharge
}

// HydratedPolarizability returns the total polarizability of the ion plus a
// hydration shell of n water molecules, in cubic Angstroms.
func (i Ion) HydratedPolarizability(n, waterPolarizability float64) float64 {
	return i.Polarizability + n*waterPolarizability
}

// Solvent holds the bulk dielectric properties of a solvent.
type Solvent struct {
	Name               string
	DielectricConstant float64
	Polarizability     float64 // cubic Angstroms
}

// Permittivity returns the absolute permittivity in F/m.
func (s Solvent) Permittivity() float64 {
	return s.DielectricConstant * VacuumPermittivity
}

// IonDatabase lists the built-in ion parameter sets.
var IonDatabase = map[string]Ion{
	// Alkali metal cations
	"Li+": {Name: "Li+", Charge: 1, RadiusAng: 0.69, Polarizability: 0.03},
	"Na+": {Name: "Na+", Charge: 1, RadiusAng: 1.02, Polarizability: 0.139},
	"K+":  {Name: "K+", Charge: 1, RadiusAng: 1.38, Polarizability: 0.856},
	"Rb+": {Name: "Rb+", Charge: 1, RadiusAng: 1.52, Polarizability: 1.43},
	"Cs+": {Name: "Cs+", Charge: 1, RadiusAng: 1.67, Polarizability: 2.42},

	// Halide anions
	"F-":  {Name: "F-", Charge: -1, RadiusAng: 1.33, Polarizability: 1.913},
	"Cl-": {Name: "Cl-", Charge: -1, RadiusAng: 1.81, Polarizability: 3.66},
	"Br-": {Name: "Br-", Charge: -1, RadiusAng: 1.96, Polarizability: 4.78},
	"I-":  {Name: "I-", Charge: -1, RadiusAng: 2.20, Polarizability: 7.12},

	// Hydrated ions
	"Na+_hydrated": {Name: "Na+_hydrated", Charge: 1, RadiusAng: 2.93, Polarizability: 0.139},
	"F-_hydrated":  {Name: "F-_hydrated", Charge: -1, RadiusAng: 1.95, Polarizability: 1.913},

	// Ionic liquid ions
	"EMIM+": {Name: "EMIM+", Charge: 1, RadiusAng: 3.7, Polarizability: 8.0},
	"TFSI-": {Name: "TFSI-", Charge: -1, RadiusAng: 2.85, Polarizability: 5.0},
}

// SolventDatabase lists the built-in solvents.
var SolventDatabase = map[string]Solvent{
	"water":             {Name: "water", DielectricConstant: 78.5, Polarizability: 1.4255},
	"ethanol":           {Name: "ethanol", DielectricConstant: 24.6, Polarizability: 5.13},
	"methanol":          {Name: "methanol", DielectricConstant: 32.7, Polarizability: 3.29},
	"acetonitrile":      {Name: "acetonitrile", DielectricConstant: 36.6, Polarizability: 4.48},
	"dimethylsulfoxide": {Name: "dimethylsulfoxide", DielectricConstant: 46.7, Polarizability: 8.13},
	"ionic_liquid":      {Name: "ionic_liquid", DielectricConstant: 1.0, Polarizability: 0.0},
}

// LookupIon returns the named ion from the built-in database.
func LookupIon(name string) (Ion, error) {
	ion, ok := IonDatabase[name]
	if !ok {
		return Ion{}, fmt.Errorf("echem: unknown ion %q (available: %v)", name, IonNames())
	}
	return ion, nil
}

// LookupSolvent returns the named solvent from the built-in database.
func LookupSolvent(name string) (Solvent, error) {
	s, ok := SolventDatabase[name]
	if !ok {
		return Solvent{}, fmt.Errorf("echem: unknown solvent %q (available: %v)", name, SolventNames())
	}
	return s, nil
}

// IonNames returns the database ion names in sorted order.
func IonNames() []string {
	names := make([]string, 0, len(IonDatabase))
	for name := range IonDatabase {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SolventNames returns the database solvent names in sorted order.
func SolventNames() []string {
	names := make([]string, 0, len(SolventDatabase))
	for name := range SolventDatabase {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
