package model

import (
	"log/slog"
	"math"

	"github.com/san-kum/stericap/internal/echem"
)

// Steric equation-of-state selectors. Any value other than
// StericCarnahanStarling selects the Liu model.
const (
	StericCarnahanStarling = "cs"
	StericLiu              = "liu"
)

// Model computes differential capacitance and interfacial quantities for an
// electrode-electrolyte interface with finite-ion-size corrections and a
// self-consistent dielectric-saturation correction.
//
// All derived constants are frozen at construction. Surface volume fraction,
// reduced dielectric constant and steric layer thickness are memoized per
// potential (rounded to 9 decimals) and never evicted; a model instance is
// meant to serve a finite potential sweep. Instances are not safe for
// concurrent use.
type Model struct {
	temperature float64
	epsilonR    float64 // relative solvent permittivity
	epsilon     float64 // absolute solvent permittivity, F/m
	kT          float64 // thermal energy, J
	cBulk       float64 // bulk concentration, mol/L

	ionRadii            [2]float64 // [cation, anion], Angstroms
	ionVolumes          [2]float64 // m³
	ionPolarizabilities [2]float64 // hydration-adjusted, cubic Angstroms
	ionPermittivities   [2]float64 // Clausius-Mossotti, relative
	volfracBulk         float64

	stericModel string

	phiCache        map[float64]float64
	dielectricCache map[float64]float64
	thicknessCache  map[float64]float64

	diag   Diagnostics
	logger *slog.Logger
}

// New builds a capacitance model for the given system. The system descriptor
// has already validated the physical inputs. stericModel selects the
// equation of state: "cs" for Carnahan-Starling, anything else for Liu.
func New(sys *echem.System, stericModel string) *Model {
	m := &Model{
		temperature: sys.Temperature,
		epsilonR:    sys.DielectricConstant(),
		epsilon:     sys.Solvent.Permittivity(),
		kT:          echem.Boltzmann * sys.Temperature,
		cBulk:       sys.Concentration,
		stericModel: stericModel,

		phiCache:        make(map[float64]float64),
		dielectricCache: make(map[float64]float64),
		thicknessCache:  make(map[float64]float64),

		logger: slog.Default(),
	}

	m.ionRadii[0], m.ionRadii[1] = sys.IonRadii()
	m.ionVolumes[0] = sys.Cation.VolumeM3()
	m.ionVolumes[1] = sys.Anion.VolumeM3()
	m.ionPolarizabilities[0], m.ionPolarizabilities[1] = sys.IonPolarizabilities()

	m.volfracBulk = m.cBulk * (m.ionVolumes[0] + m.ionVolumes[1]) * echem.MolPerLiterToSI

	for i := range m.ionVolumes {
		m.ionPermittivities[i] = IonPermittivity(m.ionPolarizabilities[i], m.ionVolumes[i])
	}

	return m
}

// SetLogger replaces the logger used for fallback diagnostics.
func (m *Model) SetLogger(l *slog.Logger) {
	if l != nil {
		m.logger = l
	}
}

// BulkVolumeFraction returns the volume fraction occupied by ions in the bulk.
func (m *Model) BulkVolumeFraction() float64 { return m.volfracBulk }

// StericModel returns the active equation-of-state selector.
func (m *Model) StericModel() string { return m.stericModel }

// ThermalEnergy returns kT in Joules.
func (m *Model) ThermalEnergy() float64 { return m.kT }

// ionParameters selects the counterion for the given potential. A negative
// electrode attracts cations, so potential < 0 selects the cation with charge
// +e; potential >= 0 selects the anion with charge -e. Returns the signed
// charge in Coulombs, the ion volume in m³ and its relative permittivity.
func (m *Model) ionParameters(potential float64) (charge, volume, epsilonI float64) {
	idx := 1
	charge = -echem.ElementaryCharge
	if potential < 0 {
		idx = 0
		charge = echem.ElementaryCharge
	}
	return charge, m.ionVolumes[idx], m.ionPermittivities[idx]
}

// StericEnergy returns the steric free energy penalty at ion volume fraction
// phi, in Joules. With relativeToBulk the bulk reference value is subtracted.
// phi must stay strictly below 1; phi = 1 is a pole of both equations of
// state.
func (m *Model) StericEnergy(phi float64, relativeToBulk bool) float64 {
	e := m.stericTerm(phi)
	if relativeToBulk {
		e -= m.stericTerm(m.volfracBulk)
	}
	return e
}

func (m *Model) stericTerm(phi float64) float64 {
	if m.stericModel == StericCarnahanStarling {
		return m.carnahanStarling(phi)
	}
	return m.liu(phi)
}

// carnahanStarling is the Carnahan-Starling hard-sphere excess chemical
// potential, kT·φ(8 - 9φ + 3φ²)/(1-φ)³.
func (m *Model) carnahanStarling(phi float64) float64 {
	return m.kT * phi * (8 - 9*phi + 3*phi*phi) / math.Pow(1-phi, 3)
}

// liu is the Liu equation-of-state excess chemical potential.
func (m *Model) liu(phi float64) float64 {
	poly := phi * (phi*(phi*(13*(5-3*phi)*phi-146)+418) - 396)
	return m.kT * (-5*math.Log(1-phi)/13 - poly/52/math.Pow(1-phi, 3))
}

// IonPermittivity inverts the Clausius-Mossotti relation to obtain the
// relative permittivity of an ion from its polarizability (cubic Angstroms)
// and volume (m³). The relation has a pole when 4πα/3v equals one; callers
// own that edge case.
func IonPermittivity(polarizability, volumeM3 float64) float64 {
	vCubicAng := volumeM3 * 1e30
	k := 4 * math.Pi * polarizability / 3 / vCubicAng
	return (-1 - 2*k) / (k - 1)
}

// potentialKey quantizes a potential to 9 decimal places so that
// floating-point noise does not fragment the caches.
func potentialKey(potential float64) float64 {
	return math.Round(potential*1e9) / 1e9
}

// surfaceConcentration converts a surface volume fraction to a concentration
// in mol/L for the counterion at the given potential.
func (m *Model) surfaceConcentration(potential, volfrac float64) float64 {
	_, v, _ := m.ionParameters(potential)
	return volfrac / v / echem.MolPerLiterToSI
}
