package echem

import (
	"math"
	"testing"
)

func TestNewSystemValidation(t *testing.T) {
	na := IonDatabase["Na+"]
	cl := IonDatabase["Cl-"]
	water := SolventDatabase["water"]

	cases := []struct {
		name    string
		cation  Ion
		anion   Ion
		solvent Solvent
		conc    float64
		temp    float64
		nHydCat float64
		nHydAn  float64
		wantErr bool
	}{
		{"valid", na, cl, water, 1.0, 298.15, 0, 0, false},
		{"hydrated", na, cl, water, 0.5, 298.15, 4, 2, false},
		{"swapped ions", cl, na, water, 1.0, 298.15, 0, 0, true},
		{"zero concentration", na, cl, water, 0, 298.15, 0, 0, true},
		{"negative concentration", na, cl, water, -1, 298.15, 0, 0, true},
		{"zero temperature", na, cl, water, 1.0, 0, 0, 0, true},
		{"zero radius", Ion{Charge: 1}, cl, water, 1.0, 298.15, 0, 0, true},
		{"bad dielectric", na, cl, Solvent{DielectricConstant: 0}, 1.0, 298.15, 0, 0, true},
		{"negative hydration", na, cl, water, 1.0, 298.15, -1, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSystem(tc.cation, tc.anion, tc.solvent, tc.conc, tc.temp, tc.nHydCat, tc.nHydAn)
			if tc.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSystemHydratedPolarizabilities(t *testing.T) {
	na := IonDatabase["Na+"]
	f := IonDatabase["F-"]
	ethanol := SolventDatabase["ethanol"]

	// Hydration shells always use the water polarizability, even in a
	// non-aqueous solvent.
	sys, err := NewSystem(na, f, ethanol, 1.0, 298.15, 3, 1)
	if err != nil {
		t.Fatalf("system construction failed: %v", err)
	}

	wantCat := na.Polarizability + 3*WaterPolarizability
	wantAn := f.Polarizability + 1*WaterPolarizability

	gotCat, gotAn := sys.IonPolarizabilities()
	if math.Abs(gotCat-wantCat) > 1e-12 {
		t.Errorf("cation polarizability: expected %.4f, got %.4f", wantCat, gotCat)
	}
	if math.Abs(gotAn-wantAn) > 1e-12 {
		t.Errorf("anion polarizability: expected %.4f, got %.4f", wantAn, gotAn)
	}
}

func TestSystemAccessors(t *testing.T) {
	na := IonDatabase["Na+"]
	cl := IonDatabase["Cl-"]
	water := SolventDatabase["water"]

	sys, err := NewSystem(na, cl, water, 1.0, 298.15, 0, 0)
	if err != nil {
		t.Fatalf("system construction failed: %v", err)
	}

	rc, ra := sys.IonRadii()
	if rc != 1.02 || ra != 1.81 {
		t.Errorf("unexpected radii: %g, %g", rc, ra)
	}
	if sys.DielectricConstant() != 78.5 {
		t.Errorf("unexpected dielectric constant: %g", sys.DielectricConstant())
	}
}
