package config

import "sort"

// Presets are named electrolyte setups covering the common study cases.
var Presets = map[string]*Config{
	"nacl_dilute": {
		Cation: "Na+", Anion: "Cl-", Solvent: "water",
		Concentration: 0.1, Temperature: 298.15, StericModel: "cs",
		Sweep: SweepConfig{Start: -1.0, End: 1.0, Steps: 81},
	},
	"nacl_concentrated": {
		Cation: "Na+", Anion: "Cl-", Solvent: "water",
		Concentration: 4.0, Temperature: 298.15, StericModel: "cs",
		Sweep: SweepConfig{Start: -1.0, End: 1.0, Steps: 81},
	},
	"kcl": {
		Cation: "K+", Anion: "Cl-", Solvent: "water",
		Concentration: 1.0, Temperature: 298.15, StericModel: "cs",
		Sweep: SweepConfig{Start: -1.0, End: 1.0, Steps: 81},
	},
	"naf_hydrated": {
		Cation: "Na+_hydrated", Anion: "F-_hydrated", Solvent: "water",
		Concentration: 1.0, Temperature: 298.15, StericModel: "cs",
		Sweep: SweepConfig{Start: -0.8, End: 0.8, Steps: 65},
	},
	"csi_polarizable": {
		Cation: "Cs+", Anion: "I-", Solvent: "water",
		Concentration: 1.0, Temperature: 298.15, StericModel: "liu",
		Sweep: SweepConfig{Start: -1.0, End: 1.0, Steps: 81},
	},
	"emim_tfsi": {
		Cation: "EMIM+", Anion: "TFSI-", Solvent: "ionic_liquid",
		Concentration: 3.2, Temperature: 298.15, StericModel: "cs",
		Sweep: SweepConfig{Start: -2.0, End: 2.0, Steps: 161},
	},
}

// GetPreset returns the named preset, or nil.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
