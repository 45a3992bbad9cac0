package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stericap/internal/echem"
)

const (
	DefaultConcentration = 1.0
	DefaultTemperature   = 298.15
	DefaultStericModel   = "cs"
	DefaultSweepStart    = -1.0
	DefaultSweepEnd      = 1.0
	DefaultSweepSteps    = 81
)

type Config struct {
	Cation           string      `yaml:"cation"`
	Anion            string      `yaml:"anion"`
	Solvent          string      `yaml:"solvent"`
	Concentration    float64     `yaml:"concentration"`
	Temperature      float64     `yaml:"temperature"`
	NHydrationCation float64     `yaml:"n_hydration_cation"`
	NHydrationAnion  float64     `yaml:"n_hydration_anion"`
	StericModel      string      `yaml:"steric_model"`
	Sweep            SweepConfig `yaml:"sweep"`
}

type SweepConfig struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
	Steps int     `yaml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Cation:        "Na+",
		Anion:         "Cl-",
		Solvent:       "water",
		Concentration: DefaultConcentration,
		Temperature:   DefaultTemperature,
		StericModel:   DefaultStericModel,
		Sweep: SweepConfig{
			Start: DefaultSweepStart,
			End:   DefaultSweepEnd,
			Steps: DefaultSweepSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildSystem resolves the ion and solvent names against the built-in
// databases and constructs the validated system descriptor.
func (c *Config) BuildSystem() (*echem.System, error) {
	cation, err := echem.LookupIon(c.Cation)
	if err != nil {
		return nil, err
	}
	anion, err := echem.LookupIon(c.Anion)
	if err != nil {
		return nil, err
	}
	solvent, err := echem.LookupSolvent(c.Solvent)
	if err != nil {
		return nil, err
	}
	return echem.NewSystem(cation, anion, solvent,
		c.Concentration, c.Temperature, c.NHydrationCation, c.NHydrationAnion)
}
