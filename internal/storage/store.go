package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/stericap/internal/config"
	"github.com/san-kum/stericap/internal/sweep"
)

// Store persists sweep runs as directories under baseDir, each holding a
// metadata.json and a curve.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Cation        string             `json:"cation"`
	Anion         string             `json:"anion"`
	Solvent       string             `json:"solvent"`
	Concentration float64            `json:"concentration"`
	Temperature   float64            `json:"temperature"`
	StericModel   string             `json:"steric_model"`
	SweepStart    float64            `json:"sweep_start"`
	SweepEnd      float64            `json:"sweep_end"`
	SweepSteps    int                `json:"sweep_steps"`
	Metrics       map[string]float64 `json:"metrics"`
}

var curveHeader = []string{
	"potential", "capacitance", "analytical_capacitance", "charge_density",
	"surface_volfrac", "reduced_dielectric", "debye_length", "steric_thickness",
}

// Save writes one sweep run and returns its generated ID.
func (s *Store) Save(cfg *config.Config, result *sweep.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", cfg.Cation, cfg.Anion, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     time.Now(),
		Cation:        cfg.Cation,
		Anion:         cfg.Anion,
		Solvent:       cfg.Solvent,
		Concentration: cfg.Concentration,
		Temperature:   cfg.Temperature,
		StericModel:   cfg.StericModel,
		SweepStart:    cfg.Sweep.Start,
		SweepEnd:      cfg.Sweep.End,
		SweepSteps:    cfg.Sweep.Steps,
		Metrics:       result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "curve.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(curveHeader); err != nil {
		return "", err
	}
	for _, p := range result.Points {
		if err := w.Write(formatPoint(p)); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatPoint(p sweep.Point) []string {
	vals := []float64{
		p.Potential, p.Capacitance, p.AnalyticalCapacitance, p.ChargeDensity,
		p.SurfaceVolumeFraction, p.ReducedDielectric, p.DebyeLength, p.StericThickness,
	}
	row := make([]string, len(vals))
	for i, v := range vals {
		row[i] = strconv.FormatFloat(v, 'e', 9, 64)
	}
	return row
}

// List returns metadata for every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

// Load returns the metadata for a single run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadCurve reads back the per-potential points of a run.
func (s *Store) LoadCurve(runID string) ([]sweep.Point, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "curve.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sweep.Point{}, nil
	}

	points := make([]sweep.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(curveHeader) {
			continue
		}
		vals := make([]float64, len(curveHeader))
		ok := true
		for i := range vals {
			v, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		points = append(points, sweep.Point{
			Potential:             vals[0],
			Capacitance:           vals[1],
			AnalyticalCapacitance: vals[2],
			ChargeDensity:         vals[3],
			SurfaceVolumeFraction: vals[4],
			ReducedDielectric:     vals[5],
			DebyeLength:           vals[6],
			StericThickness:       vals[7],
		})
	}

	return points, nil
}
