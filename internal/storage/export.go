package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/stericap/internal/sweep"
)

type ExportData struct {
	ID            string             `json:"id"`
	Cation        string             `json:"cation"`
	Anion         string             `json:"anion"`
	Solvent       string             `json:"solvent"`
	Concentration float64            `json:"concentration"`
	Temperature   float64            `json:"temperature"`
	StericModel   string             `json:"steric_model"`
	Points        []sweep.Point      `json:"points"`
	Metrics       map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, points []sweep.Point) error {
	data := ExportData{
		ID:            meta.ID,
		Cation:        meta.Cation,
		Anion:         meta.Anion,
		Solvent:       meta.Solvent,
		Concentration: meta.Concentration,
		Temperature:   meta.Temperature,
		StericModel:   meta.StericModel,
		Points:        points,
		Metrics:       meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, meta *RunMetadata, points []sweep.Point) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, points)
}
