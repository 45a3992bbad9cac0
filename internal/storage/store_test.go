package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/san-kum/stericap/internal/config"
	"github.com/san-kum/stericap/internal/sweep"
)

func testResult() *sweep.Result {
	return &sweep.Result{
		Points: []sweep.Point{
			{Potential: -0.5, Capacitance: 28.4, AnalyticalCapacitance: 27.9, ChargeDensity: -0.11,
				SurfaceVolumeFraction: 0.31, ReducedDielectric: 42.7, DebyeLength: 3.1e-10, StericThickness: 5.4e-10},
			{Potential: 0.5, Capacitance: 31.2, AnalyticalCapacitance: 30.8, ChargeDensity: 0.13,
				SurfaceVolumeFraction: 0.44, ReducedDielectric: 39.2, DebyeLength: 2.9e-10, StericThickness: 5.8e-10},
		},
		Metrics: map[string]float64{
			"max_capacitance": 31.2,
			"min_capacitance": 28.4,
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	result := testResult()

	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if meta.Cation != "Na+" || meta.Anion != "Cl-" {
		t.Errorf("unexpected electrolyte: %s/%s", meta.Cation, meta.Anion)
	}
	if meta.Metrics["max_capacitance"] != 31.2 {
		t.Errorf("unexpected metric: %g", meta.Metrics["max_capacitance"])
	}
}

func TestLoadCurveRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := testResult()
	runID, err := st.Save(config.DefaultConfig(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	points, err := st.LoadCurve(runID)
	if err != nil {
		t.Fatalf("load curve failed: %v", err)
	}
	if len(points) != len(result.Points) {
		t.Fatalf("expected %d points, got %d", len(result.Points), len(points))
	}

	for i, p := range points {
		want := result.Points[i]
		if relDiff(p.Potential, want.Potential) > 1e-9 ||
			relDiff(p.Capacitance, want.Capacitance) > 1e-9 ||
			relDiff(p.ChargeDensity, want.ChargeDensity) > 1e-9 ||
			relDiff(p.StericThickness, want.StericThickness) > 1e-9 {
			t.Errorf("point %d mismatch:\nsaved:  %+v\nloaded: %+v", i, want, p)
		}
	}
}

func relDiff(a, b float64) float64 {
	if b == 0 {
		return math.Abs(a)
	}
	return math.Abs(a-b) / math.Abs(b)
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save(config.DefaultConfig(), testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New("/nonexistent/stericap-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir must list empty, got error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing_run"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:     "test_run",
		Cation: "Na+", Anion: "Cl-", Solvent: "water",
		Concentration: 1.0, Temperature: 298.15, StericModel: "cs",
		Metrics: map[string]float64{"max_capacitance": 31.2},
	}
	points := testResult().Points

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, points); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.ID != "test_run" || len(data.Points) != 2 {
		t.Errorf("unexpected export contents: %+v", data)
	}
	if data.Points[1].Capacitance != 31.2 {
		t.Errorf("unexpected point payload: %+v", data.Points[1])
	}
}
