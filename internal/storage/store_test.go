package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/Harshavardhan3015/cranksim/internal/engine"
	"github.com/Harshavardhan3015/cranksim/internal/sim"
)

func sampleResult(t *testing.T) *sim.Result {
	t.Helper()
	e, err := engine.New(engine.DefaultGeometry(), engine.InlineFour(), 1200)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	result, err := sim.New(e).Run(context.Background(), sim.Config{Dt: 0.01, Duration: 0.5})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return result
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	result := sampleResult(t)
	runID, err := st.Save(1200, 0.01, 0.5, "firing", result)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.RPM != 1200 || meta.Cylinders != 4 || meta.Offsets != "firing" {
		t.Errorf("metadata mismatch: %+v", meta)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("list returned %+v", runs)
	}
}

func TestLoadTraceRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	result := sampleResult(t)
	runID, err := st.Save(1200, 0.01, 0.5, "firing", result)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace: %v", err)
	}

	if len(trace.Times) != len(result.Times) {
		t.Fatalf("trace has %d samples, result had %d", len(trace.Times), len(result.Times))
	}
	if len(trace.Displacements) != 4 {
		t.Fatalf("trace has %d cylinder series", len(trace.Displacements))
	}
	for i := range result.Times {
		if math.Abs(trace.Angles[i]-result.Angles[i]) > 1e-5 {
			t.Fatalf("angle %d diverged: %g vs %g", i, trace.Angles[i], result.Angles[i])
		}
		for c := 0; c < 4; c++ {
			if math.Abs(trace.Displacements[c][i]-result.Displacements[c][i]) > 1e-5 {
				t.Fatalf("displacement[%d][%d] diverged", c, i)
			}
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/nonexistent")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	result := sampleResult(t)
	meta := &RunMetadata{ID: "run_1", RPM: 1200, Dt: 0.01, Duration: 0.5, Offsets: "firing", Metrics: result.Metrics}

	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, result); err != nil {
		t.Fatalf("export: %v", err)
	}

	var decoded ExportData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ID != "run_1" || decoded.Steps != len(result.Times) {
		t.Errorf("export mismatch: %+v", decoded)
	}
	if len(decoded.Displacements) != 4 {
		t.Errorf("expected 4 cylinder series, got %d", len(decoded.Displacements))
	}
}
