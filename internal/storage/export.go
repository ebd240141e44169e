package storage

import (
	"encoding/json"
	"io"

	"github.com/Harshavardhan3015/cranksim/internal/sim"
)

type ExportData struct {
	ID            string             `json:"id"`
	RPM           float64            `json:"rpm"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	Offsets       string             `json:"offsets"`
	Steps         int                `json:"steps"`
	Times         []float64          `json:"times"`
	Angles        []float64          `json:"crank_angles_deg"`
	Displacements [][]float64        `json:"displacements"`
	Metrics       map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run as a single indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	data := ExportData{
		ID:            meta.ID,
		RPM:           meta.RPM,
		Dt:            meta.Dt,
		Duration:      meta.Duration,
		Offsets:       meta.Offsets,
		Steps:         len(result.Times),
		Times:         result.Times,
		Angles:        result.Angles,
		Displacements: result.Displacements,
		Metrics:       meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportTraceJSON is the variant fed from a loaded trace instead of a live
// result.
func ExportTraceJSON(w io.Writer, meta *RunMetadata, trace *Trace) error {
	data := ExportData{
		ID:            meta.ID,
		RPM:           meta.RPM,
		Dt:            meta.Dt,
		Duration:      meta.Duration,
		Offsets:       meta.Offsets,
		Steps:         len(trace.Times),
		Times:         trace.Times,
		Angles:        trace.Angles,
		Displacements: trace.Displacements,
		Metrics:       meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
