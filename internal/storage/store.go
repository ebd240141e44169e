package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Harshavardhan3015/cranksim/internal/sim"
)

// Store persists run traces under a flat directory layout:
// <base>/<runID>/metadata.json plus trace.csv with one column per cylinder.
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
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	RPM       float64            `json:"rpm"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Cylinders int                `json:"cylinders"`
	Offsets   string             `json:"offsets"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(rpm, dt, duration float64, offsets string, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		RPM:       rpm,
		Dt:        dt,
		Duration:  duration,
		Cylinders: len(result.Displacements),
		Offsets:   offsets,
		Metrics:   result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Times) == 0 {
		return runID, nil
	}

	ncyl := len(result.Displacements)
	header := []string{"time", "crank_angle_deg"}
	for i := 0; i < ncyl; i++ {
		header = append(header, fmt.Sprintf("disp%d", i))
	}
	for i := 0; i < ncyl; i++ {
		header = append(header, fmt.Sprintf("stroke%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Angles[i], 'f', 6, 64),
		}
		for c := 0; c < ncyl; c++ {
			row = append(row, strconv.FormatFloat(result.Displacements[c][i], 'f', 6, 64))
		}
		for c := 0; c < ncyl; c++ {
			row = append(row, result.Strokes[c][i].String())
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

// Trace is the replayable portion of a saved run.
type Trace struct {
	Times         []float64
	Angles        []float64
	Displacements [][]float64
}

func (s *Store) LoadTrace(runID string) (*Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
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
		return &Trace{}, nil
	}

	// Columns: time, angle, disp0..dispN-1, stroke0..strokeN-1.
	ncyl := (len(records[0]) - 2) / 2
	trace := &Trace{
		Times:         make([]float64, 0, len(records)-1),
		Angles:        make([]float64, 0, len(records)-1),
		Displacements: make([][]float64, ncyl),
	}
	for c := 0; c < ncyl; c++ {
		trace.Displacements[c] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) < 2+ncyl {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		a, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		trace.Times = append(trace.Times, t)
		trace.Angles = append(trace.Angles, a)
		for c := 0; c < ncyl; c++ {
			v, err := strconv.ParseFloat(record[2+c], 64)
			if err != nil {
				v = 0
			}
			trace.Displacements[c] = append(trace.Displacements[c], v)
		}
	}

	return trace, nil
}
