package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store persists simulation runs under a base directory, one subdirectory
// per run holding metadata.json and trajectory.csv.
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
	ID          string    `json:"id"`
	Model       string    `json:"model"`
	Solver      string    `json:"solver"`
	Timestamp   time.Time `json:"timestamp"`
	Dt          float64   `json:"dt"`
	Duration    float64   `json:"duration"`
	Steps       int       `json:"steps"`
	EnergyDrift float64   `json:"energy_drift"`
}

// Trajectory is a recorded run: slot names, one sampled row per step, and
// the matching times.
type Trajectory struct {
	Names []string
	Times []float64
	Rows  [][]float64
}

func (tr *Trajectory) Append(t float64, row []float64) {
	tr.Times = append(tr.Times, t)
	tr.Rows = append(tr.Rows, append([]float64(nil), row...))
}

// Column returns the values of one named slot across the run, nil when the
// name is unknown.
func (tr *Trajectory) Column(name string) []float64 {
	col := -1
	for i, n := range tr.Names {
		if n == name {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}
	vals := make([]float64, len(tr.Rows))
	for i, row := range tr.Rows {
		vals[i] = row[col]
	}
	return vals
}

func (s *Store) Save(meta RunMetadata, tr *Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = len(tr.Rows)

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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, tr.Names...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, row := range tr.Rows {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.FormatFloat(tr.Times[i], 'g', -1, 64))
		for _, val := range row {
			rec = append(rec, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(rec); err != nil {
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

func (s *Store) LoadMeta(runID string) (*RunMetadata, error) {
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

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Trajectory{}, nil
	}

	tr := &Trajectory{Names: records[0][1:]}
	for _, rec := range records[1:] {
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad time value %q: %v", rec[0], err)
		}
		row := make([]float64, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("bad value %q: %v", field, err)
			}
			row[j] = v
		}
		tr.Times = append(tr.Times, t)
		tr.Rows = append(tr.Rows, row)
	}

	return tr, nil
}

// ExportJSON writes one run (metadata plus full trajectory) as a single
// JSON document.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.LoadMeta(runID)
	if err != nil {
		return err
	}
	tr, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	doc := struct {
		RunMetadata
		Names []string    `json:"names"`
		Times []float64   `json:"times"`
		Rows  [][]float64 `json:"rows"`
	}{*meta, tr.Names, tr.Times, tr.Rows}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
