package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/epiforge/episim/internal/seird"
	"github.com/epiforge/episim/internal/sim"
)

// Store persists runs as one directory each: metadata.json plus a
// trajectory.csv of flat per-day compartment counts.
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
	Stepper   string             `json:"stepper"`
	Days      int                `json:"days"`
	Dt        float64            `json:"dt"`
	Params    seird.Params       `json:"params"`
	Steps     int                `json:"steps_taken"`
	Rejected  int                `json:"rejected_steps"`
	MaxError  float64            `json:"max_error"`
	Metrics   map[string]float64 `json:"metrics"`
}

var header = []string{"day", "susceptible", "exposed", "infectious", "recovered", "deceased"}

func (s *Store) Save(stepper string, cfg sim.RunConfig, params seird.Params, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", stepper, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Stepper:   stepper,
		Days:      cfg.Days,
		Dt:        cfg.Dt,
		Params:    params,
		Steps:     result.Stats.StepsTaken,
		Rejected:  result.Stats.RejectedSteps,
		MaxError:  result.Stats.MaxError,
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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, y := range result.States {
		row := make([]string, 0, 1+seird.Compartments)
		row = append(row, strconv.FormatFloat(result.Times[i], 'f', 2, 64))
		for _, v := range y {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
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

// LoadTrajectory reads back the per-day states written by Save.
func (s *Store) LoadTrajectory(runID string) ([]seird.State, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []seird.State{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([]seird.State, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != 1+seird.Compartments {
			return nil, nil, fmt.Errorf("storage: %w: row has %d fields", seird.ErrInvalidDimension, len(record))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, err
		}

		var y seird.State
		for j := 0; j < seird.Compartments; j++ {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				return nil, nil, err
			}
			y[j] = v
		}

		times = append(times, t)
		states = append(states, y)
	}

	return states, times, nil
}
