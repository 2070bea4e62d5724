package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/stringverse/internal/sim"
)

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
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Coupling  float64            `json:"coupling"`
	Mass      float64            `json:"mass,omitempty"`
	Size      int                `json:"size,omitempty"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

type RunParams struct {
	Model    string
	Seed     int64
	Dt       float64
	Duration float64
	Coupling float64
	Mass     float64
	Size     int
}

// Save writes one run directory: metadata.json, the time/energy series
// as series.csv, and the final snapshot as snapshot.json.
func (s *Store) Save(params RunParams, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", params.Model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Model:     params.Model,
		Timestamp: time.Now(),
		Seed:      params.Seed,
		Dt:        params.Dt,
		Duration:  params.Duration,
		Coupling:  params.Coupling,
		Mass:      params.Mass,
		Size:      params.Size,
		Steps:     result.Steps,
		Metrics:   result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "series.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"time", "energy"}); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Energies[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	if result.Final != nil {
		snapPath := filepath.Join(runDir, "snapshot.json")
		snapFile, err := os.Create(snapPath)
		if err != nil {
			return "", err
		}
		defer snapFile.Close()

		if err := json.NewEncoder(snapFile).Encode(result.Final); err != nil {
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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
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
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) ([]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "series.csv")
	file, err := os.Open(csvPath)
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
		return []float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	energies := make([]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		tv, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		ev, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, tv)
		energies = append(energies, ev)
	}

	return times, energies, nil
}

func (s *Store) LoadSnapshot(runID string) ([]float64, error) {
	snapPath := filepath.Join(s.baseDir, runID, "snapshot.json")
	data, err := os.ReadFile(snapPath)
	if err != nil {
		return nil, err
	}

	var snap []float64
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
