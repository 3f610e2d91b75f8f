package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	metadataFile = "metadata.json"
	matrixFile   = "matrix.csv"
)

// ErrInvalidName indicates a robot name or run id that is not a single
// path element.
var ErrInvalidName = errors.New("storage: invalid name")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one saved build. Joints are stored as the
// expression text they were configured with.
type RunMetadata struct {
	ID        string             `json:"id"`
	Robot     string             `json:"robot"`
	Mode      string             `json:"mode"`
	AngleUnit string             `json:"angle_unit"`
	Timestamp time.Time          `json:"timestamp"`
	Joints    [][4]string        `json:"joints"`
	Bindings  map[string]float64 `json:"bindings,omitempty"`
	Symbols   []string           `json:"symbols,omitempty"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
}

// Save writes meta and the 4x4 cells under a new run id and returns it.
func (s *Store) Save(meta RunMetadata, cells [4][4]string) (string, error) {
	robot := meta.Robot
	if robot == "" {
		robot = "robot"
	}
	if err := checkName(robot); err != nil {
		return "", err
	}
	runID := fmt.Sprintf("%s_%s", robot, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, matrixFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	for _, row := range cells {
		if err := w.Write(row[:]); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns saved runs, newest first.
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

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if err := checkName(runID); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadMatrix(runID string) ([4][4]string, error) {
	var cells [4][4]string
	if err := checkName(runID); err != nil {
		return cells, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, matrixFile))
	if err != nil {
		return cells, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return cells, err
	}
	if len(records) != 4 {
		return cells, fmt.Errorf("%s: expected 4 rows, got %d", runID, len(records))
	}

	for i, record := range records {
		copy(cells[i][:], record)
	}
	return cells, nil
}

type exportData struct {
	RunMetadata
	Matrix [4][4]string `json:"matrix"`
}

// ExportJSON writes the run's metadata and matrix as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	cells, err := s.LoadMatrix(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{RunMetadata: *meta, Matrix: cells})
}

// checkName rejects anything that would leave the data directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
