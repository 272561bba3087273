// Package store keeps recorded traces on disk, one directory per run with a
// metadata.json and a samples.csv.
package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/colorfield/internal/palette"
	"github.com/san-kum/colorfield/internal/trace"
)

var ErrRunNotFound = errors.New("store: run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Source    string             `json:"source"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	From      time.Time          `json:"from"`
	Span      time.Duration      `json:"span"`
	Step      time.Duration      `json:"step"`
	Samples   int                `json:"samples"`
	Events    []trace.Event      `json:"events,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run and returns its id, "<source>_<unix>" with a numeric
// suffix when that directory already exists.
func (s *Store) Save(meta RunMetadata, result *trace.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := s.now()
	runID := fmt.Sprintf("%s_%d", meta.Source, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for n := 2; exists(runDir); n++ {
		runID = fmt.Sprintf("%s_%d_%d", meta.Source, now.Unix(), n)
		runDir = filepath.Join(s.baseDir, runID)
	}
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Samples = len(result.Samples)
	meta.Metrics = result.Metrics

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns all readable runs, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads a run's samples back. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]trace.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
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
		return []trace.Sample{}, nil
	}

	samples := make([]trace.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 5 {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, record[0])
		if err != nil {
			continue
		}
		c, ok := parseChannels(record[1:4])
		if !ok {
			continue
		}
		samples = append(samples, trace.Sample{Time: t, Color: c, Label: record[4]})
	}
	return samples, nil
}

// Path returns the directory of a run.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []trace.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := WriteCSV(w, samples); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes samples with a header row and flushes w.
func WriteCSV(w *csv.Writer, samples []trace.Sample) error {
	if err := w.Write([]string{"time", "r", "g", "b", "label", "hex"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			s.Time.Format(time.RFC3339Nano),
			strconv.Itoa(int(s.Color.R)),
			strconv.Itoa(int(s.Color.G)),
			strconv.Itoa(int(s.Color.B)),
			s.Label,
			s.Color.Hex(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func parseChannels(fields []string) (palette.Color, bool) {
	var ch [3]uint8
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return palette.Color{}, false
		}
		ch[i] = uint8(v)
	}
	return palette.Color{R: ch[0], G: ch[1], B: ch[2]}, true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
