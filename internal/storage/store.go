package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/typewrite/internal/config"
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

type StageMetadata struct {
	Selector string        `json:"selector"`
	Config   config.Config `json:"config"`
	Targets  []string      `json:"targets"`
}

type RunMetadata struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Timestamp time.Time         `json:"timestamp"`
	Elapsed   time.Duration     `json:"elapsed"`
	Stages    []StageMetadata   `json:"stages"`
	Sources   map[string]string `json:"sources"`
	Frames    int               `json:"frames"`
	Passes    int               `json:"passes"`
	Failures  []string          `json:"failures,omitempty"`
	Result    string            `json:"result"`
}

var frameHeader = []string{"elapsed_ms", "stage", "target", "label", "cycle", "text", "cursor", "delay_ms"}

// Save writes metadata.json and frames.csv for a recorded run.
func (s *Store) Save(name string, stages []StageMetadata, result string, rec *Recorder) (string, error) {
	runID := fmt.Sprintf("%s_%d", sanitize(name), time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	frames := rec.Frames()
	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Elapsed:   rec.Elapsed(),
		Stages:    stages,
		Sources:   rec.Sources(),
		Frames:    len(frames),
		Passes:    rec.Passes(),
		Failures:  rec.Failures(),
		Result:    result,
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

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatInt(f.Elapsed.Milliseconds(), 10),
			strconv.Itoa(f.Stage),
			strconv.Itoa(f.Target),
			f.Label,
			strconv.Itoa(f.Cycle),
			f.Text,
			strconv.FormatBool(f.Cursor),
			strconv.FormatInt(f.Delay.Milliseconds(), 10),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every stored run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
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

func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read frames of %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []Frame{}, nil
	}

	frames := make([]Frame, 0, len(records)-1)
	for _, rec := range records[1:] {
		elapsed, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			continue
		}
		stage, _ := strconv.Atoi(rec[1])
		target, _ := strconv.Atoi(rec[2])
		cycle, _ := strconv.Atoi(rec[4])
		cursor, _ := strconv.ParseBool(rec[6])
		delay, _ := strconv.ParseInt(rec[7], 10, 64)
		frames = append(frames, Frame{
			Elapsed: time.Duration(elapsed) * time.Millisecond,
			Stage:   stage,
			Target:  target,
			Label:   rec[3],
			Cycle:   cycle,
			Text:    rec[5],
			Cursor:  cursor,
			Delay:   time.Duration(delay) * time.Millisecond,
		})
	}

	return frames, nil
}

func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "run"
	}
	return name
}
