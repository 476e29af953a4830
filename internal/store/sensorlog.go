package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"wastewatch-backend/internal/models"

	"github.com/google/uuid"
)

// maxEntries caps the on-disk sensor log. After every append the log is
// trimmed to the newest entries by timestamp.
const maxEntries = 100

// SensorLog persists raw sensor submissions as a JSON array on disk. It is
// the only state that survives a restart.
type SensorLog struct {
	mu   sync.Mutex
	path string
}

// NewSensorLog creates a store backed by the given file path. The file is
// created lazily on first append.
func NewSensorLog(path string) *SensorLog {
	return &SensorLog{path: path}
}

// Append inserts one entry, assigns it an id and timestamp if missing,
// prunes the log to the 100 most recent entries, and writes the file back.
// The stored entry is returned.
func (s *SensorLog) Append(entry models.SensorLogEntry) (models.SensorLogEntry, error) {
	if entry.ID == "" {
		entry.ID = "log-" + uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return models.SensorLogEntry{}, err
	}

	entries = append(entries, entry)
	sortNewestFirst(entries)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	if err := s.write(entries); err != nil {
		return models.SensorLogEntry{}, err
	}
	return entry, nil
}

// All returns every retained entry, newest first.
func (s *SensorLog) All() ([]models.SensorLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(entries)
	return entries, nil
}

// Latest returns up to n entries, newest first.
func (s *SensorLog) Latest(n int) ([]models.SensorLogEntry, error) {
	entries, err := s.All()
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// read loads the log file. A missing file is an empty log, not an error.
func (s *SensorLog) read() ([]models.SensorLogEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading sensor log: %w", err)
	}

	var entries []models.SensorLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing sensor log: %w", err)
	}
	return entries, nil
}

func (s *SensorLog) write(entries []models.SensorLogEntry) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating sensor log directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding sensor log: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing sensor log: %w", err)
	}
	return nil
}

func sortNewestFirst(entries []models.SensorLogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
}
