package engine

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Progress is the persisted per-day result plus the streak counter. It
// is the sole source of truth across process restarts.
type Progress struct {
	DayKey   string `json:"lastDayKey"`
	PuzzleID int    `json:"lastPuzzleId"`
	Status   string `json:"lastStatus"`
	Attempts []bool `json:"lastAttempts"`
	Streak   int    `json:"streak"`
}

// sanitized applies the forward-readability rules: unknown terminal
// status or a negative streak fall back to safe defaults rather than
// failing the load path.
func (p Progress) sanitized() Progress {
	if !isTerminal(p.Status) {
		p.Status = ""
		p.Attempts = nil
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	return p
}

// ProgressStore is the local key-value port the engine persists through.
// Load must tolerate missing or malformed state by returning the zero
// value instead of an error wherever recovery is possible.
type ProgressStore interface {
	Load() (Progress, error)
	Save(Progress) error
}

// FileStore persists progress as a JSON file on the local disk.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the progress file. A missing file means no progress yet. A
// corrupt file is discarded and treated the same way, never propagated.
func (fs *FileStore) Load() (Progress, error) {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Progress{}, nil
		}
		return Progress{}, err
	}

	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("[WARN] Progress file %s is corrupted, starting fresh: %v", fs.Path, err)
		return Progress{}, nil
	}
	return p.sanitized(), nil
}

// Save writes the progress file, creating parent directories as needed.
func (fs *FileStore) Save(p Progress) error {
	dir := filepath.Dir(fs.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fs.Path, data, 0644)
}

// MemoryStore is an in-memory ProgressStore used in tests.
type MemoryStore struct {
	mu      sync.Mutex
	current Progress
	set     bool

	LoadErr error // returned by Load when non-nil
	SaveErr error // returned by Save when non-nil
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Seed installs an initial progress value.
func (ms *MemoryStore) Seed(p Progress) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.current = p
	ms.set = true
}

func (ms *MemoryStore) Load() (Progress, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.LoadErr != nil {
		return Progress{}, ms.LoadErr
	}
	if !ms.set {
		return Progress{}, nil
	}
	p := ms.current
	p.Attempts = slices.Clone(p.Attempts)
	return p.sanitized(), nil
}

func (ms *MemoryStore) Save(p Progress) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.SaveErr != nil {
		return ms.SaveErr
	}
	p.Attempts = slices.Clone(p.Attempts)
	ms.current = p
	ms.set = true
	return nil
}
