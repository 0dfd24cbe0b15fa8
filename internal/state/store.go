package state

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const stateFileName = "appstate.json"

// Store persists the AppState document as a single JSON file. A load
// failure falls back to a fresh default state; the in-memory value stays
// the source of truth for the session.
type Store struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

func NewStore(dataDir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{
		path:   filepath.Join(dataDir, stateFileName),
		logger: logger,
	}, nil
}

// Path is where the document lives on disk.
func (st *Store) Path() string { return st.path }

// Load reads the stored document. Missing or unreadable documents resolve
// to Default(todayKey) rather than an error.
func (st *Store) Load(todayKey string) AppState {
	st.mu.Lock()
	defer st.mu.Unlock()

	b, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			st.logger.Printf("state: load failed, starting fresh: %v", err)
		}
		return Default(todayKey)
	}

	var loaded AppState
	if err := json.Unmarshal(b, &loaded); err != nil {
		st.logger.Printf("state: corrupt state document, starting fresh: %v", err)
		return Default(todayKey)
	}
	return loaded
}

// Save writes the document atomically via a temp-file rename.
func (st *Store) Save(s AppState) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, st.path)
}
