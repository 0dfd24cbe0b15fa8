// Package widget is the home-screen-widget collaborator. The core hands it
// a renderable snapshot after every committed mutation and asks for a
// reload; both calls are best-effort and never block a user action.
package widget

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

// Snapshot is the shared document the widget renders from.
type Snapshot struct {
	TodayTasks       []task.Task `json:"todayTasks"`
	CurrentIndex     int         `json:"currentIndex"`
	CurrentTaskID    string      `json:"currentTaskId"`
	PetState         pet.State   `json:"petState"`
	Stage            pet.Stage   `json:"stage"`
	ProgressPct      float64     `json:"progressPct"`
	GraceMinutes     int         `json:"graceMinutes"`
	LastRolloverDate string      `json:"lastRolloverDate"`
	LastUpdated      int64       `json:"lastUpdated"`
}

// Syncer receives post-update snapshots and reload requests.
type Syncer interface {
	Sync(Snapshot) error
	RequestReload() error
}

const (
	snapshotFileName = "widget_state.json"
	reloadFileName   = "widget_reload"
)

// FileSyncer writes the snapshot to a shared JSON file and signals reload
// by touching a marker file, the stand-in for a native reload IPC.
type FileSyncer struct {
	dir    string
	logger *log.Logger
}

func NewFileSyncer(dataDir string, logger *log.Logger) (*FileSyncer, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileSyncer{dir: dataDir, logger: logger}, nil
}

func (fs *FileSyncer) Sync(snap Snapshot) error {
	if snap.LastUpdated == 0 {
		snap.LastUpdated = time.Now().UnixMilli()
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(fs.dir, snapshotFileName), b, 0o644)
}

func (fs *FileSyncer) RequestReload() error {
	stamp := []byte(time.Now().UTC().Format(time.RFC3339Nano) + "\n")
	return os.WriteFile(filepath.Join(fs.dir, reloadFileName), stamp, 0o644)
}

// Load reads back the last written snapshot; used by tests and ops drills.
func (fs *FileSyncer) Load() (Snapshot, error) {
	var snap Snapshot
	b, err := os.ReadFile(filepath.Join(fs.dir, snapshotFileName))
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(b, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}

// NopSyncer drops everything; handy default for tests.
type NopSyncer struct{}

func (NopSyncer) Sync(Snapshot) error  { return nil }
func (NopSyncer) RequestReload() error { return nil }
