package widget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSyncer_SyncAndLoad(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileSyncer(dir, nil)
	require.NoError(t, err)

	snap := Snapshot{
		TodayTasks:       []task.Task{{ID: "2025-03-04-9", Title: "Standup", DueHour: 9, DayKey: "2025-03-04"}},
		CurrentIndex:     0,
		CurrentTaskID:    "2025-03-04-9",
		PetState:         pet.State{XP: 10, StageIndex: 1},
		Stage:            pet.Stage{Index: 1, Name: "Chicken"},
		ProgressPct:      0,
		GraceMinutes:     15,
		LastRolloverDate: "2025-03-04",
	}
	require.NoError(t, fs.Sync(snap))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, snap.CurrentTaskID, got.CurrentTaskID)
	assert.Equal(t, snap.PetState, got.PetState)
	assert.NotZero(t, got.LastUpdated)
}

func TestFileSyncer_RequestReloadTouchesMarker(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileSyncer(dir, nil)
	require.NoError(t, err)

	require.NoError(t, fs.RequestReload())
	b, err := os.ReadFile(filepath.Join(dir, "widget_reload"))
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
