package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const today = "2025-03-04"

func TestStore_LoadMissingFileReturnsDefault(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	s := st.Load(today)
	assert.Len(t, s.Tasks, 17)
	assert.Equal(t, today, s.LastRolloverDate)
	assert.Equal(t, DefaultGraceMinutes, s.Settings.GraceMinutes)
	assert.Empty(t, s.TaskTemplates)
	assert.Equal(t, pet.State{}, s.PetState)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	st, err := NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	s := Default(today)
	s.PetState = pet.State{XP: 38, StageIndex: 2}
	s.CurrentTaskID = s.Tasks[3].ID
	s.Tasks[0].SetStatus(task.StatusDone)
	s.Tasks[1].SetStatus(task.StatusSkipped)
	tpl, err := task.NewTemplate("Gym", "weights", 9, true, []int{1, 3, 5})
	require.NoError(t, err)
	s.TaskTemplates = append(s.TaskTemplates, tpl)

	require.NoError(t, st.Save(s))

	got := st.Load(today)
	assert.Equal(t, s, got)
}

func TestStore_CorruptFileFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	st, err := NewStore(dir, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "appstate.json"), []byte("{nope"), 0o644))

	s := st.Load(today)
	assert.Equal(t, Default(today), s)
}

func TestNormalize_Heals(t *testing.T) {
	s := AppState{
		PetState: pet.State{XP: 28, StageIndex: 0}, // stale stage
		Settings: Settings{GraceMinutes: 99},
		Tasks: []task.Task{
			{ID: "a", DayKey: today, IsDone: true, IsMissed: true},
		},
	}
	s.Normalize(pet.DefaultProgression())

	assert.Equal(t, 2, s.PetState.StageIndex)
	assert.Equal(t, MaxGraceMinutes, s.Settings.GraceMinutes)
	assert.False(t, s.Tasks[0].IsMissed)
	assert.NotNil(t, s.TaskTemplates)
	assert.Equal(t, DefaultPrivacyPolicyURL, s.Settings.PrivacyPolicyURL)
}

func TestClampGraceMinutes(t *testing.T) {
	assert.Equal(t, 0, ClampGraceMinutes(-1))
	assert.Equal(t, 30, ClampGraceMinutes(31))
	assert.Equal(t, 15, ClampGraceMinutes(15))
}

func TestTasksForDay(t *testing.T) {
	s := Default(today)
	s.Tasks = append(s.Tasks, task.Task{ID: "old", DayKey: "2025-03-03"})

	assert.Len(t, s.TasksForDay(today), 17)
	assert.Len(t, s.TasksForDay("2025-03-03"), 1)
	assert.Empty(t, s.TasksForDay("1999-01-01"))
}
