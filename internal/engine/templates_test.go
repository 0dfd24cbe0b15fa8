package engine

import (
	"testing"
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplate_SpawnsTodayInstance(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(9, 30))
	e, _ := testEngine(t, fc, nil)

	tpl, err := e.CreateTemplate("Water plants", "the ferns too", 18, false, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)

	s := e.State()
	require.Len(t, s.TaskTemplates, 1)
	spawned := s.FindTask("2025-03-04-" + tpl.ID)
	require.NotNil(t, spawned)
	assert.Equal(t, 18, spawned.DueHour)
	assert.Equal(t, tpl.ID, spawned.TemplateID)
}

func TestCreateTemplate_RecurringOffDaySpawnsNothingToday(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(9, 30))
	e, _ := testEngine(t, fc, nil)

	// Mondays only; today is Tuesday
	tpl, err := e.CreateTemplate("Gym", "", 7, true, []int{1})
	require.NoError(t, err)

	s := e.State()
	assert.Nil(t, s.FindTask("2025-03-04-"+tpl.ID))
	require.Len(t, s.TaskTemplates, 1)
}

func TestCreateTemplate_InvalidRejected(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(9, 30))
	e, _ := testEngine(t, fc, nil)

	_, err := e.CreateTemplate("", "", 9, false, nil)
	assert.Error(t, err)
	assert.Empty(t, e.State().TaskTemplates)
}

func TestDeleteTemplate_CascadesAcrossDaysAndStatuses(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(9, 30))
	e, _ := testEngine(t, fc, nil)

	tpl, err := e.CreateTemplate("Journal", "", task.AnytimeHour, false, nil)
	require.NoError(t, err)
	todayID := "2025-03-04-" + tpl.ID
	e.Complete(todayID)

	// roll into Wednesday so a second instance exists
	fc.Set(time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local))
	e.Tick()
	wedID := "2025-03-05-" + tpl.ID
	rolled := e.State()
	require.NotNil(t, rolled.FindTask(wedID))

	e.DeleteTemplate(tpl.ID)

	s := e.State()
	assert.Empty(t, s.TaskTemplates)
	assert.Nil(t, s.FindTask(todayID), "done instance from a past day must go too")
	assert.Nil(t, s.FindTask(wedID))
}

func TestDeleteTemplate_RepairsCurrentTask(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(9, 30))
	e, _ := testEngine(t, fc, func(s *state.AppState) {
		s.Tasks = []task.Task{}
		s.TaskTemplates = []task.Template{
			{ID: "only", Title: "Only", DueHour: 9},
			{ID: "other", Title: "Other", DueHour: 11},
		}
		s.Tasks = task.Expand(s.TaskTemplates, "2025-03-04")
	})

	require.Equal(t, "2025-03-04-only", e.State().CurrentTaskID)

	e.DeleteTemplate("only")

	s := e.State()
	assert.Nil(t, s.FindTask("2025-03-04-only"))
	assert.Equal(t, "2025-03-04-other", s.CurrentTaskID)
}

func TestDeleteTemplate_UnknownIsNoop(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(9, 30))
	e, _ := testEngine(t, fc, nil)

	before := e.State()
	e.DeleteTemplate("ghost")
	assert.Equal(t, before, e.State())
}
