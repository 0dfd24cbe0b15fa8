package engine

import (
	"testing"
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollover_MarksUnresolvedMissedAndPenalizesOnce(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, func(s *state.AppState) {
		s.PetState = pet.State{XP: 100, StageIndex: 2}
		s.Tasks = []task.Task{
			{ID: "t1", DueHour: 8, DayKey: "2025-03-04"},
			{ID: "t2", DueHour: 12, DayKey: "2025-03-04"},
			{ID: "t3", DueHour: 18, DayKey: "2025-03-04"},
		}
	})

	e.Complete("t1")
	afterComplete := e.State().PetState.XP // 110

	fc.Set(time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local))
	e.Tick()

	s := e.State()
	assert.Equal(t, "2025-03-05", s.LastRolloverDate)
	assert.Equal(t, task.StatusDone, s.FindTask("t1").Status())
	assert.Equal(t, task.StatusMissed, s.FindTask("t2").Status())
	assert.Equal(t, task.StatusMissed, s.FindTask("t3").Status())

	// one batch penalty for 2 tasks at the pre-rollover stage rate
	// (level 3, multiplier 1+4/29): round(10 * 1.13793 * 2) = 23
	assert.Equal(t, afterComplete-23, s.PetState.XP)

	// no templates: the built-in day plan fills the new day
	assert.Len(t, s.TasksForDay("2025-03-05"), 17)
}

func TestRollover_SkippedTasksAreNotPenalized(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, func(s *state.AppState) {
		s.Tasks = []task.Task{
			{ID: "t1", DueHour: 8, DayKey: "2025-03-04"},
			{ID: "t2", DueHour: 12, DayKey: "2025-03-04"},
		}
	})

	e.Skip("t1")
	e.Skip("t2")

	fc.Set(time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local))
	e.Tick()

	s := e.State()
	assert.Equal(t, 0, s.PetState.XP)
	assert.Equal(t, task.StatusSkipped, s.FindTask("t1").Status())
	assert.Equal(t, task.StatusSkipped, s.FindTask("t2").Status())
}

func TestRollover_DeferredInsideMidnightGraceWindow(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, nil)

	// 00:10 the next day with grace 15: still the previous day's window
	fc.Set(time.Date(2025, time.March, 5, 0, 10, 0, 0, time.Local))
	e.Tick()
	assert.Equal(t, "2025-03-04", e.State().LastRolloverDate)

	// 00:20 is past the grace window
	fc.Set(time.Date(2025, time.March, 5, 0, 20, 0, 0, time.Local))
	e.Tick()
	assert.Equal(t, "2025-03-05", e.State().LastRolloverDate)
}

func TestRollover_IdempotentAgainstDoubleInvocation(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, nil)

	fc.Set(time.Date(2025, time.March, 5, 9, 0, 0, 0, time.Local))
	e.Tick()
	xpAfterFirst := e.State().PetState.XP
	tasksAfterFirst := len(e.State().Tasks)

	// the trigger condition makes the second invocation a no-op
	assert.False(t, e.shouldRolloverLocked(fc.Now()))
	e.Tick()

	assert.Equal(t, xpAfterFirst, e.State().PetState.XP)
	assert.Equal(t, tasksAfterFirst, len(e.State().Tasks))
}

func TestRollover_ExpandsTemplatesForNewDay(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, func(s *state.AppState) {
		s.Tasks = []task.Task{}
		s.TaskTemplates = []task.Template{
			{ID: "gym", Title: "Gym", DueHour: 7, IsRecurring: true, RecurringDays: []int{3}}, // Wednesdays
			{ID: "read", Title: "Read", DueHour: task.AnytimeHour, IsAnytime: true},
		}
	})

	// Tuesday -> Wednesday
	fc.Set(time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local))
	e.Tick()

	s := e.State()
	wed := s.TasksForDay("2025-03-05")
	require.Len(t, wed, 2)
	assert.Equal(t, "2025-03-05-gym", wed[0].ID)
	assert.Equal(t, "2025-03-05-read", wed[1].ID)
	// current points at the first pending time-specific task
	assert.Equal(t, "2025-03-05-gym", s.CurrentTaskID)

	// Wednesday -> Thursday: the recurring template sits out
	fc.Set(time.Date(2025, time.March, 6, 8, 0, 0, 0, time.Local))
	e.Tick()

	thu := e.State().TasksForDay("2025-03-06")
	require.Len(t, thu, 1)
	assert.Equal(t, "2025-03-06-read", thu[0].ID)
}

func TestRollover_OffDayTemplatesYieldEmptyDayNotDefaultPlan(t *testing.T) {
	fc := clock.NewFakeClock(time.Date(2025, time.March, 3, 20, 0, 0, 0, time.Local)) // Monday
	e, _ := testEngine(t, fc, func(s *state.AppState) {
		s.Tasks = []task.Task{}
		s.TaskTemplates = []task.Template{
			{ID: "gym", Title: "Gym", DueHour: 7, IsRecurring: true, RecurringDays: []int{1}}, // Mondays
		}
	})

	// Monday -> Tuesday: the only template sits out, so nothing spawns and
	// the hourly filler must not sneak in
	fc.Set(tuesdayAt(8, 0))
	e.Tick()

	s := e.State()
	assert.Equal(t, "2025-03-04", s.LastRolloverDate)
	assert.Empty(t, s.TasksForDay("2025-03-04"))
	assert.Equal(t, "", s.CurrentTaskID)

	// and an empty day costs nothing at the following rollover
	fc.Set(time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local))
	e.Tick()
	assert.Equal(t, 0, e.State().PetState.XP)
}

func TestRollover_HistoricalTasksAreRetained(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, nil)

	fc.Set(time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local))
	e.Tick()

	s := e.State()
	// yesterday's tasks live on alongside the new day's
	assert.Len(t, s.TasksForDay("2025-03-04"), 17)
	assert.Len(t, s.TasksForDay("2025-03-05"), 17)
}

func TestRollover_RunsBeforeUserActionAfterMidnight(t *testing.T) {
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e, _ := testEngine(t, fc, nil)

	// completing a task the next morning first rolls the day over, so the
	// action lands on the new day's task list
	fc.Set(time.Date(2025, time.March, 5, 9, 30, 0, 0, time.Local))
	require.NoError(t, e.Action("complete"))

	s := e.State()
	assert.Equal(t, "2025-03-05", s.LastRolloverDate)
	assert.Equal(t, task.StatusDone, s.FindTask("2025-03-05-9").Status())
}

func TestRollover_AtLoadTime(t *testing.T) {
	store, err := state.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	// persist Tuesday's state, then reopen the app on Wednesday
	fc := clock.NewFakeClock(tuesdayAt(20, 0))
	e1, err := New(Options{Store: store, Clock: fc, Progression: testProgression()})
	require.NoError(t, err)
	e1.Complete("2025-03-04-9")

	fc.Set(time.Date(2025, time.March, 5, 10, 30, 0, 0, time.Local))
	e2, err := New(Options{Store: store, Clock: fc, Progression: testProgression()})
	require.NoError(t, err)

	s := e2.State()
	assert.Equal(t, "2025-03-05", s.LastRolloverDate)
	// nearest-task selection after rollover: the 10 o'clock task at 10:30
	assert.Equal(t, "2025-03-05-10", s.CurrentTaskID)
	assert.Equal(t, task.StatusDone, s.FindTask("2025-03-04-9").Status())
	assert.Equal(t, task.StatusMissed, s.FindTask("2025-03-04-10").Status())
}
