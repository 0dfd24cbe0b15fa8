package engine

import (
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

// RolloverResult summarizes one end-of-day transition.
type RolloverResult struct {
	Day         string `json:"day"`
	MissedCount int    `json:"missedCount"`
	Spawned     int    `json:"spawned"`
}

// shouldRolloverLocked is the trigger condition. Already rolled today
// means no; inside the midnight grace window the previous day is still
// closing, so rollover is deferred. The lastRolloverDate postcondition is
// what makes double invocation a no-op.
func (e *Engine) shouldRolloverLocked(now time.Time) bool {
	if e.st.LastRolloverDate == clock.DayKey(now) {
		return false
	}
	if now.Hour() == 0 && now.Minute() < e.st.Settings.GraceMinutes {
		return false
	}
	return true
}

// performRolloverLocked closes out the previous day: unresolved tasks go
// to missed, one batch penalty lands at the pre-rollover stage rate, the
// new day's tasks are expanded, and the current pointer moves to the first
// pending task of the new day.
func (e *Engine) performRolloverLocked(now time.Time) RolloverResult {
	today := clock.DayKey(now)
	prevDay := e.st.LastRolloverDate

	missed := 0
	for i := range e.st.Tasks {
		t := &e.st.Tasks[i]
		if t.DayKey == prevDay && !t.Resolved() {
			t.SetStatus(task.StatusMissed)
			missed++
		}
	}
	if missed > 0 {
		e.st.PetState = e.prog.ApplyMiss(e.st.PetState, missed)
	}

	newTasks := task.Expand(e.st.TaskTemplates, today)
	if len(e.st.TaskTemplates) == 0 {
		// first-run continuity only; a template set that happens to sit
		// out today still gets an empty day
		newTasks = task.DefaultDayPlan(today)
	}
	e.st.Tasks = append(e.st.Tasks, newTasks...)

	e.st.CurrentTaskID = ""
	for _, t := range newTasks {
		if t.Status() == task.StatusPending {
			e.st.CurrentTaskID = t.ID
			break
		}
	}
	e.st.LastRolloverDate = today

	res := RolloverResult{Day: today, MissedCount: missed, Spawned: len(newTasks)}
	e.logger.Printf("engine: rollover %s -> %s, %d missed, %d spawned", prevDay, today, missed, len(newTasks))
	return res
}
