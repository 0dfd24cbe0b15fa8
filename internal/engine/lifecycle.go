package engine

import (
	"strings"
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/state"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

// Complete marks a task done, rewarding XP. A missed task being completed
// first has its penalty reversed, then earns the reward.
func (e *Engine) Complete(taskID string) { e.setStatus(taskID, task.StatusDone) }

// Skip marks a task skipped. Skipping carries no XP of its own, but
// leaving done or missed reverses what that status earned or cost.
func (e *Engine) Skip(taskID string) { e.setStatus(taskID, task.StatusSkipped) }

// Miss marks a task missed and charges the level-scaled penalty.
func (e *Engine) Miss(taskID string) { e.setStatus(taskID, task.StatusMissed) }

// Reopen returns a task to pending, reversing whatever its current status
// previously applied.
func (e *Engine) Reopen(taskID string) { e.setStatus(taskID, task.StatusPending) }

func (e *Engine) setStatus(taskID string, target task.Status) {
	e.mutate(func(time.Time) bool {
		t := e.st.FindTask(taskID)
		if t == nil {
			e.logger.Printf("engine: %s: task %q not found", target, taskID)
			return false
		}
		if t.Status() == target {
			return false
		}
		e.st.PetState = e.prog.Transition(e.st.PetState, t.Status(), target)
		t.SetStatus(target)
		return true
	})
}

// SelectTask points the current-task cursor at a task in today's list.
func (e *Engine) SelectTask(taskID string) {
	e.mutate(func(now time.Time) bool {
		t := e.st.FindTask(taskID)
		if t == nil || t.DayKey != clock.DayKey(now) {
			e.logger.Printf("engine: select: task %q not in today's list", taskID)
			return false
		}
		e.st.CurrentTaskID = taskID
		return true
	})
}

// NextTask advances the cursor cyclically through today's tasks.
func (e *Engine) NextTask() { e.step(1) }

// PrevTask retreats the cursor cyclically through today's tasks.
func (e *Engine) PrevTask() { e.step(-1) }

func (e *Engine) step(delta int) {
	e.mutate(func(now time.Time) bool {
		todays := e.st.TasksForDay(clock.DayKey(now))
		if len(todays) == 0 {
			return false
		}
		idx := 0
		for i, t := range todays {
			if t.ID == e.st.CurrentTaskID {
				idx = i
				break
			}
		}
		idx = (idx + delta + len(todays)) % len(todays)
		e.st.CurrentTaskID = todays[idx].ID
		return true
	})
}

// EditTitle rewrites a task's title; no XP effect.
func (e *Engine) EditTitle(taskID, title string) {
	e.mutate(func(time.Time) bool {
		t := e.st.FindTask(taskID)
		if t == nil {
			e.logger.Printf("engine: edit title: task %q not found", taskID)
			return false
		}
		t.Title = title
		return true
	})
}

// EditDescription rewrites a task's description; no XP effect.
func (e *Engine) EditDescription(taskID, description string) {
	e.mutate(func(time.Time) bool {
		t := e.st.FindTask(taskID)
		if t == nil {
			e.logger.Printf("engine: edit description: task %q not found", taskID)
			return false
		}
		t.Description = description
		return true
	})
}

// Action is the deep-link surface: five named operations on the current
// task, no arguments.
func (e *Engine) Action(name string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "complete":
		e.currentStatus(task.StatusDone)
	case "skip":
		e.currentStatus(task.StatusSkipped)
	case "miss":
		e.currentStatus(task.StatusMissed)
	case "next":
		e.NextTask()
	case "prev":
		e.PrevTask()
	default:
		return ErrUnknownAction
	}
	return nil
}

func (e *Engine) currentStatus(target task.Status) {
	e.mutate(func(now time.Time) bool {
		t := e.currentTaskLocked(now)
		if t == nil {
			e.logger.Printf("engine: %s: no current task", target)
			return false
		}
		if t.Status() == target {
			return false
		}
		e.st.PetState = e.prog.Transition(e.st.PetState, t.Status(), target)
		t.SetStatus(target)
		return true
	})
}

// currentTaskLocked resolves the cursor, self-healing a stale reference to
// the nearest task first.
func (e *Engine) currentTaskLocked(now time.Time) *task.Task {
	today := clock.DayKey(now)
	if t := e.st.FindTask(e.st.CurrentTaskID); t != nil && t.DayKey == today {
		return t
	}
	e.st.CurrentTaskID = e.nearestTaskIDLocked(now)
	return e.st.FindTask(e.st.CurrentTaskID)
}

// UpdateSettings clamps and applies setting changes; nil fields are left
// untouched.
func (e *Engine) UpdateSettings(graceMinutes *int, privacyPolicyURL *string) state.Settings {
	var out state.Settings
	e.mutate(func(time.Time) bool {
		changed := false
		if graceMinutes != nil {
			e.st.Settings.GraceMinutes = state.ClampGraceMinutes(*graceMinutes)
			changed = true
		}
		if privacyPolicyURL != nil {
			e.st.Settings.PrivacyPolicyURL = *privacyPolicyURL
			changed = true
		}
		out = e.st.Settings
		return changed
	})
	return out
}

// nearestTaskIDLocked picks today's task closest to the active hour. An
// exact or within-grace hour match wins outright; otherwise the smallest
// hour distance does. Days with only anytime tasks fall back to list
// order.
func (e *Engine) nearestTaskIDLocked(now time.Time) string {
	todays := e.st.TasksForDay(clock.DayKey(now))
	if len(todays) == 0 {
		return ""
	}
	grace := e.st.Settings.GraceMinutes
	active := clock.ActiveHour(now, grace)

	best := -1
	bestDiff := 0
	for i, t := range todays {
		if t.IsAnytime || t.DueHour == task.AnytimeHour {
			continue
		}
		if t.DueHour == active || clock.IsWithinGracePeriod(now, t.DueHour, grace) {
			return t.ID
		}
		diff := t.DueHour - active
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	if best >= 0 {
		return todays[best].ID
	}
	return todays[0].ID
}
