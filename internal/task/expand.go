package task

import (
	"fmt"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
)

// Expand turns templates into concrete task instances for one day.
// Deterministic: the same templates and day always yield the same tasks,
// ids included, so re-expansion for a day is idempotent.
func Expand(templates []Template, dayKey string) []Task {
	weekday, ok := clock.Weekday(dayKey)
	out := make([]Task, 0, len(templates))
	for i, tpl := range templates {
		if tpl.IsRecurring && (!ok || !tpl.AppliesOn(weekday)) {
			continue
		}
		t := Task{
			ID:            dayKey + "-" + tpl.ID,
			Title:         tpl.Title,
			Description:   tpl.Description,
			DueHour:       tpl.DueHour,
			DayKey:        dayKey,
			IsAnytime:     tpl.IsAnytime || tpl.DueHour == AnytimeHour,
			IsRecurring:   tpl.IsRecurring,
			RecurringDays: append([]int{}, tpl.RecurringDays...),
			TemplateID:    tpl.ID,
			Order:         i,
		}
		t.Normalize()
		out = append(out, t)
	}
	return out
}

// DefaultDayPlan is the first-run fallback used when no templates exist:
// one task per hour from 06:00 through 22:00.
func DefaultDayPlan(dayKey string) []Task {
	tasks := make([]Task, 0, 17)
	for hour := 6; hour <= 22; hour++ {
		tasks = append(tasks, Task{
			ID:      fmt.Sprintf("%s-%d", dayKey, hour),
			Title:   fmt.Sprintf("Task at %d:00", hour),
			DueHour: hour,
			DayKey:  dayKey,
			Order:   hour - 6,
		})
	}
	return tasks
}
