package engine

import (
	"time"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

// CreateTemplate registers a validated template and, when it applies to
// today's weekday, expands it into today's task list immediately.
func (e *Engine) CreateTemplate(title, description string, dueHour int, recurring bool, recurringDays []int) (task.Template, error) {
	tpl, err := task.NewTemplate(title, description, dueHour, recurring, recurringDays)
	if err != nil {
		return task.Template{}, err
	}
	e.mutate(func(now time.Time) bool {
		e.st.TaskTemplates = append(e.st.TaskTemplates, tpl)

		today := clock.DayKey(now)
		spawned := task.Expand([]task.Template{tpl}, today)
		e.st.Tasks = append(e.st.Tasks, spawned...)
		if e.st.CurrentTaskID == "" && len(spawned) > 0 {
			e.st.CurrentTaskID = spawned[0].ID
		}
		return true
	})
	return tpl, nil
}

// DeleteTemplate removes a template and cascades to every task instance
// referencing it, on any day and in any status. A missing id is a logged
// no-op. The current-task pointer is repaired if its task went away.
func (e *Engine) DeleteTemplate(templateID string) {
	e.mutate(func(now time.Time) bool {
		if e.st.FindTemplate(templateID) == nil {
			e.logger.Printf("engine: delete template: %q not found", templateID)
			return false
		}

		templates := e.st.TaskTemplates[:0]
		for _, tpl := range e.st.TaskTemplates {
			if tpl.ID != templateID {
				templates = append(templates, tpl)
			}
		}
		e.st.TaskTemplates = templates

		tasks := e.st.Tasks[:0]
		for _, t := range e.st.Tasks {
			if t.TemplateID != templateID {
				tasks = append(tasks, t)
			}
		}
		e.st.Tasks = tasks

		if e.st.FindTask(e.st.CurrentTaskID) == nil {
			e.st.CurrentTaskID = e.nearestTaskIDLocked(now)
		}
		return true
	})
}

// Templates returns a copy of the template list.
func (e *Engine) Templates() []task.Template {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]task.Template, len(e.st.TaskTemplates))
	copy(out, e.st.TaskTemplates)
	return out
}
