package task

// AnytimeHour is the dueHour sentinel for tasks without a fixed hour.
const AnytimeHour = -1

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusMissed  Status = "missed"
)

// Task is one schedulable unit of work for a specific calendar day.
// Status is stored as three booleans for wire compatibility with the
// serialized state document; at most one of them is ever true.
type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	DueHour       int    `json:"dueHour"`
	DayKey        string `json:"dayKey"`
	IsDone        bool   `json:"isDone"`
	IsSkipped     bool   `json:"isSkipped"`
	IsMissed      bool   `json:"isMissed"`
	IsAnytime     bool   `json:"isAnytime"`
	IsRecurring   bool   `json:"isRecurring,omitempty"`
	RecurringDays []int  `json:"recurringDays,omitempty"`
	TemplateID    string `json:"templateId,omitempty"`
	Order         int    `json:"order,omitempty"`
}

// Status collapses the boolean flags to the enum. Done wins over skipped
// wins over missed if a stored document ever violates exclusivity.
func (t Task) Status() Status {
	switch {
	case t.IsDone:
		return StatusDone
	case t.IsSkipped:
		return StatusSkipped
	case t.IsMissed:
		return StatusMissed
	default:
		return StatusPending
	}
}

// SetStatus writes exactly one flag, clearing the others.
func (t *Task) SetStatus(s Status) {
	t.IsDone = s == StatusDone
	t.IsSkipped = s == StatusSkipped
	t.IsMissed = s == StatusMissed
}

// Resolved reports whether the task was closed out by the user.
func (t Task) Resolved() bool {
	return t.IsDone || t.IsSkipped
}

// Normalize repairs a task loaded from storage: status exclusivity via
// the Status precedence, and the anytime flag kept consistent with DueHour.
func (t *Task) Normalize() {
	t.SetStatus(t.Status())
	if t.DueHour < AnytimeHour || t.DueHour > 23 {
		t.DueHour = AnytimeHour
	}
	if t.DueHour == AnytimeHour {
		t.IsAnytime = true
	}
}
