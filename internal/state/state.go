package state

import (
	"github.com/hedging-my-bets/myTaskLists/internal/pet"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

const (
	MinGraceMinutes = 0
	MaxGraceMinutes = 30

	DefaultGraceMinutes     = 15
	DefaultPrivacyPolicyURL = "https://example.com/privacy"
)

type Settings struct {
	GraceMinutes     int    `json:"graceMinutes"`
	PrivacyPolicyURL string `json:"privacyPolicyURL"`
}

// ClampGraceMinutes forces a grace setting into [0,30]; invalid settings
// are clamped, never rejected.
func ClampGraceMinutes(minutes int) int {
	if minutes < MinGraceMinutes {
		return MinGraceMinutes
	}
	if minutes > MaxGraceMinutes {
		return MaxGraceMinutes
	}
	return minutes
}

// AppState is the single root aggregate persisted as one JSON document.
type AppState struct {
	Tasks            []task.Task     `json:"tasks"`
	PetState         pet.State       `json:"petState"`
	Settings         Settings        `json:"settings"`
	CurrentTaskID    string          `json:"currentTaskId"`
	LastRolloverDate string          `json:"lastRolloverDate"`
	TaskTemplates    []task.Template `json:"taskTemplates"`
}

// Default is the first-run state: the built-in day plan for today, a fresh
// egg, and no templates.
func Default(todayKey string) AppState {
	return AppState{
		Tasks:            task.DefaultDayPlan(todayKey),
		PetState:         pet.State{},
		Settings:         Settings{GraceMinutes: DefaultGraceMinutes, PrivacyPolicyURL: DefaultPrivacyPolicyURL},
		CurrentTaskID:    "",
		LastRolloverDate: todayKey,
		TaskTemplates:    []task.Template{},
	}
}

// Normalize self-heals a loaded document: nil slices, flag exclusivity,
// clamped settings, and the derived stage index recomputed from XP.
func (s *AppState) Normalize(prog pet.Progression) {
	if s.Tasks == nil {
		s.Tasks = []task.Task{}
	}
	if s.TaskTemplates == nil {
		s.TaskTemplates = []task.Template{}
	}
	for i := range s.Tasks {
		s.Tasks[i].Normalize()
	}
	s.Settings.GraceMinutes = ClampGraceMinutes(s.Settings.GraceMinutes)
	if s.Settings.PrivacyPolicyURL == "" {
		s.Settings.PrivacyPolicyURL = DefaultPrivacyPolicyURL
	}
	s.PetState = prog.Normalize(s.PetState)
}

// TasksForDay returns the tasks belonging to one day key, in list order.
func (s AppState) TasksForDay(dayKey string) []task.Task {
	out := make([]task.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.DayKey == dayKey {
			out = append(out, t)
		}
	}
	return out
}

// FindTask returns a pointer into the task list, or nil if absent.
func (s *AppState) FindTask(id string) *task.Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// FindTemplate returns a pointer into the template list, or nil if absent.
func (s *AppState) FindTemplate(id string) *task.Template {
	for i := range s.TaskTemplates {
		if s.TaskTemplates[i].ID == id {
			return &s.TaskTemplates[i]
		}
	}
	return nil
}

// Clone deep-copies the aggregate so readers never alias engine memory.
func (s AppState) Clone() AppState {
	out := s
	out.Tasks = make([]task.Task, len(s.Tasks))
	copy(out.Tasks, s.Tasks)
	for i := range out.Tasks {
		out.Tasks[i].RecurringDays = append([]int(nil), out.Tasks[i].RecurringDays...)
	}
	out.TaskTemplates = make([]task.Template, len(s.TaskTemplates))
	copy(out.TaskTemplates, s.TaskTemplates)
	for i := range out.TaskTemplates {
		out.TaskTemplates[i].RecurringDays = append([]int(nil), out.TaskTemplates[i].RecurringDays...)
	}
	return out
}
