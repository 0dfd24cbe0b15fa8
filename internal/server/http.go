package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/hedging-my-bets/myTaskLists/internal/clock"
	"github.com/hedging-my-bets/myTaskLists/internal/engine"
	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

// Handler exposes the engine over JSON HTTP.
type Handler struct {
	engine *engine.Engine
	clock  clock.Clock
	logger *log.Logger
}

func NewHandler(e *engine.Engine, c clock.Clock, logger *log.Logger) *Handler {
	if c == nil {
		c = clock.RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{engine: e, clock: c, logger: logger}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

// GET /api/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s := h.engine.State()
	prog := h.engine.Progression()
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":            s.Tasks,
		"petState":         s.PetState,
		"settings":         s.Settings,
		"currentTaskId":    s.CurrentTaskID,
		"lastRolloverDate": s.LastRolloverDate,
		"taskTemplates":    s.TaskTemplates,
		"stage":            prog.StageMeta(s.PetState.StageIndex),
		"progressPct":      prog.ProgressToNext(s.PetState),
	})
}

// GET /api/tasks?day=YYYY-MM-DD
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	day := strings.TrimSpace(r.URL.Query().Get("day"))
	if day == "" {
		day = clock.DayKey(h.clock.Now())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"day":   day,
		"tasks": h.engine.State().TasksForDay(day),
	})
}

type editTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// TasksSub routes /api/tasks/{id} and /api/tasks/{id}/{op}.
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		writeErr(w, http.StatusNotFound, "task id required")
		return
	}

	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if len(parts) == 1 {
		var req editTaskRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.Title != nil {
			h.engine.EditTitle(id, *req.Title)
		}
		if req.Description != nil {
			h.engine.EditDescription(id, *req.Description)
		}
		h.respondTask(w, id)
		return
	}

	switch parts[1] {
	case "complete":
		h.engine.Complete(id)
	case "skip":
		h.engine.Skip(id)
	case "miss":
		h.engine.Miss(id)
	case "reopen":
		h.engine.Reopen(id)
	case "select":
		h.engine.SelectTask(id)
	default:
		writeErr(w, http.StatusNotFound, "unknown task operation")
		return
	}
	h.respondTask(w, id)
}

// respondTask echoes the task and pet after an operation. Operations on
// unknown ids are no-ops by design, so the echo reports absence instead
// of failing.
func (h *Handler) respondTask(w http.ResponseWriter, id string) {
	s := h.engine.State()
	var found *task.Task
	if t := s.FindTask(id); t != nil {
		found = t
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"task":          found,
		"petState":      s.PetState,
		"currentTaskId": s.CurrentTaskID,
	})
}

// Actions routes POST /api/actions/{name}: the deep-link surface.
func (h *Handler) Actions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/actions/")
	if err := h.engine.Action(name); err != nil {
		writeErr(w, http.StatusNotFound, "unknown action: "+name)
		return
	}
	s := h.engine.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"action":        name,
		"petState":      s.PetState,
		"currentTaskId": s.CurrentTaskID,
	})
}

// GET /api/pet
func (h *Handler) GetPet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s := h.engine.State()
	prog := h.engine.Progression()
	writeJSON(w, http.StatusOK, map[string]any{
		"petState":    s.PetState,
		"stage":       prog.StageMeta(s.PetState.StageIndex),
		"progressPct": prog.ProgressToNext(s.PetState),
	})
}
