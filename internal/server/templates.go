package server

import (
	"net/http"
	"strings"
)

type createTemplateRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DueHour       *int   `json:"dueHour"`
	IsRecurring   bool   `json:"isRecurring"`
	RecurringDays []int  `json:"recurringDays"`
}

// Templates handles GET and POST /api/templates.
func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"templates": h.engine.Templates()})
	case http.MethodPost:
		var req createTemplateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		dueHour := -1
		if req.DueHour != nil {
			dueHour = *req.DueHour
		}
		tpl, err := h.engine.CreateTemplate(req.Title, req.Description, dueHour, req.IsRecurring, req.RecurringDays)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"template": tpl})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// TemplatesSub handles DELETE /api/templates/{id}. Deleting cascades to
// every task instance of the template.
func (h *Handler) TemplatesSub(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	if id == "" {
		writeErr(w, http.StatusNotFound, "template id required")
		return
	}
	h.engine.DeleteTemplate(id)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

type settingsRequest struct {
	GraceMinutes     *int    `json:"graceMinutes"`
	PrivacyPolicyURL *string `json:"privacyPolicyURL"`
}

// Settings handles GET and POST /api/settings. Grace minutes are clamped
// to their legal range rather than rejected.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"settings": h.engine.State().Settings})
	case http.MethodPost:
		var req settingsRequest
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		updated := h.engine.UpdateSettings(req.GraceMinutes, req.PrivacyPolicyURL)
		writeJSON(w, http.StatusOK, map[string]any{"settings": updated})
	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
