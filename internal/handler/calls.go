package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/service"
)

type CallHandler struct {
	calls *service.CallService
}

func NewCallHandler(calls *service.CallService) *CallHandler {
	return &CallHandler{calls: calls}
}

func (h *CallHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.History)
	r.Get("/metrics", h.Metrics)
	r.Get("/export", h.Export)
	r.Post("/schedule", h.Schedule)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	return r
}

func parseCallFilter(r *http.Request) (model.CallFilter, error) {
	q := r.URL.Query()
	page := ParsePagination(r)
	filter := model.CallFilter{
		AgentID: q.Get("agent_id"),
		LeadID:  q.Get("lead_id"),
		Status:  model.CallStatus(q.Get("status")),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}

	for name, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.InvalidInput(name, "must be an RFC 3339 timestamp")
		}
		*dst = &ts
	}
	return filter, nil
}

// GET /api/calls
func (h *CallHandler) History(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCallFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	calls, err := h.calls.History(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calls)
}

// GET /api/calls/metrics
func (h *CallHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCallFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	metrics, err := h.calls.Metrics(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// GET /api/calls/{id}
func (h *CallHandler) Get(w http.ResponseWriter, r *http.Request) {
	call, err := h.calls.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

// POST /api/calls/schedule
func (h *CallHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var body struct {
		LeadID string `json:"lead_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.LeadID == "" {
		writeError(w, apperrors.MissingRequired("lead_id"))
		return
	}

	call, err := h.calls.Schedule(r.Context(), body.LeadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, call)
}

// DELETE /api/calls/{id}
func (h *CallHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calls.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/calls/export
//
// Streams the backend's CSV straight through without buffering.
func (h *CallHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseCallFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	body, err := h.calls.Export(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="calls.csv"`)
	if _, err := io.Copy(w, body); err != nil {
		log.Warn().Err(err).Msg("call export stream interrupted")
	}
}
