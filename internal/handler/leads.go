package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/config"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/service"
)

type LeadHandler struct {
	leads *service.LeadService
}

func NewLeadHandler(leads *service.LeadService) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/import", h.Import)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/schedule", h.Schedule)
	r.Post("/{id}/stop", h.Stop)
	r.Post("/{id}/verify", h.Verify)

	return r
}

// GET /api/leads
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	filter := backend.LeadFilter{
		AgentID: r.URL.Query().Get("agent_id"),
		Status:  model.LeadStatus(r.URL.Query().Get("status")),
		Limit:   page.Limit,
		Offset:  page.Offset,
	}

	leads, err := h.leads.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

// POST /api/leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params model.CreateLeadParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	lead, err := h.leads.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// GET /api/leads/{id}
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// PATCH /api/leads/{id}
func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params model.UpdateLeadParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	lead, err := h.leads.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// DELETE /api/leads/{id}
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.leads.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/leads/import
//
// Multipart form: file (CSV) + agent_id. The response reports per-row
// outcomes; partial success is a 200, not an error.
func (h *LeadHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.UploadMaxBodySize); err != nil {
		writeError(w, apperrors.ValidationError("Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperrors.MissingRequired("file"))
		return
	}
	defer file.Close()

	agentID := r.FormValue("agent_id")
	result, err := h.leads.Import(r.Context(), agentID, header.Filename, file, header.Size, nil)
	if err != nil {
		log.Warn().Err(err).Str("agentId", agentID).Msg("lead import failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// POST /api/leads/{id}/schedule
func (h *LeadHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.leads.ScheduleCall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// POST /api/leads/{id}/stop
func (h *LeadHandler) Stop(w http.ResponseWriter, r *http.Request) {
	lead, err := h.leads.Stop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// POST /api/leads/{id}/verify
//
// Submits the OTP; a correct code schedules the original call in the same
// request.
func (h *LeadHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VerificationID string `json:"verification_id"`
		Code           string `json:"code"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.leads.ConfirmVerification(r.Context(), chi.URLParam(r, "id"), body.VerificationID, body.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
