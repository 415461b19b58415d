package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/config"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/service"
)

type CallIQHandler struct {
	calliq *service.CallIQService
}

func NewCallIQHandler(calliq *service.CallIQService) *CallIQHandler {
	return &CallIQHandler{calliq: calliq}
}

func (h *CallIQHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/stats", h.Stats)
	r.Get("/calls", h.Calls)
	r.Get("/calls/{id}", h.Call)
	r.Delete("/calls/{id}", h.DeleteCall)
	r.Get("/insights", h.Insights)
	r.Post("/upload", h.Upload)
	r.Get("/uploads/{id}", h.UploadStatus)
	r.Get("/export", h.Export)

	return r
}

// GET /api/calliq/stats
func (h *CallIQHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.calliq.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /api/calliq/calls
func (h *CallIQHandler) Calls(w http.ResponseWriter, r *http.Request) {
	page := ParsePagination(r)
	calls, err := h.calliq.Calls(r.Context(), page.Limit, page.Offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calls)
}

// GET /api/calliq/calls/{id}
func (h *CallIQHandler) Call(w http.ResponseWriter, r *http.Request) {
	call, err := h.calliq.Call(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

// DELETE /api/calliq/calls/{id}
func (h *CallIQHandler) DeleteCall(w http.ResponseWriter, r *http.Request) {
	if err := h.calliq.DeleteCall(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/calliq/insights?call_id=...
func (h *CallIQHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.calliq.Insights(r.Context(), r.URL.Query().Get("call_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// POST /api/calliq/upload
//
// Multipart form: audio + title. The request blocks until the backend
// finishes transcription and analysis or the polling budget runs out.
func (h *CallIQHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(config.UploadMaxBodySize); err != nil {
		writeError(w, apperrors.ValidationError("Invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, apperrors.MissingRequired("audio"))
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	status, err := h.calliq.UploadAndAnalyze(r.Context(), title, header.Filename, file, header.Size, nil)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("calliq upload failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// GET /api/calliq/uploads/{id}
func (h *CallIQHandler) UploadStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.calliq.UploadStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// GET /api/calliq/export
func (h *CallIQHandler) Export(w http.ResponseWriter, r *http.Request) {
	body, err := h.calliq.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="calliq-report.csv"`)
	if _, err := io.Copy(w, body); err != nil {
		log.Warn().Err(err).Msg("calliq export stream interrupted")
	}
}
