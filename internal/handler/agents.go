package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/service"
)

type AgentHandler struct {
	agents *service.AgentService
}

func NewAgentHandler(agents *service.AgentService) *AgentHandler {
	return &AgentHandler{agents: agents}
}

func (h *AgentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/voices", h.Voices)
	r.Post("/generate/website", h.GenerateFromWebsite)
	r.Post("/generate/faq", h.GenerateFAQ)
	r.Post("/generate/tasks", h.GenerateTasks)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/toggle", h.Toggle)

	return r
}

// GET /api/agents
func (h *AgentHandler) List(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agents.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agents)
}

// POST /api/agents
func (h *AgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params model.CreateAgentParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	agent, err := h.agents.Create(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, agent)
}

// GET /api/agents/{id}
func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	agent, err := h.agents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// PATCH /api/agents/{id}
func (h *AgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params model.UpdateAgentParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	agent, err := h.agents.Update(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// DELETE /api/agents/{id}
func (h *AgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.agents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/agents/{id}/toggle
func (h *AgentHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	agent, err := h.agents.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agent)
}

// GET /api/agents/voices
func (h *AgentHandler) Voices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.agents.Voices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voices)
}

// POST /api/agents/generate/website
func (h *AgentHandler) GenerateFromWebsite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	prompt, err := h.agents.GenerateFromWebsite(r.Context(), body.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": prompt})
}

// POST /api/agents/generate/faq
func (h *AgentHandler) GenerateFAQ(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.agents.GenerateFAQ)
}

// POST /api/agents/generate/tasks
func (h *AgentHandler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, h.agents.GenerateTasks)
}

func (h *AgentHandler) generate(w http.ResponseWriter, r *http.Request, run func(ctx context.Context, prompt string) (string, error)) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := run(r.Context(), body.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": result})
}
