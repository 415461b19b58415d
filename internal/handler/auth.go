package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/middleware"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/service"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/session"
)

type AuthHandler struct {
	sessions     *session.Controller
	company      *service.CompanyService
	guard        func(http.Handler) http.Handler
	loginLimit   func(http.Handler) http.Handler
	isProduction bool
	devLogin     bool
}

func NewAuthHandler(
	sessions *session.Controller,
	company *service.CompanyService,
	guard, loginLimit func(http.Handler) http.Handler,
	isProduction, devLogin bool,
) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		company:      company,
		guard:        guard,
		loginLimit:   loginLimit,
		isProduction: isProduction,
		devLogin:     devLogin,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginLimit).Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.guard)
		r.Get("/me", h.Me)
		r.Get("/company", h.Company)
		r.Post("/onboarding", h.CompleteOnboarding)
		r.Get("/api-keys", h.ListAPIKeys)
		r.Post("/api-keys", h.CreateAPIKey)
		r.Delete("/api-keys/{id}", h.RevokeAPIKey)
	})

	return r
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var cred model.Credential
	if err := decodeJSON(r, &cred); err != nil {
		writeError(w, err)
		return
	}

	if cred.OAuthToken == "" {
		if !h.devLogin || cred.Email == "" {
			writeError(w, apperrors.MissingRequired("oauth_token"))
			return
		}
	}

	onboarded, token, err := h.sessions.Login(r.Context(), cred)
	if err != nil {
		log.Warn().Err(err).Msg("login failed")
		writeError(w, err)
		return
	}

	middleware.SetSessionCookie(w, token, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":      h.sessions.CurrentUser(),
		"onboarded": onboarded,
	})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		writeError(w, apperrors.Unauthorized("Not signed in"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":      user,
		"onboarded": user.Onboarded(),
	})
}

// GET /api/auth/company
func (h *AuthHandler) Company(w http.ResponseWriter, r *http.Request) {
	company, err := h.company.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// POST /api/auth/onboarding
func (h *AuthHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	var params model.OnboardingParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}
	if params.CompanyName == "" {
		writeError(w, apperrors.MissingRequired("company_name"))
		return
	}

	company, err := h.sessions.CompleteOnboarding(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

// GET /api/auth/api-keys
func (h *AuthHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.company.ListAPIKeys(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

// POST /api/auth/api-keys
func (h *AuthHandler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Name == "" {
		writeError(w, apperrors.MissingRequired("name"))
		return
	}

	key, err := h.company.CreateAPIKey(r.Context(), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, key)
}

// DELETE /api/auth/api-keys/{id}
func (h *AuthHandler) RevokeAPIKey(w http.ResponseWriter, r *http.Request) {
	if err := h.company.RevokeAPIKey(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
