package jobs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/session"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/tokenstore"
)

func TestRefreshJobTriggersRefresh(t *testing.T) {
	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			// Inside the refresh threshold from the start.
			"expires_at": time.Now().Add(time.Minute).Format(time.RFC3339),
		})
	})
	mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "admin@acme.com"})
	})
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-2",
			"refresh_token": "refresh-2",
			"expires_at":    time.Now().Add(time.Hour).Format(time.RFC3339),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store, err := tokenstore.New(t.TempDir())
	require.NoError(t, err)
	client := backend.NewClient(server.URL, nil)
	controller := session.NewController(client.Auth(), store, "test-secret", 5*time.Minute)
	client.SetTokenSource(controller)

	_, _, err = controller.Login(t.Context(), model.Credential{Email: "admin@acme.com"})
	require.NoError(t, err)

	job := NewRefreshJob(controller, 10*time.Millisecond)
	job.Start()
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return refreshCalls.Load() >= 1
	}, time.Second, 10*time.Millisecond)
}
