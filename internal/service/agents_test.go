package service

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

// agentBackend keeps agent status server-side so optimistic patches and the
// settle refetch agree on the outcome.
type agentBackend struct {
	mu         sync.Mutex
	status     model.AgentStatus
	failStatus atomic.Bool
	listCalls  atomic.Int64
}

func newAgentBackend(t *testing.T, f *fixture) *agentBackend {
	t.Helper()
	b := &agentBackend{status: model.AgentStatusActive}

	f.mux.HandleFunc("GET /api/v1/agents", func(w http.ResponseWriter, r *http.Request) {
		b.listCalls.Add(1)
		writeJSON(w, http.StatusOK, []map[string]any{
			b.wireAgent("a1"),
			{"id": "a2", "name": "Other", "status": "active"},
		})
	})
	f.mux.HandleFunc("GET /api/v1/agents/a1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.wireAgent("a1"))
	})
	f.mux.HandleFunc("POST /api/v1/agents/a1/status", func(w http.ResponseWriter, r *http.Request) {
		if b.failStatus.Load() {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "provider unavailable"})
			return
		}
		var body struct {
			Status model.AgentStatus `json:"status"`
		}
		decodeBody(t, r, &body)
		b.mu.Lock()
		b.status = body.Status
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.wireAgent("a1"))
	})

	return b
}

func (b *agentBackend) wireAgent(id string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return map[string]any{"id": id, "name": "Outbound SDR", "status": string(b.status)}
}

func TestAgentToggleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("toggle flips status in list and detail", func(t *testing.T) {
		f := newFixture(t)
		newAgentBackend(t, f)
		svc := NewAgentService(f.client.Agents(), f.store, f.opts)

		agents, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, agents, 2)
		require.Equal(t, model.AgentStatusActive, agents[0].Status)

		toggled, err := svc.ToggleStatus(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, model.AgentStatusInactive, toggled.Status)

		value, ok := f.store.Peek(agentListKey())
		require.True(t, ok)
		list := value.([]model.Agent)
		assert.Equal(t, model.AgentStatusInactive, list[0].Status)
		assert.Equal(t, model.AgentStatusActive, list[1].Status, "unrelated agent untouched")
	})

	t.Run("detail entry of the wrong shape reads as missing", func(t *testing.T) {
		f := newFixture(t)
		newAgentBackend(t, f)
		svc := NewAgentService(f.client.Agents(), f.store, f.opts)

		// A detail entry can end up holding another shape after a
		// resource-wide patch; the typed read then yields a nil agent.
		_, err := f.store.Read(ctx, agentDetailKey("a9"), func(ctx context.Context) (any, error) {
			return "not-an-agent", nil
		}, f.opts)
		require.NoError(t, err)

		_, err = svc.ToggleStatus(ctx, "a9")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.GetCode(err))
	})

	t.Run("failed toggle reverts both entries", func(t *testing.T) {
		f := newFixture(t)
		b := newAgentBackend(t, f)
		svc := NewAgentService(f.client.Agents(), f.store, f.opts)

		_, err := svc.List(ctx)
		require.NoError(t, err)

		b.failStatus.Store(true)
		_, err = svc.ToggleStatus(ctx, "a1")
		require.Error(t, err)

		value, ok := f.store.Peek(agentListKey())
		require.True(t, ok)
		assert.Equal(t, model.AgentStatusActive, value.([]model.Agent)[0].Status)
	})
}

func TestAgentCreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.mux.HandleFunc("POST /api/v1/agents", func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid agent reached the backend")
	})
	svc := NewAgentService(f.client.Agents(), f.store, f.opts)

	_, err := svc.Create(ctx, model.CreateAgentParams{Prompt: "You are an SDR."})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))

	_, err = svc.Create(ctx, model.CreateAgentParams{Name: "Outbound SDR"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
}

func TestAgentListIsCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := newAgentBackend(t, f)
	svc := NewAgentService(f.client.Agents(), f.store, f.opts)

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.listCalls.Load())
}
