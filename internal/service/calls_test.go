package service

import (
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

// callBackend keeps the call list server-side so optimistic patches and the
// settle refetch converge on the same data.
type callBackend struct {
	mu    sync.Mutex
	calls []map[string]any

	historyFetches atomic.Int64
	metricsFetches atomic.Int64
}

func newCallBackend(f *fixture) *callBackend {
	b := &callBackend{
		calls: []map[string]any{
			{"id": "call-1", "lead_id": "l1", "agent_id": "a1", "status": "completed",
				"duration_ms": 92000, "created_at": time.Now().Format(time.RFC3339)},
			{"id": "call-2", "lead_id": "l2", "agent_id": "a1", "status": "pending",
				"duration_ms": 0, "created_at": time.Now().Format(time.RFC3339)},
		},
	}

	f.mux.HandleFunc("GET /api/v1/calls", func(w http.ResponseWriter, r *http.Request) {
		b.historyFetches.Add(1)
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.calls)
	})
	f.mux.HandleFunc("GET /api/v1/calls/metrics", func(w http.ResponseWriter, r *http.Request) {
		b.metricsFetches.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"total_calls": 2, "completed_calls": 1, "failed_calls": 0,
			"avg_duration_sec": 92.0, "connect_rate": 0.5,
		})
	})
	f.mux.HandleFunc("DELETE /api/v1/calls/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		b.mu.Lock()
		defer b.mu.Unlock()
		next := b.calls[:0]
		for _, c := range b.calls {
			if c["id"] != id {
				next = append(next, c)
			}
		}
		b.calls = next
		w.WriteHeader(http.StatusNoContent)
	})
	f.mux.HandleFunc("GET /api/v1/calls/export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "id,status\ncall-1,completed\ncall-2,pending\n")
	})
	return b
}

func TestCallHistoryAndMetricsCached(t *testing.T) {
	f := newFixture(t)
	b := newCallBackend(f)
	calls := NewCallService(f.client.Calls(), f.store, f.opts)

	filter := model.CallFilter{AgentID: "a1", Limit: 50}

	history, err := calls.History(t.Context(), filter)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "call-1", history[0].ID)
	assert.Equal(t, model.CallStatusCompleted, history[0].Status)

	// Second read with the same filter comes from cache.
	_, err = calls.History(t.Context(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.historyFetches.Load())

	// A different filter is a different key.
	_, err = calls.History(t.Context(), model.CallFilter{AgentID: "a1", Status: model.CallStatusPending, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), b.historyFetches.Load())

	metrics, err := calls.Metrics(t.Context(), filter)
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.TotalCalls)
	assert.InDelta(t, 0.5, metrics.ConnectRate, 1e-9)

	_, err = calls.Metrics(t.Context(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.metricsFetches.Load())
}

func TestCallDeleteRemovesFromCachedHistory(t *testing.T) {
	f := newFixture(t)
	newCallBackend(f)
	calls := NewCallService(f.client.Calls(), f.store, f.opts)

	filter := model.CallFilter{AgentID: "a1", Limit: 50}
	history, err := calls.History(t.Context(), filter)
	require.NoError(t, err)
	require.Len(t, history, 2)

	require.NoError(t, calls.Delete(t.Context(), "call-1"))

	history, err = calls.History(t.Context(), filter)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "call-2", history[0].ID)
}

func TestCallExportStreams(t *testing.T) {
	f := newFixture(t)
	newCallBackend(f)
	calls := NewCallService(f.client.Calls(), f.store, f.opts)

	rc, err := calls.Export(t.Context(), model.CallFilter{})
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "call-1,completed")
}
