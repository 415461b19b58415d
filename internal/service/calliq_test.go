package service

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

func noSleep(context.Context, time.Duration) error { return nil }

// statusSequence serves one upload state per poll, sticking on the last.
func statusSequence(f *fixture, states ...model.UploadState) *atomic.Int64 {
	var polls atomic.Int64
	f.mux.HandleFunc("GET /api/v1/calliq/uploads/u1", func(w http.ResponseWriter, r *http.Request) {
		i := polls.Add(1) - 1
		if i >= int64(len(states)) {
			i = int64(len(states)) - 1
		}
		writeJSON(w, http.StatusOK, map[string]any{"id": "u1", "state": string(states[i])})
	})
	return &polls
}

func TestUploadPoller(t *testing.T) {
	ctx := context.Background()

	t.Run("polls until completed", func(t *testing.T) {
		f := newFixture(t)
		polls := statusSequence(f,
			model.UploadStateTranscribing,
			model.UploadStateAnalyzing,
			model.UploadStateCompleted,
		)

		p := NewUploadPoller(f.client.CallIQ(), time.Millisecond, 10)
		p.sleep = noSleep

		status, err := p.Wait(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, model.UploadStateCompleted, status.State)
		assert.Equal(t, int64(3), polls.Load())
	})

	t.Run("failed processing is a status, not an error", func(t *testing.T) {
		f := newFixture(t)
		f.mux.HandleFunc("GET /api/v1/calliq/uploads/u1", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"id": "u1", "state": "failed", "error": "unsupported codec",
			})
		})

		p := NewUploadPoller(f.client.CallIQ(), time.Millisecond, 10)
		p.sleep = noSleep

		status, err := p.Wait(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, model.UploadStateFailed, status.State)
		assert.Equal(t, "unsupported codec", status.Error)
	})

	t.Run("attempt budget exhausts into a timeout error", func(t *testing.T) {
		f := newFixture(t)
		polls := statusSequence(f, model.UploadStateAnalyzing)

		p := NewUploadPoller(f.client.CallIQ(), time.Millisecond, 3)
		p.sleep = noSleep

		_, err := p.Wait(ctx, "u1")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUploadTimeout, apperrors.GetCode(err))
		assert.Equal(t, int64(3), polls.Load())
	})

	t.Run("cancellation stops the wait", func(t *testing.T) {
		f := newFixture(t)
		statusSequence(f, model.UploadStateAnalyzing)

		ctx, cancel := context.WithCancel(context.Background())
		p := NewUploadPoller(f.client.CallIQ(), time.Millisecond, 100)
		p.sleep = func(ctx context.Context, _ time.Duration) error {
			cancel()
			return ctx.Err()
		}

		_, err := p.Wait(ctx, "u1")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestUploadAndAnalyze(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	var statsFetches atomic.Int64
	f.mux.HandleFunc("GET /api/v1/calliq/stats", func(w http.ResponseWriter, r *http.Request) {
		statsFetches.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"total_calls": int(statsFetches.Load())})
	})
	f.mux.HandleFunc("POST /api/v1/calliq/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Demo call", r.FormValue("title"))
		writeJSON(w, http.StatusOK, map[string]any{"id": "u1", "state": "uploading"})
	})
	statusSequence(f, model.UploadStateTranscribing, model.UploadStateCompleted)

	poller := NewUploadPoller(f.client.CallIQ(), time.Millisecond, 10)
	poller.sleep = noSleep
	svc := NewCallIQService(f.client.CallIQ(), f.store, f.opts, poller)

	// Prime the stats cache so completion has something to invalidate.
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalCalls)

	audio := strings.NewReader("RIFF....")
	status, err := svc.UploadAndAnalyze(ctx, "Demo call", "demo.wav", audio, -1, nil)
	require.NoError(t, err)
	assert.Equal(t, model.UploadStateCompleted, status.State)

	// Invalidation refetches stats in the background.
	assert.Eventually(t, func() bool {
		return statsFetches.Load() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestUploadRequiresTitle(t *testing.T) {
	f := newFixture(t)
	svc := NewCallIQService(f.client.CallIQ(), f.store, f.opts, NewUploadPoller(f.client.CallIQ(), time.Millisecond, 1))

	_, err := svc.UploadAndAnalyze(context.Background(), "", "demo.wav", strings.NewReader("x"), -1, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeMissingRequired, apperrors.GetCode(err))
}
