package service

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

const calliqResource = "calliq-calls"

type CallIQService struct {
	api    *backend.CallIQAPI
	cache  *cache.Store
	opts   cache.Options
	poller *UploadPoller
}

func NewCallIQService(api *backend.CallIQAPI, store *cache.Store, opts cache.Options, poller *UploadPoller) *CallIQService {
	return &CallIQService{api: api, cache: store, opts: opts, poller: poller}
}

func calliqStatsKey() cache.Key { return cache.NewKey("calliq-stats") }

func calliqCallsKey(limit, offset int) cache.Key {
	return cache.NewKey(calliqResource, strconv.Itoa(limit), strconv.Itoa(offset))
}

func (s *CallIQService) Stats(ctx context.Context) (*model.CallIQStats, error) {
	return cache.Read(ctx, s.cache, calliqStatsKey(), s.opts, s.api.Stats)
}

func (s *CallIQService) Calls(ctx context.Context, limit, offset int) ([]model.CallIQCall, error) {
	return cache.Read(ctx, s.cache, calliqCallsKey(limit, offset), s.opts, func(ctx context.Context) ([]model.CallIQCall, error) {
		return s.api.Calls(ctx, limit, offset)
	})
}

func (s *CallIQService) Call(ctx context.Context, id string) (*model.CallIQCall, error) {
	return cache.Read(ctx, s.cache, cache.NewKey("calliq-call", id), s.opts, func(ctx context.Context) (*model.CallIQCall, error) {
		return s.api.Call(ctx, id)
	})
}

func (s *CallIQService) DeleteCall(ctx context.Context, id string) error {
	keys := append(s.cache.ResourceKeys(calliqResource),
		cache.NewKey("calliq-call", id), calliqStatsKey())
	_, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: keys,
		Patch: func(_ cache.Key, value any) any {
			calls, ok := value.([]model.CallIQCall)
			if !ok {
				return value
			}
			next := make([]model.CallIQCall, 0, len(calls))
			for _, c := range calls {
				if c.ID != id {
					next = append(next, c)
				}
			}
			return next
		},
	}, func(ctx context.Context) (any, error) {
		return nil, s.api.DeleteCall(ctx, id)
	})
	return err
}

func (s *CallIQService) Insights(ctx context.Context, callID string) ([]model.CallIQInsight, error) {
	return cache.Read(ctx, s.cache, cache.NewKey("calliq-insights", callID), s.opts, func(ctx context.Context) ([]model.CallIQInsight, error) {
		return s.api.Insights(ctx, callID)
	})
}

// UploadAndAnalyze uploads a recording, then polls until processing settles.
// On completion the CallIQ caches are invalidated so the new call and its
// scores appear on the next read.
func (s *CallIQService) UploadAndAnalyze(ctx context.Context, title, filename string, file io.Reader, size int64, progress backend.ProgressFunc) (*model.UploadStatus, error) {
	if title == "" {
		return nil, apperrors.MissingRequired("title")
	}

	status, err := s.api.Upload(ctx, title, filename, file, size, progress)
	if err != nil {
		return nil, err
	}

	final, err := s.poller.Wait(ctx, status.ID)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateResource(calliqResource)
	s.cache.Invalidate(calliqStatsKey())
	return final, nil
}

func (s *CallIQService) UploadStatus(ctx context.Context, id string) (*model.UploadStatus, error) {
	return s.api.UploadStatus(ctx, id)
}

func (s *CallIQService) Export(ctx context.Context) (io.ReadCloser, error) {
	return s.api.Export(ctx)
}

// UploadPoller watches an upload through the backend's processing pipeline
// (uploading -> transcribing -> analyzing -> completed|failed) with a bounded
// attempt budget.
type UploadPoller struct {
	api         *backend.CallIQAPI
	interval    time.Duration
	maxAttempts int
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewUploadPoller(api *backend.CallIQAPI, interval time.Duration, maxAttempts int) *UploadPoller {
	return &UploadPoller{
		api:         api,
		interval:    interval,
		maxAttempts: maxAttempts,
		sleep:       sleepCtx,
	}
}

// Wait polls the upload until it reaches a terminal state. A failed upload is
// reported through the status, not an error; exhausting the attempt budget is
// an UPLOAD_TIMEOUT error.
func (p *UploadPoller) Wait(ctx context.Context, uploadID string) (*model.UploadStatus, error) {
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		status, err := p.api.UploadStatus(ctx, uploadID)
		if err != nil {
			return nil, err
		}
		if status.State.Terminal() {
			if status.State == model.UploadStateFailed {
				log.Warn().Str("uploadId", uploadID).Str("error", status.Error).Msg("upload processing failed")
			}
			return status, nil
		}

		log.Debug().
			Str("uploadId", uploadID).
			Str("state", string(status.State)).
			Int("attempt", attempt).
			Msg("upload still processing")

		if err := p.sleep(ctx, p.interval); err != nil {
			return nil, err
		}
	}
	return nil, apperrors.UploadTimeout(p.maxAttempts)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
