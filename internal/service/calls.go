package service

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

const callsResource = "calls"

type CallService struct {
	api   *backend.CallsAPI
	cache *cache.Store
	opts  cache.Options
}

func NewCallService(api *backend.CallsAPI, store *cache.Store, opts cache.Options) *CallService {
	return &CallService{api: api, cache: store, opts: opts}
}

func callHistoryKey(f model.CallFilter) cache.Key {
	parts := []string{f.AgentID, f.LeadID, string(f.Status), strconv.Itoa(f.Limit), strconv.Itoa(f.Offset)}
	if f.From != nil {
		parts = append(parts, f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		parts = append(parts, f.To.Format(time.RFC3339))
	}
	return cache.NewKey(callsResource, parts...)
}

func callMetricsKey(f model.CallFilter) cache.Key {
	return cache.NewKey("call-metrics", f.AgentID, string(f.Status))
}

func (s *CallService) History(ctx context.Context, filter model.CallFilter) ([]model.CallRecord, error) {
	return cache.Read(ctx, s.cache, callHistoryKey(filter), s.opts, func(ctx context.Context) ([]model.CallRecord, error) {
		return s.api.History(ctx, filter)
	})
}

func (s *CallService) Get(ctx context.Context, id string) (*model.CallRecord, error) {
	return cache.Read(ctx, s.cache, cache.NewKey("call", id), s.opts, func(ctx context.Context) (*model.CallRecord, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *CallService) Metrics(ctx context.Context, filter model.CallFilter) (*model.CallMetrics, error) {
	return cache.Read(ctx, s.cache, callMetricsKey(filter), s.opts, func(ctx context.Context) (*model.CallMetrics, error) {
		return s.api.Metrics(ctx, filter)
	})
}

func (s *CallService) Schedule(ctx context.Context, leadID string) (*model.CallRecord, error) {
	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: s.cache.ResourceKeys(callsResource),
	}, func(ctx context.Context) (any, error) {
		return s.api.Schedule(ctx, leadID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.CallRecord), nil
}

func (s *CallService) Delete(ctx context.Context, id string) error {
	keys := append(s.cache.ResourceKeys(callsResource), cache.NewKey("call", id))
	_, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: keys,
		Patch: func(_ cache.Key, value any) any {
			calls, ok := value.([]model.CallRecord)
			if !ok {
				return value
			}
			next := make([]model.CallRecord, 0, len(calls))
			for _, c := range calls {
				if c.ID != id {
					next = append(next, c)
				}
			}
			return next
		},
	}, func(ctx context.Context) (any, error) {
		return nil, s.api.Delete(ctx, id)
	})
	return err
}

// Export streams the call history CSV straight from the backend; nothing is
// cached.
func (s *CallService) Export(ctx context.Context, filter model.CallFilter) (io.ReadCloser, error) {
	return s.api.Export(ctx, filter)
}
