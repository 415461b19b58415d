package service

import (
	"context"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

type AgentService struct {
	api   *backend.AgentsAPI
	cache *cache.Store
	opts  cache.Options
}

func NewAgentService(api *backend.AgentsAPI, store *cache.Store, opts cache.Options) *AgentService {
	return &AgentService{api: api, cache: store, opts: opts}
}

func agentListKey() cache.Key          { return cache.NewKey("agents") }
func agentDetailKey(id string) cache.Key { return cache.NewKey("agent", id) }
func voicesKey() cache.Key             { return cache.NewKey("voices") }

func (s *AgentService) List(ctx context.Context) ([]model.Agent, error) {
	return cache.Read(ctx, s.cache, agentListKey(), s.opts, s.api.List)
}

func (s *AgentService) Get(ctx context.Context, id string) (*model.Agent, error) {
	return cache.Read(ctx, s.cache, agentDetailKey(id), s.opts, func(ctx context.Context) (*model.Agent, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *AgentService) Create(ctx context.Context, params model.CreateAgentParams) (*model.Agent, error) {
	if params.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if params.Prompt == "" {
		return nil, apperrors.MissingRequired("prompt")
	}

	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: []cache.Key{agentListKey()},
	}, func(ctx context.Context) (any, error) {
		return s.api.Create(ctx, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Agent), nil
}

func (s *AgentService) Update(ctx context.Context, id string, params model.UpdateAgentParams) (*model.Agent, error) {
	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: []cache.Key{agentListKey(), agentDetailKey(id)},
	}, func(ctx context.Context) (any, error) {
		return s.api.Update(ctx, id, params)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Agent), nil
}

// Delete removes the agent optimistically from the cached list; the entry
// reappears on rollback if the backend refuses.
func (s *AgentService) Delete(ctx context.Context, id string) error {
	_, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: []cache.Key{agentListKey(), agentDetailKey(id)},
		Patch: func(_ cache.Key, value any) any {
			agents, ok := value.([]model.Agent)
			if !ok {
				return value
			}
			next := make([]model.Agent, 0, len(agents))
			for _, a := range agents {
				if a.ID != id {
					next = append(next, a)
				}
			}
			return next
		},
	}, func(ctx context.Context) (any, error) {
		return nil, s.api.Delete(ctx, id)
	})
	return err
}

// ToggleStatus flips an agent between active and inactive, showing the new
// status immediately in both the list and the detail entry.
func (s *AgentService) ToggleStatus(ctx context.Context, id string) (*model.Agent, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.NotFound("Agent")
	}
	next := current.Status.Toggle()

	listPatch := cache.PatchSlice(
		func(a model.Agent) bool { return a.ID == id },
		func(a model.Agent) model.Agent { a.Status = next; return a },
	)
	detailPatch := cache.PatchValue(func(a *model.Agent) *model.Agent {
		copied := *a
		copied.Status = next
		return &copied
	})

	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: []cache.Key{agentListKey(), agentDetailKey(id)},
		Patch: func(key cache.Key, value any) any {
			if _, ok := value.([]model.Agent); ok {
				return listPatch(key, value)
			}
			return detailPatch(key, value)
		},
	}, func(ctx context.Context) (any, error) {
		return s.api.SetStatus(ctx, id, next)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Agent), nil
}

// Voices change rarely; cache them an order of magnitude longer than
// resource lists.
func (s *AgentService) Voices(ctx context.Context) ([]model.Voice, error) {
	opts := s.opts
	opts.StaleTime = s.opts.StaleTime * 10
	return cache.Read(ctx, s.cache, voicesKey(), opts, s.api.Voices)
}

func (s *AgentService) GenerateFromWebsite(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", apperrors.MissingRequired("url")
	}
	return s.api.GenerateFromWebsite(ctx, url)
}

func (s *AgentService) GenerateFAQ(ctx context.Context, prompt string) (string, error) {
	return s.api.GenerateFAQ(ctx, prompt)
}

func (s *AgentService) GenerateTasks(ctx context.Context, prompt string) (string, error) {
	return s.api.GenerateTasks(ctx, prompt)
}
