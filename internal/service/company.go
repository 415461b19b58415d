package service

import (
	"context"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

// CompanyService caches the account-level settings other services consult,
// most importantly the verified-leads policy flag.
type CompanyService struct {
	api   *backend.AuthAPI
	cache *cache.Store
	opts  cache.Options
}

func NewCompanyService(api *backend.AuthAPI, store *cache.Store, opts cache.Options) *CompanyService {
	return &CompanyService{api: api, cache: store, opts: opts}
}

func companyKey() cache.Key { return cache.NewKey("company") }

func (s *CompanyService) Get(ctx context.Context) (*model.Company, error) {
	return cache.Read(ctx, s.cache, companyKey(), s.opts, s.api.Company)
}

// RequiresVerifiedLeads reports the account policy gating schedule-call.
func (s *CompanyService) RequiresVerifiedLeads(ctx context.Context) (bool, error) {
	company, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if company == nil {
		return false, nil
	}
	return company.RequireVerifiedLeads, nil
}

func (s *CompanyService) ListAPIKeys(ctx context.Context) ([]model.APIKey, error) {
	return cache.Read(ctx, s.cache, cache.NewKey("api-keys"), s.opts, s.api.ListAPIKeys)
}

func (s *CompanyService) CreateAPIKey(ctx context.Context, name string) (*model.APIKey, error) {
	result, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: []cache.Key{cache.NewKey("api-keys")},
	}, func(ctx context.Context) (any, error) {
		return s.api.CreateAPIKey(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.APIKey), nil
}

func (s *CompanyService) RevokeAPIKey(ctx context.Context, id string) error {
	_, err := s.cache.Mutate(ctx, cache.Mutation{
		Keys: []cache.Key{cache.NewKey("api-keys")},
		Patch: func(_ cache.Key, value any) any {
			keys, ok := value.([]model.APIKey)
			if !ok {
				return value
			}
			next := make([]model.APIKey, 0, len(keys))
			for _, k := range keys {
				if k.ID != id {
					next = append(next, k)
				}
			}
			return next
		},
	}, func(ctx context.Context) (any, error) {
		return nil, s.api.RevokeAPIKey(ctx, id)
	})
	return err
}
