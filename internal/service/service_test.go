package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/cache"
)

type staticTokens string

func (s staticTokens) Token(context.Context) (string, error) { return string(s), nil }

// fixture wires the service layer against a fake backend over httptest.
// Tests register handlers on mux before exercising a service.
type fixture struct {
	mux    *http.ServeMux
	client *backend.Client
	store  *cache.Store
	opts   cache.Options
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &fixture{
		mux:    mux,
		client: backend.NewClient(server.URL, staticTokens("test-token")),
		store:  cache.NewStore(cache.Options{StaleTime: time.Minute, CacheTime: 5 * time.Minute}),
		opts:   cache.Options{StaleTime: time.Minute, CacheTime: 5 * time.Minute},
	}
}

func (f *fixture) leads(company *CompanyService) *LeadService {
	if company == nil {
		company = NewCompanyService(f.client.Auth(), f.store, f.opts)
	}
	return NewLeadService(f.client.Leads(), company, f.store, f.opts)
}

func (f *fixture) company() *CompanyService {
	return NewCompanyService(f.client.Auth(), f.store, f.opts)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
}
