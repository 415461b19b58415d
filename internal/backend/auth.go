package backend

import (
	"context"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

type AuthAPI struct {
	c *Client
}

type loginRequest struct {
	Email      string `json:"email,omitempty"`
	OAuthToken string `json:"oauth_token,omitempty"`
}

// Login exchanges a credential for a token pair. Dev-mode sends an email,
// production sends the Google sign-in token. Never attaches a bearer token.
func (a *AuthAPI) Login(ctx context.Context, cred model.Credential) (*model.Session, error) {
	var resp wireSession
	err := a.c.do(ctx, "POST", "/api/v1/auth/login", reqOpts{noAuth: true}, loginRequest{
		Email:      cred.Email,
		OAuthToken: cred.OAuthToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	var resp wireSession
	err := a.c.do(ctx, "POST", "/api/v1/auth/refresh", reqOpts{noAuth: true}, refreshRequest{
		RefreshToken: refreshToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// Logout invalidates the refresh token server-side. Best effort only; the
// caller clears local state regardless.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.c.post(ctx, "/api/v1/auth/logout", nil, nil)
}

func (a *AuthAPI) Me(ctx context.Context) (*model.User, error) {
	var resp wireUser
	if err := a.c.get(ctx, "/api/v1/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (a *AuthAPI) Company(ctx context.Context) (*model.Company, error) {
	var resp wireCompany
	if err := a.c.get(ctx, "/api/v1/auth/company", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (a *AuthAPI) CompleteOnboarding(ctx context.Context, params model.OnboardingParams) (*model.Company, error) {
	var resp wireCompany
	if err := a.c.post(ctx, "/api/v1/auth/onboarding", params, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (a *AuthAPI) ListAPIKeys(ctx context.Context) ([]model.APIKey, error) {
	var resp []wireAPIKey
	if err := a.c.get(ctx, "/api/v1/auth/api-keys", nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireAPIKey.toModel), nil
}

type createAPIKeyRequest struct {
	Name string `json:"name"`
}

func (a *AuthAPI) CreateAPIKey(ctx context.Context, name string) (*model.APIKey, error) {
	var resp wireAPIKey
	if err := a.c.post(ctx, "/api/v1/auth/api-keys", createAPIKeyRequest{Name: name}, &resp); err != nil {
		return nil, err
	}
	key := resp.toModel()
	return &key, nil
}

func (a *AuthAPI) RevokeAPIKey(ctx context.Context, id string) error {
	return a.c.delete(ctx, pathf("/api/v1/auth/api-keys/%s", id))
}
