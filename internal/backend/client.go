// Package backend holds the typed HTTP adapters for the VoiceAI REST API.
// Adapters translate requests and responses only: no caching, no retries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/config"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
)

const maxErrorBody = 64 << 10

// TokenSource supplies the bearer token attached to authenticated requests.
// Implementations may refresh expired tokens before returning.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	uploads *http.Client
	tokens  TokenSource

	auth    *AuthAPI
	agents  *AgentsAPI
	leads   *LeadsAPI
	calls   *CallsAPI
	calliq  *CallIQAPI
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: config.BackendRequestTimeout},
		uploads: &http.Client{Timeout: config.BackendUploadTimeout},
		tokens:  tokens,
	}
	c.auth = &AuthAPI{c}
	c.agents = &AgentsAPI{c}
	c.leads = &LeadsAPI{c}
	c.calls = &CallsAPI{c}
	c.calliq = &CallIQAPI{c}
	return c
}

// SetTokenSource breaks the construction cycle between the client and the
// session controller: the controller needs the auth adapter, the client
// needs the controller for tokens.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

func (c *Client) Auth() *AuthAPI     { return c.auth }
func (c *Client) Agents() *AgentsAPI { return c.agents }
func (c *Client) Leads() *LeadsAPI   { return c.leads }
func (c *Client) Calls() *CallsAPI   { return c.calls }
func (c *Client) CallIQ() *CallIQAPI { return c.calliq }

type reqOpts struct {
	query  url.Values
	noAuth bool
}

// do builds the request, attaches the bearer token when available, executes
// it and decodes the response. Non-2xx responses become typed errors with
// the backend's message.
func (c *Client) do(ctx context.Context, method, path string, opts reqOpts, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "encode request", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, opts.query), reader)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "build request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if err := c.authorize(ctx, req, opts.noAuth); err != nil {
		return err
	}

	return c.execute(c.http, req, out)
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) authorize(ctx context.Context, req *http.Request, noAuth bool) error {
	if noAuth || c.tokens == nil {
		return nil
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) execute(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", req.Method).Str("url", req.URL.Path).Msg("backend request failed")
		return apperrors.Network(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Debug().
			Str("method", req.Method).
			Str("url", req.URL.Path).
			Int("status", resp.StatusCode).
			Msg("backend returned error")
		return apperrors.FromResponse(resp.StatusCode, body)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeBackend, "decode response", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, reqOpts{query: query}, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, reqOpts{}, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, reqOpts{}, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, reqOpts{}, nil, nil)
}

// newStreamRequest builds an authorized request whose response body the
// caller will consume directly, e.g. a CSV export.
func (c *Client) newStreamRequest(ctx context.Context, method, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "build request", err)
	}
	if err := c.authorize(ctx, req, false); err != nil {
		return nil, err
	}
	return req, nil
}

func (c *Client) stream(req *http.Request) (io.ReadCloser, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, apperrors.FromResponse(resp.StatusCode, body)
	}
	return resp.Body, nil
}

func pathf(format string, args ...any) string {
	escaped := make([]any, len(args))
	for i, arg := range args {
		escaped[i] = url.PathEscape(fmt.Sprint(arg))
	}
	return fmt.Sprintf(format, escaped...)
}
