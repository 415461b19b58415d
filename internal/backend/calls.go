package backend

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

type CallsAPI struct {
	c *Client
}

func callQuery(f model.CallFilter) url.Values {
	q := url.Values{}
	if f.AgentID != "" {
		q.Set("agent_id", f.AgentID)
	}
	if f.LeadID != "" {
		q.Set("lead_id", f.LeadID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.From != nil {
		q.Set("from", f.From.Format(time.RFC3339))
	}
	if f.To != nil {
		q.Set("to", f.To.Format(time.RFC3339))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

func (a *CallsAPI) History(ctx context.Context, filter model.CallFilter) ([]model.CallRecord, error) {
	var resp []wireCall
	if err := a.c.get(ctx, "/api/v1/calls", callQuery(filter), &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireCall.toModel), nil
}

func (a *CallsAPI) Get(ctx context.Context, id string) (*model.CallRecord, error) {
	var resp wireCall
	if err := a.c.get(ctx, pathf("/api/v1/calls/%s", id), nil, &resp); err != nil {
		return nil, err
	}
	call := resp.toModel()
	return &call, nil
}

func (a *CallsAPI) Metrics(ctx context.Context, filter model.CallFilter) (*model.CallMetrics, error) {
	var resp wireCallMetrics
	if err := a.c.get(ctx, "/api/v1/calls/metrics", callQuery(filter), &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

type scheduleCallRequest struct {
	LeadID string `json:"lead_id"`
}

func (a *CallsAPI) Schedule(ctx context.Context, leadID string) (*model.CallRecord, error) {
	var resp wireCall
	if err := a.c.post(ctx, "/api/v1/calls/schedule", scheduleCallRequest{LeadID: leadID}, &resp); err != nil {
		return nil, err
	}
	call := resp.toModel()
	return &call, nil
}

func (a *CallsAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, pathf("/api/v1/calls/%s", id))
}

// Export streams the call history as CSV. The caller owns the reader.
func (a *CallsAPI) Export(ctx context.Context, filter model.CallFilter) (io.ReadCloser, error) {
	req, err := a.c.newStreamRequest(ctx, "GET", "/api/v1/calls/export", callQuery(filter))
	if err != nil {
		return nil, err
	}
	return a.c.stream(req)
}
