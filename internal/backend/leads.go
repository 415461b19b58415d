package backend

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

type LeadsAPI struct {
	c *Client
}

type LeadFilter struct {
	AgentID string
	Status  model.LeadStatus
	Limit   int
	Offset  int
}

func (f LeadFilter) query() url.Values {
	q := url.Values{}
	if f.AgentID != "" {
		q.Set("agent_id", f.AgentID)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	return q
}

func (l *LeadsAPI) List(ctx context.Context, filter LeadFilter) ([]model.Lead, error) {
	var resp []wireLead
	if err := l.c.get(ctx, "/api/v1/leads", filter.query(), &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireLead.toModel), nil
}

func (l *LeadsAPI) Get(ctx context.Context, id string) (*model.Lead, error) {
	var resp wireLead
	if err := l.c.get(ctx, pathf("/api/v1/leads/%s", id), nil, &resp); err != nil {
		return nil, err
	}
	lead := resp.toModel()
	return &lead, nil
}

func (l *LeadsAPI) Create(ctx context.Context, params model.CreateLeadParams) (*model.Lead, error) {
	var resp wireLead
	if err := l.c.post(ctx, "/api/v1/leads", params, &resp); err != nil {
		return nil, err
	}
	lead := resp.toModel()
	return &lead, nil
}

func (l *LeadsAPI) Update(ctx context.Context, id string, params model.UpdateLeadParams) (*model.Lead, error) {
	var resp wireLead
	if err := l.c.patch(ctx, pathf("/api/v1/leads/%s", id), params, &resp); err != nil {
		return nil, err
	}
	lead := resp.toModel()
	return &lead, nil
}

func (l *LeadsAPI) Delete(ctx context.Context, id string) error {
	return l.c.delete(ctx, pathf("/api/v1/leads/%s", id))
}

// Import uploads a CSV of leads for an agent. The backend parses the file
// and reports per-row failures; partial success is normal.
func (l *LeadsAPI) Import(ctx context.Context, agentID, filename string, file io.Reader, size int64, progress ProgressFunc) (*model.ImportResult, error) {
	var resp wireImportResult
	err := l.c.upload(ctx, "/api/v1/leads/import", "file", filename, file, size,
		map[string]string{"agent_id": agentID}, progress, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (l *LeadsAPI) Schedule(ctx context.Context, id string) (*model.Lead, error) {
	var resp wireLead
	if err := l.c.post(ctx, pathf("/api/v1/leads/%s/schedule", id), nil, &resp); err != nil {
		return nil, err
	}
	lead := resp.toModel()
	return &lead, nil
}

func (l *LeadsAPI) Stop(ctx context.Context, id string) (*model.Lead, error) {
	var resp wireLead
	if err := l.c.post(ctx, pathf("/api/v1/leads/%s/stop", id), nil, &resp); err != nil {
		return nil, err
	}
	lead := resp.toModel()
	return &lead, nil
}

// RequestVerification starts the OTP flow for a lead.
func (l *LeadsAPI) RequestVerification(ctx context.Context, id string) (*model.VerificationRequest, error) {
	var resp wireVerification
	if err := l.c.post(ctx, pathf("/api/v1/leads/%s/verify", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

type confirmVerificationRequest struct {
	VerificationID string `json:"verification_id"`
	Code           string `json:"code"`
}

// ConfirmVerification submits the OTP. The backend answers with the updated
// lead on success and a typed error (expired / invalid code) otherwise.
func (l *LeadsAPI) ConfirmVerification(ctx context.Context, id, verificationID, code string) (*model.Lead, error) {
	var resp wireLead
	err := l.c.post(ctx, pathf("/api/v1/leads/%s/verify/confirm", id), confirmVerificationRequest{
		VerificationID: verificationID,
		Code:           code,
	}, &resp)
	if err != nil {
		return nil, err
	}
	lead := resp.toModel()
	return &lead, nil
}
