package backend

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

type CallIQAPI struct {
	c *Client
}

func (a *CallIQAPI) Stats(ctx context.Context) (*model.CallIQStats, error) {
	var resp wireCallIQStats
	if err := a.c.get(ctx, "/api/v1/calliq/stats", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (a *CallIQAPI) Calls(ctx context.Context, limit, offset int) ([]model.CallIQCall, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	var resp []wireCallIQCall
	if err := a.c.get(ctx, "/api/v1/calliq/calls", q, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireCallIQCall.toModel), nil
}

func (a *CallIQAPI) Call(ctx context.Context, id string) (*model.CallIQCall, error) {
	var resp wireCallIQCall
	if err := a.c.get(ctx, pathf("/api/v1/calliq/calls/%s", id), nil, &resp); err != nil {
		return nil, err
	}
	call := resp.toModel()
	return &call, nil
}

func (a *CallIQAPI) DeleteCall(ctx context.Context, id string) error {
	return a.c.delete(ctx, pathf("/api/v1/calliq/calls/%s", id))
}

func (a *CallIQAPI) Insights(ctx context.Context, callID string) ([]model.CallIQInsight, error) {
	q := url.Values{}
	if callID != "" {
		q.Set("call_id", callID)
	}
	var resp []wireCallIQInsight
	if err := a.c.get(ctx, "/api/v1/calliq/insights", q, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireCallIQInsight.toModel), nil
}

// Upload sends an audio recording for transcription and analysis. The
// returned status carries the upload id to poll.
func (a *CallIQAPI) Upload(ctx context.Context, title, filename string, file io.Reader, size int64, progress ProgressFunc) (*model.UploadStatus, error) {
	var resp wireUploadStatus
	err := a.c.upload(ctx, "/api/v1/calliq/upload", "audio", filename, file, size,
		map[string]string{"title": title}, progress, &resp)
	if err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

func (a *CallIQAPI) UploadStatus(ctx context.Context, id string) (*model.UploadStatus, error) {
	var resp wireUploadStatus
	if err := a.c.get(ctx, pathf("/api/v1/calliq/uploads/%s", id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// Export streams the CallIQ analytics report as CSV.
func (a *CallIQAPI) Export(ctx context.Context) (io.ReadCloser, error) {
	req, err := a.c.newStreamRequest(ctx, "GET", "/api/v1/calliq/export", nil)
	if err != nil {
		return nil, err
	}
	return a.c.stream(req)
}
