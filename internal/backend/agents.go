package backend

import (
	"context"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

type AgentsAPI struct {
	c *Client
}

func (a *AgentsAPI) List(ctx context.Context) ([]model.Agent, error) {
	var resp []wireAgent
	if err := a.c.get(ctx, "/api/v1/agents", nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireAgent.toModel), nil
}

func (a *AgentsAPI) Get(ctx context.Context, id string) (*model.Agent, error) {
	var resp wireAgent
	if err := a.c.get(ctx, pathf("/api/v1/agents/%s", id), nil, &resp); err != nil {
		return nil, err
	}
	agent := resp.toModel()
	return &agent, nil
}

func (a *AgentsAPI) Create(ctx context.Context, params model.CreateAgentParams) (*model.Agent, error) {
	var resp wireAgent
	if err := a.c.post(ctx, "/api/v1/agents", params, &resp); err != nil {
		return nil, err
	}
	agent := resp.toModel()
	return &agent, nil
}

func (a *AgentsAPI) Update(ctx context.Context, id string, params model.UpdateAgentParams) (*model.Agent, error) {
	var resp wireAgent
	if err := a.c.patch(ctx, pathf("/api/v1/agents/%s", id), params, &resp); err != nil {
		return nil, err
	}
	agent := resp.toModel()
	return &agent, nil
}

func (a *AgentsAPI) Delete(ctx context.Context, id string) error {
	return a.c.delete(ctx, pathf("/api/v1/agents/%s", id))
}

type setStatusRequest struct {
	Status model.AgentStatus `json:"status"`
}

func (a *AgentsAPI) SetStatus(ctx context.Context, id string, status model.AgentStatus) (*model.Agent, error) {
	var resp wireAgent
	if err := a.c.post(ctx, pathf("/api/v1/agents/%s/status", id), setStatusRequest{Status: status}, &resp); err != nil {
		return nil, err
	}
	agent := resp.toModel()
	return &agent, nil
}

func (a *AgentsAPI) Voices(ctx context.Context) ([]model.Voice, error) {
	var resp []wireVoice
	if err := a.c.get(ctx, "/api/v1/agents/voices", nil, &resp); err != nil {
		return nil, err
	}
	return mapSlice(resp, wireVoice.toModel), nil
}

type generateRequest struct {
	URL    string `json:"url,omitempty"`
	Prompt string `json:"prompt,omitempty"`
}

type generateResponse struct {
	Content string `json:"content"`
}

// GenerateFromWebsite asks the backend to draft an agent prompt from a
// company website.
func (a *AgentsAPI) GenerateFromWebsite(ctx context.Context, websiteURL string) (string, error) {
	var resp generateResponse
	if err := a.c.post(ctx, "/api/v1/agents/generate/website", generateRequest{URL: websiteURL}, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (a *AgentsAPI) GenerateFAQ(ctx context.Context, prompt string) (string, error) {
	var resp generateResponse
	if err := a.c.post(ctx, "/api/v1/agents/generate/faq", generateRequest{Prompt: prompt}, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (a *AgentsAPI) GenerateTasks(ctx context.Context, prompt string) (string, error) {
	var resp generateResponse
	if err := a.c.post(ctx, "/api/v1/agents/generate/tasks", generateRequest{Prompt: prompt}, &resp); err != nil {
		return "", err
	}
	return resp.Content, nil
}
