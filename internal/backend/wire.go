package backend

import (
	"time"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
)

// The backend speaks snake_case; the console speaks camelCase. The wire
// structs below are the backend's shapes, converted to model types at the
// adapter boundary.

type wireUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CompanyID *string   `json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (w wireUser) toModel() *model.User {
	return &model.User{
		ID:        w.ID,
		Email:     w.Email,
		Name:      w.Name,
		CompanyID: w.CompanyID,
		CreatedAt: w.CreatedAt,
	}
}

type wireCompany struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Website              string    `json:"website"`
	RequireVerifiedLeads bool      `json:"require_verified_leads"`
	CreatedAt            time.Time `json:"created_at"`
}

func (w wireCompany) toModel() *model.Company {
	return &model.Company{
		ID:                   w.ID,
		Name:                 w.Name,
		Website:              w.Website,
		RequireVerifiedLeads: w.RequireVerifiedLeads,
		CreatedAt:            w.CreatedAt,
	}
}

type wireSession struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func (w wireSession) toModel() *model.Session {
	s := &model.Session{
		AccessToken:  w.AccessToken,
		RefreshToken: w.RefreshToken,
	}
	if w.ExpiresAt != nil {
		s.ExpiresAt = *w.ExpiresAt
	}
	return s
}

type wireAPIKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	Key       string     `json:"key"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used"`
}

func (w wireAPIKey) toModel() model.APIKey {
	return model.APIKey{
		ID:        w.ID,
		Name:      w.Name,
		Prefix:    w.Prefix,
		Key:       w.Key,
		CreatedAt: w.CreatedAt,
		LastUsed:  w.LastUsed,
	}
}

type wireAgent struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Status         model.AgentStatus     `json:"status"`
	Prompt         string                `json:"prompt"`
	WelcomeMessage string                `json:"welcome_message"`
	VoiceID        string                `json:"voice_id"`
	Variables      map[string]string     `json:"variables"`
	Functions      []model.AgentFunction `json:"functions"`
	Region         string                `json:"region"`
	PhoneNumbers   []string              `json:"phone_numbers"`
	RetryPolicy    *model.RetryPolicy    `json:"retry_policy"`
	BusinessHours  *model.BusinessHours  `json:"business_hours"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

func (w wireAgent) toModel() model.Agent {
	return model.Agent{
		ID:             w.ID,
		Name:           w.Name,
		Status:         w.Status,
		Prompt:         w.Prompt,
		WelcomeMessage: w.WelcomeMessage,
		VoiceID:        w.VoiceID,
		Variables:      w.Variables,
		Functions:      w.Functions,
		Region:         w.Region,
		PhoneNumbers:   w.PhoneNumbers,
		RetryPolicy:    w.RetryPolicy,
		BusinessHours:  w.BusinessHours,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

type wireVoice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender"`
	Preview  string `json:"preview_url"`
}

func (w wireVoice) toModel() model.Voice {
	return model.Voice{ID: w.ID, Name: w.Name, Language: w.Language, Gender: w.Gender, Preview: w.Preview}
}

type wireLead struct {
	ID            string                  `json:"id"`
	AgentID       string                  `json:"agent_id"`
	FirstName     string                  `json:"first_name"`
	Phone         string                  `json:"phone"`
	Status        model.LeadStatus        `json:"status"`
	CustomFields  map[string]string       `json:"custom_fields"`
	ScheduleAt    *time.Time              `json:"schedule_at"`
	AttemptsCount int                     `json:"attempts_count"`
	Disposition   string                  `json:"disposition"`
	IsVerified    bool                    `json:"is_verified"`
	Verification  model.VerificationState `json:"verification_state"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func (w wireLead) toModel() model.Lead {
	verification := w.Verification
	if verification == "" {
		verification = model.VerificationUnverified
		if w.IsVerified {
			verification = model.VerificationVerified
		}
	}
	return model.Lead{
		ID:            w.ID,
		AgentID:       w.AgentID,
		FirstName:     w.FirstName,
		Phone:         w.Phone,
		Status:        w.Status,
		CustomFields:  w.CustomFields,
		ScheduleAt:    w.ScheduleAt,
		AttemptsCount: w.AttemptsCount,
		Disposition:   w.Disposition,
		IsVerified:    w.IsVerified,
		Verification:  verification,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

type wireRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

type wireImportResult struct {
	SuccessCount int            `json:"success_count"`
	ErrorCount   int            `json:"error_count"`
	Errors       []wireRowError `json:"errors"`
}

func (w wireImportResult) toModel() *model.ImportResult {
	result := &model.ImportResult{
		SuccessCount: w.SuccessCount,
		ErrorCount:   w.ErrorCount,
	}
	for _, e := range w.Errors {
		result.RowErrors = append(result.RowErrors, model.RowError{
			Row:     e.Row,
			Field:   e.Field,
			Message: e.Message,
		})
	}
	return result
}

type wireVerification struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"lead_id"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (w wireVerification) toModel() *model.VerificationRequest {
	return &model.VerificationRequest{
		ID:        w.ID,
		LeadID:    w.LeadID,
		Message:   w.Message,
		ExpiresAt: w.ExpiresAt,
	}
}

type wireCall struct {
	ID         string           `json:"id"`
	LeadID     string           `json:"lead_id"`
	AgentID    string           `json:"agent_id"`
	Status     model.CallStatus `json:"status"`
	Outcome    string           `json:"outcome"`
	DurationMS int64            `json:"duration_ms"`
	Transcript string           `json:"transcript_url"`
	Summary    string           `json:"summary"`
	StartedAt  *time.Time       `json:"started_at"`
	EndedAt    *time.Time       `json:"ended_at"`
	CreatedAt  time.Time        `json:"created_at"`
}

func (w wireCall) toModel() model.CallRecord {
	return model.CallRecord{
		ID:         w.ID,
		LeadID:     w.LeadID,
		AgentID:    w.AgentID,
		Status:     w.Status,
		Outcome:    w.Outcome,
		DurationMS: w.DurationMS,
		Transcript: w.Transcript,
		Summary:    w.Summary,
		StartedAt:  w.StartedAt,
		EndedAt:    w.EndedAt,
		CreatedAt:  w.CreatedAt,
	}
}

type wireCallMetrics struct {
	TotalCalls     int     `json:"total_calls"`
	CompletedCalls int     `json:"completed_calls"`
	FailedCalls    int     `json:"failed_calls"`
	AvgDurationSec float64 `json:"avg_duration_sec"`
	ConnectRate    float64 `json:"connect_rate"`
}

func (w wireCallMetrics) toModel() *model.CallMetrics {
	return &model.CallMetrics{
		TotalCalls:     w.TotalCalls,
		CompletedCalls: w.CompletedCalls,
		FailedCalls:    w.FailedCalls,
		AvgDurationSec: w.AvgDurationSec,
		ConnectRate:    w.ConnectRate,
	}
}

type wireCallIQStats struct {
	TotalCalls    int     `json:"total_calls"`
	AnalyzedCalls int     `json:"analyzed_calls"`
	AvgScore      float64 `json:"avg_score"`
	AvgTalkRatio  float64 `json:"avg_talk_ratio"`
	TopObjection  string  `json:"top_objection"`
}

func (w wireCallIQStats) toModel() *model.CallIQStats {
	return &model.CallIQStats{
		TotalCalls:    w.TotalCalls,
		AnalyzedCalls: w.AnalyzedCalls,
		AvgScore:      w.AvgScore,
		AvgTalkRatio:  w.AvgTalkRatio,
		TopObjection:  w.TopObjection,
	}
}

type wireCallIQCall struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	State      model.UploadState `json:"state"`
	Score      *float64          `json:"score"`
	DurationMS int64             `json:"duration_ms"`
	Summary    string            `json:"summary"`
	UploadedAt time.Time         `json:"uploaded_at"`
}

func (w wireCallIQCall) toModel() model.CallIQCall {
	return model.CallIQCall{
		ID:         w.ID,
		Title:      w.Title,
		State:      w.State,
		Score:      w.Score,
		DurationMS: w.DurationMS,
		Summary:    w.Summary,
		UploadedAt: w.UploadedAt,
	}
}

type wireCallIQInsight struct {
	ID       string `json:"id"`
	CallID   string `json:"call_id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

func (w wireCallIQInsight) toModel() model.CallIQInsight {
	return model.CallIQInsight{ID: w.ID, CallID: w.CallID, Category: w.Category, Text: w.Text}
}

type wireUploadStatus struct {
	ID    string            `json:"id"`
	State model.UploadState `json:"state"`
	Error string            `json:"error"`
}

func (w wireUploadStatus) toModel() *model.UploadStatus {
	return &model.UploadStatus{ID: w.ID, State: w.State, Error: w.Error}
}

func mapSlice[W any, M any](items []W, convert func(W) M) []M {
	out := make([]M, len(items))
	for i, item := range items {
		out[i] = convert(item)
	}
	return out
}
