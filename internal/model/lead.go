package model

import "time"

type Lead struct {
	ID            string            `json:"id"`
	AgentID       string            `json:"agentId"`
	FirstName     string            `json:"firstName"`
	Phone         string            `json:"phone"` // E.164
	Status        LeadStatus        `json:"status"`
	CustomFields  map[string]string `json:"customFields,omitempty"`
	ScheduleAt    *time.Time        `json:"scheduleAt,omitempty"`
	AttemptsCount int               `json:"attemptsCount"`
	Disposition   string            `json:"disposition,omitempty"`
	IsVerified    bool              `json:"isVerified"`
	Verification  VerificationState `json:"verification"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

type CreateLeadParams struct {
	AgentID      string            `json:"agent_id"`
	FirstName    string            `json:"first_name"`
	Phone        string            `json:"phone"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	ScheduleAt   *time.Time        `json:"schedule_at,omitempty"`
}

type UpdateLeadParams struct {
	FirstName    *string           `json:"first_name,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	ScheduleAt   *time.Time        `json:"schedule_at,omitempty"`
}

// ImportResult is the outcome of a CSV lead import. RowErrors carries one
// entry per rejected row, as reported by the backend.
type ImportResult struct {
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`
	RowErrors    []RowError `json:"rowErrors,omitempty"`
}

type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// VerificationRequest is the backend's answer to a verification kickoff:
// an OTP was sent to the lead's phone and must be submitted before expiry.
type VerificationRequest struct {
	ID        string    `json:"id"`
	LeadID    string    `json:"leadId"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ScheduleResult reports either a scheduled call or a pending verification
// gate that must be passed before the schedule can proceed.
type ScheduleResult struct {
	Scheduled            bool                 `json:"scheduled"`
	Lead                 *Lead                `json:"lead,omitempty"`
	VerificationRequired bool                 `json:"verificationRequired"`
	Verification         *VerificationRequest `json:"verification,omitempty"`
}
