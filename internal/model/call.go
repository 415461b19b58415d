package model

import "time"

type CallRecord struct {
	ID         string     `json:"id"`
	LeadID     string     `json:"leadId"`
	AgentID    string     `json:"agentId"`
	Status     CallStatus `json:"status"`
	Outcome    string     `json:"outcome,omitempty"`
	DurationMS int64      `json:"durationMs"`
	Transcript string     `json:"transcript,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type CallMetrics struct {
	TotalCalls     int     `json:"totalCalls"`
	CompletedCalls int     `json:"completedCalls"`
	FailedCalls    int     `json:"failedCalls"`
	AvgDurationSec float64 `json:"avgDurationSec"`
	ConnectRate    float64 `json:"connectRate"`
}

type CallFilter struct {
	AgentID string
	LeadID  string
	Status  CallStatus
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}
