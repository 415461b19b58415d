package model

import "time"

type CallIQStats struct {
	TotalCalls     int     `json:"totalCalls"`
	AnalyzedCalls  int     `json:"analyzedCalls"`
	AvgScore       float64 `json:"avgScore"`
	AvgTalkRatio   float64 `json:"avgTalkRatio"`
	TopObjection   string  `json:"topObjection,omitempty"`
}

type CallIQCall struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	State      UploadState `json:"state"`
	Score      *float64    `json:"score,omitempty"`
	DurationMS int64       `json:"durationMs"`
	Summary    string      `json:"summary,omitempty"`
	UploadedAt time.Time   `json:"uploadedAt"`
}

type CallIQInsight struct {
	ID       string `json:"id"`
	CallID   string `json:"callId"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// UploadStatus is one observation of the backend's processing pipeline for
// an uploaded recording.
type UploadStatus struct {
	ID    string      `json:"id"`
	State UploadState `json:"state"`
	Error string      `json:"error,omitempty"`
}
