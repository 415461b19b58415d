package model

type AgentStatus string

const (
	AgentStatusActive   AgentStatus = "active"
	AgentStatusInactive AgentStatus = "inactive"
)

func (s AgentStatus) Toggle() AgentStatus {
	if s == AgentStatusActive {
		return AgentStatusInactive
	}
	return AgentStatusActive
}

type LeadStatus string

const (
	LeadStatusNew        LeadStatus = "new"
	LeadStatusInProgress LeadStatus = "in_progress"
	LeadStatusDone       LeadStatus = "done"
	LeadStatusStopped    LeadStatus = "stopped"
)

type VerificationState string

const (
	VerificationUnverified VerificationState = "unverified"
	VerificationRequested  VerificationState = "verification_requested"
	VerificationVerified   VerificationState = "verified"
)

type CallStatus string

const (
	CallStatusPending    CallStatus = "pending"
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusFailed     CallStatus = "failed"
)

type UploadState string

const (
	UploadStateUploading    UploadState = "uploading"
	UploadStateTranscribing UploadState = "transcribing"
	UploadStateAnalyzing    UploadState = "analyzing"
	UploadStateCompleted    UploadState = "completed"
	UploadStateFailed       UploadState = "failed"
)

func (s UploadState) Terminal() bool {
	return s == UploadStateCompleted || s == UploadStateFailed
}
