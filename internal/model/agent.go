package model

import "time"

type Agent struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Status         AgentStatus       `json:"status"`
	Prompt         string            `json:"prompt"`
	WelcomeMessage string            `json:"welcomeMessage"`
	VoiceID        string            `json:"voiceId"`
	Variables      map[string]string `json:"variables,omitempty"`
	Functions      []AgentFunction   `json:"functions,omitempty"`
	Region         string            `json:"region,omitempty"`
	PhoneNumbers   []string          `json:"phoneNumbers,omitempty"`
	RetryPolicy    *RetryPolicy      `json:"retryPolicy,omitempty"`
	BusinessHours  *BusinessHours    `json:"businessHours,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type AgentFunction struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type RetryPolicy struct {
	MaxAttempts  int `json:"maxAttempts"`
	RetryAfterMin int `json:"retryAfterMin"`
}

type BusinessHours struct {
	Timezone string `json:"timezone"`
	Start    string `json:"start"` // HH:MM
	End      string `json:"end"`   // HH:MM
	Days     []int  `json:"days,omitempty"`
}

type CreateAgentParams struct {
	Name           string            `json:"name"`
	Prompt         string            `json:"prompt"`
	WelcomeMessage string            `json:"welcome_message"`
	VoiceID        string            `json:"voice_id"`
	Variables      map[string]string `json:"variables,omitempty"`
	Functions      []AgentFunction   `json:"functions,omitempty"`
	Region         string            `json:"region,omitempty"`
	RetryPolicy    *RetryPolicy      `json:"retry_policy,omitempty"`
	BusinessHours  *BusinessHours    `json:"business_hours,omitempty"`
}

type UpdateAgentParams struct {
	Name           *string           `json:"name,omitempty"`
	Prompt         *string           `json:"prompt,omitempty"`
	WelcomeMessage *string           `json:"welcome_message,omitempty"`
	VoiceID        *string           `json:"voice_id,omitempty"`
	Variables      map[string]string `json:"variables,omitempty"`
	Functions      []AgentFunction   `json:"functions,omitempty"`
	RetryPolicy    *RetryPolicy      `json:"retry_policy,omitempty"`
	BusinessHours  *BusinessHours    `json:"business_hours,omitempty"`
}

type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
	Gender   string `json:"gender,omitempty"`
	Preview  string `json:"preview,omitempty"`
}
