package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CompanyID *string   `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Onboarded reports whether the user already belongs to a company.
func (u *User) Onboarded() bool {
	return u.CompanyID != nil && *u.CompanyID != ""
}

type Company struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Website               string    `json:"website,omitempty"`
	RequireVerifiedLeads  bool      `json:"requireVerifiedLeads"`
	CreatedAt             time.Time `json:"createdAt"`
}

type OnboardingParams struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	UseCase     string `json:"use_case,omitempty"`
}

type APIKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	Key       string     `json:"key,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	LastUsed  *time.Time `json:"lastUsed,omitempty"`
}
