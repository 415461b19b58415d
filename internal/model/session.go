package model

import "time"

// Session holds the backend token pair for the signed-in admin. The persisted
// copy in the token store is a cache of this, never the source of truth.
type Session struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// ExpiringWithin reports whether the access token expires inside the window.
func (s *Session) ExpiringWithin(now time.Time, window time.Duration) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now.Add(window))
}

type Credential struct {
	// Email is set for dev-mode login.
	Email string `json:"email,omitempty"`
	// OAuthToken is the Google sign-in token otherwise.
	OAuthToken string `json:"oauth_token,omitempty"`
}
