package errors

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	genericMessage        = "Something went wrong. Please try again."
	invalidRequestMessage = "Invalid request. Please refresh and try again."
)

// backendBody covers the error envelope shapes the backend is known to use.
type backendBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Code    string `json:"code"`
}

// FromResponse translates a non-2xx backend response into a typed error.
// The backend message is passed through largely verbatim after sanitization;
// an unparseable body falls back to a generic message.
func FromResponse(status int, body []byte) *AppError {
	var parsed backendBody
	message := ""
	code := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		message = firstNonEmpty(parsed.Error, parsed.Message, parsed.Detail)
		code = parsed.Code
	}
	if message == "" {
		message = genericMessage
	}
	message = Sanitize(message)

	switch status {
	case http.StatusUnauthorized:
		return New(ErrCodeUnauthorized, message)
	case http.StatusForbidden:
		return New(ErrCodeForbidden, message)
	case http.StatusNotFound:
		return New(ErrCodeNotFound, message)
	case http.StatusConflict:
		return New(ErrCodeConflict, message)
	case http.StatusTooManyRequests:
		return New(ErrCodeRateLimitExceeded, message)
	}

	if status >= 400 && status < 500 {
		// The backend signals the verification gate with a structured code
		// when it has one; older deployments only put it in the message.
		if code == string(ErrCodeVerificationRequired) || MentionsVerificationRequired(message) {
			return New(ErrCodeVerificationRequired, message)
		}
		if code == string(ErrCodeVerificationExpired) {
			return New(ErrCodeVerificationExpired, message)
		}
		if code == string(ErrCodeInvalidCode) {
			return New(ErrCodeInvalidCode, message)
		}
		return New(ErrCodeValidation, message)
	}

	return Backend(status, message)
}

// MentionsVerificationRequired is the legacy fallback for backends that
// report the verification gate only as free text. TODO: drop once every
// environment returns the VERIFICATION_REQUIRED code.
func MentionsVerificationRequired(message string) bool {
	return strings.Contains(strings.ToLower(message), "must be verified")
}

// Sanitize replaces backend messages that leak internals with user-facing
// equivalents. Database/driver text becomes a generic retry message;
// identifier-format complaints become an invalid-request message.
func Sanitize(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "pq:"),
		strings.Contains(lower, "sql:"),
		strings.Contains(lower, "sqlstate"),
		strings.Contains(lower, "duplicate key"),
		strings.Contains(lower, "constraint"),
		strings.Contains(lower, "deadlock"):
		return genericMessage
	case strings.Contains(lower, "objectid"),
		strings.Contains(lower, "invalid uuid"),
		strings.Contains(lower, "invalid input syntax"),
		strings.Contains(lower, "malformed id"):
		return invalidRequestMessage
	}
	return message
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
