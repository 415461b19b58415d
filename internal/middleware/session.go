package middleware

import (
	"net/http"
	"time"
)

const (
	SessionCookie = "console_session"
	SessionMaxAge = 24 * time.Hour
)

// CookieValidator is implemented by the session controller.
type CookieValidator interface {
	ValidateCookie(token string) bool
}

// SessionMiddleware guards the console API. Every request must carry the
// session cookie issued at login; anything else is a 401 with a structured
// body the console redirects on.
type SessionMiddleware struct {
	sessions CookieValidator
}

func NewSessionMiddleware(sessions CookieValidator) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" || !m.sessions.ValidateCookie(cookie.Value) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
				"code":  "UNAUTHORIZED",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   SessionCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
