package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

type staticValidator string

func (v staticValidator) ValidateCookie(token string) bool { return token == string(v) }

func TestSessionMiddleware(t *testing.T) {
	handler := NewSessionMiddleware(staticValidator("good-token")).Handler(okHandler())

	t.Run("missing cookie is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/agents", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
	})

	t.Run("wrong cookie is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/agents", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid cookie passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/agents", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestMemoryLoginLimiter(t *testing.T) {
	t.Run("blocks after max attempts in window", func(t *testing.T) {
		l := NewMemoryLoginLimiter()
		for i := 0; i < loginMaxAttempts; i++ {
			assert.True(t, l.allow("1.2.3.4"), "attempt %d should pass", i+1)
		}
		assert.False(t, l.allow("1.2.3.4"))
	})

	t.Run("other clients are unaffected", func(t *testing.T) {
		l := NewMemoryLoginLimiter()
		for i := 0; i < loginMaxAttempts+1; i++ {
			l.allow("1.2.3.4")
		}
		assert.True(t, l.allow("5.6.7.8"))
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		l := NewMemoryLoginLimiter()
		for i := 0; i < loginMaxAttempts; i++ {
			l.allow("1.2.3.4")
		}
		l.mu.Lock()
		l.attempts["1.2.3.4"].windowStart = time.Now().Add(-2 * loginWindowDuration)
		l.mu.Unlock()
		assert.True(t, l.allow("1.2.3.4"))
	})
}

func TestLoginRateLimitHandler(t *testing.T) {
	limiter := NewMemoryLoginLimiter()
	handler := LoginRateLimit(limiter)(okHandler())

	var lastCode int
	for i := 0; i < loginMaxAttempts+1; i++ {
		req := httptest.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestCSRFMiddleware(t *testing.T) {
	handler := NewCSRFMiddleware(false).Handler(okHandler())

	t.Run("GET without cookie sets one and passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/agents", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		var found bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == CSRFCookieName && c.Value != "" {
				found = true
			}
		}
		assert.True(t, found, "csrf cookie should be set")
	})

	t.Run("POST without header is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/agents", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("POST with mismatched header is forbidden", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/agents", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		req.Header.Set(CSRFHeaderName, "other")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("POST with matching header passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/agents", nil)
		req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
		req.Header.Set(CSRFHeaderName, "tok")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestBodyLimitMiddleware(t *testing.T) {
	handler := NewBodyLimitMiddleware(10).Handler(okHandler())

	t.Run("oversized declared body rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/leads", nil)
		req.ContentLength = 100
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("small body passes", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/leads", nil)
		req.ContentLength = 5
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestSessionCookieHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", true)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}
