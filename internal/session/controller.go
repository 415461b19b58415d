// Package session owns the login/logout/refresh lifecycle of the backend
// session and the console's own browser cookie. One controller per process.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/backend"
	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/model"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/tokenstore"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/util"
)

type Controller struct {
	auth      *backend.AuthAPI
	store     *tokenstore.Store
	secret    string
	threshold time.Duration
	now       func() time.Time

	mu         sync.RWMutex
	session    *model.Session
	user       *model.User
	cookieHash string

	// refreshMu serializes token refreshes so concurrent callers trigger
	// exactly one backend call.
	refreshMu sync.Mutex
}

func NewController(auth *backend.AuthAPI, store *tokenstore.Store, secret string, threshold time.Duration) *Controller {
	return &Controller{
		auth:      auth,
		store:     store,
		secret:    secret,
		threshold: threshold,
		now:       time.Now,
	}
}

// Restore loads the persisted session and profile on boot. An expired
// persisted session is kept: the next authenticated read refreshes it.
func (c *Controller) Restore() {
	session, err := c.store.LoadSession()
	if err != nil {
		log.Warn().Err(err).Msg("failed to restore persisted session")
		return
	}
	user, err := c.store.LoadUser()
	if err != nil {
		log.Warn().Err(err).Msg("failed to restore persisted profile")
		return
	}
	if session == nil || user == nil {
		return
	}

	c.mu.Lock()
	c.session = session
	c.user = user
	c.mu.Unlock()
	log.Info().Str("email", user.Email).Msg("session restored")
}

// Login exchanges a credential for a backend session, fetches the profile
// and reports whether onboarding is already complete. On any failure the
// previous session, if any, is left untouched. The returned token is the
// console's own browser cookie value.
func (c *Controller) Login(ctx context.Context, cred model.Credential) (onboarded bool, cookieToken string, err error) {
	session, err := c.auth.Login(ctx, cred)
	if err != nil {
		return false, "", err
	}
	fillExpiry(session)

	c.mu.Lock()
	prevSession, prevUser := c.session, c.user
	c.session = session
	c.mu.Unlock()

	user, err := c.auth.Me(ctx)
	if err != nil {
		c.mu.Lock()
		c.session, c.user = prevSession, prevUser
		c.mu.Unlock()
		return false, "", err
	}

	token, err := util.GenerateToken()
	if err != nil {
		c.mu.Lock()
		c.session, c.user = prevSession, prevUser
		c.mu.Unlock()
		return false, "", apperrors.Wrap(apperrors.ErrCodeInternal, "generate session token", err)
	}

	c.mu.Lock()
	c.user = user
	c.cookieHash = util.HmacSHA256(c.secret, token)
	c.mu.Unlock()

	if err := c.store.SaveSession(session); err != nil {
		log.Warn().Err(err).Msg("failed to persist session")
	}
	if err := c.store.SaveUser(user); err != nil {
		log.Warn().Err(err).Msg("failed to persist profile")
	}

	log.Info().Str("email", user.Email).Bool("onboarded", user.Onboarded()).Msg("signed in")
	return user.Onboarded(), token, nil
}

// Logout best-effort invalidates the backend session and unconditionally
// clears local state.
func (c *Controller) Logout(ctx context.Context) {
	if c.Authenticated() {
		if err := c.auth.Logout(ctx); err != nil {
			log.Warn().Err(err).Msg("backend logout failed, clearing local session anyway")
		}
	}
	c.teardown()
	log.Info().Msg("signed out")
}

// ValidateCookie checks a console session cookie value.
func (c *Controller) ValidateCookie(token string) bool {
	c.mu.RLock()
	hash := c.cookieHash
	c.mu.RUnlock()
	if hash == "" || token == "" {
		return false
	}
	return util.ConstantTimeEqual(hash, util.HmacSHA256(c.secret, token))
}

func (c *Controller) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil
}

func (c *Controller) CurrentUser() *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Token implements backend.TokenSource. An expired access token is
// refreshed before the read proceeds; a failed refresh tears the session
// down so the caller sees a clean auth error.
func (c *Controller) Token(ctx context.Context) (string, error) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()

	if session == nil {
		return "", apperrors.Unauthorized("Not signed in")
	}
	if session.Expired(c.now()) {
		if err := c.RefreshTokens(ctx); err != nil {
			return "", err
		}
		c.mu.RLock()
		session = c.session
		c.mu.RUnlock()
		if session == nil {
			return "", apperrors.TokenExpired()
		}
	}
	return session.AccessToken, nil
}

// RefreshTokens exchanges the refresh token for a new pair. Failure is
// terminal: the session is torn down and the user is logged out.
func (c *Controller) RefreshTokens(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session == nil {
		return apperrors.Unauthorized("Not signed in")
	}
	// A concurrent caller may have refreshed while we waited on refreshMu.
	if !session.Expired(c.now()) && !session.ExpiringWithin(c.now(), c.threshold) {
		return nil
	}

	fresh, err := c.auth.Refresh(ctx, session.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("token refresh failed, tearing down session")
		c.teardown()
		return apperrors.TokenExpired().WithCause(err)
	}
	fillExpiry(fresh)
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = session.RefreshToken
	}

	c.mu.Lock()
	c.session = fresh
	c.mu.Unlock()

	if err := c.store.SaveSession(fresh); err != nil {
		log.Warn().Err(err).Msg("failed to persist refreshed session")
	}
	log.Debug().Time("expiresAt", fresh.ExpiresAt).Msg("tokens refreshed")
	return nil
}

// CheckRefresh is the periodic probe: refresh proactively when expiry is
// inside the threshold. No-op when signed out.
func (c *Controller) CheckRefresh(ctx context.Context) {
	c.mu.RLock()
	session := c.session
	c.mu.RUnlock()
	if session == nil {
		return
	}
	if !session.ExpiringWithin(c.now(), c.threshold) {
		return
	}
	if err := c.RefreshTokens(ctx); err != nil {
		log.Warn().Err(err).Msg("proactive token refresh failed")
	}
}

// CompleteOnboarding creates the company and refreshes the cached profile.
func (c *Controller) CompleteOnboarding(ctx context.Context, params model.OnboardingParams) (*model.Company, error) {
	company, err := c.auth.CompleteOnboarding(ctx, params)
	if err != nil {
		return nil, err
	}

	user, err := c.auth.Me(ctx)
	if err == nil {
		c.mu.Lock()
		c.user = user
		c.mu.Unlock()
		if err := c.store.SaveUser(user); err != nil {
			log.Warn().Err(err).Msg("failed to persist profile")
		}
	}
	return company, nil
}

func (c *Controller) teardown() {
	c.mu.Lock()
	c.session = nil
	c.user = nil
	c.cookieHash = ""
	c.mu.Unlock()
	if err := c.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("failed to clear persisted session")
	}
}

func fillExpiry(session *model.Session) {
	if !session.ExpiresAt.IsZero() {
		return
	}
	if exp, ok := tokenstore.ExpiryFromToken(session.AccessToken); ok {
		session.ExpiresAt = exp
	}
}
