package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"promptbase/internal/domain/models"
)

// Manager tracks the current authenticated identity and notifies listeners
// when it changes. Session changes are the trigger for full data reloads
// downstream.
type Manager struct {
	verifier TokenVerifier
	client   *Client
	logger   *slog.Logger

	mu        sync.Mutex
	current   *models.Session
	listeners []func(*models.Session)
}

// NewManager creates a manager with no active session. client may be nil for
// hosts that only ever receive pre-verified tokens.
func NewManager(verifier TokenVerifier, client *Client, logger *slog.Logger) *Manager {
	return &Manager{
		verifier: verifier,
		client:   client,
		logger:   logger,
	}
}

// Current returns the active session, or nil for anonymous viewers.
func (m *Manager) Current() *models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// OnChange registers a callback invoked after every session transition,
// including sign-out (called with nil).
func (m *Manager) OnChange(fn func(*models.Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SignInWithToken verifies an access token obtained from an external auth
// flow and establishes the session.
func (m *Manager) SignInWithToken(ctx context.Context, accessToken string) (*models.Session, error) {
	claims, err := m.verifier.VerifyToken(accessToken)
	if err != nil {
		return nil, err
	}
	session := claims.Session(accessToken)
	m.logger.Info("session established", "user_id", session.UserID)
	m.set(session)
	return session, nil
}

// SignInWithPassword performs the password grant and establishes the
// session. Used by dev tooling; production clients sign in through the
// hosted OAuth flow and call SignInWithToken.
func (m *Manager) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	if m.client == nil {
		return nil, errors.New("password sign-in requires an auth client")
	}
	token, err := m.client.PasswordGrant(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.SignInWithToken(ctx, token.AccessToken)
}

// Resume establishes a session whose token was already verified at the
// host's edge (for example by HTTP middleware), without re-verifying it.
func (m *Manager) Resume(session *models.Session) {
	m.set(session)
}

// SignOut ends the session. Token revocation is best effort; the local
// session is cleared regardless.
func (m *Manager) SignOut(ctx context.Context) {
	current := m.Current()
	if current == nil {
		return
	}
	if m.client != nil {
		if err := m.client.Logout(ctx, current.AccessToken); err != nil {
			m.logger.Warn("token revocation failed", "error", err)
		}
	}
	m.logger.Info("session ended", "user_id", current.UserID)
	m.set(nil)
}

func (m *Manager) set(session *models.Session) {
	m.mu.Lock()
	m.current = session
	listeners := make([]func(*models.Session), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}
