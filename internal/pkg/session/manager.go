// internal/pkg/session/manager.go
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	xerrors "msm-console/internal/pkg/errors"
	"msm-console/internal/pkg/jwt"
	"msm-console/internal/repository"

	"go.uber.org/zap"
)

type transition struct {
	from, to State
}

// Manager owns the token lifecycle of one workspace. It is the only writer of
// the token keys in the workspace store.
type Manager struct {
	store  repository.LocalStore
	nav    Navigator
	logger *zap.Logger

	mu        sync.Mutex
	state     State
	listeners []Listener
}

func NewManager(store repository.LocalStore, nav Navigator, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		nav:    nav,
		logger: logger,
		state:  StateUnauthenticated,
	}
}

// OnTransition registers a state listener.
func (m *Manager) OnTransition(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Init restores the session on app load. Without a stored token the shell is
// sent to the login route.
func (m *Manager) Init(ctx context.Context) (State, error) {
	token, ok, err := m.store.Get(ctx, repository.KeyToken)
	if err != nil {
		return m.State(), fmt.Errorf("failed to read token: %w", err)
	}

	var fired []transition
	m.mu.Lock()
	if !ok || token == "" {
		fired = append(fired, m.setLocked(StateUnauthenticated)...)
		m.redirectLocked(LoginPath)
	} else {
		fired = append(fired, m.setLocked(StateAuthenticated)...)
	}
	state := m.state
	m.mu.Unlock()

	m.notify(fired)
	return state, nil
}

// Token returns the stored bearer token or "" when absent.
func (m *Manager) Token(ctx context.Context) string {
	return m.read(ctx, repository.KeyToken)
}

// RefreshToken returns the stored refresh token or "" when absent.
func (m *Manager) RefreshToken(ctx context.Context) string {
	return m.read(ctx, repository.KeyRefreshToken)
}

// BeginLogin marks a login request in flight.
func (m *Manager) BeginLogin() {
	m.mu.Lock()
	fired := m.setLocked(StateAuthenticating)
	m.mu.Unlock()
	m.notify(fired)
}

// FailLogin returns to Unauthenticated after a rejected login.
func (m *Manager) FailLogin() {
	m.mu.Lock()
	fired := m.setLocked(StateUnauthenticated)
	m.mu.Unlock()
	m.notify(fired)
}

// CompleteLogin persists the issued tokens and performs the full-page
// navigation to the dashboard root. The refresh token is only stored when
// the backend issued one.
func (m *Manager) CompleteLogin(ctx context.Context, token, refreshToken string) error {
	if token == "" {
		m.FailLogin()
		return xerrors.ErrNoToken
	}

	if err := m.store.Set(ctx, repository.KeyToken, token); err != nil {
		m.FailLogin()
		return fmt.Errorf("failed to store token: %w", err)
	}
	if refreshToken != "" {
		if err := m.store.Set(ctx, repository.KeyRefreshToken, refreshToken); err != nil {
			m.FailLogin()
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}

	m.mu.Lock()
	fired := m.setLocked(StateAuthenticated)
	m.nav.Navigate(HomePath)
	m.mu.Unlock()

	m.notify(fired)
	return nil
}

// ReplaceTokens stores a refreshed token pair without navigating.
func (m *Manager) ReplaceTokens(ctx context.Context, token, refreshToken string) error {
	if token == "" {
		return xerrors.ErrNoToken
	}
	if err := m.store.Set(ctx, repository.KeyToken, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if refreshToken != "" {
		if err := m.store.Set(ctx, repository.KeyRefreshToken, refreshToken); err != nil {
			return fmt.Errorf("failed to store refresh token: %w", err)
		}
	}
	return nil
}

// Expire tears the session down after a 401. The redirect happens at most
// once: when the shell already shows the login route nothing is navigated.
func (m *Manager) Expire(ctx context.Context) {
	if err := m.store.Delete(ctx, repository.KeyToken, repository.KeyRefreshToken, repository.KeyUser); err != nil {
		m.logger.Error("failed to clear session tokens", zap.Error(err))
	}

	m.mu.Lock()
	var fired []transition
	fired = append(fired, m.setLocked(StateExpired)...)
	fired = append(fired, m.setLocked(StateUnauthenticated)...)
	m.redirectLocked(ExpiredLoginPath)
	m.mu.Unlock()

	m.notify(fired)
}

// Logout clears the tokens and sends the shell to the login route.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, repository.KeyToken, repository.KeyRefreshToken); err != nil {
		return fmt.Errorf("failed to clear session tokens: %w", err)
	}

	m.mu.Lock()
	var fired []transition
	fired = append(fired, m.setLocked(StateLoggedOut)...)
	fired = append(fired, m.setLocked(StateUnauthenticated)...)
	m.redirectLocked(LoginPath)
	m.mu.Unlock()

	m.notify(fired)
	return nil
}

// SubjectID decodes the stored token to find the current user id. The
// signature is not checked; the id is only used to look the profile up.
func (m *Manager) SubjectID(ctx context.Context) (string, error) {
	token := m.Token(ctx)
	if token == "" {
		return "", xerrors.ErrNoToken
	}
	return jwt.SubjectID(token)
}

func (m *Manager) read(ctx context.Context, key string) string {
	v, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.Warn("failed to read session key", zap.String("key", key), zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

func (m *Manager) setLocked(to State) []transition {
	if m.state == to {
		return nil
	}
	from := m.state
	m.state = to
	return []transition{{from: from, to: to}}
}

func (m *Manager) redirectLocked(path string) {
	if strings.Contains(m.nav.Location(), LoginPath) {
		return
	}
	m.nav.Navigate(path)
}

func (m *Manager) notify(fired []transition) {
	if len(fired) == 0 {
		return
	}

	m.mu.Lock()
	listeners := append([]Listener(nil), m.listeners...)
	m.mu.Unlock()

	for _, t := range fired {
		m.logger.Debug("session transition", zap.String("from", string(t.from)), zap.String("to", string(t.to)))
		for _, l := range listeners {
			l(t.from, t.to)
		}
	}
}
