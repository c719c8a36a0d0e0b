// Package session owns the signed-in user and drives login, signup, restore
// and logout against the auth endpoints and the durable token store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/supplykz/supplier-console/client"
	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
)

// ErrSuperseded is returned when a logout or reload happened while an
// operation was in flight; its result was discarded.
var ErrSuperseded = errors.New("session changed while the operation was in flight")

// Authenticator is the subset of services.AuthService the session needs
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Signup(ctx context.Context, req services.SignupRequest) (*models.TokenPair, error)
	CurrentUser(ctx context.Context) (*models.UserResponse, error)
}

// TokenStore is the durable side store the session writes through
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(pair models.TokenPair) error
	SaveUser(user *models.User) error
	User() (*models.User, error)
	ClearSession() error
}

// Snapshot is a consistent read of the session
type Snapshot struct {
	State   State
	User    *models.User
	Loading bool
}

// Manager holds the session state machine
type Manager struct {
	auth   Authenticator
	tokens TokenStore
	logger *zap.Logger

	// opMu serializes Initialize, Login and Signup
	opMu sync.Mutex

	mu      sync.RWMutex
	state   State
	user    *models.User
	loading bool
	epoch   uint64

	refreshes singleflight.Group
}

// NewManager creates an uninitialized session
func NewManager(auth Authenticator, tokens TokenStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		auth:   auth,
		tokens: tokens,
		logger: logger,
		state:  StateUninitialized,
	}
}

// Initialize restores a persisted session once. A stored user and access
// token are only trusted after the backend confirms them; any failure clears
// them. Later calls are no-ops.
func (m *Manager) Initialize(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return nil
	}
	m.state = StateRestoring
	m.loading = true
	epoch := m.epoch
	m.mu.Unlock()

	snapshot, err := m.tokens.User()
	if err != nil {
		m.logger.Warn("discarding unreadable user snapshot", zap.Error(err))
	}
	if snapshot == nil || m.tokens.AccessToken() == "" {
		m.settle(epoch, StateAnonymous, nil)
		return nil
	}

	resp, err := m.auth.CurrentUser(ctx)
	if err != nil {
		m.logger.Info("stored session rejected", zap.Error(err))
		if clearErr := m.tokens.ClearSession(); clearErr != nil {
			m.logger.Error("failed to clear stored session", zap.Error(clearErr))
		}
		m.settle(epoch, StateAnonymous, nil)
		return fmt.Errorf("restore session: %w", err)
	}

	user := models.NewUser(resp)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if m.epoch != epoch {
		return ErrSuperseded
	}
	if err := m.tokens.SaveUser(user); err != nil {
		m.logger.Error("failed to persist user snapshot", zap.Error(err))
	}
	m.state = StateAuthenticated
	m.user = user
	m.logger.Info("session restored", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

// settle finishes an operation unless a logout or reload overtook it
func (m *Manager) settle(epoch uint64, state State, user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if m.epoch != epoch {
		return
	}
	m.state = state
	m.user = user
}

// Login signs in with credentials. On any failure the session and the store
// are left exactly as they were.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, "login", func(ctx context.Context) (*models.TokenPair, error) {
		return m.auth.Login(ctx, email, password)
	})
}

// Signup registers an account and signs it in, with the same failure
// contract as Login.
func (m *Manager) Signup(ctx context.Context, req services.SignupRequest) error {
	return m.authenticate(ctx, "signup", func(ctx context.Context) (*models.TokenPair, error) {
		return m.auth.Signup(ctx, req)
	})
}

func (m *Manager) authenticate(ctx context.Context, op string, exchange func(context.Context) (*models.TokenPair, error)) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.Lock()
	epoch := m.epoch
	m.loading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	pair, err := exchange(ctx)
	if err != nil {
		return err
	}

	// the new token travels with this request only, so a 401 here can
	// neither trigger a refresh nor touch the stored session
	resp, err := m.auth.CurrentUser(client.WithAccessToken(ctx, pair.AccessToken))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	user := models.NewUser(resp)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.epoch != epoch {
		return ErrSuperseded
	}
	prior := m.persisted()
	if err := m.tokens.SetTokens(*pair); err != nil {
		m.restore(prior)
		return fmt.Errorf("%s: persist tokens: %w", op, err)
	}
	if err := m.tokens.SaveUser(user); err != nil {
		m.restore(prior)
		return fmt.Errorf("%s: persist user: %w", op, err)
	}
	m.state = StateAuthenticated
	m.user = user
	m.logger.Info("signed in", zap.String("op", op), zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}

type storedSession struct {
	pair models.TokenPair
	user *models.User
}

func (m *Manager) persisted() storedSession {
	user, err := m.tokens.User()
	if err != nil {
		m.logger.Warn("unreadable user snapshot", zap.Error(err))
	}
	return storedSession{
		pair: models.TokenPair{AccessToken: m.tokens.AccessToken(), RefreshToken: m.tokens.RefreshToken()},
		user: user,
	}
}

// restore puts back the session that was stored before a failed write.
func (m *Manager) restore(prior storedSession) {
	if err := m.tokens.ClearSession(); err != nil {
		m.logger.Error("failed to roll back session", zap.Error(err))
		return
	}
	if prior.pair.AccessToken != "" || prior.pair.RefreshToken != "" {
		if err := m.tokens.SetTokens(prior.pair); err != nil {
			m.logger.Error("failed to restore tokens", zap.Error(err))
		}
	}
	if prior.user != nil {
		if err := m.tokens.SaveUser(prior.user); err != nil {
			m.logger.Error("failed to restore user snapshot", zap.Error(err))
		}
	}
}

// RefreshUser re-fetches the signed-in user. Failures are returned and never
// clear the session; the API client alone decides when a session is over.
func (m *Manager) RefreshUser(ctx context.Context) error {
	m.mu.RLock()
	state, epoch := m.state, m.epoch
	m.mu.RUnlock()
	if state != StateAuthenticated {
		return services.ErrNotAuthenticated
	}

	_, err, _ := m.refreshes.Do(fmt.Sprintf("user-%d", epoch), func() (any, error) {
		resp, err := m.auth.CurrentUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("refresh user: %w", err)
		}
		user := models.NewUser(resp)

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.epoch != epoch {
			return nil, ErrSuperseded
		}
		if err := m.tokens.SaveUser(user); err != nil {
			return nil, fmt.Errorf("refresh user: persist: %w", err)
		}
		m.user = user
		return nil, nil
	})
	return err
}

// Logout clears the in-memory user and every persisted credential. It never
// fails and may be called in any state.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	m.user = nil
	m.state = StateAnonymous
	if err := m.tokens.ClearSession(); err != nil {
		m.logger.Error("failed to clear stored session", zap.Error(err))
	}
	m.logger.Info("signed out")
}

// Reload drops all in-memory state after the API client has ended the
// session. It does not touch the store and may run while another operation
// is in flight; that operation's result is discarded.
func (m *Manager) Reload() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.epoch++
	m.user = nil
	m.loading = false
	m.state = StateAnonymous
	m.logger.Info("session reset")
}

// State returns the current lifecycle state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns a copy of the signed-in user, or nil
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsLoading reports whether an initialize, login or signup is running
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// IsAuthenticated reports whether a user is signed in
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// Snapshot reads state, user and loading together
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := Snapshot{State: m.state, Loading: m.loading}
	if m.user != nil {
		u := *m.user
		snap.User = &u
	}
	return snap
}

// Capabilities resolves the signed-in user's capabilities; empty when signed out
func (m *Manager) Capabilities() permissions.CapabilitySet {
	return permissions.ForUser(m.User())
}

// AccessTokenExpiry reports when the stored access token expires, when it
// carries that information.
func (m *Manager) AccessTokenExpiry() (time.Time, bool) {
	claims, err := models.ParseAccessClaims(m.tokens.AccessToken())
	if err != nil {
		return time.Time{}, false
	}
	return claims.ExpiresAtTime()
}
