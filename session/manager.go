// Package session owns the process-wide authentication state. The state has
// an explicit lifecycle — uninitialized, hydrating, then authenticated or
// anonymous — reached only through Load, Establish and Clear. Nothing else
// mutates it.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"aura/models"
)

// State is the session lifecycle phase.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Manager holds the current session and implements client.TokenSource, so the
// API client reads tokens from here and writes rotations back through it.
type Manager struct {
	store Store
	log   *zap.Logger

	mu      sync.RWMutex
	state   State
	account Account
	access  string
	refresh string
}

// NewManager returns an uninitialized Manager backed by the given store.
func NewManager(store Store, log *zap.Logger) *Manager {
	return &Manager{store: store, log: log, state: StateUninitialized}
}

// Load hydrates the session from the store. Called once on startup; ends in
// StateAuthenticated or StateAnonymous.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateHydrating
	m.mu.Unlock()

	snap, err := m.store.Load(ctx)
	if err != nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.mu.Unlock()
		if err == ErrNoSession {
			return nil
		}
		return err
	}

	if exp, ok := tokenExpiry(snap.AccessToken); ok && time.Now().After(exp) {
		m.log.Debug("stored access token is expired, refresh will be attempted on first call",
			zap.Time("expiredAt", exp))
	}

	m.mu.Lock()
	m.account = snap.Account
	m.access = snap.AccessToken
	m.refresh = snap.RefreshToken
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

// Establish records a fresh login or registration.
func (m *Manager) Establish(ctx context.Context, res *models.LoginResponse) error {
	role, ok := models.ParseRole(res.Role)
	if !ok {
		return fmt.Errorf("session: unknown role %q", res.Role)
	}
	account := Account{
		ID:        res.UserID,
		Email:     res.Email,
		FirstName: res.FirstName,
		LastName:  res.LastName,
		Phone:     res.Phone,
		Role:      role,
	}

	if claimRole, ok := tokenRole(res.Token); ok && claimRole != role {
		m.log.Warn("token role claim disagrees with login response",
			zap.String("claim", string(claimRole)),
			zap.String("response", string(role)))
	}

	snap := &Snapshot{AccessToken: res.Token, RefreshToken: res.RefreshToken, Account: account}
	if err := m.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("session: persist: %w", err)
	}

	m.mu.Lock()
	m.account = account
	m.access = res.Token
	m.refresh = res.RefreshToken
	m.state = StateAuthenticated
	m.mu.Unlock()
	return nil
}

// State returns the lifecycle phase.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Current returns the authenticated account, if any.
func (m *Manager) Current() (Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.account, m.state == StateAuthenticated
}

// Tokens implements client.TokenSource.
func (m *Manager) Tokens() (string, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, m.refresh
}

// Update implements client.TokenSource: the API client rotated the pair after
// a refresh.
func (m *Manager) Update(access, refresh string) {
	m.mu.Lock()
	m.access = access
	if refresh != "" {
		m.refresh = refresh
	}
	snap := &Snapshot{AccessToken: m.access, RefreshToken: m.refresh, Account: m.account}
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.store.Save(ctx, snap); err != nil {
		m.log.Warn("failed to persist rotated tokens", zap.Error(err))
	}
}

// Clear implements client.TokenSource and doubles as logout teardown: wipes
// memory and the store and drops to anonymous.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.account = Account{}
	m.access = ""
	m.refresh = ""
	m.state = StateAnonymous
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.store.Delete(ctx); err != nil {
		m.log.Warn("failed to delete stored session", zap.Error(err))
	}
}
