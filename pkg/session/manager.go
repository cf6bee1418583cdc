package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/integron/console/pkg/gateway"
	"github.com/integron/console/pkg/models"
)

// AuthAPI is the slice of the gateway the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*gateway.AuthResponse, error)
	Signup(ctx context.Context, form gateway.SignupRequest) (*gateway.AuthResponse, error)
}

// Manager owns the session. It is the only component allowed to set or
// clear the credential; everything else observes it through Token and
// Authenticated. Manager implements gateway.TokenSource.
type Manager struct {
	store  Store
	logger *slog.Logger

	mu    sync.RWMutex
	api   AuthAPI
	token string
	user  *models.User
}

// NewManager restores any persisted session from the store. A store that
// cannot be read leaves the manager signed out.
func NewManager(store Store, logger *slog.Logger) *Manager {
	m := &Manager{
		store:  store,
		logger: logger,
	}

	token, user, err := store.Load()
	if err != nil {
		logger.Warn("Failed to restore persisted session", "error", err)

		return m
	}

	m.token = token
	m.user = user

	return m
}

// Attach wires the auth API. Deferred from construction because the
// gateway itself is built with the manager as its token source.
func (m *Manager) Attach(api AuthAPI) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.api = api
}

// Token implements gateway.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

// Authenticated reports whether a credential is present. It performs no I/O.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// Current returns a copy of the signed-in profile, or nil.
func (m *Manager) Current() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil
	}

	user := *m.user

	return &user
}

// Login authenticates against the service. On success the credential and
// profile are committed to memory and durable storage; on failure the
// transport error propagates unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.RLock()
	api := m.api
	m.mu.RUnlock()

	auth, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	return m.commit(auth)
}

// Signup creates an account and signs it in.
func (m *Manager) Signup(ctx context.Context, form gateway.SignupRequest) error {
	m.mu.RLock()
	api := m.api
	m.mu.RUnlock()

	auth, err := api.Signup(ctx, form)
	if err != nil {
		return err
	}

	return m.commit(auth)
}

// Logout clears the in-memory and durable session. It never calls the
// remote service.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("Failed to clear persisted session", "error", err)
	}
}

func (m *Manager) commit(auth *gateway.AuthResponse) error {
	m.mu.Lock()
	m.token = auth.Token
	user := auth.User
	m.user = &user
	m.mu.Unlock()

	if err := m.store.Save(auth.Token, &user); err != nil {
		m.logger.Warn("Failed to persist session", "error", err)
	}

	return nil
}
