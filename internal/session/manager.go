package session

import (
	"context"
	"sync"

	"github.com/andray-nkhatel/meeting-room-frontend/internal/models"
	"github.com/andray-nkhatel/meeting-room-frontend/pkg/metrics"
)

// AuthAPI is the slice of the upstream client the session manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
}

// Manager owns the in-memory session state for one browser session. It
// hydrates from the persisted store exactly once, at construction, and keeps
// the in-memory user in lockstep with what the store would load.
type Manager struct {
	store *Store
	api   AuthAPI

	mu          sync.RWMutex
	currentUser *models.UserProfile
	loading     bool
}

// NewManager constructs a manager and hydrates it from the store.
func NewManager(store *Store, api AuthAPI) *Manager {
	m := &Manager{
		store:   store,
		api:     api,
		loading: true,
	}
	m.hydrate()
	return m
}

// hydrate performs the one-time Hydrating -> Ready transition.
func (m *Manager) hydrate() {
	user := m.store.Load()

	m.mu.Lock()
	m.currentUser = user
	m.loading = false
	m.mu.Unlock()
}

// Login authenticates against the upstream API. On success the profile is
// built from exactly the four identity fields of the response, persisted,
// and set as the current user; the returned response carries it under User.
// On failure nothing changes.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:   resp.UserID,
		Username: resp.Username,
		FullName: resp.FullName,
		IsAdmin:  resp.IsAdmin,
	}

	if err := m.store.Save(resp.Token, profile); err != nil {
		metrics.Logins.WithLabelValues("error").Inc()
		return nil, err
	}

	m.mu.Lock()
	m.currentUser = profile
	m.mu.Unlock()

	resp.User = profile
	metrics.Logins.WithLabelValues("success").Inc()
	return resp, nil
}

// Register creates an account upstream and starts a session from the
// returned token and profile. On failure nothing changes.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	resp, err := m.api.Register(ctx, req)
	if err != nil {
		metrics.Registrations.WithLabelValues("error").Inc()
		return nil, err
	}

	if resp.Token != "" && resp.User != nil {
		if err := m.store.Save(resp.Token, resp.User); err != nil {
			metrics.Registrations.WithLabelValues("error").Inc()
			return nil, err
		}

		m.mu.Lock()
		m.currentUser = resp.User
		m.mu.Unlock()
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	return resp, nil
}

// Logout clears the persisted session and the in-memory user. It has no
// network effect and is safe to call repeatedly.
func (m *Manager) Logout() {
	m.store.Clear()

	m.mu.Lock()
	m.currentUser = nil
	m.mu.Unlock()
}

// CurrentUser returns the in-memory user, or nil when not logged in.
// Callers must check Loading before trusting the result.
func (m *Manager) CurrentUser() *models.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentUser
}

// Loading reports whether the manager is still hydrating from storage.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// IsLoggedIn reports whether a current user exists.
func (m *Manager) IsLoggedIn() bool {
	return m.CurrentUser() != nil
}

// IsAdmin reports whether the current user exists and is an administrator.
func (m *Manager) IsAdmin() bool {
	user := m.CurrentUser()
	return user != nil && user.IsAdmin
}
