// Package session holds the signed-in state of the terminal client.
//
// The access token itself lives only in the credential store; Manager reads
// it from there on every question and caches nothing but the user profile.
// One Manager is built at startup and handed to every screen that needs it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/recetario/internal/client/api"
	"github.com/dmitrijs2005/recetario/internal/client/models"
	"github.com/dmitrijs2005/recetario/internal/client/storage"
	"github.com/dmitrijs2005/recetario/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Messages shown when the backend gives no detail of its own.
const (
	DefaultLoginError    = "Invalid credentials"
	DefaultRegisterError = "Registration failed"
	saveSessionError     = "Could not save session"
)

// AuthAPI is the slice of the backend client the session uses.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*models.Token, error)
	Register(ctx context.Context, in models.RegisterInput) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Navigator moves the client to another screen.
type Navigator interface {
	Push(ctx context.Context, path string) error
}

// Result reports the outcome of Login and Register in a form screens can
// show directly.
type Result struct {
	Success bool
	Error   string
}

type Manager struct {
	api   AuthAPI
	store storage.TokenStore
	nav   Navigator
	log   logging.Logger

	mu   sync.RWMutex
	user *models.User
}

func NewManager(client AuthAPI, store storage.TokenStore, nav Navigator, log logging.Logger) *Manager {
	return &Manager{
		api:   client,
		store: store,
		nav:   nav,
		log:   log.With("component", "session"),
	}
}

// Login exchanges the credentials for a token, stores it and loads the
// profile. A profile that fails to load does not turn a successful login
// into a failure.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	tok, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.log.Error(ctx, "login failed", "username", username, "error", err)
		return Result{Error: detailOr(err, DefaultLoginError)}
	}
	if tok == nil || tok.AccessToken == "" {
		m.log.Error(ctx, "login returned no token", "username", username)
		return Result{Error: DefaultLoginError}
	}

	if err := m.store.SetToken(ctx, tok.AccessToken); err != nil {
		m.log.Error(ctx, "failed to store token", "error", err)
		return Result{Error: saveSessionError}
	}

	m.LoadUser(ctx)
	m.log.Info(ctx, "logged in", "username", username)
	return Result{Success: true}
}

// Register creates the account and, on success, logs straight in with the
// same credentials; the result is that of the login.
func (m *Manager) Register(ctx context.Context, username, email, password string) Result {
	_, err := m.api.Register(ctx, models.RegisterInput{Username: username, Email: email, Password: password})
	if err != nil {
		m.log.Error(ctx, "register failed", "username", username, "error", err)
		return Result{Error: detailOr(err, DefaultRegisterError)}
	}
	return m.Login(ctx, username, password)
}

// Logout forgets the token and the profile and shows the login screen.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.ClearToken(ctx); err != nil {
		m.log.Error(ctx, "failed to clear token", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	if err := m.nav.Push(ctx, api.LoginPath); err != nil {
		m.log.Error(ctx, "failed to navigate to login", "error", err)
	}
}

// LoadUser refreshes the cached profile. Without a token the cache is
// emptied. A 401 logs the user out; any other failure is logged and the
// cache is left as it was.
func (m *Manager) LoadUser(ctx context.Context) {
	token := m.store.Token()
	if token == "" {
		m.setUser(nil)
		return
	}

	u, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Error(ctx, "failed to load user", "error", err)
		if errors.Is(err, api.ErrUnauthorized) {
			m.Logout(ctx)
		}
		return
	}

	// A logout or another login may have happened while the request was in
	// flight; the profile only belongs to the token it was fetched with.
	if m.store.Token() != token {
		return
	}
	m.setUser(u)
}

// IsAuthenticated reports whether a token is held right now.
func (m *Manager) IsAuthenticated() bool {
	return m.store.Token() != ""
}

// User is the cached profile, or nil.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// ExpiresAt reads the expiry claim of the held token for display. The
// signature is not verified; the backend remains the authority.
func (m *Manager) ExpiresAt() (time.Time, bool) {
	token := m.store.Token()
	if token == "" {
		return time.Time{}, false
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (m *Manager) setUser(u *models.User) {
	m.mu.Lock()
	m.user = u
	m.mu.Unlock()
}

func detailOr(err error, fallback string) string {
	if d := api.Detail(err); d != "" {
		return d
	}
	return fallback
}
