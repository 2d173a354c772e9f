package session

import (
	"context"
	"fmt"
	"strings"

	"soundhive/internal/models"
	"soundhive/internal/shared"
)

// CatalogAuth is the slice of the catalog API the authenticator needs.
type CatalogAuth interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) error
}

// Authenticator runs the sign-up and sign-in flows against the catalog API
// and keeps the session store in sync.
//
// Only sign-in persists a session. Sign-up creates the account and leaves
// the user signed out so they sign in explicitly.
type Authenticator struct {
	api   CatalogAuth
	store Store
}

// NewAuthenticator wires an authenticator to the given API client and store.
func NewAuthenticator(api CatalogAuth, store Store) *Authenticator {
	return &Authenticator{api: api, store: store}
}

// SignIn authenticates with email and password, persisting the resulting
// session on success.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}

	user, err := a.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	s := Session{Username: user.Username, Email: user.Email}
	if err := a.store.Set(s); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &s, nil
}

// SignUp registers a new account. The session store is left untouched.
func (a *Authenticator) SignUp(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return fmt.Errorf("%w: username, email, and password are required", shared.ErrInvalidInput)
	}

	user := models.User{Username: username, Email: email, Password: password}
	if err := a.api.CreateUser(ctx, user); err != nil {
		return err
	}

	return nil
}

// SignOut clears the persisted session.
func (a *Authenticator) SignOut() error {
	return a.store.Clear()
}

// Current returns the persisted session, nil when signed out.
func (a *Authenticator) Current() (*Session, error) {
	return a.store.Current()
}
