// Package state holds the client-side auth and task state machines.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskboard/app/client"
	"taskboard/app/logging"
	"taskboard/app/models"
)

// AuthStatus is the phase of the auth machine.
type AuthStatus int

const (
	Anonymous AuthStatus = iota
	Authenticating
	Authenticated
	Failed
)

func (s AuthStatus) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "error"
	}
	return "anonymous"
}

// AuthState is a snapshot of the auth machine. Username is the session user;
// a failed attempt keeps whatever session existed before it.
type AuthState struct {
	Status   AuthStatus
	Username string
	Error    string
}

// AuthAPI is the part of the backend the auth machine calls.
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// SessionStore persists the current session.
type SessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, sess models.Session) error
	Clear(ctx context.Context) error
}

// Auth tracks who is logged in on this client.
type Auth struct {
	api      AuthAPI
	sessions SessionStore
	log      *logging.Logger

	mu sync.Mutex
	st AuthState
}

// NewAuth starts authenticated if a session was persisted, anonymous otherwise.
func NewAuth(ctx context.Context, api AuthAPI, sessions SessionStore, log *logging.Logger) (*Auth, error) {
	a := &Auth{api: api, sessions: sessions, log: log}
	sess, err := sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		a.st = AuthState{Status: Authenticated, Username: sess.Username}
	}
	return a, nil
}

// State returns the current snapshot.
func (a *Auth) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.st
}

// Register creates an account and logs it in.
func (a *Auth) Register(ctx context.Context, username, email, password string) error {
	a.begin()
	_, err := a.api.Register(ctx, models.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return a.fail(err, "Registration failed")
	}
	return a.succeed(ctx, username)
}

// Login authenticates with username and password.
func (a *Auth) Login(ctx context.Context, username, password string) error {
	a.begin()
	name, err := a.api.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return a.fail(err, "Login failed")
	}
	return a.succeed(ctx, name)
}

// Logout forgets the session, in memory and on disk.
func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.st = AuthState{Status: Anonymous}
	a.mu.Unlock()
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *Auth) begin() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.st.Status = Authenticating
	a.st.Error = ""
}

func (a *Auth) succeed(ctx context.Context, username string) error {
	if err := a.sessions.Save(ctx, models.Session{Username: username}); err != nil {
		return a.fail(fmt.Errorf("save session: %w", err), "")
	}
	a.mu.Lock()
	a.st = AuthState{Status: Authenticated, Username: username}
	a.mu.Unlock()
	a.log.Debugf("authenticated as %q", username)
	return nil
}

func (a *Auth) fail(err error, fallback string) error {
	msg := rejectionMessage(err, fallback)
	a.mu.Lock()
	a.st.Status = Failed
	a.st.Error = msg
	a.mu.Unlock()
	return err
}

// rejectionMessage prefers the message sent by the backend.
func rejectionMessage(err error, fallback string) string {
	var apiErr *client.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
