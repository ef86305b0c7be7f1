// Package services contains the application services of the task CLI:
// authentication/session management and the task collection store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"taskapp/internal/client/api"
	"taskapp/internal/client/repositories/session"
	"taskapp/internal/dbx"
	"taskapp/internal/logging"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 3
	passwordMaxLen = 20
)

// AuthService owns the session lifecycle.
//
// Contract:
//   - Register: create an account on the server; does not establish a session.
//   - Login: authenticate and install the access token; the session is set
//     exactly once per process in the happy path and never cleared.
//   - IsAuthenticated: pure query of session state.
//   - Username: display name of the logged-in user, "" while anonymous.
type AuthService interface {
	Register(ctx context.Context, username string, email string, password string) error
	Login(ctx context.Context, username string, password string) error
	IsAuthenticated() bool
	Username() string
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by the remote Client and a
// local SQL database holding the session for the lifetime of the client.
type authService struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	mu       sync.RWMutex
	token    string
	username string
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client api.Client, db *sql.DB, log logging.Logger) AuthService {
	return &authService{client: client, db: db, log: log.With("component", "auth")}
}

// validateRegistration applies the advisory client-side checks; the server
// remains the authority.
func validateRegistration(username, email, password string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("%w: username must be %d-%d characters", api.ErrValidation, usernameMinLen, usernameMaxLen)
	}
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return fmt.Errorf("%w: password must be %d-%d characters", api.ErrValidation, passwordMinLen, passwordMaxLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: invalid email address", api.ErrValidation)
	}
	return nil
}

// Register creates a new account on the server. A conflict is surfaced as
// api.ErrUserAlreadyExists; any other failure is a generic registration
// failure. Success does not log the user in.
func (a *authService) Register(ctx context.Context, username string, email string, password string) error {
	if err := validateRegistration(username, email, password); err != nil {
		return err
	}

	if err := a.client.Register(ctx, username, email, password); err != nil {
		if errors.Is(err, api.ErrUserAlreadyExists) {
			return err
		}
		return fmt.Errorf("registration failed: %w", err)
	}

	a.log.Info(ctx, "user registered", "username", username)
	return nil
}

// Login authenticates against the server and stores the session. Rejected
// credentials are surfaced as api.ErrInvalidCredentials; any other failure is
// a generic login failure. On failure no session state changes.
func (a *authService) Login(ctx context.Context, username string, password string) error {
	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return err
		}
		return fmt.Errorf("login failed: %w", err)
	}

	name := usernameFromToken(token, username)

	if err := a.saveSession(ctx, token, name); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.mu.Lock()
	a.token = token
	a.username = name
	a.mu.Unlock()

	a.log.Info(ctx, "login successful", "username", name)
	return nil
}

// saveSession persists token and username in a single transaction.
func (a *authService) saveSession(ctx context.Context, token string, username string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, session.KeyAccessToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyUsername, username)
	})
}

func (a *authService) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != ""
}

func (a *authService) Username() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.username
}

// Close releases the underlying client and the session database.
func (a *authService) Close(ctx context.Context) error {
	return errors.Join(a.client.Close(), a.db.Close())
}

// usernameFromToken extracts the subject claim from the access token for
// display purposes. The token is not verified here; the server is the only
// party that validates it. Falls back to the name the user logged in with.
func usernameFromToken(token string, fallback string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fallback
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	return fallback
}
