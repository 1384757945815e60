// Package orchestrators contains the write-path use cases. Each Execute
// function takes its input and dependencies explicitly; dependencies are
// narrow interfaces so tests can substitute them.
package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"physionomie/internal/domain/auth"
	"physionomie/internal/domain/therapist"
)

// RosterForLogin defines the roster access needed by Login.
type RosterForLogin interface {
	Load(ctx context.Context) ([]therapist.Therapist, bool, error)
}

// SessionStoreForLogin persists the remembered session.
type SessionStoreForLogin interface {
	Save(ctx context.Context, session auth.Session) error
	Clear(ctx context.Context) error
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Roster        RosterForLogin
	Sessions      SessionStoreForLogin
	Verifier      auth.CredentialVerifier
	AdminEmail    string
	AdminPassword string
}

// ErrInvalidCredentials is returned for any authentication failure. The
// caller never learns whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin checks credentials against the configured admin account and
// the therapist roster, in that order.
// POST: On success returns the session; with RememberMe it is also
// persisted, otherwise any previously remembered session is cleared
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (auth.Session, error) {
	if input.Email == "" || input.Password == "" {
		return auth.Session{}, ErrInvalidCredentials
	}

	sess, err := authenticate(ctx, input, deps)
	if err != nil {
		return auth.Session{}, err
	}

	if input.RememberMe {
		if err := deps.Sessions.Save(ctx, sess); err != nil {
			return auth.Session{}, err
		}
	} else if err := deps.Sessions.Clear(ctx); err != nil {
		return auth.Session{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", input.Email, "role", sess.Role, "remember_me", input.RememberMe)
	return sess, nil
}

func authenticate(ctx context.Context, input LoginInput, deps LoginDeps) (auth.Session, error) {
	if input.Email == deps.AdminEmail {
		if !deps.Verifier.Verify(deps.AdminPassword, input.Password) {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
			return auth.Session{}, ErrInvalidCredentials
		}
		return auth.Session{
			UserID: auth.AdminUserID,
			Name:   "Admin",
			Email:  deps.AdminEmail,
			Role:   auth.RoleAdmin,
		}, nil
	}

	roster, _, err := deps.Roster.Load(ctx)
	if err != nil {
		return auth.Session{}, err
	}
	for _, tp := range roster {
		if tp.Email != input.Email {
			continue
		}
		if !deps.Verifier.Verify(tp.Password, input.Password) {
			slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
			return auth.Session{}, ErrInvalidCredentials
		}
		return auth.Session{
			UserID: tp.ID,
			Name:   tp.Name,
			Email:  tp.Email,
			Role:   auth.RoleTherapist,
		}, nil
	}

	slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "not_found")
	return auth.Session{}, ErrInvalidCredentials
}
