package orchestrators

import (
	"context"
	"log/slog"
)

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionStoreForLogin
}

// ExecuteLogout drops the remembered session.
// POST: No session survives a restart; clearing an absent session is fine
func ExecuteLogout(ctx context.Context, deps LogoutDeps) error {
	if err := deps.Sessions.Clear(ctx); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
