// Package session persists the remembered sign-in across restarts.
package session

import (
	"context"

	"physionomie/internal/domain/auth"
)

// Store holds at most one remembered session. Load reports found=false when
// nobody chose to stay signed in; Clear is a no-op when nothing is stored.
type Store interface {
	Load(ctx context.Context) (session auth.Session, found bool, err error)
	Save(ctx context.Context, session auth.Session) error
	Clear(ctx context.Context) error
}
