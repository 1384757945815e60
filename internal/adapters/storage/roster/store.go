// Package roster persists the therapist roster as one JSON document.
package roster

import (
	"context"

	domain "physionomie/internal/domain/therapist"
)

// Store persists the whole roster. Load reports found=false when the roster
// key was never written, which callers use to trigger first-run seeding;
// an empty roster after deletions is found=true with zero entries.
type Store interface {
	Load(ctx context.Context) (therapists []domain.Therapist, found bool, err error)
	Replace(ctx context.Context, therapists []domain.Therapist) error
}
