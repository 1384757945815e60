// Package catalog persists the therapy catalog as one JSON document.
package catalog

import (
	"context"

	domain "physionomie/internal/domain/therapy"
)

// Store persists the whole catalog. Load reports found=false when the
// catalog key was never written; callers seed the default catalog then.
type Store interface {
	Load(ctx context.Context) (therapies []domain.Therapy, found bool, err error)
	Replace(ctx context.Context, therapies []domain.Therapy) error
}
