// Package ledger persists the activity ledger as one JSON document keyed by
// date and therapist id.
package ledger

import (
	"context"

	"physionomie/internal/domain/activity"
)

// Store persists the whole ledger. Load reports found=false when no activity
// was ever logged; callers treat that the same as an empty ledger.
type Store interface {
	Load(ctx context.Context) (ledger activity.Ledger, found bool, err error)
	Replace(ctx context.Context, ledger activity.Ledger) error
}
