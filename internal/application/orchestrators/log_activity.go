package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"physionomie/internal/domain/activity"
)

// LedgerStoreForActivity defines the ledger access needed by the activity
// orchestrators.
type LedgerStoreForActivity interface {
	Load(ctx context.Context) (activity.Ledger, bool, error)
	Replace(ctx context.Context, ledger activity.Ledger) error
}

// LogActivityInput carries input for logging one treatment.
type LogActivityInput struct {
	TherapistID string
	TherapyID   string
	Tier        string
	Date        string // ISO date the activity belongs to
}

// LogActivityDeps holds dependencies for LogActivity.
type LogActivityDeps struct {
	Catalog    CatalogStoreForSeed
	Ledger     LedgerStoreForActivity
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteLogActivity snapshots the therapy at its current catalog state and
// appends the activity to the ledger.
// POST: The stored activity keeps its name, duration and bonus even if the
// therapy is later edited or deleted
func ExecuteLogActivity(ctx context.Context, input LogActivityInput, deps LogActivityDeps) (activity.Activity, error) {
	catalog, _, err := deps.Catalog.Load(ctx)
	if err != nil {
		return activity.Activity{}, err
	}

	idx := -1
	for i := range catalog {
		if catalog[i].ID == input.TherapyID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return activity.Activity{}, ErrTherapyNotFound
	}

	a, err := activity.Snapshot(deps.GenerateID(), catalog[idx], input.Tier, deps.Now())
	if err != nil {
		return activity.Activity{}, err
	}

	ledger, _, err := deps.Ledger.Load(ctx)
	if err != nil {
		return activity.Activity{}, err
	}
	if err := deps.Ledger.Replace(ctx, ledger.Log(input.Date, input.TherapistID, a)); err != nil {
		return activity.Activity{}, err
	}

	slog.Info("ledger_event", "event", "activity_logged",
		"therapist_id", input.TherapistID,
		"therapy_id", input.TherapyID,
		"tier", input.Tier,
		"date", input.Date,
		"bonus", a.Bonus,
	)
	return a, nil
}
