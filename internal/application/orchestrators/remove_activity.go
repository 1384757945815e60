package orchestrators

import (
	"context"
	"log/slog"
)

// RemoveActivityInput identifies one logged activity.
type RemoveActivityInput struct {
	TherapistID string
	ActivityID  string
	Date        string
}

// RemoveActivityDeps holds dependencies for RemoveActivity.
type RemoveActivityDeps struct {
	Ledger LedgerStoreForActivity
}

// ExecuteRemoveActivity drops the activity from the ledger. Removing an
// activity that is already gone succeeds silently.
func ExecuteRemoveActivity(ctx context.Context, input RemoveActivityInput, deps RemoveActivityDeps) error {
	ledger, _, err := deps.Ledger.Load(ctx)
	if err != nil {
		return err
	}

	next := ledger.Remove(input.Date, input.TherapistID, input.ActivityID)
	if err := deps.Ledger.Replace(ctx, next); err != nil {
		return err
	}

	slog.Info("ledger_event", "event", "activity_removed",
		"therapist_id", input.TherapistID,
		"activity_id", input.ActivityID,
		"date", input.Date,
	)
	return nil
}
