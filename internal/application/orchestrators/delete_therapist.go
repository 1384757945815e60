package orchestrators

import (
	"context"
	"log/slog"
)

// DeleteTherapistDeps holds dependencies for DeleteTherapist.
type DeleteTherapistDeps struct {
	Roster RosterStoreForSeed
}

// ExecuteDeleteTherapist removes a therapist from the roster. Their logged
// activities stay in the ledger but no longer appear in analytics, which
// only ranks roster members.
func ExecuteDeleteTherapist(ctx context.Context, id string, deps DeleteTherapistDeps) error {
	roster, _, err := deps.Roster.Load(ctx)
	if err != nil {
		return err
	}

	kept := roster[:0]
	for _, tp := range roster {
		if tp.ID != id {
			kept = append(kept, tp)
		}
	}
	if len(kept) == len(roster) {
		return ErrTherapistNotFound
	}

	if err := deps.Roster.Replace(ctx, kept); err != nil {
		return err
	}
	slog.Info("roster_event", "event", "therapist_deleted", "id", id)
	return nil
}
