package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"physionomie/internal/domain/therapist"
)

// ErrTherapistNotFound is returned when an update or delete names an unknown
// therapist id.
var ErrTherapistNotFound = errors.New("therapist not found")

// ErrDuplicateEmail is returned when a save would give two roster entries
// the same email. Emails are the login identifier and must stay unique.
var ErrDuplicateEmail = errors.New("email already in use")

// SaveTherapistInput carries input for creating or updating a therapist.
// Passwords are never set through this flow: new therapists get the default
// password, updates keep the stored one.
type SaveTherapistInput struct {
	ID             string // empty for create
	Name           string
	Email          string
	BonusTarget    float64
	RevenuePercent int
}

// SaveTherapistDeps holds dependencies for SaveTherapist.
type SaveTherapistDeps struct {
	Roster     RosterStoreForSeed
	GenerateID func() string
}

// ExecuteSaveTherapist writes a therapist into the roster.
// POST: Created therapists carry the default password; updated ones keep
// their stored password
func ExecuteSaveTherapist(ctx context.Context, input SaveTherapistInput, deps SaveTherapistDeps) (therapist.Therapist, error) {
	tp := therapist.Therapist{
		ID:             input.ID,
		Name:           input.Name,
		Email:          input.Email,
		BonusTarget:    input.BonusTarget,
		RevenuePercent: input.RevenuePercent,
	}
	if tp.ID == "" {
		tp.ID = deps.GenerateID()
		tp.Password = therapist.DefaultPassword
	}
	if err := tp.Validate(); err != nil {
		return therapist.Therapist{}, err
	}

	roster, _, err := deps.Roster.Load(ctx)
	if err != nil {
		return therapist.Therapist{}, err
	}

	for _, other := range roster {
		if other.Email == tp.Email && other.ID != tp.ID {
			return therapist.Therapist{}, ErrDuplicateEmail
		}
	}

	updated := false
	for i := range roster {
		if roster[i].ID == tp.ID {
			tp.Password = roster[i].Password
			roster[i] = tp
			updated = true
			break
		}
	}
	if !updated {
		if input.ID != "" {
			return therapist.Therapist{}, ErrTherapistNotFound
		}
		roster = append(roster, tp)
	}

	if err := deps.Roster.Replace(ctx, roster); err != nil {
		return therapist.Therapist{}, err
	}

	slog.Info("roster_event", "event", "therapist_saved", "id", tp.ID, "email", tp.Email, "updated", updated)
	return tp, nil
}
