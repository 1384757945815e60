package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"physionomie/internal/domain/pricing"
	"physionomie/internal/domain/therapy"
)

// ErrTherapyNotFound is returned when an update or delete names an unknown
// therapy id.
var ErrTherapyNotFound = errors.New("therapy not found")

// SaveTherapyInput carries input for creating or updating a therapy.
// BasePrice is the statutory-tier price; the other two tiers are derived,
// never supplied by the caller.
type SaveTherapyInput struct {
	ID          string // empty for create
	Name        string
	DurationMin int
	Category    string
	BasePrice   float64
}

// SaveTherapyDeps holds dependencies for SaveTherapy.
type SaveTherapyDeps struct {
	Catalog    CatalogStoreForSeed
	GenerateID func() string
}

// ExecuteSaveTherapy derives the bonus table from the base price and writes
// the therapy into the catalog.
// POST: The stored therapy carries all three tier prices; previously logged
// activities keep their snapshot bonuses
func ExecuteSaveTherapy(ctx context.Context, input SaveTherapyInput, deps SaveTherapyDeps) (therapy.Therapy, error) {
	if input.BasePrice < 0 {
		return therapy.Therapy{}, therapy.ErrNegativeBasePrice
	}

	th := therapy.Therapy{
		ID:          input.ID,
		Name:        input.Name,
		DurationMin: input.DurationMin,
		Category:    input.Category,
		Bonuses:     pricing.DeriveBonusTable(input.BasePrice),
	}
	if th.ID == "" {
		th.ID = deps.GenerateID()
	}
	if err := th.Validate(); err != nil {
		return therapy.Therapy{}, err
	}

	catalog, _, err := deps.Catalog.Load(ctx)
	if err != nil {
		return therapy.Therapy{}, err
	}

	updated := false
	for i := range catalog {
		if catalog[i].ID == th.ID {
			catalog[i] = th
			updated = true
			break
		}
	}
	if !updated {
		if input.ID != "" {
			return therapy.Therapy{}, ErrTherapyNotFound
		}
		catalog = append(catalog, th)
	}

	if err := deps.Catalog.Replace(ctx, catalog); err != nil {
		return therapy.Therapy{}, err
	}

	slog.Info("catalog_event", "event", "therapy_saved", "id", th.ID, "name", th.Name, "updated", updated)
	return th, nil
}
