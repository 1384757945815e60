package orchestrators

import (
	"context"
	"log/slog"

	"physionomie/internal/domain/pricing"
	"physionomie/internal/domain/therapist"
	"physionomie/internal/domain/therapy"
)

// RosterStoreForSeed defines the roster access needed by Seed.
type RosterStoreForSeed interface {
	Load(ctx context.Context) ([]therapist.Therapist, bool, error)
	Replace(ctx context.Context, therapists []therapist.Therapist) error
}

// CatalogStoreForSeed defines the catalog access needed by Seed.
type CatalogStoreForSeed interface {
	Load(ctx context.Context) ([]therapy.Therapy, bool, error)
	Replace(ctx context.Context, therapies []therapy.Therapy) error
}

// SeedDeps holds dependencies for Seed.
type SeedDeps struct {
	Roster  RosterStoreForSeed
	Catalog CatalogStoreForSeed
}

// ExecuteSeed writes the default catalog and roster on first run. A key that
// was written before, even to an emptied collection, is left alone.
// POST: Both keys exist; repeated runs change nothing
func ExecuteSeed(ctx context.Context, deps SeedDeps) error {
	_, found, err := deps.Catalog.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		if err := deps.Catalog.Replace(ctx, defaultCatalog()); err != nil {
			return err
		}
		slog.Info("seed", "collection", "catalog", "count", len(defaultCatalog()))
	}

	_, found, err = deps.Roster.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		if err := deps.Roster.Replace(ctx, defaultRoster()); err != nil {
			return err
		}
		slog.Info("seed", "collection", "roster", "count", len(defaultRoster()))
	}

	return nil
}

func defaultCatalog() []therapy.Therapy {
	entries := []struct {
		id, name    string
		basePrice   float64
		durationMin int
		category    string
	}{
		{"1", "Krankengymnastik (KG)", 9.25, 20, therapy.CategoryMain},
		{"2", "Krankengymnastik am Gerät (KGG)", 17.42, 30, therapy.CategoryMain},
		{"3", "Manuelle Therapie (MT)", 11.11, 20, therapy.CategoryMain},
		{"4", "Klassische Massagetherapie (KMT)", 6.75, 30, therapy.CategoryMain},
		{"5", "Manuelle Lymphdrainage 30 (MLD 30)", 11.23, 30, therapy.CategoryMain},
		{"6", "Manuelle Lymphdrainage 45 (MLD 45)", 16.84, 45, therapy.CategoryMain},
		{"7", "Manuelle Lymphdrainage 60 (MLD 60)", 22.46, 60, therapy.CategoryMain},
		{"8", "Fango", 5.05, 10, therapy.CategorySecondary},
		{"9", "Kältetherapie", 3.73, 10, therapy.CategorySecondary},
		{"10", "Heiße Rolle", 4.20, 10, therapy.CategorySecondary},
	}

	catalog := make([]therapy.Therapy, 0, len(entries))
	for _, e := range entries {
		catalog = append(catalog, therapy.Therapy{
			ID:          e.id,
			Name:        e.name,
			DurationMin: e.durationMin,
			Category:    e.category,
			Bonuses:     pricing.DeriveBonusTable(e.basePrice),
		})
	}
	return catalog
}

func defaultRoster() []therapist.Therapist {
	return []therapist.Therapist{
		{ID: "1", Name: "Anna Müller", Email: "anna.mueller@praxis.de", Password: therapist.DefaultPassword, BonusTarget: 3000, RevenuePercent: 32},
		{ID: "2", Name: "Tom Schmidt", Email: "tom.schmidt@praxis.de", Password: therapist.DefaultPassword, BonusTarget: 3500, RevenuePercent: 34},
		{ID: "3", Name: "Lisa Weber", Email: "lisa.weber@praxis.de", Password: therapist.DefaultPassword, BonusTarget: 2800, RevenuePercent: 36},
	}
}
