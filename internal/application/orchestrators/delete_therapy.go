package orchestrators

import (
	"context"
	"log/slog"
)

// DeleteTherapyDeps holds dependencies for DeleteTherapy.
type DeleteTherapyDeps struct {
	Catalog CatalogStoreForSeed
}

// ExecuteDeleteTherapy removes a therapy from the catalog. Activities that
// reference it keep their snapshots; analytics will skip them from then on.
func ExecuteDeleteTherapy(ctx context.Context, id string, deps DeleteTherapyDeps) error {
	catalog, _, err := deps.Catalog.Load(ctx)
	if err != nil {
		return err
	}

	kept := catalog[:0]
	for _, th := range catalog {
		if th.ID != id {
			kept = append(kept, th)
		}
	}
	if len(kept) == len(catalog) {
		return ErrTherapyNotFound
	}

	if err := deps.Catalog.Replace(ctx, kept); err != nil {
		return err
	}
	slog.Info("catalog_event", "event", "therapy_deleted", "id", id)
	return nil
}
