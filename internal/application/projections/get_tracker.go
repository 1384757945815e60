// Package projections contains the read-path queries. Nothing here writes;
// every result is recomputed from the stores on each call.
package projections

import (
	"context"

	"physionomie/internal/domain/activity"
	"physionomie/internal/domain/stats"
	"physionomie/internal/domain/therapy"
)

// LedgerStoreForQueries defines the ledger access needed by projections.
type LedgerStoreForQueries interface {
	Load(ctx context.Context) (activity.Ledger, bool, error)
}

// CatalogStoreForQueries defines the catalog access needed by projections.
type CatalogStoreForQueries interface {
	Load(ctx context.Context) ([]therapy.Therapy, bool, error)
}

// TrackerDeps holds dependencies for the tracker projection.
type TrackerDeps struct {
	Ledger  LedgerStoreForQueries
	Catalog CatalogStoreForQueries
}

// TrackerView is one therapist's day: the loggable catalog plus what they
// already logged and the running daily totals.
type TrackerView struct {
	Date       string              `json:"date"`
	Catalog    []therapy.Therapy   `json:"catalog"`
	Activities []activity.Activity `json:"activities"`
	Daily      stats.DailyStats    `json:"daily"`
}

// QueryTracker loads the tracker view for one therapist and date.
// POST: A day with no activities yields an empty list and zero totals
func QueryTracker(ctx context.Context, therapistID, date string, deps TrackerDeps) (TrackerView, error) {
	catalog, _, err := deps.Catalog.Load(ctx)
	if err != nil {
		return TrackerView{}, err
	}
	ledger, _, err := deps.Ledger.Load(ctx)
	if err != nil {
		return TrackerView{}, err
	}

	activities := ledger.For(date, therapistID)
	if activities == nil {
		activities = []activity.Activity{}
	}
	if catalog == nil {
		catalog = []therapy.Therapy{}
	}

	return TrackerView{
		Date:       date,
		Catalog:    catalog,
		Activities: activities,
		Daily:      stats.Daily(activities),
	}, nil
}
