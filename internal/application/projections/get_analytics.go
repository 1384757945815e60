package projections

import (
	"context"

	"physionomie/internal/domain/stats"
)

// AnalyticsDeps holds dependencies for the analytics projection.
type AnalyticsDeps struct {
	Roster  RosterStoreForQueries
	Ledger  LedgerStoreForQueries
	Catalog CatalogStoreForQueries
}

// AnalyticsView is the admin's practice-wide dashboard.
type AnalyticsView struct {
	Metrics            stats.BusinessMetrics `json:"metrics"`
	Headcount          int                   `json:"headcount"`
	TotalActivities    int                   `json:"totalActivities"`
	AveragePerActivity float64               `json:"averagePerActivity"`
	TopPerformer       string                `json:"topPerformer"` // therapist id, empty with no roster
	BelowTargetCount   int                   `json:"belowTargetCount"`
	BelowTargetAvgGap  float64               `json:"belowTargetAvgGap"`
}

// QueryAnalytics recomputes the practice dashboard from the live catalog.
// Activities referencing deleted therapies or removed therapists drop out of
// the revenue figures here even though their snapshots remain in the ledger.
func QueryAnalytics(ctx context.Context, deps AnalyticsDeps) (AnalyticsView, error) {
	roster, _, err := deps.Roster.Load(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	catalog, _, err := deps.Catalog.Load(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}
	ledger, _, err := deps.Ledger.Load(ctx)
	if err != nil {
		return AnalyticsView{}, err
	}

	metrics := stats.Business(ledger, roster, catalog)

	view := AnalyticsView{
		Metrics:   metrics,
		Headcount: len(roster),
	}
	for _, row := range metrics.PerTherapist {
		view.TotalActivities += row.ActivityCount
	}
	view.AveragePerActivity = stats.AveragePerActivity(metrics.TotalRevenue, view.TotalActivities)
	if len(metrics.PerTherapist) > 0 {
		view.TopPerformer = metrics.PerTherapist[0].ID
	}
	view.BelowTargetCount, view.BelowTargetAvgGap = stats.BelowTarget(metrics.PerTherapist)

	return view, nil
}
