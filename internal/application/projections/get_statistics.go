package projections

import (
	"context"

	"physionomie/internal/domain/stats"
	"physionomie/internal/domain/therapist"
)

// RosterStoreForQueries defines the roster access needed by projections.
type RosterStoreForQueries interface {
	Load(ctx context.Context) ([]therapist.Therapist, bool, error)
}

// StatisticsDeps holds dependencies for the statistics projection.
type StatisticsDeps struct {
	Roster RosterStoreForQueries
	Ledger LedgerStoreForQueries
}

// StatisticsView is one therapist's lifetime figures against their target.
type StatisticsView struct {
	Lifetime        stats.LifetimeStats `json:"lifetime"`
	BonusTarget     float64             `json:"bonusTarget"`
	TargetProgress  float64             `json:"targetProgress"`
	RemainingToGo   float64             `json:"remainingToGo"`
	AveragePerVisit float64             `json:"averagePerActivity"`
}

// QueryStatistics computes a therapist's lifetime statistics from their
// snapshot bonuses.
// POST: Progress and averages are zero, never NaN, for empty histories
func QueryStatistics(ctx context.Context, therapistID string, deps StatisticsDeps) (StatisticsView, error) {
	roster, _, err := deps.Roster.Load(ctx)
	if err != nil {
		return StatisticsView{}, err
	}

	var target float64
	for _, tp := range roster {
		if tp.ID == therapistID {
			target = tp.BonusTarget
			break
		}
	}

	ledger, _, err := deps.Ledger.Load(ctx)
	if err != nil {
		return StatisticsView{}, err
	}
	lifetime := stats.Lifetime(ledger, therapistID)

	return StatisticsView{
		Lifetime:        lifetime,
		BonusTarget:     target,
		TargetProgress:  stats.TargetProgress(lifetime.TotalBonus, target),
		RemainingToGo:   stats.RemainingToTarget(lifetime.TotalBonus, target),
		AveragePerVisit: stats.AveragePerActivity(lifetime.TotalBonus, lifetime.ActivityCount),
	}, nil
}
