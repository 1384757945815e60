// Package stats derives daily, lifetime and practice-wide figures from the
// activity ledger. Every function is pure: no state is held across calls and
// results are recomputed from scratch on every read.
package stats

import (
	"sort"

	"physionomie/internal/domain/activity"
	"physionomie/internal/domain/therapist"
	"physionomie/internal/domain/therapy"
)

// DailyStats summarizes one date's activities for one therapist.
// Hours/Minutes split TotalMinutes for H:MM display.
type DailyStats struct {
	TotalMinutes int     `json:"totalMinutes"`
	Hours        int     `json:"hours"`
	Minutes      int     `json:"minutes"`
	BonusTotal   float64 `json:"bonusTotal"`
	Count        int     `json:"count"`
}

// LifetimeStats summarizes a therapist's whole ledger history.
// TotalHours is whole hours (floor of minutes/60), matching the display.
type LifetimeStats struct {
	TotalBonus    float64 `json:"totalBonus"`
	TotalHours    int     `json:"totalHours"`
	ActivityCount int     `json:"totalActivities"`
}

// TherapistMetrics is one row of the practice ranking.
// Revenue is recomputed from the live catalog (not the activities' stored
// snapshot bonuses); activities whose therapy has been deleted contribute
// nothing.
type TherapistMetrics struct {
	therapist.Therapist
	Revenue       float64 `json:"revenue"`
	ActivityCount int     `json:"activityCount"`
}

// BusinessMetrics is the practice-wide analytics result.
type BusinessMetrics struct {
	TotalRevenue float64            `json:"totalRevenue"`
	PerTherapist []TherapistMetrics `json:"perTherapist"`
}

// Daily sums duration, bonus and count over one day's activities.
// POST: Empty or nil input yields all-zero stats, not an error
func Daily(activities []activity.Activity) DailyStats {
	var s DailyStats
	for _, a := range activities {
		s.TotalMinutes += a.DurationMin
		s.BonusTotal += a.Bonus
	}
	s.Hours = s.TotalMinutes / 60
	s.Minutes = s.TotalMinutes % 60
	s.Count = len(activities)
	return s
}

// Lifetime flattens every date's activities for the therapist and totals
// snapshot bonus, whole hours and count.
func Lifetime(ledger activity.Ledger, therapistID string) LifetimeStats {
	var totalMinutes int
	var s LifetimeStats
	for _, a := range ledger.AllFor(therapistID) {
		s.TotalBonus += a.Bonus
		totalMinutes += a.DurationMin
		s.ActivityCount++
	}
	s.TotalHours = totalMinutes / 60
	return s
}

// Business computes total revenue and the per-therapist ranking. Each
// activity's contribution is resolved against the live catalog by therapy id
// and the activity's stored payer tier; orphaned activities are skipped
// silently. The ranking is sorted descending by revenue with ties keeping
// roster order.
func Business(ledger activity.Ledger, roster []therapist.Therapist, catalog []therapy.Therapy) BusinessMetrics {
	byID := make(map[string]therapy.Therapy, len(catalog))
	for _, th := range catalog {
		byID[th.ID] = th
	}

	rows := make([]TherapistMetrics, 0, len(roster))
	var total float64
	for _, tp := range roster {
		row := TherapistMetrics{Therapist: tp}
		for _, a := range ledger.AllFor(tp.ID) {
			row.ActivityCount++
			th, ok := byID[a.TherapyID]
			if !ok {
				continue
			}
			price, err := th.Bonuses.Price(a.Tier)
			if err != nil {
				continue
			}
			row.Revenue += price
		}
		total += row.Revenue
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Revenue > rows[j].Revenue
	})

	return BusinessMetrics{TotalRevenue: total, PerTherapist: rows}
}

// AveragePerActivity returns bonus/count, or zero when count is zero.
func AveragePerActivity(bonus float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return bonus / float64(count)
}

// TargetProgress returns achieved/target as a percentage, or zero when the
// target is zero.
func TargetProgress(achieved, target float64) float64 {
	if target == 0 {
		return 0
	}
	return achieved / target * 100
}

// RemainingToTarget returns the positive gap to the target, floored at zero
// once the target is exceeded.
func RemainingToTarget(achieved, target float64) float64 {
	if remaining := target - achieved; remaining > 0 {
		return remaining
	}
	return 0
}

// BelowTarget returns how many ranked therapists are under their bonus
// target and their average gap. Zero below-target therapists yields a zero
// average.
func BelowTarget(rows []TherapistMetrics) (count int, averageGap float64) {
	var gap float64
	for _, row := range rows {
		if row.Revenue < row.BonusTarget {
			count++
			gap += row.BonusTarget - row.Revenue
		}
	}
	if count == 0 {
		return 0, 0
	}
	return count, gap / float64(count)
}
