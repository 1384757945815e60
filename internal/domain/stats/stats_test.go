package stats

import (
	"math"
	"testing"
	"time"

	"physionomie/internal/domain/activity"
	"physionomie/internal/domain/pricing"
	"physionomie/internal/domain/therapist"
	"physionomie/internal/domain/therapy"
)

const tolerance = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < tolerance }

func mt(base float64) therapy.Therapy {
	return therapy.Therapy{
		ID:          "th-mt",
		Name:        "Manuelle Therapie (MT)",
		DurationMin: 20,
		Category:    therapy.CategoryMain,
		Bonuses:     pricing.DeriveBonusTable(base),
	}
}

func logged(t *testing.T, l activity.Ledger, date, therapistID, id string, th therapy.Therapy, tier string) activity.Ledger {
	t.Helper()
	a, err := activity.Snapshot(id, th, tier, time.Date(2026, 8, 31, 8, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("Snapshot(%s): %v", id, err)
	}
	return l.Log(date, therapistID, a)
}

func TestDaily_EmptyIsZero(t *testing.T) {
	for _, in := range [][]activity.Activity{nil, {}} {
		s := Daily(in)
		if s != (DailyStats{}) {
			t.Errorf("Daily(%v) = %+v, want all zeros", in, s)
		}
	}
}

func TestDaily_SplitsHoursAndMinutes(t *testing.T) {
	l := activity.Ledger{}
	// 4 x 20min = 80min, 1:20.
	for _, id := range []string{"a1", "a2", "a3", "a4"} {
		l = logged(t, l, "2026-08-31", "t1", id, mt(10.00), pricing.TierGKV)
	}

	s := Daily(l.For("2026-08-31", "t1"))
	if s.TotalMinutes != 80 || s.Hours != 1 || s.Minutes != 20 {
		t.Errorf("time split = %d (%d:%02d), want 80 (1:20)", s.TotalMinutes, s.Hours, s.Minutes)
	}
	if !approx(s.BonusTotal, 40.00) || s.Count != 4 {
		t.Errorf("bonus/count = %v/%d, want 40.00/4", s.BonusTotal, s.Count)
	}
}

func TestLifetime_SumsAcrossDates(t *testing.T) {
	l := activity.Ledger{}
	l = logged(t, l, "2026-08-29", "t1", "a1", mt(10.00), pricing.TierGKV)     // 10.00
	l = logged(t, l, "2026-08-30", "t1", "a2", mt(10.00), pricing.TierBeihilfe) // 14.00
	l = logged(t, l, "2026-08-31", "t1", "a3", mt(10.00), pricing.TierPrivat)  // 15.00
	l = logged(t, l, "2026-08-31", "t2", "x1", mt(10.00), pricing.TierPrivat)

	s := Lifetime(l, "t1")
	if !approx(s.TotalBonus, 39.00) {
		t.Errorf("TotalBonus = %v, want 39.00", s.TotalBonus)
	}
	if s.TotalHours != 1 { // 60min exactly
		t.Errorf("TotalHours = %d, want 1", s.TotalHours)
	}
	if s.ActivityCount != 3 {
		t.Errorf("ActivityCount = %d, want 3", s.ActivityCount)
	}
}

// Lifetime totals must equal the sum of the per-day dailies.
func TestLifetime_MatchesSumOfDailies(t *testing.T) {
	l := activity.Ledger{}
	dates := []string{"2026-08-29", "2026-08-30", "2026-08-31"}
	tiers := []string{pricing.TierGKV, pricing.TierBeihilfe, pricing.TierPrivat}
	n := 0
	for _, date := range dates {
		for _, tier := range tiers {
			n++
			l = logged(t, l, date, "t1", string(rune('a'+n)), mt(9.25), tier)
		}
	}

	var bonus float64
	var count int
	for _, date := range dates {
		d := Daily(l.For(date, "t1"))
		bonus += d.BonusTotal
		count += d.Count
	}

	life := Lifetime(l, "t1")
	if !approx(life.TotalBonus, bonus) || life.ActivityCount != count {
		t.Errorf("Lifetime = %v/%d, sum of dailies = %v/%d", life.TotalBonus, life.ActivityCount, bonus, count)
	}
}

func roster() []therapist.Therapist {
	return []therapist.Therapist{
		{ID: "t1", Name: "Anna Müller", Email: "anna.mueller@praxis.de", BonusTarget: 3000, RevenuePercent: 32},
		{ID: "t2", Name: "Tom Schmidt", Email: "tom.schmidt@praxis.de", BonusTarget: 3500, RevenuePercent: 34},
		{ID: "t3", Name: "Lisa Weber", Email: "lisa.weber@praxis.de", BonusTarget: 2800, RevenuePercent: 36},
		{ID: "t4", Name: "Max Neu", Email: "max.neu@praxis.de", BonusTarget: 3000, RevenuePercent: 30},
	}
}

func TestBusiness_RanksDescendingWithStableTies(t *testing.T) {
	th := mt(10.00)
	l := activity.Ledger{}
	// t1: 1 GKV = 10, t2: 1 Privat = 15, t3: 1 Privat = 15, t4: none.
	l = logged(t, l, "2026-08-31", "t1", "a1", th, pricing.TierGKV)
	l = logged(t, l, "2026-08-31", "t2", "a2", th, pricing.TierPrivat)
	l = logged(t, l, "2026-08-31", "t3", "a3", th, pricing.TierPrivat)

	m := Business(l, roster(), []therapy.Therapy{th})

	wantOrder := []string{"t2", "t3", "t1", "t4"} // tie t2/t3 keeps roster order
	for i, id := range wantOrder {
		if m.PerTherapist[i].ID != id {
			t.Errorf("rank %d = %s, want %s", i, m.PerTherapist[i].ID, id)
		}
	}
	if !approx(m.TotalRevenue, 40.00) {
		t.Errorf("TotalRevenue = %v, want 40.00", m.TotalRevenue)
	}
	if m.PerTherapist[3].Revenue != 0 || m.PerTherapist[3].ActivityCount != 0 {
		t.Errorf("idle therapist row = %+v, want zero revenue and count", m.PerTherapist[3])
	}
}

// Editing a therapy's price changes analytics revenue but not the stored
// activity snapshot, so the two views legitimately diverge.
func TestBusiness_RecomputesFromLiveCatalog(t *testing.T) {
	before := mt(10.00)
	l := activity.Ledger{}
	l = logged(t, l, "2026-08-31", "t1", "a1", before, pricing.TierBeihilfe)

	a := l.For("2026-08-31", "t1")[0]
	if !approx(a.Bonus, 14.00) {
		t.Fatalf("snapshot bonus = %v, want 14.00", a.Bonus)
	}

	after := before
	after.Bonuses = pricing.DeriveBonusTable(20.00)
	m := Business(l, roster()[:1], []therapy.Therapy{after})

	if !approx(m.PerTherapist[0].Revenue, 28.00) {
		t.Errorf("live revenue = %v, want 28.00 (Beihilfe of edited base 20.00)", m.PerTherapist[0].Revenue)
	}
	if !approx(Lifetime(l, "t1").TotalBonus, 14.00) {
		t.Error("snapshot total changed with the catalog edit")
	}
}

func TestBusiness_SkipsOrphanedActivities(t *testing.T) {
	th := mt(10.00)
	l := activity.Ledger{}
	l = logged(t, l, "2026-08-31", "t1", "a1", th, pricing.TierGKV)

	m := Business(l, roster()[:1], nil) // therapy deleted from catalog

	row := m.PerTherapist[0]
	if row.Revenue != 0 {
		t.Errorf("Revenue = %v, want 0 for orphaned activity", row.Revenue)
	}
	if row.ActivityCount != 1 {
		t.Errorf("ActivityCount = %d, want 1 (orphan still counted)", row.ActivityCount)
	}
}

func TestTargetHelpers_ZeroGuards(t *testing.T) {
	if got := AveragePerActivity(100, 0); got != 0 {
		t.Errorf("AveragePerActivity(_, 0) = %v, want 0", got)
	}
	if got := TargetProgress(100, 0); got != 0 {
		t.Errorf("TargetProgress(_, 0) = %v, want 0", got)
	}
	if got := TargetProgress(1500, 3000); !approx(got, 50) {
		t.Errorf("TargetProgress = %v, want 50", got)
	}
	if got := RemainingToTarget(3200, 3000); got != 0 {
		t.Errorf("RemainingToTarget past target = %v, want 0", got)
	}
	if got := RemainingToTarget(2000, 3000); !approx(got, 1000) {
		t.Errorf("RemainingToTarget = %v, want 1000", got)
	}
}

func TestBelowTarget(t *testing.T) {
	rows := []TherapistMetrics{
		{Therapist: therapist.Therapist{BonusTarget: 3000}, Revenue: 3200},
		{Therapist: therapist.Therapist{BonusTarget: 3000}, Revenue: 2000},
		{Therapist: therapist.Therapist{BonusTarget: 2800}, Revenue: 2400},
	}
	count, gap := BelowTarget(rows)
	if count != 2 || !approx(gap, 700) {
		t.Errorf("BelowTarget = %d/%v, want 2/700", count, gap)
	}

	count, gap = BelowTarget(nil)
	if count != 0 || gap != 0 {
		t.Errorf("BelowTarget(nil) = %d/%v, want zeros", count, gap)
	}
}
