package ledger

import (
	"context"
	"testing"
	"time"

	"physionomie/internal/adapters/storage/kv"
	"physionomie/internal/domain/activity"
	"physionomie/internal/domain/pricing"
	"physionomie/internal/domain/therapy"
)

func TestLoad_NeverWritten(t *testing.T) {
	s := NewKVStore(kv.NewMemory())

	l, found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Error("found = true before first write")
	}
	if l == nil {
		t.Error("Load returned a nil ledger")
	}
}

func TestReplaceLoad_RoundTrip(t *testing.T) {
	s := NewKVStore(kv.NewMemory())
	ctx := context.Background()

	th := therapy.Therapy{
		ID:          "th-kg",
		Name:        "Krankengymnastik (KG)",
		DurationMin: 20,
		Category:    therapy.CategoryMain,
		Bonuses:     pricing.DeriveBonusTable(9.25),
	}
	a, err := activity.Snapshot("a1", th, pricing.TierGKV, time.Date(2026, 8, 31, 10, 30, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	in := activity.Ledger{}.Log("2026-08-31", "t1", a)
	if err := s.Replace(ctx, in); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	out, found, err := s.Load(ctx)
	if err != nil || !found {
		t.Fatalf("Load = %v/%v", found, err)
	}
	got := out.For("2026-08-31", "t1")
	if len(got) != 1 || got[0] != a {
		t.Errorf("round trip = %+v, want the logged activity", got)
	}
}
