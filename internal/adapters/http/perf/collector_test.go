package perf

import (
	"sync"
	"testing"
	"time"
)

func TestCollector_RecordAndSnapshot(t *testing.T) {
	c := NewCollector(100)
	now := time.Now()

	c.Record(Entry{Kind: KindRequest, Name: "GET /api/therapies", StatusCode: 200, DurationMs: 10, Timestamp: now})
	c.Record(Entry{Kind: KindRequest, Name: "GET /api/therapies", StatusCode: 200, DurationMs: 30, Timestamp: now})
	c.Record(Entry{Kind: KindKV, Name: "kv.Get app:therapies", DurationMs: 5, Timestamp: now})

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if snap.TotalRecorded != 3 {
		t.Errorf("TotalRecorded = %d, want 3", snap.TotalRecorded)
	}
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes len = %d, want 1", len(snap.SlowestRoutes))
	}
	if snap.SlowestRoutes[0].AvgMs != 20 {
		t.Errorf("AvgMs = %v, want 20", snap.SlowestRoutes[0].AvgMs)
	}
	if len(snap.SlowestKVOps) != 1 {
		t.Fatalf("SlowestKVOps len = %d, want 1", len(snap.SlowestKVOps))
	}
}

func TestCollector_RingOverwritesOldest(t *testing.T) {
	c := NewCollector(3)
	now := time.Now()

	for i := 0; i < 5; i++ {
		c.Record(Entry{Kind: KindRequest, Name: "GET /tracker", DurationMs: float64(i), Timestamp: now})
	}

	if c.TotalRecorded() != 5 {
		t.Errorf("TotalRecorded = %d, want 5", c.TotalRecorded())
	}

	snap := c.Snapshot(now.Add(-time.Minute), 10)
	if len(snap.SlowestRoutes) != 1 {
		t.Fatalf("SlowestRoutes len = %d, want 1", len(snap.SlowestRoutes))
	}
	if snap.SlowestRoutes[0].Count != 3 {
		t.Errorf("Count = %d, want 3 (ring kept last 3)", snap.SlowestRoutes[0].Count)
	}
}

func TestCollector_Percentiles(t *testing.T) {
	c := NewCollector(200)
	now := time.Now()

	// 1..100ms, P50 interpolates to 50.5.
	for i := 1; i <= 100; i++ {
		c.Record(Entry{Kind: KindRequest, Name: "GET /x", DurationMs: float64(i), Timestamp: now})
	}

	snap := c.Snapshot(now.Add(-time.Minute), 5)
	if snap.RequestP50Ms != 50.5 {
		t.Errorf("P50 = %v, want 50.5", snap.RequestP50Ms)
	}
	if snap.RequestP99Ms < 99 || snap.RequestP99Ms > 100 {
		t.Errorf("P99 = %v, want in [99,100]", snap.RequestP99Ms)
	}
}

func TestCollector_SnapshotSinceFilters(t *testing.T) {
	c := NewCollector(100)
	old := time.Now().Add(-2 * time.Hour)
	recent := time.Now()

	c.Record(Entry{Kind: KindRequest, Name: "GET /a", DurationMs: 1, Timestamp: old})
	c.Record(Entry{Kind: KindRequest, Name: "GET /b", DurationMs: 2, Timestamp: recent})

	snap := c.Snapshot(recent.Add(-time.Minute), 10)
	if len(snap.SlowestRoutes) != 1 || snap.SlowestRoutes[0].Name != "GET /b" {
		t.Errorf("SlowestRoutes = %+v, want only GET /b", snap.SlowestRoutes)
	}
}

func TestCollector_ConcurrentRecord(t *testing.T) {
	c := NewCollector(64)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Record(Entry{Kind: KindKV, Name: "kv.Set app:activities", DurationMs: 1, Timestamp: now})
			}
		}()
	}
	wg.Wait()

	if c.TotalRecorded() != 800 {
		t.Errorf("TotalRecorded = %d, want 800", c.TotalRecorded())
	}
}
