// Package perf keeps a ring buffer of request and storage timings for the
// admin performance view. Recording is cheap; aggregation only happens when a
// snapshot is requested.
package perf

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes HTTP request entries from key-value store entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindKV
)

// Entry is a single timing record.
type Entry struct {
	Kind       EntryKind
	Name       string // HTTP route or "kv.Op key"
	StatusCode int    // HTTP status (0 for KV entries)
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer of timing entries. Writes never
// block; when the buffer is full the oldest entries are overwritten.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	total   int64 // entries ever written, read atomically
}

// NewCollector creates a collector with the given ring capacity.
// PRE: size > 0, falls back to DefaultRingSize otherwise
// POST: Returns a ready collector with pre-allocated storage
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Record stores an entry, overwriting the oldest when full.
// Lock hold time: one index increment plus a struct copy.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % c.size
	c.mu.Unlock()
	atomic.AddInt64(&c.total, 1)
}

// TotalRecorded returns how many entries were ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.total)
}

// Snapshot is the aggregated view computed on read.
type Snapshot struct {
	TotalRecorded int64
	RequestP50Ms  float64
	RequestP95Ms  float64
	RequestP99Ms  float64
	SlowestRoutes []NameStat
	SlowestKVOps  []NameStat
}

// NameStat aggregates timings for one route or KV operation.
type NameStat struct {
	Name    string
	AvgMs   float64
	MaxMs   float64
	Count   int
	TotalMs float64
}

// Snapshot aggregates the buffered entries recorded at or after since.
// Sorting makes this the expensive path; it is only hit from the admin
// performance endpoint.
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, c.size)
	copy(buf, c.entries)
	c.mu.Unlock()

	var requestDurations []float64
	requests := make(map[string]*NameStat)
	kvOps := make(map[string]*NameStat)

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		switch e.Kind {
		case KindRequest:
			requestDurations = append(requestDurations, e.DurationMs)
			accumulate(requests, e)
		case KindKV:
			accumulate(kvOps, e)
		}
	}

	snap := Snapshot{
		TotalRecorded: c.TotalRecorded(),
		SlowestRoutes: topByAvg(requests, topN),
		SlowestKVOps:  topByAvg(kvOps, topN),
	}

	if len(requestDurations) > 0 {
		sort.Float64s(requestDurations)
		snap.RequestP50Ms = percentile(requestDurations, 50)
		snap.RequestP95Ms = percentile(requestDurations, 95)
		snap.RequestP99Ms = percentile(requestDurations, 99)
	}

	return snap
}

func accumulate(stats map[string]*NameStat, e Entry) {
	s, ok := stats[e.Name]
	if !ok {
		s = &NameStat{Name: e.Name}
		stats[e.Name] = s
	}
	s.Count++
	s.TotalMs += e.DurationMs
	if e.DurationMs > s.MaxMs {
		s.MaxMs = e.DurationMs
	}
}

// percentile returns the p-th percentile from a sorted slice, interpolating
// between neighbors.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topByAvg returns the top N names by average duration, descending.
func topByAvg(stats map[string]*NameStat, n int) []NameStat {
	list := make([]NameStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].AvgMs > list[j].AvgMs
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
