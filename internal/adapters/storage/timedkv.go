package storage

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"physionomie/internal/adapters/http/perf"
	"physionomie/internal/adapters/storage/kv"
)

// DefaultSlowOpMs is the default threshold for slow storage warnings.
const DefaultSlowOpMs = 50

var slowOpMs int64
var slowOpOnce sync.Once

// getSlowOpThreshold returns the slow-op threshold in milliseconds.
func getSlowOpThreshold() float64 {
	slowOpOnce.Do(func() {
		ms := DefaultSlowOpMs
		if v := os.Getenv("PHYSIO_SLOW_OP_MS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				ms = n
			}
		}
		atomic.StoreInt64(&slowOpMs, int64(ms))
	})
	return float64(atomic.LoadInt64(&slowOpMs))
}

// TimedKV wraps a kv.Store to log slow operations and record timings to a
// collector. Satisfies kv.Store so it can be passed anywhere the bare store
// is accepted.
type TimedKV struct {
	inner     kv.Store
	collector *perf.Collector
	threshold float64
}

var _ kv.Store = (*TimedKV)(nil)

// NewTimedKV wraps a kv.Store with timing instrumentation.
// PRE: inner is non-nil; collector may be nil
func NewTimedKV(inner kv.Store, collector *perf.Collector) *TimedKV {
	return &TimedKV{
		inner:     inner,
		collector: collector,
		threshold: getSlowOpThreshold(),
	}
}

func (t *TimedKV) logOp(op, key string, start time.Time) {
	durationMs := float64(time.Since(start).Microseconds()) / 1000.0

	if durationMs >= t.threshold {
		slog.Warn("slow_op",
			"op", op,
			"key", key,
			"duration_ms", durationMs,
		)
	} else {
		slog.Debug("kv_op",
			"op", op,
			"key", key,
			"duration_ms", durationMs,
		)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindKV,
			Name:       "kv." + op + " " + key,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

func (t *TimedKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, found, err := t.inner.Get(ctx, key)
	t.logOp("Get", key, start)
	return value, found, err
}

func (t *TimedKV) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := t.inner.Set(ctx, key, value)
	t.logOp("Set", key, start)
	return err
}

func (t *TimedKV) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := t.inner.Delete(ctx, key)
	t.logOp("Delete", key, start)
	return err
}
