package status

import (
	"fmt"
	"sync/atomic"
)

// Registry is the central metrics facade
// Systems cache pointers during init; tick loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// SystemStats holds cached metric pointers for one scheduled system
type SystemStats struct {
	Ticks        *atomic.Int64
	Skipped      *atomic.Int64
	FetchRetries *atomic.Int64
	Panics       *atomic.Int64
	TickMicros   *atomic.Int64
	State        *AtomicString
	// LastDelta is the dt of the latest tick in seconds
	LastDelta *AtomicFloat
}

// System registers and returns the metric set for the named system
// Keys follow "system.<name>.<metric>"
func (r *Registry) System(name string) SystemStats {
	key := func(metric string) string { return fmt.Sprintf("system.%s.%s", name, metric) }
	return SystemStats{
		Ticks:        r.Ints.Get(key("ticks")),
		Skipped:      r.Ints.Get(key("skipped")),
		FetchRetries: r.Ints.Get(key("fetch_retries")),
		Panics:       r.Ints.Get(key("panics")),
		TickMicros:   r.Ints.Get(key("tick_us")),
		State:        r.Strings.Get(key("state")),
		LastDelta:    r.Floats.Get(key("dt")),
	}
}

// Snapshot copies every integer metric, intended for overlays and tests
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	return out
}
