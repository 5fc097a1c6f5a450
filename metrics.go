package permscope

import "sync/atomic"

// MetricID indexes one counter in the scope metrics set.
type MetricID uint16

const (
	// MetricCheckGranted counts queries that found the permission.
	MetricCheckGranted MetricID = iota
	// MetricCheckDenied counts queries that did not.
	MetricCheckDenied
	// MetricCheckInvalid counts queries rejected for a malformed identifier.
	MetricCheckInvalid
	// MetricScopeReplaced counts snapshot replacements.
	MetricScopeReplaced
	// MetricFallbackRendered counts denied renders that produced a fallback.
	MetricFallbackRendered
	metricIDCount
)

const cacheLineSize = 64

// paddedCounter keeps each counter on its own cache line so concurrent
// readers in one render pass do not false-share.
type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is the scope's counter set. All operations are lock-free; a nil
// receiver (metrics disabled) is a no-op.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

func newMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

func (m *Metrics) load(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	CheckGranted     uint64
	CheckDenied      uint64
	CheckInvalid     uint64
	ScopeReplaced    uint64
	FallbackRendered uint64
}

// Snapshot copies the counters. Counters advance independently, so a
// snapshot taken under concurrent load is per-counter accurate, not a
// cross-counter transaction.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		CheckGranted:     m.load(MetricCheckGranted),
		CheckDenied:      m.load(MetricCheckDenied),
		CheckInvalid:     m.load(MetricCheckInvalid),
		ScopeReplaced:    m.load(MetricScopeReplaced),
		FallbackRendered: m.load(MetricFallbackRendered),
	}
}
