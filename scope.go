package permscope

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Builder assembles a Scope. Zero or more With* calls followed by a single
// Build; a Builder must not be reused after Build.
type Builder struct {
	config      Config
	permissions []string
	onDenied    DenialCallback
	sink        DenialSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration wholesale.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithPermissions sets the initial granted permission set.
func (b *Builder) WithPermissions(permissions []string) *Builder {
	b.permissions = permissions
	return b
}

// WithOnDenied sets the synchronous denial callback stored alongside the
// initial permission set.
func (b *Builder) WithOnDenied(cb DenialCallback) *Builder {
	b.onDenied = cb
	return b
}

// WithDenialSink sets the asynchronous audit sink. The sink only receives
// events when Audit.Enabled is set in the configuration.
func (b *Builder) WithDenialSink(sink DenialSink) *Builder {
	b.sink = sink
	return b
}

// WithAuditEnabled toggles the denial audit pipeline.
func (b *Builder) WithAuditEnabled(enabled bool) *Builder {
	b.config.Audit.Enabled = enabled
	return b
}

// WithMetricsEnabled toggles the atomic counter set.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates configuration and inputs and returns an operational Scope.
func (b *Builder) Build() (*Scope, error) {
	if b.built {
		return nil, ErrBuilderReused
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	st, err := newStore(b.permissions, b.onDenied, b.config.Permission)
	if err != nil {
		return nil, err
	}

	s := &Scope{
		id:     uuid.NewString(),
		config: b.config,
	}
	s.current.Store(st)

	if b.config.Metrics.Enabled {
		s.metrics = newMetrics()
	}
	s.dispatcher = newDenialDispatcher(b.config.Audit, b.sink)

	b.built = true
	return s, nil
}

// Scope owns the current permission snapshot for one subtree. Exactly one
// writer (the owner) replaces the snapshot; any number of descendants read it
// through HasPermission or Require wrappers. The zero value is not usable;
// construct through Builder.
type Scope struct {
	id     string
	config Config

	current    atomic.Pointer[store]
	metrics    *Metrics
	dispatcher *denialDispatcher

	closed    atomic.Bool
	closeOnce sync.Once
}

// ID returns the scope's generated identifier, as carried on denial events.
func (s *Scope) ID() string {
	return s.id
}

// Replace swaps both the permission set and the denial callback in one
// atomic snapshot. A nil callback clears the previous one. Queries already
// in flight complete against the old snapshot; every later query sees the
// new one.
func (s *Scope) Replace(permissions []string, onDenied DenialCallback) error {
	if s.closed.Load() {
		return ErrScopeClosed
	}

	st, err := newStore(permissions, onDenied, s.config.Permission)
	if err != nil {
		return err
	}

	s.current.Store(st)
	s.metrics.inc(MetricScopeReplaced)
	return nil
}

// SetPermissions replaces the permission set, keeping the current denial
// callback.
func (s *Scope) SetPermissions(permissions []string) error {
	if s.closed.Load() {
		return ErrScopeClosed
	}
	return s.Replace(permissions, s.current.Load().onDenied)
}

// SetOnDenied replaces the denial callback, keeping the current permission
// set.
func (s *Scope) SetOnDenied(cb DenialCallback) error {
	if s.closed.Load() {
		return ErrScopeClosed
	}

	prev := s.current.Load()
	st := &store{
		perms:    prev.perms,
		onDenied: cb,
	}
	s.current.Store(st)
	return nil
}

// Metrics returns a point-in-time copy of the scope's counters. The zero
// snapshot is returned when metrics are disabled.
func (s *Scope) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// DroppedDenials reports how many denial events were discarded because the
// audit buffer was full. Always zero unless Audit.DropIfFull is set.
func (s *Scope) DroppedDenials() uint64 {
	return s.dispatcher.Dropped()
}

// Close marks the scope closed and drains the audit dispatcher. Subsequent
// queries fail with ErrScopeClosed, restoring the unmounted behavior for the
// subtree. Close is idempotent.
func (s *Scope) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.dispatcher.Close()
	})
}
