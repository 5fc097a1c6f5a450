package permscope

import (
	"context"
	"time"
)

// HasPermission reports whether the identifier is a member of the nearest
// enclosing scope's permission set. On a negative result the snapshot's
// denial callback (if any) is invoked exactly once with the identifier, and
// a DenialEvent is handed to the audit pipeline; the boolean is returned to
// the caller either way. A denial is expected control flow, never an error.
//
// HasPermission fails with ErrNoScope when ctx carries no scope: evaluating
// a permission check outside any scope is a structural mistake that must
// surface, not read as "denied".
func HasPermission(ctx context.Context, permission string) (bool, error) {
	scope, ok := FromContext(ctx)
	if !ok {
		return false, ErrNoScope
	}
	return scope.HasPermission(ctx, permission)
}

// HasPermission checks membership directly against this scope, bypassing
// context resolution. Package-level HasPermission is the usual entry point;
// this form serves callers that already hold the scope.
func (s *Scope) HasPermission(ctx context.Context, permission string) (bool, error) {
	if s == nil {
		return false, ErrNoScope
	}
	if s.closed.Load() {
		return false, ErrScopeClosed
	}
	if permission == "" || len(permission) > s.config.Permission.MaxIdentifierLength {
		s.metrics.inc(MetricCheckInvalid)
		return false, ErrInvalidPermission
	}

	st := s.current.Load()
	if st.has(permission) {
		s.metrics.inc(MetricCheckGranted)
		return true, nil
	}

	s.metrics.inc(MetricCheckDenied)
	if st.onDenied != nil {
		st.onDenied(permission)
	}
	s.dispatcher.Emit(ctx, DenialEvent{
		Timestamp:  time.Now().UTC(),
		Permission: permission,
		ScopeID:    s.id,
	})

	return false, nil
}
