package permscope

import "errors"

var (
	// ErrNoScope reports a query or wrapped render evaluated with no
	// enclosing permission scope in context. This is a structural wiring
	// mistake in the integrating application, not a denial.
	ErrNoScope = errors.New("no enclosing permission scope")
	// ErrScopeClosed reports a query against a scope after Close.
	ErrScopeClosed = errors.New("permission scope closed")
	// ErrInvalidPermission reports an empty or oversized permission
	// identifier passed to a query.
	ErrInvalidPermission = errors.New("invalid permission identifier")
	// ErrInvalidPermissionSet reports a malformed permission set supplied
	// at scope construction or replacement.
	ErrInvalidPermissionSet = errors.New("invalid permission set")
	// ErrInvalidConfig reports a Config rejected by validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrBuilderReused reports a second Build call on the same Builder.
	ErrBuilderReused = errors.New("builder already used")
)
