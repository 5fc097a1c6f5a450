package permscope

import "context"

type scopeContextKey struct{}

// WithScope attaches a permission scope to ctx. Descendant queries resolve
// the nearest attached scope, so nesting WithScope shadows the outer scope
// for the inner subtree.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, scopeContextKey{}, scope)
}

// FromContext returns the nearest enclosing permission scope, if any.
func FromContext(ctx context.Context) (*Scope, bool) {
	if ctx == nil {
		return nil, false
	}
	scope, ok := ctx.Value(scopeContextKey{}).(*Scope)
	if !ok || scope == nil {
		return nil, false
	}
	return scope, true
}
