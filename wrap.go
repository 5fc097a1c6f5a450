package permscope

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Provider mounts a scope over a subtree of components: children render with
// the scope attached to their context, so every descendant query resolves
// against it. Nesting Provider shadows the outer scope for the inner
// subtree. Children render in order; the first render error aborts.
func Provider(scope *Scope, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ctx = WithScope(ctx, scope)
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Require returns a component transformer gated on one permission. The
// composed component re-evaluates membership on every render against the
// nearest enclosing scope:
//
//   - granted: the target renders, its context and writer forwarded verbatim
//   - denied: fallback renders if non-nil, otherwise output is empty; the
//     scope's denial callback fires through the underlying query
//   - no enclosing scope: Render returns ErrNoScope
//
// Transformers compose: wrapping an already-wrapped component requires both
// permissions, checked outer-to-inner, and stops at the first denial (inner
// layers are not evaluated, so their callbacks do not fire).
func Require(permission string, fallback templ.Component) func(templ.Component) templ.Component {
	return func(target templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			granted, err := HasPermission(ctx, permission)
			if err != nil {
				return err
			}

			if granted {
				if target == nil {
					return nil
				}
				return target.Render(ctx, w)
			}

			if fallback == nil {
				return nil
			}
			if scope, ok := FromContext(ctx); ok {
				scope.metrics.inc(MetricFallbackRendered)
			}
			return fallback.Render(ctx, w)
		})
	}
}
