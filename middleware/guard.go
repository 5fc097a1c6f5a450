package middleware

import (
	"errors"
	"net/http"

	permscope "github.com/permscope/permscope"
)

// Inject attaches scope to every request context so downstream handlers and
// rendered components resolve it as their nearest enclosing scope.
func Inject(scope *permscope.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if scope == nil {
				http.Error(w, "permission scope not configured", http.StatusInternalServerError)
				return
			}

			ctx := permscope.WithScope(r.Context(), scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission guards a route on one permission. Denials produce 403;
// a request with no mounted scope produces 500, since that is an integration
// bug rather than a caller fault.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted, err := permscope.HasPermission(r.Context(), permission)
			if errors.Is(err, permscope.ErrNoScope) {
				http.Error(w, "permission scope not configured", http.StatusInternalServerError)
				return
			}
			if err != nil {
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !granted {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
