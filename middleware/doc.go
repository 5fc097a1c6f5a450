// Package middleware exposes HTTP adapters for mounting a permission scope
// on request contexts and guarding routes on a single permission.
//
// # Handlers
//
//   - [Inject] — attaches a Scope to every request context, the HTTP
//     equivalent of mounting a scope at the root of a component tree.
//   - [RequirePermission] — rejects the request with 403 when the nearest
//     scope denies the permission, 500 when no scope is mounted.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into permscope calls. It makes no
// permission decisions itself — membership is delegated to
// permscope.HasPermission.
//
// # What this package must NOT do
//
//   - Derive permissions from the request (no header or token parsing; pair
//     with the jwt subpackage in the application if tokens carry grants).
//   - Downgrade a missing scope to 403. That is a wiring bug and surfaces
//     as a server error.
package middleware
