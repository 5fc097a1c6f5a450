// Package permscope provides scoped permission state and declarative
// enforcement for component-tree rendering: a permission set is mounted once
// near the root of a tree and any descendant can query membership or wrap a
// component so it only renders when a permission is granted.
//
// A [Scope] is built through [Builder], attached to a subtree either with
// [WithScope] (plain context) or [Provider] (as a renderable component), and
// read with [HasPermission] or a [Require] wrapper. The nearest enclosing
// scope always wins; nesting shadows, it never merges.
//
// # Architecture boundaries
//
// permscope is the public surface. It exposes [Scope], [Builder], [Config],
// the query and wrapper primitives, and the denial audit types. Permission
// data enters purely as in-memory arguments supplied by the caller; the
// package never fetches, refreshes, or persists a permission set.
//
// # What this package must NOT do
//
//   - Perform I/O on the query path. HasPermission is a map lookup plus an
//     optional callback and a non-blocking audit enqueue.
//   - Normalize permission identifiers. Comparison is exact string equality.
//   - Swallow wiring mistakes. A query outside any scope fails with
//     [ErrNoScope]; it never silently reports false.
//
// # Concurrency contract
//
// A Scope is single-writer, multi-reader: Replace and SetPermissions swap an
// immutable snapshot atomically, so concurrent queries observe either the old
// set or the new one, never a torn mix. All Scope methods are safe for
// concurrent use after Build.
package permscope
