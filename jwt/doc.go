// Package jwt extracts permission sets from caller-supplied signed tokens.
//
// An [Extractor] validates a token (signature, method, issuer, audience,
// expiry with bounded leeway) and returns the string slice found in a
// configurable claim. The result is plain data: the caller passes it to a
// permscope Builder or Scope like any other permission set. This package is
// claim decoding, not a permission source; it performs no network I/O and
// never refreshes anything.
//
// # What this package must NOT do
//
//   - Sign or mint tokens.
//   - Import the permscope root package (data flows one way, caller-mediated).
//   - Accept unsigned ("none") tokens under any configuration.
package jwt
