package permscope

import "fmt"

// DenialCallback is the optional reporting hook invoked when a queried
// permission is absent from the current set. It receives the identifier that
// failed the check. The callback is a side-effect hook, not a veto: the query
// result is returned to the caller regardless.
type DenialCallback func(permission string)

// store is one immutable snapshot of scope state: the granted set and the
// denial callback paired with it. A Scope replaces the whole snapshot on
// update; it never mutates one in place, so readers need no lock.
type store struct {
	perms    map[string]struct{}
	onDenied DenialCallback
}

func newStore(permissions []string, onDenied DenialCallback, cfg PermissionConfig) (*store, error) {
	if len(permissions) > cfg.MaxPermissions {
		return nil, fmt.Errorf("%w: %d permissions exceeds limit %d",
			ErrInvalidPermissionSet, len(permissions), cfg.MaxPermissions)
	}

	perms := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		if p == "" {
			return nil, fmt.Errorf("%w: empty identifier", ErrInvalidPermissionSet)
		}
		if len(p) > cfg.MaxIdentifierLength {
			return nil, fmt.Errorf("%w: identifier exceeds %d bytes",
				ErrInvalidPermissionSet, cfg.MaxIdentifierLength)
		}
		perms[p] = struct{}{}
	}

	return &store{
		perms:    perms,
		onDenied: onDenied,
	}, nil
}

func (s *store) has(permission string) bool {
	_, ok := s.perms[permission]
	return ok
}
