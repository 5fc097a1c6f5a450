package permscope

import "fmt"

// Config controls scope construction limits, denial auditing, and metrics.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	Permission PermissionConfig
	Audit      AuditConfig
	Metrics    MetricsConfig
}

/*
====================================
PERMISSION CONFIG
====================================
*/

// PermissionConfig bounds the permission sets a scope accepts. Identifiers
// are opaque strings compared by exact equality; the limits exist only to
// reject obviously malformed input at construction time.
type PermissionConfig struct {
	MaxPermissions      int
	MaxIdentifierLength int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous denial audit pipeline. When Enabled
// is false no dispatcher is started and denial events are discarded (the
// synchronous denial callback still fires).
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the atomic counter set exposed via Scope.Metrics.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Permission: PermissionConfig{
			MaxPermissions:      1024,
			MaxIdentifierLength: 255,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports whether the configuration is internally consistent.
// Builder.Build calls this; it is exported so integrators can validate
// configuration loaded from their own sources before building.
func (c Config) Validate() error {
	if c.Permission.MaxPermissions <= 0 {
		return fmt.Errorf("%w: Permission.MaxPermissions must be > 0", ErrInvalidConfig)
	}
	if c.Permission.MaxIdentifierLength <= 0 {
		return fmt.Errorf("%w: Permission.MaxIdentifierLength must be > 0", ErrInvalidConfig)
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return fmt.Errorf("%w: Audit.BufferSize must be >= 0", ErrInvalidConfig)
	}
	return nil
}
