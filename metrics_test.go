package permscope

import (
	"context"
	"errors"
	"testing"
)

func TestMetricsCounters(t *testing.T) {
	scope := newTestScope(t, []string{"read"}, nil)
	ctx := WithScope(context.Background(), scope)

	for i := 0; i < 2; i++ {
		if _, err := HasPermission(ctx, "read"); err != nil {
			t.Fatalf("HasPermission error: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := HasPermission(ctx, "write"); err != nil {
			t.Fatalf("HasPermission error: %v", err)
		}
	}
	if _, err := HasPermission(ctx, ""); !errors.Is(err, ErrInvalidPermission) {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
	if err := scope.SetPermissions([]string{"read", "write"}); err != nil {
		t.Fatalf("SetPermissions failed: %v", err)
	}

	snap := scope.Metrics()
	if snap.CheckGranted != 2 {
		t.Fatalf("CheckGranted = %d, want 2", snap.CheckGranted)
	}
	if snap.CheckDenied != 3 {
		t.Fatalf("CheckDenied = %d, want 3", snap.CheckDenied)
	}
	if snap.CheckInvalid != 1 {
		t.Fatalf("CheckInvalid = %d, want 1", snap.CheckInvalid)
	}
	if snap.ScopeReplaced != 1 {
		t.Fatalf("ScopeReplaced = %d, want 1", snap.ScopeReplaced)
	}
}

func TestFallbackRenderedCounter(t *testing.T) {
	scope := newTestScope(t, nil, nil)
	ctx := WithScope(context.Background(), scope)

	wrapped := Require("admin.panel", text("denied"))(text("secret"))
	render(t, ctx, wrapped)

	if snap := scope.Metrics(); snap.FallbackRendered != 1 {
		t.Fatalf("FallbackRendered = %d, want 1", snap.FallbackRendered)
	}
}

func TestMetricsDisabled(t *testing.T) {
	scope, err := New().
		WithPermissions([]string{"read"}).
		WithMetricsEnabled(false).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer scope.Close()

	ctx := WithScope(context.Background(), scope)
	if _, err := HasPermission(ctx, "read"); err != nil {
		t.Fatalf("HasPermission error: %v", err)
	}
	if _, err := HasPermission(ctx, "write"); err != nil {
		t.Fatalf("HasPermission error: %v", err)
	}

	if snap := scope.Metrics(); snap != (MetricsSnapshot{}) {
		t.Fatalf("disabled metrics produced non-zero snapshot: %+v", snap)
	}
}
