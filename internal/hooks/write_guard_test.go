package hooks

import (
	"testing"

	"github.com/velvetrope/velvet-rope/internal/core"
)

func TestWriteGuardHook(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewWriteGuardHook(ctx)

	if hook.Key() != "write-guard" {
		t.Errorf("Expected key 'write-guard', got '%s'", hook.Key())
	}

	if hook.Name() != "Write Guard" {
		t.Errorf("Expected name 'Write Guard', got '%s'", hook.Name())
	}

	if !hook.IsEnabled() {
		t.Error("Expected guard to be enabled by default")
	}

	err := hook.Run()
	if err != nil {
		t.Errorf("Guard run failed: %v", err)
	}
}

func TestWriteGuardHookDisabled(t *testing.T) {
	ctx := core.TestHookContext(func(key string) bool { return key != "write-guard" })
	hook := NewWriteGuardHook(ctx)

	if hook.IsEnabled() {
		t.Error("Expected guard to be disabled")
	}

	err := hook.Run()
	if err != nil {
		t.Errorf("Disabled guard run failed: %v", err)
	}
}
