package hooks

import (
	"testing"

	"github.com/velvetrope/velvet-rope/internal/core"
)

func TestBashGuardHook(t *testing.T) {
	ctx := core.TestHookContext(nil)
	hook := NewBashGuardHook(ctx)

	if hook.Key() != "bash-guard" {
		t.Errorf("Expected key 'bash-guard', got '%s'", hook.Key())
	}

	if hook.Name() != "Bash Guard" {
		t.Errorf("Expected name 'Bash Guard', got '%s'", hook.Name())
	}

	if !hook.IsEnabled() {
		t.Error("Expected guard to be enabled by default")
	}

	// Running with the mock runner factory should not error or block
	err := hook.Run()
	if err != nil {
		t.Errorf("Guard run failed: %v", err)
	}
}

func TestBashGuardHookDisabled(t *testing.T) {
	ctx := core.TestHookContext(func(string) bool { return false })
	hook := NewBashGuardHook(ctx)

	if hook.IsEnabled() {
		t.Error("Expected guard to be disabled")
	}

	// Running a disabled guard is a no-op
	err := hook.Run()
	if err != nil {
		t.Errorf("Disabled guard run failed: %v", err)
	}
}

func TestBashGuardRegistered(t *testing.T) {
	keys := core.GetHookKeys()

	found := map[string]bool{}
	for _, k := range keys {
		found[k] = true
	}
	for _, want := range []string{"bash-guard", "write-guard"} {
		if !found[want] {
			t.Errorf("Expected '%s' in registry keys, got %v", want, keys)
		}
	}
}
