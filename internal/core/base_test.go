package core

import (
	"context"
	"testing"

	"github.com/brads3290/cchooks"
)

func TestBaseHook(t *testing.T) {
	ctx := TestHookContext(nil)

	hook := NewBaseHook("test", "Test Guard", "Test description", ctx)

	if hook.Key() != "test" {
		t.Errorf("Expected key 'test', got '%s'", hook.Key())
	}

	if hook.Name() != "Test Guard" {
		t.Errorf("Expected name 'Test Guard', got '%s'", hook.Name())
	}

	if hook.Description() != "Test description" {
		t.Errorf("Expected description 'Test description', got '%s'", hook.Description())
	}

	if !hook.IsEnabled() {
		t.Error("Expected guard to be enabled by default")
	}

	if hook.Context() != ctx {
		t.Error("Expected context to match provided context")
	}
}

func TestBaseHookDisabled(t *testing.T) {
	ctx := TestHookContext(func(string) bool { return false })

	hook := NewBaseHook("test", "Test Guard", "Test description", ctx)

	if hook.IsEnabled() {
		t.Error("Expected guard to be disabled")
	}
}

func TestBaseHookNilContext(t *testing.T) {
	hook := NewBaseHook("test", "Test Guard", "Test description", nil)

	if hook.Context() == nil {
		t.Error("Expected default context when nil provided")
	}
}

func TestStandardRunSkipsDisabled(t *testing.T) {
	factoryCalled := false
	ctx := TestHookContext(func(string) bool { return false })
	baseFactory := ctx.RunnerFactory
	ctx.RunnerFactory = func(pre func(context.Context, *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface,
		post func(context.Context, *cchooks.PostToolUseEvent) cchooks.PostToolUseResponseInterface,
	) Runner {
		factoryCalled = true
		return baseFactory(pre, post)
	}

	hook := NewBaseHook("test", "Test Guard", "Test description", ctx)
	if err := hook.StandardRun(nil, nil); err != nil {
		t.Fatalf("StandardRun failed: %v", err)
	}
	if factoryCalled {
		t.Error("Expected disabled guard to skip the runner")
	}
}

// testHook wraps BaseHook with a no-op Run so it satisfies the Hook interface
type testHook struct {
	*BaseHook
}

func (h *testHook) Run() error {
	return nil
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(TestHookContext(nil))

	factory := func(ctx *HookContext) Hook {
		return &testHook{BaseHook: NewBaseHook("reg-test", "Reg Test", "registry test guard", ctx)}
	}

	if err := reg.Register("reg-test", factory); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register("reg-test", factory); err == nil {
		t.Error("Expected duplicate registration to error")
	}

	h, err := reg.Create("reg-test")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if h.Key() != "reg-test" {
		t.Errorf("Expected created guard key 'reg-test', got '%s'", h.Key())
	}

	if _, err := reg.Create("missing"); err == nil {
		t.Error("Expected Create for unknown key to error")
	}

	keys := reg.Keys()
	if len(keys) != 1 || keys[0] != "reg-test" {
		t.Errorf("Unexpected keys: %v", keys)
	}
}
