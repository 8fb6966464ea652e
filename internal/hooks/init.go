package hooks

import "github.com/velvetrope/velvet-rope/internal/core"

// init registers the built-in guards using batch registration
func init() {
	builtinGuards := map[string]core.HookFactory{
		"bash-guard":  NewBashGuardHook,
		"write-guard": NewWriteGuardHook,
	}
	core.RegisterBuiltinHooks(builtinGuards)
}
