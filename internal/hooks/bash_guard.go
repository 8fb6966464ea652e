// Package hooks contains the guard implementations and registers them with
// the core registry.
package hooks

import (
	"context"

	"github.com/brads3290/cchooks"
	"github.com/velvetrope/velvet-rope/internal/config"
	"github.com/velvetrope/velvet-rope/internal/constants"
	"github.com/velvetrope/velvet-rope/internal/core"
	"github.com/velvetrope/velvet-rope/internal/rules"
)

// BashGuardHook classifies shell commands before they run: dangerous ones are
// blocked, known-benign ones are auto-approved, everything else falls through
// to the default confirmation flow.
type BashGuardHook struct {
	*core.BaseHook
	extras *rules.CommandExtras
}

// NewBashGuardHook creates a new bash guard instance
func NewBashGuardHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("bash-guard", "Bash Guard", "Blocks destructive shell commands and auto-approves known-safe ones", ctx)
	return &BashGuardHook{
		BaseHook: base,
		extras:   config.LoadGuardExtras().Command,
	}
}

// Run executes the bash guard.
func (h *BashGuardHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *BashGuardHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	if event.ToolName != constants.ToolBash {
		return cchooks.Approve()
	}

	bash, err := event.AsBash()
	if err != nil {
		// Fail open: a guard that cannot read its input must not wedge
		// the session.
		h.LogError("bash_input_parse_error", event.ToolName, err)
		return cchooks.Approve()
	}

	result := rules.EvalCommand(bash.Command, h.extras)

	switch result.Verdict {
	case rules.CommandBlock:
		// Warnings are suppressed on a block; the reason stands alone.
		h.LogBlock("command_blocked", constants.ToolBash, map[string]interface{}{
			"command": bash.Command,
			"reason":  result.Reason,
		})
		return cchooks.Block(result.Reason)

	case rules.CommandAllowSafe:
		core.EmitWarnings(result.Warnings)
		h.LogApproval("command_safe_allowed", constants.ToolBash, map[string]interface{}{
			"command":  bash.Command,
			"warnings": len(result.Warnings),
		})
		return cchooks.Approve()

	default:
		core.EmitWarnings(result.Warnings)
		h.LogApproval("command_default_allowed", constants.ToolBash, map[string]interface{}{
			"command":  bash.Command,
			"warnings": len(result.Warnings),
		})
		return core.Ask()
	}
}
