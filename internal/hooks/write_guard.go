package hooks

import (
	"context"
	"strings"

	"github.com/brads3290/cchooks"
	"github.com/velvetrope/velvet-rope/internal/config"
	"github.com/velvetrope/velvet-rope/internal/constants"
	"github.com/velvetrope/velvet-rope/internal/core"
	"github.com/velvetrope/velvet-rope/internal/rules"
)

// WriteGuardHook screens file writes and edits for hardcoded secrets,
// deprecated framework patterns, and directive mistakes before they land.
type WriteGuardHook struct {
	*core.BaseHook
	secrets rules.SecretExtras
}

// NewWriteGuardHook creates a new write guard instance
func NewWriteGuardHook(ctx *core.HookContext) core.Hook {
	base := core.NewBaseHook("write-guard", "Write Guard", "Rejects file writes containing hardcoded secrets or deprecated patterns", ctx)
	return &WriteGuardHook{
		BaseHook: base,
		secrets:  config.LoadGuardExtras().Secrets,
	}
}

// Run executes the write guard.
func (h *WriteGuardHook) Run() error {
	return h.StandardRun(h.preToolUseHandler, nil)
}

func (h *WriteGuardHook) preToolUseHandler(_ context.Context, event *cchooks.PreToolUseEvent) cchooks.PreToolUseResponseInterface {
	var input rules.WriteInput

	switch event.ToolName {
	case constants.ToolWrite:
		write, err := event.AsWrite()
		if err != nil {
			h.LogError("write_input_parse_error", event.ToolName, err)
			return cchooks.Approve()
		}
		input = rules.WriteInput{FilePath: write.FilePath, Content: write.Content}

	case constants.ToolEdit:
		edit, err := event.AsEdit()
		if err != nil {
			h.LogError("edit_input_parse_error", event.ToolName, err)
			return cchooks.Approve()
		}
		input = rules.WriteInput{
			FilePath:  edit.FilePath,
			Content:   edit.NewString,
			OldString: edit.OldString,
		}

	default:
		return cchooks.Approve()
	}

	result := rules.EvalWrite(input, h.secrets)

	if !result.Allowed() {
		// A rejected write reports only its block reasons, one per line.
		h.LogBlock("write_blocked", event.ToolName, map[string]interface{}{
			"file_path": input.FilePath,
			"reasons":   result.Blocked,
		})
		return cchooks.Block(strings.Join(result.Blocked, "\n"))
	}

	core.EmitWarnings(result.Warnings)
	h.LogApproval("write_allowed", event.ToolName, map[string]interface{}{
		"file_path": input.FilePath,
		"warnings":  len(result.Warnings),
	})
	return core.Ask()
}
