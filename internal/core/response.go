package core

import (
	"fmt"
	"io"
	"os"

	"github.com/brads3290/cchooks"
)

// Warnings is the diagnostic channel for advisory messages. Hooks write one
// line per warning; stdout stays reserved for the hook protocol.
var Warnings io.Writer = os.Stderr

// EmitWarnings writes each advisory message as a single line on the
// diagnostic channel. Callers must not emit warnings for a blocked verdict;
// a rejected operation surfaces only its block reasons.
func EmitWarnings(msgs []string) {
	for _, m := range msgs {
		fmt.Fprintln(Warnings, m)
	}
}

// Ask allows an operation without granting the auto-approval that
// cchooks.Approve carries: the caller's own confirmation policy should still
// apply. cchooks v0.7.0 has no ask/no-decision response, so this currently
// falls back to approve, the same workaround the library's other consumers
// use.
//
// TODO: return cchooks.Ask() once the cchooks library adds it.
func Ask() cchooks.PreToolUseResponseInterface {
	return cchooks.Approve()
}
