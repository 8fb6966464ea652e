// Package rules holds the static classification tables for both guards and
// the pure evaluation functions over them. Nothing in this package performs
// I/O; every table is built once at init and never mutated.
package rules

import (
	"regexp"
	"strings"
)

// Rule pairs a pattern with the message printed when it fires. Exclude, when
// set, vetoes a match (RE2 has no lookaround; an exclude pattern covers the
// few rules the source expressed with one).
type Rule struct {
	Pattern *regexp.Regexp
	Exclude *regexp.Regexp
	Message string
}

// Matches reports whether the rule fires on s.
func (r Rule) Matches(s string) bool {
	if !r.Pattern.MatchString(s) {
		return false
	}
	if r.Exclude != nil && r.Exclude.MatchString(s) {
		return false
	}
	return true
}

// CommandVerdict is the structural outcome of a command evaluation.
type CommandVerdict int

const (
	// CommandAllowDefault allows the command without an auto-approval
	// signal, leaving the caller's own confirmation policy in charge.
	CommandAllowDefault CommandVerdict = iota
	// CommandAllowSafe allows the command and signals that no further
	// confirmation is needed.
	CommandAllowSafe
	// CommandBlock rejects the command.
	CommandBlock
)

// CommandResult carries the verdict plus any diagnostic text.
type CommandResult struct {
	Verdict  CommandVerdict
	Reason   string   // set only when Verdict == CommandBlock
	Warnings []string // advisory lines, printed even on default allow
}

// blockedCommands is evaluated first; the first match wins. Matching is an
// unanchored search so a dangerous fragment anywhere in a compound command
// (joined by &&, ; or pipes) still fires.
var blockedCommands = []Rule{
	{Pattern: regexp.MustCompile(`\brm\s+(-[a-zA-Z]*r[a-zA-Z]*f|-[a-zA-Z]*f[a-zA-Z]*r)\b`), Message: "Blocked: recursive force deletion"},
	{Pattern: regexp.MustCompile(`\bsudo\b`), Message: "Blocked: sudo commands not allowed"},
	{Pattern: regexp.MustCompile(`\bnpm publish\b`), Message: "Blocked: publishing packages not allowed"},
	{Pattern: regexp.MustCompile(`\bcurl\b.*\|\s*(ba)?sh`), Message: "Blocked: piping curl to shell"},
	{Pattern: regexp.MustCompile(`\bwget\b.*\|\s*(ba)?sh`), Message: "Blocked: piping wget to shell"},
	{Pattern: regexp.MustCompile(`\bchmod\s+777\b`), Message: "Blocked: setting world-writable permissions"},
	{
		Pattern: regexp.MustCompile(`\bgit\s+push\s+.*--force\b`),
		Exclude: regexp.MustCompile(`--force-with-lease`),
		Message: "Blocked: force push - use --force-with-lease instead",
	},
	{Pattern: regexp.MustCompile(`\bgit\s+push\s+.*-f\b`), Message: "Blocked: force push - use --force-with-lease instead"},
	{Pattern: regexp.MustCompile(`\bgit\s+reset\s+--hard\b`), Message: "Blocked: hard reset - this destroys uncommitted work"},
	{Pattern: regexp.MustCompile(`\bgit\s+clean\s+-f`), Message: "Blocked: git clean - this permanently deletes untracked files"},
	{Pattern: regexp.MustCompile(`\bnpx\s+prisma\s+migrate\s+reset\b`), Message: "Blocked: prisma migrate reset - this drops and recreates the database"},
	{Pattern: regexp.MustCompile(`\bnpx\s+prisma\s+migrate\s+resolve\b`), Message: "Blocked: prisma migrate resolve - dangerous in production, can corrupt migration history"},
	{Pattern: regexp.MustCompile(`\bnpx\s+prisma\s+db\s+drop\b`), Message: "Blocked: prisma db drop - this drops the database"},
	{Pattern: regexp.MustCompile(`\bdd\s+if=`), Message: "Blocked: dd can destroy disk data"},
	{Pattern: regexp.MustCompile(`\bmkfs\b`), Message: "Blocked: filesystem format command"},
}

// commandWarnings never change the verdict; every match is reported.
var commandWarnings = []Rule{
	{Pattern: regexp.MustCompile(`\bgit\s+commit\b.*--amend\b`), Message: "Warning: git commit --amend rewrites history - risky if already pushed"},
	{
		Pattern: regexp.MustCompile(`\bnpx\s+prisma\s+migrate\s+dev\b`),
		Exclude: regexp.MustCompile(`\bnpx\s+prisma\s+migrate\s+dev\b.*--name`),
		Message: "Warning: prisma migrate dev without --name - unnamed migrations are confusing",
	},
	{Pattern: regexp.MustCompile(`\bnpm\s+update\b`), Message: "Warning: npm update can change many packages at once - review changes before bulk updating"},
	{Pattern: regexp.MustCompile(`\brm\s+-rf\s+\.next\b`), Message: "Warning: rm -rf .next - deleting build cache. Run `npm run build` to regenerate."},
}

// safeCommands auto-allow common benign prefixes: read-only git inspection,
// the project's task runners, and basic filesystem utilities.
var safeCommands = []*regexp.Regexp{
	regexp.MustCompile(`^npm run\b`),
	regexp.MustCompile(`^npm test\b`),
	regexp.MustCompile(`^npx next\b`),
	regexp.MustCompile(`^npx tsc\b`),
	regexp.MustCompile(`^npx prisma generate\b`),
	regexp.MustCompile(`^npx prisma migrate dev\b`),
	regexp.MustCompile(`^npx prisma format\b`),
	regexp.MustCompile(`^npx prisma studio\b`),
	regexp.MustCompile(`^npx prisma db push\b`),
	regexp.MustCompile(`^npx shadcn@latest\b`),
	regexp.MustCompile(`^npx shadcn\b`),
	regexp.MustCompile(`^npx vitest\b`),
	regexp.MustCompile(`^npx playwright\b`),
	regexp.MustCompile(`^npx prettier\b`),
	regexp.MustCompile(`^npx turbo\b`),
	regexp.MustCompile(`^npx create-next-app\b`),
	regexp.MustCompile(`^npx tsx\b`),
	regexp.MustCompile(`^npx next lint\b`),
	regexp.MustCompile(`^npm run seed\b`),
	regexp.MustCompile(`^npm outdated\b`),
	regexp.MustCompile(`^npm ls\b`),
	regexp.MustCompile(`^npx next info\b`),
	regexp.MustCompile(`^npx playwright install\b`),
	regexp.MustCompile(`^node\b`),
	regexp.MustCompile(`^git status\b`),
	regexp.MustCompile(`^git log\b`),
	regexp.MustCompile(`^git diff\b`),
	regexp.MustCompile(`^git branch\b`),
	regexp.MustCompile(`^git show\b`),
	regexp.MustCompile(`^git stash list\b`),
	regexp.MustCompile(`^git stash pop\b`),
	regexp.MustCompile(`^git stash apply\b`),
	regexp.MustCompile(`^git push --force-with-lease\b`),
	regexp.MustCompile(`^git remote -v\b`),
	regexp.MustCompile(`^ls\b`),
	regexp.MustCompile(`^pwd\b`),
	regexp.MustCompile(`^which\b`),
	regexp.MustCompile(`^echo\b`),
	regexp.MustCompile(`^cat\b`),
	regexp.MustCompile(`^head\b`),
	regexp.MustCompile(`^tail\b`),
	regexp.MustCompile(`^wc\b`),
	regexp.MustCompile(`^tree\b`),
}

// Extra rules merged from a guard-rules.yml overlay. Appended after the
// built-ins so built-in ordering is preserved.
type CommandExtras struct {
	Blocked  []Rule
	Warnings []Rule
	Safe     []*regexp.Regexp
}

// EvalCommand classifies a raw command line. Phases run in fixed order:
// blocked (first match wins), warnings (all matches collected), safe-allow,
// then the default verdict. An empty command allows silently.
func EvalCommand(command string, extras *CommandExtras) CommandResult {
	command = strings.TrimSpace(command)
	if command == "" {
		return CommandResult{Verdict: CommandAllowDefault}
	}

	blocked := blockedCommands
	warnings := commandWarnings
	safe := safeCommands
	if extras != nil {
		blocked = append(append([]Rule{}, blocked...), extras.Blocked...)
		warnings = append(append([]Rule{}, warnings...), extras.Warnings...)
		safe = append(append([]*regexp.Regexp{}, safe...), extras.Safe...)
	}

	for _, r := range blocked {
		if r.Matches(command) {
			return CommandResult{Verdict: CommandBlock, Reason: r.Message}
		}
	}

	var warns []string
	for _, r := range warnings {
		if r.Matches(command) {
			warns = append(warns, r.Message)
		}
	}

	for _, p := range safe {
		if p.MatchString(command) {
			return CommandResult{Verdict: CommandAllowSafe, Warnings: warns}
		}
	}

	return CommandResult{Verdict: CommandAllowDefault, Warnings: warns}
}
