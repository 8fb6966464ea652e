package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/velvetrope/velvet-rope/internal/config"
)

// Settings scope labels used in error suggestions
const (
	ScopeProject = "project"
	ScopeGlobal  = "global"
)

// defaultMatcherForGuard returns the tool matcher a guard should watch when
// the user doesn't pass one. Each guard only makes sense for its own tools.
func defaultMatcherForGuard(key string) string {
	switch key {
	case "bash-guard":
		return "Bash"
	case "write-guard":
		return "Write|Edit"
	default:
		return "*"
	}
}

// NewInstallCmd creates the install command
func NewInstallCmd(getGuard func(string) (interface {
	Run() error
	Description() string
}, bool), guardKeys func() []string, isValidEventType func(string) bool, validEventTypes func() []string,
) *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install a guard into Claude Code settings",
		ArgsUsage: "[guard-key]",
		Description: `Install a guard into your Claude Code settings.json file.
This will automatically configure the guard to run for the specified events.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Install to global settings (~/.claude/settings.json)",
			},
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Value:   "PreToolUse",
				Usage:   "Hook event (PreToolUse, PostToolUse, UserPromptSubmit, etc.)",
			},
			&cli.StringFlag{
				Name:    "matcher",
				Aliases: []string{"m"},
				Usage:   "Tool matcher pattern (defaults to the guard's own tools)",
			},
			&cli.IntFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Value:   0,
				Usage:   "Command timeout in seconds (0 for no timeout)",
			},
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   false,
				Usage:   "Enable detailed logging to .claude/hooks/<guard-key>.log",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "jsonl",
				Usage: "Log output format: jsonl or pretty (default jsonl)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [guard-key]")
			}
			key := args[0]

			if _, exists := getGuard(key); !exists {
				return fmt.Errorf("guard '%s' not found.\nAvailable guards: %s", key, strings.Join(guardKeys(), ", "))
			}

			global := cmd.Bool("global")
			event := cmd.String("event")
			matcher := cmd.String("matcher")
			if matcher == "" {
				matcher = defaultMatcherForGuard(key)
			}
			timeoutFlag := cmd.Int("timeout")
			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}

			if !isValidEventType(event) {
				return fmt.Errorf("invalid event '%s'.\nValid events: %s", event, strings.Join(validEventTypes(), ", "))
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %v", err)
			}

			// Create command: velvet-rope run <key>
			hookCommand := fmt.Sprintf("%s run %s", execPath, key)
			if logEnabled {
				hookCommand += " --log"
				if logFormat != config.LoggingFormatJSONL {
					hookCommand += fmt.Sprintf(" --log-format %s", logFormat)
				}
			}

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				scope := ScopeProject
				if global {
					scope = ScopeGlobal
				}
				return fmt.Errorf("failed to locate %s settings path: %w", scope, err)
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings from %s: %w\n  Suggestion: Verify the settings file format is valid JSON", settingsPath, err)
			}

			var timeout *int
			if timeoutFlag > 0 {
				timeout = &timeoutFlag
			}
			result := config.AddHookToSettings(settings, event, matcher, hookCommand, timeout)

			isDuplicateNoChange := false
			if result.WasDuplicate {
				if strings.Contains(result.DuplicateInfo, "Replaced existing") {
					fmt.Printf("🔄 %s\n", result.DuplicateInfo)
				} else {
					fmt.Printf("⚠️  Hook already installed: %s\n", result.DuplicateInfo)
					fmt.Printf("No changes made. The guard is already configured for this event.\n")
					isDuplicateNoChange = true
				}
			}

			if !isDuplicateNoChange {
				if err := config.SaveSettings(settingsPath, settings); err != nil {
					return fmt.Errorf("failed to save settings to %s: %w\n  Suggestion: Check file permissions and disk space", settingsPath, err)
				}
			}

			scope := "project"
			if global {
				scope = "global"
			}

			if !isDuplicateNoChange {
				fmt.Printf("✅ Successfully installed %s guard in %s settings\n", key, scope)
				fmt.Printf("   Event: %s\n", event)
				fmt.Printf("   Matcher: %s\n", matcher)
				fmt.Printf("   Command: %s\n", hookCommand)
				fmt.Printf("   Settings: %s\n", settingsPath)
				fmt.Println()
				fmt.Println("The guard will be active in new Claude Code sessions.")
				fmt.Println("Use 'claude /hooks' to verify the configuration.")
			}
			return nil
		},
	}
}

// NewUninstallCmd creates the uninstall command
func NewUninstallCmd() *cli.Command {
	return &cli.Command{
		Name:        "uninstall",
		Usage:       "Remove a guard from Claude Code settings",
		ArgsUsage:   "[guard-key|all]",
		Description: `Remove a guard from your Claude Code settings.json file. Use 'all' to remove every velvet-rope entry.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Remove from global settings (~/.claude/settings.json)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [guard-key|all]")
			}
			key := args[0]
			global := cmd.Bool("global")

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				scope := ScopeProject
				if global {
					scope = ScopeGlobal
				}
				return fmt.Errorf("failed to locate %s settings path: %w", scope, err)
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings from %s: %w", settingsPath, err)
			}

			var removed int
			if key == "all" {
				removed = config.RemoveAllVelvetRopeFromSettings(settings)
			} else {
				removed = config.RemoveGuardFromSettings(settings, key)
			}

			if removed == 0 {
				return fmt.Errorf("guard '%s' was not found in settings", key)
			}

			if err := config.SaveSettings(settingsPath, settings); err != nil {
				return fmt.Errorf("error saving settings: %v", err)
			}

			scope := "project"
			if global {
				scope = "global"
			}

			fmt.Printf("✅ Removed %d hook entr%s from %s settings\n", removed, pluralY(removed), scope)
			fmt.Printf("   Settings: %s\n", settingsPath)
			return nil
		},
	}
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
