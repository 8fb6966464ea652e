package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"
	"github.com/velvetrope/velvet-rope/internal/config"
	"github.com/velvetrope/velvet-rope/internal/constants"
)

// NewListCmd creates the list command
func NewListCmd(getGuard func(string) (interface {
	Run() error
	Description() string
}, bool), guardKeys func() []string,
) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List available guards",
		Description: `List all registered guards that can be run.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			keys := guardKeys()
			sort.Strings(keys)

			fmt.Println("Available guards:")
			fmt.Println()
			for _, key := range keys {
				g, _ := getGuard(key)
				fmt.Printf("  %s - %s\n", key, g.Description())
			}
			fmt.Println()
			fmt.Printf("Use '%s run <key>' to run a guard.\n", constants.BinaryName)
			fmt.Printf("Use '%s install <key>' to install a guard.\n", constants.BinaryName)
			return nil
		},
	}
}

// NewListInstalledCmd creates the list-installed command
func NewListInstalledCmd() *cli.Command {
	return &cli.Command{
		Name:        "list-installed",
		Usage:       "List installed hooks from settings",
		Description: `List all hooks currently configured in Claude Code settings.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Show global settings (~/.claude/settings.json)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			global := cmd.Bool("global")

			settingsPath, err := config.GetSettingsPath(global)
			if err != nil {
				return fmt.Errorf("error getting settings path: %v", err)
			}

			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("error loading settings: %v", err)
			}

			scope := "project"
			if global {
				scope = "global"
			}

			fmt.Printf("Installed hooks (%s settings):\n", scope)
			fmt.Printf("Settings file: %s\n\n", settingsPath)

			if config.IsHooksConfigEmpty(settings.Hooks) {
				fmt.Println("No hooks are currently installed.")
				return nil
			}

			printHookMatchers("PreToolUse", settings.Hooks.PreToolUse)
			printHookMatchers("PostToolUse", settings.Hooks.PostToolUse)
			printHookMatchers("UserPromptSubmit", settings.Hooks.UserPromptSubmit)
			printHookMatchers("Notification", settings.Hooks.Notification)
			printHookMatchers("Stop", settings.Hooks.Stop)
			printHookMatchers("SubagentStop", settings.Hooks.SubagentStop)
			printHookMatchers("PreCompact", settings.Hooks.PreCompact)
			printHookMatchers("SessionStart", settings.Hooks.SessionStart)
			printHookMatchers("SessionEnd", settings.Hooks.SessionEnd)
			return nil
		},
	}
}

// NewListEventsCmd creates the list-events command
func NewListEventsCmd(allEvents func() []ClaudeCodeEvent) *cli.Command {
	return &cli.Command{
		Name:        "list-events",
		Usage:       "List all available Claude Code hook events",
		Description: `List all Claude Code hook events that can be configured in settings.json.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println("Available Claude Code Hook Events:")
			fmt.Println()

			events := allEvents()
			supported := 0
			for _, event := range events {
				status := " ⚠ (Claude Code only)"
				if event.SupportedByCCHooks {
					status = " ✓ (cchooks library)"
					supported++
				}

				fmt.Printf("  %s%s\n", event.Name, status)
				fmt.Printf("      %s\n", event.Description)
				fmt.Println()
			}

			fmt.Printf("Total: %d events available (%d supported by cchooks library)\n\n", len(events), supported)
			fmt.Printf("Use '%s install <key> --event <event-name>' to install a guard for a specific event.\n", constants.BinaryName)
			return nil
		},
	}
}

func printHookMatchers(eventName string, matchers []config.HookMatcher) {
	if len(matchers) == 0 {
		return
	}

	fmt.Printf("%s:\n", eventName)
	for _, matcher := range matchers {
		matcherStr := matcher.Matcher
		if matcherStr == "" {
			matcherStr = "*"
		}
		fmt.Printf("  Matcher: %s\n", matcherStr)
		for _, hook := range matcher.Hooks {
			fmt.Printf("    - %s", hook.Command)
			if hook.Timeout != nil {
				fmt.Printf(" (timeout: %ds)", *hook.Timeout)
			}
			fmt.Println()
		}
	}
	fmt.Println()
}
