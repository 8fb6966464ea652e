// Package cmd defines the CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/velvetrope/velvet-rope/internal/config"
	"github.com/velvetrope/velvet-rope/internal/core"
)

// NewRunCmd builds the run command. Informational output goes to stderr:
// stdout carries only the hook protocol response, which the calling agent
// parses.
func NewRunCmd(getGuard func(string) (interface {
	Run() error
	Description() string
}, bool), isGuardEnabled func(string) bool, guardKeys func() []string,
) *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Run a specific guard",
		ArgsUsage:   "[guard-key]",
		Description: `Run a specific guard. Reads the tool event from stdin and answers on stdout.`,
		Flags: []cli.Flag{
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

			g, exists := getGuard(key)
			if !exists {
				return fmt.Errorf("guard '%s' not found.\nAvailable guards: %s", key, strings.Join(guardKeys(), ", "))
			}

			// Enablement check before side effects
			if !isGuardEnabled(key) {
				fmt.Fprintf(os.Stderr, "Guard '%s' is disabled via settings. Nothing to do.\n", key)
				return nil
			}

			logEnabled := cmd.Bool("log")
			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if logEnabled && !config.IsValidLoggingFormat(logFormat) {
				return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
			}
			if logEnabled {
				logConfig := config.GetLogRotationConfigFromFile(false)
				if logConfig.MaxAge == 0 && logConfig.MaxSize == 0 {
					logConfig = config.GetLogRotationConfigFromFile(true)
				}

				logPath := config.GetLogPath(key)
				rotatingLogger := config.SetupLogRotation(logPath, logConfig)
				core.SetGlobalLoggingConfig(true, ".claude/hooks", logFormat)
				if rotatingLogger != nil {
					fmt.Fprintf(os.Stderr, "Logging enabled with rotation - output will be written to %s\n", logPath)
					if err := config.CleanupOldLogs(filepath.Dir(logPath), logConfig.MaxAge); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: Failed to cleanup old logs: %v\n", err)
					}
				} else {
					fmt.Fprintf(os.Stderr, "Logging enabled - output will be written to %s\n", logPath)
				}
			}

			if err := g.Run(); err != nil {
				return fmt.Errorf("guard '%s' failed: %v", key, err)
			}
			return nil
		},
	}
}
