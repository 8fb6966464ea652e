package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"
	"github.com/velvetrope/velvet-rope/internal/cmd"
	"github.com/velvetrope/velvet-rope/internal/config"
	"github.com/velvetrope/velvet-rope/internal/constants"
	"github.com/velvetrope/velvet-rope/internal/core"
	_ "github.com/velvetrope/velvet-rope/internal/hooks"
)

// Set via -ldflags at release time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// getGuard looks up a guard in the registry.
func getGuard(key string) (interface {
	Run() error
	Description() string
}, bool,
) {
	h, err := core.CreateHook(key)
	if err != nil {
		return nil, false
	}
	return h, true
}

func main() {
	// Guards consult settings for enablement; swap the always-on default
	// for the settings-backed checker before anything runs.
	ctx := core.DefaultHookContext()
	ctx.SettingsChecker = config.IsPluginEnabled
	core.SetGlobalContext(ctx)

	root := &cli.Command{
		Name:        constants.BinaryName,
		Usage:       "Claude Code guard runner and manager",
		Description: constants.ProjectTagline,
		Commands: []*cli.Command{
			cmd.NewRunCmd(getGuard, config.IsPluginEnabled, core.GetHookKeys),
			cmd.NewListCmd(getGuard, core.GetHookKeys),
			cmd.NewListInstalledCmd(),
			cmd.NewListEventsCmd(cmd.AllEvents),
			cmd.NewInstallCmd(getGuard, core.GetHookKeys, cmd.IsValidEventType, cmd.ValidEventTypes),
			cmd.NewUninstallCmd(),
			cmd.NewVersionCmd(cmd.VersionInfo{
				Version: version,
				Commit:  commit,
				Date:    date,
				GoVer:   runtime.Version(),
			}),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
