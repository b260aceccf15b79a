package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/notice"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newUseCommand(app *App) *cobra.Command {
	var project bool

	cmd := &cobra.Command{
		Use:   "use <version|group>",
		Short: "Set the default Node.js version, or the one of this project",
		Long: `Set the Node.js version used by default.

With --project, pin the version for the current directory instead by
writing a .nvmdrc. A group name may be given with --project, in which case
the project follows the version the group pins.

Examples:
  nvmd use 20.8.0
  nvmd use 18.17.1 --project
  nvmd use backend --project`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if project {
				return useProject(cmd.Context(), app, args[0])
			}
			return useGlobal(cmd.Context(), app, args[0])
		},
	}

	cmd.Flags().BoolVarP(&project, "project", "p", false, "Pin the version for the current project")
	return cmd
}

func useGlobal(ctx context.Context, app *App, arg string) error {
	groups, err := app.Groups.Load()
	if err != nil {
		return err
	}
	if groups.Exists(arg) {
		return fmt.Errorf("Group@%s can only be used for projects", arg)
	}

	version, err := installedVersion(app, arg)
	if err != nil {
		return err
	}

	if err := config.SetGlobalVersion(app.Config.Home, version); err != nil {
		return fmt.Errorf("failed to set the default version: %w", err)
	}

	ui.Println("Now using node v%s", version)
	app.Notifier.Notify(ctx, notice.Current(version))
	return nil
}

func useProject(ctx context.Context, app *App, arg string) error {
	groups, err := app.Groups.Load()
	if err != nil {
		return err
	}

	var (
		version string
		group   string
	)
	if groups.Exists(arg) {
		group = arg
		if version, err = groups.VersionOf(arg); err != nil {
			return err
		}
		if !app.installed(version) {
			return fmt.Errorf("Node@v%s has not been installed", version)
		}
	} else if version, err = installedVersion(app, arg); err != nil {
		return err
	}

	dir := app.Config.Dir
	name := filepath.Base(dir)

	// Projects record the group they follow rather than its version
	pinned := version
	if group != "" {
		pinned = group
	}

	if err := app.Projects.Patch(dir, name, pinned); err != nil {
		return err
	}
	if group != "" {
		if err := app.Groups.AddProject(group, dir); err != nil {
			return err
		}
	}
	if err := config.SetLocalVersion(dir, version); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Join(dir, constants.VersionFileName), err)
	}

	if group != "" {
		ui.Println("Now using node v%s (%s)", version, group)
	} else {
		ui.Println("Now using node v%s", version)
	}

	app.Notifier.Notify(ctx, notice.Project(name, pinned))
	return nil
}

// installedVersion parses arg as a version and checks it is installed
func installedVersion(app *App, arg string) (string, error) {
	version, err := node.ParseVersion(arg)
	if err != nil {
		return "", err
	}
	if !app.installed(version) {
		return "", fmt.Errorf("Node@v%s has not been installed", version)
	}
	return version, nil
}
