package cmd

import (
	"context"
	"fmt"

	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/notice"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newInstallCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "install <version>",
		Short: "Download and install a Node.js version",
		Long: `Download a Node.js distribution from the configured mirror and unpack it
into the versions directory.

The version may be exact (20.8.0), partial (20 or 20.8), "latest", "lts"
or an LTS codename such as "lts/hydrogen".

Examples:
  nvmd install 20.8.0
  nvmd install 18
  nvmd install lts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), app, args[0])
		},
	}
}

func runInstall(ctx context.Context, app *App, query string) error {
	version, err := resolveRemote(ctx, app, query)
	if err != nil {
		return err
	}
	ui.Debug("Resolved %q to %s", query, version)

	if app.installed(version) {
		ui.Info("Node@v%s is already installed", version)
		return nil
	}

	dir, err := app.Fetcher.Fetch(ctx, version)
	if err != nil {
		return err
	}

	ui.Success("Node@v%s has been installed in %s", version, dir)

	app.setDefaultIfUnset(ctx, version)
	app.Notifier.Notify(ctx, notice.Versions())
	return nil
}

// resolveRemote turns a version query into an exact version. Exact versions
// skip the release index so installing works against mirrors without one.
func resolveRemote(ctx context.Context, app *App, query string) (string, error) {
	if version, err := node.ParseVersion(query); err == nil {
		return version, nil
	}

	index, err := app.Remote.Index(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", query, err)
	}
	return index.Resolve(query)
}
