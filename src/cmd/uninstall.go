package cmd

import (
	"fmt"
	"os"

	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/notice"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newUninstallCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <version>",
		Short: "Remove an installed Node.js version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := node.ParseVersion(args[0])
			if err != nil {
				return err
			}

			dir := app.Config.VersionDir(version)
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				return fmt.Errorf("Node@v%s has not been installed", version)
			}

			ui.Println("Removing Node@v%s at: %q", version, dir)
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("failed to remove %s: %w", dir, err)
			}
			ui.Green("Node@v%s has been successfully uninstalled", version)

			app.Notifier.Notify(cmd.Context(), notice.Versions())
			return nil
		},
	}
}
