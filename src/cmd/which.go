package cmd

import (
	"fmt"
	"os"

	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newWhichCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "which <version>",
		Short: "Print the bin directory of an installed version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := node.ParseVersion(args[0])
			if err != nil {
				return err
			}

			dir := app.Config.VersionBinDir(version)
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("Node@v%s has not been installed", version)
			}

			ui.Println("%s", dir)
			return nil
		},
	}
}
