package cmd

import (
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newCurrentCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the Node.js version active in this directory",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if app.Config.HasVersion() {
				ui.Println("v%s", app.Config.Version)
			}
		},
	}
}
