package cmd

import (
	"fmt"

	"github.com/nvmd/nvmd/src/internal/tui"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the nvmd version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			content := fmt.Sprintf("nvmd %s", tui.RenderVersion(Version))
			_, _ = fmt.Fprintln(cmd.OutOrStderr(), tui.RenderInfoBox(content))
		},
	}
}
