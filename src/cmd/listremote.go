package cmd

import (
	"context"
	"fmt"

	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/tui"
	"github.com/spf13/cobra"
)

func newListRemoteCommand(app *App) *cobra.Command {
	var (
		ltsOnly bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:     "list-remote",
		Aliases: []string{"ls-remote"},
		Short:   "List Node.js versions available from the mirror",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := remoteTable(cmd.Context(), app, ltsOnly, limit)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStderr(), table.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&ltsOnly, "lts", false, "Only show LTS releases")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many releases (0 shows all)")
	return cmd
}

// remoteTable renders the release index, newest first, marking installed versions
func remoteTable(ctx context.Context, app *App, ltsOnly bool, limit int) (*tui.Table, error) {
	index, err := app.Remote.Index(ctx)
	if err != nil {
		return nil, err
	}
	if ltsOnly {
		index = index.LTS()
	}

	installed, err := node.Installed(app.versionsDir())
	if err != nil {
		return nil, err
	}
	isInstalled := make(map[string]bool, len(installed))
	for _, v := range installed {
		isInstalled[v] = true
	}

	table := tui.NewTable("Version", "LTS", "Date", "npm", "")
	table.SetTitle(fmt.Sprintf("Node.js releases from %s", app.Remote.URL()))

	for i, release := range index {
		if limit > 0 && i >= limit {
			break
		}

		kind := tui.RowNormal
		mark := ""
		switch {
		case release.Version == app.Config.Version:
			kind = tui.RowActive
			mark = tui.GetCheckMark() + " currently"
		case isInstalled[release.Version]:
			mark = tui.GetCheckMark() + " installed"
		case !release.IsLTS():
			kind = tui.RowMuted
		}

		table.AddRowKind(kind, "v"+release.Version, release.LTS, release.Date, release.NPM, mark)
	}

	return table, nil
}
