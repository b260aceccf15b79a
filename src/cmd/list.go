package cmd

import (
	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newListCommand(app *App) *cobra.Command {
	var groups bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed Node.js versions",
		Long: `List the installed Node.js versions, newest first. The version active in
the current directory is marked.

With --group, list the groups and the version each one pins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if groups {
				return listGroups(app)
			}
			return listVersions(app)
		},
	}

	cmd.Flags().BoolVarP(&groups, "group", "g", false, "List groups instead of versions")
	return cmd
}

func listVersions(app *App) error {
	versions, err := node.Installed(app.versionsDir())
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		ui.Info("No Node.js versions installed. Run: nvmd install <version>")
		return nil
	}

	for _, v := range versions {
		if v == app.Config.Version {
			ui.Green("v%s (currently)", v)
			continue
		}
		ui.Println("v%s", v)
	}
	return nil
}

func listGroups(app *App) error {
	groups, err := app.Groups.Load()
	if err != nil {
		return err
	}

	for _, g := range groups {
		if g.Version == "" {
			ui.Println("%s", g.Name)
			continue
		}
		ui.Println("%s v%s", g.Name, g.Version)
	}
	return nil
}
