package cmd

import (
	"slices"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/shim"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newReshimCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reshim",
		Short: "Rebuild the shims from the package registry",
		Long: `Recreate a shim for every core tool and every binary recorded in
packages.json, and remove shims no installed version claims anymore.

Run this command if shims were deleted or packages were installed while
nvmd was not on the PATH.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			spinner := ui.NewSpinner("Regenerating shims...")
			spinner.Start()

			linked, removed, err := reshim(app)
			if err != nil {
				spinner.Error("Failed to regenerate shims")
				return err
			}

			spinner.Success("Shims regenerated")
			ui.Debug("Linked %v, removed %v", linked, removed)
			return nil
		},
	}
}

// reshim links every wanted name and unlinks every other shim in the bin directory
func reshim(app *App) (linked, removed []string, err error) {
	if err := app.Config.Home.EnsureDirectories(); err != nil {
		return nil, nil, err
	}

	packages, err := app.Packages.Load()
	if err != nil {
		return nil, nil, err
	}

	wanted := append(slices.Clone(constants.CoreTools), packages.Names()...)
	if err := shim.LinkAll(app.Linker, wanted); err != nil {
		return nil, nil, err
	}

	existing, err := shim.List(app.Config.Home.BinDir())
	if err != nil {
		return wanted, nil, err
	}
	for _, name := range existing {
		if slices.Contains(wanted, name) {
			continue
		}
		if err := app.Linker.Unlink(name); err != nil {
			return wanted, removed, err
		}
		removed = append(removed, name)
	}

	return wanted, removed, nil
}
