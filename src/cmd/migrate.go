package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nvmd/nvmd/src/internal/migration"
	"github.com/nvmd/nvmd/src/internal/notice"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newMigrateCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Import Node.js versions installed by nvm or fnm",
		Long: `Detect Node.js versions installed by other version managers (nvm, fnm),
let you select which ones to import, and copy them into the nvmd versions
directory. The originals are left untouched.

Examples:
  nvmd migrate         # Choose versions interactively
  nvmd migrate --all   # Import everything that was found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), app, bufio.NewReader(cmd.InOrStdin()), all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Import every detected version without asking")
	return cmd
}

func runMigrate(ctx context.Context, app *App, reader *bufio.Reader, all bool) error {
	spinner := ui.NewSpinner("Scanning for Node.js installations...")
	spinner.Start()

	detected, errs := app.Detect()
	for _, err := range errs {
		ui.Debug("Scan error: %v", err)
	}

	if len(detected) == 0 {
		spinner.Warning("No installations found")
		ui.Info("Use 'nvmd install <version>' to install a version")
		return nil
	}
	spinner.Success(fmt.Sprintf("Found %d installation(s)", len(detected)))

	for i, dv := range detected {
		mark := ""
		if app.installed(dv.Version) {
			mark = " " + ui.Highlight("(already installed)")
		}
		ui.Printf("  [%d] %s  (%s) %s%s\n",
			i+1,
			ui.HighlightVersion("v"+dv.Version),
			ui.Highlight(dv.Source),
			dv.InstallDir,
			mark)
	}

	var selected []int
	if all {
		selected = parseSelection("all", len(detected))
	} else {
		ui.Printf("\nSelect versions to migrate:\n")
		ui.Printf("  Enter numbers separated by commas, or 'all' (e.g., 1,3 or all): ")

		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			ui.Info("No versions selected. Exiting")
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			ui.Info("No versions selected. Exiting")
			return nil
		}

		selected = parseSelection(input, len(detected))
		if len(selected) == 0 {
			ui.Warning("No valid selections. Exiting")
			return nil
		}
	}

	if err := os.MkdirAll(app.versionsDir(), 0755); err != nil {
		return err
	}

	var imported []migration.DetectedVersion
	for _, idx := range selected {
		dv := detected[idx]

		err := ui.WithSpinner(fmt.Sprintf("Importing v%s from %s...", dv.Version, dv.Source), func() error {
			_, err := migration.Import(dv, app.versionsDir())
			return err
		})
		switch {
		case errors.Is(err, migration.ErrAlreadyInstalled):
			ui.Info("Node@v%s is already installed, skipping", dv.Version)
		case err != nil:
			ui.Error("Failed to import v%s: %v", dv.Version, err)
		default:
			imported = append(imported, dv)
		}
	}

	switch {
	case len(imported) == len(selected):
		ui.Success("Migration complete! %d/%d version(s) imported", len(imported), len(selected))
	case len(imported) > 0:
		ui.Warning("Migration partially complete: %d/%d version(s) imported", len(imported), len(selected))
	default:
		ui.Warning("No versions were imported")
		return nil
	}

	app.setDefaultIfUnset(ctx, imported[0].Version)
	app.Notifier.Notify(ctx, notice.Versions())

	printCleanupHints(imported)
	return nil
}

// parseSelection parses user selection input like "1,3,5" or "all".
// Duplicates and out of range numbers are dropped.
func parseSelection(input string, maxCount int) []int {
	indices := make([]int, 0, maxCount)

	if strings.EqualFold(strings.TrimSpace(input), "all") {
		for i := 0; i < maxCount; i++ {
			indices = append(indices, i)
		}
		return indices
	}

	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		idx := num - 1
		if idx >= 0 && idx < maxCount && !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}

	return indices
}

// printCleanupHints tells the user how to remove the copies the old manager still owns
func printCleanupHints(imported []migration.DetectedVersion) {
	ui.Header("\nThe original installations were left in place")
	ui.Info("They may shadow nvmd if they appear earlier in your PATH. To remove them:")

	for _, dv := range imported {
		provider, err := migration.Get(dv.Source)
		if err != nil {
			ui.Info("  rm -rf %s", dv.InstallDir)
			continue
		}
		ui.Info("  %s", provider.UninstallCommand(dv.Version))
	}
}
