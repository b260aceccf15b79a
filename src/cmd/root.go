// Package cmd implements the nvmd subcommands
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/nvmd/nvmd/src/internal/tui"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

// NewRootCommand builds the nvmd command tree around app
func NewRootCommand(app *App) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "nvmd",
		Short:   "Node.js version manager",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				ui.SetVerbose(true)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Hide the completion command until we implement it
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output for debugging")
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.SetUsageFunc(customUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = customUsage(cmd)
	})

	rootCmd.AddCommand(
		newCurrentCommand(app),
		newInstallCommand(app),
		newUninstallCommand(app),
		newListCommand(app),
		newListRemoteCommand(app),
		newUseCommand(app),
		newWhichCommand(app),
		newInitCommand(app),
		newReshimCommand(app),
		newMigrateCommand(app),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the subcommand named by args. Output goes to ui.Output().
func Execute(ctx context.Context, app *App, args []string) error {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(ui.Output())
	rootCmd.SetErr(ui.Output())
	if app.Stdin != nil {
		rootCmd.SetIn(app.Stdin)
	}
	return rootCmd.ExecuteContext(ctx)
}

func customUsage(cmd *cobra.Command) error {
	const tableWidth = 80
	w := cmd.OutOrStderr()

	// Subcommands get the plain cobra usage
	if cmd.HasParent() {
		printCommandUsage(w, cmd)
		return nil
	}

	headerTable := tui.NewTable("")
	headerTable.SetTitle(cmd.Short)
	headerTable.HideHeader()
	headerTable.SetMinWidth(tableWidth)
	headerTable.AddRow("nvmd switches Node.js versions per project, group or globally.")
	headerTable.AddRow("Invoked as node, npm, npx or corepack it runs the active version.")

	_, _ = fmt.Fprintln(w, headerTable.Render())
	_, _ = fmt.Fprintln(w)

	table := tui.NewTable("Command", "Description")
	table.SetTitle("Available Commands")
	table.SetMinWidth(tableWidth)

	for _, c := range cmd.Commands() {
		if c.Hidden || c.Name() == "completion" || c.Name() == "help" {
			continue
		}
		table.AddRow(c.Name(), c.Short)
	}

	_, _ = fmt.Fprintln(w, table.Render())

	return nil
}

func printCommandUsage(w io.Writer, cmd *cobra.Command) {
	if cmd.Long != "" {
		_, _ = fmt.Fprintln(w, cmd.Long)
	} else {
		_, _ = fmt.Fprintln(w, cmd.Short)
	}
	_, _ = fmt.Fprintf(w, "\nUsage:\n  %s\n", cmd.UseLine())
	if len(cmd.Aliases) > 0 {
		_, _ = fmt.Fprintf(w, "\nAliases:\n  %s\n", cmd.NameAndAliases())
	}
	if cmd.HasAvailableLocalFlags() {
		_, _ = fmt.Fprintf(w, "\nFlags:\n%s", cmd.LocalFlags().FlagUsages())
	}
}
