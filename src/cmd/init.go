package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/path"
	"github.com/nvmd/nvmd/src/internal/shim"
	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/cobra"
)

func newInitCommand(app *App) *cobra.Command {
	var (
		yes      bool
		skipPath bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up the nvmd home directory and PATH",
		Long: `Initialize nvmd by creating its home directory, installing the nvmd
binary into its bin directory, creating the node, npm, npx and corepack
shims and adding the bin directory to your PATH (with your permission).

Run this command after downloading nvmd for the first time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home := app.Config.Home
			ui.Header("Initializing nvmd in %s", home.Root)

			spinner := ui.NewSpinner("Creating directories...")
			spinner.Start()
			if err := home.EnsureDirectories(); err != nil {
				spinner.Error("Failed to create directories")
				return err
			}
			spinner.Success("Directories created")

			target, err := installSelf(app, home.BinDir())
			if err != nil {
				return err
			}
			ui.Debug("nvmd binary at %s", target)

			if err := shim.LinkAll(app.Linker, constants.CoreTools); err != nil {
				return err
			}
			ui.Success("Created shims for %v", constants.CoreTools)

			if skipPath {
				return nil
			}
			if err := path.AddToPath(home.BinDir(), yes); err != nil {
				ui.Error("Failed to configure PATH: %v", err)
				ui.Info("You can manually add %s to your PATH", home.BinDir())
				return nil
			}

			ui.Info("Next steps:")
			ui.Info("  1. Restart your terminal (required for PATH changes)")
			ui.Info("  2. Run: nvmd install lts")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Modify PATH without asking")
	cmd.Flags().BoolVar(&skipPath, "skip-path", false, "Do not touch the shell configuration")
	return cmd
}

// installSelf copies the running binary into binDir unless it is already there
func installSelf(app *App, binDir string) (string, error) {
	name := constants.ToolNvmd
	if runtime.GOOS == constants.OSWindows {
		name += constants.ExtExe
	}
	target := filepath.Join(binDir, name)

	if _, err := os.Stat(target); err == nil {
		return target, nil
	}

	self, err := app.Executable()
	if err != nil {
		return "", fmt.Errorf("could not locate the nvmd binary: %w", err)
	}

	src, err := os.Open(self)
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to install nvmd into %s: %w", binDir, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("failed to install nvmd into %s: %w", binDir, err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	ui.Success("Installed nvmd into %s", binDir)
	return target, nil
}
