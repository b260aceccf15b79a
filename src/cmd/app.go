package cmd

import (
	"context"
	"io"
	"os"

	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/migration"
	"github.com/nvmd/nvmd/src/internal/node"
	"github.com/nvmd/nvmd/src/internal/notice"
	"github.com/nvmd/nvmd/src/internal/registry"
	"github.com/nvmd/nvmd/src/internal/remote"
	"github.com/nvmd/nvmd/src/internal/shim"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// Fetcher downloads and unpacks a Node.js distribution into the versions directory
type Fetcher interface {
	Fetch(ctx context.Context, version string) (string, error)
}

// Notifier tells the desktop companion about state changes
type Notifier interface {
	Notify(ctx context.Context, n notice.Notice)
}

// App carries the collaborators every subcommand works with
type App struct {
	Config   *config.Context
	Packages *registry.PackageRegistry
	Projects *registry.ProjectRegistry
	Groups   *registry.GroupRegistry
	Linker   shim.Linker
	Fetcher  Fetcher
	Remote   remote.Source
	Notifier Notifier

	// Detect scans for versions owned by other version managers
	Detect func() ([]migration.DetectedVersion, []error)

	// Executable returns the path of the running nvmd binary
	Executable func() (string, error)

	Stdin io.Reader
}

// NewApp wires the production collaborators for cfg
func NewApp(cfg *config.Context) *App {
	home := cfg.Home
	return &App{
		Config:     cfg,
		Packages:   registry.NewPackageRegistry(home.PackagesPath()),
		Projects:   registry.NewProjectRegistry(home.ProjectsPath()),
		Groups:     registry.NewGroupRegistry(home.GroupsPath()),
		Linker:     shim.New(home.BinDir()),
		Fetcher:    node.NewFetcher(cfg),
		Remote:     remote.New(cfg),
		Notifier:   notice.NewClient(),
		Detect:     migration.Detect,
		Executable: os.Executable,
		Stdin:      os.Stdin,
	}
}

// versionsDir is where Node versions are installed
func (a *App) versionsDir() string {
	return a.Config.VersionsDir()
}

// installed reports whether version has an install directory with a node binary
func (a *App) installed(version string) bool {
	return node.Available(a.versionsDir(), version)
}

// setDefaultIfUnset makes version the global default when none is configured yet
func (a *App) setDefaultIfUnset(ctx context.Context, version string) {
	current, err := config.GlobalVersion(a.Config.Home)
	if err != nil || current != "" {
		return
	}

	if err := config.SetGlobalVersion(a.Config.Home, version); err != nil {
		ui.Warning("Could not set the default version: %v", err)
		return
	}

	ui.Info("Set v%s as the default version", version)
	a.Notifier.Notify(ctx, notice.Current(version))
}
