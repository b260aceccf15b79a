// Package tool routes an invocation of nvmd, or of one of its shims, to the
// matching handler and runs the real executable of the active Node version
package tool

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nvmd/nvmd/src/internal/config"
	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/registry"
	"github.com/nvmd/nvmd/src/internal/shim"
)

// Dispatcher holds everything a handler needs for one invocation
type Dispatcher struct {
	Config   *config.Context
	Runner   *Runner
	Linker   shim.Linker
	Packages *registry.PackageRegistry

	// CLI runs nvmd's own subcommands
	CLI func(ctx context.Context, args []string) error
}

// NewDispatcher wires a dispatcher for cfg
func NewDispatcher(cfg *config.Context, runner *Runner, cli func(ctx context.Context, args []string) error) *Dispatcher {
	return &Dispatcher{
		Config:   cfg,
		Runner:   runner,
		Linker:   shim.New(cfg.Home.BinDir()),
		Packages: registry.NewPackageRegistry(cfg.Home.PackagesPath()),
		CLI:      cli,
	}
}

// ToolName derives the invoked tool from argv0. On Windows the name is
// lowercased and stripped of .exe.
func ToolName(argv0 string) string {
	return toolName(argv0, runtime.GOOS)
}

func toolName(argv0, goos string) string {
	name := argv0
	if goos == constants.OSWindows {
		name = strings.ReplaceAll(name, `\`, "/")
	}
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if goos == constants.OSWindows {
		name = strings.TrimSuffix(strings.ToLower(name), constants.ExtExe)
	}
	return name
}

// Dispatch runs the handler for argv0 and returns the exit code to use
func (d *Dispatcher) Dispatch(ctx context.Context, argv0 string, args []string) (int, error) {
	switch name := ToolName(argv0); name {
	case constants.ToolNvmd:
		if err := d.CLI(ctx, args); err != nil {
			return 1, err
		}
		return 0, nil
	case constants.ToolNpm:
		return d.runNpm(ctx, args)
	case constants.ToolCorepack:
		return d.runCorepack(ctx, args)
	default:
		// node, npx and package binaries run straight from the active version
		return d.passthrough(ctx, name, args)
	}
}

// resolve returns the PATH for the child and the executable of name in the active version
func (d *Dispatcher) resolve(name string) (envPath, exe string, err error) {
	envPath, err = d.Config.EnvPath()
	if err != nil {
		return "", "", err
	}

	binDir, err := d.Config.BinDir()
	if err != nil {
		return "", "", err
	}

	exe, ok := Lookup(binDir, name)
	if !ok {
		return "", "", &CommandNotFoundError{Name: name}
	}

	return envPath, exe, nil
}

// passthrough runs name with args unchanged
func (d *Dispatcher) passthrough(ctx context.Context, name string, args []string) (int, error) {
	envPath, exe, err := d.resolve(name)
	if err != nil {
		return 1, err
	}
	return d.Runner.Run(ctx, exe, args, envPath)
}

// workDir returns the directory the invocation runs in
func (d *Dispatcher) workDir() string {
	return filepath.Clean(d.Config.Dir)
}
