package tool

import (
	"context"
	"path/filepath"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/npm"
	"github.com/nvmd/nvmd/src/internal/shim"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// npmRun carries one npm invocation through its hooks
type npmRun struct {
	d       *Dispatcher
	cmd     npm.Command
	exe     string
	envPath string
}

// runNpm runs npm and keeps the package registry and shims in step with
// global installs, uninstalls and links
func (d *Dispatcher) runNpm(ctx context.Context, args []string) (int, error) {
	envPath, exe, err := d.resolve(constants.ToolNpm)
	if err != nil {
		return 1, err
	}

	run := &npmRun{d: d, cmd: npm.Classify(args), exe: exe, envPath: envPath}
	ui.Debug("npm %s with tools %v", run.cmd.Kind, run.cmd.Tools)

	pending, err := run.before(ctx)
	if err != nil {
		return 1, err
	}

	code, err := d.Runner.Run(ctx, exe, args, envPath)
	if err != nil || code != 0 {
		return code, err
	}

	if err := run.after(ctx, pending); err != nil {
		return 1, err
	}
	return 0, nil
}

// before collects the binaries an uninstall or unlink is about to remove.
// They have to be read while the packages are still on disk.
func (r *npmRun) before(ctx context.Context) ([]string, error) {
	switch r.cmd.Kind {
	case npm.Uninstall:
		prefix, err := npm.GlobalPrefix(ctx, r.exe, r.envPath)
		if err != nil {
			return nil, err
		}
		return npm.BinNamesFromPrefix(prefix, npm.PackageNames(r.cmd.Tools)), nil
	case npm.Unlink:
		if len(r.cmd.Tools) == 0 {
			pkg, err := npm.FromDir(r.d.workDir())
			if err != nil {
				return nil, err
			}
			return pkg.BinNames(), nil
		}
		prefix, err := npm.GlobalPrefix(ctx, r.exe, r.envPath)
		if err != nil {
			return nil, err
		}
		return npm.BinNamesFromPrefix(prefix, npm.PackageNames(r.cmd.Tools)), nil
	default:
		return nil, nil
	}
}

// after updates the registry and shims once npm succeeded
func (r *npmRun) after(ctx context.Context, pending []string) error {
	switch r.cmd.Kind {
	case npm.Install, npm.Update:
		prefix, err := npm.GlobalPrefix(ctx, r.exe, r.envPath)
		if err != nil {
			return err
		}
		return r.d.linkPackages(npm.BinNamesFromPrefix(prefix, npm.PackageNames(r.cmd.Tools)))
	case npm.Link:
		names, err := r.linkedBinNames()
		if err != nil {
			return err
		}
		return r.d.linkPackages(names)
	case npm.Uninstall, npm.Unlink:
		return r.d.unlinkPackages(pending)
	default:
		return nil
	}
}

// linkedBinNames resolves the packages `npm link` made global: the current
// package when no argument is given, otherwise each relative path argument.
// Registry names resolve through npm itself and are not tracked.
func (r *npmRun) linkedBinNames() ([]string, error) {
	cwd := r.d.workDir()
	if len(r.cmd.Tools) == 0 {
		pkg, err := npm.FromDir(cwd)
		if err != nil {
			return nil, err
		}
		return pkg.BinNames(), nil
	}

	var names []string
	for _, tool := range r.cmd.Tools {
		if !npm.IsRelativePath(tool) {
			continue
		}
		pkg, err := npm.FromDir(filepath.Join(cwd, tool))
		if err != nil {
			return nil, err
		}
		names = append(names, pkg.BinNames()...)
	}
	return names, nil
}

// linkPackages claims names for the active version and creates their shims
func (d *Dispatcher) linkPackages(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if err := d.Packages.RecordInstalled(names, d.Config.Version); err != nil {
		return err
	}
	return shim.LinkAll(d.Linker, names)
}

// unlinkPackages releases names for the active version and removes the
// shims no other version claims
func (d *Dispatcher) unlinkPackages(names []string) error {
	if len(names) == 0 {
		return nil
	}
	unclaimed, err := d.Packages.RecordUninstalled(names, d.Config.Version)
	if err != nil {
		return err
	}
	return shim.UnlinkAll(d.Linker, unclaimed)
}
