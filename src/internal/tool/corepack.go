package tool

import (
	"context"
	"slices"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/npm"
)

const installDirectoryFlag = "--install-directory"

// Package managers corepack can enable, with the extra names each one installs
var corepackAliases = map[string][]string{
	"yarn": {"yarnpkg"},
	"pnpm": {"pnpx"},
}

// runCorepack runs corepack and mirrors `corepack enable|disable` in the
// nvmd bin directory. An explicit --install-directory is left to corepack.
func (d *Dispatcher) runCorepack(ctx context.Context, args []string) (int, error) {
	envPath, exe, err := d.resolve(constants.ToolCorepack)
	if err != nil {
		return 1, err
	}

	code, err := d.Runner.Run(ctx, exe, args, envPath)
	if err != nil || code != 0 {
		return code, err
	}

	if slices.Contains(args, installDirectoryFlag) {
		return 0, nil
	}

	positionals := npm.Positionals(args)
	if len(positionals) == 0 {
		return 0, nil
	}

	switch positionals[0] {
	case "enable":
		err = d.corepackEnable(corepackPackages(positionals[1:]))
	case "disable":
		err = d.corepackDisable(corepackPackages(positionals[1:]))
	}
	if err != nil {
		return 1, err
	}
	return 0, nil
}

// corepackPackages picks the package managers named in args. With none named,
// both yarn and pnpm are meant unless npm alone was named.
func corepackPackages(args []string) []string {
	var packages []string
	for _, arg := range args {
		if _, ok := corepackAliases[arg]; ok && !slices.Contains(packages, arg) {
			packages = append(packages, arg)
		}
	}

	if len(packages) == 0 && !slices.Contains(args, constants.ToolNpm) {
		packages = []string{"yarn", "pnpm"}
	}
	return packages
}

func (d *Dispatcher) corepackEnable(packages []string) error {
	for _, pkg := range packages {
		for _, name := range append([]string{pkg}, corepackAliases[pkg]...) {
			if err := d.Linker.Link(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// corepackDisable removes the shims unless a globally installed package still claims them
func (d *Dispatcher) corepackDisable(packages []string) error {
	registered, err := d.Packages.Load()
	if err != nil {
		return err
	}

	for _, pkg := range packages {
		if !registered.CanBeRemoved(pkg) {
			continue
		}
		for _, name := range append([]string{pkg}, corepackAliases[pkg]...) {
			if err := d.Linker.Unlink(name); err != nil {
				return err
			}
		}
	}
	return nil
}
