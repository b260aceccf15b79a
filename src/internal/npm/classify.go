// Package npm understands npm command lines and the package.json files of
// globally installed packages.
package npm

import (
	"path/filepath"
	"slices"
	"strings"
)

// Kind is the npm subcommand family an invocation belongs to
type Kind int

const (
	// Standard commands are passed through without bookkeeping
	Standard Kind = iota
	Install
	Update
	Uninstall
	Link
	Unlink
)

func (k Kind) String() string {
	switch k {
	case Install:
		return "install"
	case Update:
		return "update"
	case Uninstall:
		return "uninstall"
	case Link:
		return "link"
	case Unlink:
		return "unlink"
	default:
		return "standard"
	}
}

// Subcommand aliases accepted by npm
var (
	InstallAliases = []string{
		"i", "in", "ins", "inst", "insta", "instal", "install",
		"isnt", "isnta", "isntal", "isntall", "add",
	}
	UninstallAliases = []string{"un", "uninstall", "remove", "rm", "r"}
	UpdateAliases    = []string{"update", "udpate", "upgrade", "up"}
	LinkAliases      = []string{"link", "ln"}
)

const workspaceFlag = "--workspace"

// Command is a classified npm invocation
type Command struct {
	Kind  Kind
	Name  string   // Subcommand token as typed
	Tools []string // Positional arguments after the subcommand
}

// Classify inspects npm arguments and decides whether the invocation changes
// global binaries. Install and uninstall count only when global and naming
// at least one package; update and unlink only when global. Link always counts.
func Classify(args []string) Command {
	positionals := Positionals(args)
	if len(positionals) == 0 {
		return Command{Kind: Standard}
	}

	name, tools := positionals[0], positionals[1:]
	if len(tools) == 0 {
		tools = nil
	}
	global := IsGlobal(args)
	cmd := Command{Kind: Standard, Name: name, Tools: tools}

	switch {
	case slices.Contains(InstallAliases, name):
		if global && len(tools) > 0 {
			cmd.Kind = Install
		}
	case slices.Contains(UninstallAliases, name):
		if global && len(tools) > 0 {
			cmd.Kind = Uninstall
		}
	case name == "unlink":
		if global {
			cmd.Kind = Unlink
		}
	case slices.Contains(LinkAliases, name):
		cmd.Kind = Link
	case slices.Contains(UpdateAliases, name):
		if global {
			cmd.Kind = Update
		}
	}

	return cmd
}

// Positionals returns the arguments that are neither flags nor the value
// consumed by --workspace
func Positionals(args []string) []string {
	var positionals []string
	skipNext := false

	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		if arg == workspaceFlag {
			skipNext = true
			continue
		}
		if IsFlag(arg) {
			continue
		}
		positionals = append(positionals, arg)
	}

	return positionals
}

// IsFlag reports whether arg is an option
func IsFlag(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

// IsGlobal reports whether the arguments contain -g or --global
func IsGlobal(args []string) bool {
	return slices.Contains(args, "-g") || slices.Contains(args, "--global")
}

// IsRelativePath reports whether arg names a local directory like ./pkg or ../pkg
func IsRelativePath(arg string) bool {
	if filepath.IsAbs(arg) {
		return false
	}
	slashed := filepath.ToSlash(arg)
	return slashed == "." || slashed == ".." ||
		strings.HasPrefix(slashed, "./") || strings.HasPrefix(slashed, "../")
}
