// Package shim creates and removes the executables in ~/.nvmd/bin that
// re-enter nvmd under another tool's name
package shim

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// Linker creates and removes shims by tool name
type Linker interface {
	Link(name string) error
	Unlink(name string) error
}

// New returns the linker for the current platform
func New(binDir string) Linker {
	if runtime.GOOS == constants.OSWindows {
		return &CopyShim{BinDir: binDir}
	}
	return &SymlinkShim{BinDir: binDir}
}

// SymlinkShim links bin/<name> to bin/nvmd
type SymlinkShim struct {
	BinDir string
}

// Link creates the symlink. An existing entry is left as is.
func (s *SymlinkShim) Link(name string) error {
	source := filepath.Join(s.BinDir, constants.ToolNvmd)
	alias := filepath.Join(s.BinDir, name)

	if err := os.Symlink(source, alias); err != nil {
		if errors.Is(err, os.ErrExist) {
			ui.Debug("Shim %s already exists", name)
			return nil
		}
		return fmt.Errorf("failed to create shim %s: %w", name, err)
	}

	ui.Debug("Linked %s -> %s", alias, source)
	return nil
}

// Unlink removes the symlink, tolerating its absence
func (s *SymlinkShim) Unlink(name string) error {
	return removeShim(filepath.Join(s.BinDir, name))
}

// CopyShim copies nvmd.exe to <name>.exe and the npm.cmd wrapper to <name>.cmd
type CopyShim struct {
	BinDir string
}

// Link copies both files, skipping destinations that already exist
func (s *CopyShim) Link(name string) error {
	pairs := [][2]string{
		{constants.ToolNvmd + constants.ExtExe, name + constants.ExtExe},
		{constants.ToolNpm + constants.ExtCmd, name + constants.ExtCmd},
	}

	for _, pair := range pairs {
		src := filepath.Join(s.BinDir, pair[0])
		dst := filepath.Join(s.BinDir, pair[1])

		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("failed to create shim %s: %w", name, err)
		}
		ui.Debug("Copied %s -> %s", src, dst)
	}

	return nil
}

// Unlink removes both files, tolerating either being absent
func (s *CopyShim) Unlink(name string) error {
	if err := removeShim(filepath.Join(s.BinDir, name+constants.ExtExe)); err != nil {
		return err
	}
	return removeShim(filepath.Join(s.BinDir, name+constants.ExtCmd))
}

func removeShim(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove shim %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LinkAll links every name, stopping at the first failure
func LinkAll(l Linker, names []string) error {
	for _, name := range names {
		if err := l.Link(name); err != nil {
			return err
		}
	}
	return nil
}

// UnlinkAll unlinks every name, stopping at the first failure
func UnlinkAll(l Linker, names []string) error {
	for _, name := range names {
		if err := l.Unlink(name); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
