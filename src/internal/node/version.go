// Package node knows how Node.js versions are named, laid out on disk and fetched
package node

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nvmd/nvmd/src/internal/constants"
)

// InvalidVersionError is returned for strings that are not full semantic versions
type InvalidVersionError struct {
	Input string
	Err   error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %v", e.Input, e.Err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// ParseVersion normalizes "v18.17.1" or "18.17.1" to "18.17.1"
func ParseVersion(input string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(input), "v")

	v, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return "", &InvalidVersionError{Input: input, Err: err}
	}

	return v.String(), nil
}

// IsVersion reports whether input parses as a full version
func IsVersion(input string) bool {
	_, err := ParseVersion(input)
	return err == nil
}

// SortDescending orders versions newest first. Strings that do not parse go last, in lexical order.
func SortDescending(versions []string) {
	slices.SortStableFunc(versions, func(a, b string) int {
		va, errA := semver.NewVersion(a)
		vb, errB := semver.NewVersion(b)
		switch {
		case errA != nil && errB != nil:
			return strings.Compare(a, b)
		case errA != nil:
			return 1
		case errB != nil:
			return -1
		}
		return vb.Compare(va)
	})
}

// Executable returns the node binary inside an install directory
func Executable(installDir string) string {
	return executable(installDir, runtime.GOOS)
}

func executable(installDir, goos string) string {
	if goos == constants.OSWindows {
		return filepath.Join(installDir, constants.ToolNode+constants.ExtExe)
	}
	return filepath.Join(installDir, "bin", constants.ToolNode)
}

// Available reports whether version is installed under versionsDir with a node binary in place
func Available(versionsDir, version string) bool {
	info, err := os.Stat(Executable(filepath.Join(versionsDir, version)))
	return err == nil && !info.IsDir()
}

// Installed lists the versions under versionsDir that have a node binary, newest first
func Installed(versionsDir string) ([]string, error) {
	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read versions directory: %w", err)
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !IsVersion(entry.Name()) {
			continue
		}
		if Available(versionsDir, entry.Name()) {
			versions = append(versions, entry.Name())
		}
	}

	SortDescending(versions)
	return versions, nil
}
