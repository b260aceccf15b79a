// Package path provides utilities for PATH environment variable manipulation
package path

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nvmd/nvmd/src/internal/constants"
)

// IsInPath checks if a directory is in the system PATH
func IsInPath(dir string) bool {
	return Contains(os.Getenv(constants.EnvPath), dir)
}

// Contains checks if a directory is one of the entries of a PATH value
func Contains(pathEnv, dir string) bool {
	dir = filepath.Clean(dir)

	for _, p := range filepath.SplitList(pathEnv) {
		if p == "" {
			continue
		}
		p = filepath.Clean(p)
		if p == dir || (runtime.GOOS == constants.OSWindows && strings.EqualFold(p, dir)) {
			return true
		}
	}

	return false
}

// Prepend puts dir in front of an existing PATH value.
// Existing entries are kept as they are, duplicates included.
func Prepend(dir, pathEnv string) string {
	if pathEnv == "" {
		return dir
	}
	return dir + string(os.PathListSeparator) + pathEnv
}
