package shim

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/nvmd/nvmd/src/internal/constants"
)

// List returns the shim names present in binDir, excluding nvmd itself.
// On Windows the .exe/.cmd pair of a shim is reported once.
func List(binDir string) ([]string, error) {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if runtime.GOOS == constants.OSWindows {
			ext := strings.ToLower(filepath.Ext(name))
			if ext != constants.ExtExe && ext != constants.ExtCmd {
				continue
			}
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}

		if name == constants.ToolNvmd {
			continue
		}
		seen[name] = true
	}

	shims := make([]string, 0, len(seen))
	for name := range seen {
		shims = append(shims, name)
	}
	sort.Strings(shims)

	return shims, nil
}
