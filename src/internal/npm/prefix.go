package npm

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// ErrNoPrefix is returned when `npm root -g` prints no existing directory
var ErrNoPrefix = errors.New("no valid npm prefix found")

// GlobalPrefix runs `npm root -g` with the given PATH and returns the first
// printed line that is an existing directory
func GlobalPrefix(ctx context.Context, npmPath, envPath string) (string, error) {
	cmd := exec.CommandContext(ctx, npmPath, "root", "-g")
	cmd.Env = append(os.Environ(), constants.EnvPath+"="+envPath)
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		ui.Debug("npm root -g failed: %v", err)
		return "", ErrNoPrefix
	}

	return firstDir(out)
}

func firstDir(out []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if info, err := os.Stat(line); err == nil && info.IsDir() {
			return line, nil
		}
	}
	return "", ErrNoPrefix
}
