package tool

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/ui"
)

// ControlPasser is told right before a child process starts
type ControlPasser interface {
	PassControl()
}

// Runner spawns child tools with inherited stdio and a rewritten PATH
type Runner struct {
	Guard  ControlPasser
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner creates a runner attached to the process stdio
func NewRunner(guard ControlPasser) *Runner {
	return &Runner{
		Guard:  guard,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes path with args and waits for it. The child's exit code is
// returned as is; a child killed by a signal reports 0.
func (r *Runner) Run(ctx context.Context, path string, args []string, envPath string) (int, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), constants.EnvPath+"="+envPath)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	ui.Debug("Executing %s %v", path, args)

	if r.Guard != nil {
		r.Guard.PassControl()
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				return 0, nil
			}
			return code, nil
		}
		return 1, &SpawnError{Name: filepath.Base(path), Err: err}
	}

	return 0, nil
}

// Lookup finds the executable called name directly inside binDir.
// On Windows .exe and .cmd variants are tried.
func Lookup(binDir, name string) (string, bool) {
	candidates := []string{name}
	if runtime.GOOS == constants.OSWindows {
		candidates = []string{name + constants.ExtExe, name + constants.ExtCmd, name}
	}

	for _, candidate := range candidates {
		path := filepath.Join(binDir, candidate)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	return "", false
}
