package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/nvmd/nvmd/src/internal/constants"
	"github.com/nvmd/nvmd/src/internal/path"
)

// ErrNoDefaultVersion is returned when neither a .nvmdrc nor the global default names a version
var ErrNoDefaultVersion = errors.New(`the default Node version is not set, you can set it by executing "nvmd use {version}"`)

// VersionNotInstalledError is returned when the resolved version has no install directory
type VersionNotInstalledError struct {
	Version string
}

func (e *VersionNotInstalledError) Error() string {
	return fmt.Sprintf("Node@v%s is not installed, please install it before using", e.Version)
}

// IsVersionNotInstalled checks if an error reports a missing version
func IsVersionNotInstalled(err error) bool {
	var target *VersionNotInstalledError
	return errors.As(err, &target)
}

// Context is the per-invocation view of configuration: the home layout, the
// settings and the active version resolved from the working directory.
// It is built once at process start and passed to every component.
type Context struct {
	Home    Home
	Setting Setting
	Dir     string // Working directory the version was resolved from
	Version string // Active version, empty when unresolved

	envOnce sync.Once
	envPath string
	envErr  error
}

// NewContext resolves the active version for dir and returns the context
func NewContext(home Home, setting Setting, dir string) (*Context, error) {
	version, err := ResolveVersion(home, dir)
	if err != nil {
		return nil, err
	}

	return &Context{
		Home:    home,
		Setting: setting,
		Dir:     dir,
		Version: version,
	}, nil
}

// Load builds the context for the current process from NVMD_HOME, setting.json and the working directory
func Load() (*Context, error) {
	home, err := DefaultHome()
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not determine working directory: %w", err)
	}

	return NewContext(home, LoadSetting(home), cwd)
}

// HasVersion reports whether a version was resolved
func (c *Context) HasVersion() bool {
	return c.Version != ""
}

// VersionsDir returns the install root for Node versions
func (c *Context) VersionsDir() string {
	return c.Setting.Directory
}

// VersionDir returns the install directory of a version
func (c *Context) VersionDir(version string) string {
	return filepath.Join(c.Setting.Directory, version)
}

// VersionBinDir returns the directory holding the executables of a version
func (c *Context) VersionBinDir(version string) string {
	return BinDirOf(c.VersionDir(version))
}

// BinDir returns the executable directory of the active version
func (c *Context) BinDir() (string, error) {
	if !c.HasVersion() {
		return "", ErrNoDefaultVersion
	}

	dir := c.VersionBinDir(c.Version)
	if _, err := os.Stat(dir); err != nil {
		return "", &VersionNotInstalledError{Version: c.Version}
	}

	return dir, nil
}

// EnvPath returns the inherited PATH with the active version's bin directory
// in front. The value is computed once per context.
func (c *Context) EnvPath() (string, error) {
	c.envOnce.Do(func() {
		dir, err := c.BinDir()
		if err != nil {
			c.envErr = err
			return
		}
		c.envPath = path.Prepend(dir, os.Getenv(constants.EnvPath))
	})
	return c.envPath, c.envErr
}

// BinDirOf returns the executable directory inside a Node install directory.
// Unix distributions keep executables under bin/, Windows ones at the top level.
func BinDirOf(installDir string) string {
	if runtime.GOOS == constants.OSWindows {
		return installDir
	}
	return filepath.Join(installDir, "bin")
}

// ResolveVersion walks from dir up to the filesystem root looking for a
// .nvmdrc with non-blank content, then falls back to the global default.
// It returns an empty string when neither names a version.
func ResolveVersion(home Home, dir string) (string, error) {
	version, err := findLocalVersion(dir)
	if err != nil {
		return "", err
	}
	if version != "" {
		return version, nil
	}

	return GlobalVersion(home)
}

// findLocalVersion walks up the directory tree looking for a non-blank .nvmdrc
func findLocalVersion(dir string) (string, error) {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		version, err := readVersionFile(filepath.Join(currentDir, constants.VersionFileName))
		if err != nil {
			return "", err
		}
		if version != "" {
			return version, nil
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			break
		}
		currentDir = parent
	}

	return "", nil
}

// FindVersionFile returns the nearest .nvmdrc at or above dir, or "" when there is none
func FindVersionFile(dir string) string {
	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(currentDir, constants.VersionFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return ""
		}
		currentDir = parent
	}
}

// readVersionFile returns the trimmed content of a version marker.
// Missing files and directories read as an empty version.
func readVersionFile(filePath string) (string, error) {
	info, err := os.Stat(filePath)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// GlobalVersion reads the global default version
func GlobalVersion(home Home) (string, error) {
	return readVersionFile(home.DefaultPath())
}

// SetGlobalVersion writes the global default version
func SetGlobalVersion(home Home, version string) error {
	if err := os.MkdirAll(home.Root, 0755); err != nil {
		return err
	}
	return os.WriteFile(home.DefaultPath(), []byte(version), 0644)
}

// SetLocalVersion writes a .nvmdrc in dir
func SetLocalVersion(dir, version string) error {
	return os.WriteFile(filepath.Join(dir, constants.VersionFileName), []byte(version), 0644)
}
