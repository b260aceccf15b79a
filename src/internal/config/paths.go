// Package config manages nvmd configuration including paths, settings and
// version resolution
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvmd/nvmd/src/internal/constants"
)

// Home holds the nvmd state directory and computes the paths of its files.
// It owns no mutable state.
type Home struct {
	Root string // Root nvmd directory (~/.nvmd)
}

// File and directory names inside the home directory
const (
	DefaultFileName  = "default"
	SettingFileName  = "setting.json"
	PackagesFileName = "packages.json"
	ProjectsFileName = "projects.json"
	GroupsFileName   = "groups.json"
	VersionsDirName  = "versions"
	BinDirName       = "bin"
	CacheDirName     = "cache"
)

// NewHome creates a Home rooted at dir
func NewHome(dir string) Home {
	return Home{Root: dir}
}

// DefaultHome returns the home selected by NVMD_HOME, falling back to ~/.nvmd
func DefaultHome() (Home, error) {
	root, err := getRootDir()
	if err != nil {
		return Home{}, err
	}
	return NewHome(root), nil
}

// getRootDir returns the root nvmd directory
func getRootDir() (string, error) {
	if root := os.Getenv(constants.EnvHome); root != "" {
		return root, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}

	return filepath.Join(home, ".nvmd"), nil
}

// DefaultPath returns the path of the global default version marker
func (h Home) DefaultPath() string {
	return filepath.Join(h.Root, DefaultFileName)
}

// SettingPath returns the path of setting.json
func (h Home) SettingPath() string {
	return filepath.Join(h.Root, SettingFileName)
}

// VersionsDir returns the default install root for Node versions
func (h Home) VersionsDir() string {
	return filepath.Join(h.Root, VersionsDirName)
}

// PackagesPath returns the path of the package registry
func (h Home) PackagesPath() string {
	return filepath.Join(h.Root, PackagesFileName)
}

// ProjectsPath returns the path of the project registry
func (h Home) ProjectsPath() string {
	return filepath.Join(h.Root, ProjectsFileName)
}

// GroupsPath returns the path of the group registry
func (h Home) GroupsPath() string {
	return filepath.Join(h.Root, GroupsFileName)
}

// BinDir returns the directory holding nvmd and its shims
func (h Home) BinDir() string {
	return filepath.Join(h.Root, BinDirName)
}

// CacheDir returns the directory used for cached remote data
func (h Home) CacheDir() string {
	return filepath.Join(h.Root, CacheDirName)
}

// EnsureDirectories creates all necessary nvmd directories
func (h Home) EnsureDirectories() error {
	dirs := []string{
		h.Root,
		h.BinDir(),
		h.VersionsDir(),
		h.CacheDir(),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
