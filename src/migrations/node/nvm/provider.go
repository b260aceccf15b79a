// Package nvm provides a migration provider for Node Version Manager (nvm).
package nvm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvmd/nvmd/src/internal/migration"
	"github.com/nvmd/nvmd/src/internal/node"
)

// Provider implements the migration.Provider interface for nvm and nvm-windows.
type Provider struct {
	home   string
	getenv func(string) string
}

// NewProvider creates a provider looking under the user's home directory
func NewProvider() *Provider {
	home, _ := os.UserHomeDir()
	return &Provider{home: home, getenv: os.Getenv}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "nvm"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "Node Version Manager (nvm)"
}

// roots returns the directories holding one sub-directory per version.
// nvm keeps versions under $NVM_DIR/versions/node, nvm-windows directly under $NVM_HOME.
func (p *Provider) roots() []string {
	var roots []string

	if dir := p.getenv("NVM_DIR"); dir != "" {
		roots = append(roots, filepath.Join(dir, "versions", "node"))
	}
	if dir := p.getenv("NVM_HOME"); dir != "" {
		roots = append(roots, dir)
	}
	if p.home != "" {
		roots = append(roots,
			filepath.Join(p.home, ".nvm", "versions", "node"),
			filepath.Join(p.home, "AppData", "Roaming", "nvm"),
		)
	}

	return roots
}

// IsPresent checks if an nvm versions directory exists.
func (p *Provider) IsPresent() bool {
	for _, root := range p.roots() {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// DetectVersions finds all versions installed by nvm.
func (p *Provider) DetectVersions() ([]migration.DetectedVersion, error) {
	detected := make([]migration.DetectedVersion, 0)
	seen := make(map[string]bool)

	for _, root := range p.roots() {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			version, err := node.ParseVersion(entry.Name())
			if err != nil || seen[version] {
				continue
			}

			installDir := filepath.Join(root, entry.Name())
			if !hasNode(installDir) {
				continue
			}

			seen[version] = true
			detected = append(detected, migration.DetectedVersion{
				Version:    version,
				InstallDir: installDir,
				Source:     p.Name(),
			})
		}
	}

	return detected, nil
}

func hasNode(installDir string) bool {
	for _, candidate := range []string{
		filepath.Join(installDir, "bin", "node"),
		filepath.Join(installDir, "node.exe"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

// UninstallCommand returns the command to uninstall a specific version.
func (p *Provider) UninstallCommand(version string) string {
	return fmt.Sprintf("nvm uninstall %s", version)
}

func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register nvm migration provider: %v", err))
	}
}
