// Package fnm provides a migration provider for Fast Node Manager (fnm).
package fnm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nvmd/nvmd/src/internal/migration"
	"github.com/nvmd/nvmd/src/internal/node"
)

// Provider implements the migration.Provider interface for fnm.
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
	return "fnm"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "Fast Node Manager (fnm)"
}

// roots returns the node-versions directories fnm may use
func (p *Provider) roots() []string {
	var roots []string

	if dir := p.getenv("FNM_DIR"); dir != "" {
		roots = append(roots, filepath.Join(dir, "node-versions"))
	}
	if p.home != "" {
		roots = append(roots,
			filepath.Join(p.home, ".local", "share", "fnm", "node-versions"),
			filepath.Join(p.home, ".fnm", "node-versions"),
			filepath.Join(p.home, "Library", "Application Support", "fnm", "node-versions"),
			filepath.Join(p.home, "AppData", "Roaming", "fnm", "node-versions"),
		)
	}

	return roots
}

// IsPresent checks if an fnm versions directory exists.
func (p *Provider) IsPresent() bool {
	for _, root := range p.roots() {
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// DetectVersions finds all versions installed by fnm.
// fnm unpacks each version under <root>/v<version>/installation.
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

			versionDir := filepath.Join(root, entry.Name())
			for _, installDir := range []string{filepath.Join(versionDir, "installation"), versionDir} {
				if !hasNode(installDir) {
					continue
				}
				seen[version] = true
				detected = append(detected, migration.DetectedVersion{
					Version:    version,
					InstallDir: installDir,
					Source:     p.Name(),
				})
				break
			}
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
	return fmt.Sprintf("fnm uninstall %s", version)
}

func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register fnm migration provider: %v", err))
	}
}
