// Package migration imports Node.js versions installed by other version
// managers (nvm, fnm) into the nvmd versions directory.
package migration

// Provider detects the versions one version manager has installed
type Provider interface {
	// Name returns the identifier of the version manager (e.g. "nvm")
	Name() string

	// DisplayName returns the human-readable name (e.g. "Node Version Manager (nvm)")
	DisplayName() string

	// IsPresent checks if the version manager has a versions directory on this machine
	IsPresent() bool

	// DetectVersions finds all versions installed by the version manager
	DetectVersions() ([]DetectedVersion, error)

	// UninstallCommand returns the command removing a version through the version manager
	UninstallCommand(version string) string
}

// DetectedVersion is a Node.js installation owned by another version manager
type DetectedVersion struct {
	Version    string // Without the leading "v"
	InstallDir string // Root of the installation, holding bin/node or node.exe
	Source     string // Name of the provider that found it
}

// String returns a formatted string representation
func (dv DetectedVersion) String() string {
	return "v" + dv.Version + " (" + dv.Source + ") " + dv.InstallDir
}
