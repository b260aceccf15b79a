package migration

import (
	"testing"
)

// ProviderTestHarness runs the checks every migration provider must pass
type ProviderTestHarness struct {
	Provider     Provider
	ExpectedName string
}

// RunAll runs all standard provider tests
func (h *ProviderTestHarness) RunAll(t *testing.T) {
	t.Run("Name", h.TestName)
	t.Run("DisplayName", h.TestDisplayName)
	t.Run("DetectVersions", h.TestDetectVersions)
	t.Run("UninstallCommand", h.TestUninstallCommand)
}

// TestName verifies the provider returns the expected name
func (h *ProviderTestHarness) TestName(t *testing.T) {
	if name := h.Provider.Name(); name != h.ExpectedName {
		t.Errorf("Name() = %q, want %q", name, h.ExpectedName)
	}
}

// TestDisplayName verifies the provider returns a display name
func (h *ProviderTestHarness) TestDisplayName(t *testing.T) {
	if h.Provider.DisplayName() == "" {
		t.Error("DisplayName() returned empty string")
	}
}

// TestDetectVersions verifies detection succeeds and reports consistent entries
func (h *ProviderTestHarness) TestDetectVersions(t *testing.T) {
	versions, err := h.Provider.DetectVersions()
	if err != nil {
		t.Fatalf("DetectVersions() error = %v, want nil", err)
	}
	if versions == nil {
		t.Fatal("DetectVersions() returned nil, want empty slice")
	}
	for _, v := range versions {
		if v.Source != h.ExpectedName {
			t.Errorf("DetectVersions() entry %s has source %q", v, v.Source)
		}
		if v.InstallDir == "" || v.Version == "" {
			t.Errorf("DetectVersions() returned incomplete entry %+v", v)
		}
	}
}

// TestUninstallCommand verifies the command names the version
func (h *ProviderTestHarness) TestUninstallCommand(t *testing.T) {
	if cmd := h.Provider.UninstallCommand("18.17.1"); cmd == "" {
		t.Error("UninstallCommand() returned empty string")
	}
}
