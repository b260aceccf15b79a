//go:build windows

package path

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"unsafe"

	"github.com/nvmd/nvmd/src/internal/ui"
	"golang.org/x/sys/windows/registry"
)

var (
	moduser32              = syscall.NewLazyDLL("user32.dll")
	procSendMessageTimeout = moduser32.NewProc("SendMessageTimeoutW")
)

const (
	HWND_BROADCAST   = 0xffff
	WM_SETTINGCHANGE = 0x001A
	SMTO_ABORTIFHUNG = 0x0002
)

// AddToPath prepends the nvmd bin directory to the user's PATH in the registry.
// It asks first unless assumeYes is set.
func AddToPath(binDir string, assumeYes bool) error {
	if IsInPath(binDir) {
		ui.Info("%s is already in your PATH", binDir)
		return nil
	}

	if !assumeYes {
		ui.Header("PATH Setup Required")
		ui.Info("nvmd needs to add its bin directory to your PATH")
		ui.Info("Directory: %s", ui.Highlight(binDir))
		ui.Info("This will modify your user PATH environment variable")

		if !ui.Confirm("\nProceed?", true) {
			ui.Warning("PATH not modified. You can add it later by running: nvmd init")
			return nil
		}
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key: %w", err)
	}
	defer func() { _ = key.Close() }()

	currentPath, _, err := key.GetStringValue("Path")
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to read current PATH: %w", err)
	}

	for _, p := range strings.Split(currentPath, ";") {
		if strings.EqualFold(strings.TrimSpace(p), binDir) {
			ui.Info("%s is already in your registry PATH", binDir)
			return nil
		}
	}

	newPath := binDir
	if currentPath != "" {
		newPath += ";" + currentPath
	}

	if err := key.SetStringValue("Path", newPath); err != nil {
		return fmt.Errorf("failed to update PATH in registry: %w", err)
	}

	broadcastSettingChange()

	ui.Success("Added %s to your PATH", binDir)
	ui.Warning("Please restart your terminal for the changes to take effect")

	return nil
}

// broadcastSettingChange notifies running processes that the environment changed
func broadcastSettingChange() {
	env := syscall.StringToUTF16Ptr("Environment")
	_, _, _ = procSendMessageTimeout.Call(
		uintptr(HWND_BROADCAST),
		uintptr(WM_SETTINGCHANGE),
		0,
		uintptr(unsafe.Pointer(env)),
		uintptr(SMTO_ABORTIFHUNG),
		5000,
		0,
	)
}

// DetectShell returns "powershell" or "cmd"
func DetectShell() string {
	if os.Getenv("PSModulePath") != "" {
		return "powershell"
	}
	return "cmd"
}

// GetShellConfigFile returns an empty string; Windows keeps PATH in the registry
func GetShellConfigFile(shell string) string {
	return ""
}
