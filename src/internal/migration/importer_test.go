package migration

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nvmd/nvmd/src/internal/node"
)

func fakeInstall(t *testing.T, dir string) {
	t.Helper()
	bin := node.Executable(dir)
	if err := os.MkdirAll(filepath.Dir(bin), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bin, []byte("node"), 0755); err != nil {
		t.Fatal(err)
	}
	lib := filepath.Join(dir, "lib", "node_modules", "npm", "bin")
	if err := os.MkdirAll(lib, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lib, "npm-cli.js"), []byte("// npm"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImport(t *testing.T) {
	src := filepath.Join(t.TempDir(), "v18.17.1")
	fakeInstall(t, src)
	if runtime.GOOS != "windows" {
		if err := os.Symlink("../lib/node_modules/npm/bin/npm-cli.js", filepath.Join(src, "bin", "npm")); err != nil {
			t.Fatal(err)
		}
	}

	versionsDir := t.TempDir()
	dv := DetectedVersion{Version: "18.17.1", InstallDir: src, Source: "nvm"}

	target, err := Import(dv, versionsDir)
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if target != filepath.Join(versionsDir, "18.17.1") {
		t.Errorf("Import() = %q", target)
	}
	if !node.Available(versionsDir, "18.17.1") {
		t.Error("imported version is not available")
	}

	info, err := os.Stat(node.Executable(target))
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0100 == 0 {
		t.Error("executable bit lost during import")
	}

	if runtime.GOOS != "windows" {
		link, err := os.Readlink(filepath.Join(target, "bin", "npm"))
		if err != nil {
			t.Fatalf("npm symlink not preserved: %v", err)
		}
		if link != "../lib/node_modules/npm/bin/npm-cli.js" {
			t.Errorf("npm -> %q", link)
		}
	}

	if _, err := os.Stat(target + ".migrating"); !os.IsNotExist(err) {
		t.Error("staging directory left behind")
	}

	if _, err := Import(dv, versionsDir); !errors.Is(err, ErrAlreadyInstalled) {
		t.Errorf("second Import() error = %v, want ErrAlreadyInstalled", err)
	}
}

func TestImport_MissingSource(t *testing.T) {
	versionsDir := t.TempDir()
	dv := DetectedVersion{Version: "20.0.0", InstallDir: filepath.Join(t.TempDir(), "gone"), Source: "fnm"}

	if _, err := Import(dv, versionsDir); err == nil {
		t.Fatal("Import() should fail for a missing source")
	}
	entries, _ := os.ReadDir(versionsDir)
	if len(entries) != 0 {
		t.Errorf("versions directory should stay empty, has %d entries", len(entries))
	}
}
