package shim

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestList(t *testing.T) {
	binDir := t.TempDir()

	var files []string
	if runtime.GOOS == "windows" {
		files = []string{"nvmd.exe", "npm.cmd", "npm.exe", "tsc.exe", "tsc.cmd", "notes.txt"}
	} else {
		files = []string{"nvmd", "npm", "tsc"}
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(binDir, f), nil, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(binDir, "subdir"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := List(binDir)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if want := []string{"npm", "tsc"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestList_MissingDir(t *testing.T) {
	got, err := List(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}
