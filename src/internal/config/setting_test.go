package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSetting(t *testing.T) {
	tests := []struct {
		name          string
		content       string // empty means no file
		wantDirectory func(home Home) string
		wantMirror    string
	}{
		{
			name:          "missing file",
			wantDirectory: func(home Home) string { return home.VersionsDir() },
			wantMirror:    DefaultMirror,
		},
		{
			name:          "malformed file",
			content:       "{not json",
			wantDirectory: func(home Home) string { return home.VersionsDir() },
			wantMirror:    DefaultMirror,
		},
		{
			name:          "custom directory and mirror",
			content:       `{"directory": "/opt/node", "mirror": "https://npmmirror.com/mirrors/node/"}`,
			wantDirectory: func(Home) string { return "/opt/node" },
			wantMirror:    "https://npmmirror.com/mirrors/node",
		},
		{
			name:          "blank values keep defaults",
			content:       `{"directory": "  ", "mirror": ""}`,
			wantDirectory: func(home Home) string { return home.VersionsDir() },
			wantMirror:    DefaultMirror,
		},
		{
			name:          "only mirror",
			content:       `{"mirror": "https://example.com/dist"}`,
			wantDirectory: func(home Home) string { return home.VersionsDir() },
			wantMirror:    "https://example.com/dist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := NewHome(t.TempDir())
			if tt.content != "" {
				if err := os.WriteFile(home.SettingPath(), []byte(tt.content), 0644); err != nil {
					t.Fatalf("Failed to write setting.json: %v", err)
				}
			}

			setting := LoadSetting(home)
			if want := tt.wantDirectory(home); setting.Directory != want {
				t.Errorf("Directory = %q, want %q", setting.Directory, want)
			}
			if setting.Mirror != tt.wantMirror {
				t.Errorf("Mirror = %q, want %q", setting.Mirror, tt.wantMirror)
			}
		})
	}
}

func TestLoadSetting_DirectoryIsDirectory(t *testing.T) {
	home := NewHome(t.TempDir())
	if err := os.Mkdir(filepath.Join(home.Root, SettingFileName), 0755); err != nil {
		t.Fatal(err)
	}

	setting := LoadSetting(home)
	if setting.Mirror != DefaultMirror {
		t.Errorf("Mirror = %q, want %q", setting.Mirror, DefaultMirror)
	}
}
