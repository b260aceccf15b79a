package config

import (
	"strings"

	"github.com/nvmd/nvmd/src/internal/ui"
	"github.com/spf13/viper"
)

// DefaultMirror is the download base URL used when setting.json has none
const DefaultMirror = "https://nodejs.org/dist"

// Setting is the read-only content of setting.json
type Setting struct {
	Directory string // Install root for Node versions
	Mirror    string // Base URL for downloads
}

// LoadSetting reads setting.json. It never fails: a missing, unreadable or
// malformed file yields the built-in defaults.
func LoadSetting(home Home) Setting {
	defaults := Setting{
		Directory: home.VersionsDir(),
		Mirror:    DefaultMirror,
	}

	v := viper.New()
	v.SetConfigFile(home.SettingPath())
	v.SetConfigType("json")
	v.SetDefault("directory", "")
	v.SetDefault("mirror", "")

	if err := v.ReadInConfig(); err != nil {
		ui.Debug("Using default settings: %v", err)
		return defaults
	}

	setting := defaults
	if dir := strings.TrimSpace(v.GetString("directory")); dir != "" {
		setting.Directory = dir
	}
	if mirror := strings.TrimSpace(v.GetString("mirror")); mirror != "" {
		setting.Mirror = strings.TrimRight(mirror, "/")
	}

	return setting
}
