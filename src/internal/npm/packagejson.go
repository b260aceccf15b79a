package npm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PackageJSON holds the package.json fields needed to find a package's binaries
type PackageJSON struct {
	Name string          `json:"name"`
	Bin  json.RawMessage `json:"bin"`
}

// ReadPackageJSON parses the package.json at path
func ReadPackageJSON(path string) (PackageJSON, error) {
	var pkg PackageJSON

	data, err := os.ReadFile(path)
	if err != nil {
		return pkg, err
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return pkg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return pkg, nil
}

// FromPrefix reads {prefix}/{pkg}/package.json. A package that is missing or
// unreadable has no binaries.
func FromPrefix(prefix, pkg string) PackageJSON {
	p, err := ReadPackageJSON(filepath.Join(prefix, pkg, "package.json"))
	if err != nil {
		return PackageJSON{}
	}
	return p
}

// FromDir reads {dir}/package.json and reports any error
func FromDir(dir string) (PackageJSON, error) {
	return ReadPackageJSON(filepath.Join(dir, "package.json"))
}

// BinNames returns the executable names the package installs.
// A string bin is named after the package (without its scope), a map bin
// contributes its keys.
func (p PackageJSON) BinNames() []string {
	if len(p.Bin) == 0 || string(p.Bin) == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(p.Bin, &single); err == nil {
		if p.Name == "" {
			return nil
		}
		return []string{unscoped(p.Name)}
	}

	var multiple map[string]string
	if err := json.Unmarshal(p.Bin, &multiple); err == nil {
		names := make([]string, 0, len(multiple))
		for name := range multiple {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}

	return nil
}

func unscoped(name string) string {
	if strings.HasPrefix(name, "@") {
		if i := strings.Index(name, "/"); i >= 0 {
			return name[i+1:]
		}
	}
	return name
}

// BinNamesFromPrefix collects the binaries of every package installed under prefix
func BinNamesFromPrefix(prefix string, pkgs []string) []string {
	var names []string
	for _, pkg := range pkgs {
		names = append(names, FromPrefix(prefix, pkg).BinNames()...)
	}
	return names
}
