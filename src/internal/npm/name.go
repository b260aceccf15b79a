package npm

import "regexp"

var versionSuffix = regexp.MustCompile(`@[0-9]|@latest|@"|@npm:`)

// PackageName strips a version, tag or alias suffix from a package spec.
// A leading @ marks a scope and is never treated as a suffix.
func PackageName(spec string) string {
	for _, loc := range versionSuffix.FindAllStringIndex(spec, -1) {
		if loc[0] > 0 {
			return spec[:loc[0]]
		}
	}
	return spec
}

// PackageNames strips suffixes from every spec
func PackageNames(specs []string) []string {
	names := make([]string, 0, len(specs))
	for _, spec := range specs {
		names = append(names, PackageName(spec))
	}
	return names
}
