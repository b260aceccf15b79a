// Package remote reads the list of published Node.js releases from the
// mirror's index.json and resolves version aliases against it.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/nvmd/nvmd/src/internal/node"
)

// Release is one entry of index.json
type Release struct {
	Version string   `json:"version"` // Without the leading "v"
	Date    string   `json:"date"`
	LTS     string   `json:"lts,omitempty"` // Codename, empty for non-LTS releases
	NPM     string   `json:"npm,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// IsLTS reports whether the release belongs to an LTS line
func (r Release) IsLTS() bool {
	return r.LTS != ""
}

// Index is the release list, newest first
type Index []Release

// rawRelease mirrors index.json, where lts is either false or a codename
type rawRelease struct {
	Version string          `json:"version"`
	Date    string          `json:"date"`
	LTS     json.RawMessage `json:"lts"`
	NPM     string          `json:"npm"`
	Files   []string        `json:"files"`
}

// ParseIndex decodes an index.json document
func ParseIndex(data []byte) (Index, error) {
	var raw []rawRelease
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse release index: %w", err)
	}

	index := make(Index, 0, len(raw))
	for _, r := range raw {
		version, err := node.ParseVersion(r.Version)
		if err != nil {
			continue
		}

		var lts string
		if len(r.LTS) > 0 && r.LTS[0] == '"' {
			_ = json.Unmarshal(r.LTS, &lts)
		}

		index = append(index, Release{
			Version: version,
			Date:    r.Date,
			LTS:     lts,
			NPM:     r.NPM,
			Files:   r.Files,
		})
	}

	return index, nil
}

// VersionNotFoundError is returned when a query matches no published release
type VersionNotFoundError struct {
	Query string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("no published Node.js release matches %q", e.Query)
}

// IsVersionNotFound checks if an error is a VersionNotFoundError
func IsVersionNotFound(err error) bool {
	var target *VersionNotFoundError
	return errors.As(err, &target)
}

// LTS returns the releases that belong to an LTS line
func (idx Index) LTS() Index {
	var out Index
	for _, r := range idx {
		if r.IsLTS() {
			out = append(out, r)
		}
	}
	return out
}

// Resolve maps a query to a concrete version. Accepted queries:
//
//	18.17.1, v18.17.1   an exact release
//	18, 18.17           the newest release on that line
//	latest, current     the newest release
//	lts, lts/*          the newest LTS release
//	lts/hydrogen        the newest release of an LTS codename
func (idx Index) Resolve(query string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	if node.IsVersion(q) {
		version, _ := node.ParseVersion(q)
		for _, r := range idx {
			if r.Version == version {
				return version, nil
			}
		}
		return "", &VersionNotFoundError{Query: query}
	}

	var match func(Release, *semver.Version) bool

	switch {
	case q == "latest" || q == "current" || q == "node":
		match = func(r Release, v *semver.Version) bool { return v.Prerelease() == "" }
	case q == "lts" || q == "lts/*":
		match = func(r Release, v *semver.Version) bool { return r.IsLTS() }
	case strings.HasPrefix(q, "lts/"):
		codename := strings.TrimPrefix(q, "lts/")
		match = func(r Release, v *semver.Version) bool { return strings.EqualFold(r.LTS, codename) }
	default:
		constraint, err := semver.NewConstraint("~" + strings.TrimPrefix(q, "v"))
		if err != nil {
			return "", &VersionNotFoundError{Query: query}
		}
		match = func(r Release, v *semver.Version) bool { return constraint.Check(v) }
	}

	var best *semver.Version
	for _, r := range idx {
		v, err := semver.NewVersion(r.Version)
		if err != nil || !match(r, v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}

	if best == nil {
		return "", &VersionNotFoundError{Query: query}
	}
	return best.String(), nil
}
