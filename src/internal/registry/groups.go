package registry

import (
	"errors"
	"fmt"
	"slices"
)

// GroupNotFoundError is returned when no group has the requested name
type GroupNotFoundError struct {
	Name string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("group %q does not exist", e.Name)
}

// GroupVersionUnsetError is returned when a group is used before its version is set
type GroupVersionUnsetError struct {
	Name string
}

func (e *GroupVersionUnsetError) Error() string {
	return fmt.Sprintf("The Node.js version for group '%s' has not been set yet", e.Name)
}

// IsGroupNotFound checks if an error is a GroupNotFoundError
func IsGroupNotFound(err error) bool {
	var target *GroupNotFoundError
	return errors.As(err, &target)
}

// Group is one entry of groups.json: a named version shared by several projects
type Group struct {
	Name     string   `json:"name"`
	Desc     string   `json:"desc,omitempty"`
	Projects []string `json:"projects"`
	Version  string   `json:"version,omitempty"`
}

// Groups is the list stored in groups.json
type Groups []Group

// FindByName returns the group called name
func (g Groups) FindByName(name string) (Group, bool) {
	for _, group := range g {
		if group.Name == name {
			return group, true
		}
	}
	return Group{}, false
}

// Exists reports whether a group called name exists
func (g Groups) Exists(name string) bool {
	_, ok := g.FindByName(name)
	return ok
}

// VersionOf returns the version pinned by the group called name
func (g Groups) VersionOf(name string) (string, error) {
	group, ok := g.FindByName(name)
	if !ok {
		return "", &GroupNotFoundError{Name: name}
	}
	if group.Version == "" {
		return "", &GroupVersionUnsetError{Name: name}
	}
	return group.Version, nil
}

// AddProject appends projectPath to the group called name unless it is already listed
func (g Groups) AddProject(name, projectPath string) error {
	for i := range g {
		if g[i].Name != name {
			continue
		}
		if !slices.Contains(g[i].Projects, projectPath) {
			g[i].Projects = append(g[i].Projects, projectPath)
		}
		return nil
	}
	return &GroupNotFoundError{Name: name}
}

// normalize gives every group a non-nil project list so it is written as []
func (g Groups) normalize() {
	for i := range g {
		if g[i].Projects == nil {
			g[i].Projects = []string{}
		}
	}
}

// GroupRegistry is the groups.json file
type GroupRegistry struct {
	store *Store[Groups]
}

// NewGroupRegistry opens the group registry at path
func NewGroupRegistry(path string) *GroupRegistry {
	return &GroupRegistry{store: NewStore[Groups](path)}
}

// Load reads the registry; a missing file yields an empty list.
// Groups written without a projects field get an empty list.
func (r *GroupRegistry) Load() (Groups, error) {
	groups, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	groups.normalize()
	return groups, nil
}

// AddProject appends projectPath to the group called name and saves
func (r *GroupRegistry) AddProject(name, projectPath string) error {
	return r.store.Update(func(g *Groups) error {
		g.normalize()
		return g.AddProject(name, projectPath)
	})
}
