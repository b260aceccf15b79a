package registry

import "time"

// Project is one entry of projects.json
type Project struct {
	Active   bool   `json:"active"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Version  string `json:"version,omitempty"` // Literal version or group name
	CreateAt string `json:"createAt,omitempty"`
	UpdateAt string `json:"updateAt,omitempty"`
}

// Projects is the ordered project list, most recently added first
type Projects []Project

// Find returns the project tracked at path
func (p Projects) Find(path string) (Project, bool) {
	for _, project := range p {
		if project.Path == path {
			return project, true
		}
	}
	return Project{}, false
}

// Patch updates the version of the project at path, or tracks a new one at the front
func (p *Projects) Patch(path, name, version string, now time.Time) {
	stamp := now.Format(time.RFC3339)

	for i := range *p {
		if (*p)[i].Path == path {
			(*p)[i].Version = version
			(*p)[i].UpdateAt = stamp
			return
		}
	}

	project := Project{
		Active:   true,
		Name:     name,
		Path:     path,
		Version:  version,
		CreateAt: stamp,
		UpdateAt: stamp,
	}
	*p = append(Projects{project}, *p...)
}

// ProjectRegistry is the projects.json file
type ProjectRegistry struct {
	store *Store[Projects]
	now   func() time.Time
}

// NewProjectRegistry opens the project registry at path
func NewProjectRegistry(path string) *ProjectRegistry {
	return &ProjectRegistry{store: NewStore[Projects](path), now: time.Now}
}

// Load reads the registry; a missing file yields an empty list
func (r *ProjectRegistry) Load() (Projects, error) {
	return r.store.Load()
}

// Patch records version for the project at path and saves
func (r *ProjectRegistry) Patch(path, name, version string) error {
	return r.store.Update(func(p *Projects) error {
		p.Patch(path, name, version, r.now())
		return nil
	})
}
