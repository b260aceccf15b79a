package registry

import "slices"

// Packages maps a global binary name to the Node versions that installed it
type Packages map[string][]string

// RecordInstalled claims each name for version, keeping one occurrence of it
func (p Packages) RecordInstalled(names []string, version string) {
	for _, name := range names {
		versions := slices.DeleteFunc(p[name], func(v string) bool { return v == version })
		p[name] = append(versions, version)
	}
}

// RecordUninstalled drops the claim of version on each name and returns the
// names nothing claims anymore. Those shims are safe to delete.
func (p Packages) RecordUninstalled(names []string, version string) []string {
	var unclaimed []string

	for _, name := range names {
		versions, ok := p[name]
		if !ok {
			unclaimed = append(unclaimed, name)
			continue
		}

		versions = slices.DeleteFunc(versions, func(v string) bool { return v == version })
		if len(versions) == 0 {
			delete(p, name)
			unclaimed = append(unclaimed, name)
			continue
		}
		p[name] = versions
	}

	return unclaimed
}

// CanBeRemoved reports whether no version claims name
func (p Packages) CanBeRemoved(name string) bool {
	return len(p[name]) == 0
}

// Names returns the registered binary names in sorted order
func (p Packages) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// PackageRegistry is the packages.json file
type PackageRegistry struct {
	store *Store[Packages]
}

// NewPackageRegistry opens the package registry at path
func NewPackageRegistry(path string) *PackageRegistry {
	return &PackageRegistry{store: NewStore[Packages](path)}
}

// Load reads the registry; a missing file yields an empty map
func (r *PackageRegistry) Load() (Packages, error) {
	data, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = Packages{}
	}
	return data, nil
}

// RecordInstalled claims names for version and saves
func (r *PackageRegistry) RecordInstalled(names []string, version string) error {
	return r.store.Update(func(p *Packages) error {
		if *p == nil {
			*p = Packages{}
		}
		p.RecordInstalled(names, version)
		return nil
	})
}

// RecordUninstalled releases names for version, saves, and returns the unclaimed names
func (r *PackageRegistry) RecordUninstalled(names []string, version string) ([]string, error) {
	var unclaimed []string
	err := r.store.Update(func(p *Packages) error {
		if *p == nil {
			*p = Packages{}
		}
		unclaimed = p.RecordUninstalled(names, version)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unclaimed, nil
}

// CanBeRemoved reports whether no installed version claims name
func (r *PackageRegistry) CanBeRemoved(name string) (bool, error) {
	data, err := r.Load()
	if err != nil {
		return false, err
	}
	return data.CanBeRemoved(name), nil
}
