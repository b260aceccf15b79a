package migration

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds the migration providers by name
type Registry struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

var globalRegistry = NewRegistry()

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider; names must be unique
func (r *Registry) Register(provider Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("migration provider '%s' is already registered", name)
	}

	r.providers[name] = provider
	return nil
}

// Get retrieves a provider by name
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("migration provider '%s' not found", name)
	}

	return provider, nil
}

// List returns the registered provider names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetAll returns the registered providers ordered by name
func (r *Registry) GetAll() []Provider {
	names := r.List()

	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		providers = append(providers, r.providers[name])
	}
	return providers
}

// Detect collects the versions found by every present provider.
// A failing provider is reported in errs and does not stop the scan.
func (r *Registry) Detect() (found []DetectedVersion, errs []error) {
	for _, provider := range r.GetAll() {
		if !provider.IsPresent() {
			continue
		}
		versions, err := provider.DetectVersions()
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			continue
		}
		found = append(found, versions...)
	}
	return found, errs
}

// Register adds a provider to the global registry
func Register(provider Provider) error {
	return globalRegistry.Register(provider)
}

// Get retrieves a provider from the global registry
func Get(name string) (Provider, error) {
	return globalRegistry.Get(name)
}

// GetAll returns all providers of the global registry
func GetAll() []Provider {
	return globalRegistry.GetAll()
}

// Detect scans with every provider of the global registry
func Detect() ([]DetectedVersion, []error) {
	return globalRegistry.Detect()
}
