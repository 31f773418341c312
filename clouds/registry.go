// Package clouds provides the cloud provider dispatch table.
// The table is built once at process start from an explicit provider list.
package clouds

import (
	"fmt"
	"sort"
	"strings"

	"cloud-adapter/core/types"
	"cloud-adapter/internal/errors"
)

// Registry maps provider names to adapters. It is immutable after
// NewRegistry returns and safe for concurrent reads.
type Registry struct {
	providers map[string]CloudProvider
}

// NewRegistry builds the dispatch table
func NewRegistry(providers ...CloudProvider) (*Registry, error) {
	r := &Registry{
		providers: make(map[string]CloudProvider, len(providers)),
	}
	for _, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("nil provider")
		}
		key := strings.ToLower(string(p.Name()))
		if key == "" {
			return nil, fmt.Errorf("provider with empty name")
		}
		if _, exists := r.providers[key]; exists {
			return nil, fmt.Errorf("provider already registered: %s", p.Name())
		}
		r.providers[key] = p
	}
	return r, nil
}

// Get returns a provider by name, ignoring case
func (r *Registry) Get(name types.Provider) (CloudProvider, bool) {
	p, ok := r.providers[strings.ToLower(string(name))]
	return p, ok
}

// Lookup returns a provider or a NOT_FOUND error naming the known ones
func (r *Registry) Lookup(name types.Provider) (CloudProvider, error) {
	if p, ok := r.Get(name); ok {
		return p, nil
	}
	return nil, errors.NotFound("cloud", string(name)).
		WithContext("known", r.Names())
}

// Names returns the registered provider names, sorted
func (r *Registry) Names() []types.Provider {
	names := make([]types.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// All returns the providers sorted by name
func (r *Registry) All() []CloudProvider {
	out := make([]CloudProvider, 0, len(r.providers))
	for _, name := range r.Names() {
		p, _ := r.Get(name)
		out = append(out, p)
	}
	return out
}
