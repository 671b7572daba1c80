package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/alkime/steplever/internal/lever"
)

// Registry is the set of levers the service hosts, keyed by name.
type Registry struct {
	mu          sync.RWMutex
	hosts       map[string]*Host
	historySize int
}

// NewRegistry creates an empty registry. historySize caps each lever's
// transition log.
func NewRegistry(historySize int) *Registry {
	return &Registry{
		hosts:       make(map[string]*Host),
		historySize: historySize,
	}
}

// Create hosts a new lever under name.
func (r *Registry) Create(name string, cfg lever.Config) (*Host, error) {
	if name == "" {
		return nil, fmt.Errorf("lever name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hosts[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrLeverExists, name)
	}

	host, err := NewHost(name, cfg, r.historySize)
	if err != nil {
		return nil, err
	}

	r.hosts[name] = host
	return host, nil
}

// Get returns the named lever host.
func (r *Registry) Get(name string) (*Host, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	host, ok := r.hosts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLever, name)
	}
	return host, nil
}

// Remove drops the named lever.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hosts[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLever, name)
	}
	delete(r.hosts, name)
	return nil
}

// Names returns all hosted lever names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.hosts))
	for name := range r.hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// States returns a snapshot of every hosted lever, sorted by name.
func (r *Registry) States() []State {
	r.mu.RLock()
	hosts := make([]*Host, 0, len(r.hosts))
	for _, host := range r.hosts {
		hosts = append(hosts, host)
	}
	r.mu.RUnlock()

	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Name() < hosts[j].Name() })

	states := make([]State, 0, len(hosts))
	for _, host := range hosts {
		states = append(states, host.State())
	}
	return states
}
