package hostcall

import (
	"sync"

	"github.com/shallot-lang/shallot/value"
)

// Registry is an ordered, named collection of values (typically adapters)
// exposed to evaluations as top-level bindings. Registration order is
// preserved so the resulting context is deterministic.
type Registry struct {
	mu    sync.RWMutex
	names []string
	items map[string]value.Value
}

func NewRegistry() *Registry {
	return &Registry{items: make(map[string]value.Value)}
}

// Register adds or replaces a binding. Replacing keeps the original position.
func (r *Registry) Register(name string, v value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; !ok {
		r.names = append(r.names, name)
	}
	r.items[name] = v
}

func (r *Registry) Get(name string) (value.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[name]
	return v, ok
}

func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Context renders the registry as an ordered slice of Named values, ready to
// pass to an evaluation.
func (r *Registry) Context() []value.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]value.Value, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, value.Named(name, r.items[name]))
	}
	return out
}
