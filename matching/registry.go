package matching

import (
	"sort"
	"sync"

	"github.com/npillmayer/ecss/host"
)

// Query is a host-provided predicate for a component selector. Filter
// returns every node carrying the component, ChangedTick reports when the
// component was last mutated on a node.
type Query interface {
	Filter(host.World) []host.NodeID
	ChangedTick(host.World, host.NodeID) (host.Tick, bool)
}

// componentQuery selects by a component name known to the World.
type componentQuery string

// ComponentQuery creates a query for nodes carrying the component of the
// given name, as reported by World.Query.
func ComponentQuery(name string) Query {
	return componentQuery(name)
}

func (q componentQuery) Filter(w host.World) []host.NodeID {
	return w.Query(string(q))
}

func (q componentQuery) ChangedTick(w host.World, n host.NodeID) (host.Tick, bool) {
	return w.ChangedTick(n, string(q))
}

// Registry maps component names, as used in selectors, to queries.
// A Registry is safe for concurrent use.
type Registry struct {
	sync.RWMutex
	queries map[string]Query
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{queries: make(map[string]Query)}
}

// Register binds a component name to a query. An existing binding for the
// name is replaced.
func (r *Registry) Register(name string, q Query) {
	r.Lock()
	defer r.Unlock()
	if _, exists := r.queries[name]; exists {
		tracer().Infof("replacing query for component %q", name)
	}
	r.queries[name] = q
}

// RegisterComponents binds each name to a ComponentQuery of the same name.
func (r *Registry) RegisterComponents(names ...string) {
	for _, name := range names {
		r.Register(name, ComponentQuery(name))
	}
}

// Lookup returns the query bound to a component name.
func (r *Registry) Lookup(name string) (Query, bool) {
	r.RLock()
	defer r.RUnlock()
	q, ok := r.queries[name]
	return q, ok
}

// Names returns the registered component names in sorted order.
func (r *Registry) Names() []string {
	r.RLock()
	defer r.RUnlock()
	names := make([]string, 0, len(r.queries))
	for name := range r.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
