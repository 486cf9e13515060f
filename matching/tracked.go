package matching

import (
	"sort"

	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/selector"
)

// Tracked records, per selector element, the nodes which have been
// examined while matching it. It is owned by a single stylesheet owner and
// is reset whenever the owner is re-matched.
type Tracked struct {
	m map[selector.Element]map[host.NodeID]struct{}
}

// NewTracked creates an empty table.
func NewTracked() *Tracked {
	return &Tracked{m: make(map[selector.Element]map[host.NodeID]struct{})}
}

// Record adds nodes to the set of nodes examined for element e.
func (t *Tracked) Record(e selector.Element, nodes []host.NodeID) {
	set, ok := t.m[e]
	if !ok {
		set = make(map[host.NodeID]struct{}, len(nodes))
		t.m[e] = set
	}
	for _, n := range nodes {
		set[n] = struct{}{}
	}
}

// Len returns the number of elements tracked.
func (t *Tracked) Len() int {
	return len(t.m)
}

// Nodes returns the nodes recorded for element e, in ascending order.
func (t *Tracked) Nodes(e selector.Element) []host.NodeID {
	set := t.m[e]
	nodes := make([]host.NodeID, 0, len(set))
	for n := range set {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// Clear empties the table.
func (t *Tracked) Clear() {
	clear(t.m)
}

// ChangedSince checks every tracked (element, node) pair for a mutation
// after tick since. The component consulted depends on the element kind.
// Structural changes (children added or removed) of any tracked node count
// as well, as they change the candidate pools.
func (t *Tracked) ChangedSince(w host.World, reg *Registry, since host.Tick) bool {
	structural := make(map[host.NodeID]struct{})
	for e, set := range t.m {
		for n := range set {
			if elementChanged(w, reg, e, n, since) {
				tracer().Debugf("node %s changed for selector element %q", n, e)
				return true
			}
			structural[n] = struct{}{}
		}
	}
	for n := range structural {
		if host.ChangedSince(w, n, host.ChildrenComp, since) {
			tracer().Debugf("children of node %s changed", n)
			return true
		}
	}
	return false
}

func elementChanged(w host.World, reg *Registry, e selector.Element, n host.NodeID, since host.Tick) bool {
	switch e.Kind {
	case selector.NameKind:
		return host.ChangedSince(w, n, host.NameComp, since)
	case selector.ClassKind:
		return host.ChangedSince(w, n, host.ClassComp, since)
	case selector.PseudoKind:
		if e.Pseudo == selector.Unsupported {
			return false
		}
		return host.ChangedSince(w, n, host.InteractComp, since)
	case selector.AnyKind:
		return host.ChangedSince(w, n, host.NodeMarker, since)
	case selector.ComponentKind:
		if q, ok := reg.Lookup(e.Value); ok {
			tick, ok := q.ChangedTick(w, n)
			return ok && tick > since
		}
	}
	return false
}
