package matching

import (
	"slices"

	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/selector"
)

// SelectEntities returns the nodes of the subtree at root matching sel, in
// depth-first order. root itself is a candidate. If tracked is non-nil, the
// candidate pool examined for every element is recorded in it.
//
// Component elements are resolved through reg. A component name without a
// registered query matches nothing.
func SelectEntities(w host.World, reg *Registry, root host.NodeID, sel selector.Selector,
	tracked *Tracked) []host.NodeID {
	//
	tree := sel.ParentTree()
	if len(tree) == 0 {
		return nil
	}
	all := Subtree(w, root)
	pool := all
	for i, segment := range tree {
		for _, e := range segment {
			if len(pool) == 0 {
				return nil
			}
			if tracked != nil {
				tracked.Record(e, pool)
			}
			pool = selectByElement(w, reg, e, pool)
		}
		if i < len(tree)-1 {
			pool = descendantsOf(w, pool, all)
		}
	}
	tracer().Debugf("selector %q matches %d nodes below %s", sel, len(pool), root)
	return pool
}

// Subtree returns root and all of its descendants in depth-first order.
func Subtree(w host.World, root host.NodeID) []host.NodeID {
	nodes := []host.NodeID{root}
	seen := map[host.NodeID]struct{}{root: {}}
	var walk func(host.NodeID)
	walk = func(n host.NodeID) {
		for _, ch := range w.Children(n) {
			if _, cycle := seen[ch]; cycle {
				tracer().Errorf("node %s appears twice below %s", ch, root)
				continue
			}
			seen[ch] = struct{}{}
			nodes = append(nodes, ch)
			walk(ch)
		}
	}
	walk(root)
	return nodes
}

// descendantsOf returns the strict descendants of every node of pool.
// The result keeps the order of all.
func descendantsOf(w host.World, pool []host.NodeID, all []host.NodeID) []host.NodeID {
	union := make(map[host.NodeID]struct{})
	for _, n := range pool {
		for _, d := range Subtree(w, n)[1:] {
			union[d] = struct{}{}
		}
	}
	result := make([]host.NodeID, 0, len(union))
	for _, n := range all {
		if _, ok := union[n]; ok {
			result = append(result, n)
		}
	}
	return result
}

// selectByElement keeps the nodes of pool which satisfy e.
func selectByElement(w host.World, reg *Registry, e selector.Element, pool []host.NodeID) []host.NodeID {
	switch e.Kind {
	case selector.NameKind:
		return keep(pool, func(n host.NodeID) bool {
			name, ok := w.Name(n)
			return ok && name == e.Value
		})
	case selector.ClassKind:
		return keep(pool, func(n host.NodeID) bool {
			return slices.Contains(w.Classes(n), e.Value)
		})
	case selector.ComponentKind:
		q, ok := reg.Lookup(e.Value)
		if !ok {
			tracer().Debugf("no query registered for component %q", e.Value)
			return nil
		}
		return intersect(pool, q.Filter(w))
	case selector.PseudoKind:
		var want host.Interaction
		switch e.Pseudo {
		case selector.Hover:
			want = host.Hovered
		case selector.Active:
			want = host.Pressed
		default:
			return pool
		}
		return keep(pool, func(n host.NodeID) bool {
			i, ok := w.Interaction(n)
			return ok && i == want
		})
	case selector.AnyKind:
		return intersect(pool, w.Query(host.NodeMarker))
	}
	return pool
}

func keep(pool []host.NodeID, pred func(host.NodeID) bool) []host.NodeID {
	result := make([]host.NodeID, 0, len(pool))
	for _, n := range pool {
		if pred(n) {
			result = append(result, n)
		}
	}
	return result
}

func intersect(pool []host.NodeID, with []host.NodeID) []host.NodeID {
	set := make(map[host.NodeID]struct{}, len(with))
	for _, n := range with {
		set[n] = struct{}{}
	}
	return keep(pool, func(n host.NodeID) bool {
		_, ok := set[n]
		return ok
	})
}
