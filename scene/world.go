package scene

import (
	"slices"
	"sort"

	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/property"
)

var _ host.World = (*Scene)(nil)
var _ property.Components = (*Scene)(nil)
var _ host.Clock = (*Scene)(nil)

// Children returns the direct children of an entity, in order.
func (s *Scene) Children(n host.NodeID) []host.NodeID {
	e, ok := s.entities[n]
	if !ok {
		return nil
	}
	children := e.node.Children()
	ids := make([]host.NodeID, len(children))
	for i, ch := range children {
		ids[i] = ch.Payload
	}
	return ids
}

// Query returns all entities carrying a component, in ascending order.
func (s *Scene) Query(component string) []host.NodeID {
	var ids []host.NodeID
	for id, e := range s.entities {
		if _, ok := e.components[component]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Name returns the id of an entity.
func (s *Scene) Name(n host.NodeID) (string, bool) {
	if e, ok := s.entities[n]; ok && e.name != "" {
		return e.name, true
	}
	return "", false
}

// Classes returns the class list of an entity.
func (s *Scene) Classes(n host.NodeID) []string {
	if e, ok := s.entities[n]; ok {
		return slices.Clone(e.classes)
	}
	return nil
}

// Interaction returns the interaction state of an interactive entity.
func (s *Scene) Interaction(n host.NodeID) (host.Interaction, bool) {
	if e, ok := s.entities[n]; ok {
		if _, interactive := e.components[host.InteractComp]; interactive {
			return e.interaction, true
		}
	}
	return host.None, false
}

// ChangedTick returns the tick at which a component of an entity was last
// inserted, mutated or removed.
func (s *Scene) ChangedTick(n host.NodeID, component string) (host.Tick, bool) {
	if e, ok := s.entities[n]; ok {
		t, ok := e.ticks[component]
		return t, ok
	}
	return 0, false
}

// CurrentTick returns the current tick of the scene.
func (s *Scene) CurrentTick() host.Tick {
	return s.tick
}

// Layout gives write access to the layout of an entity and marks it as
// changed.
func (s *Scene) Layout(n host.NodeID) (*property.Layout, bool) {
	e, ok := s.entities[n]
	if !ok {
		return nil, false
	}
	s.touch(e, StyleComp)
	return &e.layout, true
}

// Text gives write access to the text of an entity and marks it as changed.
// Entities without a text component are not written to.
func (s *Scene) Text(n host.NodeID) (*property.Text, bool) {
	e, ok := s.entities[n]
	if !ok {
		return nil, false
	}
	if _, ok = e.components[TextComp]; !ok {
		return nil, false
	}
	s.touch(e, TextComp)
	return &e.text, true
}

// Paint gives write access to the paint of an entity and marks it as
// changed.
func (s *Scene) Paint(n host.NodeID) (*property.Paint, bool) {
	e, ok := s.entities[n]
	if !ok {
		return nil, false
	}
	s.touch(e, PaintComp)
	return &e.paint, true
}

// LayoutOf returns a copy of the layout of an entity.
func (s *Scene) LayoutOf(n host.NodeID) (property.Layout, bool) {
	if e, ok := s.entities[n]; ok {
		return e.layout, true
	}
	return property.Layout{}, false
}

// TextOf returns a copy of the text of an entity.
func (s *Scene) TextOf(n host.NodeID) (property.Text, bool) {
	if e, ok := s.entities[n]; ok {
		if _, ok = e.components[TextComp]; ok {
			return e.text, true
		}
	}
	return property.Text{}, false
}

// PaintOf returns a copy of the paint of an entity.
func (s *Scene) PaintOf(n host.NodeID) (property.Paint, bool) {
	if e, ok := s.entities[n]; ok {
		return e.paint, true
	}
	return property.Paint{}, false
}
