/*
Package scene implements a mutable scene graph which can be styled.

A Scene is a forest of entities. Every entity is a styleable node with
a layout and a paint component; entities may carry a name, classes, an
interaction state, a text component and arbitrary marker components.
Each mutation is stamped with the current tick of the scene, which makes
the scene usable as a World for the styling engine.

Hosts advance the tick between frames:

	sc := scene.New()
	root := sc.Spawn(0, scene.With("window"))
	btn := sc.Spawn(root, scene.With("button"), scene.Classes("primary"))
	...
	sc.Advance()
	sc.SetInteraction(btn, host.Hovered)
	engine.Tick()

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scene

import (
	"slices"
	"sort"
	"strings"

	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/property"
	"github.com/npillmayer/ecss/tree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ecss.scene'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.scene")
}

// Component names of the style components every entity carries.
const (
	StyleComp = "style"            // layout, written by layout properties
	PaintComp = "background-color" // paint, written by color and image properties
	TextComp  = "text"             // text, present on text entities only
)

type entity struct {
	id          host.NodeID
	node        *tree.Node[host.NodeID]
	tag         string // label for debugging
	name        string
	classes     []string
	interaction host.Interaction
	components  map[string]struct{}
	ticks       map[string]host.Tick // last change per component, kept after removal
	layout      property.Layout
	paint       property.Paint
	text        property.Text
}

// Scene is a mutable scene graph. It is not safe for concurrent use.
type Scene struct {
	tick     host.Tick
	last     host.NodeID
	entities map[host.NodeID]*entity
	roots    []host.NodeID
}

// New creates an empty scene. The tick of a new scene is 1.
func New() *Scene {
	return &Scene{
		tick:     1,
		entities: make(map[host.NodeID]*entity),
	}
}

// Option configures an entity on spawn.
type Option func(*Scene, *entity)

// With adds marker components.
func With(components ...string) Option {
	return func(s *Scene, e *entity) {
		for _, c := range components {
			s.insert(e, c)
		}
		if e.tag == "" && len(components) > 0 {
			e.tag = components[0]
		}
	}
}

// Named sets the id of the entity.
func Named(name string) Option {
	return func(s *Scene, e *entity) {
		s.setName(e, name)
	}
}

// Classes sets the class list of the entity.
func Classes(classes ...string) Option {
	return func(s *Scene, e *entity) {
		s.setClasses(e, classes)
	}
}

// Interactive makes the entity track an interaction state.
func Interactive(state host.Interaction) Option {
	return func(s *Scene, e *entity) {
		s.insert(e, host.InteractComp)
		e.interaction = state
	}
}

// Text adds a text component with content.
func Text(content string) Option {
	return func(s *Scene, e *entity) {
		s.insert(e, TextComp)
		e.text.Content = content
	}
}

// Spawn creates an entity as the last child of parent. A parent of 0
// creates a new root.
func (s *Scene) Spawn(parent host.NodeID, opts ...Option) host.NodeID {
	s.last++
	e := &entity{
		id:         s.last,
		components: make(map[string]struct{}),
		ticks:      make(map[string]host.Tick),
		layout:     property.DefaultLayout(),
		paint:      property.Paint{},
	}
	e.node = tree.NewNode(e.id)
	s.entities[e.id] = e
	s.insert(e, host.NodeMarker)
	s.insert(e, StyleComp)
	s.insert(e, PaintComp)
	for _, opt := range opts {
		opt(s, e)
	}
	if p, ok := s.entities[parent]; ok {
		p.node.AddChild(e.node)
		s.touch(p, host.ChildrenComp)
	} else {
		if parent != 0 {
			tracer().Errorf("spawn: unknown parent %s, creating root", parent)
		}
		s.roots = append(s.roots, e.id)
	}
	return e.id
}

// Despawn removes an entity together with its subtree.
func (s *Scene) Despawn(n host.NodeID) {
	e, ok := s.entities[n]
	if !ok {
		return
	}
	if p := e.node.Parent(); p != nil {
		s.touch(s.entities[p.Payload], host.ChildrenComp)
	}
	e.node.Isolate()
	s.roots = slices.DeleteFunc(s.roots, func(r host.NodeID) bool { return r == n })
	tree.TopDown(e.node, func(node *tree.Node[host.NodeID], _ int) bool {
		delete(s.entities, node.Payload)
		return true
	})
}

// SetParent moves an entity to become the last child of parent.
// A parent of 0 makes the entity a root.
func (s *Scene) SetParent(n, parent host.NodeID) {
	e, ok := s.entities[n]
	if !ok {
		return
	}
	if old := e.node.Parent(); old != nil {
		s.touch(s.entities[old.Payload], host.ChildrenComp)
	}
	p, ok := s.entities[parent]
	if !ok {
		e.node.Isolate()
		if !slices.Contains(s.roots, n) {
			s.roots = append(s.roots, n)
		}
		return
	}
	if tree.AncestorWith(p.node, func(a *tree.Node[host.NodeID]) bool { return a == e.node }) != nil || p == e {
		tracer().Errorf("cannot move %s below its own descendant %s", n, parent)
		return
	}
	s.roots = slices.DeleteFunc(s.roots, func(r host.NodeID) bool { return r == n })
	p.node.AddChild(e.node)
	s.touch(p, host.ChildrenComp)
}

// SetName sets the id of an entity. An empty name removes it.
func (s *Scene) SetName(n host.NodeID, name string) {
	if e, ok := s.entities[n]; ok {
		s.setName(e, name)
	}
}

// SetClasses replaces the class list of an entity.
func (s *Scene) SetClasses(n host.NodeID, classes ...string) {
	if e, ok := s.entities[n]; ok {
		s.setClasses(e, classes)
	}
}

// AddClass adds a class to an entity.
func (s *Scene) AddClass(n host.NodeID, class string) {
	if e, ok := s.entities[n]; ok && !slices.Contains(e.classes, class) {
		s.setClasses(e, append(slices.Clone(e.classes), class))
	}
}

// RemoveClass removes a class from an entity.
func (s *Scene) RemoveClass(n host.NodeID, class string) {
	if e, ok := s.entities[n]; ok && slices.Contains(e.classes, class) {
		s.setClasses(e, slices.DeleteFunc(slices.Clone(e.classes), func(c string) bool { return c == class }))
	}
}

// SetInteraction sets the interaction state of an entity, making it
// interactive if it isn't yet.
func (s *Scene) SetInteraction(n host.NodeID, state host.Interaction) {
	if e, ok := s.entities[n]; ok {
		s.insert(e, host.InteractComp)
		e.interaction = state
	}
}

// Insert adds a marker component to an entity.
func (s *Scene) Insert(n host.NodeID, component string) {
	if e, ok := s.entities[n]; ok {
		s.insert(e, component)
	}
}

// Remove removes a component from an entity.
func (s *Scene) Remove(n host.NodeID, component string) {
	if e, ok := s.entities[n]; ok {
		if _, present := e.components[component]; present {
			delete(e.components, component)
			s.touch(e, component)
		}
	}
}

// Advance starts a new tick and returns it.
func (s *Scene) Advance() host.Tick {
	s.tick++
	return s.tick
}

// Roots returns the root entities in order of creation.
func (s *Scene) Roots() []host.NodeID {
	return slices.Clone(s.roots)
}

// Parent returns the parent of an entity.
func (s *Scene) Parent(n host.NodeID) (host.NodeID, bool) {
	if e, ok := s.entities[n]; ok {
		if p := e.node.Parent(); p != nil {
			return p.Payload, true
		}
	}
	return 0, false
}

// Has checks if an entity carries a component.
func (s *Scene) Has(n host.NodeID, component string) bool {
	if e, ok := s.entities[n]; ok {
		_, present := e.components[component]
		return present
	}
	return false
}

// Components returns the components of an entity in sorted order.
func (s *Scene) Components(n host.NodeID) []string {
	e, ok := s.entities[n]
	if !ok {
		return nil
	}
	comps := make([]string, 0, len(e.components))
	for c := range e.components {
		comps = append(comps, c)
	}
	sort.Strings(comps)
	return comps
}

// Label returns a short description of an entity, like "button#ok.primary".
func (s *Scene) Label(n host.NodeID) string {
	e, ok := s.entities[n]
	if !ok {
		return n.String()
	}
	var b strings.Builder
	b.WriteString(e.tag)
	if e.name != "" {
		b.WriteString("#" + e.name)
	}
	for _, c := range e.classes {
		b.WriteString("." + c)
	}
	if b.Len() == 0 {
		return n.String()
	}
	return b.String()
}

// --- Internal mutation helpers ---------------------------------------------

func (s *Scene) touch(e *entity, component string) {
	if e != nil {
		e.ticks[component] = s.tick
	}
}

func (s *Scene) insert(e *entity, component string) {
	e.components[component] = struct{}{}
	s.touch(e, component)
}

func (s *Scene) setName(e *entity, name string) {
	e.name = name
	if name == "" {
		delete(e.components, host.NameComp)
	} else {
		e.components[host.NameComp] = struct{}{}
	}
	s.touch(e, host.NameComp)
}

func (s *Scene) setClasses(e *entity, classes []string) {
	e.classes = slices.Clone(classes)
	e.components[host.ClassComp] = struct{}{}
	s.touch(e, host.ClassComp)
}
