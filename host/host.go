/*
Package host defines what the styling engine needs from the scene graph
it styles.

The engine does not own nodes or components. A host application hands
it a World, which answers structural questions (children of a node,
nodes carrying a component), attribute questions (name, classes,
interaction state) and change questions (at which tick was a component
of a node last mutated).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package host

import "fmt"

// NodeID identifies a node of the host's scene graph.
type NodeID uint64

func (id NodeID) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}

// Tick is a monotonic change counter maintained by the host. Every
// mutation of a component is stamped with the tick current at that time.
type Tick uint64

// Interaction is the externally observed interaction state of a node.
type Interaction int8

// Interaction states which pseudo-classes refer to.
const (
	None Interaction = iota
	Hovered
	Pressed
)

func (i Interaction) String() string {
	switch i {
	case Hovered:
		return "hovered"
	case Pressed:
		return "pressed"
	}
	return "none"
}

// Well-known component names. Hosts are free to track additional
// components, which may be made selectable by registering a query
// for them (see package matching).
const (
	NodeMarker    = "node"        // every styleable node carries it
	NameComp      = "name"        // the node's id, matched by '#name'
	ClassComp     = "class"       // the node's class list, matched by '.class'
	InteractComp  = "interaction" // hover/press state
	ChildrenComp  = "children"    // structural changes below a node
	StyleSheetRef = "stylesheet"  // stylesheet references of an owner node
)

// World is the scene graph as seen by the styling engine.
type World interface {
	// Children returns the direct children of a node, in order.
	Children(NodeID) []NodeID
	// Query returns all nodes carrying a component of the given name.
	Query(component string) []NodeID
	// Name returns the id of a node, if any.
	Name(NodeID) (string, bool)
	// Classes returns the class list of a node.
	Classes(NodeID) []string
	// Interaction returns the interaction state of a node, if it is interactive.
	Interaction(NodeID) (Interaction, bool)
	// ChangedTick returns the tick of the last mutation of a component of a
	// node. Adding and removing a component count as mutations. The flag is
	// false if the node never carried the component.
	ChangedTick(node NodeID, component string) (Tick, bool)
	// CurrentTick returns the host's current tick.
	CurrentTick() Tick
}

// Clock is implemented by worlds which let the styling engine start a new
// tick. The engine advances the clock at the end of each refresh cycle, so
// that mutations made afterwards are stamped with a later tick than the one
// just processed.
type Clock interface {
	Advance() Tick
}

// ChangedSince is a helper to ask whether a component of a node has been
// mutated after tick t.
func ChangedSince(w World, node NodeID, component string, t Tick) bool {
	if tick, ok := w.ChangedTick(node, component); ok {
		return tick > t
	}
	return false
}
