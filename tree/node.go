/*
Package tree implements the node hierarchy a scene is built of.

Nodes are mutable and carry a payload of a comparable type, usually an
entity identifier. Children are kept in insertion order; that order is
the document order of a depth-first traversal.

Trees are owned by a single scene and follow its tick model, i.e. they
are not safe for concurrent mutation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tree

import (
	"fmt"
	"slices"
)

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	parent   *Node[T]
	children []*Node[T]
	Payload  T // e.g. an entity ID
}

// NewNode creates a detached node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", len(node.children), node.Payload)
}

// AddChild appends ch to the children of node, moving it away from its
// current parent. It returns node to allow for chaining.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	return node.InsertChildAt(len(node.children), ch)
}

// InsertChildAt moves ch to position i of the children of node. Positions
// are clamped to the valid range.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) *Node[T] {
	if ch == nil || ch == node {
		return node
	}
	ch.Isolate()
	i = max(0, min(i, len(node.children)))
	node.children = slices.Insert(node.children, i, ch)
	ch.parent = node
	return node
}

// Parent returns the parent node, or nil for a root.
func (node *Node[T]) Parent() *Node[T] {
	return node.parent
}

// Isolate detaches a node from its parent, keeping its own subtree.
func (node *Node[T]) Isolate() *Node[T] {
	if node == nil || node.parent == nil {
		return node
	}
	p := node.parent
	if i := p.IndexOfChild(node); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	node.parent = nil
	return node
}

// ChildCount returns the number of children of a node.
func (node *Node[T]) ChildCount() int {
	return len(node.children)
}

// Child returns the n-th child of a node.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	if n < 0 || n >= len(node.children) {
		return nil, false
	}
	return node.children[n], true
}

// Children returns a copy of the children of a node, in order. Callers may
// mutate the tree while iterating the copy.
func (node *Node[T]) Children() []*Node[T] {
	return slices.Clone(node.children)
}

// IndexOfChild returns the position of ch among the children of node, or -1.
func (node *Node[T]) IndexOfChild(ch *Node[T]) int {
	return slices.Index(node.children, ch)
}
