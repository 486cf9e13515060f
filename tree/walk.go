package tree

// Predicate is a function type to match against nodes of a tree.
// It is used as an argument for various tree search functions.
type Predicate[T comparable] func(n *Node[T]) bool

// Whatever is a predicate to match anything.
func Whatever[T comparable]() Predicate[T] {
	return func(*Node[T]) bool { return true }
}

// Action is a function type to operate on tree nodes. Returning false
// prunes the walk below the node.
type Action[T comparable] func(n *Node[T], depth int) bool

// TopDown visits node and its descendants depth-first, parents before
// children and siblings in order.
func TopDown[T comparable](node *Node[T], action Action[T]) {
	if node == nil {
		return
	}
	topDown(node, 0, action)
}

func topDown[T comparable](node *Node[T], depth int, action Action[T]) {
	if !action(node, depth) {
		return
	}
	for _, ch := range node.Children() {
		topDown(ch, depth+1, action)
	}
}

// DescendantsWith collects all strict descendants of node matching
// predicate, in depth-first order.
func DescendantsWith[T comparable](node *Node[T], predicate Predicate[T]) []*Node[T] {
	var result []*Node[T]
	TopDown(node, func(n *Node[T], depth int) bool {
		if depth > 0 && predicate(n) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// AncestorWith returns the closest strict ancestor matching predicate, or nil.
func AncestorWith[T comparable](node *Node[T], predicate Predicate[T]) *Node[T] {
	if node == nil {
		return nil
	}
	for a := node.Parent(); a != nil; a = a.Parent() {
		if predicate(a) {
			return a
		}
	}
	return nil
}

// Root returns the topmost ancestor of node (node itself if it is detached).
func Root[T comparable](node *Node[T]) *Node[T] {
	for node != nil && node.Parent() != nil {
		node = node.Parent()
	}
	return node
}
