package tree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func buildTree() (*Node[string], map[string]*Node[string]) {
	nodes := make(map[string]*Node[string])
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		nodes[s] = NewNode(s)
	}
	//      a
	//    b   c
	//   d e   f
	nodes["a"].AddChild(nodes["b"]).AddChild(nodes["c"])
	nodes["b"].AddChild(nodes["d"]).AddChild(nodes["e"])
	nodes["c"].AddChild(nodes["f"])
	return nodes["a"], nodes
}

func payloads(nodes []*Node[string]) string {
	s := ""
	for _, n := range nodes {
		s += n.Payload
	}
	return s
}

func TestTopDownOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.tree")
	defer teardown()
	//
	root, _ := buildTree()
	var order []*Node[string]
	TopDown(root, func(n *Node[string], depth int) bool {
		order = append(order, n)
		return true
	})
	if s := payloads(order); s != "abdecf" {
		t.Errorf("expected depth-first order abdecf, is %s", s)
	}
}

func TestTopDownPrune(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.tree")
	defer teardown()
	//
	root, _ := buildTree()
	var order []*Node[string]
	TopDown(root, func(n *Node[string], depth int) bool {
		order = append(order, n)
		return n.Payload != "b"
	})
	if s := payloads(order); s != "abcf" {
		t.Errorf("expected pruned walk abcf, is %s", s)
	}
}

func TestDescendantsWith(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.tree")
	defer teardown()
	//
	root, nodes := buildTree()
	if s := payloads(DescendantsWith(root, Whatever[string]())); s != "bdecf" {
		t.Errorf("expected descendants bdecf, is %s", s)
	}
	leaves := DescendantsWith(root, func(n *Node[string]) bool { return n.ChildCount() == 0 })
	if s := payloads(leaves); s != "def" {
		t.Errorf("expected leaves def, is %s", s)
	}
	if len(DescendantsWith(nodes["f"], Whatever[string]())) != 0 {
		t.Error("expected leaf to have no descendants")
	}
}

func TestReparent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.tree")
	defer teardown()
	//
	root, nodes := buildTree()
	nodes["c"].InsertChildAt(0, nodes["d"])
	if nodes["d"].Parent() != nodes["c"] {
		t.Fatalf("expected d to be re-parented to c")
	}
	if nodes["b"].ChildCount() != 1 || nodes["b"].IndexOfChild(nodes["e"]) != 0 {
		t.Errorf("expected b to keep only e, has %d children", nodes["b"].ChildCount())
	}
	if s := payloads(DescendantsWith(root, Whatever[string]())); s != "becdf" {
		t.Errorf("expected order becdf after re-parenting, is %s", s)
	}
	if a := AncestorWith(nodes["d"], func(n *Node[string]) bool { return n.Payload == "a" }); a != root {
		t.Errorf("expected a to be ancestor of d")
	}
	nodes["c"].Isolate()
	if Root(nodes["f"]) != nodes["c"] {
		t.Error("expected isolated c to be root of its subtree")
	}
}
