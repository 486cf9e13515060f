/*
Package selector models CSS selectors as understood by the styling engine.

A selector is an ordered list of elements. Child elements separate the
list into segments, where each segment is a compound selector and
segments are ordered from ancestor to descendant:

	button.enabled:hover  →  [ Component(button) Class(enabled) Pseudo(hover) ]
	#menu .item           →  [ Name(menu) ] [ Class(item) ]

Selectors are immutable. Their identity hash and their specificity weight
are computed once, on construction. Two selectors are equal if and only if
their hashes are equal.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package selector

import (
	"strings"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ecss.selector'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.selector")
}

// Kind discriminates selector elements.
type Kind uint8

// Kinds of selector elements.
const (
	NameKind      Kind = iota + 1 // #id
	ComponentKind                 // button
	ClassKind                     // .class
	PseudoKind                    // :hover
	AnyKind                       // *
	ChildKind                     // descendant combinator
)

// Pseudo enumerates the pseudo-classes the engine knows about.
type Pseudo uint8

// Pseudo-classes. Unknown pseudo-classes are kept as Unsupported; they do
// not restrict matching.
const (
	Unsupported Pseudo = iota
	Hover
	Active
)

var pseudoClasses = map[string]Pseudo{
	"hover":  Hover,
	"active": Active,
}

// PseudoFromName maps the name of a pseudo-class to a Pseudo.
func PseudoFromName(name string) Pseudo {
	return pseudoClasses[strings.ToLower(name)]
}

// Element is a single part of a selector.
type Element struct {
	Kind   Kind
	Value  string // name, component, class or pseudo-class name
	Pseudo Pseudo
}

// Name creates an element matching nodes by id.
func Name(id string) Element { return Element{Kind: NameKind, Value: id} }

// Component creates an element matching nodes carrying a named component.
func Component(c string) Element { return Element{Kind: ComponentKind, Value: c} }

// Class creates an element matching nodes by class.
func Class(c string) Element { return Element{Kind: ClassKind, Value: c} }

// PseudoClass creates a pseudo-class element from its name.
func PseudoClass(name string) Element {
	return Element{Kind: PseudoKind, Value: strings.ToLower(name), Pseudo: PseudoFromName(name)}
}

// Any is the universal selector '*'.
func Any() Element { return Element{Kind: AnyKind} }

// Child is the descendant combinator.
func Child() Element { return Element{Kind: ChildKind} }

// Weight returns the specificity contribution of an element.
func (e Element) Weight() int {
	switch e.Kind {
	case NameKind:
		return 100
	case ClassKind:
		return 10
	case PseudoKind:
		if e.Pseudo == Hover || e.Pseudo == Active {
			return 10
		}
	case ComponentKind:
		return 1
	}
	return 0
}

func (e Element) String() string {
	switch e.Kind {
	case NameKind:
		return "#" + e.Value
	case ComponentKind:
		return e.Value
	case ClassKind:
		return "." + e.Value
	case PseudoKind:
		return ":" + e.Value
	case AnyKind:
		return "*"
	case ChildKind:
		return " "
	}
	return "?"
}

// --- Selectors -------------------------------------------------------------

// Selector is an immutable, pre-hashed sequence of elements.
type Selector struct {
	elements []Element
	hash     uint64
	weight   int
}

// New creates a selector. Leading and trailing combinators are stripped and
// consecutive combinators are collapsed, thus every segment of the result
// contains at least one element.
func New(elements ...Element) Selector {
	els := make([]Element, 0, len(elements))
	for _, e := range elements {
		if e.Kind == ChildKind && (len(els) == 0 || els[len(els)-1].Kind == ChildKind) {
			continue
		}
		els = append(els, e)
	}
	for len(els) > 0 && els[len(els)-1].Kind == ChildKind {
		els = els[:len(els)-1]
	}
	sel := Selector{elements: els}
	for _, e := range els {
		sel.weight += e.Weight()
	}
	h, err := hashstructure.Hash(els, hashstructure.FormatV2, nil)
	if err != nil {
		// elements are plain structs, this is not expected to happen
		tracer().Errorf("cannot hash selector %s: %v", sel, err)
	}
	sel.hash = h
	return sel
}

// FromNames builds a selector from a list of raw name tokens, as produced by
// simple tokenizers splitting at delimiters. A standalone "." marks the next
// token as a class, "#x" is a name, ":x" a pseudo-class and "*" the universal
// selector; everything else is a component.
// Tokens are treated as belonging to a single segment; empty tokens and bare
// prefixes are ignored.
func FromNames(raw []string) Selector {
	var els []Element
	nextIsClass := false
	for _, r := range raw {
		if r == "" || r == "#" || r == ":" {
			continue
		}
		switch {
		case r == ".":
			nextIsClass = true
			continue
		case r == "*":
			els = append(els, Any())
		case r[0] == '#':
			els = append(els, Name(r[1:]))
		case r[0] == ':':
			els = append(els, PseudoClass(r[1:]))
		case nextIsClass:
			els = append(els, Class(r))
		default:
			els = append(els, Component(r))
		}
		nextIsClass = false
	}
	return New(els...)
}

// Elements returns a copy of the selector's elements.
func (s Selector) Elements() []Element {
	els := make([]Element, len(s.elements))
	copy(els, s.elements)
	return els
}

// Hash returns the identity hash of the selector.
func (s Selector) Hash() uint64 { return s.hash }

// Weight returns the specificity of the selector.
func (s Selector) Weight() int { return s.weight }

// IsEmpty is true for a selector without any elements.
func (s Selector) IsEmpty() bool { return len(s.elements) == 0 }

// Equal compares selectors by hash.
func (s Selector) Equal(other Selector) bool {
	return s.hash == other.hash
}

// ParentTree splits the selector into segments, ordered from the outermost
// ancestor to the innermost descendant.
func (s Selector) ParentTree() [][]Element {
	if len(s.elements) == 0 {
		return nil
	}
	tree := make([][]Element, 0, 4)
	var segment []Element
	for _, e := range s.elements {
		if e.Kind == ChildKind {
			tree = append(tree, segment)
			segment = nil
			continue
		}
		segment = append(segment, e)
	}
	return append(tree, segment)
}

// String returns the canonical text form of the selector.
func (s Selector) String() string {
	var b strings.Builder
	for _, e := range s.elements {
		b.WriteString(e.String())
	}
	return b.String()
}
