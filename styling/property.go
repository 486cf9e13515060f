package styling

import (
	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/host"
)

// Property is a style property the engine knows how to resolve and apply.
// Parse interprets the values of a declaration, Apply writes a parsed value
// to a node. Apply is called for every matched node, in ascending order of
// selector weight.
type Property[T any] interface {
	Name() string
	Parse(css.Values) (T, error)
	Apply(node host.NodeID, value T)
}

// NewProperty creates a property from functions.
func NewProperty[T any](name string, parse func(css.Values) (T, error), apply func(host.NodeID, T)) Property[T] {
	return funcProperty[T]{name: name, parse: parse, apply: apply}
}

type funcProperty[T any] struct {
	name  string
	parse func(css.Values) (T, error)
	apply func(host.NodeID, T)
}

func (p funcProperty[T]) Name() string                    { return p.name }
func (p funcProperty[T]) Parse(v css.Values) (T, error)   { return p.parse(v) }
func (p funcProperty[T]) Apply(node host.NodeID, value T) { p.apply(node, value) }

// Register adds a property to the engine. Properties run in the order of
// registration. Register returns the cache of the property.
func Register[T any](e *Engine, p Property[T]) *PropertyCache[T] {
	sys := &propertySystem[T]{
		prop:  p,
		cache: NewPropertyCache(p.Name(), p.Parse),
	}
	e.systems = append(e.systems, sys)
	tracer().Debugf("registered property %q", p.Name())
	return sys.cache
}

// system is a type-erased property, as stored by the engine.
type system interface {
	name() string
	run(e *Engine)
}

type propertySystem[T any] struct {
	prop  Property[T]
	cache *PropertyCache[T]
}

func (s *propertySystem[T]) name() string {
	return s.prop.Name()
}

func (s *propertySystem[T]) run(e *Engine) {
	for _, o := range e.ownersInOrder() {
		for _, sel := range o.selections {
			v, state := s.cache.GetOrParse(sel.sheet, sel.selector)
			if state != Resolved {
				continue
			}
			for _, n := range sel.nodes {
				s.prop.Apply(n, v)
			}
		}
	}
}
