package ecss

import (
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/matching"
	"github.com/npillmayer/ecss/property"
	"github.com/npillmayer/ecss/styling"
)

// Components which can be used in selectors without registering a query
// for them.
var Components = []string{
	host.NodeMarker,
	"text",
	"button",
	"style",
	"background-color",
	"ui-image",
	host.InteractComp,
}

// Host is a scene graph providing both the view needed for matching and
// the style components written by the built-in properties.
type Host interface {
	host.World
	property.Components
}

// NewRegistry creates a component registry with queries for the
// built-in components.
func NewRegistry() *matching.Registry {
	r := matching.NewRegistry()
	r.RegisterComponents(Components...)
	return r
}

// New creates a styling engine for a host, with the built-in component
// queries and properties registered. Options are applied after the
// defaults, thus WithRegistry replaces the built-in registry.
func New(h Host, opts ...styling.Option) *styling.Engine {
	opts = append([]styling.Option{styling.WithRegistry(NewRegistry())}, opts...)
	e := styling.New(h, opts...)
	property.Register(e, h)
	return e
}
