/*
Package styling applies stylesheets to a scene, tick by tick.

An Engine keeps a set of owner nodes, each referencing one or more
stylesheets. On every tick the engine finds out which owners need to be
re-matched, matches the rules of their stylesheets against their subtrees,
and runs the registered properties over the matches. Properties apply
their values in ascending order of selector weight, thus more specific
rules are applied last and win.

Values of properties are parsed once per stylesheet content and selector
and are cached across ticks in a PropertyCache.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package styling

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ecss.styling'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.styling")
}
