/*
Package matching selects the nodes of a scene which match a selector.

Matching is performed on a subtree, anchored at the node owning a
stylesheet. The candidate pool starts as the owner together with all of
its descendants. Each segment of a selector narrows the pool by its
elements; between segments the pool is replaced by the descendants of
the survivors. Whatever remains after the last segment is the result.

While matching, the candidate pool examined for every selector element is
recorded in a Tracked table. The table is later consulted to find out
whether a mutation of the scene may have changed the outcome of a match.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package matching

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ecss.matching'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.matching")
}
