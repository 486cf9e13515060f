/*
Package cssom parses stylesheets and holds the parsed rules.

Overview

A stylesheet is a sequence of rules

	<selector-prelude> { <declarations> }

We support a small subset of CSS. Selectors may consist of component
names (`button`), ids (`#menu`), classes (`.item`), the universal
selector (`*`) and pseudo-classes (`:hover`, `:active`), combined with
the descendant combinator (whitespace). Selector lists (`a, b`) are split
into one rule per selector. Other combinators, attribute selectors and
functional pseudo-classes are rejected.

Declarations are captured as lists of value tokens (see package css).
Tokens which cannot be represented, e.g. function arguments, are dropped
silently; it is up to the consumer of a property to decide if the
remaining tokens make sense.

Parsing never fails as a whole. A rule with an unusable prelude or a
malformed declaration is reported to the tracer and skipped, and parsing
continues with the next rule or declaration.

Lexing is done by github.com/tdewolff/parse/v2/css.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ecss.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.cssom")
}
