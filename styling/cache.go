package styling

import (
	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/ecss/result"
	"github.com/npillmayer/ecss/selector"
)

// CacheState is the outcome of a cache lookup.
type CacheState uint8

// States of a (stylesheet, selector) entry of a property cache.
const (
	NotTried CacheState = iota // no declaration for the property
	Resolved                   // declaration parsed fine
	Failed                     // declaration could not be parsed
)

func (s CacheState) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	}
	return "not-tried"
}

// PropertyCache memoizes the parsed values of one property. Entries are
// keyed by stylesheet content hash first and selector hash second, thus
// they survive re-loading of unchanged stylesheets.
type PropertyCache[T any] struct {
	name    string
	parse   func(css.Values) (T, error)
	buckets map[uint64]map[uint64]result.Result[T]
}

// NewPropertyCache creates an empty cache for the property name.
func NewPropertyCache[T any](name string, parse func(css.Values) (T, error)) *PropertyCache[T] {
	return &PropertyCache[T]{
		name:    name,
		parse:   parse,
		buckets: make(map[uint64]map[uint64]result.Result[T]),
	}
}

// GetOrParse returns the value of the property for selector sel of
// stylesheet sheet. The declaration is parsed on first request; later
// requests, from any stylesheet with identical content, are served from
// the cache. Parse errors are cached as well and traced once.
//
// If the selector does not declare the property, GetOrParse returns
// NotTried and the cache is left untouched.
func (c *PropertyCache[T]) GetOrParse(sheet *cssom.StyleSheet, sel selector.Selector) (T, CacheState) {
	bucket, ok := c.buckets[sheet.Hash()]
	if ok {
		if r, ok := bucket[sel.Hash()]; ok {
			return resolved(r)
		}
	}
	values, ok := sheet.Properties(sel, c.name)
	if !ok {
		var zero T
		return zero, NotTried
	}
	r := result.From(c.parse(values))
	if !r.IsOk() {
		_, err := r.Get()
		tracer().P("sheet", sheet.Path).Errorf("%s { %s: %s }: %v", sel, c.name, values, err)
	}
	if bucket == nil {
		bucket = make(map[uint64]result.Result[T])
		c.buckets[sheet.Hash()] = bucket
	}
	bucket[sel.Hash()] = r
	return resolved(r)
}

// Len returns the number of cached entries.
func (c *PropertyCache[T]) Len() int {
	n := 0
	for _, b := range c.buckets {
		n += len(b)
	}
	return n
}

func resolved[T any](r result.Result[T]) (T, CacheState) {
	v, err := r.Get()
	if err != nil {
		var zero T
		return zero, Failed
	}
	return v, Resolved
}
