package cssom

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/selector"
	tp "github.com/xlab/treeprint"
)

// StyleSheet is the parsed form of one stylesheet source. It is read-only
// after construction.
//
// A stylesheet carries a hash of its source text. Everything derived from a
// stylesheet and cached across ticks is keyed by this hash, not by the
// identity of the StyleSheet value: re-parsing identical text yields a
// sheet with the same hash.
type StyleSheet struct {
	Path     string // source path, for debugging only
	hash     uint64
	rules    []StyleRule
	declared map[string]struct{}
}

// NewStyleSheet parses text and creates a stylesheet from it.
func NewStyleSheet(path string, text string) *StyleSheet {
	return Assemble(path, text, Parse(text))
}

// Assemble creates a stylesheet from rules which have been parsed from text
// by other means. text is used for hashing only.
func Assemble(path string, text string, rules []StyleRule) *StyleSheet {
	sheet := &StyleSheet{
		Path:     path,
		hash:     xxhash.Sum64String(text),
		rules:    rules,
		declared: make(map[string]struct{}),
	}
	for _, r := range sheet.rules {
		for name := range r.Properties {
			sheet.declared[name] = struct{}{}
		}
	}
	tracer().P("sheet", path).Debugf("stylesheet with %d rules, hash = %x", len(sheet.rules), sheet.hash)
	return sheet
}

// Hash returns the content hash of the stylesheet's source text.
func (sheet *StyleSheet) Hash() uint64 {
	return sheet.hash
}

// Rules returns the rules of the stylesheet in source order.
func (sheet *StyleSheet) Rules() []StyleRule {
	return sheet.rules
}

// Empty checks if this stylesheet contains any rules.
func (sheet *StyleSheet) Empty() bool {
	return len(sheet.rules) == 0
}

// Properties returns the values for property name, as declared by the first
// rule with selector sel. Rules sharing a selector are not merged.
func (sheet *StyleSheet) Properties(sel selector.Selector, name string) (css.Values, bool) {
	for _, r := range sheet.rules {
		if r.Selector.Equal(sel) {
			return r.Value(name)
		}
	}
	return nil, false
}

// Declares returns true if any rule of the stylesheet declares property name.
func (sheet *StyleSheet) Declares(name string) bool {
	_, ok := sheet.declared[name]
	return ok
}

func (sheet *StyleSheet) String() string {
	return fmt.Sprintf("StyleSheet(%s, %d rules, %016x)", sheet.Path, len(sheet.rules), sheet.hash)
}

// Dump renders the rules of a stylesheet as a tree, for debugging.
func (sheet *StyleSheet) Dump() string {
	root := tp.New()
	root.SetValue(sheet.String())
	for _, r := range sheet.rules {
		branch := root.AddMetaBranch(r.Selector.Weight(), r.Selector.String())
		names := make([]string, 0, len(r.Properties))
		for name := range r.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			branch.AddNode(name + ": " + r.Properties[name].String())
		}
	}
	return root.String()
}
