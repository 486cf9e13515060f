/*
Package douceuradapter imports stylesheets through the douceur CSS parser.

This is a simplified import path, kept for stylesheets embedded in HTML
documents and for cross-checking the main parser. Selectors are built
from raw names: compound selectors may consist of components, classes
and ids, separated by whitespace into segments. Declaration values are
tokenized by package cssom.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"maps"
	"strings"

	dcss "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/ecss/selector"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'ecss.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.cssom")
}

// Import parses text with douceur and converts the result to a stylesheet.
// At-rules are skipped.
func Import(path string, text string) (*cssom.StyleSheet, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("douceur: %s: %w", path, err)
	}
	var rules []cssom.StyleRule
	for _, r := range sheet.Rules {
		if r.Kind != dcss.QualifiedRule {
			tracer().Infof("skipping at-rule %s", r.Name)
			continue
		}
		props := make(map[string]css.Values, len(r.Declarations))
		for _, d := range r.Declarations {
			props[strings.ToLower(d.Property)] = cssom.ParseValues(d.Value)
		}
		for _, s := range r.Selectors {
			sel := FromRaw(s)
			if sel.IsEmpty() {
				tracer().Errorf("skipping selector %q: %v", s, cssom.ErrInvalidSelector)
				continue
			}
			rules = append(rules, cssom.StyleRule{Selector: sel, Properties: maps.Clone(props)})
		}
	}
	return cssom.Assemble(path, text, rules), nil
}

// FromRaw builds a selector from its text form. Whitespace separates
// segments; within a segment '.' starts a class, '#' an id and ':' a
// pseudo-class, '*' is the universal selector and everything else is a
// component name.
func FromRaw(s string) selector.Selector {
	var els []selector.Element
	for _, segment := range strings.Fields(s) {
		seg := selector.FromNames(rawNames(segment)).Elements()
		if len(seg) == 0 {
			continue
		}
		if len(els) > 0 {
			els = append(els, selector.Child())
		}
		els = append(els, seg...)
	}
	return selector.New(els...)
}

// rawNames splits a compound selector at delimiters, keeping '.' and '*'
// as tokens of their own and '#' and ':' as prefixes:
// "a.b#c:hover" → [a . b #c :hover].
func rawNames(compound string) []string {
	var names []string
	start := 0
	for i := 0; i <= len(compound); i++ {
		if i < len(compound) && !strings.ContainsRune(".#:*", rune(compound[i])) {
			continue
		}
		if i > start {
			names = append(names, compound[start:i])
		}
		start = i
		if i < len(compound) && (compound[i] == '.' || compound[i] == '*') {
			names = append(names, compound[i:i+1])
			start = i + 1
		}
	}
	return names
}

// --- HTML ------------------------------------------------------------------

// StyleTexts visits <head> and <body> elements in an HTML parse tree and
// collects the contents of embedded <style> elements.
func StyleTexts(htmldoc *html.Node) []string {
	var texts []string
	for _, a := range []atom.Atom{atom.Head, atom.Body} {
		el := findElement(a, htmldoc)
		if el == nil {
			continue
		}
		for ch := el.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.DataAtom == atom.Style && ch.FirstChild != nil {
				texts = append(texts, ch.FirstChild.Data)
			}
		}
	}
	return texts
}

// ExtractStyleElements imports the embedded <style>s of an HTML document.
// Styles which douceur cannot parse are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*cssom.StyleSheet {
	var sheets []*cssom.StyleSheet
	for i, text := range StyleTexts(htmldoc) {
		sheet, err := Import(fmt.Sprintf("<style>[%d]", i), text)
		if err != nil {
			tracer().Errorf("%v", err)
			continue
		}
		sheets = append(sheets, sheet)
	}
	return sheets
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
