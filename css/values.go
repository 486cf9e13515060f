/*
Package css holds the value model for style properties.

A declaration `name: a b c;` is captured as an ordered list of tokens
(type Values). Property handlers project these tokens onto the type
they need by calling one of the typed accessors, e.g. Length or Color.
All accessors are read-only and report through a boolean flag whether a
token of the right shape could be found; turning a missing value into an
error is left to the property handler.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/ecss/maybe"
)

// TokenKind discriminates the variants of Token.
type TokenKind uint8

// Kinds of property value tokens.
const (
	PercentageToken TokenKind = iota + 1 // 100%, stored as 100
	DimensionToken                       // 10px, 2em; units are not distinguished
	NumberToken                          // 12.9
	IdentToken                           // auto, none, center
	HashToken                            // #ff0000, stored without '#'
	StringToken                          // "text", stored without quotes
)

func (k TokenKind) String() string {
	switch k {
	case PercentageToken:
		return "Percentage"
	case DimensionToken:
		return "Dimension"
	case NumberToken:
		return "Number"
	case IdentToken:
		return "Identifier"
	case HashToken:
		return "Hash"
	case StringToken:
		return "String"
	}
	return "<invalid>"
}

// Token is a single property value token.
type Token struct {
	Kind TokenKind
	Num  float32 // for numeric kinds
	Str  string  // for textual kinds
}

// Percentage creates a percentage token. 50% is represented as 50.
func Percentage(x float32) Token { return Token{Kind: PercentageToken, Num: x} }

// Dimension creates a dimension token, with the unit already dropped.
func Dimension(x float32) Token { return Token{Kind: DimensionToken, Num: x} }

// Number creates a plain numeric token.
func Number(x float32) Token { return Token{Kind: NumberToken, Num: x} }

// Ident creates an identifier token.
func Ident(s string) Token { return Token{Kind: IdentToken, Str: s} }

// Hash creates a hash token. s does not include the leading '#'.
func Hash(s string) Token { return Token{Kind: HashToken, Str: s} }

// Str creates a string token. s does not include the quotes.
func Str(s string) Token { return Token{Kind: StringToken, Str: s} }

// IsNumeric is true for percentage, dimension and number tokens.
func (t Token) IsNumeric() bool {
	return t.Kind == PercentageToken || t.Kind == DimensionToken || t.Kind == NumberToken
}

func (t Token) String() string {
	switch t.Kind {
	case PercentageToken:
		return ftoa(t.Num) + "%"
	case DimensionToken:
		return ftoa(t.Num) + "px"
	case NumberToken:
		return ftoa(t.Num)
	case IdentToken:
		return t.Str
	case HashToken:
		return "#" + t.Str
	case StringToken:
		return strconv.Quote(t.Str)
	}
	return "<invalid>"
}

func ftoa(x float32) string {
	return strconv.FormatFloat(float64(x), 'g', -1, 32)
}

// --- Values ----------------------------------------------------------------

// Values is the ordered list of tokens of one declaration. Order matters
// for positional properties like margins.
type Values []Token

func (v Values) String() string {
	s := make([]string, len(v))
	for i, t := range v {
		s[i] = t.String()
	}
	return strings.Join(s, " ")
}

// Identifier returns the first non-empty identifier.
func (v Values) Identifier() (string, bool) {
	for _, t := range v {
		if t.Kind == IdentToken && t.Str != "" {
			return t.Str, true
		}
	}
	return "", false
}

// Text returns the first non-empty quoted string.
func (v Values) Text() (string, bool) {
	for _, t := range v {
		if t.Kind == StringToken && t.Str != "" {
			return t.Str, true
		}
	}
	return "", false
}

// Float returns the numeric value of the first numeric token. Percentages
// are on a 0–100 scale, dimensions are raw magnitudes.
func (v Values) Float() (float32, bool) {
	for _, t := range v {
		if t.IsNumeric() {
			return t.Num, true
		}
	}
	return 0, false
}

// Length returns the first token convertible to a length:
// percentages, dimensions and the identifier `auto`.
func (v Values) Length() (Length, bool) {
	for _, t := range v {
		if l, ok := toLength(t); ok {
			return l, true
		}
	}
	return Length{}, false
}

func toLength(t Token) (Length, bool) {
	switch t.Kind {
	case PercentageToken:
		return Percent(t.Num), true
	case DimensionToken:
		return Px(t.Num), true
	case IdentToken:
		if t.Str == "auto" {
			return Auto(), true
		}
	}
	return Length{}, false
}

// OptionFloat is for properties taking either a number or `none`.
// A numeric token yields Just(x), `none` yields Nothing. The flag is
// false if neither could be found.
func (v Values) OptionFloat() (maybe.Maybe[float32], bool) {
	for _, t := range v {
		if t.IsNumeric() {
			return maybe.Just(t.Num), true
		}
		if t.Kind == IdentToken && t.Str == "none" {
			return maybe.Nothing[float32](), true
		}
	}
	return nil, false
}

// Rect interprets the values as a box shorthand, the way CSS does for
// `margin` or `padding`:
//
//	1 value:  all four sides
//	2 values: top/bottom, right/left
//	3 values: top, right/left, bottom
//	4 values: top, right, bottom, left
//
// Tokens which are not lengths are skipped.
func (v Values) Rect() (Rect, bool) {
	var l [4]Length
	n := 0
	for _, t := range v {
		if n == 4 {
			break
		}
		if x, ok := toLength(t); ok {
			l[n] = x
			n++
		}
	}
	switch n {
	case 0:
		return Rect{}, false
	case 1:
		return UniformRect(l[0]), true
	case 2:
		return Rect{Top: l[0], Right: l[1], Bottom: l[0], Left: l[1]}, true
	case 3:
		return Rect{Top: l[0], Right: l[1], Bottom: l[2], Left: l[1]}, true
	}
	return Rect{Top: l[0], Right: l[1], Bottom: l[2], Left: l[3]}, true
}

// Rect holds a length for each side of a box.
type Rect struct {
	Top, Right, Bottom, Left Length
}

// UniformRect creates a rectangle with all sides set to l.
func UniformRect(l Length) Rect {
	return Rect{Top: l, Right: l, Bottom: l, Left: l}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s %s %s %s]", r.Top, r.Right, r.Bottom, r.Left)
}
