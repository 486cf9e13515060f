package css

import "fmt"

const (
	lengthUndefined uint8 = 0
	lengthPx        uint8 = 0x01
	lengthAuto      uint8 = 0x02
	lengthPercent   uint8 = 0x03
)

// Length is an option type for CSS lengths.
//
//	type Length
//	    = Undefined
//	    | Auto
//	    | Px float32
//	    | Percent float32
//
// The zero value is Undefined, which is what sides of a Rect are set to if
// not covered by a declaration.
type Length struct {
	x    float32
	kind uint8
}

// Undefined is an unset length.
func Undefined() Length {
	return Length{kind: lengthUndefined}
}

// Auto is the length `auto`.
func Auto() Length {
	return Length{kind: lengthAuto}
}

// Px creates an absolute length. Units other than px are not modelled and
// end up here as well.
func Px(x float32) Length {
	return Length{x: x, kind: lengthPx}
}

// Percent creates a %-relative length. Percent(50) is 50%.
func Percent(p float32) Length {
	return Length{x: p, kind: lengthPercent}
}

// IsUndefined is true for the zero Length.
func (l Length) IsUndefined() bool {
	return l.kind == lengthUndefined
}

func (l Length) String() string {
	switch l.kind {
	case lengthAuto:
		return "auto"
	case lengthPx:
		return ftoa(l.x) + "px"
	case lengthPercent:
		return ftoa(l.x) + "%"
	}
	return "undefined"
}

// GoString makes test output readable.
func (l Length) GoString() string {
	return fmt.Sprintf("css.Length(%s)", l.String())
}

// ---------------------------------------------------------------------------

// Match starts a pattern match on a length:
//
//	var px float32
//	switch m := l.Match(); m {
//	case m.Px(&px):
//	case m.IsKind(css.Auto()):
//	}
func (l Length) Match() *Matcher {
	return &Matcher{length: l}
}

// Matcher is returned by Length.Match.
type Matcher struct {
	length Length
}

// IsKind matches if the length is of the same kind as l.
func (m *Matcher) IsKind(l Length) *Matcher {
	if m.length.kind == l.kind {
		return m
	}
	return nil
}

// Px matches absolute lengths and extracts the value.
func (m *Matcher) Px(x *float32) *Matcher {
	if m.length.kind == lengthPx {
		if x != nil {
			*x = m.length.x
		}
		return m
	}
	return nil
}

// Percent matches relative lengths and extracts the percentage.
func (m *Matcher) Percent(p *float32) *Matcher {
	if m.length.kind == lengthPercent {
		if p != nil {
			*p = m.length.x
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// LengthPatterns is a set of alternatives to select from, depending on the
// kind of a length.
type LengthPatterns[T any] struct {
	Auto    T
	Px      T
	Percent T
	Default T
}

// LengthPattern creates an expression to evaluate patterns against l.
func LengthPattern[T any](l Length) *MatchExpr[T] {
	return &MatchExpr[T]{length: l}
}

// MatchExpr evaluates LengthPatterns.
type MatchExpr[T any] struct {
	length Length
}

// OneOf selects the alternative for the length's kind.
func (m *MatchExpr[T]) OneOf(patterns LengthPatterns[T]) T {
	switch m.length.kind {
	case lengthAuto:
		return patterns.Auto
	case lengthPx:
		return patterns.Px
	case lengthPercent:
		return patterns.Percent
	}
	return patterns.Default
}

// With extracts the numeric value of the length into x, for use in patterns.
func (m *MatchExpr[T]) With(x *float32) *MatchExpr[T] {
	*x = m.length.x
	return m
}

// Const is a helper to lift a constant into a pattern.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}
