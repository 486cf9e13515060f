package property

import (
	"image/color"

	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/maybe"
	"github.com/npillmayer/ecss/styling"
)

// Register adds all built-in properties to an engine, writing to the
// components provided by c.
func Register(e *styling.Engine, c Components) {
	table := builtins(c)
	for _, reg := range table {
		reg.register(e)
	}
	tracer().Debugf("registered %d built-in properties", len(table))
}

// Names returns the names of the built-in properties, in the order they
// are applied.
func Names() []string {
	table := builtins(nil)
	names := make([]string, len(table))
	for i, reg := range table {
		names[i] = reg.name
	}
	return names
}

type registration struct {
	name     string
	register func(*styling.Engine)
}

func prop[T any](name string, parse func(css.Values) (T, error), apply func(host.NodeID, T)) registration {
	return registration{
		name: name,
		register: func(e *styling.Engine) {
			styling.Register(e, styling.NewProperty(name, parse, apply))
		},
	}
}

func builtins(c Components) []registration {
	return []registration{
		// --- layout keywords ---
		prop("display", keyword("display", DisplayFlex, DisplayNone),
			onLayout(c, func(l *Layout, v Display) { l.Display = v })),
		prop("position", keyword("position", Absolute, Relative),
			onLayout(c, func(l *Layout, v PositionType) { l.Position = v })),
		prop("direction", keyword("direction", Inherit, LeftToRight, RightToLeft),
			onLayout(c, func(l *Layout, v Direction) { l.Direction = v })),
		prop("flex-direction", keyword("flex-direction", Row, Column, RowReverse, ColumnReverse),
			onLayout(c, func(l *Layout, v FlexDirection) { l.FlexDirection = v })),
		prop("flex-wrap", keyword("flex-wrap", NoWrap, Wrap, WrapReverse),
			onLayout(c, func(l *Layout, v FlexWrap) { l.FlexWrap = v })),
		prop("align-items", keyword[AlignItems]("align-items",
			FlexStart, FlexEnd, Center, Baseline, Stretch),
			onLayout(c, func(l *Layout, v AlignItems) { l.AlignItems = v })),
		prop("align-self", keyword[AlignSelf]("align-self",
			Auto, FlexStart, FlexEnd, Center, Baseline, Stretch),
			onLayout(c, func(l *Layout, v AlignSelf) { l.AlignSelf = v })),
		prop("align-content", keyword[AlignContent]("align-content",
			FlexStart, FlexEnd, Center, Stretch, SpaceBetween, SpaceAround),
			onLayout(c, func(l *Layout, v AlignContent) { l.AlignContent = v })),
		prop("justify-content", keyword[JustifyContent]("justify-content",
			FlexStart, FlexEnd, Center, SpaceBetween, SpaceAround, SpaceEvenly),
			onLayout(c, func(l *Layout, v JustifyContent) { l.JustifyContent = v })),
		prop("overflow", keyword("overflow", Visible, Hidden),
			onLayout(c, func(l *Layout, v Overflow) { l.Overflow = v })),
		// --- positions and sizes ---
		prop("left", lengthOf("left"), onLayout(c, func(l *Layout, v css.Length) { l.Left = v })),
		prop("right", lengthOf("right"), onLayout(c, func(l *Layout, v css.Length) { l.Right = v })),
		prop("top", lengthOf("top"), onLayout(c, func(l *Layout, v css.Length) { l.Top = v })),
		prop("bottom", lengthOf("bottom"), onLayout(c, func(l *Layout, v css.Length) { l.Bottom = v })),
		prop("width", lengthOf("width"), onLayout(c, func(l *Layout, v css.Length) { l.Width = v })),
		prop("height", lengthOf("height"), onLayout(c, func(l *Layout, v css.Length) { l.Height = v })),
		prop("min-width", lengthOf("min-width"), onLayout(c, func(l *Layout, v css.Length) { l.MinWidth = v })),
		prop("min-height", lengthOf("min-height"), onLayout(c, func(l *Layout, v css.Length) { l.MinHeight = v })),
		prop("max-width", lengthOf("max-width"), onLayout(c, func(l *Layout, v css.Length) { l.MaxWidth = v })),
		prop("max-height", lengthOf("max-height"), onLayout(c, func(l *Layout, v css.Length) { l.MaxHeight = v })),
		prop("flex-basis", lengthOf("flex-basis"), onLayout(c, func(l *Layout, v css.Length) { l.FlexBasis = v })),
		prop("flex-grow", accessor("flex-grow", css.Values.Float),
			onLayout(c, func(l *Layout, v float32) { l.FlexGrow = v })),
		prop("flex-shrink", accessor("flex-shrink", css.Values.Float),
			onLayout(c, func(l *Layout, v float32) { l.FlexShrink = v })),
		prop("aspect-ratio", accessor("aspect-ratio", css.Values.OptionFloat),
			onLayout(c, func(l *Layout, v maybe.Maybe[float32]) { l.AspectRatio = v })),
		// --- box edges ---
		prop("margin", accessor("margin", css.Values.Rect), onLayout(c, func(l *Layout, v css.Rect) { l.Margin = v })),
		prop("padding", accessor("padding", css.Values.Rect), onLayout(c, func(l *Layout, v css.Rect) { l.Padding = v })),
		prop("border", accessor("border", css.Values.Rect), onLayout(c, func(l *Layout, v css.Rect) { l.Border = v })),
		// --- text ---
		prop("color", accessor("color", css.Values.Color),
			onText(c, func(t *Text, v color.RGBA) { t.Color = v })),
		prop("font", accessor("font", fontName),
			onText(c, func(t *Text, v string) { t.Font = v })),
		prop("font-size", accessor("font-size", css.Values.Float),
			onText(c, func(t *Text, v float32) { t.FontSize = v })),
		prop("text-align", keyword("text-align", AlignLeft, AlignCenter, AlignRight),
			onText(c, func(t *Text, v TextAlign) { t.Align = v })),
		prop("vertical-align", keyword("vertical-align", AlignTop, AlignMiddle, AlignBottom),
			onText(c, func(t *Text, v VerticalAlign) { t.VerticalAlign = v })),
		prop("text-content", accessor("text-content", css.Values.Text),
			onText(c, func(t *Text, v string) { t.Content = v })),
		// --- paint ---
		prop("background-color", accessor("background-color", css.Values.Color),
			onPaint(c, func(p *Paint, v color.RGBA) { p.Background = v })),
		prop("border-color", accessor("border-color", css.Values.Color),
			onPaint(c, func(p *Paint, v color.RGBA) { p.Border = v })),
		prop("image", accessor("image", css.Values.Text),
			onPaint(c, func(p *Paint, v string) { p.Image = v })),
	}
}

// --- Parsing ---------------------------------------------------------------

// keyword accepts the first identifier of a declaration if it is one of
// allowed.
func keyword[K ~string](name string, allowed ...K) func(css.Values) (K, error) {
	return func(v css.Values) (K, error) {
		if id, ok := v.Identifier(); ok {
			for _, k := range allowed {
				if string(k) == id {
					return k, nil
				}
			}
		}
		return "", cssom.InvalidPropertyValueError{Name: name}
	}
}

// accessor turns a values accessor into a parse function.
func accessor[T any](name string, get func(css.Values) (T, bool)) func(css.Values) (T, error) {
	return func(v css.Values) (T, error) {
		x, ok := get(v)
		if !ok {
			var zero T
			return zero, cssom.InvalidPropertyValueError{Name: name}
		}
		return x, nil
	}
}

func lengthOf(name string) func(css.Values) (css.Length, error) {
	return accessor(name, css.Values.Length)
}

// fontName accepts a quoted font path or a bare font name.
func fontName(v css.Values) (string, bool) {
	if s, ok := v.Text(); ok {
		return s, true
	}
	return v.Identifier()
}

// --- Application -----------------------------------------------------------

func onLayout[T any](c Components, set func(*Layout, T)) func(host.NodeID, T) {
	return func(n host.NodeID, v T) {
		if l, ok := c.Layout(n); ok {
			set(l, v)
		}
	}
}

func onText[T any](c Components, set func(*Text, T)) func(host.NodeID, T) {
	return func(n host.NodeID, v T) {
		if t, ok := c.Text(n); ok {
			set(t, v)
		}
	}
}

func onPaint[T any](c Components, set func(*Paint, T)) func(host.NodeID, T) {
	return func(n host.NodeID, v T) {
		if p, ok := c.Paint(n); ok {
			set(p, v)
		}
	}
}
