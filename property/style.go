/*
Package property implements the built-in style properties.

Every property interprets the values of a declaration and writes the
result into a style component of a node. The components are provided by
the host through the Components interface.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package property

import (
	"image/color"

	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/maybe"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ecss.property'.
func tracer() tracing.Trace {
	return tracing.Select("ecss.property")
}

// Components gives properties access to the style components of nodes.
// The flag is false if a node does not carry the component, in which
// case the property is not applied to the node.
type Components interface {
	Layout(host.NodeID) (*Layout, bool)
	Text(host.NodeID) (*Text, bool)
	Paint(host.NodeID) (*Paint, bool)
}

// Keyword types of enumerated properties.
type (
	Display        string
	PositionType   string
	Direction      string
	FlexDirection  string
	FlexWrap       string
	AlignItems     string
	AlignSelf      string
	AlignContent   string
	JustifyContent string
	Overflow       string
	TextAlign      string
	VerticalAlign  string
)

// Keywords of enumerated properties.
const (
	DisplayFlex Display = "flex"
	DisplayNone Display = "none"

	Absolute PositionType = "absolute"
	Relative PositionType = "relative"

	Inherit     Direction = "inherit"
	LeftToRight Direction = "left-to-right"
	RightToLeft Direction = "right-to-left"

	Row           FlexDirection = "row"
	Column        FlexDirection = "column"
	RowReverse    FlexDirection = "row-reverse"
	ColumnReverse FlexDirection = "column-reverse"

	NoWrap      FlexWrap = "no-wrap"
	Wrap        FlexWrap = "wrap"
	WrapReverse FlexWrap = "wrap-reverse"

	Visible Overflow = "visible"
	Hidden  Overflow = "hidden"

	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"

	AlignTop    VerticalAlign = "top"
	AlignMiddle VerticalAlign = "center"
	AlignBottom VerticalAlign = "bottom"
)

// Alignment keywords shared by the align-* and justify-content properties.
const (
	FlexStart    = "flex-start"
	FlexEnd      = "flex-end"
	Center       = "center"
	Baseline     = "baseline"
	Stretch      = "stretch"
	Auto         = "auto"
	SpaceBetween = "space-between"
	SpaceAround  = "space-around"
	SpaceEvenly  = "space-evenly"
)

// Layout is the box layout component of a node.
type Layout struct {
	Display        Display
	Position       PositionType
	Direction      Direction
	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	AlignItems     AlignItems
	AlignSelf      AlignSelf
	AlignContent   AlignContent
	JustifyContent JustifyContent
	Overflow       Overflow

	Left, Right, Top, Bottom css.Length
	Width, Height            css.Length
	MinWidth, MinHeight      css.Length
	MaxWidth, MaxHeight      css.Length
	FlexBasis                css.Length
	FlexGrow, FlexShrink     float32
	AspectRatio              maybe.Maybe[float32]

	Margin, Padding, Border css.Rect
}

// DefaultLayout returns a layout with every length undefined, flex
// display and row direction.
func DefaultLayout() Layout {
	return Layout{
		Display:       DisplayFlex,
		Position:      Relative,
		Direction:     Inherit,
		FlexDirection: Row,
		FlexWrap:      NoWrap,
		Overflow:      Visible,
		FlexShrink:    1,
		AspectRatio:   maybe.Nothing[float32](),
	}
}

// Text is the text component of a node.
type Text struct {
	Content       string
	Font          string
	FontSize      float32
	Color         color.RGBA
	Align         TextAlign
	VerticalAlign VerticalAlign
}

// Paint is the visual decoration of a node.
type Paint struct {
	Background color.RGBA
	Border     color.RGBA
	Image      string
}
