package css_test

import (
	"image/color"
	"testing"

	"github.com/npillmayer/ecss/css"
	"github.com/stretchr/testify/assert"
)

func TestRectMirrorsSides(t *testing.T) {
	v := css.Values{css.Dimension(15.3), css.Percentage(3)}
	r, ok := v.Rect()
	if !ok {
		t.Fatalf("expected [15.3px 3%%] to be a rect, isn't")
	}
	assert.Equal(t, css.Px(15.3), r.Top)
	assert.Equal(t, css.Percent(3), r.Right)
	assert.Equal(t, css.Px(15.3), r.Bottom)
	assert.Equal(t, css.Percent(3), r.Left)
}

func TestRectVariants(t *testing.T) {
	r, ok := css.Values{css.Ident("auto")}.Rect()
	assert.True(t, ok)
	assert.Equal(t, css.UniformRect(css.Auto()), r)

	r, ok = css.Values{css.Dimension(1), css.Dimension(2), css.Dimension(3)}.Rect()
	assert.True(t, ok)
	assert.Equal(t, css.Rect{Top: css.Px(1), Right: css.Px(2), Bottom: css.Px(3), Left: css.Px(2)}, r)

	r, ok = css.Values{css.Dimension(1), css.Ident("solid"), css.Dimension(2),
		css.Dimension(3), css.Dimension(4), css.Dimension(5)}.Rect()
	assert.True(t, ok)
	assert.Equal(t, css.Rect{Top: css.Px(1), Right: css.Px(2), Bottom: css.Px(3), Left: css.Px(4)}, r)

	_, ok = css.Values{css.Ident("none")}.Rect()
	assert.False(t, ok)
	_, ok = css.Values{}.Rect()
	assert.False(t, ok)
}

func TestScalarAccessors(t *testing.T) {
	v := css.Values{css.Hash("abc"), css.Ident(""), css.Ident("center"), css.Str("label"),
		css.Percentage(40)}
	id, ok := v.Identifier()
	assert.True(t, ok)
	assert.Equal(t, "center", id)
	s, ok := v.Text()
	assert.True(t, ok)
	assert.Equal(t, "label", s)
	x, ok := v.Float()
	assert.True(t, ok)
	assert.Equal(t, float32(40), x)
	l, ok := v.Length()
	assert.True(t, ok)
	assert.Equal(t, css.Percent(40), l)

	_, ok = css.Values{css.Str("x")}.Float()
	assert.False(t, ok)
	_, ok = css.Values{css.Number(3)}.Length()
	assert.False(t, ok, "plain numbers are not lengths")
}

func TestOptionFloat(t *testing.T) {
	m, ok := css.Values{css.Ident("bold"), css.Number(1.5)}.OptionFloat()
	if !ok {
		t.Fatalf("expected number to be found, wasn't")
	}
	if x, just := m.Get(); !just || x != 1.5 {
		t.Errorf("expected Just(1.5), is %s", m)
	}
	m, ok = css.Values{css.Ident("none")}.OptionFloat()
	if !ok {
		t.Fatalf("expected none to be accepted, wasn't")
	}
	if _, just := m.Get(); just {
		t.Errorf("expected Nothing for none, is %s", m)
	}
	if _, ok = (css.Values{css.Ident("auto")}).OptionFloat(); ok {
		t.Error("expected auto not to be an optional number, is")
	}
}

func TestColor(t *testing.T) {
	cases := []struct {
		v    css.Values
		c    color.RGBA
		okay bool
	}{
		{css.Values{css.Hash("f00")}, color.RGBA{0xff, 0, 0, 0xff}, true},
		{css.Values{css.Hash("f008")}, color.RGBA{0xff, 0, 0, 0x88}, true},
		{css.Values{css.Hash("102030")}, color.RGBA{0x10, 0x20, 0x30, 0xff}, true},
		{css.Values{css.Hash("10203040")}, color.RGBA{0x10, 0x20, 0x30, 0x40}, true},
		{css.Values{css.Ident("Red")}, color.RGBA{0xff, 0, 0, 0xff}, true},
		{css.Values{css.Ident("transparent")}, color.RGBA{}, true},
		{css.Values{css.Ident("no-such-color")}, color.RGBA{}, false},
		{css.Values{css.Hash("xyz")}, color.RGBA{}, false},
		{css.Values{css.Hash("12345")}, color.RGBA{}, false},
		{css.Values{css.Ident("red"), css.Ident("blue")}, color.RGBA{}, false},
		{css.Values{}, color.RGBA{}, false},
		{css.Values{css.Number(1)}, color.RGBA{}, false},
	}
	for i, c := range cases {
		col, ok := c.v.Color()
		if ok != c.okay || (ok && col != c.c) {
			t.Errorf("%d: expected color(%s) = %v/%v, is %v/%v", i, c.v, c.c, c.okay, col, ok)
		}
	}
}

func TestTokenString(t *testing.T) {
	v := css.Values{css.Dimension(0), css.Percentage(100), css.Number(12.9), css.Hash("f"),
		css.Ident("c"), css.Str("str")}
	assert.Equal(t, `0px 100% 12.9 #f c "str"`, v.String())
}
