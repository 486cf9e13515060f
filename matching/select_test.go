package matching_test

import (
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/ecss/cssom"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/matching"
	"github.com/npillmayer/ecss/scene"
	"github.com/npillmayer/ecss/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// fixture builds
//
//	window#root
//	├── div.panel                 (a)
//	│   ├── button#ok.primary     (b, hovered)
//	│   └── text.label            (c)
//	└── div.panel.dark            (d)
//	    └── div                   (e)
//	        └── button.primary    (f)
type fixture struct {
	sc                     *scene.Scene
	reg                    *matching.Registry
	root, a, b, c, d, e, f host.NodeID
}

func newFixture() *fixture {
	x := &fixture{sc: scene.New(), reg: matching.NewRegistry()}
	x.reg.RegisterComponents("window", "div", "button", "text")
	sc := x.sc
	x.root = sc.Spawn(0, scene.With("window"), scene.Named("root"))
	x.a = sc.Spawn(x.root, scene.With("div"), scene.Classes("panel"))
	x.b = sc.Spawn(x.a, scene.With("button"), scene.Named("ok"), scene.Classes("primary"),
		scene.Interactive(host.Hovered))
	x.c = sc.Spawn(x.a, scene.Text("Hello"), scene.Classes("label"))
	x.d = sc.Spawn(x.root, scene.With("div"), scene.Classes("panel", "dark"))
	x.e = sc.Spawn(x.d, scene.With("div"))
	x.f = sc.Spawn(x.e, scene.With("button"), scene.Classes("primary"))
	return x
}

func parseSelector(t *testing.T, s string) selector.Selector {
	rules := cssom.Parse(s + " {}")
	require.Len(t, rules, 1, "cannot parse selector %q", s)
	return rules[0].Selector
}

func (x *fixture) selectFrom(t *testing.T, root host.NodeID, s string) []host.NodeID {
	return matching.SelectEntities(x.sc, x.reg, root, parseSelector(t, s), nil)
}

func TestSelectSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	x := newFixture()
	ids := func(n ...host.NodeID) []host.NodeID { return n }
	cases := []struct {
		sel    string
		expect []host.NodeID
	}{
		{".panel", ids(x.a, x.d)},
		{"#ok", ids(x.b)},
		{"button", ids(x.b, x.f)},
		{"div.panel.dark", ids(x.d)},
		{"text.label", ids(x.c)},
		{"#root", ids(x.root)},
		{"*", ids(x.root, x.a, x.b, x.c, x.d, x.e, x.f)},
		{"button:hover", ids(x.b)},
		{"button:active", nil},
		{"button:focus", ids(x.b, x.f)},
		{"slider", nil},
		{".missing", nil},
	}
	for _, c := range cases {
		got := x.selectFrom(t, x.root, c.sel)
		if len(c.expect) == 0 {
			assert.Empty(t, got, c.sel)
			continue
		}
		assert.Equal(t, c.expect, got, c.sel)
	}
}

func TestSelectDescendants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	x := newFixture()
	assert.Equal(t, []host.NodeID{x.b, x.f}, x.selectFrom(t, x.root, "#root .primary"))
	assert.Equal(t, []host.NodeID{x.f}, x.selectFrom(t, x.root, ".dark .primary"))
	assert.Equal(t, []host.NodeID{x.f}, x.selectFrom(t, x.root, ".dark button"))
	assert.Equal(t, []host.NodeID{x.e}, x.selectFrom(t, x.root, "div div"))
	assert.Equal(t, []host.NodeID{x.f}, x.selectFrom(t, x.root, "window div div button"))
	assert.Equal(t, []host.NodeID{x.a, x.b, x.c, x.d, x.e, x.f}, x.selectFrom(t, x.root, "* *"))
}

func TestSelectDescendantsAreStrict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	x := newFixture()
	// a node matching both segments does not match as its own descendant
	assert.Empty(t, x.selectFrom(t, x.root, "#ok #ok"))
	assert.Empty(t, x.selectFrom(t, x.root, ".panel .panel"))
	assert.Empty(t, x.selectFrom(t, x.root, "button button"))
}

func TestSelectRootIsCandidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	x := newFixture()
	assert.Equal(t, []host.NodeID{x.a}, x.selectFrom(t, x.a, ".panel"))
	assert.Equal(t, []host.NodeID{x.b}, x.selectFrom(t, x.a, ".panel .primary"))
	// nodes outside the subtree are never candidates
	assert.Empty(t, x.selectFrom(t, x.e, ".dark"))
	assert.Empty(t, x.selectFrom(t, x.e, ".dark button"))
}

func TestSelectIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	x := newFixture()
	for _, s := range []string{".panel", "#root .primary", "* *", "div div", "button:hover"} {
		sel := parseSelector(t, s)
		first := matching.SelectEntities(x.sc, x.reg, x.root, sel, matching.NewTracked())
		second := matching.SelectEntities(x.sc, x.reg, x.root, sel, matching.NewTracked())
		assert.Equal(t, first, second, s)
	}
}

func TestSelectEmptySelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	x := newFixture()
	tracked := matching.NewTracked()
	assert.Empty(t, matching.SelectEntities(x.sc, x.reg, x.root, selector.New(), tracked))
	assert.Equal(t, 0, tracked.Len())
}

// --- Oracle ----------------------------------------------------------------

const oracleDoc = `
<div id="app" class="root">
  <section id="s1" class="panel">
    <p id="p1" class="text big">one</p>
    <button id="b1" class="btn primary">ok</button>
  </section>
  <section id="s2" class="panel dark">
    <div id="d1"><span id="sp1" class="text">two</span>
      <div id="d2" class="panel"><button id="b2" class="btn">x</button></div>
    </div>
  </section>
</div>`

func TestSelectAgainstCascadia(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.matching")
	defer teardown()
	//
	doc, err := html.Parse(strings.NewReader(oracleDoc))
	require.NoError(t, err)
	sc, root := scene.FromHTMLNode(doc)
	reg := matching.NewRegistry()
	reg.RegisterComponents("html", "head", "body", "div", "section", "p", "span", "button")
	var top *html.Node
	for top = doc.FirstChild; top != nil && top.Type != html.ElementNode; top = top.NextSibling {
	}
	require.NotNil(t, top)
	htmlLabel := func(n *html.Node) string {
		for _, a := range n.Attr {
			if a.Key == "id" {
				return a.Val
			}
		}
		return "<" + n.Data + ">"
	}
	sceneLabel := func(n host.NodeID) string {
		if name, ok := sc.Name(n); ok {
			return name
		}
		comps := sc.Components(n)
		for _, tag := range []string{"html", "head", "body"} {
			for _, c := range comps {
				if c == tag {
					return "<" + tag + ">"
				}
			}
		}
		return "?"
	}
	selectors := []string{
		"div", ".panel", "section .text", ".panel .panel", "div div", "#app button",
		".dark .btn", "div span.text", "*", "* .panel", "section.panel.dark div",
		"#s1 .btn.primary", "body div section", "html .big", "p#p1", ".panel div .btn",
		"section", "body *", "#s2 #d1 #d2 #b2", ".root .root",
	}
	for _, s := range selectors {
		var expected, got []string
		for _, n := range cascadia.MustCompile(s).MatchAll(top) {
			expected = append(expected, htmlLabel(n))
		}
		for _, n := range matching.SelectEntities(sc, reg, root, parseSelector(t, s), nil) {
			got = append(got, sceneLabel(n))
		}
		assert.Equal(t, expected, got, "selector %q", s)
	}
}
