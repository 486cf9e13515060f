package styling_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/npillmayer/ecss/asset"
	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/matching"
	"github.com/npillmayer/ecss/property"
	"github.com/npillmayer/ecss/scene"
	"github.com/npillmayer/ecss/styling"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	sc     *scene.Scene
	store  *asset.Store
	engine *styling.Engine
}

func newEnv(opts ...styling.Option) *env {
	reg := matching.NewRegistry()
	reg.RegisterComponents("window", "button", "text", host.NodeMarker)
	x := &env{sc: scene.New(), store: asset.NewStore()}
	opts = append([]styling.Option{styling.WithRegistry(reg), styling.WithStore(x.store)}, opts...)
	x.engine = styling.New(x.sc, opts...)
	return x
}

// frame advances the scene to a new tick, then runs mutate and a tick of
// the engine.
func (x *env) frame(mutate func()) {
	x.sc.Advance()
	if mutate != nil {
		mutate()
	}
	x.engine.Tick()
}

func (x *env) width(n host.NodeID) css.Length {
	l, _ := x.sc.LayoutOf(n)
	return l.Width
}

func TestWindowWidthIsOverriddenByClass(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	property.Register(x.engine, x.sc)
	window := x.sc.Spawn(0, scene.With("window"), scene.Classes("red"))
	h := x.store.Set("ui.css", `.red { width: 50px; } window { width: 100px; }`)
	x.engine.Attach(window, h)
	x.frame(nil)
	assert.Equal(t, css.Px(50), x.width(window))
	state, ok := x.engine.State(window)
	require.True(t, ok)
	assert.Equal(t, styling.Watched, state)
}

func TestIdOverridesClassRegardlessOfSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	property.Register(x.engine, x.sc)
	root := x.sc.Spawn(0, scene.With("window"))
	n := x.sc.Spawn(root, scene.Named("x"), scene.Classes("c"))
	m := x.sc.Spawn(root, scene.Classes("c"))
	x.engine.Attach(root, x.store.Set("ui.css", `#x { width: 100px } .c { width: 10px }`))
	x.frame(nil)
	assert.Equal(t, css.Px(100), x.width(n), "#x must win over .c")
	assert.Equal(t, css.Px(10), x.width(m))
}

func TestEqualWeightsApplyInSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	property.Register(x.engine, x.sc)
	root := x.sc.Spawn(0)
	n := x.sc.Spawn(root, scene.Classes("a", "b"))
	m := x.sc.Spawn(root, scene.Classes("a", "b"))
	h := x.store.Set("ui.css", `.a { width: 1px } .b { width: 2px } .b.a:hover { width: 3px }`)
	x.engine.Attach(root, h)
	x.frame(nil)
	assert.Equal(t, css.Px(2), x.width(n))
	x.store.Set("ui.css", `.b { width: 2px } .a { width: 1px }`)
	x.frame(func() { x.sc.SetInteraction(m, host.Hovered) })
	assert.Equal(t, css.Px(1), x.width(n))
	assert.Equal(t, css.Px(1), x.width(m), "hover rule has been removed from sheet")
}

func TestParsesOncePerContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	parsed, applied := 0, 0
	cache := styling.Register(x.engine, styling.NewProperty("width",
		func(v css.Values) (css.Length, error) {
			parsed++
			l, _ := v.Length()
			return l, nil
		},
		func(n host.NodeID, l css.Length) {
			applied++
		}))
	root := x.sc.Spawn(0, scene.With("window"))
	x.sc.Spawn(root, scene.With("button"))
	x.sc.Spawn(root, scene.With("button"))
	text := `button { width: 10px }`
	h := x.store.Set("a.css", text)
	x.engine.Attach(root, h)
	for i := 0; i < 5; i++ {
		x.frame(func() { x.engine.Refresh(root) })
	}
	assert.Equal(t, 1, parsed, "value must be parsed once")
	assert.Equal(t, 10, applied, "value must be applied to 2 nodes on each of 5 ticks")
	assert.Equal(t, 1, cache.Len())
	// another asset with identical content shares the cache entry
	h2 := x.store.Set("b.css", text)
	x.engine.Attach(root, h2)
	x.frame(nil)
	assert.Equal(t, 1, parsed, "identical content must hit the cache")
}

func TestParseErrorsAreCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	parsed, applied := 0, 0
	styling.Register(x.engine, styling.NewProperty("width",
		func(v css.Values) (css.Length, error) {
			parsed++
			return css.Undefined(), errors.New("no")
		},
		func(n host.NodeID, l css.Length) {
			applied++
		}))
	root := x.sc.Spawn(0, scene.With("window"))
	x.engine.Attach(root, x.store.Set("a.css", `window { width: bogus }`))
	for i := 0; i < 3; i++ {
		x.frame(func() { x.engine.Refresh(root) })
	}
	assert.Equal(t, 1, parsed)
	assert.Equal(t, 0, applied)
}

func TestUnchangedSceneIsNotRestyled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	applied := 0
	styling.Register(x.engine, styling.NewProperty("width",
		func(v css.Values) (css.Length, error) {
			l, _ := v.Length()
			return l, nil
		},
		func(n host.NodeID, l css.Length) {
			applied++
			if lay, ok := x.sc.Layout(n); ok {
				lay.Width = l
			}
		}))
	root := x.sc.Spawn(0, scene.With("window"))
	n := x.sc.Spawn(root)
	x.engine.Attach(root, x.store.Set("a.css", `.red { width: 50px }`))
	x.frame(nil)
	assert.Equal(t, 0, applied)
	assert.Equal(t, css.Undefined(), x.width(n))

	x.frame(func() { x.sc.AddClass(n, "red") })
	assert.Equal(t, 1, applied, "class change must trigger re-matching")
	assert.Equal(t, css.Px(50), x.width(n))

	x.frame(nil)
	x.frame(nil)
	assert.Equal(t, 1, applied, "unchanged scene must not be re-styled")

	x.frame(func() { x.sc.Spawn(n, scene.Classes("red")) })
	assert.Equal(t, 3, applied, "new child must trigger re-matching")
}

func TestMutationAfterTickIsNoticed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	property.Register(x.engine, x.sc)
	root := x.sc.Spawn(0, scene.With("window"))
	n := x.sc.Spawn(root)
	x.engine.Attach(root, x.store.Set("a.css", `.red { width: 50px } #big { width: 70px }`))
	x.frame(nil)
	assert.Equal(t, css.Undefined(), x.width(n))
	// input handling after styling, within the same frame
	x.sc.AddClass(n, "red")
	x.frame(nil)
	assert.Equal(t, css.Px(50), x.width(n), "class change after Tick must be styled on the next frame")
	// the host does not advance at all
	x.sc.SetName(n, "big")
	x.engine.Tick()
	assert.Equal(t, css.Px(70), x.width(n), "name change after Tick must be styled on the next Tick")
	x.engine.Tick()
	state, _ := x.engine.State(root)
	assert.Equal(t, styling.Watched, state, "property writes must not re-trigger matching")
}

func TestOwnerStates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	root := x.sc.Spawn(0)
	_, ok := x.engine.State(root)
	assert.False(t, ok, "not an owner yet")

	h := x.store.Set("a.css", `* { width: 1px }`)
	x.engine.Attach(root, h)
	state, _ := x.engine.State(root)
	assert.Equal(t, styling.Dirty, state)
	x.frame(nil)
	state, _ = x.engine.State(root)
	assert.Equal(t, styling.Watched, state)

	x.engine.Refresh(root)
	state, _ = x.engine.State(root)
	assert.Equal(t, styling.Dirty, state)

	x.store.Remove(h)
	x.frame(nil)
	state, _ = x.engine.State(root)
	assert.Equal(t, styling.Idle, state, "owner without loaded sheets is idle")

	x.engine.Detach(root)
	_, ok = x.engine.State(root)
	assert.False(t, ok)
}

func TestHotReloadAndThemeSwitch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	property.Register(x.engine, x.sc)
	root := x.sc.Spawn(0, scene.With("window"))
	btn := x.sc.Spawn(root, scene.With("button"), scene.Text("OK"))
	light := x.store.Set("light.css", `button { background-color: white; color: black }`)
	dark := x.store.Set("dark.css", `button { background-color: black; color: white }`)
	x.engine.Attach(root, light)
	x.frame(nil)
	paint, _ := x.sc.PaintOf(btn)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, paint.Background)

	x.store.Set("light.css", `button { background-color: #ff0000 }`)
	x.frame(nil)
	paint, _ = x.sc.PaintOf(btn)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, paint.Background, "modified sheet must be re-applied")

	x.engine.Attach(root, dark)
	x.frame(nil)
	paint, _ = x.sc.PaintOf(btn)
	text, _ := x.sc.TextOf(btn)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, paint.Background)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, text.Color)
	assert.Equal(t, "OK", text.Content)
}

func TestHoverRestyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	x := newEnv()
	property.Register(x.engine, x.sc)
	root := x.sc.Spawn(0, scene.With("window"))
	btn := x.sc.Spawn(root, scene.With("button"), scene.Interactive(host.None))
	x.engine.Attach(root, x.store.Set("a.css", `
		button { width: 10px }
		button:hover { width: 20px }
	`))
	x.frame(nil)
	assert.Equal(t, css.Px(10), x.width(btn))
	x.frame(func() { x.sc.SetInteraction(btn, host.Hovered) })
	assert.Equal(t, css.Px(20), x.width(btn))
	// leaving hover re-applies the remaining rule
	x.frame(func() { x.sc.SetInteraction(btn, host.None) })
	assert.Equal(t, css.Px(10), x.width(btn))
}

func TestGating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ecss.styling")
	defer teardown()
	//
	for _, gate := range []bool{true, false} {
		x := newEnv(styling.GateOnDeclared(gate))
		applied := 0
		styling.Register(x.engine, styling.NewProperty("height",
			func(v css.Values) (float32, error) { return 0, nil },
			func(host.NodeID, float32) { applied++ }))
		root := x.sc.Spawn(0, scene.With("window"))
		x.engine.Attach(root, x.store.Set("a.css", `window { width: 1px }`))
		x.frame(nil)
		assert.Equal(t, 0, applied, "undeclared property is never applied")
	}
}
