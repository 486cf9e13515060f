/*
Package scenedbg implements helpers to debug a styled scene.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package scenedbg

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/host"
	"github.com/npillmayer/ecss/scene"
	tp "github.com/xlab/treeprint"
)

// Style groups which may be included in diagrams and dumps.
const (
	Layout = "layout"
	Box    = "box"
	Paint  = "paint"
	Text   = "text"
)

var defaultGroups = []string{Layout, Box, Paint, Text}

// KeyValue is a style property as shown in diagrams.
type KeyValue struct {
	Key, Value string
}

// StyleGroup is a named list of style properties of a node.
type StyleGroup struct {
	Name       string
	Properties []KeyValue
}

// Styles collects the style properties of a node for a group. Undefined
// values are left out. The flag is false if the node has no component for
// the group.
func Styles(sc *scene.Scene, n host.NodeID, group string) (StyleGroup, bool) {
	g := StyleGroup{Name: group}
	add := func(key string, value string) {
		if value != "" && value != css.Undefined().String() {
			g.Properties = append(g.Properties, KeyValue{key, value})
		}
	}
	switch group {
	case Layout:
		l, ok := sc.LayoutOf(n)
		if !ok {
			return g, false
		}
		add("display", string(l.Display))
		add("position", string(l.Position))
		add("flex-direction", string(l.FlexDirection))
		add("justify-content", string(l.JustifyContent))
		add("align-items", string(l.AlignItems))
		add("width", l.Width.String())
		add("height", l.Height.String())
		if r, ok := l.AspectRatio.Get(); ok {
			add("aspect-ratio", fmt.Sprintf("%g", r))
		}
	case Box:
		l, ok := sc.LayoutOf(n)
		if !ok {
			return g, false
		}
		for _, r := range []struct {
			key  string
			rect css.Rect
		}{{"margin", l.Margin}, {"padding", l.Padding}, {"border", l.Border}} {
			if r.rect != (css.Rect{}) {
				add(r.key, r.rect.String())
			}
		}
	case Paint:
		p, ok := sc.PaintOf(n)
		if !ok {
			return g, false
		}
		add("background-color", colorString(p.Background))
		add("border-color", colorString(p.Border))
		add("image", p.Image)
	case Text:
		t, ok := sc.TextOf(n)
		if !ok {
			return g, false
		}
		add("text-content", t.Content)
		add("color", colorString(t.Color))
		add("font", t.Font)
		if t.FontSize != 0 {
			add("font-size", fmt.Sprintf("%g", t.FontSize))
		}
	default:
		return g, false
	}
	return g, true
}

func colorString(c color.RGBA) string {
	if c == (color.RGBA{}) {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Dump renders the subtree at root as a text tree, including the given
// style groups (all groups if none are given).
func Dump(sc *scene.Scene, root host.NodeID, groups ...string) string {
	if len(groups) == 0 {
		groups = defaultGroups
	}
	t := tp.New()
	t.SetValue(sc.Label(root))
	dumpNode(sc, root, t, groups)
	return t.String()
}

func dumpNode(sc *scene.Scene, n host.NodeID, branch tp.Tree, groups []string) {
	for _, group := range groups {
		if g, ok := Styles(sc, n, group); ok && len(g.Properties) > 0 {
			props := make([]string, len(g.Properties))
			for i, kv := range g.Properties {
				props[i] = kv.Key + ": " + kv.Value
			}
			branch.AddMetaNode(group, strings.Join(props, "; "))
		}
	}
	for _, ch := range sc.Children(n) {
		dumpNode(sc, ch, branch.AddBranch(sc.Label(ch)), groups)
	}
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
}

// ToGraphViz outputs a diagram for the subtree at root. The diagram is in
// GraphViz (DOT) format. The diagram will include all styles belonging to
// one of the style groups; if styleGroups is nil, all groups are included.
func ToGraphViz(sc *scene.Scene, root host.NodeID, w io.Writer, styleGroups []string) error {
	tmpl, err := template.New("scene").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{Fontname: "Helvetica", StyleGroups: styleGroups}
	if styleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	gparams.NodeTmpl = template.Must(template.New("node").Parse(nodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	if err = tmpl.Execute(w, gparams); err != nil {
		return err
	}
	if err = nodes(sc, root, w, &gparams); err != nil {
		return err
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dotty is a helper for testing. Given a scene and a testing.T, it will
// create a GraphViz image of the subtree at root and write it to a file in
// the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
func Dotty(sc *scene.Scene, root host.NodeID, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "scene.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing scene digraph to %s\n", tmpfile.Name())
	if err = ToGraphViz(sc, root, tmpfile, nil); err != nil {
		t.Error(err)
		return
	}
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	Name  string
	Label string
}

type pgedge struct {
	Name  string
	Group string
}

func nodeName(n host.NodeID) string {
	return fmt.Sprintf("node%05d", uint64(n))
}

func nodes(sc *scene.Scene, n host.NodeID, w io.Writer, gparams *graphParamsType) error {
	if err := gparams.NodeTmpl.Execute(w, node{nodeName(n), sc.Label(n)}); err != nil {
		return err
	}
	for _, group := range gparams.StyleGroups {
		g, ok := Styles(sc, n, group)
		if !ok || len(g.Properties) == 0 {
			continue
		}
		pg := struct {
			ID string
			StyleGroup
		}{nodeName(n) + "_" + group, g}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		if err := gparams.PgedgeTmpl.Execute(w, pgedge{nodeName(n), pg.ID}); err != nil {
			return err
		}
	}
	for _, ch := range sc.Children(n) {
		if err := nodes(sc, ch, w, gparams); err != nil {
			return err
		}
		e := []node{{Name: nodeName(n)}, {Name: nodeName(ch)}}
		if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const nodeTmpl = `{{ .Name }}	[ label={{ printf "%q" .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
`

const styleGroupTmpl = `{{ .ID }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value | html }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const edgeTmpl = `{{ (index . 0).Name }} -> {{ (index . 1).Name }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ .Group }} [dir=none weight=1 style="dashed"] ;
`
