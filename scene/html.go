package scene

import (
	"io"
	"strings"

	"github.com/npillmayer/ecss/host"
	"golang.org/x/net/html"
)

// FromHTML builds a scene from an HTML document. See FromHTMLNode.
func FromHTML(r io.Reader) (*Scene, host.NodeID, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, 0, err
	}
	sc, root := FromHTMLNode(doc)
	return sc, root, nil
}

// FromHTMLNode builds a scene from a parsed HTML tree, returning the scene
// and the entity for the outermost element. Every element becomes an entity
// carrying its tag name as a marker component. The id attribute becomes the
// entity's name, the class attribute its class list. Non-blank text directly
// inside an element becomes the element's text component. An attribute
// data-interaction of "hovered" or "pressed" makes an entity interactive.
func FromHTMLNode(doc *html.Node) (*Scene, host.NodeID) {
	sc := New()
	top := doc
	if doc.Type == html.DocumentNode {
		top = firstElement(doc)
	}
	if top == nil {
		tracer().Infof("HTML document has no elements")
		return sc, 0
	}
	root := sc.spawnElement(0, top)
	tracer().Debugf("scene from HTML with %d entities", len(sc.entities))
	return sc, root
}

func (s *Scene) spawnElement(parent host.NodeID, h *html.Node) host.NodeID {
	tag := strings.ToLower(h.Data)
	opts := []Option{With(tag)}
	for _, a := range h.Attr {
		switch strings.ToLower(a.Key) {
		case "id":
			opts = append(opts, Named(a.Val))
		case "class":
			opts = append(opts, Classes(strings.Fields(a.Val)...))
		case "data-interaction":
			switch strings.ToLower(a.Val) {
			case "hovered":
				opts = append(opts, Interactive(host.Hovered))
			case "pressed":
				opts = append(opts, Interactive(host.Pressed))
			default:
				opts = append(opts, Interactive(host.None))
			}
		}
	}
	if text := directText(h); text != "" && tag != "style" && tag != "script" {
		opts = append(opts, Text(text))
	}
	n := s.Spawn(parent, opts...)
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			s.spawnElement(n, ch)
		}
	}
	return n
}

func firstElement(h *html.Node) *html.Node {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

func directText(h *html.Node) string {
	var parts []string
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.TextNode {
			if t := strings.TrimSpace(ch.Data); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}
