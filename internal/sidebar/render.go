package sidebar

import (
	"bytes"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// State is the per-entry output applied by the client: class toggles, the
// child list extent, and the entry's offset in the panel.
type State struct {
	ID          string  `json:"id"`
	Depth       int     `json:"depth"`
	Collapsible bool    `json:"collapsible"`
	Collapsed   bool    `json:"collapsed"`
	Current     bool    `json:"current"`
	Extent      float64 `json:"extent"`
	OffsetTop   float64 `json:"offset_top"`
}

// States lists every entry's state in document order.
func (t *Tree) States() []State {
	pos, _ := t.layout()
	origin := t.metrics.ProfileHeight + t.metrics.Gap
	var out []State
	t.Walk(func(n *Node, depth int) {
		out = append(out, State{
			ID:          n.ID,
			Depth:       depth,
			Collapsible: n.Collapsible(),
			Collapsed:   n.Collapsed,
			Current:     n.Current,
			Extent:      n.Extent,
			OffsetTop:   origin + pos[n].row,
		})
	})
	return out
}

// Classes returns the class list for an entry's <li>.
func Classes(n *Node) string {
	var b []byte
	add := func(c string) {
		if len(b) > 0 {
			b = append(b, ' ')
		}
		b = append(b, c...)
	}
	if n.Collapsible() {
		add("collapsible")
		if n.Collapsed {
			add("close")
		}
	}
	if n.Current {
		add("current")
	}
	return string(b)
}

// RenderHTML renders the tree as nested lists. Child lists carry their
// extent as an inline max-block-size so collapse and expand can animate.
// The root list is padded at the end by the fade band.
func (t *Tree) RenderHTML() (string, error) {
	root := &html.Node{Type: html.ElementNode, DataAtom: atom.Ul, Data: "ul",
		Attr: []html.Attribute{
			{Key: "class", Val: "sidebar-nav"},
			{Key: "style", Val: "padding-block-end: " + formatPx(t.metrics.FadeHeight)},
		}}
	appendEntries(root, t.Roots)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func appendEntries(list *html.Node, nodes []*Node) {
	for _, n := range nodes {
		li := &html.Node{Type: html.ElementNode, DataAtom: atom.Li, Data: "li"}
		li.Attr = append(li.Attr, html.Attribute{Key: "data-id", Val: n.ID})
		if c := Classes(n); c != "" {
			li.Attr = append(li.Attr, html.Attribute{Key: "class", Val: c})
		}

		var label *html.Node
		if n.Href != "" {
			label = &html.Node{Type: html.ElementNode, DataAtom: atom.A, Data: "a",
				Attr: []html.Attribute{{Key: "href", Val: n.Href}, {Key: "title", Val: n.Label}}}
		} else {
			label = &html.Node{Type: html.ElementNode, DataAtom: atom.P, Data: "p"}
		}
		label.AppendChild(&html.Node{Type: html.TextNode, Data: n.Label})
		li.AppendChild(label)

		if n.Collapsible() {
			sub := &html.Node{Type: html.ElementNode, DataAtom: atom.Ul, Data: "ul",
				Attr: []html.Attribute{{Key: "style", Val: "max-block-size: " + formatPx(n.Extent)}}}
			appendEntries(sub, n.Children)
			li.AppendChild(sub)
		}
		list.AppendChild(li)
	}
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
