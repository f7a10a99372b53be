package outline

import (
	"bytes"
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Entry is the JSON view of a node.
type Entry struct {
	ID       string  `json:"id"`
	Level    int     `json:"level"`
	Label    string  `json:"label"`
	Active   bool    `json:"active,omitempty"`
	Children []Entry `json:"children"`
}

// Entries converts a forest into its JSON view.
func Entries(roots []*Node) []Entry {
	out := make([]Entry, 0, len(roots))
	for _, n := range roots {
		out = append(out, Entry{
			ID:       n.ID(),
			Level:    n.Level(),
			Label:    n.Heading.Label,
			Active:   n.Active(),
			Children: Entries(n.Children),
		})
	}
	return out
}

// RenderHTML renders the forest as the nested list inserted into the TOC
// panel. Entry links point at pagePath with the heading id as the "id"
// query parameter. Nested lists are wrapped in a div.ul-wrapper so the
// panel can animate them.
func RenderHTML(roots []*Node, pagePath string) (string, error) {
	list := element(atom.Ul, "toc")
	appendItems(list, roots, pagePath)

	var buf bytes.Buffer
	if err := html.Render(&buf, list); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func appendItems(list *html.Node, nodes []*Node, pagePath string) {
	for _, n := range nodes {
		li := element(atom.Li, "")
		if n.Active() {
			setAttr(li, "class", "active")
		}

		a := element(atom.A, "")
		setAttr(a, "href", entryHref(pagePath, n.ID()))
		setAttr(a, "data-id", n.ID())
		setAttr(a, "title", n.Heading.Label)
		span := element(atom.Span, "")
		span.AppendChild(&html.Node{Type: html.TextNode, Data: n.Heading.Label})
		a.AppendChild(span)
		li.AppendChild(a)

		if len(n.Children) > 0 {
			wrapper := element(atom.Div, "ul-wrapper")
			sub := element(atom.Ul, "")
			appendItems(sub, n.Children, pagePath)
			wrapper.AppendChild(sub)
			li.AppendChild(wrapper)
		}
		list.AppendChild(li)
	}
}

func entryHref(pagePath, id string) string {
	return "#" + pagePath + "?id=" + url.QueryEscape(id)
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		setAttr(n, "class", class)
	}
	return n
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
