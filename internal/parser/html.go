package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles rendered HTML pages. The direct element children of
// the content root are the blocks.
type HTMLParser struct {
	RootClass string
}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := &doctree.Document{Title: trimExt(filename)}
	if title := findTitle(doc); title != "" {
		out.Title = title
	}

	root := findByClass(doc, p.RootClass)
	if root == nil {
		root = findBody(doc)
	}
	if root == nil {
		return out, nil
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "script", "style", "template":
			continue
		}

		if level := headingLevel(c.Data); level > 0 {
			label := headingLabel(c)
			id := headingID(c)
			if id == "" {
				id = doctree.Slugify(label)
			}
			out.Append(&doctree.Block{
				ID:    id,
				Kind:  doctree.KindHeading,
				Level: level,
				Text:  label,
			})
			continue
		}

		out.Append(&doctree.Block{
			ID:   attr(c, "id"),
			Kind: htmlKind(c.Data),
			Text: textContent(c),
		})
	}

	return out, nil
}

func htmlKind(tag string) doctree.BlockKind {
	switch tag {
	case "p":
		return doctree.KindParagraph
	case "pre":
		return doctree.KindCode
	case "ul", "ol", "dl":
		return doctree.KindList
	case "table":
		return doctree.KindTable
	case "blockquote":
		return doctree.KindQuote
	case "hr":
		return doctree.KindRule
	}
	return doctree.KindOther
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// headingID prefers the element id, then the data-id of an inner anchor.
func headingID(n *html.Node) string {
	if id := attr(n, "id"); id != "" {
		return id
	}
	if a := findTag(n, "a"); a != nil {
		return attr(a, "data-id")
	}
	return ""
}

// headingLabel prefers the inner <span> text that docsify wraps labels in.
func headingLabel(n *html.Node) string {
	if span := findTag(n, "span"); span != nil {
		if t := textContent(span); t != "" {
			return t
		}
	}
	return textContent(n)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if t := findTag(n, "title"); t != nil {
		return textContent(t)
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	return findTag(n, "body")
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findTag(c, tag); f != nil {
			return f
		}
	}
	return nil
}

func findByClass(n *html.Node, class string) *html.Node {
	if class == "" {
		return nil
	}
	if n.Type == html.ElementNode && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := findByClass(c, class); f != nil {
			return f
		}
	}
	return nil
}
