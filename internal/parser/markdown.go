package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Each top-level AST
// block becomes one content block, the way the page renderer emits them.
type MarkdownParser struct{}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
	)
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := newMarkdown().Parser().Parse(text.NewReader(src))

	out := &doctree.Document{Title: trimExt(filename)}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			label := string(node.Text(src))
			id := ""
			if v, ok := node.AttributeString("id"); ok {
				if b, ok := v.([]byte); ok {
					id = string(b)
				}
			}
			if id == "" {
				id = doctree.Slugify(label)
			}
			out.Append(&doctree.Block{
				ID:    id,
				Kind:  doctree.KindHeading,
				Level: node.Level,
				Text:  label,
			})
		default:
			out.Append(&doctree.Block{
				Kind: markdownKind(n),
				Text: extractText(n, src),
			})
		}
	}

	return out, nil
}

func markdownKind(n ast.Node) doctree.BlockKind {
	switch n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return doctree.KindParagraph
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return doctree.KindCode
	case *ast.List:
		return doctree.KindList
	case *ast.Blockquote:
		return doctree.KindQuote
	case *ast.ThematicBreak:
		return doctree.KindRule
	case *extast.Table:
		return doctree.KindTable
	}
	return doctree.KindOther
}

// extractText gets the text content of a goldmark AST node.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		s := extractText(c, src)
		if s == "" {
			continue
		}
		if c.Type() == ast.TypeBlock && buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(s)
	}
	return strings.TrimSpace(buf.String())
}
