package sidebar

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// ParseMarkdown reads a docsify-style _sidebar.md: nested bullet lists whose
// items are either links (pages) or plain text (section titles).
func ParseMarkdown(r io.Reader) ([]*Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var roots []*Node
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if list, ok := n.(*ast.List); ok {
			roots = append(roots, listItems(list, src)...)
		}
	}
	return roots, nil
}

func listItems(list *ast.List, src []byte) []*Node {
	var out []*Node
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if _, ok := item.(*ast.ListItem); !ok {
			continue
		}
		node := &Node{}
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch block := c.(type) {
			case *ast.List:
				node.Children = append(node.Children, listItems(block, src)...)
			case *ast.TextBlock, *ast.Paragraph:
				if node.Label != "" {
					continue
				}
				if link := firstLink(block); link != nil {
					node.Label = inlineText(link, src)
					node.Href = string(link.Destination)
				} else {
					node.Label = inlineText(block, src)
				}
			}
		}
		if node.Label == "" && len(node.Children) == 0 {
			continue
		}
		out = append(out, node)
	}
	return out
}

func firstLink(n ast.Node) *ast.Link {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if link, ok := c.(*ast.Link); ok {
			return link
		}
		if link := firstLink(c); link != nil {
			return link
		}
	}
	return nil
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

// ParseYAML reads a sidebar manifest:
//
//	- title: Notes
//	  children:
//	    - title: Intro
//	      href: notes/intro.md
func ParseYAML(r io.Reader) ([]*Node, error) {
	var roots []*Node
	if err := yaml.NewDecoder(r).Decode(&roots); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode sidebar yaml: %w", err)
	}
	return roots, nil
}

// DirOptions filter the pages picked up by FromDir.
type DirOptions struct {
	Include []string // doublestar patterns; empty means "**/*.md"
	Exclude []string // doublestar patterns, matched against path and base name
}

// FromDir builds a sidebar from the markdown files under root. Directories
// become section entries; files become page entries titled by their first
// heading. Directories sort before files, then alphabetically.
func FromDir(fsys fs.FS, opts DirOptions) ([]*Node, error) {
	include := opts.Include
	if len(include) == 0 {
		include = []string{"**/*.md"}
	}

	var pages []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == "." {
			return nil
		}
		if matchesAny(p, include) && !matchesAny(p, opts.Exclude) {
			pages = append(pages, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk docs: %w", err)
	}

	root := &Node{}
	dirs := map[string]*Node{"": root}
	for _, p := range pages {
		parent := dirNode(dirs, path.Dir(p))
		parent.Children = append(parent.Children, &Node{
			Label: pageTitle(fsys, p),
			Href:  p,
		})
	}
	sortEntries(root.Children)
	return root.Children, nil
}

// dirNode returns the section entry for dir, creating missing ancestors.
func dirNode(dirs map[string]*Node, dir string) *Node {
	if dir == "." {
		dir = ""
	}
	if n, ok := dirs[dir]; ok {
		return n
	}
	parent := dirNode(dirs, path.Dir(dir))
	n := &Node{Label: formatDirName(path.Base(dir))}
	parent.Children = append(parent.Children, n)
	dirs[dir] = n
	return n
}

func sortEntries(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		di, dj := nodes[i].Href == "", nodes[j].Href == ""
		if di != dj {
			return di
		}
		return nodes[i].Label < nodes[j].Label
	})
	for _, n := range nodes {
		sortEntries(n.Children)
	}
}

func matchesAny(p string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, p); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, path.Base(p)); err == nil && ok {
			return true
		}
	}
	return false
}

// pageTitle is the first heading of the page, or its file name.
func pageTitle(fsys fs.FS, p string) string {
	data, err := fs.ReadFile(fsys, p)
	if err == nil {
		doc := goldmark.New().Parser().Parse(text.NewReader(data))
		for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
			if h, ok := n.(*ast.Heading); ok {
				if t := inlineText(h, data); t != "" {
					return t
				}
			}
		}
	}
	return strings.TrimSuffix(path.Base(p), ".md")
}

// formatDirName title-cases a slug: "computer-science" -> "Computer Science".
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Load reads a sidebar from path: a directory is scanned with FromDir, a
// .yaml/.yml file is a manifest, anything else is parsed as _sidebar.md.
func Load(p string, opts DirOptions) ([]*Node, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("sidebar source: %w", err)
	}
	if info.IsDir() {
		return FromDir(os.DirFS(p), opts)
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open sidebar: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseMarkdown(f)
	}
}
