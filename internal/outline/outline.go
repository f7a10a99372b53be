// Package outline derives the table-of-contents tree from the flat heading
// sequence of a rendered document.
package outline

import (
	"github.com/dgallion1/docnav/internal/doctree"
)

// Node is one entry of the table of contents.
type Node struct {
	Heading  doctree.Heading
	Children []*Node

	active bool
}

// Active reports whether the node marks the content currently in view.
// Only a Cell changes it.
func (n *Node) Active() bool {
	return n.active
}

// Level is the heading rank of the node.
func (n *Node) Level() int {
	return n.Heading.Level
}

// ID is the heading identifier of the node.
func (n *Node) ID() string {
	return n.Heading.ID
}

// Build turns headings in document order into a forest. A heading closes
// every open heading of the same or a deeper level, then nests under
// whatever remains open. Skipped levels are absorbed: an h4 right after an
// h1 becomes the h1's direct child.
func Build(headings []doctree.Heading) []*Node {
	type stackEntry struct {
		level int
		node  *Node
	}

	var roots []*Node
	var stack []stackEntry

	for _, h := range headings {
		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		node := &Node{Heading: h, Children: []*Node{}}
		if len(stack) > 0 {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, stackEntry{level: h.Level, node: node})
	}

	if roots == nil {
		roots = []*Node{}
	}
	return roots
}

// Walk visits every node depth-first in document order. Returning false
// from fn stops the walk.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int) bool
	walk = func(nodes []*Node, depth int) bool {
		for _, n := range nodes {
			if !fn(n, depth) {
				return false
			}
			if !walk(n.Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(roots, 0)
}

// Count returns the number of nodes in the forest.
func Count(roots []*Node) int {
	count := 0
	Walk(roots, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Index maps heading ids to their nodes. The first node wins if ids repeat.
func Index(roots []*Node) map[string]*Node {
	idx := make(map[string]*Node)
	Walk(roots, func(n *Node, _ int) bool {
		if _, ok := idx[n.ID()]; !ok {
			idx[n.ID()] = n
		}
		return true
	})
	return idx
}

// Path returns the chain of nodes from a root down to the node with id,
// or nil if no node has that id.
func Path(roots []*Node, id string) []*Node {
	var path []*Node
	var find func(nodes []*Node) bool
	find = func(nodes []*Node) bool {
		for _, n := range nodes {
			path = append(path, n)
			if n.ID() == id || find(n.Children) {
				return true
			}
			path = path[:len(path)-1]
		}
		return false
	}
	if !find(roots) {
		return nil
	}
	return path
}

// Breadcrumb returns the labels along Path.
func Breadcrumb(roots []*Node, id string) []string {
	path := Path(roots, id)
	if len(path) == 0 {
		return nil
	}
	out := make([]string, len(path))
	for i, n := range path {
		out[i] = n.Heading.Label
	}
	return out
}
