// Package sidebar keeps the site navigation tree expanded along the current
// page's branch and scrolled so the current entry stays in view.
package sidebar

import (
	"strconv"

	"github.com/dgallion1/docnav/internal/doctree"
)

// Node is one sidebar entry. Entries with children are collapsible.
type Node struct {
	ID       string  `json:"id" yaml:"id,omitempty"`
	Label    string  `json:"label" yaml:"title"`
	Href     string  `json:"href,omitempty" yaml:"href,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`

	// Collapsed hides the child list. Extent is the visible block size of the
	// child list in px: the measured natural size when expanded, 0 when
	// collapsed.
	Collapsed bool    `json:"collapsed" yaml:"-"`
	Current   bool    `json:"current" yaml:"-"`
	Extent    float64 `json:"extent" yaml:"-"`

	parent *Node
}

// Collapsible reports whether the entry has a child list.
func (n *Node) Collapsible() bool {
	return len(n.Children) > 0
}

// Parent returns the enclosing entry, or nil for a top-level entry.
func (n *Node) Parent() *Node {
	return n.parent
}

// Tree is one rendered sidebar. A Tree is rebuilt whenever the sidebar is
// re-rendered; its collapse state does not outlive it.
type Tree struct {
	Roots []*Node

	metrics Metrics
	byID    map[string]*Node
	current *Node
}

// NewTree links parents, assigns positional ids ("0", "0.2", ...) to
// entries without one, and starts with every list expanded. Ids are unique
// within the tree: explicit ids are kept in document order, and a repeated
// or clashing id gets a numeric suffix.
func NewTree(roots []*Node, m Metrics) *Tree {
	t := &Tree{
		Roots:   roots,
		metrics: m.normalized(),
		byID:    make(map[string]*Node),
	}
	ids := doctree.NewIDSet()
	var reserve func(nodes []*Node)
	reserve = func(nodes []*Node) {
		for _, n := range nodes {
			if n.ID != "" {
				n.ID = ids.Unique(n.ID)
			}
			reserve(n.Children)
		}
	}
	reserve(roots)

	var link func(nodes []*Node, parent *Node, prefix string)
	link = func(nodes []*Node, parent *Node, prefix string) {
		for i, n := range nodes {
			n.parent = parent
			if n.ID == "" {
				n.ID = ids.Unique(prefix + strconv.Itoa(i))
			}
			t.byID[n.ID] = n
			n.Current = false
			n.Collapsed = false
			link(n.Children, n, n.ID+".")
		}
	}
	link(roots, nil, "")
	t.refreshExtents()
	return t
}

// Metrics returns the geometry the tree lays itself out with.
func (t *Tree) Metrics() Metrics {
	return t.metrics
}

// Node looks an entry up by id.
func (t *Tree) Node(id string) *Node {
	return t.byID[id]
}

// Current returns the entry for the current page, or nil.
func (t *Tree) Current() *Node {
	return t.current
}

// Walk visits every entry depth-first in document order.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(t.Roots, 0)
}

// Find returns the first entry, in document order, whose href names the
// same page as route.
func (t *Tree) Find(route string) *Node {
	page := PageName(route)
	var found *Node
	t.Walk(func(n *Node, _ int) {
		if found == nil && n.Href != "" && PageName(n.Href) == page {
			found = n
		}
	})
	return found
}

// Navigate marks the entry for route as current, expands every collapsible
// entry whose subtree contains it, and collapses all others, so exactly the
// branch from the root to the current entry is open. When no entry matches
// the route the tree is left as it was and false is returned.
func (t *Tree) Navigate(route string) bool {
	target := t.Find(route)
	if target == nil {
		return false
	}

	if t.current != nil {
		t.current.Current = false
	}
	target.Current = true
	t.current = target

	onPath := make(map[*Node]bool)
	for p := target.parent; p != nil; p = p.parent {
		onPath[p] = true
	}
	t.Walk(func(n *Node, _ int) {
		if n.Collapsible() {
			n.Collapsed = !onPath[n]
		}
	})
	t.refreshExtents()
	return true
}

// Toggle flips a collapsible entry between expanded and collapsed, as a
// click on its header does. Expanding sizes the list to its natural extent;
// collapsing sets it to zero. Expanded ancestors are resized to fit.
// Returns false for unknown or non-collapsible entries.
func (t *Tree) Toggle(id string) (*Node, bool) {
	n := t.byID[id]
	if n == nil || !n.Collapsible() {
		return n, false
	}
	if n.Collapsed {
		n.Collapsed = false
		n.Extent = t.naturalExtent(n)
	} else {
		n.Collapsed = true
		n.Extent = 0
	}
	for p := n.parent; p != nil; p = p.parent {
		if !p.Collapsed {
			p.Extent = t.naturalExtent(p)
		}
	}
	return n, true
}

// refreshExtents recomputes every extent bottom-up so a parent's size
// includes its expanded children.
func (t *Tree) refreshExtents() {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			visit(n.Children)
			switch {
			case !n.Collapsible():
				n.Extent = 0
			case n.Collapsed:
				n.Extent = 0
			default:
				n.Extent = t.naturalExtent(n)
			}
		}
	}
	visit(t.Roots)
}

// naturalExtent measures n's child list as if unconstrained: padding, one
// row per child, plus each child's own visible list.
func (t *Tree) naturalExtent(n *Node) float64 {
	if !n.Collapsible() {
		return 0
	}
	h := 2 * t.metrics.ListPadding
	for _, c := range n.Children {
		h += t.metrics.RowHeight + c.Extent
	}
	return h
}

// Clone deep-copies entries so each Tree can own its collapse state. Only
// the source fields (id, label, href, children) are copied.
func Clone(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	out := make([]*Node, len(nodes))
	for i, n := range nodes {
		out[i] = &Node{
			ID:       n.ID,
			Label:    n.Label,
			Href:     n.Href,
			Children: Clone(n.Children),
		}
	}
	return out
}
