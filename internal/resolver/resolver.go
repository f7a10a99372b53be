// Package resolver maps the first visible content block to its TOC entry
// and keeps that entry marked active.
package resolver

import (
	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/outline"
)

// Resolver owns the active flag of one render's outline.
type Resolver struct {
	doc   *doctree.Document
	index map[string]*outline.Node
	cell  outline.Cell

	// governing[i] is the index of the heading block that governs block i:
	// the block itself when it is a heading, else the nearest preceding
	// heading. -1 when no heading precedes it.
	governing []int
}

// New indexes the outline by heading id and precomputes the governing
// heading of every block.
func New(doc *doctree.Document, roots []*outline.Node) *Resolver {
	r := &Resolver{
		doc:       doc,
		index:     outline.Index(roots),
		governing: make([]int, len(doc.Blocks)),
	}
	last := -1
	for i, b := range doc.Blocks {
		if b.IsHeading() {
			last = i
		}
		r.governing[i] = last
	}
	return r
}

// Governing returns the heading block that governs block, or nil.
func (r *Resolver) Governing(block *doctree.Block) *doctree.Block {
	if block == nil || block.Index < 0 || block.Index >= len(r.governing) {
		return nil
	}
	if r.doc.Blocks[block.Index] != block {
		// Block from a different render.
		return nil
	}
	gi := r.governing[block.Index]
	if gi < 0 {
		return nil
	}
	return r.doc.Blocks[gi]
}

// Resolve marks the TOC entry governing the first visible block as active.
// A nil block, content before the first heading, or a heading with no TOC
// entry leaves the current active entry untouched. Returns the active node
// after resolution and whether it changed.
func (r *Resolver) Resolve(firstVisible *doctree.Block) (*outline.Node, bool) {
	heading := r.Governing(firstVisible)
	if heading == nil {
		return r.cell.Current(), false
	}
	node, ok := r.index[heading.ID]
	if !ok {
		return r.cell.Current(), false
	}
	changed := r.cell.Set(node)
	return node, changed
}

// Activate marks the entry with id active directly, as when the reader
// clicks a TOC link. Unknown ids are ignored.
func (r *Resolver) Activate(id string) (*outline.Node, bool) {
	node, ok := r.index[id]
	if !ok {
		return r.cell.Current(), false
	}
	return node, r.cell.Set(node)
}

// Active returns the active node, or nil.
func (r *Resolver) Active() *outline.Node {
	return r.cell.Current()
}

// Lookup returns the node for a heading id.
func (r *Resolver) Lookup(id string) (*outline.Node, bool) {
	n, ok := r.index[id]
	return n, ok
}
