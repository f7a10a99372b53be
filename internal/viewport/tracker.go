// Package viewport tracks which content blocks intersect the reader's
// viewport.
package viewport

import (
	"github.com/dgallion1/docnav/internal/doctree"
)

// Viewport is the visible window over the content region, in the same
// coordinates as block geometry.
type Viewport struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Bottom is the offset just past the last visible pixel.
func (v Viewport) Bottom() float64 {
	return v.Top + v.Height
}

// Transition reports a block entering or leaving the viewport.
type Transition struct {
	BlockID string `json:"block_id"`
	Visible bool   `json:"visible"`
}

// Tracker observes the direct blocks of one render. Create a fresh Tracker
// for every render; it never outlives the blocks it was created for.
type Tracker struct {
	blocks  []*doctree.Block
	visible []bool
}

// NewTracker registers every block of doc as an observation target. All
// blocks start out not visible.
func NewTracker(doc *doctree.Document) *Tracker {
	blocks := make([]*doctree.Block, len(doc.Blocks))
	copy(blocks, doc.Blocks)
	return &Tracker{
		blocks:  blocks,
		visible: make([]bool, len(blocks)),
	}
}

// Ratio is the fraction of b inside vp. A zero-height block counts as fully
// inside when its offset lies within the viewport.
func Ratio(b *doctree.Block, vp Viewport) float64 {
	if vp.Height <= 0 {
		return 0
	}
	if b.Height <= 0 {
		if b.Top >= vp.Top && b.Top < vp.Bottom() {
			return 1
		}
		return 0
	}
	overlap := min(b.Bottom(), vp.Bottom()) - max(b.Top, vp.Top)
	if overlap <= 0 {
		return 0
	}
	return overlap / b.Height
}

// Observe recomputes intersection for every block. A block's flag flips
// only when its ratio crosses between zero and non-zero; the flips are
// returned in document order.
func (t *Tracker) Observe(vp Viewport) []Transition {
	var changes []Transition
	for i, b := range t.blocks {
		isVisible := Ratio(b, vp) > 0
		if isVisible == t.visible[i] {
			continue
		}
		t.visible[i] = isVisible
		changes = append(changes, Transition{BlockID: b.ID, Visible: isVisible})
	}
	return changes
}

// Visible reports the current flag of the block with id.
func (t *Tracker) Visible(id string) bool {
	for i, b := range t.blocks {
		if b.ID == id {
			return t.visible[i]
		}
	}
	return false
}

// FirstVisible returns the first visible block in document order, or nil
// when nothing is visible.
func (t *Tracker) FirstVisible() *doctree.Block {
	for i, v := range t.visible {
		if v {
			return t.blocks[i]
		}
	}
	return nil
}

// Len is the number of observed blocks.
func (t *Tracker) Len() int {
	return len(t.blocks)
}
