package doctree

import (
	"crypto/sha256"
	"fmt"
	"strconv"
)

// BlockKind classifies a direct child of the content region.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindCode      BlockKind = "code"
	KindList      BlockKind = "list"
	KindTable     BlockKind = "table"
	KindQuote     BlockKind = "quote"
	KindRule      BlockKind = "rule"
	KindOther     BlockKind = "other"
)

// Document is a rendered content region: its direct blocks in document order.
type Document struct {
	Title  string   // Document title (from metadata or filename)
	Blocks []*Block // Direct children of the content root

	ids *IDSet
}

// Block is one block-level element of the content region.
type Block struct {
	Index  int       // Position in Document.Blocks
	ID     string    // Heading id, or a synthetic "block-N" id
	Kind   BlockKind // Heading, paragraph, code, ...
	Level  int       // 1-6 for headings, 0 otherwise
	Text   string    // Label for headings, text content otherwise
	Top    float64   // Offset from the top of the content region (px)
	Height float64   // Rendered height (px)
}

// Heading is one heading record in document order.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

// IsHeading reports whether the block is a heading.
func (b *Block) IsHeading() bool {
	return b != nil && b.Kind == KindHeading && b.Level >= 1 && b.Level <= 6
}

// Heading returns the heading record for a heading block.
func (b *Block) Heading() Heading {
	return Heading{Level: b.Level, ID: b.ID, Label: b.Text}
}

// Bottom is the offset just past the block's last pixel.
func (b *Block) Bottom() float64 {
	return b.Top + b.Height
}

// Headings returns the heading records in document order.
func (d *Document) Headings() []Heading {
	var out []Heading
	for _, b := range d.Blocks {
		if b.IsHeading() {
			out = append(out, b.Heading())
		}
	}
	return out
}

// Block looks a block up by id.
func (d *Document) Block(id string) *Block {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Append adds a block and assigns its index. Every block id is unique
// within the document: a taken id gets a numeric suffix, a block without
// one gets a synthetic "block-N" id, and a heading without one becomes
// "section".
func (d *Document) Append(b *Block) {
	if d.ids == nil {
		d.ids = NewIDSet()
		for _, prev := range d.Blocks {
			d.ids.Unique(prev.ID)
		}
	}
	b.Index = len(d.Blocks)
	id := b.ID
	if id == "" && !b.IsHeading() {
		id = "block-" + strconv.Itoa(b.Index)
	}
	b.ID = d.ids.Unique(id)
	d.Blocks = append(d.Blocks, b)
}

// Hash identifies a render by its block sequence. Geometry is excluded so
// re-measuring a render does not change its version.
func (d *Document) Hash() string {
	h := sha256.New()
	for _, b := range d.Blocks {
		fmt.Fprintf(h, "%s\x00%s\x00%d\x00%s\x01", b.ID, b.Kind, b.Level, b.Text)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
