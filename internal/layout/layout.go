package layout

import (
	"github.com/dgallion1/docnav/internal/doctree"
)

// Config controls the geometry estimate for content blocks.
type Config struct {
	LineHeight   float64 // Height of one line of body text (px).
	CharsPerLine int     // Characters that fit on one wrapped line.
	BlockGap     float64 // Vertical margin between consecutive blocks (px).
}

// DefaultConfig returns sensible defaults for a ~760px content column.
func DefaultConfig() Config {
	return Config{
		LineHeight:   28,
		CharsPerLine: 80,
		BlockGap:     16,
	}
}

// headingScale is the line-height multiplier per heading level.
var headingScale = [7]float64{0, 2.0, 1.6, 1.4, 1.2, 1.1, 1.0}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.LineHeight <= 0 {
		c.LineHeight = d.LineHeight
	}
	if c.CharsPerLine <= 0 {
		c.CharsPerLine = d.CharsPerLine
	}
	if c.BlockGap < 0 {
		c.BlockGap = d.BlockGap
	}
	return c
}

// Apply assigns Top and Height to every block, laying them out top to bottom.
func Apply(doc *doctree.Document, cfg Config) {
	cfg = cfg.normalized()
	for _, b := range doc.Blocks {
		b.Height = EstimateHeight(b, cfg)
	}
	Reflow(doc, cfg.BlockGap)
}

// Override replaces estimated heights with measured ones and re-flows the
// blocks. Unknown ids are ignored. Returns the number of blocks updated.
func Override(doc *doctree.Document, heights map[string]float64, gap float64) int {
	if len(heights) == 0 {
		return 0
	}
	updated := 0
	for _, b := range doc.Blocks {
		if h, ok := heights[b.ID]; ok && h >= 0 {
			b.Height = h
			updated++
		}
	}
	if updated > 0 {
		Reflow(doc, gap)
	}
	return updated
}

// Reflow recomputes Top from the current heights.
func Reflow(doc *doctree.Document, gap float64) {
	top := 0.0
	for i, b := range doc.Blocks {
		if i > 0 {
			top += gap
		}
		b.Top = top
		top += b.Height
	}
}

// Extent is the total height of the laid out document.
func Extent(doc *doctree.Document) float64 {
	if len(doc.Blocks) == 0 {
		return 0
	}
	return doc.Blocks[len(doc.Blocks)-1].Bottom()
}

// EstimateHeight gives a rough rendered height for one block.
func EstimateHeight(b *doctree.Block, cfg Config) float64 {
	cfg = cfg.normalized()
	switch b.Kind {
	case doctree.KindHeading:
		level := b.Level
		if level < 1 || level > 6 {
			level = 6
		}
		lines := EstimateLines(b.Text, cfg.CharsPerLine)
		return float64(lines) * cfg.LineHeight * headingScale[level]
	case doctree.KindRule:
		return 1
	case doctree.KindCode, doctree.KindTable:
		// Preformatted content does not wrap; one line per source line.
		return float64(countLines(b.Text)) * cfg.LineHeight
	}
	return float64(EstimateLines(b.Text, cfg.CharsPerLine)) * cfg.LineHeight
}
