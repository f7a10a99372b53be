package sidebar

// Metrics is the fixed geometry of the sidebar panel, in px.
type Metrics struct {
	RowHeight       float64 `json:"row_height"`       // One entry row.
	ListPadding     float64 `json:"list_padding"`     // Block padding on each side of a nested list.
	ProfileHeight   float64 `json:"profile_height"`   // Profile header above the nav, margins included.
	Gap             float64 `json:"gap"`              // Gap between the profile header and the nav.
	FadeHeight      float64 `json:"fade_height"`      // Gradient band at the bottom of the nav.
	ContainerHeight float64 `json:"container_height"` // Visible height of the nav scroll container.
}

// DefaultMetrics matches the stylesheet the sidebar ships with.
func DefaultMetrics() Metrics {
	return Metrics{
		RowHeight:       32,
		ListPadding:     4,
		ProfileHeight:   180,
		Gap:             16,
		FadeHeight:      64,
		ContainerHeight: 600,
	}
}

func (m Metrics) normalized() Metrics {
	d := DefaultMetrics()
	if m.RowHeight <= 0 {
		m.RowHeight = d.RowHeight
	}
	if m.ListPadding < 0 {
		m.ListPadding = 0
	}
	if m.ProfileHeight < 0 {
		m.ProfileHeight = 0
	}
	if m.Gap < 0 {
		m.Gap = 0
	}
	if m.FadeHeight < 0 {
		m.FadeHeight = 0
	}
	if m.ContainerHeight <= 0 {
		m.ContainerHeight = d.ContainerHeight
	}
	return m
}

// VisibleBand is the part of the container not covered by the fade band.
func (m Metrics) VisibleBand() float64 {
	return m.ContainerHeight - m.FadeHeight
}

// placement is an entry's row position and, for collapsible entries, the
// top of its child list. Both are in nav content coordinates.
type placement struct {
	row  float64
	list float64
}

// layout positions every entry given the current extents. Entries inside a
// collapsed list keep the position they would have when shown.
func (t *Tree) layout() (map[*Node]placement, float64) {
	pos := make(map[*Node]placement)
	var place func(nodes []*Node, y float64) float64
	place = func(nodes []*Node, y float64) float64 {
		for _, n := range nodes {
			p := placement{row: y}
			y += t.metrics.RowHeight
			if n.Collapsible() {
				p.list = y
				place(n.Children, y+t.metrics.ListPadding)
				y += n.Extent
			}
			pos[n] = p
		}
		return y
	}
	total := place(t.Roots, 0)
	return pos, total
}

// OffsetTop is the entry's offset from the top of the sidebar panel, below
// the profile header and gap.
func (t *Tree) OffsetTop(n *Node) (float64, bool) {
	if n == nil || t.byID[n.ID] != n {
		return 0, false
	}
	pos, _ := t.layout()
	return t.metrics.ProfileHeight + t.metrics.Gap + pos[n].row, true
}

// ContentHeight is the total scrollable height of the nav. The nav is
// padded at the end by the fade band so the last entry can scroll clear
// of it.
func (t *Tree) ContentHeight() float64 {
	_, total := t.layout()
	return total + t.metrics.FadeHeight
}

// ScrollOffset computes the nav scroll position that brings the current
// entry into view. A top-level entry is scrolled to the top. A nested entry
// shows its enclosing list from the first child row, unless that would leave
// the entry under the fade band, in which case the entry itself goes to the
// top.
// Returns false when there is no current entry.
func (t *Tree) ScrollOffset() (float64, bool) {
	cur := t.current
	if cur == nil {
		return 0, false
	}
	pos, total := t.layout()
	origin := t.metrics.ProfileHeight + t.metrics.Gap

	// Offsets are measured from the panel top; the nav scrolls below the
	// profile header and gap.
	entryTop := origin + pos[cur].row
	var offset float64
	if cur.parent == nil {
		offset = entryTop - origin
	} else {
		listTop := origin + pos[cur.parent].list + t.metrics.ListPadding
		within := entryTop - listTop
		if within+t.metrics.RowHeight > t.metrics.VisibleBand() {
			offset = entryTop - origin
		} else {
			offset = listTop - origin
		}
	}

	maxOffset := max(total+t.metrics.FadeHeight-t.metrics.ContainerHeight, 0)
	return min(max(offset, 0), maxOffset), true
}

// InVisibleBand reports whether the current entry's row lies fully inside
// the visible band when the nav is scrolled to offset.
func (t *Tree) InVisibleBand(offset float64) bool {
	cur := t.current
	if cur == nil {
		return false
	}
	pos, _ := t.layout()
	top := pos[cur].row - offset
	return top >= 0 && top+t.metrics.RowHeight <= t.metrics.VisibleBand()
}
