// Package navsync sequences one reader's render, scroll, route, and click
// events against the outline, resolver, and sidebar for the current render.
package navsync

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/layout"
	"github.com/dgallion1/docnav/internal/outline"
	"github.com/dgallion1/docnav/internal/resolver"
	"github.com/dgallion1/docnav/internal/sidebar"
	"github.com/dgallion1/docnav/internal/viewport"
)

var (
	// ErrNotRendered is returned for content events before the first render.
	ErrNotRendered = errors.New("no document rendered")
	// ErrNotFound is returned when an event names an unknown heading or entry.
	ErrNotFound = errors.New("not found")
)

// ScrollState is the reader's current scroll-derived state. Only Scroll
// writes it.
type ScrollState struct {
	TopmostVisibleBlockID string `json:"topmost_visible_block_id"`
}

// render is everything derived from one rendered document. It is replaced
// wholesale on the next render.
type render struct {
	doc      *doctree.Document
	roots    []*outline.Node
	tracker  *viewport.Tracker
	resolver *resolver.Resolver
	version  string
	pagePath string
}

// Session holds one reader's navigation state. Its methods are safe for
// concurrent use; events are applied one at a time in arrival order.
type Session struct {
	mu sync.Mutex

	ID        string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	log       *slog.Logger
	layoutCfg layout.Config
	cur       *render
	scroll    ScrollState
	sidebar   *sidebar.Tree
}

// NewSession creates a session with its own copy of the sidebar entries.
func NewSession(id string, nav []*sidebar.Node, metrics sidebar.Metrics, layoutCfg layout.Config, log *slog.Logger) *Session {
	now := time.Now()
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		log:       log.With("session_id", id),
		layoutCfg: layoutCfg,
		sidebar:   sidebar.NewTree(sidebar.Clone(nav), metrics),
	}
}

// LastActive returns when the session last handled an event.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

func (s *Session) touchLocked() {
	s.UpdatedAt = time.Now()
}

// RenderResult describes a freshly rendered document's TOC.
type RenderResult struct {
	Version  string          `json:"version"`
	Title    string          `json:"title"`
	TOCHTML  string          `json:"toc_html"`
	TOC      []outline.Entry `json:"toc"`
	Headings int             `json:"headings"`
	Blocks   int             `json:"blocks"`
	Extent   float64         `json:"extent"`
}

// Render replaces the session's document. Geometry is estimated, the
// outline is rebuilt from the heading sequence, and a fresh tracker and
// resolver are created; nothing from the previous render carries over.
func (s *Session) Render(doc *doctree.Document, pagePath string) (RenderResult, error) {
	if doc == nil {
		return RenderResult{}, fmt.Errorf("render: nil document")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layout.Apply(doc, s.layoutCfg)
	roots := outline.Build(doc.Headings())
	tocHTML, err := outline.RenderHTML(roots, pagePath)
	if err != nil {
		return RenderResult{}, fmt.Errorf("render toc: %w", err)
	}

	s.cur = &render{
		doc:      doc,
		roots:    roots,
		tracker:  viewport.NewTracker(doc),
		resolver: resolver.New(doc, roots),
		version:  doc.Hash(),
		pagePath: pagePath,
	}
	s.scroll = ScrollState{}
	s.touchLocked()

	s.log.Debug("document rendered",
		"version", s.cur.version,
		"blocks", len(doc.Blocks),
		"headings", outline.Count(roots),
	)

	return RenderResult{
		Version:  s.cur.version,
		Title:    doc.Title,
		TOCHTML:  tocHTML,
		TOC:      outline.Entries(roots),
		Headings: outline.Count(roots),
		Blocks:   len(doc.Blocks),
		Extent:   layout.Extent(doc),
	}, nil
}

// ScrollEvent is a scroll or resize of the content viewport. Version, when
// set, names the render the client measured against. Heights carries
// measured block heights that replace the estimate.
type ScrollEvent struct {
	Top     float64            `json:"top"`
	Height  float64            `json:"height"`
	Version string             `json:"version,omitempty"`
	Heights map[string]float64 `json:"heights,omitempty"`
}

// ScrollResult reports the outcome of a scroll event.
type ScrollResult struct {
	Version     string                `json:"version"`
	Stale       bool                  `json:"stale,omitempty"`
	Topmost     string                `json:"topmost_visible_block_id"`
	Active      string                `json:"active"`
	Breadcrumb  []string              `json:"breadcrumb,omitempty"`
	Changed     bool                  `json:"changed"`
	Transitions []viewport.Transition `json:"transitions"`
}

// Scroll observes the viewport and resolves the active TOC entry from the
// first visible block. Events measured against an older render are
// ignored. When no block is visible the active entry is left as it was.
func (s *Session) Scroll(ev ScrollEvent) (ScrollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return ScrollResult{}, ErrNotRendered
	}
	res := ScrollResult{Version: s.cur.version, Transitions: []viewport.Transition{}}
	if ev.Version != "" && ev.Version != s.cur.version {
		res.Stale = true
		res.Topmost = s.scroll.TopmostVisibleBlockID
		res.Active = activeID(s.cur.resolver)
		return res, nil
	}
	s.touchLocked()

	if n := layout.Override(s.cur.doc, ev.Heights, s.layoutCfg.BlockGap); n > 0 {
		s.log.Debug("measured heights applied", "blocks", n)
	}

	res.Transitions = append(res.Transitions, s.cur.tracker.Observe(viewport.Viewport{Top: ev.Top, Height: ev.Height})...)

	first := s.cur.tracker.FirstVisible()
	if first != nil {
		s.scroll.TopmostVisibleBlockID = first.ID
		_, res.Changed = s.cur.resolver.Resolve(first)
	} else {
		s.scroll.TopmostVisibleBlockID = ""
	}

	res.Topmost = s.scroll.TopmostVisibleBlockID
	res.Active = activeID(s.cur.resolver)
	if res.Active != "" {
		res.Breadcrumb = outline.Breadcrumb(s.cur.roots, res.Active)
	}
	return res, nil
}

// ClickResult is where the content should scroll for a TOC click.
type ClickResult struct {
	HeadingID string  `json:"heading_id"`
	Offset    float64 `json:"offset"`
	Active    string  `json:"active"`
	Changed   bool    `json:"changed"`
}

// ClickTOC activates the entry for headingID and returns the content
// offset of its heading block.
func (s *Session) ClickTOC(headingID string) (ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return ClickResult{}, ErrNotRendered
	}
	block := s.cur.doc.Block(headingID)
	if block == nil || !block.IsHeading() {
		return ClickResult{}, fmt.Errorf("heading %q: %w", headingID, ErrNotFound)
	}
	node, changed := s.cur.resolver.Activate(headingID)
	if node == nil || node.ID() != headingID {
		return ClickResult{}, fmt.Errorf("toc entry %q: %w", headingID, ErrNotFound)
	}
	s.touchLocked()

	return ClickResult{
		HeadingID: headingID,
		Offset:    block.Top,
		Active:    node.ID(),
		Changed:   changed,
	}, nil
}

// NavigateResult is the sidebar state after a route change.
type NavigateResult struct {
	Route        string          `json:"route"`
	Matched      bool            `json:"matched"`
	Current      string          `json:"current,omitempty"`
	ScrollOffset *float64        `json:"scroll_offset,omitempty"`
	States       []sidebar.State `json:"states"`
}

// Navigate syncs the sidebar with route. An unmatched route leaves the
// sidebar as it was and yields no scroll offset.
func (s *Session) Navigate(route string) NavigateResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()

	res := NavigateResult{Route: route}
	res.Matched = s.sidebar.Navigate(route)
	if cur := s.sidebar.Current(); res.Matched && cur != nil {
		res.Current = cur.ID
		if offset, ok := s.sidebar.ScrollOffset(); ok {
			res.ScrollOffset = &offset
		}
	} else {
		s.log.Debug("no sidebar entry for route", "route", route)
	}
	res.States = s.sidebar.States()
	if res.States == nil {
		res.States = []sidebar.State{}
	}
	return res
}

// ToggleSidebar flips a collapsible sidebar entry.
func (s *Session) ToggleSidebar(nodeID string) (sidebar.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.sidebar.Toggle(nodeID)
	if !ok {
		if n == nil {
			return sidebar.State{}, fmt.Errorf("sidebar entry %q: %w", nodeID, ErrNotFound)
		}
		return sidebar.State{}, fmt.Errorf("sidebar entry %q is not collapsible", nodeID)
	}
	s.touchLocked()

	for _, st := range s.sidebar.States() {
		if st.ID == n.ID {
			return st, nil
		}
	}
	return sidebar.State{}, fmt.Errorf("sidebar entry %q: %w", nodeID, ErrNotFound)
}

// SidebarHTML renders the session's sidebar with its current state.
func (s *Session) SidebarHTML() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebar.RenderHTML()
}

// Snapshot is a read-only, JSON-safe copy of session state.
type Snapshot struct {
	ID         string          `json:"session_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    string          `json:"version,omitempty"`
	PagePath   string          `json:"page_path,omitempty"`
	Title      string          `json:"title,omitempty"`
	Scroll     ScrollState     `json:"scroll"`
	Active     string          `json:"active,omitempty"`
	TOC        []outline.Entry `json:"toc"`
	SidebarCur string          `json:"sidebar_current,omitempty"`
	Sidebar    []sidebar.State `json:"sidebar"`
}

// Snapshot returns a JSON-safe copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Scroll:    s.scroll,
		TOC:       []outline.Entry{},
		Sidebar:   s.sidebar.States(),
	}
	if snap.Sidebar == nil {
		snap.Sidebar = []sidebar.State{}
	}
	if cur := s.sidebar.Current(); cur != nil {
		snap.SidebarCur = cur.ID
	}
	if s.cur != nil {
		snap.Version = s.cur.version
		snap.PagePath = s.cur.pagePath
		snap.Title = s.cur.doc.Title
		snap.Active = activeID(s.cur.resolver)
		snap.TOC = outline.Entries(s.cur.roots)
	}
	return snap
}

func activeID(r *resolver.Resolver) string {
	if n := r.Active(); n != nil {
		return n.ID()
	}
	return ""
}
