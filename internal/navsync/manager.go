package navsync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/layout"
	"github.com/dgallion1/docnav/internal/parser"
	"github.com/dgallion1/docnav/internal/sidebar"
	"github.com/google/uuid"
)

// Manager owns the live sessions and applies events to them.
type Manager struct {
	sessions  *SessionStore
	stats     *EventStats
	log       *slog.Logger
	cfg       config.Config
	nav       []*sidebar.Node
	metrics   sidebar.Metrics
	layoutCfg layout.Config
	parseOpts parser.Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewManager creates a manager whose sessions share the sidebar entries in
// nav. Each session gets its own copy.
func NewManager(cfg config.Config, nav []*sidebar.Node, log *slog.Logger) *Manager {
	return &Manager{
		sessions: NewSessionStore(cfg.SessionTTL),
		stats:    NewEventStats(time.Hour),
		log:      log,
		cfg:      cfg,
		nav:      nav,
		metrics:  SidebarMetrics(cfg),
		layoutCfg: layout.Config{
			LineHeight:   cfg.LayoutLineHeight,
			CharsPerLine: cfg.LayoutCharsPerLine,
			BlockGap:     cfg.LayoutBlockGap,
		},
		parseOpts: parser.Options{
			ContentRootClass:     cfg.ContentRootClass,
			PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
		},
	}
}

// SidebarMetrics maps the sidebar geometry settings onto sidebar.Metrics.
func SidebarMetrics(cfg config.Config) sidebar.Metrics {
	return sidebar.Metrics{
		RowHeight:       cfg.SidebarRowHeight,
		ListPadding:     cfg.SidebarListPadding,
		ProfileHeight:   cfg.SidebarProfileHeight,
		Gap:             cfg.SidebarGap,
		FadeHeight:      cfg.SidebarFadeHeight,
		ContainerHeight: cfg.SidebarHeight,
	}
}

// Start launches the idle-session sweeper.
func (m *Manager) Start(ctx context.Context) {
	sweepCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	interval := min(m.cfg.SessionTTL/2, 5*time.Minute)
	if interval <= 0 {
		interval = time.Minute
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if n := m.sessions.Cleanup(); n > 0 {
					m.log.Info("expired idle sessions", "count", n, "remaining", m.sessions.Len())
				}
			}
		}
	}()
}

// Stop shuts down the sweeper.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// Create starts a new session with a fully expanded sidebar.
func (m *Manager) Create() *Session {
	sess := NewSession(uuid.NewString(), m.nav, m.metrics, m.layoutCfg, m.log)
	m.sessions.Put(sess)
	m.log.Info("session created", "session_id", sess.ID)
	return sess
}

// Get returns a session by ID, or nil.
func (m *Manager) Get(id string) *Session {
	return m.sessions.Get(id)
}

// Delete ends a session.
func (m *Manager) Delete(id string) bool {
	return m.sessions.Delete(id)
}

// SessionCount returns the number of live sessions.
func (m *Manager) SessionCount() int {
	return m.sessions.Len()
}

// Stats returns the event latency tracker.
func (m *Manager) Stats() *EventStats {
	return m.stats
}

// Parse extracts the block sequence of a document by file extension.
func (m *Manager) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	p, err := parser.ForFile(filename, m.parseOpts)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(r, filename)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return doc, nil
}

// Apply dispatches one event to sess and records how long it took.
func (m *Manager) Apply(sess *Session, ev Event) (any, error) {
	if err := ev.validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		m.stats.Record(ev.Type, time.Since(start))
	}()

	switch ev.Type {
	case EventRender:
		doc, err := m.Parse(strings.NewReader(ev.Content), ev.Filename)
		if err != nil {
			return nil, err
		}
		pagePath := ev.PagePath
		if pagePath == "" {
			pagePath = DefaultPagePath(ev.Filename)
		}
		return sess.Render(doc, pagePath)
	case EventScroll:
		return sess.Scroll(ev.ScrollEvent)
	case EventNavigate:
		return sess.Navigate(ev.Route), nil
	case EventTOCClick:
		return sess.ClickTOC(ev.HeadingID)
	case EventToggle:
		return sess.ToggleSidebar(ev.NodeID)
	}
	return nil, fmt.Errorf("unknown event type %q", ev.Type)
}

// DefaultPagePath is the route a document is served under when the client
// does not say: "/" plus the file name without extension.
func DefaultPagePath(filename string) string {
	base := filepath.Base(filename)
	return "/" + strings.TrimSuffix(base, filepath.Ext(base))
}
