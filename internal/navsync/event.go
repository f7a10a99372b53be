package navsync

import (
	"fmt"
)

// EventType names a navigation signal forwarded by the reader's page.
type EventType string

const (
	EventRender   EventType = "render"
	EventScroll   EventType = "scroll"
	EventNavigate EventType = "navigate"
	EventTOCClick EventType = "toc_click"
	EventToggle   EventType = "toggle"
)

// Event is one signal from the page. Only the fields for its Type are read.
type Event struct {
	Type EventType `json:"type"`

	// render
	Filename string `json:"filename,omitempty"`
	Content  string `json:"content,omitempty"`
	PagePath string `json:"page_path,omitempty"`

	// scroll
	ScrollEvent

	// navigate
	Route string `json:"route,omitempty"`

	// toc_click
	HeadingID string `json:"heading_id,omitempty"`

	// toggle
	NodeID string `json:"node_id,omitempty"`
}

// Reply answers one event. Exactly one of Data and Error is set.
type Reply struct {
	Type  EventType `json:"type"`
	Data  any       `json:"data,omitempty"`
	Error string    `json:"error,omitempty"`
}

func (e Event) validate() error {
	switch e.Type {
	case EventRender:
		if e.Filename == "" {
			return fmt.Errorf("render: filename is required")
		}
	case EventScroll:
		if e.Height < 0 {
			return fmt.Errorf("scroll: negative viewport height")
		}
	case EventNavigate:
	case EventTOCClick:
		if e.HeadingID == "" {
			return fmt.Errorf("toc_click: heading_id is required")
		}
	case EventToggle:
		if e.NodeID == "" {
			return fmt.Errorf("toggle: node_id is required")
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}
