package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NAVD_API_KEY", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("SIDEBAR_FADE_HEIGHT", "")

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.SidebarFadeHeight != 64 {
		t.Errorf("expected 64px fade band, got %v", cfg.SidebarFadeHeight)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SIDEBAR_ROW_HEIGHT", "40.5")
	t.Setenv("LAYOUT_CHARS_PER_LINE", "-3")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("expected 5m, got %v", cfg.SessionTTL)
	}
	if strings.Join(cfg.CORSAllowedOrigins, "|") != "https://a.example|https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.SidebarRowHeight != 40.5 {
		t.Errorf("expected row height 40.5, got %v", cfg.SidebarRowHeight)
	}
	if cfg.LayoutCharsPerLine != 80 {
		t.Errorf("expected invalid chars-per-line to fall back to 80, got %d", cfg.LayoutCharsPerLine)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{SidebarHeight: 600, SidebarFadeHeight: 64}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without NAVD_API_KEY")
	}

	cfg.NavdAPIKey = "secret"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.SidebarSource = "/does/not/exist/_sidebar.md"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing sidebar source")
	}

	cfg.SidebarSource = ""
	cfg.SidebarFadeHeight = 600
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when the fade band covers the container")
	}
}
