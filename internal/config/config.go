package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	NavdAPIKey string

	// Browser clients
	CORSAllowedOrigins []string

	// Session state
	SessionTTL time.Duration

	// Upload limits
	MaxUploadBytes int64

	// Sidebar source: a _sidebar.md, a sidebar.yaml manifest, or a docs directory.
	SidebarSource  string
	SidebarInclude []string
	SidebarExclude []string

	// Content extraction
	ContentRootClass     string
	PDFFallbackPdftotext bool

	// Content layout estimate (px)
	LayoutLineHeight   float64
	LayoutCharsPerLine int
	LayoutBlockGap     float64

	// Sidebar geometry (px)
	SidebarRowHeight     float64
	SidebarListPadding   float64
	SidebarProfileHeight float64
	SidebarGap           float64
	SidebarFadeHeight    float64
	SidebarHeight        float64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		NavdAPIKey: os.Getenv("NAVD_API_KEY"),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		SessionTTL: envDuration("SESSION_TTL", 30*time.Minute),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		SidebarSource:  os.Getenv("SIDEBAR_SOURCE"),
		SidebarInclude: envList("SIDEBAR_INCLUDE", nil),
		SidebarExclude: envList("SIDEBAR_EXCLUDE", []string{"_*.md"}),

		ContentRootClass:     envOr("CONTENT_ROOT_CLASS", "markdown-section"),
		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		LayoutLineHeight:   envFloat("LAYOUT_LINE_HEIGHT", 28),
		LayoutCharsPerLine: envInt("LAYOUT_CHARS_PER_LINE", 80),
		LayoutBlockGap:     envFloat("LAYOUT_BLOCK_GAP", 16),

		SidebarRowHeight:     envFloat("SIDEBAR_ROW_HEIGHT", 32),
		SidebarListPadding:   envFloat("SIDEBAR_LIST_PADDING", 4),
		SidebarProfileHeight: envFloat("SIDEBAR_PROFILE_HEIGHT", 180),
		SidebarGap:           envFloat("SIDEBAR_GAP", 16),
		SidebarFadeHeight:    envFloat("SIDEBAR_FADE_HEIGHT", 64),
		SidebarHeight:        envFloat("SIDEBAR_HEIGHT", 600),
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.LayoutLineHeight <= 0 {
		cfg.LayoutLineHeight = 28
	}
	if cfg.LayoutCharsPerLine <= 0 {
		cfg.LayoutCharsPerLine = 80
	}
	if cfg.LayoutBlockGap < 0 {
		cfg.LayoutBlockGap = 16
	}
	if cfg.SidebarRowHeight <= 0 {
		cfg.SidebarRowHeight = 32
	}
	if cfg.SidebarFadeHeight < 0 {
		cfg.SidebarFadeHeight = 64
	}
	if cfg.SidebarHeight <= 0 {
		cfg.SidebarHeight = 600
	}

	return cfg
}

func (c Config) Validate() error {
	if c.NavdAPIKey == "" {
		return fmt.Errorf("NAVD_API_KEY is required")
	}
	if c.SidebarSource != "" {
		if _, err := os.Stat(c.SidebarSource); err != nil {
			return fmt.Errorf("SIDEBAR_SOURCE: %w", err)
		}
	}
	if c.SidebarFadeHeight >= c.SidebarHeight {
		return fmt.Errorf("SIDEBAR_FADE_HEIGHT (%g) must be less than SIDEBAR_HEIGHT (%g)", c.SidebarFadeHeight, c.SidebarHeight)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated value, dropping empty items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
