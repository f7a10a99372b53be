package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/layout"
	"github.com/dgallion1/docnav/internal/parser"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "docnav",
		Short: "Inspect document outlines and sidebar navigation state",
		Long: `docnav builds the table of contents of a document, resolves which
heading is active for a scroll position, and shows how the sidebar is
expanded and scrolled for a route. Geometry defaults come from the same
environment variables navd reads.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("format", "f", "text", "output format: text, json or html")
	root.AddCommand(newTOCCmd(), newActiveCmd(), newSidebarCmd())
	return root
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "text", "json", "html":
		return format, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or html)", format)
}

// loadDocument parses and lays out a document file.
func loadDocument(path string, cfg config.Config) (*doctree.Document, error) {
	p, err := parser.ForFile(path, parser.Options{
		ContentRootClass:     cfg.ContentRootClass,
		PDFFallbackPdftotext: cfg.PDFFallbackPdftotext,
	})
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := p.Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	layout.Apply(doc, layoutConfig(cfg))
	return doc, nil
}

func layoutConfig(cfg config.Config) layout.Config {
	return layout.Config{
		LineHeight:   cfg.LayoutLineHeight,
		CharsPerLine: cfg.LayoutCharsPerLine,
		BlockGap:     cfg.LayoutBlockGap,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
