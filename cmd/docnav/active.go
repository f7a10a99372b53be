package main

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/navsync"
	"github.com/dgallion1/docnav/internal/outline"
	"github.com/dgallion1/docnav/internal/resolver"
	"github.com/dgallion1/docnav/internal/viewport"
	"github.com/spf13/cobra"
)

func newActiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "active FILE",
		Short: "Resolve the active TOC entry for a scroll position",
		Args:  cobra.ExactArgs(1),
		RunE:  runActive,
	}
	cmd.Flags().Float64("top", 0, "scroll offset of the viewport (px)")
	cmd.Flags().Float64("height", 800, "viewport height (px)")
	return cmd
}

type activeResult struct {
	Top        float64  `json:"top"`
	Height     float64  `json:"height"`
	Topmost    string   `json:"topmost_visible_block_id"`
	Active     string   `json:"active"`
	Breadcrumb []string `json:"breadcrumb"`
	Visible    []string `json:"visible"`
}

func runActive(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	top, _ := cmd.Flags().GetFloat64("top")
	height, _ := cmd.Flags().GetFloat64("height")
	if height <= 0 {
		return fmt.Errorf("--height must be positive")
	}

	doc, err := loadDocument(args[0], config.Load())
	if err != nil {
		return err
	}
	roots := outline.Build(doc.Headings())
	tracker := viewport.NewTracker(doc)
	res := resolver.New(doc, roots)

	transitions := tracker.Observe(viewport.Viewport{Top: top, Height: height})
	result := activeResult{Top: top, Height: height, Breadcrumb: []string{}, Visible: []string{}}
	for _, tr := range transitions {
		result.Visible = append(result.Visible, tr.BlockID)
	}
	if first := tracker.FirstVisible(); first != nil {
		result.Topmost = first.ID
		if node, _ := res.Resolve(first); node != nil {
			result.Active = node.ID()
			result.Breadcrumb = outline.Breadcrumb(roots, node.ID())
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, result)
	case "html":
		markup, err := outline.RenderHTML(roots, navsync.DefaultPagePath(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, markup)
		return nil
	}

	if result.Active == "" {
		fmt.Fprintln(out, "no active heading")
		return nil
	}
	fmt.Fprintf(out, "active: %s\n", result.Active)
	fmt.Fprintf(out, "path:   %s\n", strings.Join(result.Breadcrumb, " > "))
	return nil
}
