package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/navsync"
	"github.com/dgallion1/docnav/internal/sidebar"
	"github.com/spf13/cobra"
)

func newSidebarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sidebar SOURCE",
		Short: "Show sidebar state for a route",
		Long: `SOURCE is a _sidebar.md file, a sidebar.yaml manifest, or a directory of
markdown pages. Prints every entry with its collapse state and the scroll
offset that keeps the current entry in view.`,
		Args: cobra.ExactArgs(1),
		RunE: runSidebar,
	}
	cmd.Flags().String("route", "", "current route, e.g. /notes/intro")
	cmd.Flags().StringSlice("include", nil, "glob patterns of pages to include (directory sources)")
	cmd.Flags().StringSlice("exclude", nil, "glob patterns of pages to exclude (directory sources)")
	return cmd
}

type sidebarResult struct {
	Route        string          `json:"route"`
	Matched      bool            `json:"matched"`
	ScrollOffset *float64        `json:"scroll_offset,omitempty"`
	InView       bool            `json:"in_view"`
	States       []sidebar.State `json:"states"`
}

func runSidebar(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg := config.Load()
	route, _ := cmd.Flags().GetString("route")
	include, _ := cmd.Flags().GetStringSlice("include")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	if len(include) == 0 {
		include = cfg.SidebarInclude
	}
	if len(exclude) == 0 {
		exclude = cfg.SidebarExclude
	}

	roots, err := sidebar.Load(args[0], sidebar.DirOptions{Include: include, Exclude: exclude})
	if err != nil {
		return err
	}
	tree := sidebar.NewTree(roots, navsync.SidebarMetrics(cfg))

	result := sidebarResult{Route: route}
	if route != "" {
		result.Matched = tree.Navigate(route)
	}
	if offset, ok := tree.ScrollOffset(); ok {
		result.ScrollOffset = &offset
		result.InView = tree.InVisibleBand(offset)
	}
	result.States = tree.States()

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return writeJSON(out, result)
	case "html":
		markup, err := tree.RenderHTML()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, markup)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	tree.Walk(func(n *sidebar.Node, depth int) {
		marker := " "
		switch {
		case n.Current:
			marker = "*"
		case n.Collapsible() && n.Collapsed:
			marker = "+"
		case n.Collapsible():
			marker = "-"
		}
		fmt.Fprintf(tw, "%s%s %s\t%s\t%gpx\n", strings.Repeat("  ", depth), marker, n.Label, n.Href, n.Extent)
	})
	if err := tw.Flush(); err != nil {
		return err
	}
	switch {
	case route != "" && !result.Matched:
		fmt.Fprintf(out, "no entry for route %q\n", route)
	case result.ScrollOffset != nil:
		fmt.Fprintf(out, "scroll offset: %gpx\n", *result.ScrollOffset)
	}
	return nil
}
