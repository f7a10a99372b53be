package main

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docnav/internal/config"
	"github.com/dgallion1/docnav/internal/navsync"
	"github.com/dgallion1/docnav/internal/outline"
	"github.com/spf13/cobra"
)

func newTOCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toc FILE",
		Short: "Print the table of contents of a document",
		Args:  cobra.ExactArgs(1),
		RunE:  runTOC,
	}
	cmd.Flags().String("page-path", "", "route used in TOC links (default: /<file name>)")
	return cmd
}

func runTOC(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	doc, err := loadDocument(args[0], config.Load())
	if err != nil {
		return err
	}
	roots := outline.Build(doc.Headings())
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		return writeJSON(out, outline.Entries(roots))
	case "html":
		pagePath, _ := cmd.Flags().GetString("page-path")
		if pagePath == "" {
			pagePath = navsync.DefaultPagePath(args[0])
		}
		markup, err := outline.RenderHTML(roots, pagePath)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, markup)
		return nil
	}

	if outline.Count(roots) == 0 {
		fmt.Fprintln(out, "(no headings)")
		return nil
	}
	outline.Walk(roots, func(n *outline.Node, depth int) bool {
		fmt.Fprintf(out, "%s- %s  #%s\n", strings.Repeat("  ", depth), n.Heading.Label, n.ID())
		return true
	})
	return nil
}
