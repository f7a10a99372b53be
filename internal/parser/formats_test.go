package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/doctree"
)

func TestCSVParser_BatchHeadings(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,value\n")
	for i := 0; i < 25; i++ {
		sb.WriteString("k,v\n")
	}
	p := &CSVParser{}
	doc, err := p.Parse(strings.NewReader(sb.String()), "data.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	headings := doc.Headings()
	if len(headings) != 2 {
		t.Fatalf("expected 2 batch headings, got %d", len(headings))
	}
	if headings[0].Label != "Rows 2-21" || headings[1].Label != "Rows 22-26" {
		t.Errorf("unexpected labels: %q, %q", headings[0].Label, headings[1].Label)
	}
	if headings[0].Level != 2 {
		t.Errorf("expected level 2, got %d", headings[0].Level)
	}
	if len(doc.Blocks) != 4 {
		t.Errorf("expected heading+table per batch, got %d blocks", len(doc.Blocks))
	}
}

func TestPagesToDocument(t *testing.T) {
	doc := pagesToDocument("report", []string{"first page", "  ", "third page"})

	if len(doc.Blocks) != 4 {
		t.Fatalf("expected 4 blocks (blank page skipped), got %d", len(doc.Blocks))
	}
	headings := doc.Headings()
	if headings[0].Label != "Page 1" || headings[1].Label != "Page 3" {
		t.Errorf("expected page numbers to survive skipped pages, got %+v", headings)
	}
	if doc.Blocks[3].Kind != doctree.KindParagraph || doc.Blocks[3].Text != "third page" {
		t.Errorf("unexpected page block %+v", doc.Blocks[3])
	}
}

func TestStyleHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 3", 3},
		{"HEADING6", 6},
		{"Heading7", 0},
		{"Heading10", 0},
		{"Title", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := styleHeadingLevel(tt.style); got != tt.want {
			t.Errorf("styleHeadingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}
