package doctree

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"  A & B  ", "a-b"},
		{"編譯器 Basics", "編譯器-basics"},
		{"v1.2 -- notes", "v1-2-notes"},
		{"!!!", ""},
		{strings.Repeat("ab ", 40), strings.TrimRight(strings.Repeat("ab-", 22)[:64], "-")},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIDSet_Unique(t *testing.T) {
	ids := NewIDSet()
	got := []string{
		ids.Unique("intro"),
		ids.Unique("intro"),
		ids.Unique("intro"),
		ids.Unique(""),
		ids.Unique(""),
	}
	want := []string{"intro", "intro-1", "intro-2", "section", "section-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestDocument_AppendAndHeadings(t *testing.T) {
	doc := &Document{}
	doc.Append(&Block{Kind: KindParagraph, Text: "lead"})
	doc.Append(&Block{ID: "a", Kind: KindHeading, Level: 1, Text: "A"})
	doc.Append(&Block{ID: "bad", Kind: KindHeading, Level: 9, Text: "Bad"})

	if doc.Blocks[0].ID != "block-0" || doc.Blocks[2].Index != 2 {
		t.Errorf("expected synthetic id and index, got %+v", doc.Blocks)
	}
	hs := doc.Headings()
	if len(hs) != 1 || hs[0] != (Heading{Level: 1, ID: "a", Label: "A"}) {
		t.Errorf("expected only the valid heading, got %+v", hs)
	}
	if doc.Block("a") != doc.Blocks[1] || doc.Block("zzz") != nil {
		t.Error("unexpected block lookup")
	}
}

func TestDocument_HashIgnoresGeometry(t *testing.T) {
	build := func(text string) *Document {
		doc := &Document{}
		doc.Append(&Block{ID: "a", Kind: KindHeading, Level: 1, Text: "A"})
		doc.Append(&Block{Kind: KindParagraph, Text: text})
		return doc
	}
	d1, d2 := build("body"), build("body")
	d2.Blocks[1].Top, d2.Blocks[1].Height = 300, 42
	if d1.Hash() != d2.Hash() {
		t.Error("expected geometry not to change the hash")
	}
	if d1.Hash() == build("other").Hash() {
		t.Error("expected content changes to change the hash")
	}
}

func TestDocument_AppendKeepsIDsUnique(t *testing.T) {
	doc := &Document{}
	doc.Append(&Block{Kind: KindParagraph, Text: "lead"})
	doc.Append(&Block{ID: "block-0", Kind: KindHeading, Level: 1, Text: "Block 0"})
	doc.Append(&Block{ID: "block-3", Kind: KindHeading, Level: 2, Text: "Block 3"})
	doc.Append(&Block{Kind: KindParagraph, Text: "body"})
	doc.Append(&Block{ID: "", Kind: KindHeading, Level: 2, Text: "!!!"})

	want := []string{"block-0", "block-0-1", "block-3", "block-3-1", "section"}
	for i, b := range doc.Blocks {
		if b.ID != want[i] {
			t.Errorf("block %d: expected id %q, got %q", i, want[i], b.ID)
		}
	}
	if doc.Block("block-0-1").Text != "Block 0" {
		t.Error("expected the renamed heading to be found by its id")
	}
}

func TestDocument_AppendAfterLiteralBlocks(t *testing.T) {
	doc := &Document{Blocks: []*Block{{ID: "intro", Kind: KindHeading, Level: 1, Text: "Intro"}}}
	doc.Append(&Block{ID: "intro", Kind: KindHeading, Level: 2, Text: "Intro again"})
	if doc.Blocks[1].ID != "intro-1" || doc.Blocks[1].Index != 1 {
		t.Errorf("expected intro-1 at index 1, got %q at %d", doc.Blocks[1].ID, doc.Blocks[1].Index)
	}
}
