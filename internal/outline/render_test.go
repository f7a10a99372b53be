package outline

import (
	"strings"
	"testing"

	"github.com/dgallion1/docnav/internal/doctree"
)

func TestRenderHTML(t *testing.T) {
	roots := Build([]doctree.Heading{
		{Level: 1, ID: "intro", Label: "Intro"},
		{Level: 2, ID: "a-b", Label: "A & B"},
		{Level: 1, ID: "end", Label: "End"},
	})
	var cell Cell
	cell.Set(roots[0].Children[0])

	got, err := RenderHTML(roots, "/notes/c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wants := []string{
		`<ul class="toc">`,
		`<li><a href="#/notes/c?id=intro" data-id="intro" title="Intro"><span>Intro</span></a>`,
		`<div class="ul-wrapper"><ul><li class="active"><a href="#/notes/c?id=a-b" data-id="a-b" title="A &amp; B"><span>A &amp; B</span></a></li></ul></div>`,
		`<li><a href="#/notes/c?id=end" data-id="end" title="End"><span>End</span></a></li>`,
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("expected output to contain %q\ngot: %s", w, got)
		}
	}
	if strings.Count(got, "ul-wrapper") != 1 {
		t.Errorf("expected a wrapper only around non-empty child lists, got: %s", got)
	}
}

func TestRenderHTML_Empty(t *testing.T) {
	got, err := RenderHTML(Build(nil), "/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `<ul class="toc"></ul>` {
		t.Errorf("expected empty list, got %q", got)
	}
}

func TestEntries(t *testing.T) {
	roots := Build([]doctree.Heading{{Level: 1, ID: "a", Label: "A"}, {Level: 3, ID: "b", Label: "B"}})
	entries := Entries(roots)
	if len(entries) != 1 || len(entries[0].Children) != 1 {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Children[0].Children == nil {
		t.Error("expected empty, non-nil children for JSON output")
	}
}
