package resolver

import (
	"testing"

	"github.com/dgallion1/docnav/internal/doctree"
	"github.com/dgallion1/docnav/internal/outline"
)

// fixture: p0, H1 a, p2, H2 b, p4, p5, H2 c, p7
func fixture() (*doctree.Document, []*outline.Node) {
	doc := &doctree.Document{}
	doc.Append(&doctree.Block{Kind: doctree.KindParagraph, Text: "preface"})
	doc.Append(&doctree.Block{ID: "a", Kind: doctree.KindHeading, Level: 1, Text: "A"})
	doc.Append(&doctree.Block{Kind: doctree.KindParagraph})
	doc.Append(&doctree.Block{ID: "b", Kind: doctree.KindHeading, Level: 2, Text: "B"})
	doc.Append(&doctree.Block{Kind: doctree.KindParagraph})
	doc.Append(&doctree.Block{Kind: doctree.KindCode})
	doc.Append(&doctree.Block{ID: "c", Kind: doctree.KindHeading, Level: 2, Text: "C"})
	doc.Append(&doctree.Block{Kind: doctree.KindParagraph})
	return doc, outline.Build(doc.Headings())
}

func TestGoverning(t *testing.T) {
	doc, roots := fixture()
	r := New(doc, roots)

	want := []string{"", "a", "a", "b", "b", "b", "c", "c"}
	for i, w := range want {
		g := r.Governing(doc.Blocks[i])
		got := ""
		if g != nil {
			got = g.ID
		}
		if got != w {
			t.Errorf("block %d: expected governing %q, got %q", i, w, got)
		}
	}
}

func TestResolve(t *testing.T) {
	doc, roots := fixture()
	r := New(doc, roots)

	node, changed := r.Resolve(doc.Blocks[5])
	if !changed || node.ID() != "b" || !node.Active() {
		t.Fatalf("expected b to become active, got %v changed=%v", node, changed)
	}

	// Same governing heading again: idempotent.
	if _, changed := r.Resolve(doc.Blocks[4]); changed {
		t.Error("expected no change when resolving to the active entry")
	}

	node, changed = r.Resolve(doc.Blocks[6])
	if !changed || node.ID() != "c" {
		t.Fatalf("expected c to become active, got %v", node)
	}
	if b, _ := r.Lookup("b"); b.Active() {
		t.Error("expected previous entry to be cleared")
	}
}

func TestResolve_NoTargetKeepsActive(t *testing.T) {
	doc, roots := fixture()
	r := New(doc, roots)
	r.Resolve(doc.Blocks[3])

	// Nothing visible.
	if node, changed := r.Resolve(nil); changed || node.ID() != "b" {
		t.Errorf("expected b to stay active, got %v changed=%v", node, changed)
	}
	// Content before the first heading.
	if node, changed := r.Resolve(doc.Blocks[0]); changed || node.ID() != "b" {
		t.Errorf("expected b to stay active, got %v changed=%v", node, changed)
	}
	// Block from another render.
	stranger := &doctree.Block{Index: 3, ID: "b", Kind: doctree.KindHeading, Level: 2}
	if _, changed := r.Resolve(stranger); changed {
		t.Error("expected a foreign block to be ignored")
	}
	if r.Active().ID() != "b" {
		t.Errorf("expected b active, got %s", r.Active().ID())
	}
}

func TestResolve_NothingBeforeFirstHeading(t *testing.T) {
	doc, roots := fixture()
	r := New(doc, roots)
	node, changed := r.Resolve(doc.Blocks[0])
	if node != nil || changed {
		t.Errorf("expected no active entry, got %v", node)
	}
}

func TestActivate(t *testing.T) {
	doc, roots := fixture()
	r := New(doc, roots)

	if _, changed := r.Activate("missing"); changed {
		t.Error("expected unknown id to be ignored")
	}
	node, changed := r.Activate("c")
	if !changed || node.ID() != "c" || r.Active() != node {
		t.Errorf("expected c active, got %v", node)
	}
}

func TestResolve_AtMostOneActive(t *testing.T) {
	doc, roots := fixture()
	r := New(doc, roots)
	for _, i := range []int{1, 3, 7, 2, 0, 5, 6} {
		r.Resolve(doc.Blocks[i])
		active := 0
		outline.Walk(roots, func(n *outline.Node, _ int) bool {
			if n.Active() {
				active++
			}
			return true
		})
		if active > 1 {
			t.Fatalf("after block %d: %d active entries", i, active)
		}
	}
}
