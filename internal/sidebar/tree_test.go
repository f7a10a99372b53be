package sidebar

import (
	"fmt"
	"strings"
	"testing"
)

func link(label, href string) *Node {
	return &Node{Label: label, Href: href}
}

func section(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

var testMetrics = Metrics{
	RowHeight:       30,
	ListPadding:     5,
	ProfileHeight:   100,
	Gap:             10,
	FadeHeight:      64,
	ContainerHeight: 200,
}

// longTree: A, S{c0..c9}, B1..B5
func longTree() *Tree {
	var children []*Node
	for i := 0; i < 10; i++ {
		children = append(children, link(fmt.Sprintf("c%d", i), fmt.Sprintf("#/s/c%d", i)))
	}
	roots := []*Node{link("A", "#/a"), section("S", children...)}
	for i := 1; i <= 5; i++ {
		roots = append(roots, link(fmt.Sprintf("B%d", i), fmt.Sprintf("#/b%d", i)))
	}
	return NewTree(roots, testMetrics)
}

func TestNewTree_AssignsIDsAndExpands(t *testing.T) {
	tree := NewTree([]*Node{
		link("Home", "#/"),
		section("Notes", link("Intro", "notes/intro.md"), section("C", link("Ch1", "notes/c/ch1.md"))),
	}, testMetrics)

	notes := tree.Node("1")
	if notes == nil || notes.Label != "Notes" {
		t.Fatalf("expected positional id 1 for Notes, got %+v", notes)
	}
	c := tree.Node("1.1")
	if c == nil || c.Parent() != notes {
		t.Fatalf("expected 1.1 to be C under Notes, got %+v", c)
	}
	if tree.Node("1.1.0").Label != "Ch1" {
		t.Errorf("expected 1.1.0 to be Ch1")
	}

	// Everything starts expanded with bottom-up extents.
	if c.Collapsed || c.Extent != 40 {
		t.Errorf("expected C expanded with extent 40, got collapsed=%v extent=%v", c.Collapsed, c.Extent)
	}
	if notes.Extent != 10+30+30+40 {
		t.Errorf("expected Notes extent to include C's list, got %v", notes.Extent)
	}
	if tree.Current() != nil {
		t.Error("expected no current entry before navigation")
	}
}

func TestNewTree_ExplicitIDsStayUnique(t *testing.T) {
	notes := section("Notes", link("Intro", "#/intro"))
	notes.ID = "guide"
	pinned := section("Pinned", link("Top", "#/top"))
	pinned.ID = "1"
	again := link("Again", "#/again")
	again.ID = "guide"
	plain := section("Plain", link("Sub", "#/sub"))
	tree := NewTree([]*Node{notes, plain, pinned, again}, testMetrics)

	seen := make(map[string]bool)
	tree.Walk(func(n *Node, _ int) {
		if seen[n.ID] {
			t.Errorf("expected unique ids, got %q twice", n.ID)
		}
		seen[n.ID] = true
		if tree.Node(n.ID) != n {
			t.Errorf("expected %q to resolve to %s", n.ID, n.Label)
		}
	})
	if again.ID != "guide-1" {
		t.Errorf("expected repeated id renamed to guide-1, got %q", again.ID)
	}
	if tree.Node("1") != pinned {
		t.Errorf("expected explicit id 1 to keep Pinned, got %+v", tree.Node("1"))
	}
	if plain.ID != "1-1" || tree.Node("1-1.0").Label != "Sub" {
		t.Errorf("expected positional id moved to 1-1, got %q", plain.ID)
	}

	n, ok := tree.Toggle("1")
	if !ok || n != pinned || !pinned.Collapsed {
		t.Errorf("expected toggling 1 to collapse Pinned, got %+v", n)
	}
	if notes.Collapsed || plain.Collapsed {
		t.Error("expected other lists untouched")
	}
}

func TestNavigate_ExpandsOnlyCurrentBranch(t *testing.T) {
	tree := NewTree([]*Node{
		link("Home", "#/"),
		section("Notes",
			link("Intro", "#/notes/intro"),
			section("C", link("P", "#/notes/c/p"), link("Q", "#/notes/c/q")),
			section("D", link("R", "#/notes/d/r")),
		),
		section("Other", link("X", "#/other/x")),
	}, testMetrics)

	if !tree.Navigate("/notes/c/p") {
		t.Fatal("expected route to match")
	}

	cur := tree.Current()
	if cur == nil || cur.Label != "P" || !cur.Current {
		t.Fatalf("expected P current, got %+v", cur)
	}

	onPath := map[string]bool{"Notes": true, "C": true}
	tree.Walk(func(n *Node, _ int) {
		if !n.Collapsible() {
			return
		}
		if n.Collapsed == onPath[n.Label] {
			t.Errorf("%s: collapsed=%v, want %v", n.Label, n.Collapsed, !onPath[n.Label])
		}
		if n.Collapsed && n.Extent != 0 {
			t.Errorf("%s: collapsed entry has extent %v", n.Label, n.Extent)
		}
		if !n.Collapsed && n.Extent == 0 {
			t.Errorf("%s: expanded entry has zero extent", n.Label)
		}
	})

	// Moving on clears the previous current entry.
	tree.Navigate("/other/x")
	currents := 0
	tree.Walk(func(n *Node, _ int) {
		if n.Current {
			currents++
		}
	})
	if currents != 1 || tree.Current().Label != "X" {
		t.Errorf("expected only X current, got %d current entries", currents)
	}
	if !tree.Node("1").Collapsed || tree.Node("2").Collapsed {
		t.Error("expected Notes collapsed and Other expanded")
	}
}

func TestNavigate_UnknownRouteLeavesState(t *testing.T) {
	tree := longTree()
	tree.Navigate("/s/c2")
	before := tree.States()

	if tree.Navigate("/nowhere") {
		t.Fatal("expected no match")
	}
	after := tree.States()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("entry %s changed: %+v -> %+v", before[i].ID, before[i], after[i])
		}
	}
}

func TestNavigate_FirstMatchWins(t *testing.T) {
	tree := NewTree([]*Node{
		section("One", link("Readme", "one/README.md")),
		section("Two", link("Readme", "two/README.md")),
	}, testMetrics)
	tree.Navigate("/three/README")
	if tree.Current() != tree.Node("0.0") {
		t.Errorf("expected first matching entry, got %+v", tree.Current())
	}
}

func TestScrollOffset_NestedEntryShowsList(t *testing.T) {
	tree := longTree()
	tree.Navigate("/s/c2")

	offset, ok := tree.ScrollOffset()
	if !ok {
		t.Fatal("expected an offset")
	}
	// S's first child row sits below A, S and the list padding.
	if offset != 65 {
		t.Errorf("expected offset 65, got %v", offset)
	}
	if !tree.InVisibleBand(offset) {
		t.Error("expected current entry inside the visible band")
	}
}

func TestScrollOffset_BiasAwayFromFadeBand(t *testing.T) {
	tree := longTree()
	tree.Navigate("/s/c7")

	offset, ok := tree.ScrollOffset()
	if !ok {
		t.Fatal("expected an offset")
	}
	// c7 would sit 210px below the first child row, past the 136px visible
	// band, so the entry itself is scrolled to the top.
	if offset != 275 {
		t.Errorf("expected offset 275, got %v", offset)
	}
	if !tree.InVisibleBand(offset) {
		t.Error("expected current entry inside the visible band")
	}
	if tree.InVisibleBand(60) {
		t.Error("expected list-top offset to leave the entry under the fade band")
	}
}

func TestScrollOffset_TopLevelClamped(t *testing.T) {
	tree := longTree()
	tree.Navigate("/b3")

	offset, ok := tree.ScrollOffset()
	if !ok {
		t.Fatal("expected an offset")
	}
	// B3 sits at 120 but the nav is only 210 tall plus 64 of fade padding
	// in a 200 container.
	if offset != 74 {
		t.Errorf("expected clamped offset 74, got %v", offset)
	}
	if tree.ContentHeight() != 274 {
		t.Errorf("expected content height 274, got %v", tree.ContentHeight())
	}
	if !tree.InVisibleBand(offset) {
		t.Error("expected current entry inside the visible band")
	}
}

func TestScrollOffset_LastEntryClearsFadeBand(t *testing.T) {
	var roots []*Node
	for i := 0; i < 25; i++ {
		roots = append(roots, link(fmt.Sprintf("P%d", i), fmt.Sprintf("#/p%d", i)))
	}
	tree := NewTree(roots, DefaultMetrics())
	if !tree.Navigate("/p24") {
		t.Fatal("expected /p24 to match")
	}

	offset, ok := tree.ScrollOffset()
	if !ok {
		t.Fatal("expected an offset")
	}
	if tree.ContentHeight() != 864 {
		t.Errorf("expected content height 864, got %v", tree.ContentHeight())
	}
	if offset != 264 {
		t.Errorf("expected offset 264, got %v", offset)
	}
	if !tree.InVisibleBand(offset) {
		t.Errorf("expected last entry inside the visible band at offset %v", offset)
	}
}

func TestScrollOffset_NoCurrent(t *testing.T) {
	tree := longTree()
	if _, ok := tree.ScrollOffset(); ok {
		t.Error("expected no offset without a current entry")
	}
	if tree.InVisibleBand(0) {
		t.Error("expected false without a current entry")
	}

	empty := NewTree(nil, testMetrics)
	if empty.Navigate("/x") {
		t.Error("expected no match in an empty tree")
	}
	if _, ok := empty.ScrollOffset(); ok {
		t.Error("expected no offset in an empty tree")
	}
}

func TestToggle(t *testing.T) {
	tree := NewTree([]*Node{
		section("Notes", link("Intro", "#/intro"), section("C", link("P", "#/p"), link("Q", "#/q"))),
	}, testMetrics)
	notes, c := tree.Node("0"), tree.Node("0.1")
	full := notes.Extent

	n, ok := tree.Toggle("0.1")
	if !ok || n != c || !c.Collapsed || c.Extent != 0 {
		t.Fatalf("expected C collapsed, got %+v", c)
	}
	if notes.Extent != full-70 {
		t.Errorf("expected Notes to shrink by C's list, got %v (was %v)", notes.Extent, full)
	}

	tree.Toggle("0.1")
	if c.Collapsed || c.Extent != 70 {
		t.Errorf("expected C re-expanded to 70, got %+v", c)
	}
	if notes.Extent != full {
		t.Errorf("expected Notes back to %v, got %v", full, notes.Extent)
	}

	if _, ok := tree.Toggle("0.0"); ok {
		t.Error("expected leaf entries not to toggle")
	}
	if _, ok := tree.Toggle("nope"); ok {
		t.Error("expected unknown ids not to toggle")
	}
}

func TestRenderHTML(t *testing.T) {
	tree := NewTree([]*Node{
		link("Home", "#/"),
		section("Notes", link("P", "#/notes/p")),
		section("Other", link("X", "#/other/x")),
	}, testMetrics)
	tree.Navigate("/notes/p")

	got, err := tree.RenderHTML()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wants := []string{
		`<ul class="sidebar-nav" style="padding-block-end: 64px">`,
		`<li data-id="0"><a href="#/" title="Home">Home</a></li>`,
		`<li data-id="1" class="collapsible"><p>Notes</p><ul style="max-block-size: 40px"><li data-id="1.0" class="current"><a href="#/notes/p" title="P">P</a></li></ul></li>`,
		`<li data-id="2" class="collapsible close"><p>Other</p><ul style="max-block-size: 0px">`,
	}
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("expected output to contain %q\ngot: %s", w, got)
		}
	}
}

func TestPageName(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"/notes/c/intro", "intro"},
		{"#/notes/c/intro", "intro"},
		{"notes/c/intro.md", "intro"},
		{"#/notes/c/intro?id=x", "intro"},
		{"/notes/%E7%B7%A8%E8%AD%AF%E5%99%A8", "編譯器"},
		{"#/", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		if got := PageName(tt.ref); got != tt.want {
			t.Errorf("PageName(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestClone_IndependentState(t *testing.T) {
	src := []*Node{section("Notes", link("P", "#/p")), section("Other", link("X", "#/x"))}
	a := NewTree(Clone(src), testMetrics)
	b := NewTree(Clone(src), testMetrics)

	a.Navigate("/p")
	if !a.Node("1").Collapsed {
		t.Error("expected Other collapsed in the navigated tree")
	}
	if b.Node("1").Collapsed || b.Current() != nil {
		t.Error("expected the second tree untouched")
	}
	if src[0].Children[0].Current || src[0].ID != "" {
		t.Error("expected source entries untouched")
	}
}
