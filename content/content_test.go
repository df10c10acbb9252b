package content

import (
	"strings"
	"testing"

	"github.com/eringen/spacetraveling/richtext"
)

func refsOf(uids ...string) []PostRef {
	refs := make([]PostRef, len(uids))
	for i, u := range uids {
		refs[i] = PostRef{UID: u, Title: "Title " + u}
	}
	return refs
}

func uidOf(r *PostRef) string {
	if r == nil {
		return ""
	}
	return r.UID
}

func TestResolveNeighbors(t *testing.T) {
	posts := refsOf("A", "B", "C")
	tests := []struct {
		uid      string
		wantPrev string
		wantNext string
	}{
		{"B", "A", "C"},
		{"A", "", "B"},
		{"C", "B", ""},
		{"Z", "", ""},
	}
	for _, tt := range tests {
		got := ResolveNeighbors(posts, tt.uid)
		if uidOf(got.Previous) != tt.wantPrev {
			t.Errorf("ResolveNeighbors(%q).Previous = %q, want %q", tt.uid, uidOf(got.Previous), tt.wantPrev)
		}
		if uidOf(got.Next) != tt.wantNext {
			t.Errorf("ResolveNeighbors(%q).Next = %q, want %q", tt.uid, uidOf(got.Next), tt.wantNext)
		}
	}
}

func TestResolveNeighborsCarriesTitle(t *testing.T) {
	got := ResolveNeighbors(refsOf("A", "B", "C"), "B")
	if got.Previous.Title != "Title A" || got.Next.Title != "Title C" {
		t.Errorf("titles = %q, %q", got.Previous.Title, got.Next.Title)
	}
}

func TestResolveNeighborsSingleAndEmpty(t *testing.T) {
	got := ResolveNeighbors(refsOf("A"), "A")
	if got.Previous != nil || got.Next != nil {
		t.Errorf("single post should have no neighbors, got %+v", got)
	}
	got = ResolveNeighbors(nil, "A")
	if got.Previous != nil || got.Next != nil {
		t.Errorf("empty feed should have no neighbors, got %+v", got)
	}
}

func TestResolveNeighborsDoesNotAliasInput(t *testing.T) {
	posts := refsOf("A", "B", "C")
	got := ResolveNeighbors(posts, "B")
	got.Previous.Title = "changed"
	if posts[0].Title != "Title A" {
		t.Errorf("input was mutated: %q", posts[0].Title)
	}
}

func TestRefs(t *testing.T) {
	posts := []Post{{UID: "a", Title: "First"}, {UID: "b", Title: "Second"}}
	refs := Refs(posts)
	if len(refs) != 2 || refs[0] != (PostRef{UID: "a", Title: "First"}) || refs[1].UID != "b" {
		t.Errorf("Refs = %+v", refs)
	}
}

func TestHasNextPage(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"https://repo.cdn.prismic.io/api/v2/documents/search?page=2", true},
	}
	for _, tt := range tests {
		if got := HasNextPage(tt.token); got != tt.want {
			t.Errorf("HasNextPage(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func section(words int) Section {
	return Section{Body: richtext.RichText{{Type: "paragraph", Text: strings.TrimSpace(strings.Repeat("word ", words))}}}
}

func TestEstimateReadingTime(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
		want     int
	}{
		{"ten words", []Section{{Body: richtext.RichText{{Type: "paragraph", Text: "one two three four five six seven eight nine ten"}}}}, 1},
		{"400 plus 1", []Section{section(400), section(1)}, 3},
		{"block-wise ceiling", []Section{section(201), section(201)}, 4},
		{"exact multiple", []Section{section(200)}, 1},
		{"empty section", []Section{{}}, 0},
		{"no sections", nil, 0},
	}
	for _, tt := range tests {
		if got := EstimateReadingTime(tt.sections); got != tt.want {
			t.Errorf("%s: EstimateReadingTime = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestEstimateReadingTimeCountsAcrossBlocks(t *testing.T) {
	// Two 150-word paragraphs in one section share a single ceiling.
	body := richtext.RichText{
		{Type: "paragraph", Text: strings.TrimSpace(strings.Repeat("a ", 150))},
		{Type: "paragraph", Text: strings.TrimSpace(strings.Repeat("b ", 150))},
	}
	if got := EstimateReadingTime([]Section{{Heading: "h", Body: body}}); got != 2 {
		t.Errorf("EstimateReadingTime = %d, want 2", got)
	}
}

func TestEstimateReadingTimeCollapsesWhitespace(t *testing.T) {
	body := richtext.RichText{{Type: "paragraph", Text: "  one\n\ntwo\t three  "}}
	if got := EstimateReadingTime([]Section{{Body: body}}); got != 1 {
		t.Errorf("EstimateReadingTime = %d, want 1", got)
	}
}
