package deck

import (
	"testing"

	"github.com/olivier-w/ampdeck/internal/catalog"
)

func titles(ts []catalog.Track) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankPrefixBeforeContains(t *testing.T) {
	tracks := catalog.New([]catalog.Track{
		{Title: "Creep", Artist: "the ever-present band"},
		{Title: "Rooster", Artist: "Alice in Chains"},
		{Title: "Everlong", Artist: "Foo Fighters"},
		{Title: "Whatever", Artist: "Oasis"},
	}, nil).Tracks()

	got := titles(Rank("EVER", tracks))
	want := []string{"Everlong", "Creep", "Whatever"}
	if !equalStrings(got, want) {
		t.Fatalf("Rank(EVER) = %v, want %v", got, want)
	}
}

func TestRankMatchesArtistPrefix(t *testing.T) {
	got := titles(Rank("dEf", testTracks))
	if !equalStrings(got, []string{"Be Quiet and Drive"}) {
		t.Fatalf("Rank(dEf) = %v", got)
	}
}

func TestRankBlankAndMissing(t *testing.T) {
	if got := Rank("   ", testTracks); len(got) != 0 {
		t.Fatalf("Rank(blank) = %v, want empty", titles(got))
	}
	if got := Rank("zzz", testTracks); len(got) != 0 {
		t.Fatalf("Rank(zzz) = %v, want empty", titles(got))
	}
}

func TestSearchDebounce(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)

	d.Search.SetQuery("ro")
	first, _ := h.last(TimerSearch)
	d.Search.SetQuery("roo")
	last, _ := h.last(TimerSearch)

	d.Fire(first)
	if len(d.Search.Results()) != 0 {
		t.Fatalf("ranked on a stale keystroke")
	}
	d.Fire(last)
	if got := titles(d.Search.Results()); !equalStrings(got, []string{"Rooster"}) {
		t.Fatalf("Results() = %v, want [Rooster]", got)
	}
}

func TestSearchNoResultsState(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)

	if d.Search.NoResults() {
		t.Fatalf("NoResults() before any query")
	}
	d.Search.SetQuery("nothing matches this")
	fireLast(d, h, TimerSearch)
	if !d.Search.NoResults() {
		t.Fatalf("NoResults() = false for unmatched query")
	}
	if d.Panels.State() != PanelSearch {
		t.Fatalf("panel = %v, want search to stay open", d.Panels.State())
	}
}

func TestSearchCursorWrapsOverResults(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)
	d.Search.SetQuery("e")
	fireLast(d, h, TimerSearch)
	n := len(d.Search.Results())
	if n < 2 {
		t.Fatalf("need at least two results, got %d", n)
	}

	d.Search.MoveUp()
	if d.Search.Selected() != n-1 {
		t.Fatalf("MoveUp() from none = %d, want %d", d.Search.Selected(), n-1)
	}
	d.Search.MoveDown()
	if d.Search.Selected() != 0 {
		t.Fatalf("MoveDown() past end = %d, want 0", d.Search.Selected())
	}
	d.Search.MoveUp()
	if d.Search.Selected() != n-1 {
		t.Fatalf("MoveUp() past start = %d, want %d", d.Search.Selected(), n-1)
	}
}

func TestCommitSearchDefaultsToFirstMatch(t *testing.T) {
	d, b, h := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)
	d.Search.SetQuery("creep")
	fireLast(d, h, TimerSearch)

	if !d.CommitSearch() {
		t.Fatalf("CommitSearch() = false")
	}
	if d.Transport.Index() != 4 || !d.Transport.Playing() {
		t.Fatalf("index %d playing %v, want 4 true", d.Transport.Index(), d.Transport.Playing())
	}
	if b.loads[len(b.loads)-1] != "msc/creep.mp3" {
		t.Fatalf("last load = %q", b.loads[len(b.loads)-1])
	}
	if d.Search.Query() != "" || d.Search.Results() != nil || d.Search.Selected() != -1 {
		t.Fatalf("search session not cleared")
	}
	if d.Panels.State() != PanelClosed {
		t.Fatalf("panel = %v, want closed", d.Panels.State())
	}
}

func TestCommitSearchUsesSelectionAndFlushesDebounce(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)
	d.Search.SetQuery("r")
	fireLast(d, h, TimerSearch)
	d.Search.MoveDown()
	d.Search.MoveDown()
	want := d.Search.Results()[1].Index
	if !d.CommitSearch() {
		t.Fatalf("CommitSearch() = false")
	}
	if d.Transport.Index() != want {
		t.Fatalf("Index() = %d, want %d", d.Transport.Index(), want)
	}

	d.Panels.Open(PanelSearch)
	d.Search.SetQuery("tear")
	if !d.CommitSearch() {
		t.Fatalf("CommitSearch() with pending debounce = false")
	}
	if d.Transport.Index() != 2 {
		t.Fatalf("Index() = %d, want 2", d.Transport.Index())
	}
	if d.TimerActive(TimerSearch) {
		t.Fatalf("debounce still armed after commit")
	}
}

func TestCommitSearchWithoutResults(t *testing.T) {
	d, b, _ := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)
	loads := len(b.loads)
	if d.CommitSearch() {
		t.Fatalf("CommitSearch() = true with no results")
	}
	if len(b.loads) != loads || d.Panels.State() != PanelSearch {
		t.Fatalf("commit without results changed state")
	}
}

func TestClosingSearchDiscardsSession(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	d.Panels.Open(PanelSearch)
	d.Search.SetQuery("creep")
	pending, _ := h.last(TimerSearch)

	d.Panels.Close()
	d.Fire(pending)
	if d.Search.Query() != "" || len(d.Search.Results()) != 0 {
		t.Fatalf("search session survived close")
	}
}
