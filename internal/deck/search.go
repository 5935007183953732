package deck

import (
	"strings"

	"github.com/samber/lo"

	"github.com/olivier-w/ampdeck/internal/catalog"
)

// Rank returns the tracks matching query, case-insensitively, against
// title or artist. Tracks where either field starts with the query come
// first, then those that only contain it; catalog order is kept inside
// each tier. A blank query matches nothing.
func Rank(query string, tracks []catalog.Track) []catalog.Track {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	fields := func(t catalog.Track) []string {
		return []string{strings.ToLower(t.Title), strings.ToLower(t.Artist)}
	}
	prefix, rest := lo.FilterReject(tracks, func(t catalog.Track, _ int) bool {
		return lo.SomeBy(fields(t), func(f string) bool { return strings.HasPrefix(f, q) })
	})
	contains := lo.Filter(rest, func(t catalog.Track, _ int) bool {
		return lo.SomeBy(fields(t), func(f string) bool { return strings.Contains(f, q) })
	})
	return append(prefix, contains...)
}

// Search is the session behind the search panel.
type Search struct {
	s *session

	query    string
	results  []catalog.Track
	selected int
	ranked   bool
}

func (s *Search) Query() string            { return s.query }
func (s *Search) Results() []catalog.Track { return s.results }

// Selected is the cursor position in Results, or -1 for none.
func (s *Search) Selected() int { return s.selected }

// Pending reports whether a re-rank is waiting for input to settle.
func (s *Search) Pending() bool { return s.s.armed[TimerSearch] }

// NoResults reports a settled, non-blank query that matched nothing.
func (s *Search) NoResults() bool {
	return s.ranked && strings.TrimSpace(s.query) != "" && len(s.results) == 0
}

// SetQuery records the input and re-arms the 300ms debounce.
func (s *Search) SetQuery(q string) {
	if q == s.query && s.ranked {
		return
	}
	s.query = q
	s.s.arm(TimerSearch)
}

func (s *Search) rank() {
	s.results = Rank(s.query, s.s.cat.Tracks())
	s.selected = -1
	s.ranked = true
	s.s.notify(EventSearch)
}

// MoveDown advances the cursor, wrapping over the results.
func (s *Search) MoveDown() {
	n := len(s.results)
	if n == 0 {
		return
	}
	if s.selected < 0 {
		s.selected = 0
	} else {
		s.selected = (s.selected + 1) % n
	}
	s.s.notify(EventSearch)
}

// MoveUp moves the cursor back, wrapping over the results.
func (s *Search) MoveUp() {
	n := len(s.results)
	if n == 0 {
		return
	}
	if s.selected < 0 {
		s.selected = n - 1
	} else {
		s.selected = (s.selected - 1 + n) % n
	}
	s.s.notify(EventSearch)
}

// Hover moves the cursor to result i.
func (s *Search) Hover(i int) {
	if i >= 0 && i < len(s.results) {
		s.selected = i
		s.s.notify(EventSearch)
	}
}

// commit resolves the chosen track and clears the session. A pending
// debounce is flushed first so the latest input is what gets committed.
func (s *Search) commit() (int, bool) {
	if s.Pending() {
		s.s.cancel(TimerSearch)
		s.rank()
	}
	if len(s.results) == 0 {
		return 0, false
	}
	target := s.results[max(s.selected, 0)].Index
	s.reset()
	return target, true
}

func (s *Search) reset() {
	s.s.cancel(TimerSearch)
	s.query = ""
	s.results = nil
	s.selected = -1
	s.ranked = false
	s.s.notify(EventSearch)
}
