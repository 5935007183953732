package ui

import "github.com/olivier-w/ampdeck/internal/deck"

// region is a horizontal run of cells on one screen row.
type region struct {
	row, col, width int
}

func (r region) contains(x, y int) bool {
	return r.width > 0 && y == r.row && x >= r.col && x < r.col+r.width
}

// bar converts r to slider coordinates in cells.
func (r region) bar(thumb int) deck.Bar {
	return deck.Bar{Start: float64(r.col), Width: float64(r.width), Thumb: float64(thumb)}
}

// pointer is the centre of cell x.
func pointer(x int) float64 { return float64(x) + 0.5 }

// scrollbar is a vertical track of rows cells in column col.
type scrollbar struct {
	col, top, rows int
}

func (s scrollbar) contains(x, y int) bool {
	return s.rows > 0 && x == s.col && y >= s.top && y < s.top+s.rows
}

// control is an on-screen button.
type control int

const (
	ctlPrevious control = iota
	ctlPlay
	ctlNext
	ctlLoop
	ctlQueue
	ctlSearch
	ctlSettings
	ctlTheme
)

type button struct {
	r   region
	ctl control
}

// layout records where the last frame drew its interactive parts. View and
// the mouse handler both derive it from compose, so they always agree.
type layout struct {
	buttons  []button
	progress region
	amp      region
	ampLabel region

	// Panel rows are [panelTop, panelEnd). items maps a row to the list
	// index it shows.
	panelTop int
	panelEnd int
	items    map[int]int
	scroll   scrollbar
}

func (l layout) buttonAt(x, y int) (control, bool) {
	for _, b := range l.buttons {
		if b.r.contains(x, y) {
			return b.ctl, true
		}
	}
	return 0, false
}

func (l layout) inPanel(y int) bool { return y >= l.panelTop && y < l.panelEnd }

func (l layout) itemAt(y int) (int, bool) {
	i, ok := l.items[y]
	return i, ok
}

// canvas accumulates the lines of a frame.
type canvas struct {
	lines []string
}

// add appends a line and returns its row.
func (c *canvas) add(line string) int {
	c.lines = append(c.lines, line)
	return len(c.lines) - 1
}

func (c *canvas) next() int { return len(c.lines) }
