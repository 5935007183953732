package deck

// Queue is the cursor over the full catalog shown by the queue panel.
type Queue struct {
	s *session

	selected int
}

// Selected is the cursor position, or -1 while the queue is closed.
func (q *Queue) Selected() int { return q.selected }

func (q *Queue) seed(i int) {
	q.selected = i
	q.s.notify(EventQueue)
}

func (q *Queue) reset() {
	q.selected = -1
}

// MoveDown advances the cursor, wrapping over the catalog.
func (q *Queue) MoveDown() {
	n := q.s.cat.Len()
	if n == 0 {
		return
	}
	if q.selected < 0 {
		q.selected = 0
	} else {
		q.selected = (q.selected + 1) % n
	}
	q.s.notify(EventQueue)
}

// MoveUp moves the cursor back, wrapping over the catalog.
func (q *Queue) MoveUp() {
	n := q.s.cat.Len()
	if n == 0 {
		return
	}
	if q.selected < 0 {
		q.selected = n - 1
	} else {
		q.selected = (q.selected - 1 + n) % n
	}
	q.s.notify(EventQueue)
}
