package deck

import (
	"log/slog"
	"time"
)

// SeekStep is the keyboard seek distance.
const SeekStep = 5 * time.Second

// Progress tracks elapsed time while playing.
type Progress struct {
	s *session

	elapsed  time.Duration
	duration time.Duration
	dragging bool
}

func (p *Progress) Elapsed() time.Duration  { return p.elapsed }
func (p *Progress) Duration() time.Duration { return p.duration }
func (p *Progress) Dragging() bool          { return p.dragging }

// Running reports whether the periodic tick is armed.
func (p *Progress) Running() bool { return p.s.armed[TimerProgress] }

// Percent is elapsed/duration in [0, 100], or 0 while the duration is
// unknown.
func (p *Progress) Percent() float64 {
	if p.duration <= 0 {
		return 0
	}
	return max(0, min(float64(p.elapsed)/float64(p.duration)*100, 100))
}

// Start arms the 100ms tick, replacing a running one.
func (p *Progress) Start() { p.s.arm(TimerProgress) }

// Stop disarms the tick.
func (p *Progress) Stop() { p.s.cancel(TimerProgress) }

func (p *Progress) tick() {
	p.Recompute()
	p.s.arm(TimerProgress)
}

// Recompute reads the engine clock and publishes the new position.
func (p *Progress) Recompute() {
	if d := p.s.engine.Duration(); d > 0 {
		p.duration = d
	}
	p.elapsed = max(0, p.s.engine.CurrentTime())
	if p.duration > 0 {
		p.elapsed = min(p.elapsed, p.duration)
	}
	p.s.notify(EventProgress)
}

func (p *Progress) setDuration(d time.Duration) {
	p.duration = max(0, d)
}

func (p *Progress) reset() {
	p.elapsed = 0
	p.duration = 0
	p.s.notify(EventProgress)
}

// SeekToPointer maps pos linearly across bar to [0, duration] and seeks
// there. Without a known duration the seek is rejected.
func (p *Progress) SeekToPointer(pos float64, bar Bar) bool {
	if p.duration <= 0 || bar.Width <= 0 {
		return false
	}
	x := max(0, min(pos-bar.Start, bar.Width))
	return p.seek(time.Duration(float64(p.duration) * x / bar.Width))
}

// SeekBy moves the position by delta, clamped to the track.
func (p *Progress) SeekBy(delta time.Duration) bool {
	if p.duration <= 0 {
		return false
	}
	return p.seek(max(0, min(p.elapsed+delta, p.duration)))
}

func (p *Progress) seek(to time.Duration) bool {
	if err := p.s.engine.Seek(to); err != nil {
		slog.Debug("seek rejected", "to", to, "err", err)
		return false
	}
	p.Recompute()
	return true
}

// StartDrag begins a scrubber drag.
func (p *Progress) StartDrag() { p.dragging = true }

// EndDrag finishes a scrubber drag.
func (p *Progress) EndDrag() { p.dragging = false }
