package deck

import (
	"math"
	"testing"
	"time"
)

func TestPercentWithUnknownDurationIsZero(t *testing.T) {
	d, b, h := newTestDeck(t, testTracks)
	d.Transport.TogglePlayPause()
	b.current = 30 * time.Second

	fireLast(d, h, TimerProgress)
	p := d.Progress.Percent()
	if p != 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		t.Fatalf("Percent() = %v with unknown duration, want 0", p)
	}

	b.metadata(2 * time.Minute)
	if got := d.Progress.Percent(); got != 25 {
		t.Fatalf("Percent() = %v, want 25", got)
	}
}

func TestStartTwiceLeavesOneTimer(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)

	d.Progress.Start()
	d.Progress.Start()
	d.Progress.Stop()

	before := len(h.timers)
	events := len(h.events)
	for _, tm := range h.timers {
		d.Fire(tm)
	}
	if len(h.timers) != before {
		t.Fatalf("stale tick re-armed the progress timer")
	}
	for _, e := range h.events[events:] {
		if e == EventProgress {
			t.Fatalf("stale tick published progress after Stop")
		}
	}
	if d.Progress.Running() {
		t.Fatalf("Running() = true after Stop")
	}
}

func TestRestartingSupersedesPendingTick(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)

	d.Progress.Start()
	first, _ := h.last(TimerProgress)
	d.Progress.Start()
	second, _ := h.last(TimerProgress)

	d.Fire(first)
	if n := h.count(TimerProgress); n != 2 {
		t.Fatalf("stale tick re-armed: %d progress timers scheduled, want 2", n)
	}
	d.Fire(second)
	if n := h.count(TimerProgress); n != 3 {
		t.Fatalf("live tick did not re-arm: %d progress timers, want 3", n)
	}
}

func TestSeekToPointer(t *testing.T) {
	d, b, h := newTestDeck(t, testTracks)
	bar := Bar{Start: 10, Width: 200}

	if d.Progress.SeekToPointer(50, bar) {
		t.Fatalf("SeekToPointer() accepted with unknown duration")
	}
	if len(b.seeks) != 0 {
		t.Fatalf("seeks = %v, want none", b.seeks)
	}

	b.metadata(100 * time.Second)
	events := len(h.events)
	if !d.Progress.SeekToPointer(60, bar) {
		t.Fatalf("SeekToPointer() rejected")
	}
	if b.seeks[0] != 25*time.Second {
		t.Fatalf("seek = %v, want 25s", b.seeks[0])
	}
	if d.Progress.Elapsed() != 25*time.Second || d.Progress.Percent() != 25 {
		t.Fatalf("progress not recomputed immediately: %v %v", d.Progress.Elapsed(), d.Progress.Percent())
	}
	if len(h.events) == events {
		t.Fatalf("no progress notification after seek")
	}

	d.Progress.SeekToPointer(-40, bar)
	d.Progress.SeekToPointer(999, bar)
	if b.seeks[1] != 0 || b.seeks[2] != 100*time.Second {
		t.Fatalf("edge seeks = %v, want 0 and 100s", b.seeks[1:])
	}
}

func TestSeekByClamps(t *testing.T) {
	d, b, _ := newTestDeck(t, testTracks)
	if d.Progress.SeekBy(SeekStep) {
		t.Fatalf("SeekBy() accepted with unknown duration")
	}

	b.metadata(12 * time.Second)
	b.current = 3 * time.Second
	d.Progress.Recompute()

	d.Progress.SeekBy(-SeekStep)
	if d.Progress.Elapsed() != 0 {
		t.Fatalf("Elapsed() = %v, want 0", d.Progress.Elapsed())
	}
	d.Progress.SeekBy(SeekStep)
	d.Progress.SeekBy(SeekStep)
	d.Progress.SeekBy(SeekStep)
	if d.Progress.Elapsed() != 12*time.Second {
		t.Fatalf("Elapsed() = %v, want clamped to 12s", d.Progress.Elapsed())
	}
}

func TestElapsedNeverExceedsDuration(t *testing.T) {
	d, b, _ := newTestDeck(t, testTracks)
	b.metadata(10 * time.Second)
	b.current = 11 * time.Second
	d.Progress.Recompute()
	if d.Progress.Elapsed() != 10*time.Second || d.Progress.Percent() != 100 {
		t.Fatalf("elapsed %v percent %v, want clamped", d.Progress.Elapsed(), d.Progress.Percent())
	}
}
