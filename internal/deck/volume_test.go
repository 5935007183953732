package deck

import "testing"

func TestVolumeStepClampsAtBounds(t *testing.T) {
	d, b, _ := newTestDeck(t, testTracks)

	d.Volume.SetLevel(0.98)
	d.Volume.Increase()
	if d.Volume.Level() != 1.0 {
		t.Fatalf("Increase() from 0.98 = %v, want 1.0", d.Volume.Level())
	}
	d.Volume.Increase()
	if d.Volume.Level() != 1.0 {
		t.Fatalf("Increase() at 1.0 = %v, want 1.0", d.Volume.Level())
	}

	d.Volume.SetLevel(0.02)
	d.Volume.Decrease()
	if d.Volume.Level() != 0.0 {
		t.Fatalf("Decrease() from 0.02 = %v, want 0.0", d.Volume.Level())
	}
	if b.volume != 0 {
		t.Fatalf("backend volume = %v, want 0", b.volume)
	}
}

func TestVolumeStepsStayOnHundredths(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Volume.SetLevel(0)
	for i := 0; i < 7; i++ {
		d.Volume.Increase()
	}
	if d.Volume.Level() != 0.35 {
		t.Fatalf("Level() = %v, want 0.35", d.Volume.Level())
	}
	if d.Volume.Percent() != 35 {
		t.Fatalf("Percent() = %d, want 35", d.Volume.Percent())
	}
}

func TestSetFromPointerClampsRawOffset(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	bar := Bar{Start: 10, Width: 120, Thumb: 20}

	tests := []struct {
		pos  float64
		want float64
	}{
		{0, 0},
		{20, 0},
		{70, 0.5},
		{120, 1},
		{500, 1},
	}
	for _, tt := range tests {
		d.Volume.SetFromPointer(tt.pos, bar)
		if got := d.Volume.Level(); got != tt.want {
			t.Fatalf("SetFromPointer(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}

	d.Volume.SetFromPointer(50, Bar{Start: 0, Width: 10, Thumb: 10})
	if d.Volume.Level() != 0 {
		t.Fatalf("zero-travel bar level = %v, want 0", d.Volume.Level())
	}
}

func TestThumbOffset(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Volume.SetLevel(0.25)
	if got := d.Volume.ThumbOffset(Bar{Width: 120, Thumb: 20}); got != 25 {
		t.Fatalf("ThumbOffset() = %v, want 25", got)
	}
}

func TestReadoutRearmsOnEveryChange(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)

	d.Volume.Increase()
	first, _ := h.last(TimerReadout)
	d.Volume.Increase()
	second, _ := h.last(TimerReadout)

	if !d.Volume.ReadoutVisible() {
		t.Fatalf("readout hidden after change")
	}
	d.Fire(first)
	if !d.Volume.ReadoutVisible() {
		t.Fatalf("stale hide timer hid the readout")
	}
	d.Fire(second)
	if d.Volume.ReadoutVisible() {
		t.Fatalf("readout still visible after idle timeout")
	}
}

func TestReadoutWaitsForDragRelease(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	bar := Bar{Width: 120, Thumb: 20}

	d.Volume.Increase()
	armed, _ := h.last(TimerReadout)

	d.Volume.StartDrag()
	d.Volume.SetFromPointer(60, bar)
	d.Volume.SetFromPointer(80, bar)
	if d.TimerActive(TimerReadout) {
		t.Fatalf("hide timer armed during drag")
	}
	d.Fire(armed)
	if !d.Volume.ReadoutVisible() {
		t.Fatalf("readout hidden during drag")
	}

	d.Volume.EndDrag()
	release, _ := h.last(TimerReadout)
	if release.Seq == armed.Seq || !d.TimerActive(TimerReadout) {
		t.Fatalf("hide timer not re-armed on release")
	}
	d.Fire(release)
	if d.Volume.ReadoutVisible() || d.Volume.Dragging() {
		t.Fatalf("readout %v dragging %v after release timeout", d.Volume.ReadoutVisible(), d.Volume.Dragging())
	}
}

func TestToggleAmpFlashes(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)
	if !d.Volume.Open() {
		t.Fatalf("amplifier closed at start")
	}

	d.Volume.ToggleAmp()
	if d.Volume.Open() || d.Volume.Flash() != FlashOff {
		t.Fatalf("after toggle: open %v flash %v", d.Volume.Open(), d.Volume.Flash())
	}
	fireLast(d, h, TimerAmpFlash)
	if d.Volume.Flash() != FlashNone {
		t.Fatalf("Flash() = %v after timeout, want none", d.Volume.Flash())
	}

	d.Volume.ToggleAmp()
	if !d.Volume.Open() || d.Volume.Flash() != FlashOn {
		t.Fatalf("after second toggle: open %v flash %v", d.Volume.Open(), d.Volume.Flash())
	}
}
