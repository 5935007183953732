package deck

import "math"

// VolumeStep is the keyboard volume increment.
const VolumeStep = 0.05

// Flash is the transient amplifier on/off indicator.
type Flash int

const (
	FlashNone Flash = iota
	FlashOn
	FlashOff
)

// Bar is a one-dimensional slider track in host units. Thumb is the width
// of the draggable handle; zero for a bar without one.
type Bar struct {
	Start, Width, Thumb float64
}

// Volume owns the level, the amplifier visibility and the readout.
type Volume struct {
	s *session

	level    float64
	open     bool
	dragging bool
	readout  bool
	flash    Flash
}

func (v *Volume) Level() float64       { return v.level }
func (v *Volume) Open() bool           { return v.open }
func (v *Volume) Dragging() bool       { return v.dragging }
func (v *Volume) ReadoutVisible() bool { return v.readout }
func (v *Volume) Flash() Flash         { return v.flash }

// Percent is the level rounded to a whole percentage.
func (v *Volume) Percent() int { return int(math.Round(v.level * 100)) }

// SetFromPointer maps a pointer coordinate on bar to a level. The raw
// offset is clamped to the travel of the thumb before dividing.
func (v *Volume) SetFromPointer(pos float64, bar Bar) {
	travel := bar.Width - bar.Thumb
	if travel <= 0 {
		v.set(0)
		return
	}
	off := max(0, min(pos-bar.Start-bar.Thumb/2, travel))
	v.set(off / travel)
}

// ThumbOffset is where the thumb sits on bar for the current level.
func (v *Volume) ThumbOffset(bar Bar) float64 {
	return v.level * max(0, bar.Width-bar.Thumb)
}

// Increase raises the level by one step, stopping at 1.
func (v *Volume) Increase() {
	if v.level >= 1 {
		return
	}
	v.set(roundStep(v.level + VolumeStep))
}

// Decrease lowers the level by one step, stopping at 0.
func (v *Volume) Decrease() {
	if v.level <= 0 {
		return
	}
	v.set(roundStep(v.level - VolumeStep))
}

func roundStep(x float64) float64 {
	return math.Round(x*100) / 100
}

// SetLevel sets the level directly, clamped to [0, 1].
func (v *Volume) SetLevel(x float64) { v.set(x) }

func (v *Volume) set(x float64) {
	v.level = clamp01(x)
	v.s.engine.SetVolume(v.level)
	v.showReadout()
	v.s.notify(EventVolume)
}

// showReadout shows the percentage and re-arms its hide timer. While a
// drag is in progress the hide waits for the release.
func (v *Volume) showReadout() {
	v.readout = true
	if v.dragging {
		v.s.cancel(TimerReadout)
		return
	}
	v.s.arm(TimerReadout)
}

func (v *Volume) hideReadout() {
	v.readout = false
	v.s.notify(EventVolume)
}

// StartDrag begins a thumb drag.
func (v *Volume) StartDrag() {
	v.dragging = true
	v.s.cancel(TimerReadout)
}

// EndDrag finishes a thumb drag; the readout hides two seconds later.
func (v *Volume) EndDrag() {
	if !v.dragging {
		return
	}
	v.dragging = false
	if v.readout {
		v.s.arm(TimerReadout)
	}
}

// ToggleAmp opens or closes the amplifier bar.
func (v *Volume) ToggleAmp() {
	v.s.click()
	v.open = !v.open
	if v.open {
		v.flash = FlashOn
	} else {
		v.flash = FlashOff
		v.EndDrag()
	}
	v.s.arm(TimerAmpFlash)
	v.s.notify(EventVolume)
}
