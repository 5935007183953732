package deck

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olivier-w/ampdeck/internal/catalog"
	"github.com/olivier-w/ampdeck/internal/engine"
)

// Icon is the transient play/pause indicator.
type Icon int

const (
	IconNone Icon = iota
	IconPlay
	IconPause
)

// Transport owns the current track, play intent and the loop flag.
type Transport struct {
	s        *session
	progress *Progress

	index   int
	playing bool
	looping bool
	icon    Icon
	status  string
}

// Index is the current catalog position.
func (t *Transport) Index() int { return t.index }

// Current returns the current track.
func (t *Transport) Current() (catalog.Track, bool) { return t.s.cat.Track(t.index) }

func (t *Transport) Playing() bool { return t.playing }
func (t *Transport) Looping() bool { return t.looping }
func (t *Transport) Icon() Icon    { return t.icon }

// Status is the last media failure message, cleared by a successful play.
func (t *Transport) Status() string { return t.status }

// TogglePlayPause plays a paused track or pauses a playing one.
func (t *Transport) TogglePlayPause() {
	if t.s.cat.Len() == 0 {
		return
	}
	if t.playing {
		t.s.engine.Pause()
		t.playing = false
		t.progress.Stop()
		t.flashIcon(IconPause)
	} else {
		t.flashIcon(IconPlay)
		t.play()
	}
	t.s.click()
	t.s.notify(EventTrackChanged)
}

// ChangeTrack moves to target, wrapping in both directions, and loads it.
// The new track is current before its media finishes loading.
func (t *Transport) ChangeTrack(target int, autoPlay bool) {
	n := t.s.cat.Len()
	if n == 0 {
		return
	}
	t.index = ((target % n) + n) % n
	tr, _ := t.s.cat.Track(t.index)
	slog.Debug("change track", "index", t.index, "title", tr.Title, "autoplay", autoPlay)

	t.s.engine.Load(tr.MediaRef)
	t.playing = false
	t.progress.reset()

	if autoPlay {
		t.play()
		t.s.click()
	} else {
		t.progress.Stop()
	}
	t.s.notify(EventTrackChanged)
}

// Next advances to the following track and plays it.
func (t *Transport) Next() { t.ChangeTrack(t.index+1, true) }

// Previous goes back one track and plays it.
func (t *Transport) Previous() { t.ChangeTrack(t.index-1, true) }

// ToggleLoop flips repeat-one.
func (t *Transport) ToggleLoop() {
	t.looping = !t.looping
	t.s.click()
	t.s.notify(EventPlayback)
}

// Restart seeks to the start without changing play state.
func (t *Transport) Restart() {
	if t.s.cat.Len() == 0 {
		return
	}
	if err := t.s.engine.Seek(0); err != nil && !errors.Is(err, engine.ErrNotLoaded) {
		slog.Debug("restart seek failed", "err", err)
	}
	t.progress.Recompute()
}

func (t *Transport) play() {
	if err := t.s.engine.Play(); err != nil {
		t.fail(err)
		return
	}
	t.playing = true
	t.status = ""
	t.progress.Start()
	t.s.notify(EventPlayback)
}

func (t *Transport) flashIcon(i Icon) {
	t.icon = i
	t.s.arm(TimerIcon)
}

// fail records a media failure. The index stays on the failed track.
func (t *Transport) fail(err error) {
	tr, _ := t.Current()
	slog.Warn("media failure", "index", t.index, "src", tr.MediaRef, "err", err)
	t.playing = false
	t.progress.Stop()
	t.status = failureMessage(tr, err)
	t.s.notify(EventPlayback)
}

func failureMessage(tr catalog.Track, err error) string {
	var msg string
	switch engine.Code(err) {
	case engine.CodeAborted:
		msg = "playback aborted"
	case engine.CodeNetwork:
		msg = "could not read the file"
	case engine.CodeDecode:
		msg = "could not decode audio"
	case engine.CodeSrcNotSupported:
		msg = "format not supported or file missing"
	default:
		msg = fmt.Sprintf("playback failed: %v", err)
	}
	if tr.Title == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", tr.Title, msg)
}

func (t *Transport) handleLoaded(d time.Duration) {
	t.progress.setDuration(d)
	t.progress.Recompute()
}

func (t *Transport) handleEnded() {
	if t.looping {
		if err := t.s.engine.Seek(0); err != nil {
			t.fail(err)
			return
		}
		t.play()
		return
	}
	t.ChangeTrack(t.index+1, true)
}

func (t *Transport) handleError(err error) {
	t.fail(err)
}
