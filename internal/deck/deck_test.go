package deck

import (
	"errors"
	"testing"
	"time"

	"github.com/olivier-w/ampdeck/internal/catalog"
	"github.com/olivier-w/ampdeck/internal/engine"
	"github.com/olivier-w/ampdeck/internal/sfx"
)

type fakeBackend struct {
	loads    []string
	plays    int
	pauses   int
	seeks    []time.Duration
	volume   float64
	duration time.Duration
	current  time.Duration
	playErr  error
	seekErr  error

	ended  func()
	loaded func(time.Duration)
	failed func(error)
}

func (b *fakeBackend) Load(src string) {
	b.loads = append(b.loads, src)
	b.current = 0
	b.duration = 0
}

func (b *fakeBackend) Play() error {
	b.plays++
	return b.playErr
}

func (b *fakeBackend) Pause() { b.pauses++ }

func (b *fakeBackend) Seek(t time.Duration) error {
	if b.seekErr != nil {
		return b.seekErr
	}
	b.seeks = append(b.seeks, t)
	b.current = t
	return nil
}

func (b *fakeBackend) Duration() time.Duration                 { return b.duration }
func (b *fakeBackend) CurrentTime() time.Duration              { return b.current }
func (b *fakeBackend) SetVolume(v float64)                     { b.volume = v }
func (b *fakeBackend) OnEnded(fn func())                       { b.ended = fn }
func (b *fakeBackend) OnLoadedMetadata(fn func(time.Duration)) { b.loaded = fn }
func (b *fakeBackend) OnError(fn func(error))                  { b.failed = fn }
func (b *fakeBackend) Close() error                            { return nil }

// metadata simulates the backend finishing a load.
func (b *fakeBackend) metadata(d time.Duration) {
	b.duration = d
	b.loaded(d)
}

type recordingHost struct {
	timers  []Timer
	effects []sfx.Effect
	events  []Event
}

func (h *recordingHost) Schedule(t Timer)        { h.timers = append(h.timers, t) }
func (h *recordingHost) PlayEffect(e sfx.Effect) { h.effects = append(h.effects, e) }
func (h *recordingHost) Notify(e Event)          { h.events = append(h.events, e) }

func (h *recordingHost) count(k TimerKind) int {
	n := 0
	for _, t := range h.timers {
		if t.Kind == k {
			n++
		}
	}
	return n
}

func (h *recordingHost) last(k TimerKind) (Timer, bool) {
	for i := len(h.timers) - 1; i >= 0; i-- {
		if h.timers[i].Kind == k {
			return h.timers[i], true
		}
	}
	return Timer{}, false
}

func (h *recordingHost) saw(e Event) bool {
	for _, got := range h.events {
		if got == e {
			return true
		}
	}
	return false
}

var testTracks = []catalog.Track{
	{Title: "Everlong", Artist: "Foo Fighters", MediaRef: "msc/everlong.mp3"},
	{Title: "Rooster", Artist: "Alice in Chains", MediaRef: "msc/rooster.mp3"},
	{Title: "Tear Away", Artist: "Drowning Pool", MediaRef: "msc/tear-away.mp3"},
	{Title: "Be Quiet and Drive", Artist: "Deftones", MediaRef: "msc/be-quiet.mp3"},
	{Title: "Creep", Artist: "Radiohead", MediaRef: "msc/creep.mp3"},
}

func newTestDeck(t *testing.T, tracks []catalog.Track) (*Deck, *fakeBackend, *recordingHost) {
	t.Helper()
	b := &fakeBackend{}
	h := &recordingHost{}
	d := New(catalog.New(tracks, nil), b, h, Options{Volume: 0.5, ShortcutsEnabled: true})
	return d, b, h
}

func fireLast(d *Deck, h *recordingHost, k TimerKind) {
	if t, ok := h.last(k); ok {
		d.Fire(t)
	}
}

func TestNewSelectsFirstTrackWithoutPlaying(t *testing.T) {
	d, b, h := newTestDeck(t, testTracks)

	if d.Transport.Index() != 0 || d.Transport.Playing() {
		t.Fatalf("initial state = index %d playing %v, want 0 false", d.Transport.Index(), d.Transport.Playing())
	}
	if len(b.loads) != 1 || b.loads[0] != testTracks[0].MediaRef {
		t.Fatalf("loads = %v, want first track", b.loads)
	}
	if b.plays != 0 {
		t.Fatalf("plays = %d, want 0", b.plays)
	}
	if b.volume != 0.5 {
		t.Fatalf("backend volume = %v, want 0.5", b.volume)
	}
	if len(h.effects) != 0 {
		t.Fatalf("effects at startup = %v, want none", h.effects)
	}
}

func TestEmptyCatalogIsSafe(t *testing.T) {
	d, b, _ := newTestDeck(t, nil)

	d.Transport.TogglePlayPause()
	d.Transport.Next()
	d.Transport.Previous()
	d.Transport.ChangeTrack(3, true)
	d.Transport.Restart()
	d.HandleKey(Key{Code: KeyEnter})

	if len(b.loads) != 0 || b.plays != 0 {
		t.Fatalf("backend touched with empty catalog: loads %v plays %d", b.loads, b.plays)
	}
	if _, ok := d.Transport.Current(); ok {
		t.Fatalf("Current() ok = true with empty catalog")
	}
}

func TestFireIgnoresUnknownTimers(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	d.Fire(Timer{Kind: TimerKind(42), Seq: 1})
	d.Fire(Timer{Kind: TimerKind(-1), Seq: 1})
	d.Fire(Timer{Kind: TimerProgress, Seq: 99})
}

func TestEffectsAlternateAcrossActions(t *testing.T) {
	d, _, h := newTestDeck(t, testTracks)

	d.Transport.TogglePlayPause()
	d.Panels.Open(PanelQueue)
	d.Transport.ToggleLoop()
	d.Volume.ToggleAmp()
	d.Transport.Next()
	d.Panels.Close()

	if len(h.effects) != 6 {
		t.Fatalf("effects = %v, want 6", h.effects)
	}
	for i, e := range h.effects {
		want := sfx.BlipA
		if i%2 == 1 {
			want = sfx.BlipB
		}
		if e != want {
			t.Fatalf("effects[%d] = %v, want %v (all: %v)", i, e, want, h.effects)
		}
	}
}

func TestThemeAndSkin(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)

	d.ToggleTheme()
	if d.Theme() != ThemeLight {
		t.Fatalf("Theme() = %v, want light", d.Theme())
	}
	d.ToggleTheme()
	if d.Theme() != ThemeDark {
		t.Fatalf("Theme() = %v, want dark", d.Theme())
	}

	d.Panels.Open(PanelInstrumentPicker)
	if !d.PickSkin(2) {
		t.Fatalf("PickSkin(2) = false")
	}
	if _, i := d.Skin(); i != 2 {
		t.Fatalf("Skin() index = %d, want 2", i)
	}
	if d.Panels.State() != PanelClosed {
		t.Fatalf("picker still open after pick: %v", d.Panels.State())
	}
	if d.PickSkin(99) {
		t.Fatalf("PickSkin(99) = true, want false")
	}
}

func TestOptionsSkinByName(t *testing.T) {
	d := New(catalog.New(testTracks, nil), &fakeBackend{}, &recordingHost{}, Options{Skin: "drums"})
	if s, _ := d.Skin(); s.Name != "Drums" {
		t.Fatalf("Skin() = %q, want Drums", s.Name)
	}
}

func TestFireLevelFollowsPlayback(t *testing.T) {
	d, _, _ := newTestDeck(t, testTracks)
	if d.FireLevel() != 0 {
		t.Fatalf("FireLevel() paused = %v, want 0", d.FireLevel())
	}
	d.Transport.TogglePlayPause()
	if d.FireLevel() != 0.5 {
		t.Fatalf("FireLevel() playing = %v, want 0.5", d.FireLevel())
	}
}

func TestFailureMessagesPerClass(t *testing.T) {
	tr := catalog.Track{Title: "Creep"}
	seen := map[string]bool{}
	for _, code := range []engine.ErrorCode{engine.CodeAborted, engine.CodeNetwork, engine.CodeDecode, engine.CodeSrcNotSupported} {
		msg := failureMessage(tr, &engine.MediaError{Code: code})
		if seen[msg] {
			t.Fatalf("duplicate message %q for %v", msg, code)
		}
		seen[msg] = true
	}
	if msg := failureMessage(catalog.Track{}, errors.New("boom")); msg != "playback failed: boom" {
		t.Fatalf("failureMessage(plain) = %q", msg)
	}
}
