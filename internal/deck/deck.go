// Package deck is the player's control state machine. It owns playback,
// volume, progress, selection and panel state, drives an engine.Backend,
// and asks its Host for timers, sound effects and redraws. Every method
// must be called from a single goroutine; engine callbacks are expected to
// arrive on that goroutine too (see engine.Dispatch).
package deck

import (
	"log/slog"
	"time"

	"github.com/olivier-w/ampdeck/internal/catalog"
	"github.com/olivier-w/ampdeck/internal/engine"
	"github.com/olivier-w/ampdeck/internal/sfx"
)

// Host is the deck's view of its surroundings.
type Host interface {
	// Schedule arms t. When it elapses the host calls Deck.Fire(t).
	// Timers are never cancelled through the host; stale ones are ignored.
	Schedule(t Timer)
	PlayEffect(e sfx.Effect)
	Notify(e Event)
}

// TimerKind identifies one of the deck's single-slot timers.
type TimerKind int

const (
	TimerProgress TimerKind = iota
	TimerSearch
	TimerReadout
	TimerIcon
	TimerAmpFlash
	numTimers
)

var timerDelays = [numTimers]time.Duration{
	TimerProgress: 100 * time.Millisecond,
	TimerSearch:   300 * time.Millisecond,
	TimerReadout:  2 * time.Second,
	TimerIcon:     600 * time.Millisecond,
	TimerAmpFlash: 300 * time.Millisecond,
}

func (k TimerKind) String() string {
	switch k {
	case TimerProgress:
		return "progress"
	case TimerSearch:
		return "search"
	case TimerReadout:
		return "readout"
	case TimerIcon:
		return "icon"
	case TimerAmpFlash:
		return "amp-flash"
	default:
		return "unknown"
	}
}

// Timer is a one-shot timer request. Seq distinguishes re-arms of the
// same kind; only the latest is honoured.
type Timer struct {
	Kind  TimerKind
	Seq   uint64
	After time.Duration
}

// Event tells the host which part of the state changed.
type Event int

const (
	EventTrackChanged Event = iota
	EventPlayback
	EventProgress
	EventVolume
	EventPanel
	EventSearch
	EventQueue
	EventAppearance
)

// session is the state shared by every component: collaborators, timer
// slots and the alternating effect bit.
type session struct {
	cat    *catalog.Catalog
	engine engine.Backend
	host   Host

	seq   [numTimers]uint64
	armed [numTimers]bool

	nextEffect sfx.Effect
}

// arm (re)starts a timer, superseding any pending one of the same kind.
func (s *session) arm(k TimerKind) {
	s.seq[k]++
	s.armed[k] = true
	s.host.Schedule(Timer{Kind: k, Seq: s.seq[k], After: timerDelays[k]})
}

func (s *session) cancel(k TimerKind) {
	if s.armed[k] {
		s.seq[k]++
		s.armed[k] = false
	}
}

// take consumes a fired timer, reporting false for stale ones.
func (s *session) take(t Timer) bool {
	if t.Kind < 0 || t.Kind >= numTimers || !s.armed[t.Kind] || t.Seq != s.seq[t.Kind] {
		return false
	}
	s.armed[t.Kind] = false
	return true
}

// click plays the next of the two alternating effects. The alternation is
// shared by every caller.
func (s *session) click() {
	s.host.PlayEffect(s.nextEffect)
	s.nextEffect = s.nextEffect.Toggle()
}

func (s *session) notify(e Event) { s.host.Notify(e) }

// Theme is the colour scheme.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// ParseTheme accepts "dark" or "light"; anything else is dark.
func ParseTheme(s string) Theme {
	if s == "light" {
		return ThemeLight
	}
	return ThemeDark
}

// Options are the initial settings of a Deck.
type Options struct {
	Volume           float64
	Theme            Theme
	ShortcutsEnabled bool
	Skin             string
	AmpClosed        bool
}

// Deck coordinates the player's components.
type Deck struct {
	s *session

	Transport *Transport
	Volume    *Volume
	Progress  *Progress
	Search    *Search
	Queue     *Queue
	Panels    *Panels

	theme     Theme
	shortcuts bool
	skin      int
}

// New builds a Deck over cat and backend. The first track is selected and
// loaded but not played.
func New(cat *catalog.Catalog, backend engine.Backend, host Host, opts Options) *Deck {
	s := &session{cat: cat, engine: backend, host: host}

	d := &Deck{
		s:         s,
		theme:     opts.Theme,
		shortcuts: opts.ShortcutsEnabled,
	}
	d.Progress = &Progress{s: s}
	d.Volume = &Volume{s: s, open: !opts.AmpClosed}
	d.Transport = &Transport{s: s, progress: d.Progress}
	d.Search = &Search{s: s, selected: -1}
	d.Queue = &Queue{s: s, selected: -1}
	d.Panels = &Panels{s: s, onChange: d.panelChanged}

	if i, ok := cat.SkinIndex(opts.Skin); ok {
		d.skin = i
	}

	backend.OnLoadedMetadata(d.Transport.handleLoaded)
	backend.OnEnded(d.Transport.handleEnded)
	backend.OnError(d.Transport.handleError)

	d.Volume.level = clamp01(opts.Volume)
	backend.SetVolume(d.Volume.level)

	if cat.Len() > 0 {
		d.Transport.ChangeTrack(0, false)
	} else {
		slog.Warn("deck started with an empty catalog")
	}
	return d
}

// Catalog returns the track catalog.
func (d *Deck) Catalog() *catalog.Catalog { return d.s.cat }

// Fire delivers an elapsed timer. Stale or cancelled timers are ignored.
func (d *Deck) Fire(t Timer) {
	if !d.s.take(t) {
		return
	}
	switch t.Kind {
	case TimerProgress:
		d.Progress.tick()
	case TimerSearch:
		d.Search.rank()
	case TimerReadout:
		d.Volume.hideReadout()
	case TimerIcon:
		d.Transport.icon = IconNone
		d.s.notify(EventPlayback)
	case TimerAmpFlash:
		d.Volume.flash = FlashNone
		d.s.notify(EventVolume)
	}
}

// TimerActive reports whether a timer of kind k is pending.
func (d *Deck) TimerActive(k TimerKind) bool { return d.s.armed[k] }

// FireLevel is the flame intensity: the volume while playing, else zero.
func (d *Deck) FireLevel() float64 {
	if !d.Transport.Playing() {
		return 0
	}
	return d.Volume.Level()
}

// Theme returns the active colour scheme.
func (d *Deck) Theme() Theme { return d.theme }

// ToggleTheme switches between dark and light.
func (d *Deck) ToggleTheme() {
	if d.theme == ThemeDark {
		d.theme = ThemeLight
	} else {
		d.theme = ThemeDark
	}
	d.s.notify(EventAppearance)
}

// ShortcutsEnabled reports whether global keyboard shortcuts are active.
func (d *Deck) ShortcutsEnabled() bool { return d.shortcuts }

// SetShortcutsEnabled turns global shortcuts on or off.
func (d *Deck) SetShortcutsEnabled(on bool) {
	d.shortcuts = on
	d.s.notify(EventAppearance)
}

// Skin returns the selected instrument skin.
func (d *Deck) Skin() (catalog.Skin, int) {
	skins := d.s.cat.Skins()
	if len(skins) == 0 {
		return catalog.Skin{}, -1
	}
	return skins[d.skin], d.skin
}

// PickSkin selects skin i and closes the instrument picker.
func (d *Deck) PickSkin(i int) bool {
	if i < 0 || i >= len(d.s.cat.Skins()) {
		return false
	}
	d.skin = i
	d.s.notify(EventAppearance)
	if d.Panels.State() == PanelInstrumentPicker {
		d.Panels.Close()
	}
	return true
}

// CommitSearch plays the chosen search result and closes the search panel.
func (d *Deck) CommitSearch() bool {
	target, ok := d.Search.commit()
	if !ok {
		return false
	}
	if d.Panels.State() == PanelSearch {
		d.Panels.Close()
	}
	d.Transport.ChangeTrack(target, true)
	return true
}

// CommitQueue plays the track under the queue cursor.
func (d *Deck) CommitQueue() bool {
	i := d.Queue.Selected()
	if i < 0 {
		return false
	}
	d.Transport.ChangeTrack(i, true)
	return true
}

// SelectQueueRow plays the queue row i, as a pointer click does.
func (d *Deck) SelectQueueRow(i int) bool {
	if i < 0 || i >= d.s.cat.Len() {
		return false
	}
	d.Queue.selected = i
	d.Transport.ChangeTrack(i, true)
	return true
}

// panelChanged creates and discards the per-panel selection models.
func (d *Deck) panelChanged(from, to Panel) {
	if from == PanelSearch {
		d.Search.reset()
	}
	if from == PanelQueue {
		d.Queue.reset()
	}
	if to == PanelQueue {
		d.Queue.seed(d.Transport.Index())
	}
	if to == PanelSettingsMain && !from.Settings() {
		d.Panels.menu = 0
	}
}

func clamp01(v float64) float64 {
	return max(0, min(v, 1))
}
