package ui

import (
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/ampdeck/internal/art"
	"github.com/olivier-w/ampdeck/internal/catalog"
	"github.com/olivier-w/ampdeck/internal/deck"
	"github.com/olivier-w/ampdeck/internal/engine"
	"github.com/olivier-w/ampdeck/internal/sfx"
	"github.com/samber/lo"
)

const (
	artCols   = 28
	artRows   = 12
	skinCols  = 14
	queueRows = 8
)

// Params configures a Model.
type Params struct {
	Catalog   *catalog.Catalog
	Backend   engine.Backend
	Effects   *sfx.Player
	Renderer  *art.Renderer
	Fallbacks []string
	Options   deck.Options
}

// Model is the Bubbletea model for the ampdeck TUI. It owns no playback
// state of its own: every decision is made by the deck, and the model only
// translates terminal input and renders the result.
type Model struct {
	deck      *deck.Deck
	host      *host
	backend   engine.Backend
	callbacks chan func()

	renderer  *art.Renderer
	fallbacks []string
	art       artState
	skin      skinState

	keys    shortcutKeys
	help    help.Model
	input   textinput.Model
	spinner spinner.Model
	flame   flame
	styles  styles

	queueTop  int
	scrolling bool
	width     int
	height    int
	quitting  bool
}

// artState tracks the artwork for the current track. want is the index of
// the most recent request; results for any other index are dropped.
type artState struct {
	want     int
	art      art.Art
	loaded   bool
	rendered string
}

// skinState holds the rendered image of the selected instrument skin. want
// is the image requested last; an empty want shows no image.
type skinState struct {
	want     string
	rendered string
}

// flame smooths the fire meter towards its target with a spring.
type flame struct {
	spring  harmonica.Spring
	pos     float64
	vel     float64
	running bool
}

func newFlame() flame {
	return flame{spring: harmonica.NewSpring(harmonica.FPS(fireFPS), 6.0, 0.5)}
}

// step advances one frame and reports whether the meter is still moving.
func (f *flame) step(target float64) bool {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, target)
	if math.Abs(f.pos-target) < 0.002 && math.Abs(f.vel) < 0.002 {
		f.pos, f.vel = target, 0
		return false
	}
	return true
}

// New creates a Model over the catalog and backend in p.
func New(p Params) Model {
	callbacks := make(chan func(), 16)
	backend := engine.Dispatch(p.Backend, func(fn func()) { callbacks <- fn })
	h := newHost(p.Effects)

	input := textinput.New()
	input.Placeholder = "Search title or artist"
	input.Prompt = "/ "
	input.CharLimit = 64
	input.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot

	renderer := p.Renderer
	if renderer == nil {
		renderer = art.NewRenderer()
	}

	m := Model{
		host:      h,
		backend:   p.Backend,
		callbacks: callbacks,
		renderer:  renderer,
		fallbacks: p.Fallbacks,
		art:       artState{want: -1},
		keys:      newShortcutKeys(),
		help:      help.New(),
		input:     input,
		spinner:   s,
		flame:     newFlame(),
	}
	m.deck = deck.New(p.Catalog, backend, h, p.Options)
	if cur, ok := m.deck.Transport.Current(); ok {
		m.art.want = cur.Index
	}
	skin, _ := m.deck.Skin()
	m.skin.want = skin.Image
	m.restyle()
	return m
}

func (m Model) Init() tea.Cmd {
	timers, _ := m.host.drain()
	cmds := append(timers,
		waitCallback(m.callbacks),
		m.spinner.Tick,
		tea.SetWindowTitle(m.windowTitle()),
	)
	if cur, ok := m.deck.Transport.Current(); ok {
		cmds = append(cmds, loadArtCmd(cur.Index, cur.ArtRef, cur.MediaRef, m.fallbacks))
	}
	if m.skin.want != "" {
		cmds = append(cmds, loadSkinCmd(m.skin.want))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg, m.deck.Panels.State() == deck.PanelSearch) {
			return m.quit()
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		m.handleMouse(msg)

	case timerMsg:
		m.deck.Fire(deck.Timer(msg))

	case callbackMsg:
		msg()
		cmds = append(cmds, waitCallback(m.callbacks))

	case artLoadedMsg:
		if msg.index != m.art.want {
			return m, nil
		}
		m.art.art = msg.art
		m.art.loaded = true
		m.art.rendered = m.renderer.Render(msg.art.Image, artCols, artRows)
		m.restyle()

	case skinLoadedMsg:
		if msg.ref != m.skin.want {
			return m, nil
		}
		if msg.art.Fallback {
			slog.Warn("instrument skin image unreadable", "src", msg.ref)
			m.skin.rendered = ""
			break
		}
		m.skin.rendered = m.renderer.Render(msg.art.Image, skinCols, artRows)

	case fireTickMsg:
		if m.flame.step(m.deck.FireLevel()) {
			return m, fireTickCmd()
		}
		m.flame.running = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.contentWidth()
		m.input.Width = max(10, m.contentWidth()-4)

	default:
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	if err := m.backend.Close(); err != nil {
		slog.Warn("closing playback engine", "err", err)
	}
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

// handleKey offers msg to the deck first. Keys it does not consume go to
// the search field when it has focus.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if k, ok := deckKey(msg); ok && m.deck.HandleKey(k) {
		return nil
	}
	if m.deck.Panels.State() != deck.PanelSearch {
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.deck.Search.SetQuery(m.input.Value())
	return cmd
}

// sync drains what the deck asked for while handling the last message:
// timers become tea.Ticks and events refresh the parts of the view that
// depend on them.
func (m *Model) sync() tea.Cmd {
	timers, events := m.host.drain()
	cmds := timers

	for _, e := range lo.Uniq(events) {
		switch e {
		case deck.EventTrackChanged:
			cmds = append(cmds, m.requestArt(), m.spinner.Tick, tea.SetWindowTitle(m.windowTitle()))
		case deck.EventPlayback:
			cmds = append(cmds, tea.SetWindowTitle(m.windowTitle()))
		case deck.EventPanel:
			cmds = append(cmds, m.panelChanged())
		case deck.EventQueue:
			m.followQueueCursor()
		case deck.EventAppearance:
			m.restyle()
			cmds = append(cmds, m.requestSkin())
		}
	}

	cmds = append(cmds, m.animateFlame())
	return tea.Batch(cmds...)
}

func (m *Model) requestArt() tea.Cmd {
	cur, ok := m.deck.Transport.Current()
	if !ok || cur.Index == m.art.want {
		return nil
	}
	m.art.want = cur.Index
	return loadArtCmd(cur.Index, cur.ArtRef, cur.MediaRef, m.fallbacks)
}

// requestSkin loads the selected skin's image when it changed.
func (m *Model) requestSkin() tea.Cmd {
	skin, _ := m.deck.Skin()
	if skin.Image == m.skin.want {
		return nil
	}
	m.skin.want = skin.Image
	m.skin.rendered = ""
	if skin.Image == "" {
		return nil
	}
	return loadSkinCmd(skin.Image)
}

// panelChanged moves focus in and out of the search field.
func (m *Model) panelChanged() tea.Cmd {
	switch m.deck.Panels.State() {
	case deck.PanelSearch:
		m.input.Reset()
		return m.input.Focus()
	case deck.PanelQueue:
		m.followQueueCursor()
	}
	m.input.Blur()
	m.input.Reset()
	m.scrolling = false
	return nil
}

func (m *Model) animateFlame() tea.Cmd {
	if m.flame.running {
		return nil
	}
	target := m.deck.FireLevel()
	if m.flame.pos == target && m.flame.vel == 0 {
		return nil
	}
	m.flame.running = true
	return fireTickCmd()
}

// followQueueCursor scrolls the queue so its cursor stays visible.
func (m *Model) followQueueCursor() {
	sel := m.deck.Queue.Selected()
	if sel < 0 {
		return
	}
	if sel < m.queueTop {
		m.queueTop = sel
	}
	if sel >= m.queueTop+queueRows {
		m.queueTop = sel - queueRows + 1
	}
	m.clampQueueTop()
}

func (m *Model) scrollQueue(delta int) {
	m.queueTop += delta
	m.clampQueueTop()
}

func (m *Model) clampQueueTop() {
	m.queueTop = max(0, min(m.queueTop, m.deck.Catalog().Len()-queueRows))
}

func (m *Model) restyle() {
	var accent *color.RGBA
	if m.art.loaded {
		accent = &m.art.art.Accent
	}
	m.styles = newStyles(m.deck.Theme(), accent)
	m.help.Styles.ShortKey = m.styles.accent
	m.help.Styles.FullKey = m.styles.accent
	m.help.Styles.ShortDesc = m.styles.help
	m.help.Styles.FullDesc = m.styles.help
	m.input.PromptStyle = m.styles.accent
	m.spinner.Style = m.styles.accent
}

// loading reports whether the current track is still waiting for its
// metadata.
func (m Model) loading() bool {
	_, ok := m.deck.Transport.Current()
	return ok && m.deck.Progress.Duration() <= 0 && m.deck.Transport.Status() == ""
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 56
	}
	return w
}

func (m Model) windowTitle() string {
	cur, ok := m.deck.Transport.Current()
	if !ok {
		return "ampdeck"
	}
	icon := "⏸ "
	if m.deck.Transport.Playing() {
		icon = "▶ "
	}
	return icon + cur.Title + " · ampdeck"
}

func (m Model) showArt() bool {
	return (m.art.rendered != "" || m.skin.rendered != "") && (m.height == 0 || m.height >= 40)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	lines, _ := m.compose()
	return strings.Join(lines, "\n") + "\n"
}
