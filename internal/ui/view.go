package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/ampdeck/internal/deck"
	"github.com/olivier-w/ampdeck/internal/util"
)

const indent = "  "

const (
	ampLabel = "[amp]"
	ampWidth = 24
)

// compose draws the frame line by line and records where each interactive
// part landed.
func (m Model) compose() ([]string, layout) {
	var c canvas
	var lay layout
	w := m.contentWidth()
	st := m.styles

	c.add("")
	c.add(indent + m.header())
	c.add("")

	if m.showArt() {
		for _, line := range strings.Split(m.artBlock(), "\n") {
			c.add(indent + line)
		}
		c.add("")
	}

	cur, ok := m.deck.Transport.Current()
	switch {
	case !ok:
		c.add(indent + st.title.Render("Nothing to play"))
	default:
		c.add(indent + st.title.Render(truncate(cur.Title, w)))
		if cur.Artist != "" {
			c.add(indent + st.artist.Render(truncate(cur.Artist, w)))
		}
	}
	c.add("")

	elapsed := util.FormatDuration(m.deck.Progress.Elapsed())
	total := util.FormatDuration(m.deck.Progress.Duration())
	if m.loading() {
		total = m.spinner.View()
	}
	barWidth := max(10, w-lipgloss.Width(elapsed)-lipgloss.Width(total)-2)
	row := c.add(indent + st.time.Render(elapsed) + " " +
		renderProgressBar(st, m.deck.Progress.Percent()/100, barWidth) + " " +
		st.time.Render(total))
	lay.progress = region{row: row, col: len(indent) + lipgloss.Width(elapsed) + 1, width: barWidth}
	c.add("")

	button, state := m.transportLabels()
	transport := placeButtons(&lay, c.next(), len(indent), []buttonLabel{
		{ctlPrevious, "[◀◀]", st.accent},
		{ctlPlay, button, st.accent},
		{ctlNext, "[▶▶]", st.accent},
	})
	c.add(indent + transport + "  " + st.status.Render(state))
	c.add(indent + placeButtons(&lay, c.next(), len(indent), m.toolbar()))

	m.composeAmp(&c, &lay)

	if status := m.deck.Transport.Status(); status != "" {
		c.add(indent + st.warn.Render(truncate(status, w)))
	}
	c.add("")

	lay.panelTop = c.next()
	m.composePanel(&c, &lay, w)
	lay.panelEnd = c.next()
	if lay.panelEnd > lay.panelTop {
		c.add("")
	}

	c.add(indent + m.help.ShortHelpView(m.keys.ShortHelp()))
	return c.lines, lay
}

func (m Model) header() string {
	st := m.styles
	skin, _ := m.deck.Skin()
	parts := []string{st.header.Render("ampdeck")}
	if skin.Name != "" {
		parts = append(parts, st.status.Render(skin.Name))
	}
	parts = append(parts, st.help.Render(m.deck.Theme().String()))
	if !m.deck.ShortcutsEnabled() {
		parts = append(parts, st.help.Render("shortcuts off"))
	}
	return strings.Join(parts, st.help.Render(" · "))
}

// transportLabels returns the play/pause button and the state text beside
// it, including the brief icon flash after a toggle.
func (m Model) transportLabels() (string, string) {
	t := m.deck.Transport
	button := "[ ▶ ]"
	state := "paused"
	if t.Playing() {
		button = "[❚❚ ]"
		state = "playing"
	}
	switch t.Icon() {
	case deck.IconPlay:
		state += "  ▶"
	case deck.IconPause:
		state += "  ❚❚"
	}
	return button, state
}

type buttonLabel struct {
	ctl   control
	label string
	style lipgloss.Style
}

// placeButtons renders items left to right from col on row, one space
// apart, and records where each landed.
func placeButtons(lay *layout, row, col int, items []buttonLabel) string {
	parts := make([]string, len(items))
	for i, it := range items {
		w := lipgloss.Width(it.label)
		lay.buttons = append(lay.buttons, button{r: region{row: row, col: col, width: w}, ctl: it.ctl})
		parts[i] = it.style.Render(it.label)
		col += w + 1
	}
	return strings.Join(parts, " ")
}

// toolbar lists the loop and panel buttons. Active ones are highlighted.
func (m Model) toolbar() []buttonLabel {
	st := m.styles
	panel := m.deck.Panels.State()
	lit := func(on bool) lipgloss.Style {
		if on {
			return st.accent
		}
		return st.help
	}
	return []buttonLabel{
		{ctlLoop, "[loop]", lit(m.deck.Transport.Looping())},
		{ctlQueue, "[queue]", lit(panel == deck.PanelQueue)},
		{ctlSearch, "[search]", lit(panel == deck.PanelSearch)},
		{ctlSettings, "[settings]", lit(panel.Settings())},
		{ctlTheme, "[theme]", st.help},
	}
}

// artBlock places the instrument skin, when it has an image, to the right
// of the track artwork.
func (m Model) artBlock() string {
	block := strings.TrimRight(m.art.rendered, "\n")
	skin := strings.TrimRight(m.skin.rendered, "\n")
	switch {
	case skin == "":
		return block
	case block == "":
		return skin
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, block, "  ", skin)
}

func (m Model) composeAmp(c *canvas, lay *layout) {
	st := m.styles
	v := m.deck.Volume

	label := st.status.Render(ampLabel)
	switch v.Flash() {
	case deck.FlashOn:
		label = st.accent.Render(ampLabel)
	case deck.FlashOff:
		label = st.help.Render(ampLabel)
	}

	if !v.Open() {
		row := c.add(indent + label)
		lay.ampLabel = region{row: row, col: len(indent), width: len(ampLabel)}
		return
	}

	col := len(indent) + len(ampLabel) + 1
	slider := region{col: col, width: ampWidth}
	readout := strings.Repeat(" ", 4)
	if v.ReadoutVisible() {
		readout = renderVolumePercent(v.Percent())
	}
	row := c.add(indent + label + " " + renderSlider(st, v.ThumbOffset(slider.bar(1)), ampWidth) + " " + st.time.Render(readout))
	lay.ampLabel = region{row: row, col: len(indent), width: len(ampLabel)}
	slider.row = row
	lay.amp = slider

	c.add(indent + strings.Repeat(" ", len(ampLabel)+1) + renderFlame(st, m.flame.pos, ampWidth))
}

func (m Model) composePanel(c *canvas, lay *layout, w int) {
	st := m.styles
	lay.items = map[int]int{}

	switch m.deck.Panels.State() {
	case deck.PanelClosed:
		return

	case deck.PanelQueue:
		m.composeQueue(c, lay, w)

	case deck.PanelSearch:
		c.add(indent + st.header.Render("Search"))
		c.add(indent + m.input.View())
		s := m.deck.Search
		switch {
		case s.Pending():
			c.add(indent + st.help.Render("searching…"))
		case s.NoResults():
			c.add(indent + st.help.Render("No results"))
		}
		for i, tr := range s.Results() {
			if i >= queueRows {
				break
			}
			row := c.add(indent + m.listRow(tr.Label(), i == s.Selected(), w))
			lay.items[row] = i
		}

	case deck.PanelSettingsMain:
		c.add(indent + st.header.Render("Settings"))
		for i, item := range deck.MenuItems {
			label := item.String()
			if item == deck.MenuTheme {
				label = fmt.Sprintf("%s: %s", label, m.deck.Theme())
			}
			row := c.add(indent + m.listRow(label, item == m.deck.Panels.Menu(), w))
			lay.items[row] = i
		}

	case deck.PanelSettingsShortcuts:
		c.add(indent + st.header.Render("Settings › Shortcuts"))
		state := "off"
		if m.deck.ShortcutsEnabled() {
			state = "on"
		}
		row := c.add(indent + m.listRow("Keyboard shortcuts: "+state, true, w))
		lay.items[row] = 0
		c.add("")
		for _, line := range strings.Split(m.help.FullHelpView(m.keys.FullHelp()), "\n") {
			c.add(indent + line)
		}

	case deck.PanelSettingsCredits:
		c.add(indent + st.header.Render("Settings › Credits"))
		for _, line := range credits {
			c.add(indent + st.panel.Render(line))
		}

	case deck.PanelInstrumentPicker:
		c.add(indent + st.header.Render("Instrument"))
		_, current := m.deck.Skin()
		for i, skin := range m.deck.Catalog().Skins() {
			row := c.add(indent + m.listRow(skin.Name, i == current, w))
			lay.items[row] = i
		}
	}
}

var credits = []string{
	"ampdeck, a terminal music deck.",
	"Audio: oto, beep, go-mp3, mewkiz/flac, oggvorbis, go-audio/wav.",
	"Interface: Bubble Tea, Bubbles, Lip Gloss, Harmonica.",
}

func (m Model) composeQueue(c *canvas, lay *layout, w int) {
	st := m.styles
	tracks := m.deck.Catalog().Tracks()
	c.add(indent + st.header.Render(fmt.Sprintf("Queue (%d)", len(tracks))))

	top := max(0, min(m.queueTop, len(tracks)-queueRows))
	end := min(len(tracks), top+queueRows)
	playing := m.deck.Transport.Index()

	first := c.next()
	scroll := len(tracks) > queueRows
	rowWidth := w
	if scroll {
		rowWidth = w - 2
	}
	for i := top; i < end; i++ {
		marker := "  "
		if i == playing {
			marker = "▶ "
		}
		label := fmt.Sprintf("%s%2d  %s", marker, i+1, tracks[i].Label())
		line := m.listRow(label, i == m.deck.Queue.Selected(), rowWidth)
		if scroll {
			line += " " + m.scrollCell(i-top, top, len(tracks))
		}
		row := c.add(indent + line)
		lay.items[row] = i
	}
	if scroll {
		lay.scroll = scrollbar{col: len(indent) + rowWidth + 1, top: first, rows: end - top}
	}
}

// scrollCell draws cell n of the queue scrollbar.
func (m Model) scrollCell(n, top, total int) string {
	thumb := max(1, queueRows*queueRows/total)
	start := 0
	if total > queueRows {
		start = (queueRows - thumb) * top / (total - queueRows)
	}
	if n >= start && n < start+thumb {
		return m.styles.accent.Render("┃")
	}
	return m.styles.barEmpty.Render("│")
}

func (m Model) listRow(label string, selected bool, w int) string {
	if selected {
		return m.styles.selected.Render(padRight("› "+label, w))
	}
	return m.styles.panel.Render(padRight("  "+label, w))
}
