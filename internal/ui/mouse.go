package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ampdeck/internal/deck"
)

// handleMouse hit-tests msg against the current frame. Releasing the button
// anywhere ends every drag.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	_, lay := m.compose()
	x, y := msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionRelease:
		m.deck.Progress.EndDrag()
		m.deck.Volume.EndDrag()
		m.scrolling = false
		return

	case tea.MouseActionMotion:
		m.drag(x, y, lay)
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.deck.Panels.State() == deck.PanelQueue {
			m.scrollQueue(-1)
		}
		return
	case tea.MouseButtonWheelDown:
		if m.deck.Panels.State() == deck.PanelQueue {
			m.scrollQueue(1)
		}
		return
	case tea.MouseButtonLeft:
	default:
		return
	}

	if ctl, ok := lay.buttonAt(x, y); ok {
		m.activate(ctl)
		return
	}

	panel := m.deck.Panels.State()
	if panel != deck.PanelClosed {
		m.pressPanel(panel, x, y, lay)
		return
	}

	switch {
	case lay.progress.contains(x, y):
		m.deck.Progress.StartDrag()
		m.deck.Progress.SeekToPointer(pointer(x), lay.progress.bar(0))
	case lay.amp.contains(x, y):
		m.deck.Volume.StartDrag()
		m.deck.Volume.SetFromPointer(pointer(x), lay.amp.bar(1))
	case lay.ampLabel.contains(x, y):
		m.deck.Volume.ToggleAmp()
	}
}

// activate runs the action of a clicked button. Panel buttons switch
// straight to their panel, closing whatever else was open.
func (m *Model) activate(ctl control) {
	d := m.deck
	switch ctl {
	case ctlPrevious:
		d.Transport.Previous()
	case ctlPlay:
		d.Transport.TogglePlayPause()
	case ctlNext:
		d.Transport.Next()
	case ctlLoop:
		d.Transport.ToggleLoop()
	case ctlQueue:
		d.Panels.Toggle(deck.PanelQueue)
	case ctlSearch:
		d.Panels.Toggle(deck.PanelSearch)
	case ctlSettings:
		d.Panels.Toggle(deck.PanelSettingsMain)
	case ctlTheme:
		d.ToggleTheme()
	}
}

// drag follows the pointer while a button is held.
func (m *Model) drag(x, y int, lay layout) {
	switch {
	case m.deck.Progress.Dragging():
		m.deck.Progress.SeekToPointer(pointer(x), lay.progress.bar(0))
	case m.deck.Volume.Dragging():
		m.deck.Volume.SetFromPointer(pointer(x), lay.amp.bar(1))
	case m.scrolling:
		m.scrollTo(y, lay.scroll)
	default:
		m.hover(y, lay)
	}
}

// hover moves the search and menu cursors under the pointer, with or
// without a button held.
func (m *Model) hover(y int, lay layout) {
	i, ok := lay.itemAt(y)
	if !ok {
		return
	}
	switch m.deck.Panels.State() {
	case deck.PanelSearch:
		if i != m.deck.Search.Selected() {
			m.deck.Search.Hover(i)
		}
	case deck.PanelSettingsMain:
		if deck.MenuItems[i] != m.deck.Panels.Menu() {
			m.deck.Panels.HoverMenu(i)
		}
	}
}

func (m *Model) pressPanel(panel deck.Panel, x, y int, lay layout) {
	if !lay.inPanel(y) {
		m.deck.Panels.ClickOutside()
		return
	}
	if lay.scroll.contains(x, y) {
		m.scrolling = true
		m.scrollTo(y, lay.scroll)
		return
	}
	i, ok := lay.itemAt(y)
	if !ok {
		return
	}
	switch panel {
	case deck.PanelQueue:
		m.deck.SelectQueueRow(i)
	case deck.PanelSearch:
		m.deck.Search.Hover(i)
		m.deck.CommitSearch()
	case deck.PanelSettingsMain:
		m.deck.Panels.HoverMenu(i)
		m.deck.ActivateMenu()
	case deck.PanelSettingsShortcuts:
		m.deck.ActivateMenu()
	case deck.PanelInstrumentPicker:
		m.deck.PickSkin(i)
	}
}

// scrollTo maps a row on the scrollbar to a queue offset.
func (m *Model) scrollTo(y int, bar scrollbar) {
	n := m.deck.Catalog().Len()
	if bar.rows <= 1 || n <= queueRows {
		return
	}
	off := max(0, min(y-bar.top, bar.rows-1))
	m.queueTop = off * (n - queueRows) / (bar.rows - 1)
	m.clampQueueTop()
}
