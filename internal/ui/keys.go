package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ampdeck/internal/deck"
)

// isQuit reports whether msg ends the program. q is text while the search
// field has focus.
func isQuit(msg tea.KeyMsg, searching bool) bool {
	switch msg.String() {
	case "ctrl+c":
		return true
	case "q":
		return !searching
	}
	return false
}

// deckKey translates a terminal key into the physical key code the deck
// routes on. Letters map to their key regardless of case.
func deckKey(msg tea.KeyMsg) (deck.Key, bool) {
	if msg.Alt {
		return deck.Key{}, false
	}
	switch msg.Type {
	case tea.KeySpace:
		return deck.Key{Code: deck.KeySpace}, true
	case tea.KeyEnter:
		return deck.Key{Code: deck.KeyEnter}, true
	case tea.KeyEsc:
		return deck.Key{Code: deck.KeyEscape}, true
	case tea.KeyInsert:
		return deck.Key{Code: deck.KeyInsert}, true
	case tea.KeyLeft:
		return deck.Key{Code: deck.KeyArrowLeft}, true
	case tea.KeyRight:
		return deck.Key{Code: deck.KeyArrowRight}, true
	case tea.KeyUp:
		return deck.Key{Code: deck.KeyArrowUp}, true
	case tea.KeyDown:
		return deck.Key{Code: deck.KeyArrowDown}, true
	case tea.KeyCtrlK:
		return deck.Key{Code: deck.KeyK, Ctrl: true}, true
	case tea.KeyCtrlA:
		return deck.Key{Code: deck.KeyA, Ctrl: true}, true
	case tea.KeyCtrlJ:
		return deck.Key{Code: deck.KeyJ, Ctrl: true}, true
	case tea.KeyCtrlL:
		return deck.Key{Code: deck.KeyL, Ctrl: true}, true
	// Terminals cannot send ctrl+period, so ctrl+t stands in for it.
	case tea.KeyCtrlT:
		return deck.Key{Code: deck.KeyPeriod, Ctrl: true}, true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return deck.Key{}, false
		}
		code, ok := runeCodes[msg.Runes[0]]
		return deck.Key{Code: code}, ok
	}
	return deck.Key{}, false
}

var runeCodes = map[rune]string{
	'k': deck.KeyK, 'K': deck.KeyK,
	'j': deck.KeyJ, 'J': deck.KeyJ,
	'l': deck.KeyL, 'L': deck.KeyL,
	'r': deck.KeyR, 'R': deck.KeyR,
	'a': deck.KeyA, 'A': deck.KeyA,
	'i': deck.KeyI, 'I': deck.KeyI,
	'0': deck.KeyDigit0,
	'.': deck.KeyPeriod,
}

// shortcutKeys lists the bindings shown in Settings > Shortcuts.
type shortcutKeys struct {
	Toggle   key.Binding
	Prev     key.Binding
	Next     key.Binding
	Seek     key.Binding
	Volume   key.Binding
	Restart  key.Binding
	Picker   key.Binding
	Search   key.Binding
	Queue    key.Binding
	Amp      key.Binding
	Loop     key.Binding
	Theme    key.Binding
	Settings key.Binding
	Quit     key.Binding
}

func newShortcutKeys() shortcutKeys {
	return shortcutKeys{
		Toggle:   key.NewBinding(key.WithKeys(" ", "k"), key.WithHelp("space/k", "play/pause")),
		Prev:     key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "previous")),
		Next:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "next")),
		Seek:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "seek 5s")),
		Volume:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "volume")),
		Restart:  key.NewBinding(key.WithKeys("r", "0", "insert"), key.WithHelp("r/0", "restart")),
		Picker:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "instrument")),
		Search:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "search")),
		Queue:    key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "queue")),
		Amp:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "amp")),
		Loop:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "loop")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Settings: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "settings")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k shortcutKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Seek, k.Search, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k shortcutKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Prev, k.Next, k.Seek, k.Volume},
		{k.Restart, k.Picker, k.Search, k.Queue},
		{k.Amp, k.Loop, k.Theme, k.Settings, k.Quit},
	}
}
