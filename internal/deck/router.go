package deck

// Key codes understood by HandleKey. They name physical keys, so a shifted
// letter still reports its letter code.
const (
	KeySpace      = "Space"
	KeyK          = "KeyK"
	KeyJ          = "KeyJ"
	KeyL          = "KeyL"
	KeyR          = "KeyR"
	KeyA          = "KeyA"
	KeyI          = "KeyI"
	KeyDigit0     = "Digit0"
	KeyInsert     = "Insert"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeyPeriod     = "Period"
)

// Key is one key press.
type Key struct {
	Code string
	Ctrl bool
}

func (k Key) is(code string) bool     { return !k.Ctrl && k.Code == code }
func (k Key) isCtrl(code string) bool { return k.Ctrl && k.Code == code }

// HandleKey routes a key press and reports whether it was consumed. The
// first matching context wins: instrument picker, settings, focused
// search, then the global enable flag, panel dismissal, modifier chords,
// the queue cursor and finally bare keys.
func (d *Deck) HandleKey(k Key) bool {
	panel := d.Panels.State()

	switch {
	case panel == PanelInstrumentPicker:
		if k.is(KeyEscape) {
			d.Panels.Escape()
			return true
		}
		return false

	case panel.Settings():
		return d.settingsKey(k)

	case panel == PanelSearch:
		return d.searchKey(k)
	}

	if !d.shortcuts {
		return false
	}
	if k.is(KeyEscape) {
		d.Panels.Escape()
		return true
	}
	if k.Ctrl {
		return d.chordKey(k)
	}
	if panel == PanelQueue {
		switch k.Code {
		case KeyArrowUp:
			d.Queue.MoveUp()
			return true
		case KeyArrowDown:
			d.Queue.MoveDown()
			return true
		case KeyEnter:
			d.CommitQueue()
			return true
		}
	}
	return d.bareKey(k)
}

func (d *Deck) settingsKey(k Key) bool {
	switch {
	case k.is(KeyEscape):
		d.Panels.Escape()
	case k.isCtrl(KeyPeriod):
		d.ToggleTheme()
	case k.is(KeyArrowUp):
		if d.Panels.State() == PanelSettingsMain {
			d.Panels.MenuUp()
		}
	case k.is(KeyArrowDown):
		if d.Panels.State() == PanelSettingsMain {
			d.Panels.MenuDown()
		}
	case k.is(KeyEnter):
		d.ActivateMenu()
	default:
		return false
	}
	return true
}

// ActivateMenu performs the settings entry under the cursor. Inside the
// shortcuts view it toggles the global shortcut flag.
func (d *Deck) ActivateMenu() {
	switch d.Panels.State() {
	case PanelSettingsMain:
		switch d.Panels.Menu() {
		case MenuShortcuts:
			d.Panels.Open(PanelSettingsShortcuts)
		case MenuCredits:
			d.Panels.Open(PanelSettingsCredits)
		case MenuTheme:
			d.ToggleTheme()
		}
	case PanelSettingsShortcuts:
		d.SetShortcutsEnabled(!d.shortcuts)
	}
}

func (d *Deck) searchKey(k Key) bool {
	switch {
	case k.isCtrl(KeyK):
		d.Panels.Toggle(PanelSearch)
	case k.is(KeyEscape):
		d.Panels.Escape()
	case k.is(KeyArrowDown):
		d.Search.MoveDown()
	case k.is(KeyArrowUp):
		d.Search.MoveUp()
	case k.is(KeyEnter):
		d.CommitSearch()
	default:
		return false
	}
	return true
}

func (d *Deck) chordKey(k Key) bool {
	switch k.Code {
	case KeyK:
		d.Panels.Toggle(PanelSearch)
	case KeyA:
		d.Volume.ToggleAmp()
	case KeyJ:
		d.Panels.Toggle(PanelQueue)
	case KeyL:
		d.Transport.ToggleLoop()
	case KeyPeriod:
		d.ToggleTheme()
	default:
		return false
	}
	return true
}

func (d *Deck) bareKey(k Key) bool {
	switch k.Code {
	case KeyJ:
		d.Transport.Previous()
	case KeyL:
		d.Transport.Next()
	case KeyArrowLeft:
		d.Progress.SeekBy(-SeekStep)
	case KeyArrowRight:
		d.Progress.SeekBy(SeekStep)
	case KeyArrowUp:
		if !d.Volume.Open() {
			return false
		}
		d.Volume.Increase()
	case KeyArrowDown:
		if !d.Volume.Open() {
			return false
		}
		d.Volume.Decrease()
	case KeySpace, KeyK:
		d.Transport.TogglePlayPause()
	case KeyR, KeyDigit0, KeyInsert:
		d.Transport.Restart()
	case KeyI:
		d.Panels.Toggle(PanelInstrumentPicker)
	default:
		return false
	}
	return true
}
