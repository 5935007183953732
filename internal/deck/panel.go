package deck

// Panel is the single overlay currently shown.
type Panel int

const (
	PanelClosed Panel = iota
	PanelSettingsMain
	PanelSettingsShortcuts
	PanelSettingsCredits
	PanelQueue
	PanelSearch
	PanelInstrumentPicker
)

func (p Panel) String() string {
	switch p {
	case PanelClosed:
		return "closed"
	case PanelSettingsMain:
		return "settings"
	case PanelSettingsShortcuts:
		return "settings/shortcuts"
	case PanelSettingsCredits:
		return "settings/credits"
	case PanelQueue:
		return "queue"
	case PanelSearch:
		return "search"
	case PanelInstrumentPicker:
		return "instrument picker"
	default:
		return "unknown"
	}
}

// Settings reports whether p is the settings menu or one of its subviews.
func (p Panel) Settings() bool {
	return p == PanelSettingsMain || p == PanelSettingsShortcuts || p == PanelSettingsCredits
}

// MenuItem is an entry of the settings menu.
type MenuItem int

const (
	MenuShortcuts MenuItem = iota
	MenuCredits
	MenuTheme
)

// MenuItems lists the settings menu in display order.
var MenuItems = []MenuItem{MenuShortcuts, MenuCredits, MenuTheme}

func (m MenuItem) String() string {
	switch m {
	case MenuShortcuts:
		return "Shortcuts"
	case MenuCredits:
		return "Credits"
	case MenuTheme:
		return "Theme"
	default:
		return "?"
	}
}

// Panels enforces that at most one panel is open.
type Panels struct {
	s *session

	state    Panel
	menu     int
	onChange func(from, to Panel)
}

func (p *Panels) State() Panel { return p.state }

// Menu is the settings cursor.
func (p *Panels) Menu() MenuItem { return MenuItems[p.menu] }

// Open shows panel, closing whatever was open. Every transition plays one
// effect.
func (p *Panels) Open(panel Panel) {
	if p.state == panel {
		return
	}
	from := p.state
	p.state = panel
	p.s.click()
	if p.onChange != nil {
		p.onChange(from, panel)
	}
	p.s.notify(EventPanel)
}

// Close returns to no panel.
func (p *Panels) Close() { p.Open(PanelClosed) }

// Toggle opens panel, or closes it if it is already showing. Settings
// toggles as a whole regardless of subview.
func (p *Panels) Toggle(panel Panel) {
	if p.state == panel || (panel.Settings() && p.state.Settings()) {
		p.Close()
		return
	}
	p.Open(panel)
}

// Escape dismisses the innermost open view, or opens settings when
// nothing is open.
func (p *Panels) Escape() {
	switch p.state {
	case PanelSearch, PanelInstrumentPicker, PanelSettingsMain, PanelQueue:
		p.Close()
	case PanelSettingsShortcuts, PanelSettingsCredits:
		p.Open(PanelSettingsMain)
	default:
		p.Open(PanelSettingsMain)
	}
}

// ClickOutside closes the open panel.
func (p *Panels) ClickOutside() {
	if p.state != PanelClosed {
		p.Close()
	}
}

// MenuDown moves the settings cursor, wrapping.
func (p *Panels) MenuDown() {
	p.menu = (p.menu + 1) % len(MenuItems)
	p.s.notify(EventPanel)
}

// MenuUp moves the settings cursor back, wrapping.
func (p *Panels) MenuUp() {
	p.menu = (p.menu - 1 + len(MenuItems)) % len(MenuItems)
	p.s.notify(EventPanel)
}

// HoverMenu points the settings cursor at item i.
func (p *Panels) HoverMenu(i int) {
	if i >= 0 && i < len(MenuItems) {
		p.menu = i
		p.s.notify(EventPanel)
	}
}
