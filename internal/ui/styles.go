package ui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/ampdeck/internal/deck"
)

type palette struct {
	text      lipgloss.Color
	subtle    lipgloss.Color
	muted     lipgloss.Color
	faint     lipgloss.Color
	accent    lipgloss.Color
	warn      lipgloss.Color
	flame     lipgloss.Color
	border    lipgloss.Color
	highlight lipgloss.Color
}

var (
	darkPalette = palette{
		text:      "#FFFFFF",
		subtle:    "#BBBBBB",
		muted:     "#888888",
		faint:     "#666666",
		accent:    "#FF8C00",
		warn:      "#FF5F5F",
		flame:     "#FF5F1F",
		border:    "#444444",
		highlight: "#303030",
	}
	lightPalette = palette{
		text:      "#333333",
		subtle:    "#555555",
		muted:     "#888888",
		faint:     "#999999",
		accent:    "#D75F00",
		warn:      "#D70000",
		flame:     "#D7005F",
		border:    "#BBBBBB",
		highlight: "#E4E4E4",
	}
)

type styles struct {
	header   lipgloss.Style
	title    lipgloss.Style
	artist   lipgloss.Style
	time     lipgloss.Style
	status   lipgloss.Style
	help     lipgloss.Style
	accent   lipgloss.Style
	warn     lipgloss.Style
	flame    lipgloss.Style
	barFull  lipgloss.Style
	barEmpty lipgloss.Style
	selected lipgloss.Style
	panel    lipgloss.Style
}

// newStyles builds the style set for theme. A non-nil accent, usually the
// dominant colour of the current artwork, replaces the palette accent.
func newStyles(theme deck.Theme, accent *color.RGBA) styles {
	p := darkPalette
	if theme == deck.ThemeLight {
		p = lightPalette
	}
	if accent != nil {
		p.accent = lipgloss.Color(hexColor(*accent))
	}

	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(p.muted),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
		artist:   lipgloss.NewStyle().Foreground(p.subtle),
		time:     lipgloss.NewStyle().Foreground(p.muted),
		status:   lipgloss.NewStyle().Foreground(p.subtle),
		help:     lipgloss.NewStyle().Foreground(p.faint),
		accent:   lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		warn:     lipgloss.NewStyle().Foreground(p.warn),
		flame:    lipgloss.NewStyle().Foreground(p.flame),
		barFull:  lipgloss.NewStyle().Foreground(p.accent),
		barEmpty: lipgloss.NewStyle().Foreground(p.border),
		selected: lipgloss.NewStyle().Bold(true).Foreground(p.text).Background(p.highlight),
		panel:    lipgloss.NewStyle().Foreground(p.subtle),
	}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
