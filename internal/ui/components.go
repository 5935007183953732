package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderProgressBar draws a scrubber of width cells filled to ratio.
func renderProgressBar(st styles, ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(ratio, 1))
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return st.barFull.Render(strings.Repeat("━", filled)) +
		st.barEmpty.Render(strings.Repeat("─", width-filled))
}

// renderSlider draws the amp slider with its one-cell thumb at offset.
func renderSlider(st styles, offset float64, width int) string {
	if width <= 0 {
		return ""
	}
	thumb := int(math.Round(offset))
	thumb = max(0, min(thumb, width-1))
	return st.barFull.Render(strings.Repeat("━", thumb)) +
		st.accent.Render("●") +
		st.barEmpty.Render(strings.Repeat("─", width-thumb-1))
}

func renderVolumePercent(percent int) string {
	return fmt.Sprintf("%3d%%", percent)
}

var flameGlyphs = []rune(" ▁▂▃▄▅▆▇█")

// flameShape gives each column a fixed relative height so the row reads as
// a fire rather than a flat bar.
var flameShape = []float64{0.55, 0.8, 1, 0.7, 0.9, 0.6, 0.95, 0.75}

// renderFlame draws a row of width flames at intensity level.
func renderFlame(st styles, level float64, width int) string {
	if width <= 0 {
		return ""
	}
	level = math.Max(0, math.Min(level, 1))
	var sb strings.Builder
	top := len(flameGlyphs) - 1
	for i := range width {
		h := int(math.Round(level * flameShape[i%len(flameShape)] * float64(top)))
		sb.WriteRune(flameGlyphs[max(0, min(h, top))])
	}
	return st.flame.Render(sb.String())
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// padRight fills s with spaces to width display cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}
