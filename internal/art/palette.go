package art

import (
	"fmt"
	"image/color"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Brightness ramp from darkest to brightest.
const asciiRamp = " .:-=+*#%@"

// ColorMode describes how the terminal renders colour.
type ColorMode uint8

const (
	ColorOff ColorMode = iota
	ColorANSI16
	ColorANSI256
	ColorTrue
)

var (
	detectOnce sync.Once
	termColor  ColorMode
)

// DetectColorMode inspects the environment once per process.
func DetectColorMode() ColorMode {
	detectOnce.Do(func() {
		_, noColor := os.LookupEnv("NO_COLOR")
		termColor = colorModeFor(noColor, os.Getenv("TERM"), os.Getenv("COLORTERM"), runtime.GOOS)
	})
	return termColor
}

func colorModeFor(noColor bool, term, colorterm, goos string) ColorMode {
	term = strings.ToLower(term)
	colorterm = strings.ToLower(colorterm)
	switch {
	case noColor:
		return ColorOff
	case strings.Contains(colorterm, "truecolor"), strings.Contains(colorterm, "24bit"):
		return ColorTrue
	case strings.Contains(term, "256color"):
		return ColorANSI256
	case term == "dumb":
		return ColorOff
	case term == "" && goos == "windows":
		return ColorANSI16
	case term == "":
		return ColorOff
	default:
		return ColorANSI16
	}
}

type layer int

const (
	foreground layer = 38
	background layer = 48
)

// colorSeq returns the escape that sets c on the given layer, or "" when
// colour is off.
func colorSeq(mode ColorMode, l layer, c color.RGBA) string {
	switch mode {
	case ColorTrue:
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", l, c.R, c.G, c.B)
	case ColorANSI256:
		idx := 16 + 36*(int(c.R)*5/255) + 6*(int(c.G)*5/255) + int(c.B)*5/255
		return fmt.Sprintf("\x1b[%d;5;%dm", l, idx)
	case ColorANSI16:
		base := 30
		if l == background {
			base = 40
		}
		best := nearest16(c)
		if best >= 8 {
			return fmt.Sprintf("\x1b[%dm", base+60+best-8)
		}
		return fmt.Sprintf("\x1b[%dm", base+best)
	default:
		return ""
	}
}

const ansiReset = "\x1b[0m"

func nearest16(c color.RGBA) int {
	best, bestDist := 0, 1<<31-1
	for i, p := range ansi16Palette {
		dr, dg, db := int(c.R)-int(p.R), int(c.G)-int(p.G), int(c.B)-int(p.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var ansi16Palette = [16]color.RGBA{
	{0, 0, 0, 255},
	{205, 49, 49, 255},
	{13, 188, 121, 255},
	{229, 229, 16, 255},
	{36, 114, 200, 255},
	{188, 63, 188, 255},
	{17, 168, 205, 255},
	{229, 229, 229, 255},
	{102, 102, 102, 255},
	{241, 76, 76, 255},
	{35, 209, 139, 255},
	{245, 245, 67, 255},
	{59, 142, 234, 255},
	{214, 112, 214, 255},
	{41, 184, 219, 255},
	{255, 255, 255, 255},
}

// luminance is ITU-R BT.601 perceived brightness.
func luminance(c color.RGBA) uint8 {
	return uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000)
}

func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}
