package art

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// Renderer draws images into terminal cells. With colour it packs two pixel
// rows per cell using "▀" with fg/bg colours; without colour it maps each
// pixel to a brightness character.
type Renderer struct {
	mode ColorMode
	sb   strings.Builder
}

// NewRenderer creates a renderer for the current terminal.
func NewRenderer() *Renderer {
	return &Renderer{mode: DetectColorMode()}
}

// NewRendererMode creates a renderer with an explicit colour mode.
func NewRendererMode(mode ColorMode) *Renderer {
	return &Renderer{mode: mode}
}

// Mode reports the renderer's colour mode.
func (r *Renderer) Mode() ColorMode { return r.mode }

// Render scales img into at most cols x rows cells, keeping its aspect.
func (r *Renderer) Render(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	halfBlock := r.mode != ColorOff
	outW, outH, pxW, pxH := Fit(cols, rows, b.Dx(), b.Dy(), halfBlock)
	if outW == 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	r.sb.Reset()
	r.sb.Grow(outW * outH * 24)
	if halfBlock {
		r.renderHalfBlock(dst, outW, outH)
	} else {
		r.renderASCII(dst, outW, outH)
	}
	return r.sb.String()
}

func (r *Renderer) renderHalfBlock(px *image.RGBA, outW, outH int) {
	var lastFg, lastBg string
	for row := 0; row < outH; row++ {
		for col := 0; col < outW; col++ {
			fg := colorSeq(r.mode, foreground, pixelAt(px, col, row*2))
			bg := colorSeq(r.mode, background, pixelAt(px, col, row*2+1))
			if fg != lastFg {
				r.sb.WriteString(fg)
				lastFg = fg
			}
			if bg != lastBg {
				r.sb.WriteString(bg)
				lastBg = bg
			}
			r.sb.WriteString("▀")
		}
		r.sb.WriteString(ansiReset)
		lastFg, lastBg = "", ""
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

func (r *Renderer) renderASCII(px *image.RGBA, outW, outH int) {
	for row := 0; row < outH; row++ {
		for col := 0; col < outW; col++ {
			r.sb.WriteByte(brightnessChar(luminance(pixelAt(px, col, row))))
		}
		if row < outH-1 {
			r.sb.WriteByte('\n')
		}
	}
}

// pixelAt returns black outside the image so odd heights render cleanly.
func pixelAt(px *image.RGBA, x, y int) color.RGBA {
	if !(image.Point{x, y}.In(px.Rect)) {
		return color.RGBA{A: 255}
	}
	return px.RGBAAt(x, y)
}

// Fit computes terminal cell dimensions and the pixel size to scale a
// srcW x srcH image to, given the available cells. Cells are treated as
// twice as tall as they are wide. In colour mode every cell row holds two
// pixel rows.
func Fit(cols, rows, srcW, srcH int, halfBlock bool) (outW, outH, pxW, pxH int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0, 0, 0
	}

	perRow := 1
	if halfBlock {
		perRow = 2
	}
	maxPxH := rows * perRow
	// Pixels per cell row relative to cell width.
	cellAspect := 2.0 / float64(perRow)
	aspect := float64(srcW) / float64(srcH)

	pxW = cols
	pxH = int(float64(cols) / aspect / cellAspect)
	if pxH > maxPxH {
		pxH = maxPxH
		pxW = min(cols, int(float64(maxPxH)*aspect*cellAspect))
	}
	pxW = max(pxW, 4)
	pxH = max(pxH, perRow*2)

	outW = pxW
	outH = (pxH + perRow - 1) / perRow
	return outW, outH, pxW, pxH
}
