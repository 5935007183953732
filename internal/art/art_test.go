package art

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
}

func TestLoadUsesRequestedArtwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	writePNG(t, path, color.RGBA{200, 20, 20, 255})

	a := Load(path, "", nil)
	if a.Source != path || a.Fallback {
		t.Fatalf("Load() = {Source: %q, Fallback: %v}, want requested artwork", a.Source, a.Fallback)
	}
	if a.Accent.R < a.Accent.G || a.Accent.R < a.Accent.B {
		t.Fatalf("Accent = %v, want red-dominant", a.Accent)
	}
}

func TestLoadFallsBackInOrder(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("nope"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	good := filepath.Join(dir, "placeholder.png")
	writePNG(t, good, color.RGBA{20, 20, 200, 255})

	a := Load(filepath.Join(dir, "missing.png"), "", []string{broken, good})
	if a.Source != good || !a.Fallback {
		t.Fatalf("Load() = {Source: %q, Fallback: %v}, want %q as fallback", a.Source, a.Fallback, good)
	}
}

func TestLoadTerminatesWithDefault(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.png")

	a := Load(missing, filepath.Join(dir, "song.mp3"), []string{missing, "https://example.com/x.png", missing})
	if a.Source != DefaultSource || a.Image == nil || !a.Fallback {
		t.Fatalf("Load() = {Source: %q, Fallback: %v}, want built-in default", a.Source, a.Fallback)
	}
}

func TestChainDeduplicates(t *testing.T) {
	got := Chain("a.png", "song.mp3", []string{"b.png", "a.png", "", "b.png"})
	want := []string{"a.png", "embedded:song.mp3", "b.png"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Chain() = %v, want %v", got, want)
	}
}

func TestFitKeepsAspect(t *testing.T) {
	tests := []struct {
		name                   string
		cols, rows, srcW, srcH int
		halfBlock              bool
		wantW, wantH           int
	}{
		{"square half-block", 20, 10, 100, 100, true, 20, 10},
		{"square ascii", 20, 10, 100, 100, false, 20, 10},
		{"wide half-block", 20, 10, 200, 100, true, 20, 5},
		{"tall half-block", 40, 10, 100, 200, true, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, _, _ := Fit(tt.cols, tt.rows, tt.srcW, tt.srcH, tt.halfBlock)
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("Fit() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderASCII(t *testing.T) {
	r := NewRendererMode(ColorOff)
	out := r.Render(Default(), 8, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("Render() produced %d lines, want 4:\n%s", len(lines), out)
	}
	for _, l := range lines {
		if len(l) != 8 {
			t.Fatalf("line %q has width %d, want 8", l, len(l))
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("ASCII render contains escape codes")
	}
}

func TestRenderHalfBlockResetsEachRow(t *testing.T) {
	out := NewRendererMode(ColorTrue).Render(Default(), 6, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() produced %d lines, want 3", len(lines))
	}
	for _, l := range lines {
		if !strings.HasSuffix(l, ansiReset) || strings.Count(l, "▀") != 6 {
			t.Fatalf("line %q is not a 6-cell half-block row", l)
		}
	}
}

func TestColorModeFor(t *testing.T) {
	tests := []struct {
		noColor        bool
		term, ct, goos string
		want           ColorMode
	}{
		{true, "xterm-256color", "truecolor", "linux", ColorOff},
		{false, "xterm", "truecolor", "linux", ColorTrue},
		{false, "xterm-256color", "", "linux", ColorANSI256},
		{false, "dumb", "", "linux", ColorOff},
		{false, "", "", "windows", ColorANSI16},
		{false, "xterm", "", "linux", ColorANSI16},
	}
	for _, tt := range tests {
		if got := colorModeFor(tt.noColor, tt.term, tt.ct, tt.goos); got != tt.want {
			t.Fatalf("colorModeFor(%v, %q, %q, %q) = %d, want %d", tt.noColor, tt.term, tt.ct, tt.goos, got, tt.want)
		}
	}
}
