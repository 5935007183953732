package art

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/cenkalti/dominantcolor"
	"github.com/samber/lo"
	_ "golang.org/x/image/webp"

	"github.com/olivier-w/ampdeck/internal/media"
)

// DefaultSource names the built-in artwork at the end of every chain.
const DefaultSource = "builtin:default"

// embeddedPrefix marks a candidate that reads the picture frame of an audio file.
const embeddedPrefix = "embedded:"

var errRemote = errors.New("remote artwork is not supported")

// Art is a decoded artwork image.
type Art struct {
	Image  image.Image
	Source string
	Accent color.RGBA
	// Fallback is set when the requested artwork could not be used.
	Fallback bool
}

// Chain lists the candidates Load tries for a track, in order: the
// track's own artwork, the picture embedded in its audio file, then the
// configured fallbacks. Duplicates are tried once.
func Chain(ref, mediaRef string, fallbacks []string) []string {
	var c []string
	if ref != "" {
		c = append(c, ref)
	}
	if strings.EqualFold(filepath.Ext(mediaRef), ".mp3") && !media.IsRemote(mediaRef) {
		c = append(c, embeddedPrefix+mediaRef)
	}
	c = append(c, lo.Compact(fallbacks)...)
	return lo.Uniq(c)
}

// Load walks the chain and returns the first candidate that decodes. Each
// candidate is tried exactly once; when all fail the built-in artwork is
// returned, so Load always yields an image.
func Load(ref, mediaRef string, fallbacks []string) Art {
	for i, cand := range Chain(ref, mediaRef, fallbacks) {
		img, err := decodeCandidate(cand)
		if err != nil {
			slog.Debug("artwork candidate failed", "src", cand, "err", err)
			continue
		}
		return Art{
			Image:    img,
			Source:   cand,
			Accent:   dominantcolor.Find(img),
			Fallback: ref != "" && i > 0,
		}
	}
	img := Default()
	return Art{Image: img, Source: DefaultSource, Accent: dominantcolor.Find(img), Fallback: ref != ""}
}

func decodeCandidate(cand string) (image.Image, error) {
	if path, ok := strings.CutPrefix(cand, embeddedPrefix); ok {
		return embeddedPicture(path)
	}
	if media.IsRemote(cand) {
		return nil, errRemote
	}
	f, err := os.Open(cand)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", cand, err)
	}
	return img, nil
}

func embeddedPicture(path string) (image.Image, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Attached picture"}})
	if err != nil {
		return nil, err
	}
	defer tag.Close()

	for _, f := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := f.(id3v2.PictureFrame)
		if !ok || len(pic.Picture) == 0 {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(pic.Picture))
		if err == nil {
			return img, nil
		}
	}
	return nil, errors.New("no embedded picture")
}

// Default draws the built-in artwork: a dark tile with a warm speaker cone.
func Default() image.Image {
	const size = 32
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	bg := color.RGBA{0x1e, 0x1b, 0x24, 0xff}
	rings := []color.RGBA{
		{0xe0, 0x6c, 0x2f, 0xff},
		{0x3a, 0x33, 0x40, 0xff},
		{0xf2, 0xa1, 0x4b, 0xff},
		{0x12, 0x10, 0x16, 0xff},
	}
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d := dx*dx + dy*dy
			px := bg
			switch {
			case d < 9:
				px = rings[3]
			case d < 36:
				px = rings[2]
			case d < 121:
				px = rings[1]
			case d < 196:
				px = rings[0]
			}
			img.SetRGBA(x, y, px)
		}
	}
	return img
}
