package catalog

import (
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Metadata holds the display fields read for an audio file.
type Metadata struct {
	Title  string
	Artist string
}

// ReadMetadata reads ID3v2 tags from an MP3 file, falling back to the file name.
// File names of the form "Title - Artist" are split into both fields.
func ReadMetadata(path string) Metadata {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Title", "Artist"}})
		if err == nil {
			defer tag.Close()
			m := Metadata{
				Title:  strings.TrimSpace(tag.Title()),
				Artist: strings.TrimSpace(tag.Artist()),
			}
			if m.Title != "" {
				return m
			}
		}
	}
	return metadataFromName(path)
}

func metadataFromName(path string) Metadata {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return splitLabel(name)
}

// splitLabel splits "Title - Artist" on the last separator.
func splitLabel(label string) Metadata {
	i := strings.LastIndex(label, " - ")
	if i <= 0 {
		return Metadata{Title: strings.TrimSpace(label)}
	}
	return Metadata{
		Title:  strings.TrimSpace(label[:i]),
		Artist: strings.TrimSpace(label[i+3:]),
	}
}
