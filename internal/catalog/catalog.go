package catalog

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

// ErrEmptyCatalog is returned when a source yields no playable tracks.
var ErrEmptyCatalog = errors.New("catalog has no playable tracks")

// Track is one immutable catalog entry. Index is its position in the catalog
// and stays stable for the session.
type Track struct {
	Index    int
	Title    string
	Artist   string
	MediaRef string
	ArtRef   string
}

// Label returns "Title - Artist", or just the title when the artist is unknown.
func (t Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Title + " - " + t.Artist
}

// Skin is an instrument skin offered by the instrument picker.
type Skin struct {
	Name  string
	Image string
}

// DefaultSkins is used when a catalog supplies no skins of its own.
var DefaultSkins = []Skin{
	{Name: "Guitar"},
	{Name: "Bass"},
	{Name: "Drums"},
	{Name: "Keys"},
}

// Catalog is an ordered, read-only list of tracks plus the skin list.
type Catalog struct {
	tracks []Track
	skins  []Skin
	source string
}

// New builds a catalog, assigning each track its index.
// A nil or empty skins slice selects DefaultSkins.
func New(tracks []Track, skins []Skin) *Catalog {
	indexed := lo.Map(tracks, func(t Track, i int) Track {
		t.Index = i
		return t
	})
	if len(skins) == 0 {
		skins = DefaultSkins
	}
	return &Catalog{tracks: indexed, skins: append([]Skin(nil), skins...)}
}

// Source returns the path the catalog was loaded from, if any.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tracks)
}

// Track returns the track at index i.
func (c *Catalog) Track(i int) (Track, bool) {
	if c == nil || i < 0 || i >= len(c.tracks) {
		return Track{}, false
	}
	return c.tracks[i], true
}

// Tracks returns a copy of all tracks in catalog order.
func (c *Catalog) Tracks() []Track {
	if c == nil {
		return nil
	}
	return append([]Track(nil), c.tracks...)
}

// Skins returns a copy of the skin list.
func (c *Catalog) Skins() []Skin {
	if c == nil {
		return append([]Skin(nil), DefaultSkins...)
	}
	return append([]Skin(nil), c.skins...)
}

// SkinIndex returns the index of the skin with the given name (case-insensitive).
func (c *Catalog) SkinIndex(name string) (int, bool) {
	_, i, ok := lo.FindIndexOf(c.Skins(), func(s Skin) bool {
		return strings.EqualFold(s.Name, name)
	})
	return i, ok
}
