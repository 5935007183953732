package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olivier-w/ampdeck/internal/media"
	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"
)

// fileTrack is one record of a catalog file: {name, artist, src, image}.
type fileTrack struct {
	Name   string `toml:"name" json:"name"`
	Artist string `toml:"artist" json:"artist"`
	Src    string `toml:"src" json:"src"`
	Image  string `toml:"image" json:"image"`
}

type fileSkin struct {
	Name  string `toml:"name" json:"name"`
	Image string `toml:"image" json:"image"`
}

type fileCatalog struct {
	Tracks []fileTrack `toml:"track" json:"tracks"`
	Skins  []fileSkin  `toml:"skin" json:"skins"`
}

// Load builds a catalog from source, which may be a catalog file (.toml/.json),
// a playlist (.m3u/.m3u8/.pls), a directory of audio files, or a single audio
// file (in which case its directory is scanned).
func Load(source string) (*Catalog, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, err
	}

	var c *Catalog
	ext := filepath.Ext(source)
	switch {
	case info.IsDir():
		c, err = loadDir(source)
	case media.IsCatalogExt(ext):
		c, err = LoadFile(source)
	case media.IsPlaylistExt(ext):
		c, err = loadPlaylist(source)
	case media.IsSupportedExt(ext):
		c, err = loadDir(filepath.Dir(source))
	default:
		return nil, fmt.Errorf("unsupported source %s (supported: %s, playlists, catalog files or directories)", source, media.SupportedExtsList())
	}
	if err != nil {
		return nil, err
	}
	c.source = source
	return c, nil
}

// LoadFile reads a TOML or JSON catalog file. Relative src and image
// references resolve against the file's directory.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var fc fileCatalog
	if strings.EqualFold(filepath.Ext(path), ".json") {
		fc, err = decodeJSONCatalog(data)
	} else {
		err = toml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", filepath.Base(path), err)
	}

	base := filepath.Dir(path)
	tracks := lo.Map(fc.Tracks, func(ft fileTrack, _ int) Track {
		return Track{
			Title:    ft.Name,
			Artist:   ft.Artist,
			MediaRef: resolveRef(ft.Src, base),
			ArtRef:   resolveRef(ft.Image, base),
		}
	})
	skins := lo.Map(fc.Skins, func(fs fileSkin, _ int) Skin {
		return Skin{Name: fs.Name, Image: resolveRef(fs.Image, base)}
	})
	return New(tracks, skins), nil
}

// decodeJSONCatalog accepts either {"tracks": [...], "skins": [...]} or a bare
// array of track records.
func decodeJSONCatalog(data []byte) (fileCatalog, error) {
	var fc fileCatalog
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err := json.Unmarshal(data, &fc.Tracks)
		return fc, err
	}
	err := json.Unmarshal(data, &fc)
	return fc, err
}

func loadPlaylist(path string) (*Catalog, error) {
	entries, err := media.ParseLocalPlaylist(path)
	if err != nil {
		return nil, err
	}
	entries, _ = media.FilterPlayable(entries)
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}

	tracks := lo.Map(entries, func(e media.PlaylistEntry, _ int) Track {
		meta := ReadMetadata(e.Path)
		if e.Title != "" && meta.Artist == "" {
			// Playlist titles conventionally read "Artist - Title".
			split := splitLabel(e.Title)
			if split.Artist != "" {
				meta = Metadata{Title: split.Artist, Artist: split.Title}
			} else {
				meta.Title = e.Title
			}
		}
		return Track{Title: meta.Title, Artist: meta.Artist, MediaRef: e.Path}
	})
	return New(tracks, nil), nil
}

func loadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !media.IsSupportedExt(filepath.Ext(e.Name())) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, ErrEmptyCatalog
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})

	tracks := lo.Map(files, func(f string, _ int) Track {
		meta := ReadMetadata(f)
		return Track{Title: meta.Title, Artist: meta.Artist, MediaRef: f, ArtRef: siblingArt(f)}
	})
	return New(tracks, nil), nil
}

// siblingArt returns an image next to the audio file sharing its base name, if present.
func siblingArt(audioPath string) string {
	stem := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
		if info, err := os.Stat(stem + ext); err == nil && !info.IsDir() {
			return stem + ext
		}
	}
	return ""
}

func resolveRef(ref, base string) string {
	if ref == "" || media.IsRemote(ref) || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(base, filepath.FromSlash(ref))
}
