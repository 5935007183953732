package media

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PlaylistEntry is one local item from a playlist file. Title is the display
// name the playlist supplied, if any.
type PlaylistEntry struct {
	Path  string
	Title string
}

// ParseLocalPlaylist parses a local .m3u/.m3u8/.pls file into entries.
// Relative entries are resolved against the playlist file directory.
// Remote (URL) entries are skipped.
func ParseLocalPlaylist(path string) ([]PlaylistEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsPlaylistExt(ext) {
		return nil, fmt.Errorf("unsupported playlist format %s", ext)
	}

	absPlaylistPath, err := filepath.Abs(path)
	if err != nil {
		absPlaylistPath = path
	}

	data, err := os.ReadFile(absPlaylistPath)
	if err != nil {
		return nil, fmt.Errorf("reading playlist: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("playlist is not valid UTF-8")
	}
	data = bytes.TrimPrefix(data, []byte("\uFEFF"))

	baseDir := filepath.Dir(absPlaylistPath)
	scanner := bufio.NewScanner(bytes.NewReader(data))

	if ext == ".pls" {
		return parsePLS(scanner, baseDir), nil
	}
	return parseM3U(scanner, baseDir), nil
}

// FilterPlayable keeps only entries that exist on disk with a supported
// extension and reports how many were dropped.
func FilterPlayable(entries []PlaylistEntry) ([]PlaylistEntry, int) {
	out := make([]PlaylistEntry, 0, len(entries))
	for _, e := range entries {
		info, err := os.Stat(e.Path)
		if err != nil || info.IsDir() || !IsSupportedExt(filepath.Ext(e.Path)) {
			continue
		}
		out = append(out, e)
	}
	return out, len(entries) - len(out)
}

func parseM3U(scanner *bufio.Scanner, baseDir string) []PlaylistEntry {
	entries := make([]PlaylistEntry, 0)
	var title string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "#EXTINF:"); ok {
			if _, name, found := strings.Cut(rest, ","); found {
				title = strings.TrimSpace(name)
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.Trim(line, "\"")
		if IsRemote(line) {
			title = ""
			continue
		}
		entries = append(entries, PlaylistEntry{Path: resolveEntryPath(line, baseDir), Title: title})
		title = ""
	}
	return entries
}

func parsePLS(scanner *bufio.Scanner, baseDir string) []PlaylistEntry {
	files := map[string]string{}
	titles := map[string]string{}
	var order []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)
		if val == "" {
			continue
		}
		if n, ok := plsIndex(key, "file"); ok {
			if IsRemote(val) {
				continue
			}
			if _, seen := files[n]; !seen {
				order = append(order, n)
			}
			files[n] = resolveEntryPath(val, baseDir)
		} else if n, ok := plsIndex(key, "title"); ok {
			titles[n] = val
		}
	}

	entries := make([]PlaylistEntry, 0, len(order))
	for _, n := range order {
		entries = append(entries, PlaylistEntry{Path: files[n], Title: titles[n]})
	}
	return entries
}

func plsIndex(key, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(key, prefix)
	if !ok || rest == "" {
		return "", false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return "", false
		}
	}
	return rest, true
}

func resolveEntryPath(raw, baseDir string) string {
	p := filepath.Clean(raw)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(baseDir, p))
}
