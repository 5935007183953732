package media

import (
	"path/filepath"
	"strings"
)

var audioExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

var playlistExts = map[string]bool{
	".m3u":  true,
	".m3u8": true,
	".pls":  true,
}

var catalogExts = map[string]bool{
	".toml": true,
	".json": true,
}

// IsSupportedExt returns true if the extension is a playable audio format.
func IsSupportedExt(ext string) bool {
	return audioExts[strings.ToLower(ext)]
}

// IsPlaylistExt returns true if the extension is a supported playlist format.
func IsPlaylistExt(ext string) bool {
	return playlistExts[strings.ToLower(ext)]
}

// IsCatalogExt returns true if the extension is a catalog file format.
func IsCatalogExt(ext string) bool {
	return catalogExts[strings.ToLower(ext)]
}

// IsRemote reports whether src looks like a URL rather than a local path.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IsPlayable reports whether src names a local file with a supported extension.
func IsPlayable(src string) bool {
	return !IsRemote(src) && IsSupportedExt(filepath.Ext(src))
}

// SupportedExtsList returns a human-readable list of supported audio formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}
