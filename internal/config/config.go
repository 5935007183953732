// Package config reads and writes the player's settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/20after4/configdir"
	"github.com/pelletier/go-toml/v2"
)

const (
	AppName  = "ampdeck"
	fileName = "config.toml"

	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config is the on-disk settings file.
type Config struct {
	Volume           float64  `toml:"volume"`
	Theme            string   `toml:"theme"`
	ShortcutsEnabled bool     `toml:"shortcuts_enabled"`
	Effects          bool     `toml:"effects"`
	Skin             string   `toml:"skin"`
	Catalog          string   `toml:"catalog"`
	ArtFallbacks     []string `toml:"art_fallbacks"`
	LogFile          string   `toml:"log_file"`
	LogLevel         string   `toml:"log_level"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Volume:           0.5,
		Theme:            ThemeDark,
		ShortcutsEnabled: true,
		Effects:          true,
		LogLevel:         "info",
	}
}

// Dir is the per-user configuration directory.
func Dir() string {
	return configdir.LocalConfig(AppName)
}

// DefaultPath is the settings file inside Dir.
func DefaultPath() string {
	return filepath.Join(Dir(), fileName)
}

// Read loads path over the defaults. A missing file is not an error.
func Read(path string) (*Config, error) {
	c := Default()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(c); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	c.normalize()
	return c, nil
}

// normalize repairs out-of-range values instead of rejecting the file.
func (c *Config) normalize() {
	if c.Volume < 0 || c.Volume > 1 {
		slog.Warn("config volume out of range, clamping", "volume", c.Volume)
		c.Volume = max(0, min(c.Volume, 1))
	}
	switch t := strings.ToLower(strings.TrimSpace(c.Theme)); t {
	case ThemeDark, ThemeLight:
		c.Theme = t
	default:
		slog.Warn("unknown theme in config, using dark", "theme", c.Theme)
		c.Theme = ThemeDark
	}
}

// Write saves c to path, creating the directory if needed.
func (c *Config) Write(path string) error {
	if err := configdir.MakePath(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
