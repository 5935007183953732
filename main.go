package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/ampdeck/internal/catalog"
	"github.com/olivier-w/ampdeck/internal/config"
	"github.com/olivier-w/ampdeck/internal/deck"
	"github.com/olivier-w/ampdeck/internal/engine"
	"github.com/olivier-w/ampdeck/internal/sfx"
	"github.com/olivier-w/ampdeck/internal/ui"
	"github.com/spf13/cobra"
)

type Params struct {
	Source      string  `pos:"true" optional:"true" help:"Catalog file, playlist, directory or audio file. Defaults to the configured catalog, then the current directory."`
	Volume      float64 `optional:"true" help:"Initial volume between 0 and 1." default:"0.5"`
	Theme       string  `short:"t" optional:"true" help:"Colour theme (dark or light)." default:"dark"`
	Config      string  `short:"c" optional:"true" help:"Settings file (default: the per-user config directory)."`
	NoEffects   bool    `optional:"true" help:"Disable click sound effects."`
	NoShortcuts bool    `optional:"true" help:"Start with keyboard shortcuts disabled."`
	LogFile     string  `optional:"true" help:"Write logs to this file."`
	Debug       bool    `short:"d" optional:"true" help:"Log at debug level."`
}

func main() {
	boa.CmdT[Params]{
		Use:         "ampdeck [source]",
		Short:       "A terminal music deck",
		Long:        "Play a catalog of tracks with keyboard and mouse controls, search, a queue and an amplifier.",
		Version:     appVersion(),
		ParamEnrich: paramEnricher(),
		SubCmds: []*cobra.Command{
			searchCmd(),
			initCmd(),
		},
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := run(params, cmd); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}.Run()
}

func paramEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

func run(params *Params, cmd *cobra.Command) error {
	cfg, cfgErr := loadConfig(params.Config)
	applyFlags(cfg, params, cmd)

	level := config.ParseLevel(cfg.LogLevel)
	if params.Debug {
		level = slog.LevelDebug
	}
	closeLog, err := config.SetupLogging(cfg.LogFile, level)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closeLog()
	if cfgErr != nil {
		slog.Warn("settings file unreadable, using defaults", "err", cfgErr)
	}

	cat, err := loadCatalog(params.Source, cfg)
	if err != nil {
		return err
	}
	slog.Info("catalog loaded", "source", cat.Source(), "tracks", cat.Len(), "skins", len(cat.Skins()))

	out, err := engine.OpenOutput()
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	m := ui.New(ui.Params{
		Catalog:   cat,
		Backend:   engine.NewPlayer(out),
		Effects:   sfx.New(out, cfg.Effects),
		Fallbacks: cfg.ArtFallbacks,
		Options: deck.Options{
			Volume:           cfg.Volume,
			Theme:            deck.ParseTheme(cfg.Theme),
			ShortcutsEnabled: cfg.ShortcutsEnabled,
			Skin:             cfg.Skin,
		},
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Read(path)
}

// applyFlags lets flags given on the command line override the file.
func applyFlags(cfg *config.Config, params *Params, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("volume") {
		cfg.Volume = max(0, min(params.Volume, 1))
	}
	if flags.Changed("theme") {
		cfg.Theme = params.Theme
	}
	if params.NoEffects {
		cfg.Effects = false
	}
	if params.NoShortcuts {
		cfg.ShortcutsEnabled = false
	}
	if params.LogFile != "" {
		cfg.LogFile = params.LogFile
	}
}

// loadCatalog resolves the source argument, falling back to the configured
// catalog and then the working directory.
func loadCatalog(source string, cfg *config.Config) (*catalog.Catalog, error) {
	if source == "" {
		source = cfg.Catalog
	}
	if source == "" {
		source = "."
	}
	cat, err := catalog.Load(source)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", source, err)
	}
	return cat, nil
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "unknown"
	}
	return bi.Main.Version
}
