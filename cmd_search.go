package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/olivier-w/ampdeck/internal/catalog"
	"github.com/olivier-w/ampdeck/internal/deck"
	"github.com/spf13/cobra"
)

type SearchParams struct {
	Query  []string `pos:"true" help:"Words to search for in titles and artists."`
	Source string   `short:"s" optional:"true" help:"Catalog to search (default: the configured catalog, then the current directory)."`
	Config string   `short:"c" optional:"true" help:"Settings file (default: the per-user config directory)."`
}

func searchCmd() *cobra.Command {
	return boa.CmdT[SearchParams]{
		Use:         "search <query>",
		Short:       "Rank catalog tracks against a query",
		Long:        "Print the tracks a search would offer, prefix matches first, without starting the player.",
		ParamEnrich: paramEnricher(),
		RunFunc: func(params *SearchParams, cmd *cobra.Command, args []string) {
			cfg, _ := loadConfig(params.Config)
			cat, err := loadCatalog(params.Source, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if n := printRanked(os.Stdout, strings.Join(params.Query, " "), cat); n == 0 {
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// printRanked writes one numbered line per match and returns the count.
func printRanked(w io.Writer, query string, cat *catalog.Catalog) int {
	results := deck.Rank(query, cat.Tracks())
	if len(results) == 0 {
		fmt.Fprintln(w, "No results")
		return 0
	}
	for _, t := range results {
		fmt.Fprintf(w, "%3d  %s\n", t.Index+1, t.Label())
	}
	return len(results)
}
