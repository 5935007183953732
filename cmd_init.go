package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/olivier-w/ampdeck/internal/config"
	"github.com/spf13/cobra"
)

type InitParams struct {
	Config string `short:"c" optional:"true" help:"Where to write the settings file (default: the per-user config directory)."`
	Force  bool   `short:"f" optional:"true" help:"Overwrite an existing settings file."`
}

func initCmd() *cobra.Command {
	return boa.CmdT[InitParams]{
		Use:         "init",
		Short:       "Write a settings file with the default values",
		ParamEnrich: paramEnricher(),
		RunFunc: func(params *InitParams, cmd *cobra.Command, args []string) {
			path, err := writeDefaults(params.Config, params.Force)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(path)
		},
	}.ToCobra()
}

func writeDefaults(path string, force bool) (string, error) {
	if path == "" {
		path = config.DefaultPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if err := config.Default().Write(path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
