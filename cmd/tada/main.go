package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand); set flags override tada.toml.
	configPath := flag.String("config", "", "path to a tada.toml settings file")
	dir := flag.String("dir", "", "directory holding the list files (default: working directory)")
	theme := flag.String("theme", "", "classic, neon or mono")
	color := flag.String("color", "", "auto, always or never")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Usage = func() {
		cli.PrintHelp(os.Stderr)
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}
	override(&cfg.DataDir, *dir)
	override(&cfg.Theme, *theme)
	override(&cfg.Color, *color)
	override(&cfg.LogLevel, *logLevel)
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}

	ui.SetColorMode(cfg.Color)
	ui.SetTheme(cfg.Theme)
	logger := logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	store, err := jsonstore.New(cfg.DataDir, logger)
	if err != nil {
		ui.Fail(os.Stderr, err.Error())
		os.Exit(1)
	}

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		Store:           store,
		Log:             logger,
		DefaultPriority: cfg.Priority(),
	})
	os.Exit(code)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
