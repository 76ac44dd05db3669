// Package cmd implements the command line application computing investment returns.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/config"
	"github.com/etnz/returns/logging"
	"github.com/etnz/returns/renderer"
	"github.com/etnz/returns/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Commands are the subcommands of the application.
var Commands = []subcommands.Command{
	&returnCmd{},
	&priceCmd{},
	&importCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to the YAML configuration file")
	dataDir    = flag.String("data", "", "Directory of the CSV dataset (overrides the configuration)")
	source     = flag.String("source", "", "Dataset source: csv or sqlite (overrides the configuration)")
	dbPath     = flag.String("db", "", "Path to the SQLite database (overrides the configuration)")
	anchor     = flag.String("anchor", "", "Evaluation date YYYY-MM-DD (overrides the configuration)")
)

// outputs, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// loadConfig loads the configuration file and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *source != "" {
		cfg.Data.Source = *source
	}
	if *dbPath != "" {
		cfg.Storage.DSN = *dbPath
	}
	if *anchor != "" {
		cfg.Anchor = *anchor
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, stderr)
}

// openDataset loads the dataset from the configured source.
func openDataset(ctx context.Context, cfg *config.Config) (*returns.Dataset, error) {
	switch cfg.Data.Source {
	case "sqlite":
		s, err := store.Open(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.Load(ctx)
	default:
		ds := returns.NewDataset(cfg.Currency)
		if err := ds.DecodeCSV(cfg.Data.Dir, cfg.Data.Files); err != nil {
			return nil, err
		}
		return ds, nil
	}
}

// newResolver returns a resolver configured by cfg.
func newResolver(ds *returns.Dataset, cfg *config.Config, logger zerolog.Logger) (*returns.Resolver, error) {
	on, err := cfg.AnchorDate()
	if err != nil {
		return nil, err
	}
	mode, err := cfg.CostBasisMode()
	if err != nil {
		return nil, err
	}
	return returns.NewResolver(ds, on,
		returns.WithLogger(logger),
		returns.WithCostBasisMode(mode),
		returns.WithMergeOptions(cfg.MergeOptions()),
	), nil
}

// printMarkdown prints a markdown document, styled when stdout is a terminal.
func printMarkdown(md string) {
	if f, ok := stdout.(*os.File); ok && isTerminal(f) {
		if out, err := renderer.Terminal(md, 100); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, md)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
