package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// priceCmd holds the flags for the 'price' subcommand.
type priceCmd struct {
	markdown bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "compute the split adjusted price return of a ticker" }
func (*priceCmd) Usage() string {
	return `invret price [-md] <ticker> <timeframe>

  Computes the price return of a single ticker over a timeframe ending on the
  evaluation date. Prices of former symbols are merged and splits are applied.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.markdown, "md", false, "Print as markdown")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(stderr, "Error: expecting a ticker and a timeframe")
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	ticker := f.Arg(0)
	tf, err := returns.ParseTimeframe(strings.Join(f.Args()[1:], " "))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	ds, err := openDataset(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	resolver, err := newResolver(ds, cfg, newLogger(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w, err := resolver.PriceReturn(ticker, tf)
	if err != nil {
		fmt.Fprintf(stderr, "Error computing price return: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.markdown {
		printMarkdown(renderer.PriceMarkdown(w))
		return subcommands.ExitSuccess
	}
	fmt.Fprint(stdout, renderer.PriceText(w))
	return subcommands.ExitSuccess
}
