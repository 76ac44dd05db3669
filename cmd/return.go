package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/returns"
	"github.com/etnz/returns/renderer"
	"github.com/google/subcommands"
)

// returnCmd holds the flags for the 'return' subcommand.
type returnCmd struct {
	output  string
	details bool
}

func (*returnCmd) Name() string     { return "return" }
func (*returnCmd) Synopsis() string { return "compute the return of a customer's portfolio" }
func (*returnCmd) Usage() string {
	return `invret return [-o text|table|markdown] [-details] <customer_id> <timeframe>

  Computes the return of a customer's portfolio over a timeframe ending on the
  evaluation date. Timeframes: "1 day", "5 days", "6 months", "1 year".
`
}

func (c *returnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "text", "Output format: text, table or markdown")
	f.BoolVar(&c.details, "details", false, "Show the per ticker prices, splits and values")
}

func (c *returnCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(stderr, "Error: expecting a customer id and a timeframe")
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	switch c.output {
	case "text", "table", "markdown":
	default:
		fmt.Fprintf(stderr, "Error: unknown output format %q\n", c.output)
		return subcommands.ExitUsageError
	}
	customer := f.Arg(0)
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
	logger := newLogger(cfg)

	ds, err := openDataset(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}
	resolver, err := newResolver(ds, cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := resolver.Resolve(customer, tf)
	if errors.Is(err, returns.ErrCustomerNotFound) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error computing return: %v\n", err)
		return subcommands.ExitFailure
	}

	opts := renderer.Options{Details: c.details}
	switch c.output {
	case "table":
		if err := renderer.ReportTable(stdout, report); err != nil {
			fmt.Fprintf(stderr, "Error printing report: %v\n", err)
			return subcommands.ExitFailure
		}
	case "markdown":
		printMarkdown(renderer.ReportMarkdown(report, opts))
	default:
		fmt.Fprint(stdout, renderer.ReportText(report, opts))
	}
	return subcommands.ExitSuccess
}
