package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/returns"
	"github.com/etnz/returns/store"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	feed string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import the CSV dataset into the SQLite database" }
func (*importCmd) Usage() string {
	return `invret [-data <dir>] [-db <path>] import [-feed <url>]

  Reads the CSV dataset, and the prices of the JSON feed if any, and replaces
  the content of the SQLite database with it.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.feed, "feed", "", "URL of a JSON price feed (overrides the configuration)")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	logger := newLogger(cfg)

	ds := returns.NewDataset(cfg.Currency)
	if err := ds.DecodeCSV(cfg.Data.Dir, cfg.Data.Files); err != nil {
		fmt.Fprintf(stderr, "Error loading dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	feed := cfg.Data.Feed
	if c.feed != "" {
		feed.URL = c.feed
	}
	if feed.URL != "" {
		records, err := returns.FetchPriceFeed(ctx, returns.DailyClient(feed.CacheDir), feed.URL, feed.FeedSpec)
		if err != nil {
			fmt.Fprintf(stderr, "Error reading price feed: %v\n", err)
			return subcommands.ExitFailure
		}
		var errs error
		for _, r := range records {
			errs = errors.Join(errs, ds.AddPrice(r))
		}
		if errs != nil {
			fmt.Fprintf(stderr, "Error in price feed: %v\n", errs)
			return subcommands.ExitFailure
		}
		logger.Info().Str("url", feed.URL).Int("prices", len(records)).Msg("price feed imported")
	}

	s, err := store.Open(ctx, cfg.Storage.DSN)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()
	if err := s.Save(ctx, ds); err != nil {
		fmt.Fprintf(stderr, "Error saving dataset: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Imported %d prices, %d splits, %d renames and %d purchases into %s\n",
		len(ds.PriceRecords()), len(ds.SplitRecords()), len(ds.RenameRecords()), len(ds.PurchaseRecords()), cfg.Storage.DSN)
	return subcommands.ExitSuccess
}
