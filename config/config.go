// Package config loads the configuration of the command line.
package config

import (
	"fmt"
	"os"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAnchor is the evaluation date used when none is configured.
const DefaultAnchor = "2024-12-31"

// Config is the complete configuration.
type Config struct {
	Anchor    string        `yaml:"anchor"`     // evaluation date, YYYY-MM-DD
	Currency  string        `yaml:"currency"`   // currency of every price and cost basis
	CostBasis string        `yaml:"cost_basis"` // total | per-share
	Merge     MergeConfig   `yaml:"merge"`
	Data      DataConfig    `yaml:"data"`
	Storage   StorageConfig `yaml:"storage"`
	Log       LogConfig     `yaml:"log"`
}

// MergeConfig controls how renamed ticker histories are merged.
type MergeConfig struct {
	GateByEffectiveDate bool `yaml:"gate_by_effective_date"`
}

// DataConfig locates the dataset.
type DataConfig struct {
	Source string        `yaml:"source"` // csv | sqlite
	Dir    string        `yaml:"dir"`    // directory of the CSV files
	Files  returns.Files `yaml:"files"`
	Feed   FeedConfig    `yaml:"feed"`
}

// FeedConfig describes an optional JSON price feed imported with the dataset.
type FeedConfig struct {
	URL              string `yaml:"url"`
	CacheDir         string `yaml:"cache_dir"`
	returns.FeedSpec `yaml:",inline"`
}

// StorageConfig controls where the dataset is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // path to the SQLite file, or ":memory:"
}

// LogConfig controls logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML file at path, then applies the .env file and environment
// overrides, then the defaults.
//
// An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides overwrites values with the environment variables that are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RETURNS_ANCHOR"); v != "" {
		cfg.Anchor = v
	}
	if v := os.Getenv("RETURNS_DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("RETURNS_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("RETURNS_DB"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("RETURNS_COST_BASIS"); v != "" {
		cfg.CostBasis = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Anchor == "" {
		cfg.Anchor = DefaultAnchor
	}
	if cfg.Currency == "" {
		cfg.Currency = returns.DefaultCurrency
	}
	if cfg.CostBasis == "" {
		cfg.CostBasis = returns.Total.String()
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "csv"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "."
	}
	if cfg.Data.Files.Prices == "" {
		cfg.Data.Files.Prices = returns.DefaultFiles.Prices
	}
	if cfg.Data.Files.Splits == "" {
		cfg.Data.Files.Splits = returns.DefaultFiles.Splits
	}
	if cfg.Data.Files.Renames == "" {
		cfg.Data.Files.Renames = returns.DefaultFiles.Renames
	}
	if cfg.Data.Files.Portfolios == "" {
		cfg.Data.Files.Portfolios = returns.DefaultFiles.Portfolios
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "returns.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := c.AnchorDate(); err != nil {
		return err
	}
	if _, err := c.CostBasisMode(); err != nil {
		return err
	}
	switch c.Data.Source {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("unknown data source %q want csv or sqlite", c.Data.Source)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q want text or json", c.Log.Format)
	}
	return nil
}

// AnchorDate returns the parsed evaluation date.
func (c *Config) AnchorDate() (date.Date, error) {
	d, err := date.Parse(c.Anchor)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid anchor: %w", err)
	}
	return d, nil
}

// CostBasisMode returns the parsed cost basis mode.
func (c *Config) CostBasisMode() (returns.CostBasisMode, error) {
	return returns.ParseCostBasisMode(c.CostBasis)
}

// MergeOptions returns the lineage merge options.
func (c *Config) MergeOptions() returns.MergeOptions {
	return returns.MergeOptions{GateByEffectiveDate: c.Merge.GateByEffectiveDate}
}
