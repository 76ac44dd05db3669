package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RETURNS_ANCHOR", "RETURNS_DATA_DIR", "RETURNS_SOURCE", "RETURNS_DB", "RETURNS_COST_BASIS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAnchor, cfg.Anchor)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "total", cfg.CostBasis)
	assert.Equal(t, "csv", cfg.Data.Source)
	assert.Equal(t, ".", cfg.Data.Dir)
	assert.Equal(t, returns.DefaultFiles, cfg.Data.Files)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Merge.GateByEffectiveDate)

	anchor, err := cfg.AnchorDate()
	require.NoError(t, err)
	assert.Equal(t, date.New(2024, 12, 31), anchor)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
anchor: 2025-06-30
cost_basis: per-share
merge:
  gate_by_effective_date: true
data:
  source: sqlite
  dir: /data
  files:
    prices: close.csv
  feed:
    url: https://example.com/prices.json
    records: $.prices[*]
    ticker: $.symbol
    date: $.date
    close: $.close
storage:
  dsn: ":memory:"
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-30", cfg.Anchor)
	mode, err := cfg.CostBasisMode()
	require.NoError(t, err)
	assert.Equal(t, returns.PerShare, mode)
	assert.True(t, cfg.MergeOptions().GateByEffectiveDate)
	assert.Equal(t, "sqlite", cfg.Data.Source)
	assert.Equal(t, "/data", cfg.Data.Dir)
	assert.Equal(t, "close.csv", cfg.Data.Files.Prices)
	assert.Equal(t, "splits.csv", cfg.Data.Files.Splits)
	assert.Equal(t, "https://example.com/prices.json", cfg.Data.Feed.URL)
	assert.Equal(t, "$.prices[*]", cfg.Data.Feed.Records)
	assert.Equal(t, "$.close", cfg.Data.Feed.Close)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "anchor: 2025-06-30\nlog:\n  level: debug\n")
	t.Setenv("RETURNS_ANCHOR", "2024-06-28")
	t.Setenv("RETURNS_DATA_DIR", "/tmp/data")
	t.Setenv("RETURNS_COST_BASIS", "per_share")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-28", cfg.Anchor)
	assert.Equal(t, "/tmp/data", cfg.Data.Dir)
	assert.Equal(t, "per_share", cfg.CostBasis)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"anchor", "anchor: yesterday\n"},
		{"cost basis", "cost_basis: average\n"},
		{"source", "data:\n  source: postgres\n"},
		{"log format", "log:\n  format: xml\n"},
		{"yaml", "anchor: [\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
