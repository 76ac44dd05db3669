// Package store persists a returns.Dataset in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS prices (
    ticker      TEXT NOT NULL,
    date        TEXT NOT NULL,
    close_price REAL NOT NULL,
    PRIMARY KEY (ticker, date)
);

CREATE TABLE IF NOT EXISTS splits (
    ticker         TEXT NOT NULL,
    effective_date TEXT NOT NULL,
    from_quantity  REAL NOT NULL,
    to_quantity    REAL NOT NULL,
    PRIMARY KEY (ticker, effective_date)
);

-- renames and purchases keep their insertion order
CREATE TABLE IF NOT EXISTS renames (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    old_ticker     TEXT NOT NULL,
    effective_date TEXT NOT NULL,
    new_ticker     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS purchases (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_id   TEXT NOT NULL,
    ticker        TEXT NOT NULL,
    purchase_date TEXT NOT NULL,
    shares        REAL NOT NULL,
    cost_basis    REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_purchases_customer ON purchases(customer_id);
`

// Store is a dataset stored in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store.Open: open %q: %w", dsn, err)
	}
	db.SetMaxOpenConns(1) // single writer, and ":memory:" is per connection
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store.Open: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Save replaces the stored dataset with ds, in a single transaction.
//
// Lots are saved as they currently are in ds: save a dataset before evaluating it.
func (s *Store) Save(ctx context.Context, ds *returns.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store.Save: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "prices", "splits", "renames", "purchases"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("store.Save: clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('currency', ?)`, ds.Currency()); err != nil {
		return fmt.Errorf("store.Save: insert currency: %w", err)
	}

	if err := insertAll(ctx, tx, `INSERT INTO prices (ticker, date, close_price) VALUES (?, ?, ?)`,
		ds.PriceRecords(), func(r returns.PriceRecord) []any {
			return []any{r.Ticker, r.Date.String(), r.Close}
		}); err != nil {
		return fmt.Errorf("store.Save: prices: %w", err)
	}
	if err := insertAll(ctx, tx, `INSERT INTO splits (ticker, effective_date, from_quantity, to_quantity) VALUES (?, ?, ?, ?)`,
		ds.SplitRecords(), func(r returns.SplitRecord) []any {
			return []any{r.Ticker, r.Date.String(), r.From, r.To}
		}); err != nil {
		return fmt.Errorf("store.Save: splits: %w", err)
	}
	if err := insertAll(ctx, tx, `INSERT INTO renames (old_ticker, effective_date, new_ticker) VALUES (?, ?, ?)`,
		ds.RenameRecords(), func(r returns.RenameRecord) []any {
			return []any{r.Old, r.Date.String(), r.New}
		}); err != nil {
		return fmt.Errorf("store.Save: renames: %w", err)
	}
	if err := insertAll(ctx, tx, `INSERT INTO purchases (customer_id, ticker, purchase_date, shares, cost_basis) VALUES (?, ?, ?, ?, ?)`,
		ds.PurchaseRecords(), func(r returns.PurchaseRecord) []any {
			return []any{r.Customer, r.Ticker, r.Date.String(), r.Shares, r.CostBasis}
		}); err != nil {
		return fmt.Errorf("store.Save: purchases: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store.Save: commit: %w", err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, tx *sql.Tx, query string, records []T, args func(T) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, args(r)...); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the stored dataset.
func (s *Store) Load(ctx context.Context) (*returns.Dataset, error) {
	currency := returns.DefaultCurrency
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'currency'`).Scan(&currency)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store.Load: currency: %w", err)
	}
	ds := returns.NewDataset(currency)

	var r returns.PriceRecord
	if err := s.scanAll(ctx, `SELECT ticker, date, close_price FROM prices ORDER BY ticker, date`,
		[]any{&r.Ticker, dateScanner{&r.Date}, &r.Close},
		func() error { return ds.AddPrice(r) }); err != nil {
		return nil, fmt.Errorf("store.Load: prices: %w", err)
	}

	var sp returns.SplitRecord
	if err := s.scanAll(ctx, `SELECT ticker, effective_date, from_quantity, to_quantity FROM splits ORDER BY ticker, effective_date`,
		[]any{&sp.Ticker, dateScanner{&sp.Date}, &sp.From, &sp.To},
		func() error { return ds.AddSplit(sp) }); err != nil {
		return nil, fmt.Errorf("store.Load: splits: %w", err)
	}

	var rn returns.RenameRecord
	if err := s.scanAll(ctx, `SELECT old_ticker, effective_date, new_ticker FROM renames ORDER BY id`,
		[]any{&rn.Old, dateScanner{&rn.Date}, &rn.New},
		func() error { return ds.AddRename(rn) }); err != nil {
		return nil, fmt.Errorf("store.Load: renames: %w", err)
	}

	var p returns.PurchaseRecord
	if err := s.scanAll(ctx, `SELECT customer_id, ticker, purchase_date, shares, cost_basis FROM purchases ORDER BY id`,
		[]any{&p.Customer, &p.Ticker, dateScanner{&p.Date}, &p.Shares, &p.CostBasis},
		func() error { return ds.AddPurchase(p) }); err != nil {
		return nil, fmt.Errorf("store.Load: purchases: %w", err)
	}
	return ds, nil
}

// scanAll scans every row of query into dest and calls add after each row.
func (s *Store) scanAll(ctx context.Context, query string, dest []any, add func() error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		if err := add(); err != nil {
			return err
		}
	}
	return rows.Err()
}

// dateScanner scans a TEXT column into a date.Date.
type dateScanner struct{ d *date.Date }

func (s dateScanner) Scan(src any) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into a date", src)
	}
	d, err := date.Parse(str)
	if err != nil {
		return err
	}
	*s.d = d
	return nil
}
