package returns

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/etnz/returns/date"
)

// Files names the CSV files of a dataset directory.
type Files struct {
	Prices     string `yaml:"prices"`
	Splits     string `yaml:"splits"`
	Renames    string `yaml:"renames"`
	Portfolios string `yaml:"portfolios"`
}

// DefaultFiles are the standard file names of a dataset directory.
var DefaultFiles = Files{
	Prices:     "prices.csv",
	Splits:     "splits.csv",
	Renames:    "ticker_changes.csv",
	Portfolios: "portfolios.csv",
}

// withDefaults returns f with every empty name replaced by its default.
func (f Files) withDefaults() Files {
	if f.Prices == "" {
		f.Prices = DefaultFiles.Prices
	}
	if f.Splits == "" {
		f.Splits = DefaultFiles.Splits
	}
	if f.Renames == "" {
		f.Renames = DefaultFiles.Renames
	}
	if f.Portfolios == "" {
		f.Portfolios = DefaultFiles.Portfolios
	}
	return f
}

// DecodeDataset reads the CSV files of dir into a new USD dataset.
func DecodeDataset(dir string, files Files) (*Dataset, error) {
	ds := NewDataset(DefaultCurrency)
	if err := ds.DecodeCSV(dir, files); err != nil {
		return nil, err
	}
	return ds, nil
}

// DecodeCSV reads the CSV files of dir into ds.
//
// The prices and portfolios files are required. A missing splits or renames file
// is read as an empty table.
func (ds *Dataset) DecodeCSV(dir string, files Files) error {
	files = files.withDefaults()
	decoders := []struct {
		name     string
		optional bool
		decode   func(io.Reader, string) error
	}{
		{files.Prices, false, ds.DecodePrices},
		{files.Splits, true, ds.DecodeSplits},
		{files.Renames, true, ds.DecodeRenames},
		{files.Portfolios, false, ds.DecodePurchases},
	}
	for _, d := range decoders {
		path := filepath.Join(dir, d.name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) && d.optional {
			continue
		}
		if err != nil {
			return fmt.Errorf("cannot open dataset file: %w", err)
		}
		err = d.decode(f, path)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// DecodePrices reads a "ticker,date,close_price" CSV into ds.
func (ds *Dataset) DecodePrices(r io.Reader, name string) error {
	return readCSV(r, name, []string{"ticker", "date", "close_price"}, func(row csvRow) error {
		rec := PriceRecord{Ticker: row.str("ticker")}
		var err error
		if rec.Date, err = row.date("date"); err != nil {
			return err
		}
		if rec.Close, err = row.float("close_price"); err != nil {
			return err
		}
		return ds.AddPrice(rec)
	})
}

// DecodeSplits reads a "ticker,effective_date,from_quantity,to_quantity" CSV into ds.
func (ds *Dataset) DecodeSplits(r io.Reader, name string) error {
	return readCSV(r, name, []string{"ticker", "effective_date", "from_quantity", "to_quantity"}, func(row csvRow) error {
		rec := SplitRecord{Ticker: row.str("ticker")}
		var err error
		if rec.Date, err = row.date("effective_date"); err != nil {
			return err
		}
		if rec.From, err = row.float("from_quantity"); err != nil {
			return err
		}
		if rec.To, err = row.float("to_quantity"); err != nil {
			return err
		}
		return ds.AddSplit(rec)
	})
}

// DecodeRenames reads an "old_ticker,effective_date,new_ticker" CSV into ds.
func (ds *Dataset) DecodeRenames(r io.Reader, name string) error {
	return readCSV(r, name, []string{"old_ticker", "effective_date", "new_ticker"}, func(row csvRow) error {
		rec := RenameRecord{Old: row.str("old_ticker"), New: row.str("new_ticker")}
		var err error
		if rec.Date, err = row.date("effective_date"); err != nil {
			return err
		}
		return ds.AddRename(rec)
	})
}

// DecodePurchases reads a "customer_id,ticker,purchase_date,shares,cost_basis" CSV into ds.
func (ds *Dataset) DecodePurchases(r io.Reader, name string) error {
	return readCSV(r, name, []string{"customer_id", "ticker", "purchase_date", "shares", "cost_basis"}, func(row csvRow) error {
		rec := PurchaseRecord{Customer: row.str("customer_id"), Ticker: row.str("ticker")}
		var err error
		if rec.Date, err = row.date("purchase_date"); err != nil {
			return err
		}
		if rec.Shares, err = row.float("shares"); err != nil {
			return err
		}
		if rec.CostBasis, err = row.float("cost_basis"); err != nil {
			return err
		}
		return ds.AddPurchase(rec)
	})
}

// csvRow is a record of a CSV file with a header.
type csvRow struct {
	cols   map[string]int
	fields []string
}

func (r csvRow) str(col string) string {
	i := r.cols[col]
	if i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r csvRow) float(col string) (float64, error) {
	v, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", col, r.str(col))
	}
	return v, nil
}

func (r csvRow) date(col string) (date.Date, error) {
	d, err := date.Parse(r.str(col))
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid %s %q", col, r.str(col))
	}
	return d, nil
}

// readCSV calls fn for every record of r. Columns are located by header name and
// every column in required must be present.
//
// A bad record does not stop the reading: all errors are returned, joined and
// prefixed with name and line number.
func readCSV(r io.Reader, name string, required []string, fn func(csvRow) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("%s: empty file, expecting header %s", name, strings.Join(required, ","))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return fmt.Errorf("%s: missing column %q", name, col)
		}
	}

	var errs error
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a malformed quote is reported once, with its position.
			return errors.Join(errs, fmt.Errorf("%s: %w", name, err))
		}
		line, _ := cr.FieldPos(0)
		if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if err := fn(csvRow{cols: cols, fields: fields}); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s:%d: %w", name, line, err))
		}
	}
	return errs
}
