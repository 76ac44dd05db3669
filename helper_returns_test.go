package returns

import (
	"testing"

	"github.com/etnz/returns/date"
)

var anchor = date.MustParse("2024-12-31")

// dataset is a small builder for test datasets.
type dataset struct {
	t  *testing.T
	ds *Dataset
}

func newTestDataset(t *testing.T) *dataset {
	t.Helper()
	return &dataset{t: t, ds: NewDataset(DefaultCurrency)}
}

func (d *dataset) price(ticker, on string, close float64) *dataset {
	d.t.Helper()
	if err := d.ds.AddPrice(PriceRecord{Ticker: ticker, Date: date.MustParse(on), Close: close}); err != nil {
		d.t.Fatalf("AddPrice(%q, %s) error = %v", ticker, on, err)
	}
	return d
}

func (d *dataset) split(ticker, on string, from, to float64) *dataset {
	d.t.Helper()
	if err := d.ds.AddSplit(SplitRecord{Ticker: ticker, Date: date.MustParse(on), From: from, To: to}); err != nil {
		d.t.Fatalf("AddSplit(%q, %s) error = %v", ticker, on, err)
	}
	return d
}

func (d *dataset) rename(old, new, on string) *dataset {
	d.t.Helper()
	if err := d.ds.AddRename(RenameRecord{Old: old, New: new, Date: date.MustParse(on)}); err != nil {
		d.t.Fatalf("AddRename(%q, %q) error = %v", old, new, err)
	}
	return d
}

func (d *dataset) buy(customer, ticker, on string, shares, cost float64) *dataset {
	d.t.Helper()
	if err := d.ds.AddPurchase(PurchaseRecord{Customer: customer, Ticker: ticker, Date: date.MustParse(on), Shares: shares, CostBasis: cost}); err != nil {
		d.t.Fatalf("AddPurchase(%q, %q) error = %v", customer, ticker, err)
	}
	return d
}

func (d *dataset) resolve(customer string, tf Timeframe, opts ...Option) *Report {
	d.t.Helper()
	report, err := NewResolver(d.ds, anchor, opts...).Resolve(customer, tf)
	if err != nil {
		d.t.Fatalf("Resolve(%q, %v) error = %v", customer, tf, err)
	}
	return report
}

func assertMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if !got.Equal(USD(want)) {
		t.Errorf("%s = %v want %v", name, got, USD(want))
	}
}
