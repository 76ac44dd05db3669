package returns

import (
	"errors"
	"fmt"

	"github.com/etnz/returns/date"
)

// PriceRecord is the closing price of a ticker on a trading day.
type PriceRecord struct {
	Ticker string
	Date   date.Date
	Close  float64
}

func (r PriceRecord) Validate() error {
	if r.Ticker == "" {
		return errors.New("price: empty ticker")
	}
	if !(r.Close > 0) {
		return fmt.Errorf("price of %q on %s must be positive, got %v", r.Ticker, r.Date, r.Close)
	}
	return nil
}

// SplitRecord is a split of a ticker: From old shares became To new shares.
type SplitRecord struct {
	Ticker   string
	Date     date.Date
	From, To float64
}

func (r SplitRecord) Validate() error {
	if r.Ticker == "" {
		return errors.New("split: empty ticker")
	}
	if !(r.From > 0) || !(r.To > 0) {
		return fmt.Errorf("split of %q on %s must have a positive ratio, got %v:%v", r.Ticker, r.Date, r.From, r.To)
	}
	return nil
}

// RenameRecord is the rename of Old into New.
type RenameRecord struct {
	Old, New string
	Date     date.Date
}

func (r RenameRecord) Validate() error {
	if r.Old == "" || r.New == "" {
		return fmt.Errorf("rename on %s: empty ticker %q -> %q", r.Date, r.Old, r.New)
	}
	if r.Old == r.New {
		return fmt.Errorf("rename on %s: %q renamed to itself", r.Date, r.Old)
	}
	return nil
}

// PurchaseRecord is a lot bought by a customer.
type PurchaseRecord struct {
	Customer  string
	Ticker    string
	Date      date.Date
	Shares    float64
	CostBasis float64
}

func (r PurchaseRecord) Validate() error {
	if r.Customer == "" {
		return errors.New("purchase: empty customer id")
	}
	if r.Ticker == "" {
		return fmt.Errorf("purchase of customer %q: empty ticker", r.Customer)
	}
	if !(r.Shares > 0) {
		return fmt.Errorf("purchase of %q by %q on %s: shares must be positive, got %v", r.Ticker, r.Customer, r.Date, r.Shares)
	}
	if r.CostBasis < 0 {
		return fmt.Errorf("purchase of %q by %q on %s: cost basis must not be negative, got %v", r.Ticker, r.Customer, r.Date, r.CostBasis)
	}
	return nil
}

// Dataset gathers every input table of an evaluation.
type Dataset struct {
	Market     *Market
	Splits     *Splits
	Renames    *Renames
	Portfolios Portfolios

	renames []RenameRecord // as added, for export
}

// NewDataset returns an empty dataset quoted in currency.
func NewDataset(currency string) *Dataset {
	return &Dataset{
		Market:     NewMarket(currency),
		Splits:     NewSplits(),
		Renames:    NewRenames(),
		Portfolios: make(Portfolios),
	}
}

// Currency returns the dataset currency.
func (ds *Dataset) Currency() string { return ds.Market.Currency() }

func (ds *Dataset) AddPrice(r PriceRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	ds.Market.Add(r.Ticker, r.Date, r.Close)
	return nil
}

func (ds *Dataset) AddSplit(r SplitRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	ds.Splits.Add(r.Ticker, NewSplit(r.Date, Q(r.From), Q(r.To)))
	return nil
}

func (ds *Dataset) AddRename(r RenameRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	ds.Renames.Add(r.Old, r.New, r.Date)
	ds.renames = append(ds.renames, r)
	return nil
}

func (ds *Dataset) AddPurchase(r PurchaseRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	ds.Portfolios.Add(r.Customer, r.Ticker, NewLot(r.Date, Q(r.Shares), M(r.CostBasis, ds.Currency())))
	return nil
}

// PriceRecords returns every price, by ticker then date.
func (ds *Dataset) PriceRecords() []PriceRecord {
	var records []PriceRecord
	for _, ticker := range ds.Market.Tickers() {
		for on, price := range ds.Market.Series(ticker).Values() {
			records = append(records, PriceRecord{Ticker: ticker, Date: on, Close: price})
		}
	}
	return records
}

// SplitRecords returns every split, by ticker then date.
func (ds *Dataset) SplitRecords() []SplitRecord {
	var records []SplitRecord
	for _, ticker := range ds.Splits.Tickers() {
		for _, s := range ds.Splits.Of(ticker) {
			records = append(records, SplitRecord{Ticker: ticker, Date: s.Date, From: s.From.Float64(), To: s.To.Float64()})
		}
	}
	return records
}

// RenameRecords returns the renames in the order they were added.
func (ds *Dataset) RenameRecords() []RenameRecord { return ds.renames }

// PurchaseRecords returns every purchase, by customer then ticker.
//
// Lots are exported as they currently are: after an evaluation they hold
// split adjusted values.
func (ds *Dataset) PurchaseRecords() []PurchaseRecord {
	var records []PurchaseRecord
	for _, customer := range ds.Portfolios.Customers() {
		pf := ds.Portfolios[customer]
		for _, ticker := range pf.Tickers() {
			for _, l := range pf[ticker] {
				records = append(records, PurchaseRecord{
					Customer:  customer,
					Ticker:    ticker,
					Date:      l.Date,
					Shares:    l.Quantity.Float64(),
					CostBasis: l.Cost.Float64(),
				})
			}
		}
	}
	return records
}
