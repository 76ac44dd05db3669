package returns

import (
	"fmt"
	"sort"

	"github.com/etnz/returns/date"
)

// Market holds the daily closing prices of a set of tickers.
//
// A Market is mutated by lineage merges, it must be owned by a single evaluation
// pass at a time.
type Market struct {
	currency string
	prices   map[string]*date.History[float64]
	merged   map[string]map[string]struct{} // ticker -> aliases already merged into it
}

// NewMarket returns a new empty market quoted in currency.
func NewMarket(currency string) *Market {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Market{
		currency: currency,
		prices:   make(map[string]*date.History[float64]),
		merged:   make(map[string]map[string]struct{}),
	}
}

// Currency returns the currency prices are quoted in.
func (m *Market) Currency() string { return m.currency }

// Has reports whether the ticker has a price series.
func (m *Market) Has(ticker string) bool {
	_, ok := m.prices[ticker]
	return ok
}

// Tickers returns the priced tickers in alphabetical order.
func (m *Market) Tickers() []string {
	tickers := make([]string, 0, len(m.prices))
	for t := range m.prices {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Series returns the price series of a ticker, or nil.
func (m *Market) Series(ticker string) *date.History[float64] { return m.prices[ticker] }

// Add records the closing price of ticker on day. An existing price is overwritten.
func (m *Market) Add(ticker string, day date.Date, price float64) {
	h, ok := m.prices[ticker]
	if !ok {
		h = new(date.History[float64])
		m.prices[ticker] = h
	}
	h.Append(day, price)
}

// read a single value for a given (ticker, day).
func (m *Market) read(ticker string, day date.Date) (float64, bool) {
	h, ok := m.prices[ticker]
	if !ok {
		return 0.0, false
	}
	return h.Get(day)
}

// Price returns the closing price of ticker on day.
func (m *Market) Price(ticker string, day date.Date) (Money, error) {
	p, ok := m.read(ticker, day)
	if !ok {
		return Money{}, fmt.Errorf("%w for %q on %s", ErrPriceNotFound, ticker, day)
	}
	return M(p, m.currency), nil
}

// TradingDay returns 'on' if ticker has a price that day, otherwise the latest
// priced day strictly before it.
func (m *Market) TradingDay(ticker string, on date.Date) (date.Date, error) {
	h, ok := m.prices[ticker]
	if !ok {
		return date.Date{}, fmt.Errorf("%w: no price series for %q", ErrPriceNotFound, ticker)
	}
	if h.Has(on) {
		return on, nil
	}
	day, _, ok := h.LastBefore(on)
	if !ok {
		return date.Date{}, fmt.Errorf("%w for %q on or before %s", ErrNoPriorTradingDay, ticker, on)
	}
	return day, nil
}
