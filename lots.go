package returns

import (
	"slices"
	"sort"

	"github.com/etnz/returns/date"
)

// Lot is a single purchase of a security.
type Lot struct {
	Date     date.Date
	Quantity Quantity
	Cost     Money // total cost, or cost per share, see CostBasisMode

	splits []string // splits already applied to Quantity and Cost
	bought Quantity // Quantity as purchased
	paid   Money    // Cost as purchased
}

// NewLot returns a lot of quantity shares bought on day for cost.
func NewLot(day date.Date, quantity Quantity, cost Money) Lot {
	return Lot{Date: day, Quantity: quantity, Cost: cost, bought: quantity, paid: cost}
}

func (l Lot) absorbed(s Split) bool { return slices.Contains(l.splits, s.key()) }

// Invested returns the amount paid for the lot. Splits absorbed by the lot do not
// change it.
func (l Lot) Invested(mode CostBasisMode) Money {
	quantity, cost := l.Quantity, l.Cost
	if len(l.splits) > 0 && !l.bought.IsZero() {
		quantity, cost = l.bought, l.paid
	}
	if mode == PerShare {
		return cost.Mul(quantity)
	}
	return cost
}

// Lots is the list of purchases of one ticker.
type Lots []Lot

// Quantity returns the total number of shares.
func (l Lots) Quantity() Quantity {
	var total Quantity
	for _, lot := range l {
		total = total.Add(lot.Quantity)
	}
	return total
}

// Portfolio maps a ticker to the customer's lots of that ticker.
type Portfolio map[string]Lots

// Tickers returns the held tickers in alphabetical order.
func (p Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p))
	for t := range p {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Portfolios maps a customer id to its portfolio.
type Portfolios map[string]Portfolio

// Add appends a lot to the customer's portfolio.
func (p Portfolios) Add(customer, ticker string, l Lot) {
	pf, ok := p[customer]
	if !ok {
		pf = make(Portfolio)
		p[customer] = pf
	}
	pf[ticker] = append(pf[ticker], l)
}

// Customers returns the customer ids in alphabetical order.
func (p Portfolios) Customers() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
