package returns

import (
	"fmt"
	"sort"

	"github.com/etnz/returns/date"
)

// Split is a stock split: From old shares became To new shares on Date.
type Split struct {
	Date date.Date
	From Quantity
	To   Quantity
}

// NewSplit returns a split of ratio from:to effective on day.
func NewSplit(day date.Date, from, to Quantity) Split {
	return Split{Date: day, From: from, To: to}
}

// Factor returns the number of new shares per old share.
func (s Split) Factor() Quantity { return s.To.Div(s.From) }

// Equal reports whether both splits have the same date and ratio.
func (s Split) Equal(o Split) bool {
	return s.Date == o.Date && s.From.Equal(o.From) && s.To.Equal(o.To)
}

// key identifies a split event independently of its ticker.
func (s Split) key() string { return fmt.Sprintf("%s:%s/%s", s.Date, s.From, s.To) }

func (s Split) String() string { return fmt.Sprintf("%s %s:%s", s.Date, s.From, s.To) }

// Splits holds the splits of every ticker, sorted by effective date.
type Splits struct {
	byTicker map[string][]Split
}

// NewSplits returns an empty split table.
func NewSplits() *Splits {
	return &Splits{byTicker: make(map[string][]Split)}
}

// Add records a split for ticker. A split already recorded on the same date is replaced.
func (t *Splits) Add(ticker string, s Split) {
	list := t.byTicker[ticker]
	i := sort.Search(len(list), func(i int) bool { return !list[i].Date.Before(s.Date) })
	if i < len(list) && list[i].Date == s.Date {
		list[i] = s
		return
	}
	list = append(list, Split{})
	copy(list[i+1:], list[i:])
	list[i] = s
	t.byTicker[ticker] = list
}

// Of returns the splits of ticker, oldest first.
func (t *Splits) Of(ticker string) []Split { return t.byTicker[ticker] }

// Tickers returns the tickers having at least one split, in alphabetical order.
func (t *Splits) Tickers() []string {
	tickers := make([]string, 0, len(t.byTicker))
	for ticker := range t.byTicker {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)
	return tickers
}

// Union returns the splits recorded under any of the tickers, oldest first.
// The same event recorded under two symbols is returned once.
func (t *Splits) Union(tickers ...string) []Split {
	var union []Split
	seen := make(map[string]struct{})
	for _, ticker := range tickers {
		for _, s := range t.byTicker[ticker] {
			if _, dup := seen[s.key()]; dup {
				continue
			}
			seen[s.key()] = struct{}{}
			union = append(union, s)
		}
	}
	sort.SliceStable(union, func(i, j int) bool { return union[i].Date.Before(union[j].Date) })
	return union
}

// AdjustPrice restates a price recorded on window.From in the share count of window.To.
//
// Each split effective in (window.From, window.To] scales the price by From/To.
func AdjustPrice(splits []Split, window date.Range, price Money) Money {
	for _, s := range splits {
		if window.ContainsAfter(s.Date) {
			price = price.Mul(s.From).Div(s.To)
		}
	}
	return price
}

// AdjustLots restates every lot in the share count of 'end'.
//
// Each split effective in (lot.Date, end] multiplies the lot quantity by the split
// factor and divides its cost by the same factor. A lot never absorbs the same split
// twice, so calling AdjustLots again is a no-op.
func AdjustLots(lots Lots, splits []Split, end date.Date) {
	for i := range lots {
		l := &lots[i]
		held := date.Range{From: l.Date, To: end}
		for _, s := range splits {
			if !held.ContainsAfter(s.Date) || l.absorbed(s) {
				continue
			}
			factor := s.Factor()
			l.Quantity = l.Quantity.Mul(factor)
			l.Cost = l.Cost.Div(factor)
			l.splits = append(l.splits, s.key())
		}
	}
}
