package returns

import (
	"slices"

	"github.com/etnz/returns/date"
)

// Rename links a ticker to another symbol the same security was known as.
type Rename struct {
	Date   date.Date // effective date of the rename
	Ticker string    // the other symbol
}

// Renames is a lookup table of ticker renames.
//
// Each rename is stored under both symbols so that looking up either one
// yields the other.
type Renames struct {
	links map[string][]Rename
}

// NewRenames returns an empty rename table.
func NewRenames() *Renames {
	return &Renames{links: make(map[string][]Rename)}
}

// Add records that old was renamed to new on day.
func (r *Renames) Add(old, new string, day date.Date) {
	r.links[old] = append(r.links[old], Rename{Date: day, Ticker: new})
	r.links[new] = append(r.links[new], Rename{Date: day, Ticker: old})
}

// Links returns the renames recorded for ticker, in the order they were added.
func (r *Renames) Links(ticker string) []Rename { return r.links[ticker] }

// Lineage returns every symbol directly renamed to or from ticker, followed by
// ticker itself.
//
// Only one hop is followed: if A was renamed to B and B to C, the lineage of C
// is [B C].
func (r *Renames) Lineage(ticker string) []string {
	var aka []string
	for _, l := range r.links[ticker] {
		if l.Ticker == ticker || slices.Contains(aka, l.Ticker) {
			continue
		}
		aka = append(aka, l.Ticker)
	}
	return append(aka, ticker)
}

// MergeOptions control how alias price history is merged into a ticker.
type MergeOptions struct {
	// GateByEffectiveDate only merges alias prices dated on or before the rename.
	GateByEffectiveDate bool
}

// MergeConflict reports an alias price that disagrees with the ticker's own price.
// The ticker's own price is kept.
type MergeConflict struct {
	Ticker  string
	Alias   string
	Date    date.Date
	Kept    float64 // price of the ticker
	Dropped float64 // price of the alias
}

// MergeLineage merges the price history of every one-hop alias of ticker into
// the ticker's series and returns the lineage.
//
// A given alias is merged at most once into a ticker over the Market lifetime,
// an alias without prices yet is merged once they are added.
// Prices already present for ticker are never overwritten, including prices
// merged from a previous alias: a different alias value on the same day is
// returned as a conflict.
func (m *Market) MergeLineage(ticker string, renames *Renames, opts MergeOptions) (lineage []string, conflicts []MergeConflict) {
	lineage = renames.Lineage(ticker)
	done := m.merged[ticker]
	if done == nil {
		done = make(map[string]struct{})
		m.merged[ticker] = done
	}
	for _, link := range renames.Links(ticker) {
		alias := link.Ticker
		if alias == ticker {
			continue
		}
		if _, ok := done[alias]; ok {
			continue
		}
		src, ok := m.prices[alias]
		if !ok {
			continue
		}
		done[alias] = struct{}{}
		own := m.prices[ticker]
		for on, price := range src.Values() {
			if opts.GateByEffectiveDate && on.After(link.Date) {
				continue
			}
			if own != nil {
				if kept, ok := own.Get(on); ok {
					if kept != price {
						conflicts = append(conflicts, MergeConflict{Ticker: ticker, Alias: alias, Date: on, Kept: kept, Dropped: price})
					}
					continue
				}
			}
			m.Add(ticker, on, price)
			own = m.prices[ticker]
		}
	}
	return lineage, conflicts
}
