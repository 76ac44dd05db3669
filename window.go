package returns

import (
	"fmt"

	"github.com/etnz/returns/date"
	"github.com/rs/zerolog"
)

// PriceWindow is the start and end price of a ticker over an evaluation window,
// both expressed in the share count of the end date.
type PriceWindow struct {
	Ticker        string
	Lineage       []string // symbols whose history was merged, Ticker last
	Start, End    date.Date
	RawStartPrice Money // start price as recorded
	StartPrice    Money // start price adjusted for Splits
	EndPrice      Money
	Splits        []Split         // splits effective in (Start, End]
	Conflicts     []MergeConflict // alias prices ignored while merging the lineage

	splits []Split // every split of the lineage, used to restate lots
}

// Range returns the [Start, End] range of the window.
func (w PriceWindow) Range() date.Range { return date.Range{From: w.Start, To: w.End} }

// Return returns the price return of the ticker over the window.
func (w PriceWindow) Return() Percent {
	if w.StartPrice.IsZero() {
		return 0
	}
	ratio := w.EndPrice.DivPrice(w.StartPrice)
	return Percent(ratio.Sub(Q(1)).Mul(Q(100)).Float64())
}

// Resolver computes price windows and returns over a Dataset.
//
// The Resolver mutates its Dataset: lineage merges extend price series, and lots
// are restated for splits. Both mutations are applied at most once, so a Dataset
// can be evaluated several times, for several customers.
type Resolver struct {
	ds     *Dataset
	anchor date.Date
	merge  MergeOptions
	mode   CostBasisMode
	log    zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(r *Resolver) { r.log = l } }

// WithMergeOptions sets how renamed ticker histories are merged.
func WithMergeOptions(o MergeOptions) Option { return func(r *Resolver) { r.merge = o } }

// WithCostBasisMode sets the meaning of the purchase cost basis.
func WithCostBasisMode(m CostBasisMode) Option { return func(r *Resolver) { r.mode = m } }

// NewResolver returns a Resolver evaluating ds as of anchor.
func NewResolver(ds *Dataset, anchor date.Date, opts ...Option) *Resolver {
	r := &Resolver{ds: ds, anchor: anchor, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Anchor returns the evaluation date.
func (r *Resolver) Anchor() date.Date { return r.anchor }

// ResolveWindow returns the price window of ticker over window.
//
// The start date is moved back to the last trading day on or before window.From,
// the end date must be a trading day.
func (r *Resolver) ResolveWindow(ticker string, window date.Range) (PriceWindow, error) {
	market := r.ds.Market
	lineage, conflicts := market.MergeLineage(ticker, r.ds.Renames, r.merge)
	for _, c := range conflicts {
		r.log.Warn().
			Str("ticker", c.Ticker).
			Str("alias", c.Alias).
			Stringer("date", c.Date).
			Float64("kept", c.Kept).
			Float64("dropped", c.Dropped).
			Msg("conflicting price in renamed ticker history")
	}

	start, err := market.TradingDay(ticker, window.From)
	if err != nil {
		return PriceWindow{}, err
	}
	end, err := market.Price(ticker, window.To)
	if err != nil {
		return PriceWindow{}, fmt.Errorf("%w for %q on %s", ErrMissingEndPrice, ticker, window.To)
	}
	raw, err := market.Price(ticker, start)
	if err != nil {
		return PriceWindow{}, err
	}

	w := PriceWindow{
		Ticker:        ticker,
		Lineage:       lineage,
		Start:         start,
		End:           window.To,
		RawStartPrice: raw,
		EndPrice:      end,
		Conflicts:     conflicts,
		splits:        r.ds.Splits.Union(lineage...),
	}
	for _, s := range w.splits {
		if w.Range().ContainsAfter(s.Date) {
			w.Splits = append(w.Splits, s)
		}
	}
	w.StartPrice = AdjustPrice(w.splits, w.Range(), raw)

	r.log.Debug().
		Str("ticker", ticker).
		Strs("lineage", lineage).
		Stringer("start", w.Start).
		Stringer("end", w.End).
		Stringer("raw_start_price", w.RawStartPrice).
		Stringer("start_price", w.StartPrice).
		Stringer("end_price", w.EndPrice).
		Int("splits", len(w.Splits)).
		Msg("price window resolved")
	return w, nil
}

// PriceReturn returns the split and rename adjusted price window of a single ticker.
func (r *Resolver) PriceReturn(ticker string, tf Timeframe) (PriceWindow, error) {
	return r.ResolveWindow(ticker, tf.Window(r.anchor))
}

// Report is the result of the evaluation of a customer's portfolio.
type Report struct {
	Customer  string
	Timeframe Timeframe
	Window    date.Range // requested window, before trading day resolution
	Windows   []PriceWindow
	Return    PortfolioReturn
}

// Resolve evaluates the return of customer's portfolio over the timeframe.
//
// Every held ticker must be priced: the first failure aborts the evaluation.
func (r *Resolver) Resolve(customer string, tf Timeframe) (*Report, error) {
	pf, ok := r.ds.Portfolios[customer]
	if !ok || len(pf) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrCustomerNotFound, customer)
	}
	window := tf.Window(r.anchor)
	r.log.Debug().Str("customer", customer).Str("timeframe", tf.Label).Stringer("window", window).Msg("resolving portfolio")

	report := &Report{Customer: customer, Timeframe: tf, Window: window}
	for _, ticker := range pf.Tickers() {
		w, err := r.ResolveWindow(ticker, window)
		if err != nil {
			return nil, fmt.Errorf("cannot price %q for customer %q: %w", ticker, customer, err)
		}
		AdjustLots(pf[ticker], w.splits, w.End)
		report.Windows = append(report.Windows, w)
	}
	report.Return = Aggregate(r.ds.Currency(), report.Windows, pf, r.mode)
	return report, nil
}
