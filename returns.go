package returns

// Position is the contribution of a single ticker to a PortfolioReturn.
type Position struct {
	Ticker        string
	Quantity      Quantity // shares held at the end of the window
	Start         Money    // value of the lots held at the start of the window
	Contributions Money    // amount invested during the window
	Current       Money    // value of every lot at the end of the window
}

// PortfolioReturn is the aggregated value of a portfolio over a window.
type PortfolioReturn struct {
	Start         Money
	Current       Money
	Contributions Money
	Positions     []Position
}

// Aggregate combines price windows with the portfolio lots.
//
// A lot bought on or before the window start counts at the start price, a lot
// bought during the window counts for its invested amount, and every lot counts
// at the end price in the current value. Lots must already be restated in the
// share count of the window end, see AdjustLots.
func Aggregate(currency string, windows []PriceWindow, pf Portfolio, mode CostBasisMode) PortfolioReturn {
	zero := M(0, currency)
	ret := PortfolioReturn{Start: zero, Current: zero, Contributions: zero}
	for _, w := range windows {
		pos := Position{Ticker: w.Ticker, Start: zero, Current: zero, Contributions: zero}
		for _, l := range pf[w.Ticker] {
			switch {
			case !l.Date.After(w.Start):
				pos.Start = pos.Start.Add(w.StartPrice.Mul(l.Quantity))
			case !l.Date.After(w.End):
				pos.Contributions = pos.Contributions.Add(l.Invested(mode))
			}
			pos.Current = pos.Current.Add(w.EndPrice.Mul(l.Quantity))
			pos.Quantity = pos.Quantity.Add(l.Quantity)
		}
		ret.Start = ret.Start.Add(pos.Start)
		ret.Current = ret.Current.Add(pos.Current)
		ret.Contributions = ret.Contributions.Add(pos.Contributions)
		ret.Positions = append(ret.Positions, pos)
	}
	return ret
}

// base returns the capital the return is measured against.
func (r PortfolioReturn) base() Money {
	if r.Start.IsZero() {
		return r.Contributions
	}
	return r.Start
}

// Dollar returns the gain over the window, excluding the money invested during it.
//
// When nothing was held at the start and nothing was invested the return is zero.
func (r PortfolioReturn) Dollar() Money {
	if r.Start.IsZero() {
		if r.Contributions.IsZero() {
			return M(0, r.Current.Currency())
		}
		return r.Current.Sub(r.Contributions)
	}
	return r.Current.Sub(r.Start).Sub(r.Contributions)
}

// Percent returns the Dollar return relative to the start value, or to the
// contributions when nothing was held at the start.
func (r PortfolioReturn) Percent() Percent {
	base := r.base()
	if base.IsZero() {
		return 0
	}
	return Percent(r.Dollar().DivPrice(base).Mul(Q(100)).Float64())
}

// Summary formats the return as "+$500.00 (+50.00%)".
//
// Both figures carry a "+" only when the dollar return is strictly positive.
func (r PortfolioReturn) Summary() string {
	d := r.Dollar()
	return d.SignedString() + " (" + r.Percent().SignedString(d.IsPositive()) + ")"
}
