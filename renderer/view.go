package renderer

import (
	"fmt"

	"github.com/etnz/returns"
	"github.com/etnz/returns/date"
)

// Report is the printable view of a returns.Report.
type Report struct {
	Customer      string
	Timeframe     string
	Window        date.Range
	Start         returns.Money
	Current       returns.Money
	Contributions returns.Money
	Return        string // "+$500.00 (+50.00%)"
	Positions     []Position
	Conflicts     []returns.MergeConflict
}

// Position is the printable view of one ticker of a report.
type Position struct {
	Window        Window
	Shares        returns.Quantity
	Start         returns.Money
	Contributions returns.Money
	Current       returns.Money
}

// Window is the printable view of a returns.PriceWindow.
type Window struct {
	Ticker        string
	Lineage       []string
	Start, End    date.Date
	RawStartPrice returns.Money
	StartPrice    returns.Money
	EndPrice      returns.Money
	Splits        []string
	Adjusted      bool   // StartPrice differs from RawStartPrice
	Return        string // signed price return
}

func newWindow(w returns.PriceWindow) Window {
	v := Window{
		Ticker:        w.Ticker,
		Lineage:       w.Lineage,
		Start:         w.Start,
		End:           w.End,
		RawStartPrice: w.RawStartPrice,
		StartPrice:    w.StartPrice,
		EndPrice:      w.EndPrice,
		Adjusted:      !w.StartPrice.Equal(w.RawStartPrice),
	}
	for _, s := range w.Splits {
		v.Splits = append(v.Splits, fmt.Sprintf("%s %s:%s", s.Date, s.From, s.To))
	}
	ret := w.Return()
	v.Return = ret.SignedString(ret > 0)
	return v
}

func newReport(r *returns.Report) Report {
	v := Report{
		Customer:      r.Customer,
		Timeframe:     r.Timeframe.Label,
		Window:        r.Window,
		Start:         r.Return.Start,
		Current:       r.Return.Current,
		Contributions: r.Return.Contributions,
		Return:        r.Return.Summary(),
	}
	for i, w := range r.Windows {
		p := Position{Window: newWindow(w)}
		if i < len(r.Return.Positions) {
			pos := r.Return.Positions[i]
			p.Shares, p.Start, p.Contributions, p.Current = pos.Quantity, pos.Start, pos.Contributions, pos.Current
		}
		v.Positions = append(v.Positions, p)
		v.Conflicts = append(v.Conflicts, w.Conflicts...)
	}
	return v
}
