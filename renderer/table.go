package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/returns"
	"github.com/olekukonko/tablewriter"
)

// ReportTable writes a report as a table of positions, followed by the totals.
func ReportTable(w io.Writer, r *returns.Report) error {
	v := newReport(r)
	fmt.Fprintf(w, "Return of %s over %s, from %s to %s\n", v.Customer, v.Timeframe, v.Window.From, v.Window.To)

	table := tablewriter.NewWriter(w)
	table.Header("Ticker", "Lineage", "Start", "Start price", "End price", "Shares", "Start value", "Contributions", "Current value")
	for _, p := range v.Positions {
		if err := table.Append(
			p.Window.Ticker,
			strings.Join(p.Window.Lineage, ", "),
			p.Window.Start.String(),
			p.Window.StartPrice.String(),
			p.Window.EndPrice.String(),
			p.Shares.String(),
			p.Start.String(),
			p.Contributions.String(),
			p.Current.String(),
		); err != nil {
			return err
		}
	}
	if err := table.Append("Total", "", "", "", "", "", v.Start.String(), v.Contributions.String(), v.Current.String()); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Return: %s\n", v.Return)
	return err
}
