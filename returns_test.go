package returns

import (
	"testing"

	"github.com/etnz/returns/date"
)

func TestResolve_ScenarioA(t *testing.T) {
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		buy("c1", "ABC", "2024-01-01", 10, 800)

	report := d.resolve("c1", SixMonths)

	if len(report.Windows) != 1 {
		t.Fatalf("len(Windows) = %d want 1", len(report.Windows))
	}
	w := report.Windows[0]
	if want := date.MustParse("2024-06-28"); w.Start != want {
		t.Errorf("Start = %v want %v", w.Start, want)
	}
	ret := report.Return
	assertMoney(t, "Start", ret.Start, 1000)
	assertMoney(t, "Current", ret.Current, 1500)
	assertMoney(t, "Contributions", ret.Contributions, 0)
	assertMoney(t, "Dollar", ret.Dollar(), 500)
	if got, want := ret.Percent(), Percent(50); !got.Equal(want) {
		t.Errorf("Percent() = %v want %v", got, want)
	}
	if got, want := ret.Summary(), "+$500.00 (+50.00%)"; got != want {
		t.Errorf("Summary() = %q want %q", got, want)
	}
}

func TestResolve_ScenarioB(t *testing.T) {
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		split("ABC", "2024-09-01", 1, 2).
		buy("c1", "ABC", "2024-01-01", 10, 800)

	report := d.resolve("c1", SixMonths)

	w := report.Windows[0]
	assertMoney(t, "RawStartPrice", w.RawStartPrice, 100)
	assertMoney(t, "StartPrice", w.StartPrice, 50)
	if len(w.Splits) != 1 {
		t.Errorf("len(Splits) = %d want 1", len(w.Splits))
	}

	lot := d.ds.Portfolios["c1"]["ABC"][0]
	if !lot.Quantity.Equal(Q(20)) {
		t.Errorf("lot.Quantity = %v want 20", lot.Quantity)
	}
	assertMoney(t, "lot.Cost", lot.Cost, 400)

	ret := report.Return
	assertMoney(t, "Start", ret.Start, 1000)
	assertMoney(t, "Current", ret.Current, 3000)
	if got, want := ret.Summary(), "+$2,000.00 (+200.00%)"; got != want {
		t.Errorf("Summary() = %q want %q", got, want)
	}
}

func TestResolve_ScenarioC(t *testing.T) {
	d := newTestDataset(t).
		price("XYZ", "2024-06-28", 10).
		price("XYZ", "2024-12-31", 12).
		buy("c1", "XYZ", "2024-09-02", 50, 500)

	ret := d.resolve("c1", SixMonths).Return

	assertMoney(t, "Start", ret.Start, 0)
	assertMoney(t, "Contributions", ret.Contributions, 500)
	assertMoney(t, "Current", ret.Current, 600)
	assertMoney(t, "Dollar", ret.Dollar(), 100)
	if got, want := ret.Percent(), Percent(20); !got.Equal(want) {
		t.Errorf("Percent() = %v want %v", got, want)
	}
}

func TestResolve_ContributionSplitInWindow(t *testing.T) {
	// a lot bought during the window, then split: the contribution is still what was paid.
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 60).
		split("ABC", "2024-09-01", 1, 2).
		buy("c1", "ABC", "2024-08-01", 10, 1000)

	ret := d.resolve("c1", SixMonths).Return

	lot := d.ds.Portfolios["c1"]["ABC"][0]
	if !lot.Quantity.Equal(Q(20)) {
		t.Errorf("lot.Quantity = %v want 20", lot.Quantity)
	}
	assertMoney(t, "lot.Cost", lot.Cost, 500)
	assertMoney(t, "Start", ret.Start, 0)
	assertMoney(t, "Contributions", ret.Contributions, 1000)
	assertMoney(t, "Current", ret.Current, 1200)
	if got, want := ret.Summary(), "+$200.00 (+20.00%)"; got != want {
		t.Errorf("Summary() = %q want %q", got, want)
	}

	perShare := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 60).
		split("ABC", "2024-09-01", 1, 2).
		buy("c1", "ABC", "2024-08-01", 10, 100).
		resolve("c1", SixMonths, WithCostBasisMode(PerShare)).Return
	assertMoney(t, "per share Contributions", perShare.Contributions, 1000)
}

func TestResolve_PerShareCostBasis(t *testing.T) {
	d := newTestDataset(t).
		price("XYZ", "2024-06-28", 10).
		price("XYZ", "2024-12-31", 12).
		buy("c1", "XYZ", "2024-09-02", 50, 10)

	ret := d.resolve("c1", SixMonths, WithCostBasisMode(PerShare)).Return

	assertMoney(t, "Contributions", ret.Contributions, 500)
	assertMoney(t, "Dollar", ret.Dollar(), 100)
}

func TestResolve_MixedLots(t *testing.T) {
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		price("XYZ", "2024-06-28", 10).
		price("XYZ", "2024-12-31", 9).
		buy("c1", "ABC", "2024-01-01", 10, 800).
		buy("c1", "ABC", "2024-10-01", 2, 260).
		buy("c1", "XYZ", "2024-03-01", 100, 900)

	ret := d.resolve("c1", SixMonths).Return

	// start: 100*10 + 10*100, current: 150*12 + 9*100
	assertMoney(t, "Start", ret.Start, 2000)
	assertMoney(t, "Contributions", ret.Contributions, 260)
	assertMoney(t, "Current", ret.Current, 2700)
	assertMoney(t, "Dollar", ret.Dollar(), 440)
	if got, want := ret.Percent(), Percent(22); !got.Equal(want) {
		t.Errorf("Percent() = %v want %v", got, want)
	}
	if len(ret.Positions) != 2 || ret.Positions[0].Ticker != "ABC" || ret.Positions[1].Ticker != "XYZ" {
		t.Fatalf("Positions = %v want ABC then XYZ", ret.Positions)
	}
	if !ret.Positions[0].Quantity.Equal(Q(12)) {
		t.Errorf("ABC quantity = %v want 12", ret.Positions[0].Quantity)
	}
}

func TestResolve_LotAfterEnd(t *testing.T) {
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		buy("c1", "ABC", "2025-01-02", 10, 1500)

	ret := d.resolve("c1", SixMonths).Return

	assertMoney(t, "Start", ret.Start, 0)
	assertMoney(t, "Contributions", ret.Contributions, 0)
	assertMoney(t, "Current", ret.Current, 1500)
	assertMoney(t, "Dollar", ret.Dollar(), 0)
	if got := ret.Percent(); got != 0 {
		t.Errorf("Percent() = %v want 0", got)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		split("ABC", "2024-09-01", 1, 2).
		buy("c1", "ABC", "2024-01-01", 10, 800)

	first := d.resolve("c1", SixMonths).Return
	second := d.resolve("c1", SixMonths).Return

	assertMoney(t, "second Start", second.Start, first.Start.Float64())
	assertMoney(t, "second Current", second.Current, first.Current.Float64())
	if got, want := second.Summary(), first.Summary(); got != want {
		t.Errorf("second Summary() = %q want %q", got, want)
	}
}

func TestResolve_OneYearWindow(t *testing.T) {
	// a split outside the window still restates lots bought before it.
	d := newTestDataset(t).
		price("ABC", "2023-12-29", 40).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		split("ABC", "2023-06-01", 1, 3).
		buy("c1", "ABC", "2023-01-01", 10, 900)

	report := d.resolve("c1", OneYear)

	w := report.Windows[0]
	if want := date.MustParse("2023-12-29"); w.Start != want {
		t.Errorf("Start = %v want %v", w.Start, want)
	}
	assertMoney(t, "StartPrice", w.StartPrice, 40)
	assertMoney(t, "Start", report.Return.Start, 1200)
	assertMoney(t, "Current", report.Return.Current, 4500)
}

func TestPortfolioReturn_Summary(t *testing.T) {
	testCases := []struct {
		name                          string
		start, current, contributions float64
		want                          string
	}{
		{"gain", 1000, 1500, 0, "+$500.00 (+50.00%)"},
		{"loss", 1000, 900, 0, "-$100.00 (-10.00%)"},
		{"flat", 1000, 1000, 0, "$0.00 (0.00%)"},
		{"contributions only", 0, 600, 500, "+$100.00 (+20.00%)"},
		{"nothing invested", 0, 0, 0, "$0.00 (0.00%)"},
		{"with contributions", 1000, 1800, 500, "+$300.00 (+30.00%)"},
		{"sub-cent loss", 1000, 999.999, 0, "$0.00 (0.00%)"},
		{"one cent loss", 1000000, 999999.99, 0, "-$0.01 (0.00%)"},
		{"one cent gain", 1000000, 1000000.01, 0, "+$0.01 (0.00%)"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := PortfolioReturn{Start: USD(tc.start), Current: USD(tc.current), Contributions: USD(tc.contributions)}
			if got := r.Summary(); got != tc.want {
				t.Errorf("Summary() = %q want %q", got, tc.want)
			}
		})
	}
}
