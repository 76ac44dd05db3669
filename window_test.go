package returns

import (
	"errors"
	"testing"

	"github.com/etnz/returns/date"
)

func TestResolve_RenamedTicker(t *testing.T) {
	d := newTestDataset(t).
		price("OLD", "2024-06-28", 100).
		price("NEW", "2024-12-31", 150).
		rename("OLD", "NEW", "2024-10-01").
		buy("c1", "NEW", "2024-01-01", 10, 800)

	report := d.resolve("c1", SixMonths)

	w := report.Windows[0]
	if len(w.Lineage) != 2 || w.Lineage[0] != "OLD" || w.Lineage[1] != "NEW" {
		t.Errorf("Lineage = %v want [OLD NEW]", w.Lineage)
	}
	if got, want := report.Return.Summary(), "+$500.00 (+50.00%)"; got != want {
		t.Errorf("Summary() = %q want %q", got, want)
	}
}

func TestResolve_HeldUnderFormerSymbol(t *testing.T) {
	// the lots are still recorded under OLD: NEW prices are merged into OLD.
	d := newTestDataset(t).
		price("OLD", "2023-12-31", 100).
		price("NEW", "2024-12-31", 110).
		rename("OLD", "NEW", "2024-06-01").
		buy("c1", "OLD", "2023-06-01", 10, 100)

	report := d.resolve("c1", OneYear)

	w := report.Windows[0]
	if w.Ticker != "OLD" {
		t.Errorf("Ticker = %q want OLD", w.Ticker)
	}
	if len(w.Lineage) != 2 || w.Lineage[0] != "NEW" || w.Lineage[1] != "OLD" {
		t.Errorf("Lineage = %v want [NEW OLD]", w.Lineage)
	}
	if want := date.MustParse("2023-12-31"); w.Start != want {
		t.Errorf("Start = %v want %v", w.Start, want)
	}
	assertMoney(t, "StartPrice", w.StartPrice, 100)
	assertMoney(t, "EndPrice", w.EndPrice, 110)
	if got, want := report.Return.Summary(), "+$100.00 (+10.00%)"; got != want {
		t.Errorf("Summary() = %q want %q", got, want)
	}
}

func TestResolve_RenamedTickerConflict(t *testing.T) {
	d := newTestDataset(t).
		price("OLD", "2024-06-28", 100).
		price("NEW", "2024-06-28", 101).
		price("NEW", "2024-12-31", 150).
		rename("OLD", "NEW", "2024-10-01").
		buy("c1", "NEW", "2024-01-01", 10, 800)

	w := d.resolve("c1", SixMonths).Windows[0]

	assertMoney(t, "StartPrice", w.StartPrice, 101)
	if len(w.Conflicts) != 1 {
		t.Fatalf("len(Conflicts) = %d want 1", len(w.Conflicts))
	}
	c := w.Conflicts[0]
	if c.Alias != "OLD" || c.Kept != 101 || c.Dropped != 100 {
		t.Errorf("Conflict = %+v want OLD kept 101 dropped 100", c)
	}
}

func TestResolve_GateByEffectiveDate(t *testing.T) {
	build := func() *dataset {
		return newTestDataset(t).
			price("OLD", "2024-06-28", 100).
			price("OLD", "2024-12-31", 99).
			price("NEW", "2024-12-31", 150).
			rename("OLD", "NEW", "2024-10-01").
			buy("c1", "NEW", "2024-01-01", 10, 800)
	}

	w := build().resolve("c1", SixMonths).Windows[0]
	if len(w.Conflicts) != 1 {
		t.Errorf("ungated: len(Conflicts) = %d want 1", len(w.Conflicts))
	}

	w = build().resolve("c1", SixMonths, WithMergeOptions(MergeOptions{GateByEffectiveDate: true})).Windows[0]
	if len(w.Conflicts) != 0 {
		t.Errorf("gated: Conflicts = %v want none", w.Conflicts)
	}
	assertMoney(t, "gated StartPrice", w.StartPrice, 100)
	assertMoney(t, "gated EndPrice", w.EndPrice, 150)
}

func TestResolve_SplitRecordedUnderBothSymbols(t *testing.T) {
	d := newTestDataset(t).
		price("OLD", "2024-06-28", 100).
		price("NEW", "2024-12-31", 150).
		rename("OLD", "NEW", "2024-10-01").
		split("OLD", "2024-09-01", 1, 2).
		split("NEW", "2024-09-01", 1, 2).
		buy("c1", "NEW", "2024-01-01", 10, 800)

	report := d.resolve("c1", SixMonths)

	assertMoney(t, "StartPrice", report.Windows[0].StartPrice, 50)
	if q := d.ds.Portfolios["c1"]["NEW"][0].Quantity; !q.Equal(Q(20)) {
		t.Errorf("lot.Quantity = %v want 20", q)
	}
}

func TestResolve_Errors(t *testing.T) {
	testCases := []struct {
		name     string
		build    func(d *dataset)
		customer string
		want     error
	}{
		{
			name:     "unknown customer",
			build:    func(d *dataset) { d.price("ABC", "2024-12-31", 150).buy("c1", "ABC", "2024-01-01", 1, 1) },
			customer: "c2",
			want:     ErrCustomerNotFound,
		},
		{
			name:     "no prior trading day",
			build:    func(d *dataset) { d.price("ABC", "2024-12-31", 150).buy("c1", "ABC", "2024-01-01", 1, 1) },
			customer: "c1",
			want:     ErrNoPriorTradingDay,
		},
		{
			name: "missing end price",
			build: func(d *dataset) {
				d.price("ABC", "2024-06-28", 100).price("ABC", "2024-12-30", 150).buy("c1", "ABC", "2024-01-01", 1, 1)
			},
			customer: "c1",
			want:     ErrMissingEndPrice,
		},
		{
			name: "unpriced ticker",
			build: func(d *dataset) {
				d.price("ABC", "2024-06-28", 100).price("ABC", "2024-12-31", 150).
					buy("c1", "ABC", "2024-01-01", 1, 1).
					buy("c1", "ZZZ", "2024-01-01", 1, 1)
			},
			customer: "c1",
			want:     ErrPriceNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDataset(t)
			tc.build(d)
			report, err := NewResolver(d.ds, anchor).Resolve(tc.customer, SixMonths)
			if !errors.Is(err, tc.want) {
				t.Errorf("Resolve() error = %v want %v", err, tc.want)
			}
			if report != nil {
				t.Errorf("Resolve() report = %v want nil", report)
			}
		})
	}
}

func TestPriceReturn(t *testing.T) {
	d := newTestDataset(t).
		price("ABC", "2024-06-28", 100).
		price("ABC", "2024-12-31", 150).
		split("ABC", "2024-09-01", 1, 2)

	w, err := NewResolver(d.ds, anchor).PriceReturn("ABC", SixMonths)
	if err != nil {
		t.Fatalf("PriceReturn() error = %v", err)
	}
	if want := date.MustParse("2024-06-28"); w.Start != want {
		t.Errorf("Start = %v want %v", w.Start, want)
	}
	if got, want := w.Return(), Percent(200); !got.Equal(want) {
		t.Errorf("Return() = %v want %v", got, want)
	}
}

func TestResolveWindow_OneDay(t *testing.T) {
	// 2024-12-30 is a Monday, the previous price is on Friday.
	d := newTestDataset(t).
		price("ABC", "2024-12-27", 100).
		price("ABC", "2024-12-31", 110)

	w, err := NewResolver(d.ds, anchor).PriceReturn("ABC", OneDay)
	if err != nil {
		t.Fatalf("PriceReturn() error = %v", err)
	}
	if want := date.MustParse("2024-12-27"); w.Start != want {
		t.Errorf("Start = %v want %v", w.Start, want)
	}
	if got, want := w.Return(), Percent(10); !got.Equal(want) {
		t.Errorf("Return() = %v want %v", got, want)
	}
}
