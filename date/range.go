package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// ContainsAfter reports whether date is strictly after From and not after To.
//
// It is the range where a corporate action affects a value recorded on From.
func (r Range) ContainsAfter(date Date) bool { return date.After(r.From) && !date.After(r.To) }

// Days returns the number of days from From to To.
func (r Range) Days() int { return r.To.Sub(r.From) }

func (r Range) String() string { return fmt.Sprintf("%s to %s", r.From, r.To) }
