package returns

import (
	"fmt"
	"strings"

	"github.com/etnz/returns/date"
)

// Timeframe is a named lookback period, counted in calendar days before the anchor.
type Timeframe struct {
	Label string
	Days  int
}

var (
	OneDay    = Timeframe{"1 day", 1}
	FiveDays  = Timeframe{"5 days", 5}
	SixMonths = Timeframe{"6 months", 182}
	OneYear   = Timeframe{"1 year", 365}
)

// Timeframes returns the recognized timeframes, shortest first.
func Timeframes() []Timeframe { return []Timeframe{OneDay, FiveDays, SixMonths, OneYear} }

// ParseTimeframe returns the timeframe for a label like "6 months".
func ParseTimeframe(label string) (Timeframe, error) {
	switch strings.ToLower(strings.Join(strings.Fields(label), " ")) {
	case OneDay.Label:
		return OneDay, nil
	case FiveDays.Label:
		return FiveDays, nil
	case SixMonths.Label:
		return SixMonths, nil
	case OneYear.Label:
		return OneYear, nil
	default:
		return Timeframe{}, fmt.Errorf("%w %q want one of %s", ErrInvalidTimeframe, label, timeframeLabels())
	}
}

func timeframeLabels() string {
	labels := make([]string, 0, 4)
	for _, tf := range Timeframes() {
		labels = append(labels, fmt.Sprintf("%q", tf.Label))
	}
	return strings.Join(labels, ", ")
}

// Window returns the calendar window ending on anchor.
func (tf Timeframe) Window(anchor date.Date) date.Range {
	return date.Range{From: anchor.Add(-tf.Days), To: anchor}
}

func (tf Timeframe) String() string { return tf.Label }
