package returns

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats the percentage with two decimals. A value that rounds to zero is
// printed without a sign.
func (p Percent) String() string {
	s := fmt.Sprintf("%.2f%%", p)
	if s == "-0.00%" {
		return zeroPercent
	}
	return s
}

const zeroPercent = "0.00%"

// SignedString prefixes the percentage with "+" when positive is true and it does
// not round to zero.
//
// The sign of a return is decided by its dollar amount, not by the rounded percentage.
func (p Percent) SignedString(positive bool) string {
	s := p.String()
	if positive && s != zeroPercent {
		return "+" + s
	}
	return s
}
