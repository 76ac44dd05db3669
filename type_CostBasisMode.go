package returns

import "fmt"

// CostBasisMode defines what the cost basis of a purchase record represents.
type CostBasisMode int

const (
	// Total means the cost basis is the total amount paid for the lot.
	Total CostBasisMode = iota
	// PerShare means the cost basis is the price paid for each share.
	PerShare
)

func (m CostBasisMode) String() string {
	switch m {
	case Total:
		return "total"
	case PerShare:
		return "per-share"
	default:
		return "unknown"
	}
}

// ParseCostBasisMode parses a string into a CostBasisMode.
func ParseCostBasisMode(s string) (CostBasisMode, error) {
	switch s {
	case "total", "":
		return Total, nil
	case "per-share", "per_share":
		return PerShare, nil
	default:
		return 0, fmt.Errorf("unknown cost basis mode: %q", s)
	}
}
