package returns

import "errors"

// Errors returned by the evaluation. They are always wrapped with the ticker,
// customer or label that caused them, use errors.Is to test for them.
var (
	ErrInvalidTimeframe  = errors.New("invalid timeframe")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoPriorTradingDay = errors.New("no prior trading day")
	ErrMissingEndPrice   = errors.New("missing end price")
	ErrPriceNotFound     = errors.New("price not found")
)
