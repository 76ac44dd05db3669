// Package returns computes the investment return of a customer's equity portfolio
// over a lookback window.
//
// The core reconciles three independent timelines: daily closing prices, corporate
// actions (ticker renames and stock splits) and the customer's purchase lots. Every
// figure is restated in current-share terms before being aggregated:
//   - Market stores price series per ticker and locates the last trading day on or
//     before a date.
//   - Renames resolves the symbols a ticker was known as, so their price history can
//     be merged into the current symbol.
//   - Splits adjusts a historical price for the splits that happened after it, and
//     restates purchase lots into today's share count.
//   - Resolver builds one PriceWindow per held ticker, and Aggregate turns the windows
//     and lots into a PortfolioReturn.
//
// The evaluation anchor ("today") is always an explicit value so that computations are
// deterministic. Loading the input tables (CSV files, a JSON price feed, or a SQLite
// store) is handled by Dataset and the store subpackage.
package returns
