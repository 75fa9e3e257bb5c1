// Package risk computes return and risk statistics over plain ordered
// arrays of closing prices: per-period returns, trailing returns,
// annualized volatility, maximum drawdown, and trailing cross-series
// correlation.
//
// The annualization factor is an explicit periods-per-year parameter so
// callers scale volatility by the actual sampling cadence of their data
// instead of a baked-in daily assumption. All functions are pure, never
// mutate their inputs, and resolve degenerate cases to zero or nil rather
// than NaN or a panic.
package risk
