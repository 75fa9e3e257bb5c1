// Package indicator computes standard technical indicators over plain
// ordered arrays of closing prices.
//
// Every function returns a fresh slice aligned index-for-index with its
// input; positions lacking sufficient trailing history hold math.NaN()
// instead of being omitted, so indicator overlays stay aligned with the
// price chart. No function mutates its input or panics on degenerate data.
package indicator
