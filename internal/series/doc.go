// Package series turns raw, heterogeneously-shaped observation arrays into
// chronologically sound series ready for delta and chart computation.
//
// The package covers four concerns, applied in order by callers:
//
//  1. Date-key parsing: canonicalizes the several date shapes upstream APIs
//     emit ("YYYY", "YYYY-MM", "YYYY-MM-DD", "YYYY-Qn", "YYYY-Mnn") into a
//     calendar instant used strictly for ordering and labeling.
//  2. Normalization: deduplicates colliding date keys (last write wins),
//     drops unparseable observations, and sorts ascending.
//  3. Cadence inference: best-effort classification of a series as monthly,
//     quarterly, or annual from the average gap between points.
//  4. Delta computation: cadence-aware short-period and year-over-year
//     percent changes.
//
// Everything here is pure and synchronous: no I/O, no shared state, inputs
// are never mutated, and outputs are freshly allocated. Insufficient or
// degenerate data resolves to nil results, never to NaN, Inf, or a panic,
// because dashboards must always render something.
package series
