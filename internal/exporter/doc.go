// Package exporter writes analytics reports to CSV and Excel files.
//
// CSV output is UTF-8 with a BOM prefix so Excel opens it correctly, and
// floats are formatted with exactly two decimal places. Absent values
// (failed deltas, warm-up sentinels) render as an em-dash rather than an
// empty cell so a reader can tell "no data" from "zero".
package exporter
