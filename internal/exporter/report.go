package exporter

import (
	"macropulse/internal/series"
)

// SeriesReport is the exportable view of one analyzed series.
type SeriesReport struct {
	Name                 string
	Series               series.Series
	Cadence              series.Cadence
	Deltas               series.DeltaResult
	MaxDrawdown          float64
	AnnualizedVolatility float64
}

// observationHeaders is the column layout of the observation table.
var observationHeaders = []string{"Date", "Value"}

// observationRecords renders the normalized observations as CSV records.
func observationRecords(s series.Series) [][]string {
	records := make([][]string, 0, len(s))
	for _, p := range s {
		records = append(records, []string{p.Date, formatFloat(p.Value)})
	}
	return records
}

// summaryRows renders the report's headline statistics as label/value
// pairs, shared by the CSV and Excel writers.
func summaryRows(report SeriesReport) [][]string {
	shortLabel := report.Deltas.ShortPeriodLabel
	if shortLabel == "" {
		shortLabel = report.Cadence.ShortPeriodLabel()
	}

	return [][]string{
		{"Observations", formatInt(int64(len(report.Series)))},
		{"Cadence", report.Cadence.String()},
		{shortLabel + " Change", formatPercent(report.Deltas.ShortPeriodPct)},
		{"YoY Change", formatPercent(report.Deltas.YoYPct)},
		{"Max Drawdown", formatPercent(scalePercent(report.MaxDrawdown))},
		{"Annualized Volatility", formatPercent(scalePercent(report.AnnualizedVolatility))},
	}
}

// scalePercent converts a fraction into percentage points for display.
func scalePercent(fraction float64) *float64 {
	pct := fraction * 100
	return &pct
}
