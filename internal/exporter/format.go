package exporter

import (
	"fmt"
	"math"
)

// absentValue marks a cell whose value could not be computed.
const absentValue = "—"

// formatFloat formats a float64 for report output with exactly 2 decimal
// places, so values like 13.4 appear as 13.40. Non-finite values render
// as absent.
func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return absentValue
	}
	return fmt.Sprintf("%.2f", f)
}

// formatPercent formats a nullable percentage value with a percent sign.
func formatPercent(p *float64) string {
	if p == nil {
		return absentValue
	}
	return fmt.Sprintf("%.2f%%", *p)
}

// formatInt formats an int64 for report output.
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatNullable formats a nullable float64.
func formatNullable(p *float64) string {
	if p == nil {
		return absentValue
	}
	return formatFloat(*p)
}
