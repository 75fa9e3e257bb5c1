package series

import "math"

// ComputeDeltas calculates the short-period and year-over-year percent
// changes for the latest point of a normalized series. Absent history or a
// zero denominator yields a nil percentage, which callers must render as an
// explicit "no data" marker rather than a blank or zero.
func ComputeDeltas(s Series, cadence Cadence) DeltaResult {
	result := DeltaResult{ShortPeriodLabel: cadence.ShortPeriodLabel()}

	n := len(s)
	if n < 2 {
		return result
	}

	last := s[n-1].Value
	result.ShortPeriodPct = percentChange(last, s[n-2].Value)

	yoyIndex := n - 1 - cadence.PeriodsPerYear()
	if yoyIndex >= 0 {
		result.YoYPct = percentChange(last, s[yoyIndex].Value)
	}

	return result
}

// percentChange returns (current-base)/base*100, or nil when the base is
// zero or the result would not be finite.
func percentChange(current, base float64) *float64 {
	if base == 0 {
		return nil
	}
	pct := (current - base) / base * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return nil
	}
	return &pct
}
