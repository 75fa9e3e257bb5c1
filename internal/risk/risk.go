package risk

import "math"

const (
	// DailyPeriodsPerYear is the annualization factor for calendar-daily
	// price series.
	DailyPeriodsPerYear = 365.0

	// MinCorrelationPoints is the smallest aligned window for which a
	// correlation is considered meaningful.
	MinCorrelationPoints = 6

	// correlationEpsilon guards the correlation denominator against a
	// numerically zero variance.
	correlationEpsilon = 1e-12
)

// Returns computes per-period simple returns, one element shorter than the
// input. A zero or non-finite previous price contributes a 0 return for
// that step instead of propagating NaN into downstream statistics.
func Returns(closes []float64) []float64 {
	if len(closes) < 2 {
		return []float64{}
	}

	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 || math.IsNaN(prev) || math.IsInf(prev, 0) {
			continue // out[i-1] stays 0
		}
		r := (closes[i] - prev) / prev
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out[i-1] = r
	}
	return out
}

// TrailingReturn computes the simple return over the last periods steps.
// It returns nil when the series is too short or the base price is zero.
func TrailingReturn(closes []float64, periods int) *float64 {
	n := len(closes)
	if periods < 1 || n < periods+1 {
		return nil
	}

	base := closes[n-1-periods]
	if base == 0 || math.IsNaN(base) || math.IsInf(base, 0) {
		return nil
	}

	r := (closes[n-1] - base) / base
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return &r
}

// AnnualizedVolatility computes the Bessel-corrected sample standard
// deviation of the per-period returns, scaled by the square root of
// periodsPerYear. Fewer than two returns, or a non-positive factor, yields 0.
func AnnualizedVolatility(returns []float64, periodsPerYear float64) float64 {
	if len(returns) < 2 || periodsPerYear <= 0 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	sumSquared := 0.0
	for _, r := range returns {
		sumSquared += (r - mean) * (r - mean)
	}

	stddev := math.Sqrt(sumSquared / float64(len(returns)-1))
	return stddev * math.Sqrt(periodsPerYear)
}

// MaxDrawdown returns the most negative peak-to-trough decline of the
// price series as a fraction, tracked against the running peak in a single
// forward pass. The result is always <= 0; an empty or never-declining
// series yields 0.
func MaxDrawdown(closes []float64) float64 {
	if len(closes) == 0 {
		return 0
	}

	peak := closes[0]
	maxDD := 0.0
	for _, price := range closes {
		if price > peak {
			peak = price
		}
		if peak <= 0 {
			continue
		}
		dd := (price - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Correlation computes the Pearson correlation of two price series over
// their shorter trailing window. It returns nil when fewer than
// MinCorrelationPoints aligned points exist or when either series has no
// variance.
func Correlation(a, b []float64) *float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < MinCorrelationPoints {
		return nil
	}

	// Align on the trailing window of the shorter series.
	a = a[len(a)-n:]
	b = b[len(b)-n:]

	var meanA, meanB float64
	for i := 0; i < n; i++ {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= float64(n)
	meanB /= float64(n)

	var cov, varA, varB float64
	for i := 0; i < n; i++ {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	denom := math.Sqrt(varA * varB)
	if denom < correlationEpsilon {
		return nil
	}

	r := cov / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	return &r
}
