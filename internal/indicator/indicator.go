package indicator

import "math"

// Conventional default periods used across the dashboards.
const (
	DefaultRSIPeriod  = 14
	DefaultMACDFast   = 12
	DefaultMACDSlow   = 26
	DefaultMACDSignal = 9
)

// SMA computes the simple moving average over a trailing window of the
// given period. Positions before period-1 hold NaN. A running sum keeps
// the computation linear in the input length.
func SMA(prices []float64, period int) []float64 {
	out := nanSlice(len(prices))
	if period < 1 || len(prices) < period {
		return out
	}

	sum := 0.0
	for i, price := range prices {
		sum += price
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average with smoothing constant
// k = 2/(period+1). The recursion is seeded from the first data point
// rather than from an initial SMA; that is a deliberate simplification
// which diverges from the textbook seeding convention but keeps the first
// window cheap. Positions before period-1 hold NaN.
func EMA(prices []float64, period int) []float64 {
	out := nanSlice(len(prices))
	if period < 1 || len(prices) < period {
		return out
	}

	full := emaRecursion(prices, period)
	copy(out[period-1:], full[period-1:])
	return out
}

// emaRecursion runs the first-value-seeded EMA recursion over the whole
// input, with no warm-up blanking. MACD uses it directly so the line and
// signal computations share one definition.
func emaRecursion(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	k := 2.0 / (float64(period) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// RSI computes the Wilder-smoothed Relative Strength Index. The output is
// one element shorter than the input because the first price has no delta,
// and it carries a NaN prefix of length period before real values begin.
// The seed averages are the simple means of the first period gains and
// losses; later steps apply Wilder's smoothing. A window with zero average
// loss resolves to RSI 100. Defined values always lie in [0, 100].
func RSI(prices []float64, period int) []float64 {
	if len(prices) < 2 {
		return []float64{}
	}

	deltas := make([]float64, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		deltas[i-1] = prices[i] - prices[i-1]
	}

	out := nanSlice(len(deltas))
	if period < 1 || len(deltas) <= period {
		return out
	}

	var avgGain, avgLoss float64
	for _, d := range deltas[:period] {
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period; i < len(deltas); i++ {
		gain, loss := 0.0, 0.0
		if deltas[i] > 0 {
			gain = deltas[i]
		} else {
			loss = -deltas[i]
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		if avgLoss == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain / avgLoss
		out[i] = 100 - 100/(1+rs)
	}

	return out
}

// MACDResult holds the three index-aligned MACD series.
type MACDResult struct {
	MACDLine   []float64 `json:"macd_line"`
	SignalLine []float64 `json:"signal_line"`
	Histogram  []float64 `json:"histogram"`
}

// MACD computes the moving average convergence divergence of a price
// series. The MACD line is EMA(fast) minus EMA(slow) and is NaN until the
// slow window has history. The signal line smooths only the real MACD
// values and stays NaN until signalPeriod of them exist, rather than
// treating warm-up sentinels as zeros, so early signal values are not
// understated. The histogram is the elementwise difference where both
// lines are defined.
func MACD(prices []float64, fast, slow, signalPeriod int) MACDResult {
	n := len(prices)
	result := MACDResult{
		MACDLine:   nanSlice(n),
		SignalLine: nanSlice(n),
		Histogram:  nanSlice(n),
	}
	if n == 0 || fast < 1 || slow < 1 || signalPeriod < 1 || slow <= fast || n < slow {
		return result
	}

	fastEMA := emaRecursion(prices, fast)
	slowEMA := emaRecursion(prices, slow)

	macdStart := slow - 1
	for i := macdStart; i < n; i++ {
		result.MACDLine[i] = fastEMA[i] - slowEMA[i]
	}

	// Smooth the defined portion of the MACD line only.
	defined := result.MACDLine[macdStart:]
	signal := emaRecursion(defined, signalPeriod)
	signalStart := macdStart + signalPeriod - 1
	for i := signalStart; i < n; i++ {
		result.SignalLine[i] = signal[i-macdStart]
		result.Histogram[i] = result.MACDLine[i] - result.SignalLine[i]
	}

	return result
}

// nanSlice allocates a slice of the given length filled with NaN.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
