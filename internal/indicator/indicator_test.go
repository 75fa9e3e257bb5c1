package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	t.Run("values", func(t *testing.T) {
		got := SMA(prices, 3)
		require.Len(t, got, len(prices))
		assert.True(t, math.IsNaN(got[0]))
		assert.True(t, math.IsNaN(got[1]))
		assert.InDelta(t, 2.0, got[2], 1e-9)
		assert.InDelta(t, 3.0, got[3], 1e-9)
		assert.InDelta(t, 4.0, got[4], 1e-9)
	})

	t.Run("period one equals input", func(t *testing.T) {
		got := SMA(prices, 1)
		for i := range prices {
			assert.Equal(t, prices[i], got[i])
		}
	})

	t.Run("output stays aligned for every period", func(t *testing.T) {
		for period := 1; period <= len(prices); period++ {
			assert.Len(t, SMA(prices, period), len(prices), "period %d", period)
		}
	})

	t.Run("insufficient data is all sentinel", func(t *testing.T) {
		got := SMA([]float64{1, 2}, 5)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.True(t, math.IsNaN(v))
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		in := []float64{3, 1, 2}
		SMA(in, 2)
		assert.Equal(t, []float64{3, 1, 2}, in)
	})
}

func TestEMA(t *testing.T) {
	prices := []float64{10, 11, 12, 11, 10}

	t.Run("recursion seeded from first value", func(t *testing.T) {
		got := EMA(prices, 3)
		require.Len(t, got, len(prices))

		// k = 2/(3+1) = 0.5, seeded at 10: 10, 10.5, 11.25, 11.125, 10.5625
		assert.True(t, math.IsNaN(got[0]))
		assert.True(t, math.IsNaN(got[1]))
		assert.InDelta(t, 11.25, got[2], 1e-9)
		assert.InDelta(t, 11.125, got[3], 1e-9)
		assert.InDelta(t, 10.5625, got[4], 1e-9)
	})

	t.Run("period longer than input is all sentinel", func(t *testing.T) {
		got := EMA(prices, 10)
		for _, v := range got {
			assert.True(t, math.IsNaN(v))
		}
	})
}

func TestRSI(t *testing.T) {
	t.Run("output is one shorter with sentinel prefix", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = float64(100 + i)
		}

		got := RSI(prices, DefaultRSIPeriod)
		require.Len(t, got, len(prices)-1)
		for i := 0; i < DefaultRSIPeriod; i++ {
			assert.True(t, math.IsNaN(got[i]), "index %d must be sentinel", i)
		}
		for i := DefaultRSIPeriod; i < len(got); i++ {
			assert.False(t, math.IsNaN(got[i]), "index %d must be real", i)
		}
	})

	t.Run("all gains resolve to 100", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = float64(100 + i)
		}
		got := RSI(prices, DefaultRSIPeriod)
		assert.InDelta(t, 100.0, got[len(got)-1], 1e-9)
	})

	t.Run("defined values stay within bounds", func(t *testing.T) {
		prices := []float64{
			44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42,
			45.84, 46.08, 45.89, 46.03, 45.61, 46.28, 46.28, 46.00,
			46.03, 46.41, 46.22, 45.64, 46.21, 46.25, 45.71, 46.45,
		}
		got := RSI(prices, DefaultRSIPeriod)
		for i, v := range got {
			if math.IsNaN(v) {
				continue
			}
			assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
			assert.LessOrEqual(t, v, 100.0, "index %d", i)
		}
	})

	t.Run("too little history", func(t *testing.T) {
		assert.Empty(t, RSI([]float64{10}, DefaultRSIPeriod))

		got := RSI([]float64{10, 11, 12}, DefaultRSIPeriod)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.True(t, math.IsNaN(v))
		}
	})
}

func TestMACD(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + 5*math.Sin(float64(i)/4)
	}

	t.Run("warm-up is sentinel on all three lines", func(t *testing.T) {
		got := MACD(prices, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
		require.Len(t, got.MACDLine, len(prices))
		require.Len(t, got.SignalLine, len(prices))
		require.Len(t, got.Histogram, len(prices))

		macdStart := DefaultMACDSlow - 1
		signalStart := macdStart + DefaultMACDSignal - 1

		for i := 0; i < macdStart; i++ {
			assert.True(t, math.IsNaN(got.MACDLine[i]), "macd index %d", i)
		}
		for i := macdStart; i < len(prices); i++ {
			assert.False(t, math.IsNaN(got.MACDLine[i]), "macd index %d", i)
		}
		for i := 0; i < signalStart; i++ {
			assert.True(t, math.IsNaN(got.SignalLine[i]), "signal index %d", i)
			assert.True(t, math.IsNaN(got.Histogram[i]), "histogram index %d", i)
		}
		for i := signalStart; i < len(prices); i++ {
			assert.False(t, math.IsNaN(got.SignalLine[i]), "signal index %d", i)
			assert.InDelta(t, got.MACDLine[i]-got.SignalLine[i], got.Histogram[i], 1e-9)
		}
	})

	t.Run("flat prices give a zero macd line", func(t *testing.T) {
		flat := make([]float64, 40)
		for i := range flat {
			flat[i] = 50
		}
		got := MACD(flat, DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
		for i := DefaultMACDSlow - 1; i < len(flat); i++ {
			assert.InDelta(t, 0.0, got.MACDLine[i], 1e-9)
		}
	})

	t.Run("insufficient history is all sentinel", func(t *testing.T) {
		got := MACD(prices[:10], DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal)
		for i := range got.MACDLine {
			assert.True(t, math.IsNaN(got.MACDLine[i]))
			assert.True(t, math.IsNaN(got.SignalLine[i]))
			assert.True(t, math.IsNaN(got.Histogram[i]))
		}
	})
}
