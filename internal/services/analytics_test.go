package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macropulse/internal/chart"
	"macropulse/internal/series"
)

func testService() *AnalyticsService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAnalyticsService(logger, chart.Options{
		Width:     chart.DefaultWidth,
		Height:    chart.DefaultHeight,
		Padding:   chart.DefaultPadding,
		TickCount: chart.DefaultTickCount,
	})
}

func monthlyObservations(n int, start float64) []series.Observation {
	obs := make([]series.Observation, 0, n)
	year, month := 2020, 1
	value := start
	for i := 0; i < n; i++ {
		obs = append(obs, series.Observation{
			Date:  formatMonth(year, month),
			Value: value,
		})
		value += 1
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return obs
}

func formatMonth(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func TestAnalyzeSeries(t *testing.T) {
	svc := testService()

	t.Run("normalizes and infers cadence", func(t *testing.T) {
		analysis := svc.AnalyzeSeries(context.Background(), monthlyObservations(24, 100))

		require.Len(t, analysis.Series, 24)
		assert.NotEmpty(t, analysis.ReportID)
		assert.Equal(t, "Monthly", analysis.Cadence)
		assert.Equal(t, "MoM", analysis.Deltas.ShortPeriodLabel)
		require.NotNil(t, analysis.Deltas.YoYPct)
		assert.Empty(t, analysis.Dropped)
	})

	t.Run("reports unparseable observations", func(t *testing.T) {
		raw := append(monthlyObservations(3, 100), series.Observation{Date: "whenever", Value: 1})
		analysis := svc.AnalyzeSeries(context.Background(), raw)

		require.Len(t, analysis.Dropped, 1)
		assert.Equal(t, "whenever", analysis.Dropped[0].Date)
		assert.Len(t, analysis.Series, 3)
	})

	t.Run("fresh report IDs per call", func(t *testing.T) {
		a := svc.AnalyzeSeries(context.Background(), monthlyObservations(3, 1))
		b := svc.AnalyzeSeries(context.Background(), monthlyObservations(3, 1))
		assert.NotEqual(t, a.ReportID, b.ReportID)
	})
}

func TestProjectChart(t *testing.T) {
	svc := testService()

	t.Run("applies service defaults", func(t *testing.T) {
		out := svc.ProjectChart(context.Background(), monthlyObservations(12, 100), chart.Options{})

		require.Len(t, out.Projection.PointPath, 12)
		assert.NotEmpty(t, out.Projection.AreaPath)
		assert.Equal(t, 12-1, out.Projection.TickIndices[len(out.Projection.TickIndices)-1])
	})

	t.Run("caller dimensions win", func(t *testing.T) {
		out := svc.ProjectChart(context.Background(), monthlyObservations(12, 100), chart.Options{Width: 100, Height: 50, Padding: 10, TickCount: 3})

		first := out.Projection.PointPath[0]
		assert.InDelta(t, 10.0, first.X, 1e-9)
	})
}

func TestComputeIndicators(t *testing.T) {
	svc := testService()
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}

	analysis := svc.ComputeIndicators(context.Background(), closes, IndicatorParams{})

	assert.Len(t, analysis.SMA, len(closes))
	assert.Len(t, analysis.MACDLine, len(closes))
	assert.Len(t, analysis.RSI, len(closes)-1)

	// Warm-up sentinels become nulls, defined region becomes values.
	assert.Nil(t, analysis.SMA[0])
	assert.NotNil(t, analysis.SMA[19])
	assert.Nil(t, analysis.SignalLine[0])
	assert.NotNil(t, analysis.SignalLine[len(closes)-1])
}

func TestBatchIndicators(t *testing.T) {
	svc := testService()
	quotes := map[string][]float64{
		"AAA": {1, 2, 3, 4, 5},
		"BBB": {5, 4, 3, 2, 1},
		"CCC": {},
	}

	results, err := svc.BatchIndicators(context.Background(), quotes, IndicatorParams{SMAPeriod: 2})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Len(t, results["AAA"].SMA, 5)
	assert.Empty(t, results["CCC"].SMA)
}

func TestComputeRisk(t *testing.T) {
	svc := testService()
	closes := []float64{10, 11, 12, 11, 10, 9, 10}

	t.Run("without benchmark", func(t *testing.T) {
		analysis := svc.ComputeRisk(context.Background(), closes, nil, 0)

		assert.Len(t, analysis.Returns, len(closes)-1)
		assert.InDelta(t, -0.25, analysis.MaxDrawdown, 1e-9)
		assert.Nil(t, analysis.Correlation)
	})

	t.Run("perfectly correlated benchmark", func(t *testing.T) {
		benchmark := make([]float64, len(closes))
		for i, c := range closes {
			benchmark[i] = c * 2
		}
		analysis := svc.ComputeRisk(context.Background(), closes, benchmark, 12)

		require.NotNil(t, analysis.Correlation)
		assert.InDelta(t, 1.0, *analysis.Correlation, 1e-9)
	})
}

func TestSummarize(t *testing.T) {
	svc := testService()

	t.Run("empty history", func(t *testing.T) {
		summary := svc.Summarize(context.Background(), "AAA", nil)
		assert.Equal(t, "AAA", summary.Ticker)
		assert.Zero(t, summary.LastPrice)
		assert.Nil(t, summary.DailyChangePct)
	})

	t.Run("full history", func(t *testing.T) {
		closes := []float64{10, 11, 12, 11, 10, 9, 10}
		summary := svc.Summarize(context.Background(), "AAA", closes)

		assert.Equal(t, 10.0, summary.LastPrice)
		require.NotNil(t, summary.PreviousClose)
		assert.Equal(t, 9.0, *summary.PreviousClose)

		require.NotNil(t, summary.DailyChangePct)
		assert.InDelta(t, 100*(10.0/9.0-1), *summary.DailyChangePct, 1e-9)

		require.NotNil(t, summary.WeeklyChangePct)
		assert.InDelta(t, 100*(10.0/11.0-1), *summary.WeeklyChangePct, 1e-9)

		// Only 6 returns of history, so no monthly window yet.
		assert.Nil(t, summary.MonthlyChangePct)

		require.NotNil(t, summary.High52Week)
		assert.Equal(t, 12.0, *summary.High52Week)
		require.NotNil(t, summary.Low52Week)
		assert.Equal(t, 9.0, *summary.Low52Week)

		assert.Equal(t, closes, summary.Sparkline)
		assert.InDelta(t, -0.25, summary.MaxDrawdown, 1e-9)
	})
}

func TestSummarizeAll(t *testing.T) {
	svc := testService()
	quotes := map[string][]float64{
		"AAA": {10, 11, 12},
		"BBB": {3, 2, 1},
	}

	results, err := svc.SummarizeAll(context.Background(), quotes)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 12.0, results["AAA"].LastPrice)
	assert.Equal(t, 1.0, results["BBB"].LastPrice)
}
