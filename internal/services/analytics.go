// Package services orchestrates the analytics engine for the HTTP
// handlers and CLI tools: raw observation arrays in, chart-ready
// structures out.
package services

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"macropulse/internal/chart"
	"macropulse/internal/indicator"
	"macropulse/internal/risk"
	"macropulse/internal/series"
)

// Trading-day window sizes used for dashboard summaries of daily series.
const (
	weeklyTradingDays  = 5
	monthlyTradingDays = 21
	yearTradingDays    = 252
	sparklinePoints    = 10
)

// maxBatchConcurrency bounds how many tickers are computed in parallel in
// batch calls. Each computation only reads its own input, so parallelism
// needs no locking beyond the result map.
const maxBatchConcurrency = 8

// AnalyticsService turns raw fetched arrays into display-ready analytics.
// It is stateless; every call allocates fresh output.
type AnalyticsService struct {
	logger    *slog.Logger
	chartOpts chart.Options
}

// NewAnalyticsService creates a new analytics service. The chart options
// are the defaults applied when a caller does not override dimensions.
func NewAnalyticsService(logger *slog.Logger, chartOpts chart.Options) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsService{
		logger:    logger.With(slog.String("component", "analytics_service")),
		chartOpts: chartOpts,
	}
}

// SeriesAnalysis is the normalized view of one observation array.
type SeriesAnalysis struct {
	ReportID string               `json:"report_id"`
	Series   series.Series        `json:"series"`
	Cadence  string               `json:"cadence"`
	Deltas   series.DeltaResult   `json:"deltas"`
	Dropped  []series.Observation `json:"dropped,omitempty"`
}

// AnalyzeSeries normalizes a raw observation array and computes its
// cadence and deltas. Unparseable observations are reported in Dropped
// rather than silently mis-sorted.
func (s *AnalyticsService) AnalyzeSeries(ctx context.Context, raw []series.Observation) SeriesAnalysis {
	normalized, dropped := series.Normalize(raw)
	cadence := series.InferCadence(normalized)

	if len(dropped) > 0 {
		s.logger.WarnContext(ctx, "dropped unparseable observations",
			slog.Int("dropped", len(dropped)),
			slog.Int("kept", len(normalized)),
		)
	}

	return SeriesAnalysis{
		ReportID: uuid.New().String(),
		Series:   normalized,
		Cadence:  cadence.String(),
		Deltas:   series.ComputeDeltas(normalized, cadence),
		Dropped:  dropped,
	}
}

// ChartAnalysis bundles a series analysis with its projection.
type ChartAnalysis struct {
	SeriesAnalysis
	Projection chart.Projection `json:"projection"`
}

// ProjectChart normalizes a raw observation array and projects it onto
// the drawing surface. Zero-valued option fields fall back to the service
// defaults.
func (s *AnalyticsService) ProjectChart(ctx context.Context, raw []series.Observation, opts chart.Options) ChartAnalysis {
	if opts.Width <= 0 {
		opts.Width = s.chartOpts.Width
	}
	if opts.Height <= 0 {
		opts.Height = s.chartOpts.Height
	}
	if opts.Padding <= 0 {
		opts.Padding = s.chartOpts.Padding
	}
	if opts.TickCount <= 0 {
		opts.TickCount = s.chartOpts.TickCount
	}

	analysis := s.AnalyzeSeries(ctx, raw)
	cadence := series.InferCadence(analysis.Series)

	return ChartAnalysis{
		SeriesAnalysis: analysis,
		Projection:     chart.Project(analysis.Series, cadence, opts),
	}
}

// IndicatorAnalysis carries the index-aligned indicator overlays for one
// close-price array. Sentinel positions are JSON null, preserving
// alignment with the source prices.
type IndicatorAnalysis struct {
	ReportID   string     `json:"report_id"`
	SMA        []*float64 `json:"sma"`
	EMA        []*float64 `json:"ema"`
	RSI        []*float64 `json:"rsi"`
	MACDLine   []*float64 `json:"macd_line"`
	SignalLine []*float64 `json:"signal_line"`
	Histogram  []*float64 `json:"histogram"`
}

// IndicatorParams selects the indicator windows. Zero fields fall back to
// the conventional defaults.
type IndicatorParams struct {
	SMAPeriod  int `json:"sma_period" validate:"omitempty,min=1"`
	EMAPeriod  int `json:"ema_period" validate:"omitempty,min=1"`
	RSIPeriod  int `json:"rsi_period" validate:"omitempty,min=1"`
	MACDFast   int `json:"macd_fast" validate:"omitempty,min=1"`
	MACDSlow   int `json:"macd_slow" validate:"omitempty,min=2"`
	MACDSignal int `json:"macd_signal" validate:"omitempty,min=1"`
}

func (p IndicatorParams) withDefaults() IndicatorParams {
	if p.SMAPeriod <= 0 {
		p.SMAPeriod = 20
	}
	if p.EMAPeriod <= 0 {
		p.EMAPeriod = 20
	}
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = indicator.DefaultRSIPeriod
	}
	if p.MACDFast <= 0 {
		p.MACDFast = indicator.DefaultMACDFast
	}
	if p.MACDSlow <= 0 {
		p.MACDSlow = indicator.DefaultMACDSlow
	}
	if p.MACDSignal <= 0 {
		p.MACDSignal = indicator.DefaultMACDSignal
	}
	return p
}

// ComputeIndicators calculates SMA, EMA, RSI, and MACD over a close-price
// array.
func (s *AnalyticsService) ComputeIndicators(ctx context.Context, closes []float64, params IndicatorParams) IndicatorAnalysis {
	params = params.withDefaults()
	macd := indicator.MACD(closes, params.MACDFast, params.MACDSlow, params.MACDSignal)

	return IndicatorAnalysis{
		ReportID:   uuid.New().String(),
		SMA:        nullableSeries(indicator.SMA(closes, params.SMAPeriod)),
		EMA:        nullableSeries(indicator.EMA(closes, params.EMAPeriod)),
		RSI:        nullableSeries(indicator.RSI(closes, params.RSIPeriod)),
		MACDLine:   nullableSeries(macd.MACDLine),
		SignalLine: nullableSeries(macd.SignalLine),
		Histogram:  nullableSeries(macd.Histogram),
	}
}

// BatchIndicators computes indicator overlays for several tickers
// concurrently. Each ticker only reads its own input, so the work fans
// out without locking anything but the result map.
func (s *AnalyticsService) BatchIndicators(ctx context.Context, quotes map[string][]float64, params IndicatorParams) (map[string]IndicatorAnalysis, error) {
	results := make(map[string]IndicatorAnalysis, len(quotes))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)

	for ticker, closes := range quotes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analysis := s.ComputeIndicators(gctx, closes, params)
			mu.Lock()
			results[ticker] = analysis
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RiskAnalysis carries return and risk statistics for one close-price
// array, optionally correlated against a benchmark.
type RiskAnalysis struct {
	ReportID             string    `json:"report_id"`
	Returns              []float64 `json:"returns"`
	AnnualizedVolatility float64   `json:"annualized_volatility"`
	MaxDrawdown          float64   `json:"max_drawdown"`
	Correlation          *float64  `json:"correlation,omitempty"`
}

// ComputeRisk calculates returns, annualized volatility, and maximum
// drawdown for a close-price array; when a benchmark is supplied it also
// computes the trailing Pearson correlation. periodsPerYear scales the
// volatility for the series cadence; zero falls back to daily sampling.
func (s *AnalyticsService) ComputeRisk(ctx context.Context, closes, benchmark []float64, periodsPerYear float64) RiskAnalysis {
	if periodsPerYear <= 0 {
		periodsPerYear = risk.DailyPeriodsPerYear
	}

	returns := risk.Returns(closes)
	analysis := RiskAnalysis{
		ReportID:             uuid.New().String(),
		Returns:              returns,
		AnnualizedVolatility: risk.AnnualizedVolatility(returns, periodsPerYear),
		MaxDrawdown:          risk.MaxDrawdown(closes),
	}

	if len(benchmark) > 0 {
		analysis.Correlation = risk.Correlation(closes, benchmark)
	}

	return analysis
}

// TickerSummary is the gainers/losers dashboard row for one ticker,
// computed from its daily close history.
type TickerSummary struct {
	Ticker               string    `json:"ticker"`
	LastPrice            float64   `json:"last_price"`
	PreviousClose        *float64  `json:"previous_close"`
	DailyChangePct       *float64  `json:"daily_change_percent"`
	WeeklyChangePct      *float64  `json:"weekly_change_percent"`
	MonthlyChangePct     *float64  `json:"monthly_change_percent"`
	High52Week           *float64  `json:"high_52_week"`
	Low52Week            *float64  `json:"low_52_week"`
	Sparkline            []float64 `json:"sparkline"`
	MaxDrawdown          float64   `json:"max_drawdown"`
	AnnualizedVolatility float64   `json:"annualized_volatility"`
}

// Summarize builds the dashboard summary for one ticker from its daily
// closes, most recent last. An empty history yields a zero summary.
func (s *AnalyticsService) Summarize(ctx context.Context, ticker string, closes []float64) TickerSummary {
	summary := TickerSummary{Ticker: ticker}
	if len(closes) == 0 {
		return summary
	}

	summary.LastPrice = closes[len(closes)-1]
	if len(closes) >= 2 {
		prev := closes[len(closes)-2]
		summary.PreviousClose = &prev
	}

	summary.DailyChangePct = percentPoints(risk.TrailingReturn(closes, 1))
	summary.WeeklyChangePct = percentPoints(risk.TrailingReturn(closes, weeklyTradingDays))
	summary.MonthlyChangePct = percentPoints(risk.TrailingReturn(closes, monthlyTradingDays))

	window := closes
	if len(window) > yearTradingDays {
		window = window[len(window)-yearTradingDays:]
	}
	high, low := window[0], window[0]
	for _, price := range window[1:] {
		if price > high {
			high = price
		}
		if price < low {
			low = price
		}
	}
	summary.High52Week = &high
	summary.Low52Week = &low

	spark := closes
	if len(spark) > sparklinePoints {
		spark = spark[len(spark)-sparklinePoints:]
	}
	summary.Sparkline = append([]float64(nil), spark...)

	summary.MaxDrawdown = risk.MaxDrawdown(closes)
	summary.AnnualizedVolatility = risk.AnnualizedVolatility(risk.Returns(closes), risk.DailyPeriodsPerYear)

	return summary
}

// SummarizeAll builds summaries for several tickers concurrently.
func (s *AnalyticsService) SummarizeAll(ctx context.Context, quotes map[string][]float64) (map[string]TickerSummary, error) {
	results := make(map[string]TickerSummary, len(quotes))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchConcurrency)

	for ticker, closes := range quotes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			summary := s.Summarize(gctx, ticker, closes)
			mu.Lock()
			results[ticker] = summary
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// percentPoints converts a fractional return into percentage points.
func percentPoints(fraction *float64) *float64 {
	if fraction == nil {
		return nil
	}
	pct := *fraction * 100
	return &pct
}

// nullableSeries converts a NaN-sentinel slice into a pointer slice where
// sentinels become nil, which serializes to JSON null and keeps the array
// aligned with its source prices.
func nullableSeries(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		value := v
		out[i] = &value
	}
	return out
}
