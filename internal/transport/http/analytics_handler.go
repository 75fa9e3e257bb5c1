package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"macropulse/internal/chart"
	apierrors "macropulse/internal/errors"
	"macropulse/internal/series"
	"macropulse/internal/services"
)

// maxObservations caps the payload size of a single analytics request.
const maxObservations = 100000

// AnalyticsHandler handles analytics HTTP requests with RFC 7807 errors.
type AnalyticsHandler struct {
	service      *services.AnalyticsService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(service *services.AnalyticsService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the analytics routes.
func (h *AnalyticsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/series", h.AnalyzeSeries)
	r.Post("/chart", h.ProjectChart)
	r.Post("/indicators", h.ComputeIndicators)
	r.Post("/indicators/batch", h.BatchIndicators)
	r.Post("/risk", h.ComputeRisk)
	r.Post("/summary", h.Summarize)

	return r
}

// SeriesRequest is the payload for series and chart analysis.
type SeriesRequest struct {
	Observations []series.Observation `json:"observations" validate:"required,min=1"`
	Options      chart.Options        `json:"options"`
}

// IndicatorsRequest is the payload for single-ticker indicator analysis.
type IndicatorsRequest struct {
	Closes []float64                `json:"closes" validate:"required,min=2"`
	Params services.IndicatorParams `json:"params"`
}

// BatchIndicatorsRequest is the payload for multi-ticker indicator analysis.
type BatchIndicatorsRequest struct {
	Quotes map[string][]float64     `json:"quotes" validate:"required,min=1"`
	Params services.IndicatorParams `json:"params"`
}

// RiskRequest is the payload for risk analysis.
type RiskRequest struct {
	Closes         []float64 `json:"closes" validate:"required,min=2"`
	Benchmark      []float64 `json:"benchmark"`
	PeriodsPerYear float64   `json:"periods_per_year" validate:"omitempty,gt=0"`
}

// SummaryRequest is the payload for dashboard summaries.
type SummaryRequest struct {
	Quotes map[string][]float64 `json:"quotes" validate:"required,min=1"`
}

// AnalyzeSeries handles POST /api/analytics/series.
func (h *AnalyticsHandler) AnalyzeSeries(w http.ResponseWriter, r *http.Request) {
	var req SeriesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Observations) > maxObservations {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}

	render.JSON(w, r, h.service.AnalyzeSeries(r.Context(), req.Observations))
}

// ProjectChart handles POST /api/analytics/chart.
func (h *AnalyticsHandler) ProjectChart(w http.ResponseWriter, r *http.Request) {
	var req SeriesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Observations) > maxObservations {
		h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
		return
	}

	render.JSON(w, r, h.service.ProjectChart(r.Context(), req.Observations, req.Options))
}

// ComputeIndicators handles POST /api/analytics/indicators.
func (h *AnalyticsHandler) ComputeIndicators(w http.ResponseWriter, r *http.Request) {
	var req IndicatorsRequest
	if !h.decode(w, r, &req) {
		return
	}

	render.JSON(w, r, h.service.ComputeIndicators(r.Context(), req.Closes, req.Params))
}

// BatchIndicators handles POST /api/analytics/indicators/batch.
func (h *AnalyticsHandler) BatchIndicators(w http.ResponseWriter, r *http.Request) {
	var req BatchIndicatorsRequest
	if !h.decode(w, r, &req) {
		return
	}

	results, err := h.service.BatchIndicators(r.Context(), req.Quotes, req.Params)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, results)
}

// ComputeRisk handles POST /api/analytics/risk.
func (h *AnalyticsHandler) ComputeRisk(w http.ResponseWriter, r *http.Request) {
	var req RiskRequest
	if !h.decode(w, r, &req) {
		return
	}

	render.JSON(w, r, h.service.ComputeRisk(r.Context(), req.Closes, req.Benchmark, req.PeriodsPerYear))
}

// Summarize handles POST /api/analytics/summary.
func (h *AnalyticsHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !h.decode(w, r, &req) {
		return
	}

	results, err := h.service.SummarizeAll(r.Context(), req.Quotes)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, results)
}

// decode parses and validates a JSON request body, rendering an RFC 7807
// problem and returning false on failure.
func (h *AnalyticsHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation(
				first.Field(),
				fmt.Sprintf("failed on the %q rule", first.Tag()),
			))
			return false
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}

	return true
}
