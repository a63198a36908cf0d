package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// ReportHandler exposes the management reports. Routes are mounted
// behind the JWT middleware; the service enforces the admin-only rule.
type ReportHandler struct {
	reportService ports.ReportService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService ports.ReportService, errorHandler *ErrorHandler, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "report"),
	}
}

// Router sets up the report routes.
func (h *ReportHandler) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/weekly_stats", h.HandleWeeklyStats)
	r.Get("/daily_trends", h.HandleDailyTrends)
	r.Get("/agent_performance", h.HandleAgentPerformance)
	r.Get("/priority_analysis", h.HandlePriorityAnalysis)
	r.Get("/status_distribution", h.HandleStatusDistribution)
	r.Get("/response_time_metrics", h.HandleResponseTimeMetrics)
	r.Get("/custom_time_range", h.HandleCustomTimeRange)
	return r
}

// HandleWeeklyStats handles GET /reports/weekly_stats
func (h *ReportHandler) HandleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	stats, err := h.reportService.WeeklySummary(r.Context(), actorFromClaims(claims))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}

// HandleDailyTrends handles GET /reports/daily_trends
func (h *ReportHandler) HandleDailyTrends(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	trends, err := h.reportService.DailyTrends(r.Context(), actorFromClaims(claims))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, trends)
}

// HandleAgentPerformance handles GET /reports/agent_performance
func (h *ReportHandler) HandleAgentPerformance(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	performance, err := h.reportService.AgentPerformance(r.Context(), actorFromClaims(claims))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, performance)
}

// HandlePriorityAnalysis handles GET /reports/priority_analysis
func (h *ReportHandler) HandlePriorityAnalysis(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	analysis, err := h.reportService.PriorityAnalysis(r.Context(), actorFromClaims(claims))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, analysis)
}

// HandleStatusDistribution handles GET /reports/status_distribution
func (h *ReportHandler) HandleStatusDistribution(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	distribution, err := h.reportService.StatusDistribution(r.Context(), actorFromClaims(claims))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, distribution)
}

// HandleResponseTimeMetrics handles GET /reports/response_time_metrics
func (h *ReportHandler) HandleResponseTimeMetrics(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	metrics, err := h.reportService.ResponseTimes(r.Context(), actorFromClaims(claims))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, metrics)
}

// HandleCustomTimeRange handles GET /reports/custom_time_range
func (h *ReportHandler) HandleCustomTimeRange(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r, h.errorHandler)
	if !ok {
		return
	}

	params := ports.CustomRangeParams{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	stats, err := h.reportService.CustomTimeRange(r.Context(), actorFromClaims(claims), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, stats)
}
