package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/framelight/studio-api/internal/ai"
	"github.com/framelight/studio-api/internal/domain"
	"github.com/framelight/studio-api/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Metrics godoc
// @Summary Dashboard metrics
// @Description Get current-month business metrics: pipeline value, proposal counts, upcoming shoots, open tasks and finances
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardMetrics
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardService.GetMetrics(r.Context())
	if err != nil {
		h.logger.Error("failed to get dashboard metrics", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get dashboard metrics",
		})
		return
	}

	respondJSON(w, http.StatusOK, metrics)
}

// Summary godoc
// @Summary Dashboard narrative
// @Description Get a short AI-written plain language summary of the current business situation
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardSummaryResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse "AI generation not configured"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			respondJSON(w, http.StatusServiceUnavailable, domain.ErrorResponse{
				Error:   "Service Unavailable",
				Message: "AI generation is not configured",
			})
			return
		}
		h.logger.Error("failed to generate dashboard summary", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to generate summary",
		})
		return
	}

	respondJSON(w, http.StatusOK, domain.DashboardSummaryResponse{Summary: summary})
}
