package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived summaries.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers all reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.getDailySummary)
		reports.GET("/today", h.getTodaySummary)
		reports.GET("/transactions-summary", h.getTransactionsSummary)
	}
}

// getDailySummary godoc
// @Summary Daily summary for a date
// @Description Aggregates all movements on one calendar date and includes the active session's live balance.
// @Tags reports
// @Produce  json
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid date"
// @Security BearerAuth
// @Router /reports/daily [get]
func (h *reportingHandler) getDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date := c.Query("date")

	summary, err := h.reportingService.GetDailySummary(c.Request.Context(), date)
	if err != nil {
		logger.Warn("Failed to get daily summary", slog.String("date", date), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(summary))
}

// getTodaySummary godoc
// @Summary Daily summary for today
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.Response
// @Security BearerAuth
// @Router /reports/today [get]
func (h *reportingHandler) getTodaySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.reportingService.GetTodaySummary(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get today summary", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(summary))
}

// getTransactionsSummary godoc
// @Summary Dashboard aggregate for a date
// @Tags reports
// @Produce  json
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.Response
// @Failure 400 {object} dto.Response "Invalid date"
// @Security BearerAuth
// @Router /reports/transactions-summary [get]
func (h *reportingHandler) getTransactionsSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	date := c.Query("date")

	summary, err := h.reportingService.GetTransactionsSummary(c.Request.Context(), date)
	if err != nil {
		logger.Warn("Failed to get transactions summary", slog.String("date", date), slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(summary))
}
