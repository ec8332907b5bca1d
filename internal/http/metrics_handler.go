package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/service"
)

// MetricsHandler provides HTTP handlers for sales metrics routes.
type MetricsHandler struct {
	metricsService service.SalesMetricsService
}

// NewMetricsHandler creates a new MetricsHandler instance.
func NewMetricsHandler(metricsService service.SalesMetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// metricsRange resolves the requested date range, defaulting to the
// last 30 days when none is given.
func metricsRange(c *gin.Context) (time.Time, time.Time, error) {
	from, to, err := dateRange(c)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := time.Now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -30)
	if from != nil {
		start = *from
	}
	return start, end, nil
}

// SalesSummary handles GET /api/metrics/vendas requests.
//
// @Summary      Sales summary
// @Description  Aggregates completed sales over a date range: sale count, items sold, profit and daily average. Defaults to the last 30 days.
// @Tags         Metrics
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        inicio query string false "Start date (YYYY-MM-DD)"
// @Param        fim query string false "End date (YYYY-MM-DD, inclusive)"
// @Success      200 {object} dto.SuccessResponse "Sales summary"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid range"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/metrics/vendas [get]
func (h *MetricsHandler) SalesSummary(c *gin.Context) {
	builder := NewResponseBuilder(c)

	from, to, err := metricsRange(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	summary, err := h.metricsService.Summary(c.Request.Context(), from, to)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(summary)
}

// SellerTotals handles GET /api/metrics/vendedores requests.
//
// @Summary      Per-seller totals
// @Description  Aggregates completed sales per seller over a date range.
// @Tags         Metrics
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        inicio query string false "Start date (YYYY-MM-DD)"
// @Param        fim query string false "End date (YYYY-MM-DD, inclusive)"
// @Success      200 {object} dto.SuccessResponse "Totals per seller"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid range"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/metrics/vendedores [get]
func (h *MetricsHandler) SellerTotals(c *gin.Context) {
	builder := NewResponseBuilder(c)

	from, to, err := metricsRange(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	totals, err := h.metricsService.SellerTotals(c.Request.Context(), from, to)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(totals)
}

// MySales handles GET /api/metrics/vendedores/me requests.
//
// @Summary      Caller's sales totals
// @Description  Aggregates the authenticated seller's completed sales over a date range.
// @Tags         Metrics
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        inicio query string false "Start date (YYYY-MM-DD)"
// @Param        fim query string false "End date (YYYY-MM-DD, inclusive)"
// @Success      200 {object} dto.SuccessResponse "Caller's totals"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid range"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/metrics/vendedores/me [get]
func (h *MetricsHandler) MySales(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}

	from, to, err := metricsRange(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	summary, err := h.metricsService.SellerSummary(c.Request.Context(), seller, from, to)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(summary)
}

// MonthlySales handles GET /api/metrics/mensais requests.
//
// @Summary      Monthly totals
// @Description  Returns per-month sale counts and amounts for a year, for charting. Defaults to the current year.
// @Tags         Metrics
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        ano query int false "Year (defaults to current)"
// @Success      200 {object} dto.SuccessResponse "Monthly totals"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/metrics/mensais [get]
func (h *MetricsHandler) MonthlySales(c *gin.Context) {
	builder := NewResponseBuilder(c)

	year := int(queryInt64(c, "ano", int64(time.Now().Year())))

	totals, err := h.metricsService.MonthlyTotals(c.Request.Context(), year)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(totals)
}
