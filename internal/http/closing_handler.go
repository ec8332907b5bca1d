package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/service"
)

// ClosingHandler provides HTTP handlers for daily closing routes.
type ClosingHandler struct {
	closingService service.ClosingService
}

// NewClosingHandler creates a new ClosingHandler instance.
func NewClosingHandler(closingService service.ClosingService) *ClosingHandler {
	return &ClosingHandler{closingService: closingService}
}

// RunClosing handles POST /api/closings/run requests.
//
// @Summary      Run daily closing
// @Description  Aggregates the day's completed sales into a closing document, upserting by date. An optional "data" query selects the day; the default is today. The scheduler runs the same aggregation automatically at the configured time.
// @Tags         Closings
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        data query string false "Day to close (YYYY-MM-DD, defaults to today)"
// @Success      200 {object} dto.SuccessResponse "Closing document"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid date"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/closings/run [post]
func (h *ClosingHandler) RunClosing(c *gin.Context) {
	builder := NewResponseBuilder(c)

	day := time.Now()
	if raw := c.Query("data"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("data: must be YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	closing, err := h.closingService.Run(c.Request.Context(), day)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	audit(c, "run_closing", "Daily closing executed", map[string]interface{}{
		"date":   closing.Date,
		"amount": closing.Amount,
	})
	builder.SuccessOK(closing)
}

// ListClosings handles GET /api/closings requests.
//
// @Summary      List closings
// @Description  Lists daily closing documents, newest first.
// @Tags         Closings
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        limit query int false "Page size (defaults to 31)"
// @Success      200 {object} dto.SuccessResponse "Closings"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - admin only"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/closings [get]
func (h *ClosingHandler) ListClosings(c *gin.Context) {
	builder := NewResponseBuilder(c)

	closings, err := h.closingService.List(c.Request.Context(), queryInt64(c, "limit", 0))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(closings)
}
