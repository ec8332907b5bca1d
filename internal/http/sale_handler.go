package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/repository"
	"github.com/varejo/pos-service/internal/service"
)

// SaleHandler provides HTTP handlers for sale routes.
type SaleHandler struct {
	saleService service.SaleService
}

// NewSaleHandler creates a new SaleHandler instance.
func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// dateRange parses optional "inicio" and "fim" query parameters in
// YYYY-MM-DD form. "fim" is exclusive-extended to the end of its day.
func dateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("inicio"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, errors.New("inicio: must be YYYY-MM-DD")
		}
		from = &t
	}
	if raw := c.Query("fim"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, errors.New("fim: must be YYYY-MM-DD")
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, nil
}

// FinalizeSale handles POST /api/sales requests.
//
// @Summary      Finalize sale
// @Description  Completes a checkout. Payment method and type accept display-locale values and are translated to canonical tokens. Stock is decremented per item; the caller's live cart is cleared on success.
// @Tags         Sales
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.FinalizeSaleRequest true "Sale information"
// @Success      201 {object} dto.SuccessResponse "Completed sale"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input or unknown payment token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      409 {object} dto.ErrorResponse "Conflict - insufficient stock"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/sales [post]
func (h *SaleHandler) FinalizeSale(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}

	var req dto.FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	input := service.FinalizeSaleInput{
		SellerID:      seller,
		PaymentMethod: req.PaymentMethod,
		PaymentType:   req.PaymentType,
		Installments:  req.Installments,
	}
	if req.CustomerID != "" {
		customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("cliente_id: must be a valid object id"))
			return
		}
		input.CustomerID = customerID
	}
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("produto_id: must be a valid object id"))
			return
		}
		input.Items = append(input.Items, model.SaleItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Mode:      model.PriceMode(item.Mode),
		})
	}

	sale, err := h.saleService.Finalize(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPaymentMethod), errors.Is(err, service.ErrUnknownPaymentType):
			builder.Error(http.StatusBadRequest, i18n.ErrKeyUnknownPayment, err)
		case errors.Is(err, repository.ErrInsufficientStock):
			builder.Error(http.StatusConflict, i18n.ErrKeyInsufficientStock, err)
		case errors.Is(err, service.ErrProductNotFound):
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	audit(c, "finalize_sale", "Sale completed", map[string]interface{}{
		"sale_id":        sale.ID.Hex(),
		"total":          sale.Total,
		"payment_method": sale.PaymentMethod,
	})
	builder.SuccessCreated(sale)
}

// ListSales handles GET /api/sales requests.
//
// @Summary      List sales
// @Description  Lists sales filtered by date range, seller and status, newest first.
// @Tags         Sales
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        inicio query string false "Start date (YYYY-MM-DD)"
// @Param        fim query string false "End date (YYYY-MM-DD, inclusive)"
// @Param        vendedor_id query string false "Filter by seller"
// @Param        status query string false "Filter by status"
// @Param        limit query int false "Page size"
// @Param        skip query int false "Offset"
// @Success      200 {object} dto.SuccessResponse "Sale list"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	builder := NewResponseBuilder(c)

	from, to, err := dateRange(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	filter := repository.SaleFilter{From: from, To: to, Status: c.Query("status")}
	if raw := c.Query("vendedor_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("vendedor_id: must be a valid object id"))
			return
		}
		filter.SellerID = &id
	}

	sales, err := h.saleService.List(c.Request.Context(), filter, queryInt64(c, "limit", 50), queryInt64(c, "skip", 0))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(sales)
}

// GetSale handles GET /api/sales/:id requests.
//
// @Summary      Get sale
// @Description  Returns a single sale by id.
// @Tags         Sales
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Sale id"
// @Success      200 {object} dto.SuccessResponse "Sale"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Sale not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetSale(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(sale)
}

// CancelSale handles PATCH /api/sales/:id/cancel requests.
//
// @Summary      Cancel sale
// @Description  Cancels a completed sale, restoring its items to stock. Only completed sales can be cancelled.
// @Tags         Sales
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Sale id"
// @Success      200 {object} dto.SuccessResponse "Cancelled sale"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Sale not found"
// @Failure      409 {object} dto.ErrorResponse "Conflict - sale is not cancellable"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/sales/{id}/cancel [patch]
func (h *SaleHandler) CancelSale(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.Cancel(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
		case errors.Is(err, service.ErrSaleNotCancellable):
			builder.Error(http.StatusConflict, dto.ErrCodeConflict, err)
		default:
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	audit(c, "cancel_sale", "Sale cancelled, stock restored", map[string]interface{}{
		"sale_id": sale.ID.Hex(),
	})
	builder.SuccessOK(sale)
}
