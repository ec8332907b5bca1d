package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/service"
)

// CustomerHandler provides HTTP handlers for customer routes.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler instance.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer handles POST /api/customers requests.
//
// @Summary      Create customer
// @Description  Registers a customer with contact data, optional preferences and notes.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.CustomerRequest true "Customer information"
// @Success      201 {object} dto.SuccessResponse "Created customer"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &model.Customer{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Preferences: req.Preferences,
		Notes:       req.Notes,
	})
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	audit(c, "create_customer", "Customer registered", map[string]interface{}{
		"customer_id": customer.ID.Hex(),
	})
	builder.SuccessCreated(customer)
}

// ListCustomers handles GET /api/customers requests.
//
// @Summary      List customers
// @Description  Lists customers, optionally filtered by name or phone search, with pagination.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        search query string false "Name or phone search"
// @Param        limit query int false "Page size"
// @Param        skip query int false "Offset"
// @Success      200 {object} dto.SuccessResponse "Customer list"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	customers, err := h.customerService.List(c.Request.Context(), c.Query("search"), queryInt64(c, "limit", 50), queryInt64(c, "skip", 0))
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(customers)
}

// GetCustomer handles GET /api/customers/:id requests.
//
// @Summary      Get customer
// @Description  Returns a single customer by id.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Customer id"
// @Success      200 {object} dto.SuccessResponse "Customer"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Customer not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(customer)
}

// UpdateCustomer handles PUT /api/customers/:id requests.
//
// @Summary      Update customer
// @Description  Replaces a customer's contact data, preferences and notes.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Customer id"
// @Param        request body dto.CustomerRequest true "Customer information"
// @Success      200 {object} dto.SuccessResponse "Updated customer"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Customer not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), &model.Customer{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Preferences: req.Preferences,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(customer)
}

// DeleteCustomer handles DELETE /api/customers/:id requests.
//
// @Summary      Delete customer
// @Description  Soft-deletes a customer.
// @Tags         Customers
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Customer id"
// @Success      200 {object} dto.SuccessResponse "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Customer not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(map[string]string{"id": id.Hex()})
}
