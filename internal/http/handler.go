package http

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/middleware"
	"github.com/varejo/pos-service/internal/service"
)

// stockListCache provides thread-safe caching of the stock listing.
// Registers poll the listing between sales, so a short TTL takes the
// read load off the catalog collection.
type stockListCache struct {
	items     atomic.Value // holds []dto.StockItemResponse
	expiresAt atomic.Value // holds time.Time
	mu        sync.Mutex
	ttl       time.Duration
}

// newStockListCache creates a new stock listing cache with the given TTL.
func newStockListCache(ttl time.Duration) *stockListCache {
	c := &stockListCache{ttl: ttl}
	c.expiresAt.Store(time.Time{})
	return c
}

// get returns the cached listing if valid, or nil if expired/empty.
func (c *stockListCache) get() []dto.StockItemResponse {
	if exp := c.expiresAt.Load(); exp != nil {
		if expiresAt, ok := exp.(time.Time); ok && time.Now().Before(expiresAt) {
			if items := c.items.Load(); items != nil {
				if s, ok := items.([]dto.StockItemResponse); ok {
					return s
				}
			}
		}
	}
	return nil
}

// set stores the listing in the cache with TTL.
func (c *stockListCache) set(items []dto.StockItemResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring lock
	if exp := c.expiresAt.Load(); exp != nil {
		if expiresAt, ok := exp.(time.Time); ok && time.Now().Before(expiresAt) {
			return // Already cached by another goroutine
		}
	}

	c.items.Store(items)
	c.expiresAt.Store(time.Now().Add(c.ttl))
}

// invalidate clears the cache.
func (c *stockListCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt.Store(time.Time{})
}

// Handler provides HTTP handlers for catalog and stock routes.
type Handler struct {
	productService service.ProductService
	stockCache     *stockListCache
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithStockCacheTTL sets the TTL for stock listing caching.
func WithStockCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.stockCache = newStockListCache(ttl)
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(productService service.ProductService, opts ...HandlerOption) *Handler {
	h := &Handler{
		productService: productService,
		stockCache:     newStockListCache(5 * time.Second), // Default 5s cache
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// objectIDParam parses the named path parameter as an ObjectID.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		NewResponseBuilder(c).Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New(name+": must be a valid object id"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// sellerID returns the authenticated user's id from the request context.
func sellerID(c *gin.Context) (primitive.ObjectID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		NewResponseBuilder(c).Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, nil)
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	if !ok || id.IsZero() {
		NewResponseBuilder(c).Error(http.StatusUnauthorized, dto.ErrCodeUnauthorized, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

// queryInt64 parses an optional integer query parameter.
func queryInt64(c *gin.Context, name string, def int64) int64 {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

// audit emits an async audit log entry when the logging service is wired.
func audit(c *gin.Context, action, message string, metadata map[string]interface{}) {
	if loggingService, exists := c.Get("logging_service"); exists {
		if ls, ok := loggingService.(service.LoggingService); ok {
			middleware.AuditLog(ls, c, action, message, metadata)
		}
	}
}

// CreateProduct handles POST /api/products requests.
//
// @Summary      Create product
// @Description  Registers a new catalog product with its price tiers and optional promotions. The barcode (codigo) must be unique.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.CreateProductRequest true "Product information"
// @Success      201 {object} dto.SuccessResponse "Created product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      409 {object} dto.ErrorResponse "Conflict - duplicate product code"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	product := &model.Product{
		Name:           req.Name,
		Code:           req.Code,
		RetailPrice:    req.RetailPrice,
		WholesalePrice: req.WholesalePrice,
		PurchasePrice:  req.PurchasePrice,
		StockQuantity:  req.StockQuantity,
	}
	if req.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("categoria_id: must be a valid object id"))
			return
		}
		product.CategoryID = categoryID
	}
	for _, p := range req.Promotions {
		product.Promotions = append(product.Promotions, p.ToModel())
	}

	created, err := h.productService.Create(c.Request.Context(), product)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			builder.Error(http.StatusConflict, i18n.ErrKeyDuplicateCode, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.stockCache.invalidate()
	audit(c, "create_product", "Product registered", map[string]interface{}{
		"product_id": created.ID.Hex(),
		"codigo":     created.Code,
	})
	builder.SuccessCreated(created)
}

// ListProducts handles GET /api/products requests.
//
// @Summary      List products
// @Description  Lists active catalog products, optionally filtered by name/code search and category, with pagination.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        search query string false "Name or code search"
// @Param        categoria_id query string false "Filter by category"
// @Param        limit query int false "Page size"
// @Param        skip query int false "Offset"
// @Success      200 {object} dto.SuccessResponse "Product list"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var categoryID *primitive.ObjectID
	if raw := c.Query("categoria_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("categoria_id: must be a valid object id"))
			return
		}
		categoryID = &id
	}

	limit := queryInt64(c, "limit", 50)
	skip := queryInt64(c, "skip", 0)

	products, err := h.productService.List(c.Request.Context(), c.Query("search"), categoryID, limit, skip)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(products)
}

// GetProduct handles GET /api/products/:id requests.
//
// @Summary      Get product
// @Description  Returns a single product by id.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse "Product"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(product)
}

// GetProductByCode handles GET /api/products/codigo/:codigo requests.
//
// @Summary      Find product by barcode
// @Description  Looks up a product by its barcode. This is the register's scan path and is served from an in-process cache when warm.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        codigo path string true "Product barcode"
// @Success      200 {object} dto.SuccessResponse "Product"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products/codigo/{codigo} [get]
func (h *Handler) GetProductByCode(c *gin.Context) {
	builder := NewResponseBuilder(c)

	product, err := h.productService.GetByCode(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(product)
}

// UpdateProduct handles PUT /api/products/:id requests.
//
// @Summary      Update product
// @Description  Updates product fields. Absent fields are left unchanged; stock is never modified through this route.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Product id"
// @Param        request body dto.UpdateProductRequest true "Fields to update"
// @Success      200 {object} dto.SuccessResponse "Updated product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	current, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Code != nil {
		current.Code = *req.Code
	}
	if req.RetailPrice != nil {
		current.RetailPrice = *req.RetailPrice
	}
	if req.WholesalePrice != nil {
		current.WholesalePrice = req.WholesalePrice
	}
	if req.PurchasePrice != nil {
		current.PurchasePrice = *req.PurchasePrice
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			current.CategoryID = primitive.NilObjectID
		} else {
			categoryID, err := primitive.ObjectIDFromHex(*req.CategoryID)
			if err != nil {
				builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("categoria_id: must be a valid object id"))
				return
			}
			current.CategoryID = categoryID
		}
	}
	if req.Promotions != nil {
		current.Promotions = current.Promotions[:0]
		for _, p := range req.Promotions {
			current.Promotions = append(current.Promotions, p.ToModel())
		}
	}

	updated, err := h.productService.Update(c.Request.Context(), current)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCode) {
			builder.Error(http.StatusConflict, i18n.ErrKeyDuplicateCode, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.stockCache.invalidate()
	audit(c, "update_product", "Product updated", map[string]interface{}{
		"product_id": updated.ID.Hex(),
	})
	builder.SuccessOK(updated)
}

// DeleteProduct handles DELETE /api/products/:id requests.
//
// @Summary      Delete product
// @Description  Soft-deletes a product. The document stays in the collection with active=false.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Product id"
// @Success      200 {object} dto.SuccessResponse "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.stockCache.invalidate()
	audit(c, "delete_product", "Product removed", map[string]interface{}{
		"product_id": id.Hex(),
	})
	builder.SuccessOK(map[string]string{"id": id.Hex()})
}

// SetStock handles PUT /api/stock/:id requests.
//
// @Summary      Set stock quantity
// @Description  Sets a product's absolute stock quantity.
// @Tags         Stock
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Product id"
// @Param        request body dto.AdjustStockRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse "Updated product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - insufficient permissions"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/stock/{id} [put]
func (h *Handler) SetStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	product, err := h.productService.SetStock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.stockCache.invalidate()
	audit(c, "set_stock", "Stock quantity set", map[string]interface{}{
		"product_id": id.Hex(),
		"quantity":   req.Quantity,
	})
	builder.SuccessOK(product)
}

// ListStock handles GET /api/stock requests.
//
// @Summary      List stock
// @Description  Lists stock quantities for all active products. Served from a short-lived in-process cache.
// @Tags         Stock
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Stock listing"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/stock [get]
func (h *Handler) ListStock(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if items := h.stockCache.get(); items != nil {
		builder.SuccessOK(items)
		return
	}

	products, err := h.productService.List(c.Request.Context(), "", nil, 0, 0)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	items := make([]dto.StockItemResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.StockItemResponse{
			ID:          p.ID.Hex(),
			ProductID:   p.ID.Hex(),
			Quantity:    p.StockQuantity,
			ProductName: p.Name,
		})
	}

	h.stockCache.set(items)
	builder.SuccessOK(items)
}
