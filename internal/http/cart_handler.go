package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/i18n"
	"github.com/varejo/pos-service/internal/service"
)

// CartHandler provides HTTP handlers for the live session cart and for
// saved carts.
type CartHandler struct {
	carts          service.CartStore
	productService service.ProductService
	savedCarts     service.SavedCartService
}

// NewCartHandler creates a new CartHandler instance.
func NewCartHandler(carts service.CartStore, productService service.ProductService, savedCarts service.SavedCartService) *CartHandler {
	return &CartHandler{
		carts:          carts,
		productService: productService,
		savedCarts:     savedCarts,
	}
}

// cartResponse serializes the caller's live cart with freshly
// recomputed aggregates.
func cartResponse(cart model.Cart) dto.CartResponse {
	resp := dto.CartResponse{
		Items:       make([]dto.CartLineResponse, 0, len(cart.Lines)),
		Total:       cart.Total(),
		ItemCount:   cart.ItemCount(),
		DefaultMode: string(cart.DefaultMode),
	}
	for _, l := range cart.Lines {
		resp.Items = append(resp.Items, dto.CartLineResponse{
			ProductID:  l.ProductID.Hex(),
			Name:       l.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Mode:       string(l.Mode),
			ModeReason: l.ModeReason,
		})
	}
	return resp
}

// GetCart handles GET /api/cart/items requests.
//
// @Summary      Get live cart
// @Description  Returns the caller's session cart with totals recomputed from current lines.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Cart contents"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Security     BearerAuth
// @Router       /api/cart/items [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}
	builder.SuccessOK(cartResponse(h.carts.Get(seller.Hex())))
}

// AddItem handles POST /api/cart/items requests.
//
// @Summary      Add item to cart
// @Description  Adds one unit of a product to the caller's session cart. An existing line has its quantity incremented and is repriced; a new line starts under the cart's default price mode.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.AddCartItemRequest true "Product to add"
// @Success      200 {object} dto.SuccessResponse "Updated cart"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("produto_id: must be a valid object id"))
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.carts.Add(seller.Hex(), product)
	builder.SuccessOK(cartResponse(h.carts.Get(seller.Hex())))
}

// UpdateItem handles PATCH /api/cart/items/:productId requests.
//
// @Summary      Update cart line
// @Description  Adjusts a line's quantity by ±1 (clamped to a minimum of 1) or switches its price mode. A wholesale request the line is not eligible for falls back to retail silently; the resolve reason is reported on the line.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        productId path string true "Product id"
// @Param        request body dto.UpdateCartItemRequest true "Quantity delta or price mode"
// @Success      200 {object} dto.SuccessResponse "Updated cart"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Security     BearerAuth
// @Router       /api/cart/items/{productId} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, err)
		return
	}

	key := seller.Hex()
	if req.QuantityDelta != nil {
		h.carts.AdjustQuantity(key, productID, *req.QuantityDelta)
	} else {
		h.carts.SetMode(key, productID, model.PriceMode(*req.Mode))
	}
	builder.SuccessOK(cartResponse(h.carts.Get(key)))
}

// RemoveItem handles DELETE /api/cart/items/:productId requests.
//
// @Summary      Remove cart line
// @Description  Removes a line from the caller's session cart regardless of quantity.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        productId path string true "Product id"
// @Success      200 {object} dto.SuccessResponse "Updated cart"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Security     BearerAuth
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}
	productID, ok := objectIDParam(c, "productId")
	if !ok {
		return
	}

	h.carts.Remove(seller.Hex(), productID)
	builder.SuccessOK(cartResponse(h.carts.Get(seller.Hex())))
}

// ClearCart handles DELETE /api/cart requests.
//
// @Summary      Clear cart
// @Description  Empties the caller's session cart.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Empty cart"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Security     BearerAuth
// @Router       /api/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}

	h.carts.Clear(seller.Hex())
	builder.SuccessOK(cartResponse(h.carts.Get(seller.Hex())))
}

// SaveCart handles POST /api/cart requests.
//
// @Summary      Save cart
// @Description  Persists a cart snapshot for later reuse and returns its id. The live session cart is not modified.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        request body dto.SaveCartRequest true "Cart snapshot"
// @Success      201 {object} dto.SuccessResponse "Saved cart"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/cart [post]
func (h *CartHandler) SaveCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}

	var req dto.SaveCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	saved := &model.SavedCart{
		SellerID: seller,
		Total:    req.Total,
	}
	if req.CustomerID != "" {
		customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("cliente_id: must be a valid object id"))
			return
		}
		saved.CustomerID = customerID
	}
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			builder.Error(http.StatusBadRequest, dto.ErrCodeInvalidRequest, errors.New("produto_id: must be a valid object id"))
			return
		}
		saved.Items = append(saved.Items, model.SavedCartItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Mode:      model.PriceMode(item.Mode),
		})
	}

	created, err := h.savedCarts.Save(c.Request.Context(), saved)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	audit(c, "save_cart", "Cart saved for later", map[string]interface{}{
		"cart_id": created.ID.Hex(),
	})
	builder.SuccessCreated(created)
}

// ListSavedCarts handles GET /api/cart/carts requests.
//
// @Summary      List saved carts
// @Description  Lists the caller's saved carts, newest first.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Success      200 {object} dto.SuccessResponse "Saved carts"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/cart/carts [get]
func (h *CartHandler) ListSavedCarts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}

	carts, err := h.savedCarts.List(c.Request.Context(), seller)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(carts)
}

// OpenSavedCart handles POST /api/cart/carts/:id/open requests.
//
// @Summary      Open saved cart
// @Description  Replaces the caller's live cart with a saved one. Lines are rebuilt against the current catalog and repriced; products removed from the catalog since the save are dropped.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Saved cart id"
// @Success      200 {object} dto.SuccessResponse "Live cart after opening"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Saved cart not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/cart/carts/{id}/open [post]
func (h *CartHandler) OpenSavedCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	seller, ok := sellerID(c)
	if !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	cart, err := h.savedCarts.Open(c.Request.Context(), seller, id)
	if err != nil {
		if errors.Is(err, service.ErrSavedCartNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	audit(c, "open_saved_cart", "Saved cart opened", map[string]interface{}{
		"cart_id": id.Hex(),
	})
	builder.SuccessOK(cartResponse(cart))
}

// DeleteSavedCart handles DELETE /api/cart/carts/:id requests.
//
// @Summary      Delete saved cart
// @Description  Removes a saved cart permanently.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Authorization header string false "Bearer token (required if auth enabled)"
// @Param        id path string true "Saved cart id"
// @Success      200 {object} dto.SuccessResponse "Deleted"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid JWT token"
// @Failure      404 {object} dto.ErrorResponse "Saved cart not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     BearerAuth
// @Router       /api/cart/carts/{id} [delete]
func (h *CartHandler) DeleteSavedCart(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if _, ok := sellerID(c); !ok {
		return
	}
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.savedCarts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSavedCartNotFound) {
			builder.Error(http.StatusNotFound, dto.ErrCodeNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	builder.SuccessOK(map[string]string{"id": id.Hex()})
}
