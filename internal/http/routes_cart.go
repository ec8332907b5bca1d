package http

import (
	"github.com/gin-gonic/gin"
	"github.com/varejo/pos-service/internal/service"
)

// CartRoutes handles live and saved cart route registration. Every cart
// route operates on the caller's session cart, so all of them require
// an authenticated user.
type CartRoutes struct {
	handler *CartHandler
}

// NewCartRoutes creates a new CartRoutes instance.
func NewCartRoutes(carts service.CartStore, productService service.ProductService, savedCarts service.SavedCartService) *CartRoutes {
	return &CartRoutes{
		handler: NewCartHandler(carts, productService, savedCarts),
	}
}

// RegisterProtectedRoutes registers cart routes on the protected group.
func (r *CartRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	cart := protected.Group("/cart")
	{
		cart.GET("/items", r.handler.GetCart)
		cart.POST("/items", r.handler.AddItem)
		cart.PATCH("/items/:productId", r.handler.UpdateItem)
		cart.DELETE("/items/:productId", r.handler.RemoveItem)
		cart.DELETE("", r.handler.ClearCart)

		cart.POST("", r.handler.SaveCart)
		cart.GET("/carts", r.handler.ListSavedCarts)
		cart.POST("/carts/:id/open", r.handler.OpenSavedCart)
		cart.DELETE("/carts/:id", r.handler.DeleteSavedCart)
	}
}
