package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/varejo/pos-service/internal/middleware"
	"github.com/varejo/pos-service/internal/service"
)

// CatalogRoutes handles product, category, customer and stock route
// registration.
type CatalogRoutes struct {
	handler         *Handler
	categoryHandler *CategoryHandler
	customerHandler *CustomerHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance around an
// already-built catalog handler.
func NewCatalogRoutes(handler *Handler, categoryService service.CategoryService, customerService service.CustomerService) *CatalogRoutes {
	r := &CatalogRoutes{
		handler: handler,
	}
	if categoryService != nil {
		r.categoryHandler = NewCategoryHandler(categoryService)
	}
	if customerService != nil {
		r.customerHandler = NewCustomerHandler(customerService)
	}
	return r
}

// permissionAuth builds an authorization middleware chain for the given
// permission id, or nil when authorization is not configured.
func permissionAuth(cfg *RouterConfig, permID string) []gin.HandlerFunc {
	if permID != "" && cfg.RoleService != nil && cfg.PermissionService != nil {
		return []gin.HandlerFunc{
			middleware.RequireAuthorization(middleware.AuthorizationConfig{
				RequiredPermissions: []string{permID},
			}, cfg.RoleService, cfg.PermissionService),
		}
	}
	return nil
}

// lookupPermissionIDs fetches read/write permission ids for a resource.
func lookupPermissionIDs(cfg *RouterConfig, resource string) (readPermID, writePermID string) {
	if cfg.PermissionService == nil {
		return "", ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	readPermID = cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, resource, "read")
	writePermID = cfg.PermissionService.GetPermissionIDByResourceAndAction(ctx, resource, "write")

	return readPermID, writePermID
}

// handle registers a route with an optional authorization chain.
func handle(rg *gin.RouterGroup, method, path string, auth []gin.HandlerFunc, handler gin.HandlerFunc) {
	if auth != nil {
		rg.Handle(method, path, append(auth, handler)...)
		return
	}
	rg.Handle(method, path, handler)
}

// RegisterPublicRoutes registers catalog routes (when auth is disabled).
func (r *CatalogRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/products", r.handler.CreateProduct)
	rg.GET("/products", r.handler.ListProducts)
	rg.GET("/products/codigo/:codigo", r.handler.GetProductByCode)
	rg.GET("/products/:id", r.handler.GetProduct)
	rg.PUT("/products/:id", r.handler.UpdateProduct)
	rg.DELETE("/products/:id", r.handler.DeleteProduct)
	rg.GET("/stock", r.handler.ListStock)
	rg.PUT("/stock/:id", r.handler.SetStock)

	if r.categoryHandler != nil {
		rg.POST("/categories", r.categoryHandler.CreateCategory)
		rg.GET("/categories", r.categoryHandler.ListCategories)
		rg.PUT("/categories/:id", r.categoryHandler.RenameCategory)
		rg.DELETE("/categories/:id", r.categoryHandler.DeleteCategory)
	}
	if r.customerHandler != nil {
		rg.POST("/customers", r.customerHandler.CreateCustomer)
		rg.GET("/customers", r.customerHandler.ListCustomers)
		rg.GET("/customers/:id", r.customerHandler.GetCustomer)
		rg.PUT("/customers/:id", r.customerHandler.UpdateCustomer)
		rg.DELETE("/customers/:id", r.customerHandler.DeleteCustomer)
	}
}

// RegisterProtectedRoutes registers catalog routes (when auth is enabled).
// Reads are open to any authenticated user; mutations require the
// products write permission.
func (r *CatalogRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	_, productsWritePermID := lookupPermissionIDs(cfg, "products")
	writeAuth := permissionAuth(cfg, productsWritePermID)

	protected.GET("/products", r.handler.ListProducts)
	protected.GET("/products/codigo/:codigo", r.handler.GetProductByCode)
	protected.GET("/products/:id", r.handler.GetProduct)
	protected.GET("/stock", r.handler.ListStock)

	handle(protected, "POST", "/products", writeAuth, r.handler.CreateProduct)
	handle(protected, "PUT", "/products/:id", writeAuth, r.handler.UpdateProduct)
	handle(protected, "DELETE", "/products/:id", writeAuth, r.handler.DeleteProduct)
	handle(protected, "PUT", "/stock/:id", writeAuth, r.handler.SetStock)

	if r.categoryHandler != nil {
		protected.GET("/categories", r.categoryHandler.ListCategories)
		handle(protected, "POST", "/categories", writeAuth, r.categoryHandler.CreateCategory)
		handle(protected, "PUT", "/categories/:id", writeAuth, r.categoryHandler.RenameCategory)
		handle(protected, "DELETE", "/categories/:id", writeAuth, r.categoryHandler.DeleteCategory)
	}
	if r.customerHandler != nil {
		protected.GET("/customers", r.customerHandler.ListCustomers)
		protected.GET("/customers/:id", r.customerHandler.GetCustomer)
		protected.POST("/customers", r.customerHandler.CreateCustomer)
		protected.PUT("/customers/:id", r.customerHandler.UpdateCustomer)
		protected.DELETE("/customers/:id", r.customerHandler.DeleteCustomer)
	}
}

// GetHandler returns the underlying catalog handler.
func (r *CatalogRoutes) GetHandler() *Handler {
	return r.handler
}
