// Package app provides router configuration.
package app

import (
	"github.com/varejo/pos-service/config"
	"github.com/varejo/pos-service/internal/http"
	"github.com/varejo/pos-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler        *http.Handler
	HealthHandler  *http.HealthHandler
	Config         http.RouterConfig
	ClosingService service.ClosingService
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	// Catalog services
	var productService service.ProductService
	var categoryService service.CategoryService
	var customerService service.CustomerService
	if dbComponents != nil && dbComponents.ProductRepo != nil {
		var productOpts []service.ProductServiceOption
		if services.ProductCache != nil {
			productOpts = append(productOpts, service.WithProductCache(services.ProductCache))
		}
		productService = service.NewProductService(dbComponents.ProductRepo, productOpts...)
		categoryService = service.NewCategoryService(dbComponents.CategoryRepo, dbComponents.ProductRepo)
		customerService = service.NewCustomerService(dbComponents.CustomerRepo)
	}

	// Sales services
	var saleService service.SaleService
	var savedCartService service.SavedCartService
	var metricsService service.SalesMetricsService
	var closingService service.ClosingService
	if dbComponents != nil && dbComponents.SaleRepo != nil {
		saleService = service.NewSaleService(dbComponents.SaleRepo, dbComponents.ProductRepo, services.CartStore)
		savedCartService = service.NewSavedCartService(dbComponents.CartRepo, dbComponents.ProductRepo, services.CartStore)
		metricsService = service.NewSalesMetricsService(dbComponents.SaleRepo)
		closingService = service.NewClosingService(cfg.Closing, dbComponents.ClosingRepo, dbComponents.SaleRepo)
	}

	handler := http.NewHandler(productService)
	healthHandler := http.NewHealthHandler()

	// Register circuit breakers for health monitoring
	if dbComponents != nil {
		if dbComponents.ProductCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_products", dbComponents.ProductCircuitBreaker)
		}
		if dbComponents.LogsCircuitBreaker != nil {
			healthHandler.RegisterCircuitBreaker("mongodb_logs", dbComponents.LogsCircuitBreaker)
		}
	}

	// Initialize authentication service. Left nil when JWT auth is
	// disabled so the router falls back to the open route set.
	var authService service.AuthService
	if cfg.Auth.Enabled && dbComponents != nil && dbComponents.UserRepo != nil {
		authService = service.NewAuthService(
			dbComponents.UserRepo,
			dbComponents.RoleRepo,
			dbComponents.TokenRepo,
			cfg.Auth,
		)
	}

	// Initialize permission service
	var permissionService service.PermissionService
	if dbComponents != nil && dbComponents.PermissionRepo != nil {
		permissionService = service.NewPermissionService(dbComponents.PermissionRepo)
	}

	// Initialize role service
	var roleService service.RoleService
	if dbComponents != nil && dbComponents.RoleRepo != nil {
		roleService = service.NewRoleService(dbComponents.RoleRepo)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		AuthService:       authService,
		RoleService:       roleService,
		PermissionService: permissionService,
		CategoryService:   categoryService,
		CustomerService:   customerService,
		CartStore:         services.CartStore,
		SavedCartService:  savedCartService,
		SaleService:       saleService,
		MetricsService:    metricsService,
		ClosingService:    closingService,
	}

	return &RouterComponents{
		Handler:        handler,
		HealthHandler:  healthHandler,
		Config:         routerCfg,
		ClosingService: closingService,
	}
}
