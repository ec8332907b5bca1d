package http

import (
	"github.com/gin-gonic/gin"
	"github.com/varejo/pos-service/internal/service"
)

// SalesRoutes handles sale, metrics and closing route registration.
type SalesRoutes struct {
	saleHandler    *SaleHandler
	metricsHandler *MetricsHandler
	closingHandler *ClosingHandler
}

// NewSalesRoutes creates a new SalesRoutes instance.
func NewSalesRoutes(saleService service.SaleService, metricsService service.SalesMetricsService, closingService service.ClosingService) *SalesRoutes {
	r := &SalesRoutes{
		saleHandler: NewSaleHandler(saleService),
	}
	if metricsService != nil {
		r.metricsHandler = NewMetricsHandler(metricsService)
	}
	if closingService != nil {
		r.closingHandler = NewClosingHandler(closingService)
	}
	return r
}

// RegisterPublicRoutes registers sales routes (when auth is disabled).
func (r *SalesRoutes) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/sales", r.saleHandler.FinalizeSale)
	rg.GET("/sales", r.saleHandler.ListSales)
	rg.GET("/sales/:id", r.saleHandler.GetSale)
	rg.PATCH("/sales/:id/cancel", r.saleHandler.CancelSale)

	if r.metricsHandler != nil {
		rg.GET("/metrics/vendas", r.metricsHandler.SalesSummary)
		rg.GET("/metrics/vendedores", r.metricsHandler.SellerTotals)
		rg.GET("/metrics/mensais", r.metricsHandler.MonthlySales)
	}
	if r.closingHandler != nil {
		rg.POST("/closings/run", r.closingHandler.RunClosing)
		rg.GET("/closings", r.closingHandler.ListClosings)
	}
}

// RegisterProtectedRoutes registers sales routes (when auth is enabled).
// Finalizing and cancelling are open to any authenticated seller;
// store-wide metrics require the sales read permission and closings
// require the closings permission, which only the admin role carries.
func (r *SalesRoutes) RegisterProtectedRoutes(protected *gin.RouterGroup, cfg *RouterConfig) {
	salesReadPermID, _ := lookupPermissionIDs(cfg, "sales")
	readAuth := permissionAuth(cfg, salesReadPermID)

	protected.POST("/sales", r.saleHandler.FinalizeSale)
	protected.GET("/sales/:id", r.saleHandler.GetSale)
	protected.PATCH("/sales/:id/cancel", r.saleHandler.CancelSale)
	handle(protected, "GET", "/sales", readAuth, r.saleHandler.ListSales)

	if r.metricsHandler != nil {
		protected.GET("/metrics/vendedores/me", r.metricsHandler.MySales)
		handle(protected, "GET", "/metrics/vendas", readAuth, r.metricsHandler.SalesSummary)
		handle(protected, "GET", "/metrics/vendedores", readAuth, r.metricsHandler.SellerTotals)
		handle(protected, "GET", "/metrics/mensais", readAuth, r.metricsHandler.MonthlySales)
	}

	if r.closingHandler != nil {
		closingsReadPermID, closingsWritePermID := lookupPermissionIDs(cfg, "closings")
		handle(protected, "POST", "/closings/run", permissionAuth(cfg, closingsWritePermID), r.closingHandler.RunClosing)
		handle(protected, "GET", "/closings", permissionAuth(cfg, closingsReadPermID), r.closingHandler.ListClosings)
	}
}
