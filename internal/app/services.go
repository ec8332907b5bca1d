// Package app provides service initialization.
package app

import (
	"github.com/varejo/pos-service/config"
	"github.com/varejo/pos-service/internal/service"
	"github.com/varejo/pos-service/internal/service/cache"
)

// ServiceComponents holds the in-process service components that need
// no database: the pricer, the session cart store and the barcode
// lookup cache.
type ServiceComponents struct {
	Pricer       service.Pricer
	CartStore    service.CartStore
	ProductCache cache.Cache
}

// InitializeServices initializes business logic services.
func InitializeServices(cacheCfg config.CacheConfig, pricingCfg config.PricingConfig) *ServiceComponents {
	var opts []service.PricerOption
	if pricingCfg.WholesaleThreshold > 0 {
		opts = append(opts, service.WithWholesaleThreshold(pricingCfg.WholesaleThreshold))
	}
	pricer := service.NewPricingService(opts...)

	var productCache cache.Cache
	if cacheCfg.Size > 0 {
		productCache = service.NewShardedProductCache(cacheCfg.Size, cacheCfg.TTL, 16)
	}

	return &ServiceComponents{
		Pricer:       pricer,
		CartStore:    service.NewCartStore(pricer),
		ProductCache: productCache,
	}
}
