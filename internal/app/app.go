// Package app provides application initialization and dependency injection.
package app

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/varejo/pos-service/config"
	"github.com/varejo/pos-service/internal/http"
)

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all
// components. The returned shutdown function stops background jobs
// (the daily closing scheduler) and must be called on exit.
func InitializeApp(cfg config.Config) (*gin.Engine, func()) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	// Initialize in-memory services (pricer, cart store, product cache)
	serviceComponents := InitializeServices(cfg.Cache, cfg.Pricing)

	// Initialize database components (MongoDB repositories and services)
	dbComponents := InitializeDatabase(cfg.Database)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	// Start the daily closing scheduler
	if cfg.Closing.Enabled && routerComponents.ClosingService != nil {
		if err := routerComponents.ClosingService.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start daily closing scheduler")
		}
	}

	shutdown := func() {
		if routerComponents.ClosingService != nil {
			routerComponents.ClosingService.Stop()
		}
		if serviceComponents.ProductCache != nil {
			serviceComponents.ProductCache.Stop()
		}
	}

	return http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config), shutdown
}
