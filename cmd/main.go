// Package main is the entry point for the POS service application.
//
// @title           POS Service API
// @version         1.0.0
// @description     Point-of-sale backend for retail/wholesale stores.
//
//	Catalog, session carts with retail and wholesale price tiers,
//	sales with stock control, metrics and daily closings.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
// @contact.url    https://github.com/varejo/pos-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 JWT Bearer token. Format: Bearer <token>
//
// @tag.name        Products
// @tag.description Catalog operations
//
// @tag.name        Categories
// @tag.description Product category operations
//
// @tag.name        Customers
// @tag.description Customer registry operations
//
// @tag.name        Stock
// @tag.description Stock control operations
//
// @tag.name        Cart
// @tag.description Live session cart and saved cart operations
//
// @tag.name        Sales
// @tag.description Checkout, listing and cancellation
//
// @tag.name        Metrics
// @tag.description Sales reporting
//
// @tag.name        Closings
// @tag.description Daily closing operations
//
// @tag.name        Auth
// @tag.description Authentication and authorization endpoints
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/varejo/pos-service/docs" // swagger docs

	"github.com/varejo/pos-service/config"
	"github.com/varejo/pos-service/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	router, shutdown := app.InitializeApp(cfg)
	defer shutdown()

	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
