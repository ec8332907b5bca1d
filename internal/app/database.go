// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/varejo/pos-service/config"
	"github.com/varejo/pos-service/internal/circuitbreaker"
	"github.com/varejo/pos-service/internal/repository"
	"github.com/varejo/pos-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	ProductRepo           repository.ProductRepositoryInterface
	CategoryRepo          repository.CategoryRepositoryInterface
	CustomerRepo          repository.CustomerRepositoryInterface
	CartRepo              repository.CartRepositoryInterface
	SaleRepo              repository.SaleRepositoryInterface
	ClosingRepo           repository.ClosingRepositoryInterface
	LoggingService        service.LoggingService
	ProductCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
	UserRepo              repository.UserRepositoryInterface
	RoleRepo              repository.RoleRepositoryInterface
	PermissionRepo        repository.PermissionRepositoryInterface
	TokenRepo             repository.TokenRepositoryInterface
}

// InitializeDatabase initializes the MongoDB connection and creates the
// repositories and services built on it. Returns nil if the connection
// fails; the service can still serve pricing and cart operations from
// memory.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	// Set TTL for logs
	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	// Initialize circuit breakers
	productCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-products",
	})

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	// Initialize repositories
	logsRepo := repository.NewLogsRepository(db)
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	productRepo := repository.NewProductRepository(db.Database)
	productRepoWithCB := repository.NewProductRepositoryWithCircuitBreaker(productRepo, productCB)

	categoryRepo := repository.NewCategoryRepository(db.Database)
	customerRepo := repository.NewCustomerRepository(db.Database)
	cartRepo := repository.NewCartRepository(db.Database)
	saleRepo := repository.NewSaleRepository(db.Database)
	closingRepo := repository.NewClosingRepository(db.Database)

	// Initialize auth repositories
	userRepo := repository.NewUserRepository(db.Database)
	roleRepo := repository.NewRoleRepository(db.Database)
	permissionRepo := repository.NewPermissionRepository(db.Database)
	tokenRepo := repository.NewTokenRepository(db.Database)

	// Initialize default roles and permissions
	if err := initializeDefaultRolesAndPermissions(roleRepo, permissionRepo); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize default roles and permissions")
	}

	return &DatabaseComponents{
		ProductRepo:           productRepoWithCB,
		CategoryRepo:          categoryRepo,
		CustomerRepo:          customerRepo,
		CartRepo:              cartRepo,
		SaleRepo:              saleRepo,
		ClosingRepo:           closingRepo,
		LoggingService:        loggingService,
		ProductCircuitBreaker: productCB,
		LogsCircuitBreaker:    logsCB,
		UserRepo:              userRepo,
		RoleRepo:              roleRepo,
		PermissionRepo:        permissionRepo,
		TokenRepo:             tokenRepo,
	}
}
