// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/circuitbreaker"
	"github.com/varejo/pos-service/internal/domain/model"
)

// ProductRepositoryWithCircuitBreaker wraps ProductRepository with circuit breaker protection.
// Catalog reads sit on the checkout path, so a degraded MongoDB must
// fail fast instead of stalling the register.
type ProductRepositoryWithCircuitBreaker struct {
	repo           ProductRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewProductRepositoryWithCircuitBreaker(repo ProductRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create inserts a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Create(ctx context.Context, product *model.Product) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, product)
	})
}

// FindByID finds a product by ID with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	var result *model.Product
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByID(ctx, id)
		return cbErr
	})
	return result, err
}

// FindByCode finds a product by barcode with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var result *model.Product
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.FindByCode(ctx, code)
		return cbErr
	})
	return result, err
}

// List retrieves products with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) List(ctx context.Context, search string, categoryID *primitive.ObjectID, limit, skip int64) ([]*model.Product, error) {
	var result []*model.Product
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, search, categoryID, limit, skip)
		return cbErr
	})
	return result, err
}

// Update updates a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Update(ctx context.Context, product *model.Product) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Update(ctx, product)
	})
}

// Delete soft deletes a product with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

// SetStock sets absolute stock with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) SetStock(ctx context.Context, id primitive.ObjectID, quantity int) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.SetStock(ctx, id, quantity)
	})
}

// AdjustStock changes stock by delta with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.AdjustStock(ctx, id, delta)
	})
}

// CountByCategory counts products with circuit breaker protection.
func (r *ProductRepositoryWithCircuitBreaker) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.CountByCategory(ctx, categoryID)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps LogsRepository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           *LogsRepository
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo *LogsRepository, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a single log entry with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// CreateMany stores multiple log entries with circuit breaker protection.
// If circuit is open, silently fails (logging is non-critical).
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if err == circuitbreaker.ErrCircuitOpen {
		// Circuit is open - silently fail (logging is non-critical)
		return nil
	}
	return err
}

// Query retrieves log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	var result []*LogEntryDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of log entries with circuit breaker protection.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
