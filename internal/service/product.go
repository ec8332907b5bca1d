package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
	"github.com/varejo/pos-service/internal/service/cache"
)

var (
	// ErrRepositoryNotConfigured is returned when the repository is not configured.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrProductNotFound is returned when a product does not exist or is inactive.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateCode is returned when a barcode is already taken.
	ErrDuplicateCode = errors.New("product code already exists")
)

// ProductService provides catalog operations.
type ProductService interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	GetByCode(ctx context.Context, code string) (*model.Product, error)
	List(ctx context.Context, search string, categoryID *primitive.ObjectID, limit, skip int64) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetStock(ctx context.Context, id primitive.ObjectID, quantity int) (*model.Product, error)
}

// ProductServiceOption configures a ProductServiceImpl.
type ProductServiceOption func(*ProductServiceImpl)

// ProductServiceImpl implements ProductService. Barcode lookups, the
// hot path at the register, go through an optional LRU cache.
type ProductServiceImpl struct {
	repo  repository.ProductRepositoryInterface
	cache cache.Cache
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepositoryInterface, opts ...ProductServiceOption) *ProductServiceImpl {
	s := &ProductServiceImpl{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithProductCache enables barcode lookup caching.
func WithProductCache(c cache.Cache) ProductServiceOption {
	return func(s *ProductServiceImpl) {
		s.cache = c
	}
}

// Create inserts a product, enforcing barcode uniqueness at the
// application level to surface a clean error before the index does.
func (s *ProductServiceImpl) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByCode(ctx, product.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCode
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID returns a product or ErrProductNotFound.
func (s *ProductServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByCode returns a product by barcode, consulting the cache first.
func (s *ProductServiceImpl) GetByCode(ctx context.Context, code string) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	if s.cache != nil {
		if product, ok := s.cache.Get(code); ok {
			return product, nil
		}
	}

	product, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.cache != nil {
		s.cache.Set(code, product)
	}
	return product, nil
}

// List retrieves products with search and pagination.
func (s *ProductServiceImpl) List(ctx context.Context, search string, categoryID *primitive.ObjectID, limit, skip int64) ([]*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, search, categoryID, limit, skip)
}

// Update replaces a product's mutable fields and invalidates its cache
// entry, old barcode included in case the code changed.
func (s *ProductServiceImpl) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if product.Code != existing.Code {
		taken, err := s.repo.FindByCode(ctx, product.Code)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrDuplicateCode
		}
	}

	product.StockQuantity = existing.StockQuantity
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(existing.Code)
		s.cache.Invalidate(product.Code)
	}
	return product, nil
}

// Delete soft deletes a product and drops it from the cache.
func (s *ProductServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(existing.Code)
	}
	return nil
}

// SetStock sets the absolute stock quantity and returns the updated
// product record.
func (s *ProductServiceImpl) SetStock(ctx context.Context, id primitive.ObjectID, quantity int) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if err := s.repo.SetStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	existing.StockQuantity = quantity
	if s.cache != nil {
		s.cache.Invalidate(existing.Code)
	}
	return existing, nil
}
