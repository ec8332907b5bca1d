package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
)

var (
	// ErrCategoryNotFound is returned when a category does not exist or is inactive.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory is returned when a category name is taken.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrCategoryInUse is returned when deleting a category that still has products.
	ErrCategoryInUse = errors.New("category has products")
)

// CategoryService provides category operations.
type CategoryService interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.CategoryWithCount, error)
	Rename(ctx context.Context, id primitive.ObjectID, name string) (*model.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryServiceImpl implements CategoryService.
type CategoryServiceImpl struct {
	repo        repository.CategoryRepositoryInterface
	productRepo repository.ProductRepositoryInterface
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo repository.CategoryRepositoryInterface, productRepo repository.ProductRepositoryInterface) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo, productRepo: productRepo}
}

// Create inserts a category with a unique name.
func (s *CategoryServiceImpl) Create(ctx context.Context, name string) (*model.Category, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCategory
	}

	category := &model.Category{Name: name}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List returns all categories with their product counts.
func (s *CategoryServiceImpl) List(ctx context.Context) ([]model.CategoryWithCount, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.ListWithCounts(ctx)
}

// Rename changes a category's name, keeping it unique.
func (s *CategoryServiceImpl) Rename(ctx context.Context, id primitive.ObjectID, name string) (*model.Category, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if name != category.Name {
		taken, err := s.repo.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrDuplicateCategory
		}
	}

	category.Name = name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete soft deletes an empty category. A category still referenced by
// active products is refused.
func (s *CategoryServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	if s.productRepo != nil {
		count, err := s.productRepo.CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
	}

	return s.repo.Delete(ctx, id)
}
