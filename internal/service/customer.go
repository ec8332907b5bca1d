package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
)

// ErrCustomerNotFound is returned when a customer does not exist or is inactive.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerService provides customer operations.
type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
	List(ctx context.Context, search string, limit, skip int64) ([]*model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CustomerServiceImpl implements CustomerService.
type CustomerServiceImpl struct {
	repo repository.CustomerRepositoryInterface
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepositoryInterface) *CustomerServiceImpl {
	return &CustomerServiceImpl{repo: repo}
}

// Create inserts a customer.
func (s *CustomerServiceImpl) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID returns a customer or ErrCustomerNotFound.
func (s *CustomerServiceImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}

// List retrieves customers with search and pagination.
func (s *CustomerServiceImpl) List(ctx context.Context, search string, limit, skip int64) ([]*model.Customer, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.List(ctx, search, limit, skip)
}

// Update replaces a customer's mutable fields.
func (s *CustomerServiceImpl) Update(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCustomerNotFound
	}

	customer.CreatedAt = existing.CreatedAt
	customer.Active = true
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete soft deletes a customer.
func (s *CustomerServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCustomerNotFound
	}
	return s.repo.Delete(ctx, id)
}
