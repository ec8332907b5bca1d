package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
)

// ErrSavedCartNotFound is returned when a saved cart does not exist.
var ErrSavedCartNotFound = errors.New("saved cart not found")

// SavedCartService persists carts for later reuse and reopens them
// into the live session.
type SavedCartService interface {
	Save(ctx context.Context, cart *model.SavedCart) (*model.SavedCart, error)
	List(ctx context.Context, sellerID primitive.ObjectID) ([]*model.SavedCart, error)
	Open(ctx context.Context, sellerID, cartID primitive.ObjectID) (model.Cart, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SavedCartServiceImpl implements SavedCartService.
type SavedCartServiceImpl struct {
	repo        repository.CartRepositoryInterface
	productRepo repository.ProductRepositoryInterface
	carts       CartStore
}

// NewSavedCartService creates a new saved cart service.
func NewSavedCartService(repo repository.CartRepositoryInterface, productRepo repository.ProductRepositoryInterface, carts CartStore) *SavedCartServiceImpl {
	return &SavedCartServiceImpl{
		repo:        repo,
		productRepo: productRepo,
		carts:       carts,
	}
}

// Save persists the given cart snapshot.
func (s *SavedCartServiceImpl) Save(ctx context.Context, cart *model.SavedCart) (*model.SavedCart, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// List returns the seller's saved carts, newest first.
func (s *SavedCartServiceImpl) List(ctx context.Context, sellerID primitive.ObjectID) ([]*model.SavedCart, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.ListBySeller(ctx, sellerID, 100)
}

// Open discards the seller's live cart in favor of the saved one. Lines
// are rebuilt against the current catalog so prices and promotions are
// fresh; items whose product has since been removed are skipped.
func (s *SavedCartServiceImpl) Open(ctx context.Context, sellerID, cartID primitive.ObjectID) (model.Cart, error) {
	if s.repo == nil || s.carts == nil {
		return model.Cart{}, ErrRepositoryNotConfigured
	}

	saved, err := s.repo.FindByID(ctx, cartID)
	if err != nil {
		return model.Cart{}, err
	}
	if saved == nil {
		return model.Cart{}, ErrSavedCartNotFound
	}

	lines := make([]model.CartLine, 0, len(saved.Items))
	for _, item := range saved.Items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return model.Cart{}, err
		}
		if product == nil {
			continue
		}
		lines = append(lines, model.CartLine{
			ProductID:      product.ID,
			Name:           product.Name,
			Quantity:       item.Quantity,
			Mode:           item.Mode,
			Promotions:     append([]model.Promotion(nil), product.Promotions...),
			RetailPrice:    product.RetailPrice,
			WholesalePrice: product.WholesalePrice,
		})
	}

	userID := sellerID.Hex()
	s.carts.Replace(userID, lines)
	return s.carts.Get(userID), nil
}

// Delete removes a saved cart.
func (s *SavedCartServiceImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}

	saved, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if saved == nil {
		return ErrSavedCartNotFound
	}
	return s.repo.Delete(ctx, id)
}
