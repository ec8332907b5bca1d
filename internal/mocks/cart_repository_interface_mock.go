// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
)

type MockCartRepositoryInterface struct {
	mock.Mock
}

func NewMockCartRepositoryInterface() *MockCartRepositoryInterface {
	return &MockCartRepositoryInterface{}
}

func (m *MockCartRepositoryInterface) Create(ctx context.Context, cart *model.SavedCart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.SavedCart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedCart), args.Error(1)
}

func (m *MockCartRepositoryInterface) ListBySeller(ctx context.Context, sellerID primitive.ObjectID, limit int64) ([]*model.SavedCart, error) {
	args := m.Called(ctx, sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.SavedCart), args.Error(1)
}

func (m *MockCartRepositoryInterface) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
