// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
)

type MockCustomerRepositoryInterface struct {
	mock.Mock
}

func NewMockCustomerRepositoryInterface() *MockCustomerRepositoryInterface {
	return &MockCustomerRepositoryInterface{}
}

func (m *MockCustomerRepositoryInterface) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepositoryInterface) List(ctx context.Context, search string, limit, skip int64) ([]*model.Customer, error) {
	args := m.Called(ctx, search, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockCustomerRepositoryInterface) Update(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepositoryInterface) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
