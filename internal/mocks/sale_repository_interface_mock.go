// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
)

type MockSaleRepositoryInterface struct {
	mock.Mock
}

func NewMockSaleRepositoryInterface() *MockSaleRepositoryInterface {
	return &MockSaleRepositoryInterface{}
}

func (m *MockSaleRepositoryInterface) Create(ctx context.Context, sale *model.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepositoryInterface) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Sale), args.Error(1)
}

func (m *MockSaleRepositoryInterface) List(ctx context.Context, filter repository.SaleFilter, limit, skip int64) ([]*model.Sale, error) {
	args := m.Called(ctx, filter, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Sale), args.Error(1)
}

func (m *MockSaleRepositoryInterface) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSaleRepositoryInterface) Summary(ctx context.Context, filter repository.SaleFilter) (*repository.SalesSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.SalesSummary), args.Error(1)
}

func (m *MockSaleRepositoryInterface) SellerTotals(ctx context.Context, filter repository.SaleFilter) ([]model.SellerTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SellerTotal), args.Error(1)
}

func (m *MockSaleRepositoryInterface) MonthlyTotals(ctx context.Context, year int) ([]repository.MonthlyTotal, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.MonthlyTotal), args.Error(1)
}
