// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/varejo/pos-service/internal/domain/model"
)

type MockClosingRepositoryInterface struct {
	mock.Mock
}

func NewMockClosingRepositoryInterface() *MockClosingRepositoryInterface {
	return &MockClosingRepositoryInterface{}
}

func (m *MockClosingRepositoryInterface) Upsert(ctx context.Context, closing *model.DailyClosing) error {
	args := m.Called(ctx, closing)
	return args.Error(0)
}

func (m *MockClosingRepositoryInterface) FindByDate(ctx context.Context, date string) (*model.DailyClosing, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DailyClosing), args.Error(1)
}

func (m *MockClosingRepositoryInterface) List(ctx context.Context, limit int64) ([]*model.DailyClosing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.DailyClosing), args.Error(1)
}
