package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/mocks"
	"github.com/varejo/pos-service/internal/service"
)

func TestSavedCartService_Save(t *testing.T) {
	sellerID := primitive.NewObjectID()
	saved := &model.SavedCart{
		SellerID: sellerID,
		Items: []model.SavedCartItem{
			{ProductID: primitive.NewObjectID(), Name: "Arroz 5kg", Quantity: 2, UnitPrice: 24.90, Mode: model.PriceModeRetail},
		},
		Total: 49.80,
	}

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockCartRepositoryInterface)
		expectedError error
	}{
		{
			name: "successful save",
			setupMocks: func(repo *mocks.MockCartRepositoryInterface) {
				repo.On("Create", mock.Anything, saved).Return(nil)
			},
		},
		{
			name: "repository error",
			setupMocks: func(repo *mocks.MockCartRepositoryInterface) {
				repo.On("Create", mock.Anything, saved).Return(errors.New("write failed"))
			},
			expectedError: errors.New("write failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCartRepositoryInterface()
			tt.setupMocks(repo)

			svc := service.NewSavedCartService(repo, mocks.NewMockProductRepositoryInterface(), nil)
			result, err := svc.Save(context.Background(), saved)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, saved, result)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestSavedCartService_List(t *testing.T) {
	sellerID := primitive.NewObjectID()

	repo := mocks.NewMockCartRepositoryInterface()
	repo.On("ListBySeller", mock.Anything, sellerID, int64(100)).Return([]*model.SavedCart{
		{SellerID: sellerID, Total: 49.80},
		{SellerID: sellerID, Total: 7.50},
	}, nil)

	svc := service.NewSavedCartService(repo, mocks.NewMockProductRepositoryInterface(), nil)
	carts, err := svc.List(context.Background(), sellerID)

	assert.NoError(t, err)
	assert.Len(t, carts, 2)
	repo.AssertExpectations(t)
}

func TestSavedCartService_Open(t *testing.T) {
	sellerID := primitive.NewObjectID()
	cartID := primitive.NewObjectID()
	arroz, feijao := testProducts()

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockCartRepositoryInterface, *mocks.MockProductRepositoryInterface)
		expectedError error
		validate      func(*testing.T, model.Cart)
	}{
		{
			name: "reopens cart with fresh catalog prices",
			setupMocks: func(cartRepo *mocks.MockCartRepositoryInterface, productRepo *mocks.MockProductRepositoryInterface) {
				cartRepo.On("FindByID", mock.Anything, cartID).Return(&model.SavedCart{
					ID:       cartID,
					SellerID: sellerID,
					Items: []model.SavedCartItem{
						// Stale unit price; the reopened line reprices
						// against the current catalog.
						{ProductID: arroz.ID, Name: arroz.Name, Quantity: 6, UnitPrice: 18.00, Mode: model.PriceModeWholesale},
						{ProductID: feijao.ID, Name: feijao.Name, Quantity: 1, UnitPrice: 7.50, Mode: model.PriceModeRetail},
					},
				}, nil)
				productRepo.On("FindByID", mock.Anything, arroz.ID).Return(arroz, nil)
				productRepo.On("FindByID", mock.Anything, feijao.ID).Return(feijao, nil)
			},
			validate: func(t *testing.T, cart model.Cart) {
				require.Len(t, cart.Lines, 2)
				assert.Equal(t, 6, cart.Lines[0].Quantity)
				assert.Equal(t, model.PriceModeWholesale, cart.Lines[0].Mode)
				assert.InDelta(t, 19.90, cart.Lines[0].UnitPrice, 0.001)
				assert.InDelta(t, 7.50, cart.Lines[1].UnitPrice, 0.001)
			},
		},
		{
			name: "skips items whose product is gone",
			setupMocks: func(cartRepo *mocks.MockCartRepositoryInterface, productRepo *mocks.MockProductRepositoryInterface) {
				gone := primitive.NewObjectID()
				cartRepo.On("FindByID", mock.Anything, cartID).Return(&model.SavedCart{
					ID:       cartID,
					SellerID: sellerID,
					Items: []model.SavedCartItem{
						{ProductID: gone, Name: "Descontinuado", Quantity: 1},
						{ProductID: feijao.ID, Name: feijao.Name, Quantity: 2},
					},
				}, nil)
				productRepo.On("FindByID", mock.Anything, gone).Return(nil, nil)
				productRepo.On("FindByID", mock.Anything, feijao.ID).Return(feijao, nil)
			},
			validate: func(t *testing.T, cart model.Cart) {
				require.Len(t, cart.Lines, 1)
				assert.Equal(t, feijao.ID, cart.Lines[0].ProductID)
				assert.Equal(t, 2, cart.Lines[0].Quantity)
			},
		},
		{
			name: "saved cart not found",
			setupMocks: func(cartRepo *mocks.MockCartRepositoryInterface, productRepo *mocks.MockProductRepositoryInterface) {
				cartRepo.On("FindByID", mock.Anything, cartID).Return(nil, nil)
			},
			expectedError: service.ErrSavedCartNotFound,
		},
		{
			name: "repository error",
			setupMocks: func(cartRepo *mocks.MockCartRepositoryInterface, productRepo *mocks.MockProductRepositoryInterface) {
				cartRepo.On("FindByID", mock.Anything, cartID).Return(nil, errors.New("connection lost"))
			},
			expectedError: errors.New("connection lost"),
		},
		{
			name: "catalog read error aborts",
			setupMocks: func(cartRepo *mocks.MockCartRepositoryInterface, productRepo *mocks.MockProductRepositoryInterface) {
				cartRepo.On("FindByID", mock.Anything, cartID).Return(&model.SavedCart{
					ID:       cartID,
					SellerID: sellerID,
					Items: []model.SavedCartItem{
						{ProductID: arroz.ID, Name: arroz.Name, Quantity: 1},
					},
				}, nil)
				productRepo.On("FindByID", mock.Anything, arroz.ID).Return(nil, errors.New("connection lost"))
			},
			expectedError: errors.New("connection lost"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartRepo := mocks.NewMockCartRepositoryInterface()
			productRepo := mocks.NewMockProductRepositoryInterface()
			tt.setupMocks(cartRepo, productRepo)

			carts := service.NewCartStore(service.NewPricingService())
			svc := service.NewSavedCartService(cartRepo, productRepo, carts)
			cart, err := svc.Open(context.Background(), sellerID, cartID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
				assert.Empty(t, cart.Lines)
			} else {
				assert.NoError(t, err)
				if tt.validate != nil {
					tt.validate(t, cart)
				}
			}

			cartRepo.AssertExpectations(t)
			productRepo.AssertExpectations(t)
		})
	}
}

func TestSavedCartService_Open_ReplacesLiveCart(t *testing.T) {
	sellerID := primitive.NewObjectID()
	cartID := primitive.NewObjectID()
	arroz, feijao := testProducts()

	carts := service.NewCartStore(service.NewPricingService())
	carts.Add(sellerID.Hex(), feijao)

	cartRepo := mocks.NewMockCartRepositoryInterface()
	cartRepo.On("FindByID", mock.Anything, cartID).Return(&model.SavedCart{
		ID:       cartID,
		SellerID: sellerID,
		Items: []model.SavedCartItem{
			{ProductID: arroz.ID, Name: arroz.Name, Quantity: 3},
		},
	}, nil)
	productRepo := mocks.NewMockProductRepositoryInterface()
	productRepo.On("FindByID", mock.Anything, arroz.ID).Return(arroz, nil)

	svc := service.NewSavedCartService(cartRepo, productRepo, carts)
	cart, err := svc.Open(context.Background(), sellerID, cartID)

	assert.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, arroz.ID, cart.Lines[0].ProductID)

	// The live cart no longer holds the pre-open line.
	live := carts.Get(sellerID.Hex())
	require.Len(t, live.Lines, 1)
	assert.Equal(t, arroz.ID, live.Lines[0].ProductID)
}

func TestSavedCartService_Delete(t *testing.T) {
	cartID := primitive.NewObjectID()

	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockCartRepositoryInterface)
		expectedError error
	}{
		{
			name: "successful delete",
			setupMocks: func(repo *mocks.MockCartRepositoryInterface) {
				repo.On("FindByID", mock.Anything, cartID).Return(&model.SavedCart{ID: cartID}, nil)
				repo.On("Delete", mock.Anything, cartID).Return(nil)
			},
		},
		{
			name: "missing cart",
			setupMocks: func(repo *mocks.MockCartRepositoryInterface) {
				repo.On("FindByID", mock.Anything, cartID).Return(nil, nil)
			},
			expectedError: service.ErrSavedCartNotFound,
		},
		{
			name: "delete failure",
			setupMocks: func(repo *mocks.MockCartRepositoryInterface) {
				repo.On("FindByID", mock.Anything, cartID).Return(&model.SavedCart{ID: cartID}, nil)
				repo.On("Delete", mock.Anything, cartID).Return(errors.New("write failed"))
			},
			expectedError: errors.New("write failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockCartRepositoryInterface()
			tt.setupMocks(repo)

			svc := service.NewSavedCartService(repo, mocks.NewMockProductRepositoryInterface(), nil)
			err := svc.Delete(context.Background(), cartID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestSavedCartService_RepositoryNotConfigured(t *testing.T) {
	svc := service.NewSavedCartService(nil, nil, nil)

	_, err := svc.Save(context.Background(), &model.SavedCart{})
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)

	_, err = svc.List(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)

	_, err = svc.Open(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)

	err = svc.Delete(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrRepositoryNotConfigured)
}
