package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/mocks"
	"github.com/varejo/pos-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouterWithMock() (*gin.Engine, *mocks.MockProductService) {
	mockProducts := mocks.NewMockProductService()
	handler := NewHandler(mockProducts)
	healthHandler := NewHealthHandler()
	return NewRouter(handler, healthHandler, DefaultRouterConfig()), mockProducts
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mocks.MockProductService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "valid request",
			body: `{"nome": "Arroz 5kg", "codigo": "7891000100103", "preco_venda": 24.90}`,
			setupMock: func(m *mocks.MockProductService) {
				created := &model.Product{
					ID:          primitive.NewObjectID(),
					Name:        "Arroz 5kg",
					Code:        "7891000100103",
					RetailPrice: 24.90,
					Active:      true,
				}
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp dto.SuccessResponse
				err := json.Unmarshal(w.Body.Bytes(), &resp)
				assert.NoError(t, err)
				assert.NotEmpty(t, resp.RequestID)
				assert.NotZero(t, resp.Timestamp)

				dataBytes, _ := json.Marshal(resp.Data)
				var product model.Product
				err = json.Unmarshal(dataBytes, &product)
				assert.NoError(t, err)
				assert.Equal(t, "Arroz 5kg", product.Name)
				assert.Equal(t, "7891000100103", product.Code)
			},
		},
		{
			name: "with wholesale tier",
			body: `{"nome": "Refrigerante 2L", "codigo": "r2l", "preco_venda": 9.00, "preco_atacado": 7.50}`,
			setupMock: func(m *mocks.MockProductService) {
				price := 7.50
				created := &model.Product{
					ID:             primitive.NewObjectID(),
					Name:           "Refrigerante 2L",
					Code:           "r2l",
					RetailPrice:    9.00,
					WholesalePrice: &price,
					Active:         true,
				}
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			body:           `invalid`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           `{"codigo": "x", "preco_venda": 1.00}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero retail price",
			body:           `{"nome": "X", "codigo": "x", "preco_venda": 0}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wholesale above retail",
			body:           `{"nome": "X", "codigo": "x", "preco_venda": 5.00, "preco_atacado": 6.00}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate code",
			body: `{"nome": "Arroz 5kg", "codigo": "7891000100103", "preco_venda": 24.90}`,
			setupMock: func(m *mocks.MockProductService) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil, service.ErrDuplicateCode)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockProducts := setupRouterWithMock()
			if tt.setupMock != nil {
				tt.setupMock(mockProducts)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestGetProductByCode(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		setupMock      func(*mocks.MockProductService)
		expectedStatus int
	}{
		{
			name: "found",
			code: "7891000100103",
			setupMock: func(m *mocks.MockProductService) {
				m.On("GetByCode", mock.Anything, "7891000100103").Return(&model.Product{
					ID:          primitive.NewObjectID(),
					Name:        "Arroz 5kg",
					Code:        "7891000100103",
					RetailPrice: 24.90,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			code: "0000000000000",
			setupMock: func(m *mocks.MockProductService) {
				m.On("GetByCode", mock.Anything, "0000000000000").Return(nil, service.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockProducts := setupRouterWithMock()
			tt.setupMock(mockProducts)

			req := httptest.NewRequest(http.MethodGet, "/api/products/codigo/"+tt.code, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestListProducts(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockProductService)
		expectedStatus int
	}{
		{
			name: "default pagination",
			path: "/api/products",
			setupMock: func(m *mocks.MockProductService) {
				m.On("List", mock.Anything, "", (*primitive.ObjectID)(nil), int64(50), int64(0)).Return([]*model.Product{
					{Name: "Arroz 5kg", Code: "p1", RetailPrice: 24.90},
					{Name: "Feijão 1kg", Code: "p2", RetailPrice: 8.50},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "with search and limit",
			path: "/api/products?search=arroz&limit=10&skip=20",
			setupMock: func(m *mocks.MockProductService) {
				m.On("List", mock.Anything, "arroz", (*primitive.ObjectID)(nil), int64(10), int64(20)).Return([]*model.Product{}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid category id",
			path:           "/api/products?categoria_id=not-an-id",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockProducts := setupRouterWithMock()
			if tt.setupMock != nil {
				tt.setupMock(mockProducts)
			}

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestSetStock(t *testing.T) {
	productID := primitive.NewObjectID()

	tests := []struct {
		name           string
		path           string
		body           string
		setupMock      func(*mocks.MockProductService)
		expectedStatus int
	}{
		{
			name: "sets quantity",
			path: "/api/stock/" + productID.Hex(),
			body: `{"quantity": 42}`,
			setupMock: func(m *mocks.MockProductService) {
				m.On("SetStock", mock.Anything, productID, 42).Return(&model.Product{
					ID:            productID,
					Name:          "Arroz 5kg",
					StockQuantity: 42,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid id",
			path:           "/api/stock/not-an-id",
			body:           `{"quantity": 42}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "product not found",
			path: "/api/stock/" + productID.Hex(),
			body: `{"quantity": 42}`,
			setupMock: func(m *mocks.MockProductService) {
				m.On("SetStock", mock.Anything, productID, 42).Return(nil, service.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockProducts := setupRouterWithMock()
			if tt.setupMock != nil {
				tt.setupMock(mockProducts)
			}

			req := httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockProducts.AssertExpectations(t)
		})
	}
}

func TestListStock(t *testing.T) {
	router, mockProducts := setupRouterWithMock()
	mockProducts.On("List", mock.Anything, "", (*primitive.ObjectID)(nil), int64(0), int64(0)).Return([]*model.Product{
		{ID: primitive.NewObjectID(), Name: "Arroz 5kg", StockQuantity: 12},
		{ID: primitive.NewObjectID(), Name: "Feijão 1kg", StockQuantity: 30},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.SuccessResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)

	dataBytes, _ := json.Marshal(resp.Data)
	var items []dto.StockItemResponse
	err = json.Unmarshal(dataBytes, &items)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 12, items[0].Quantity)
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := setupRouterWithMock()

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "liveness probe",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "readiness probe",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func BenchmarkBarcodeLookup(b *testing.B) {
	router, mockProducts := setupRouterWithMock()
	mockProducts.On("GetByCode", mock.Anything, "7891000100103").Return(&model.Product{
		Name:        "Arroz 5kg",
		Code:        "7891000100103",
		RetailPrice: 24.90,
	}, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products/codigo/7891000100103", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
