//go:build integration

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varejo/pos-service/internal/circuitbreaker"
	"github.com/varejo/pos-service/internal/domain/dto"
	"github.com/varejo/pos-service/internal/domain/model"
	"github.com/varejo/pos-service/internal/repository"
	"github.com/varejo/pos-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupHandlerWithMongoDBIntegrationRouter(dbName string) (*gin.Engine, *repository.MongoDB) {
	gin.SetMode(gin.TestMode)

	uri := getSharedContainerURI()
	db, err := repository.NewMongoDB(uri, dbName)
	if err != nil {
		panic(err)
	}

	logsRepo := repository.NewLogsRepository(db)
	logsCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	logsRepoWithCB := repository.NewLogsRepositoryWithCircuitBreaker(logsRepo, logsCB)
	loggingService := service.NewLoggingService(logsRepoWithCB)

	productRepo := repository.NewProductRepository(db.Database)
	productCB := circuitbreaker.New(circuitbreaker.DefaultConfig())
	productRepoWithCB := repository.NewProductRepositoryWithCircuitBreaker(productRepo, productCB)
	productService := service.NewProductService(productRepoWithCB)

	handler := NewHandler(productService, WithStockCacheTTL(time.Second))
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		EnableAuth:     false,
		LoggingService: loggingService,
	}

	return NewRouter(handler, healthHandler, cfg), db
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) *model.Product {
	t.Helper()

	var response dto.SuccessResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	dataBytes, _ := json.Marshal(response.Data)
	var product model.Product
	err = json.Unmarshal(dataBytes, &product)
	require.NoError(t, err)
	return &product
}

func TestHandler_ProductLifecycle_Integration(t *testing.T) {
	ctx := context.Background()

	// Use shared container with unique database name
	dbName := sanitizeDBNameForHTTP(t.Name())
	router, db := setupHandlerWithMongoDBIntegrationRouter(dbName)
	defer func() {
		_ = db.Close(ctx)
	}()

	var productID string

	t.Run("create product", func(t *testing.T) {
		body := []byte(`{"nome": "Arroz 5kg", "codigo": "7891000100103", "preco_venda": 24.90, "preco_atacado": 21.50, "quantidade_estoque": 30}`)
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		product := decodeProduct(t, w)
		assert.Equal(t, "Arroz 5kg", product.Name)
		assert.Equal(t, "7891000100103", product.Code)
		assert.Equal(t, 24.90, product.RetailPrice)
		assert.False(t, product.ID.IsZero())
		productID = product.ID.Hex()
	})

	t.Run("duplicate barcode rejected", func(t *testing.T) {
		body := []byte(`{"nome": "Arroz 5kg tipo 2", "codigo": "7891000100103", "preco_venda": 19.90}`)
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("lookup by barcode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/codigo/7891000100103", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		product := decodeProduct(t, w)
		assert.Equal(t, "Arroz 5kg", product.Name)
	})

	t.Run("update product price", func(t *testing.T) {
		body := []byte(`{"preco_venda": 26.90}`)
		req := httptest.NewRequest(http.MethodPut, "/api/products/"+productID, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		product := decodeProduct(t, w)
		assert.Equal(t, 26.90, product.RetailPrice)
	})

	t.Run("set stock", func(t *testing.T) {
		body := []byte(`{"quantity": 42}`)
		req := httptest.NewRequest(http.MethodPut, "/api/stock/"+productID, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		product := decodeProduct(t, w)
		assert.Equal(t, 42, product.StockQuantity)
	})

	t.Run("stock listing reflects update", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response dto.SuccessResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		dataBytes, _ := json.Marshal(response.Data)
		var items []dto.StockItemResponse
		err = json.Unmarshal(dataBytes, &items)
		require.NoError(t, err)

		require.Len(t, items, 1)
		assert.Equal(t, "Arroz 5kg", items[0].ProductName)
		assert.Equal(t, 42, items[0].Quantity)
	})

	t.Run("delete product", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/products/"+productID, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deleted product is gone", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products/codigo/7891000100103", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestIntegration_RateLimiting(t *testing.T) {
	ctx := context.Background()

	dbName := sanitizeDBNameForHTTP(t.Name())
	uri := getSharedContainerURI()
	db, err := repository.NewMongoDB(uri, dbName)
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	productService := service.NewProductService(repository.NewProductRepository(db.Database))
	handler := NewHandler(productService)
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:  5,
		RateWindow: time.Second,
	}

	router := NewRouter(handler, healthHandler, cfg)

	// Make requests up to rate limit
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestIntegration_APIKeyAuth(t *testing.T) {
	ctx := context.Background()

	dbName := sanitizeDBNameForHTTP(t.Name())
	uri := getSharedContainerURI()
	db, err := repository.NewMongoDB(uri, dbName)
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	productService := service.NewProductService(repository.NewProductRepository(db.Database))
	handler := NewHandler(productService)
	healthHandler := NewHealthHandler()

	cfg := RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		EnableAuth: true,
		APIKeys:    map[string]bool{"valid-key": true},
	}

	router := NewRouter(handler, healthHandler, cfg)

	t.Run("missing API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("X-API-Key", "invalid-key")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid API key in header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set("X-API-Key", "valid-key")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid API key in query param", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products?api_key=valid-key", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health endpoints bypass auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestIntegration_StockListCacheEffectiveness(t *testing.T) {
	ctx := context.Background()

	dbName := sanitizeDBNameForHTTP(t.Name())
	router, db := setupHandlerWithMongoDBIntegrationRouter(dbName)
	defer func() {
		_ = db.Close(ctx)
	}()

	body := []byte(`{"nome": "Feijão 1kg", "codigo": "7891000200104", "preco_venda": 8.90, "quantidade_estoque": 40}`)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	// First request - cache miss
	start := time.Now()
	req1 := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, req1)
	firstDuration := time.Since(start)

	require.Equal(t, http.StatusOK, w1.Code)

	start = time.Now()
	req2 := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	secondDuration := time.Since(start)

	require.Equal(t, http.StatusOK, w2.Code)

	var resp1 dto.SuccessResponse
	var resp2 dto.SuccessResponse
	_ = json.Unmarshal(w1.Body.Bytes(), &resp1)
	_ = json.Unmarshal(w2.Body.Bytes(), &resp2)

	dataBytes1, _ := json.Marshal(resp1.Data)
	dataBytes2, _ := json.Marshal(resp2.Data)
	assert.Equal(t, string(dataBytes1), string(dataBytes2))

	t.Logf("First request (cache miss): %v", firstDuration)
	t.Logf("Second request (cache hit): %v", secondDuration)
}

func TestHandler_RequestLogging_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	dbName := sanitizeDBNameForHTTP(t.Name())
	router, db := setupHandlerWithMongoDBIntegrationRouter(dbName)
	defer func() {
		_ = db.Close(ctx)
	}()

	t.Run("request creates log entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		time.Sleep(100 * time.Millisecond)

		logsRepo := repository.NewLogsRepository(db)
		opts := repository.LogQueryOptions{
			Path: "/api/products",
		}
		logs, err := logsRepo.Query(ctx, opts)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(logs), 1)
	})
}
