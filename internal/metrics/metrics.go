// Package metrics provides Prometheus metrics collection for the POS service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PriceResolutionsTotal tracks unit price resolutions by effective mode.
	PriceResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "price_resolutions_total",
			Help: "Total number of cart line price resolutions",
		},
		[]string{"mode"},
	)

	// SalesTotal tracks finalized sales by payment method.
	SalesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_total",
			Help: "Total number of finalized sales",
		},
		[]string{"payment_method", "status"},
	)

	// SaleAmount tracks the amount distribution of finalized sales.
	SaleAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sale_amount",
			Help:    "Finalized sale totals",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
	)

	// CacheOperationsTotal tracks product cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPriceResolution records the effective mode of a price resolution.
func RecordPriceResolution(mode string) {
	PriceResolutionsTotal.WithLabelValues(mode).Inc()
}

// RecordSale records a finalized or cancelled sale.
func RecordSale(paymentMethod, status string, amount float64) {
	SalesTotal.WithLabelValues(paymentMethod, status).Inc()
	if status != "cancelada" {
		SaleAmount.Observe(amount)
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
