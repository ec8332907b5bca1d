package cache

import "github.com/varejo/pos-service/internal/domain/model"

// Cache defines the interface for product cache operations. Keys are
// product barcodes.
type Cache interface {
	Get(key string) (*model.Product, bool)
	Set(key string, value *model.Product)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}
