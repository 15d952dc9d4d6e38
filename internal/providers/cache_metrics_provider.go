package providers

import (
	"activitybot/internal/structures"
	"strings"
)

// MetricsCacheProvider counts hits and misses of the wrapped cache per
// query kind. Keys are "<query>" or "<query>:<argument>", so
// "profile:123" and "profile:456" share the "profile" series.
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func cacheQuery(key string) string {
	query, _, _ := strings.Cut(key, ":")
	return query
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheQuery(key))
	} else {
		c.metrics.IncCacheMisses(cacheQuery(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// Purge runs after cleanup rewrites history; every cached answer may be
// stale at that point.
func (c *MetricsCacheProvider) Purge() {
	c.inner.Purge()
}

// NewInstrumentedCacheProvider returns the plain noopCache when caching is
// disabled so that no phantom misses are counted.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, ok := inner.(*noopCache); ok {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
