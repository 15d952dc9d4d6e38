package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type cacheMetricsTestMetrics struct {
	hits    int
	misses  int
	queries []string
}

func (m *cacheMetricsTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *cacheMetricsTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *cacheMetricsTestMetrics) IncCacheHits(query string) {
	m.hits++
	m.queries = append(m.queries, query)
}
func (m *cacheMetricsTestMetrics) IncCacheMisses(query string) {
	m.misses++
	m.queries = append(m.queries, query)
}
func (m *cacheMetricsTestMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *cacheMetricsTestMetrics) IncEventsTotal(_ string)                    {}
func (m *cacheMetricsTestMetrics) IncReportsTotal(_ string, _ bool)           {}
func (m *cacheMetricsTestMetrics) SetTrackedTotals(_, _, _ int)               {}

type cacheMetricsTestInner struct {
	data map[string][]byte
}

func (c *cacheMetricsTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *cacheMetricsTestInner) Set(key string, value []byte) {
	c.data[key] = value
}
func (c *cacheMetricsTestInner) Purge() {
	c.data = map[string][]byte{}
}

func TestMetricsCacheProvider_Hit(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"key1": []byte("val1")}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("val1"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestMetricsCacheProvider_Miss(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestMetricsCacheProvider_SetDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Set("key2", []byte("val2"))

	val, ok := inner.Get("key2")
	assert.True(t, ok)
	assert.Equal(t, []byte("val2"), val)
}

func TestMetricsCacheProvider_MultipleOperations(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"a": []byte("1")}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("a") // hit
	cache.Get("b") // miss
	cache.Get("a") // hit
	cache.Get("c") // miss

	assert.Equal(t, 2, metrics.hits)
	assert.Equal(t, 2, metrics.misses)
}

func TestMetricsCacheProvider_PurgeDelegates(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"a": []byte("1")}}
	cache := &MetricsCacheProvider{inner: inner, metrics: &cacheMetricsTestMetrics{}}

	cache.Purge()

	_, ok := inner.Get("a")
	assert.False(t, ok)
}

func TestMetricsCacheProvider_LabelsByQuery(t *testing.T) {
	inner := &cacheMetricsTestInner{data: map[string][]byte{"stats": []byte("{}")}}
	metrics := &cacheMetricsTestMetrics{}
	cache := &MetricsCacheProvider{inner: inner, metrics: metrics}

	cache.Get("stats")
	cache.Get("profile:123456789")
	cache.Get("leaderboard:10")

	assert.Equal(t, []string{"stats", "profile", "leaderboard"}, metrics.queries)
}

func TestCacheQuery(t *testing.T) {
	assert.Equal(t, "stats", cacheQuery("stats"))
	assert.Equal(t, "activity", cacheQuery("activity:U1"))
	assert.Equal(t, "leaderboard", cacheQuery("leaderboard:25"))
}
