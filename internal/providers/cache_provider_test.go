package providers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fishdata/internal/structures"
)

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, 5*time.Minute), nopLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, 5*time.Minute), nopLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_EnabledReturnsCacheProvider(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Minute), nopLogger{})
	assert.IsType(t, &CacheProvider{}, c)
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Minute), nopLogger{})

	c.Set("key1", []byte("value1"))
	val, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, []byte("value1"), val)
}

func TestCacheProvider_GetMissing(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Minute), nopLogger{})
	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestCacheProvider_NoopSetIsSilent(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, time.Minute), nopLogger{})
	c.Set("key", []byte("val"))
	_, ok := c.Get("key")
	assert.False(t, ok)
}

func TestUnsafeStringToBytes(t *testing.T) {
	assert.Nil(t, unsafeStringToBytes(""))
	assert.Equal(t, []byte("schema:/tmp/a.parquet"), unsafeStringToBytes("schema:/tmp/a.parquet"))
}
