package rest

import (
	"time"

	"github.com/coocood/freecache"
)

// ResponseCache stores encoded GET responses.
type ResponseCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Clear()
}

type FreeCache struct {
	cache *freecache.Cache
	ttl   int
}

// NewResponseCache returns a freecache-backed cache of sizeMB megabytes, or a
// no-op cache when sizeMB is not positive.
func NewResponseCache(sizeMB int, ttl time.Duration) ResponseCache {
	if sizeMB <= 0 {
		return noopCache{}
	}
	return &FreeCache{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   max(int(ttl.Seconds()), 1),
	}
}

func (c *FreeCache) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *FreeCache) Set(key string, value []byte) {
	_ = c.cache.Set([]byte(key), value, c.ttl)
}

func (c *FreeCache) Clear() {
	c.cache.Clear()
}

type noopCache struct{}

func (noopCache) Get(string) ([]byte, bool) { return nil, false }
func (noopCache) Set(string, []byte)        {}
func (noopCache) Clear()                    {}
