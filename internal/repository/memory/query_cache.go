package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// QueryEmbeddingCache keeps recently generated query vectors in memory so
// repeated suggestion queries skip the embedding round trip. Keys include the
// model name so a provider switch never serves stale vectors.
type QueryEmbeddingCache struct {
	cache *cache.Cache
}

func NewQueryEmbeddingCache() *QueryEmbeddingCache {
	// Default expiration of 15 minutes, purge every 5
	c := cache.New(15*time.Minute, 5*time.Minute)
	return &QueryEmbeddingCache{
		cache: c,
	}
}

func (r *QueryEmbeddingCache) Save(key string, values []float32) {
	r.cache.Set(key, values, cache.DefaultExpiration)
}

func (r *QueryEmbeddingCache) Get(key string) ([]float32, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]float32), true
	}
	return nil, false
}
