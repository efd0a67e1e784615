package wishlist

import (
	"encoding/json"
	stderrors "errors"

	"sjsage522/slickdealer/pkg/errors"
	"sjsage522/slickdealer/services/cache"
)

// CacheStore keeps the wishlist as a JSON array in a cache service without expiration
type CacheStore struct {
	cache cache.CacheService
	key   string
}

// NewCacheStore creates a store on top of a cache service
func NewCacheStore(cacheSvc cache.CacheService, key string) *CacheStore {
	return &CacheStore{cache: cacheSvc, key: key}
}

// Name returns the store name for logging
func (s *CacheStore) Name() string {
	return "memcache"
}

// Load reads and decodes the cached array
func (s *CacheStore) Load() ([]string, error) {
	data, err := s.cache.Get(s.key)
	if stderrors.Is(err, cache.ErrCacheMiss) {
		return nil, errors.NewStoreAbsent("memcache", s.key)
	}
	if err != nil {
		return nil, errors.NewStoreLoad("memcache", "failed to read wishlist", err)
	}

	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.NewStoreLoad("memcache", "cached wishlist is corrupt", err)
	}
	return items, nil
}

// Save overwrites the cached array
func (s *CacheStore) Save(items []string) error {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.NewStoreSave("memcache", "failed to encode wishlist", err)
	}
	if err := s.cache.Set(s.key, data, 0); err != nil {
		return errors.NewStoreSave("memcache", "failed to write wishlist", err)
	}
	return nil
}

// Close is a no-op; the cache service is owned by the caller
func (s *CacheStore) Close() error {
	return nil
}
