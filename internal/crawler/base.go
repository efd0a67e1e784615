package crawler

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"sjsage522/slickdealer/helpers"
	"sjsage522/slickdealer/pkg/errors"
	"sjsage522/slickdealer/services/cache"
)

// BaseCrawler provides the fetch path shared by crawlers: a rate-limit block kept
// in the cache service in front of helpers.FetchPage
type BaseCrawler struct {
	URL       string
	CacheKey  string
	CacheSvc  cache.CacheService
	BlockTime time.Duration
	Client    *http.Client
}

// fetchWithCache fetches the page unless a previous rate-limit response is still blocking it
func (c *BaseCrawler) fetchWithCache() (io.Reader, error) {
	if c.CacheSvc != nil && c.CacheKey != "" {
		if _, err := c.CacheSvc.Get(c.CacheKey); err == nil {
			return nil, errors.NewFetch(c.URL, "skipping request while rate limited",
				errors.NewRateLimit(c.URL, c.BlockTime))
		}
	}

	client := c.Client
	if client == nil {
		client = helpers.NewClient(10 * time.Second)
	}

	body, err := helpers.FetchPage(client, c.URL)
	if err != nil {
		if c.CacheSvc != nil && c.CacheKey != "" && c.BlockTime > 0 && errors.IsType(err, errors.ErrorTypeRateLimit) {
			blocked := []byte(fmt.Sprintf("%d", c.BlockTime/time.Second))
			if cacheErr := c.CacheSvc.Set(c.CacheKey, blocked, c.BlockTime); cacheErr != nil {
				return nil, fmt.Errorf("%w (failed to record rate limit: %v)", err, cacheErr)
			}
		}
		return nil, err
	}

	return body, nil
}
