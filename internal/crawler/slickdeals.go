package crawler

import (
	"net/http"
	"time"

	"sjsage522/slickdealer/logger"
	"sjsage522/slickdealer/services/cache"
)

// SlickCrawler fetches the deals listing page and extracts every titled link
type SlickCrawler struct {
	BaseCrawler
	BaseURL string
	log     *logger.Logger
}

// SlickConfig contains configuration for a SlickCrawler
type SlickConfig struct {
	URL       string
	BaseURL   string
	BlockTime time.Duration
	Client    *http.Client
}

// NewSlickCrawler creates a new deals page crawler
func NewSlickCrawler(cfg SlickConfig, cacheSvc cache.CacheService) *SlickCrawler {
	return &SlickCrawler{
		BaseCrawler: BaseCrawler{
			URL:       cfg.URL,
			CacheKey:  "slickdeals_rate_limited",
			CacheSvc:  cacheSvc,
			BlockTime: cfg.BlockTime,
			Client:    cfg.Client,
		},
		BaseURL: cfg.BaseURL,
		log:     logger.ForCrawler("slickdeals"),
	}
}

// GetName returns the crawler name
func (c *SlickCrawler) GetName() string {
	return "SlickCrawler"
}

// FetchDeals fetches the page and extracts the deal mapping.
// Nothing is returned on failure; there is no partial result.
func (c *SlickCrawler) FetchDeals() (*Deals, error) {
	start := time.Now()

	body, err := c.fetchWithCache()
	if err != nil {
		c.log.Error().Err(err).Str("url", c.URL).Msg("Failed to fetch deals page")
		return nil, err
	}

	deals, err := Extract(body, c.BaseURL)
	if err != nil {
		c.log.Error().Err(err).Str("url", c.URL).Msg("Failed to parse deals page")
		return nil, err
	}

	c.log.Info().
		Str("url", c.URL).
		Int("deals_count", deals.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched deals")

	return deals, nil
}
