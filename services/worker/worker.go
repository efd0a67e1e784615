package worker

import (
	"context"
	"fmt"
	"time"

	"sjsage522/slickdealer/helpers"
	"sjsage522/slickdealer/internal/crawler"
	"sjsage522/slickdealer/internal/matcher"
	"sjsage522/slickdealer/internal/wishlist"
	"sjsage522/slickdealer/logger"
	"sjsage522/slickdealer/services/cache"
	"sjsage522/slickdealer/services/publisher"

	"github.com/cespare/xxhash/v2"
)

// Watcher periodically matches the current deals against the stored wishlist
// and publishes an alert for every hit it has not announced recently
type Watcher struct {
	ctx       context.Context
	crawler   crawler.Crawler
	store     wishlist.Store
	publisher publisher.Publisher
	cache     cache.CacheService
	interval  time.Duration
	dedupe    time.Duration
	log       *logger.Logger
}

// NewWatcher creates a new watcher
func NewWatcher(
	ctx context.Context,
	c crawler.Crawler,
	store wishlist.Store,
	pub publisher.Publisher,
	cacheSvc cache.CacheService,
	interval time.Duration,
	dedupe time.Duration,
) *Watcher {
	return &Watcher{
		ctx:       ctx,
		crawler:   c,
		store:     store,
		publisher: pub,
		cache:     cacheSvc,
		interval:  interval,
		dedupe:    dedupe,
		log:       logger.ForComponent("watcher"),
	}
}

// Start runs a cycle immediately and then once per interval until the context is cancelled
func (w *Watcher) Start() error {
	for {
		start := time.Now()
		if _, err := w.RunOnce(); err != nil {
			w.log.Error().Err(err).Msg("Watch cycle failed")
		}
		w.log.Debug().Dur("elapsed", time.Since(start)).Msg("Watch cycle finished")

		select {
		case <-w.ctx.Done():
			return nil
		case <-time.After(w.interval):
		}
	}
}

// RunOnce fetches the deals, matches them against the wishlist and publishes new hits.
// It returns the number of alerts published.
func (w *Watcher) RunOnce() (int, error) {
	deals, err := w.crawler.FetchDeals()
	if err != nil {
		return 0, err
	}

	terms := wishlist.Load(w.store, w.log)
	if len(terms) == 0 {
		w.log.Info().Msg("Wishlist is empty, nothing to watch")
		return 0, nil
	}

	matches := matcher.FindMatches(deals, terms)
	published := 0
	for _, m := range matches {
		key := alertKey(m)
		if _, err := w.cache.Get(key); err == nil {
			continue
		}

		alert := publisher.NewAlert(m.Term, helpers.NormalizeTitle(m.Title), m.URL)
		if err := publisher.PublishAlert(w.publisher, alert); err != nil {
			w.log.Error().Err(err).Str("term", m.Term).Str("url", m.URL).Msg("Failed to publish alert")
			continue
		}
		published++

		if err := w.cache.Set(key, []byte(alert.ID), w.dedupe); err != nil {
			w.log.Warn().Err(err).Str("key", key).Msg("Failed to record published alert")
		}
	}

	if published > 0 {
		if err := w.publisher.TrimStreams(); err != nil {
			w.log.Warn().Err(err).Msg("Failed to trim alert stream")
		}
	}

	w.log.Info().
		Int("deals", deals.Len()).
		Int("terms", len(terms)).
		Int("matches", len(matches)).
		Int("published", published).
		Msg("Watch cycle complete")

	return published, nil
}

// alertKey identifies a (term, deal) hit for deduplication
func alertKey(m matcher.Match) string {
	return fmt.Sprintf("alert:%016x", xxhash.Sum64String(m.Term+"|"+m.URL))
}
