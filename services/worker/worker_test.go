package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"sjsage522/slickdealer/internal/crawler"
	"sjsage522/slickdealer/internal/matcher"
	"sjsage522/slickdealer/internal/wishlist"
	"sjsage522/slickdealer/pkg/errors"
	"sjsage522/slickdealer/services/cache"
	"sjsage522/slickdealer/services/publisher"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCrawler implements the crawler.Crawler interface for testing
type MockCrawler struct {
	deals    *crawler.Deals
	fetchErr error
	calls    int
}

// Ensure MockCrawler implements crawler.Crawler
var _ crawler.Crawler = (*MockCrawler)(nil)

func (m *MockCrawler) FetchDeals() (*crawler.Deals, error) {
	m.calls++
	return m.deals, m.fetchErr
}

func (m *MockCrawler) GetName() string {
	return "MockCrawler"
}

// MockPublisher implements the publisher.Publisher interface for testing
type MockPublisher struct {
	messages [][]byte
	trims    int
}

// Ensure MockPublisher implements publisher.Publisher
var _ publisher.Publisher = (*MockPublisher)(nil)

func (m *MockPublisher) Publish(key string, message []byte) error {
	m.messages = append(m.messages, append([]byte(nil), message...))
	return nil
}

func (m *MockPublisher) TrimStreams() error {
	m.trims++
	return nil
}

func (m *MockPublisher) Close() error {
	return nil
}

func setup(t *testing.T, terms ...string) (*MockCrawler, *MockPublisher, *Watcher) {
	deals := crawler.NewDeals()
	deals.Add("Nintendo Switch OLED", "http://example.com/f/1")
	deals.Add("LEGO Millennium Falcon", "http://example.com/f/2")
	deals.Add("Switch Pro Controller", "http://example.com/f/3")

	mc := cache.NewMemoryCache()
	store := wishlist.NewCacheStore(mc, "wishlist")
	if terms != nil {
		require.NoError(t, store.Save(terms))
	}

	c := &MockCrawler{deals: deals}
	pub := &MockPublisher{}
	w := NewWatcher(context.Background(), c, store, pub, mc, time.Minute, time.Hour)
	return c, pub, w
}

func TestRunOncePublishesMatches(t *testing.T) {
	_, pub, w := setup(t, "switch")

	published, err := w.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 2, published)
	require.Len(t, pub.messages, 2)
	assert.Equal(t, 1, pub.trims)

	var alert publisher.Alert
	require.NoError(t, json.Unmarshal(pub.messages[0], &alert))
	assert.Equal(t, "switch", alert.Term)
	assert.Equal(t, "Nintendo Switch OLED", alert.Title)
	assert.Equal(t, "http://example.com/f/1", alert.URL)
}

func TestRunOnceDeduplicates(t *testing.T) {
	_, pub, w := setup(t, "switch")

	_, err := w.RunOnce()
	require.NoError(t, err)

	published, err := w.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, published)
	assert.Len(t, pub.messages, 2)
	assert.Equal(t, 1, pub.trims)
}

func TestRunOnceEmptyWishlist(t *testing.T) {
	_, pub, w := setup(t)

	published, err := w.RunOnce()
	require.NoError(t, err)
	assert.Equal(t, 0, published)
	assert.Empty(t, pub.messages)
}

func TestRunOnceFetchError(t *testing.T) {
	c, pub, w := setup(t, "switch")
	c.fetchErr = errors.NewFetch("mock", "unexpected status code: 503", nil)

	_, err := w.RunOnce()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFetch))
	assert.Empty(t, pub.messages)
}

func TestStartStopsOnCancel(t *testing.T) {
	c, _, w := setup(t, "lego")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.ctx = ctx

	done := make(chan error, 1)
	go func() { done <- w.Start() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.Equal(t, 1, c.calls)
}

func TestAlertKey(t *testing.T) {
	a := alertKey(matcher.Match{Term: "tv", Title: "TV", URL: "http://example.com/1"})
	b := alertKey(matcher.Match{Term: "tv", Title: "Other title", URL: "http://example.com/1"})
	c := alertKey(matcher.Match{Term: "oled", Title: "TV", URL: "http://example.com/1"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len("alert:")+16)
}
