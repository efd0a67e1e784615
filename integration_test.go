package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sjsage522/slickdealer/config"
	"sjsage522/slickdealer/helpers"
	"sjsage522/slickdealer/internal/crawler"
	"sjsage522/slickdealer/internal/render"
	"sjsage522/slickdealer/internal/session"
	"sjsage522/slickdealer/internal/wishlist"
	"sjsage522/slickdealer/pkg/errors"
	"sjsage522/slickdealer/services/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This is a simple test HTML that mimics the deals front page
const testHTML = `
<!DOCTYPE html>
<html>
<head>
    <title>Frontpage Deals</title>
</head>
<body>
    <nav><a href="/" title="">Home</a><a href="/forums">Forums</a></nav>
    <ul class="frontpage">
        <li><a title="Sony WH-1000XM5 Headphones" href="/f/1001-sony">Sony</a></li>
        <li><a title="Instant Pot Duo 6qt" href="/f/1002-instant-pot">Instant Pot</a></li>
        <li><a title="Sony WH-1000XM5 Headphones" href="/f/9999-dupe">dupe</a></li>
        <li><a title="LEGO Botanical Bouquet" href="/f/1003-lego">LEGO</a></li>
    </ul>
</body>
</html>
`

func newTestServer(t *testing.T, status int) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(testHTML))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEndToEnd(t *testing.T) {
	server := newTestServer(t, http.StatusOK)
	dir := t.TempDir()

	slick := crawler.NewSlickCrawler(crawler.SlickConfig{
		URL:       server.URL,
		BaseURL:   "http://www.slickdeals.net",
		BlockTime: time.Minute,
		Client:    helpers.NewClient(time.Second),
	}, cache.NewMemoryCache())

	deals, err := slick.FetchDeals()
	require.NoError(t, err)
	assert.Equal(t, []string{"Sony WH-1000XM5 Headphones", "Instant Pot Duo 6qt", "LEGO Botanical Bouquet"}, deals.Titles())

	listing := filepath.Join(dir, "slickdealer.html")
	require.NoError(t, render.WriteListing(listing, deals))
	html, err := os.ReadFile(listing)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(html), "<li>"))
	assert.Contains(t, string(html), "http://www.slickdeals.net/f/1001-sony")
	assert.NotContains(t, string(html), "9999-dupe")

	store := wishlist.NewFileStore(filepath.Join(dir, "wishlist.json"), "wishlist")
	var out bytes.Buffer
	s := session.New(session.Options{
		Deals:       deals,
		Wishlist:    wishlist.Open(store),
		In:          strings.NewReader("4\n1\nSony\ny\nlego\nn\n4\n2\n5\npot\nn\nq\n"),
		Out:         &out,
		ListingPath: listing,
	})
	require.NoError(t, s.Run())

	assert.Contains(t, out.String(), "Wishlist item sony found! --->Sony WH-1000XM5 Headphones: http://www.slickdeals.net/f/1001-sony")
	assert.Contains(t, out.String(), "Wishlist item lego found! --->LEGO Botanical Bouquet: http://www.slickdeals.net/f/1003-lego")
	assert.Contains(t, out.String(), "Instant Pot Duo 6qt: http://www.slickdeals.net/f/1002-instant-pot")

	// The wishlist survives into the next run
	reopened := wishlist.Open(store)
	assert.Equal(t, []string{"lego", "sony"}, reopened.Items())
}

func TestFetchFailureAbortsRun(t *testing.T) {
	server := newTestServer(t, http.StatusServiceUnavailable)
	dir := t.TempDir()

	cfg := config.LoadConfig()
	cfg.DealsURL = server.URL
	cfg.ListingFile = filepath.Join(dir, "slickdealer.html")
	cfg.WishlistPath = filepath.Join(dir, "wishlist.json")
	cfg.OpenBrowser = false

	services := initializeServices(context.Background(), cfg)
	defer services.Cleanup()

	slick := crawler.NewSlickCrawler(crawler.SlickConfig{
		URL:     cfg.DealsURL,
		BaseURL: cfg.DealsBaseURL,
		Client:  helpers.NewClient(time.Second),
	}, services.Cache)

	err := runInteractive(cfg, services, slick)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFetch))

	// No listing is written when the fetch fails
	_, statErr := os.Stat(cfg.ListingFile)
	assert.True(t, os.IsNotExist(statErr))
}

func TestInitializeServicesBackends(t *testing.T) {
	cfg := config.LoadConfig()
	cfg.WishlistPath = filepath.Join(t.TempDir(), "wishlist.json")

	services := initializeServices(context.Background(), cfg)
	assert.IsType(t, &cache.MemoryCache{}, services.Cache)
	assert.IsType(t, &wishlist.FileStore{}, services.Store)
	assert.Nil(t, services.Publisher)
	services.Cleanup()
	services.Cleanup()

	cfg.WishlistBackend = config.BackendMemcache
	cfg.MemcacheAddr = "127.0.0.1:1"
	services = initializeServices(context.Background(), cfg)
	assert.IsType(t, &cache.MemcacheService{}, services.Cache)
	assert.IsType(t, &wishlist.CacheStore{}, services.Store)
	services.Cleanup()
}
