package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sjsage522/slickdealer/config"
	"sjsage522/slickdealer/helpers"
	"sjsage522/slickdealer/internal/crawler"
	"sjsage522/slickdealer/internal/render"
	"sjsage522/slickdealer/internal/session"
	"sjsage522/slickdealer/internal/wishlist"
	"sjsage522/slickdealer/logger"
	"sjsage522/slickdealer/services/cache"
	"sjsage522/slickdealer/services/publisher"
	"sjsage522/slickdealer/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("mode", cfg.Mode).
		Str("wishlist_backend", cfg.WishlistBackend).
		Msg("Starting application")

	// Watch mode shuts down on SIGINT/SIGTERM; the interactive menu keeps the default Ctrl-C behaviour
	ctx := context.Background()
	if cfg.Mode == config.ModeWatch {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	services := initializeServices(ctx, cfg)
	defer services.Cleanup()

	slick := crawler.NewSlickCrawler(crawler.SlickConfig{
		URL:       cfg.DealsURL,
		BaseURL:   cfg.DealsBaseURL,
		BlockTime: cfg.RateLimitBlock,
		Client:    helpers.NewClient(cfg.FetchTimeout),
	}, services.Cache)

	var err error
	if cfg.Mode == config.ModeWatch {
		err = runWatcher(ctx, cfg, services, slick)
	} else {
		err = runInteractive(cfg, services, slick)
	}
	if err != nil {
		services.Cleanup()
		log.Fatal().Err(err).Msg("Exiting")
	}
}

// runInteractive fetches the deals once and hands them to the console session
func runInteractive(cfg *config.Config, services *Services, slick *crawler.SlickCrawler) error {
	log := logger.ForComponent("main")

	deals, err := slick.FetchDeals()
	if err != nil {
		return err
	}

	if err := render.WriteListing(cfg.ListingFile, deals); err != nil {
		log.Error().Err(err).Msg("Failed to write deals listing")
	} else {
		log.Info().Str("path", cfg.ListingFile).Msg("Deals listing written")
	}

	var opener render.Opener
	if cfg.OpenBrowser {
		opener = render.OpenInBrowser
	}

	s := session.New(session.Options{
		Deals:       deals,
		Wishlist:    wishlist.Open(services.Store),
		In:          os.Stdin,
		Out:         os.Stdout,
		ListingPath: cfg.ListingFile,
		Open:        opener,
		Publisher:   services.Publisher,
	})
	return s.Run()
}

// runWatcher publishes wishlist alerts every interval until a shutdown signal arrives
func runWatcher(ctx context.Context, cfg *config.Config, services *Services, slick *crawler.SlickCrawler) error {
	w := worker.NewWatcher(
		ctx,
		slick,
		services.Store,
		services.Publisher,
		services.Cache,
		cfg.WatchInterval,
		cfg.AlertDedupe,
	)

	log := logger.ForComponent("main")
	log.Info().Dur("interval", cfg.WatchInterval).Msg("Starting wishlist watcher")
	err := w.Start()
	log.Info().Msg("Shutting down gracefully...")
	return err
}

// Services holds all the initialized services
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Store     wishlist.Store
}

// Cleanup cleans up all services; it is safe to call more than once
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
		s.Publisher = nil
	}
	if s.Store != nil {
		s.Store.Close()
		s.Store = nil
	}
}

// initializeServices initializes all required services
func initializeServices(ctx context.Context, cfg *config.Config) *Services {
	log := logger.ForComponent("main")
	services := &Services{}

	// Initialize cache service
	if cfg.MemcacheAddr != "" {
		memcacheService := cache.NewMemcacheService(cfg.MemcacheAddr)
		if err := memcacheService.Ping(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.MemcacheAddr).Msg("Memcache is not reachable")
		} else {
			log.Info().Str("addr", cfg.MemcacheAddr).Msg("Connected to Memcache")
		}
		services.Cache = memcacheService
	} else {
		services.Cache = cache.NewMemoryCache()
	}

	// Initialize wishlist store
	switch cfg.WishlistBackend {
	case config.BackendRedis:
		services.Store = wishlist.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.WishlistKey)
	case config.BackendMemcache:
		services.Store = wishlist.NewCacheStore(services.Cache, cfg.WishlistKey)
	default:
		services.Store = wishlist.NewFileStore(cfg.WishlistPath, cfg.WishlistKey)
	}

	// Initialize publisher
	if cfg.AlertsEnabled {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamMaxLength,
		)
		if err := redisPublisher.Ping(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis is not reachable, alerts may be lost")
		} else {
			log.Info().
				Str("addr", cfg.RedisAddr).
				Int("db", cfg.RedisDB).
				Str("stream", cfg.RedisStream).
				Msg("Connected to Redis")
		}
		services.Publisher = redisPublisher
	}

	return services
}
