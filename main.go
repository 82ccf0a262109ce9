package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pcvolkmer/ags-example/app/config"
	"github.com/pcvolkmer/ags-example/app/controllers"
	"github.com/pcvolkmer/ags-example/app/services"
	"github.com/pcvolkmer/ags-example/internal/gazetteer"
	"github.com/pcvolkmer/ags-example/internal/geojson"
	"github.com/pcvolkmer/ags-example/internal/matcher"
	"github.com/pcvolkmer/ags-example/internal/search"
	"github.com/pcvolkmer/ags-example/routes"
	"github.com/pcvolkmer/ags-example/web"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Logger
	logger := initLogger()
	defer logger.Sync()

	if err := config.Load(viper.GetString("RANKING_CONFIG")); err != nil {
		logger.Fatal("Invalid ranking configuration", zap.Error(err))
	}

	logger.Info("Starting AGS lookup service",
		zap.Uint8("min_similarity", config.C.Ranking.MinSimilarity),
		zap.Int("max_results", config.C.Ranking.MaxResults))

	// 3. Dataset and boundaries
	store := initStore(logger)
	boundaries := initBoundaries(logger)

	// 4. Search components
	index := search.NewZipIndex(store)
	searcher := search.NewGazetteerSearcher(store, index, search.SearchConfig{
		MinSimilarity:       config.C.Ranking.MinSimilarity,
		MaxResults:          config.C.Ranking.MaxResults,
		StructuredThreshold: config.C.Ranking.StructuredThreshold,
	}, logger)
	suggester := matcher.NewSuggester(store, config.C.Suggest.MaxDistance)

	logger.Info("Zip index built",
		zap.Int("postal_codes", index.PostalCodeCount()),
		zap.Int("ambiguous", index.AmbiguousCount()))

	// 5. Query cache (memory, optionally backed by Redis)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cache := initCache(ctx, logger)
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("Error closing cache", zap.Error(err))
		}
	}()

	// 6. Services and controllers
	searchService := services.NewSearchService(searcher, cache, suggester, config.C.Suggest.Limit, logger)
	adminService := services.NewAdminService(store, index, cache, searchService, logger)

	searchController := controllers.NewSearchController(searchService, boundaries, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	// 7. Router
	if viper.GetString("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	tmpl, err := web.Templates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}
	router.SetHTMLTemplate(tmpl)
	routes.SetupAllRoutes(router, searchController, adminController, logger)

	// 8. Serve until interrupted
	addr := viper.GetString("LISTENER_ADDRESS")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server exited")
}

// loadConfig reads .env, app.yaml and the environment.
func loadConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Cannot read .env: %v", err)
	}

	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("LISTENER_ADDRESS", "[::]:3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("DATA_FILE", "")
	viper.SetDefault("GEOJSON_FILE", "")
	viper.SetDefault("RANKING_CONFIG", "config/ranking.yaml")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_CLEANUP_INTERVAL", time.Minute)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("Warning: Cannot read config file: %v", err)
		}
	}
}

// initLogger builds a production or development logger depending on APP_ENV.
func initLogger() *zap.Logger {
	var cfg zap.Config
	if viper.GetString("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	if lvl := viper.GetString("LOG_LEVEL"); lvl != "" {
		level, err := zapcore.ParseLevel(lvl)
		if err != nil {
			log.Printf("Warning: Unknown LOG_LEVEL %q", lvl)
		} else {
			cfg.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

func initStore(logger *zap.Logger) *gazetteer.Store {
	var (
		store *gazetteer.Store
		err   error
	)
	if path := viper.GetString("DATA_FILE"); path != "" {
		store, err = gazetteer.LoadFile(path, logger)
	} else {
		store, err = gazetteer.Default(logger)
	}
	if err != nil {
		logger.Fatal("Failed to load gazetteer", zap.Error(err))
	}
	return store
}

func initBoundaries(logger *zap.Logger) *geojson.FeatureCollection {
	var (
		fc  *geojson.FeatureCollection
		err error
	)
	if path := viper.GetString("GEOJSON_FILE"); path != "" {
		fc, err = geojson.LoadFile(path, logger)
	} else {
		fc, err = geojson.Default(logger)
	}
	if err != nil {
		logger.Fatal("Failed to load boundaries", zap.Error(err))
	}
	return fc
}

// initCache returns the in-memory cache, layered over Redis when REDIS_URL is set.
func initCache(ctx context.Context, logger *zap.Logger) services.IQueryCache {
	memory, err := services.NewCacheService(config.C.Cache.Capacity, config.C.Cache.TTL, config.C.Cache.IdleTTL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize query cache", zap.Error(err))
	}
	memory.StartCleanupWorker(ctx, viper.GetDuration("CACHE_CLEANUP_INTERVAL"))

	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		return memory
	}

	redisCache, err := services.NewRedisCacheService(redisURL, config.C.Cache.RedisPrefix, config.C.Cache.TTL, config.C.Cache.IdleTTL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using memory cache only", zap.Error(err))
		return memory
	}
	return services.NewHybridCacheService(memory, redisCache, logger)
}
