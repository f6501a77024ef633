package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ad-tracker/ytsummary-go/internal/config"
	"github.com/ad-tracker/ytsummary-go/internal/db"
	"github.com/ad-tracker/ytsummary-go/internal/db/repository"
	"github.com/ad-tracker/ytsummary-go/internal/handler"
	"github.com/ad-tracker/ytsummary-go/internal/middleware"
	"github.com/ad-tracker/ytsummary-go/internal/service"
	"github.com/ad-tracker/ytsummary-go/internal/service/gemini"
	"github.com/ad-tracker/ytsummary-go/internal/service/quota"
	"github.com/ad-tracker/ytsummary-go/internal/service/youtube"
	"github.com/ad-tracker/ytsummary-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	pool, err := db.NewPool(ctx, dbConfig(&cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close(pool)

	logger.Log.Info("database connection established",
		zap.Int32("max_conns", pool.Config().MaxConns),
	)

	linkRepo := repository.NewVideoLinkRepository(pool)
	relationRepo := repository.NewVideoLinkSummaryRepository(pool)
	quotaRepo := repository.NewQuotaRepository(pool)

	quotaManager := quota.NewManager(quotaRepo, cfg.YouTube.DailyQuota, cfg.YouTube.QuotaThreshold)

	// YouTube API client (optional - only if API key is provided)
	var fetcher service.VideoDurationFetcher
	if cfg.YouTube.APIKey != "" {
		ytClient, err := youtube.NewClient(ctx, youtube.Config{
			APIKey:   cfg.YouTube.APIKey,
			Endpoint: cfg.YouTube.Endpoint,
			Timeout:  cfg.YouTube.Timeout,
		})
		if err != nil {
			logger.Log.Warn("failed to initialize YouTube API client, durations will be unknown", zap.Error(err))
		} else {
			fetcher = ytClient
			logger.Log.Info("YouTube API client initialized")
		}
	} else {
		logger.Log.Info("youtube.apikey not configured, durations will be unknown")
	}

	// Redis duration cache (optional)
	var durationCache *service.RedisDurationCache
	var cache service.DurationCache
	var cachePinger handler.Pinger
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("invalid redis.url: %w", err)
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()

		durationCache = service.NewRedisDurationCache(redisClient, cfg.Redis.DurationTTL)
		if err := durationCache.Ping(ctx); err != nil {
			logger.Log.Warn("redis not reachable at startup, lookups will fall through to the API", zap.Error(err))
		}
		cache = durationCache
		cachePinger = durationCache
		logger.Log.Info("duration cache enabled", zap.Duration("ttl", cfg.Redis.DurationTTL))
	}

	// Gemini summarizer; without a key every summary is the placeholder
	var generator service.TextGenerator
	if cfg.Gemini.APIKey != "" {
		generator = gemini.NewClient(gemini.Config{
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			APIKey:  cfg.Gemini.APIKey,
			Timeout: cfg.Gemini.Timeout,
		})
		logger.Log.Info("Gemini client initialized", zap.String("model", cfg.Gemini.Model))
	} else {
		logger.Log.Warn("gemini.apikey not configured, summaries will be placeholders")
	}

	resolver := service.NewDurationResolver(fetcher, quotaManager, cache)
	orchestrator := service.NewOrchestrator(pool, service.NewSummarizer(generator))
	ledger := service.NewLedger(linkRepo, resolver, orchestrator)

	// RabbitMQ publisher (optional)
	var brokerHealth handler.HealthChecker
	if cfg.RabbitMQ.Enabled {
		publisher, err := service.NewMessagePublisher(&cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ publisher: %w", err)
		}
		defer publisher.Close()

		ledger.SetPublisher(publisher)
		brokerHealth = publisher
		logger.Log.Info("submission events enabled", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	var quotaHandler *handler.QuotaHandler
	if fetcher != nil {
		quotaHandler = handler.NewQuotaHandler(quotaManager)
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.Handlers{
		Links:     handler.NewLinkHandler(ledger, service.NewHistoryService(linkRepo)),
		Favorites: handler.NewFavoriteHandler(service.NewFavoriteToggler(relationRepo)),
		Quota:     quotaHandler,
		Health:    handler.NewHealthHandler(pool, cachePinger, brokerHealth),
		Identity: middleware.NewIdentity(middleware.IdentityConfig{
			Secret:   cfg.Auth.JWTSecret,
			Audience: cfg.Auth.Audience,
			Issuer:   cfg.Auth.Issuer,
		}),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			return err
		}

		logger.Log.Info("server stopped gracefully")
	}

	return nil
}

func dbConfig(c *config.DatabaseConfig) *db.Config {
	return &db.Config{
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Database:        c.Name,
		SSLMode:         c.SSLMode,
		MaxConns:        int32(c.MaxConnections),
		MinConns:        int32(c.MinConnections),
		MaxConnLifetime: c.MaxLifetime,
		MaxConnIdleTime: c.MaxIdleTime,
	}
}
