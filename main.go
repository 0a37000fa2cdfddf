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

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"investment-calculator/config"
	"investment-calculator/events"
	httpLayer "investment-calculator/http"
	"investment-calculator/logging"
	"investment-calculator/repository"
	"investment-calculator/service"
)

func main() {
	cfgPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var projectionRepo repository.ProjectionRepository
	if cfg.Database.SQLitePath != "" {
		sqliteRepo, err := repository.NewSQLiteProjectionRepository(cfg.Database.SQLitePath)
		if err != nil {
			logger.Fatal("init sqlite repository", zap.String("path", cfg.Database.SQLitePath), zap.Error(err))
		}
		defer sqliteRepo.Close()
		projectionRepo = sqliteRepo
		logger.Info("projection log stored in sqlite", zap.String("path", cfg.Database.SQLitePath))
	} else {
		projectionRepo = repository.NewProjectionRepositoryMemory()
	}

	scheduler := cron.New()

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		redisCache, err := repository.NewRedisCache(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		} else {
			defer redisCache.Close()
			cache = redisCache
			logger.Info("using redis cache", zap.String("addr", cfg.Cache.RedisAddr))
		}
	}
	if cache == nil {
		memoryCache := repository.NewMemoryCache(cfg.Cache.TTL)
		if err := memoryCache.ScheduleSweep(scheduler, cfg.Cache.SweepCron); err != nil {
			logger.Fatal("schedule cache sweep", zap.Error(err))
		}
		cache = memoryCache
	}

	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.AMQP.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey, logger)
		if err != nil {
			logger.Warn("amqp unavailable, projection events disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
		}
	}
	defer publisher.Close()

	formatter, err := service.NewFormatter(cfg.Formatter.Locale, cfg.Formatter.Currency)
	if err != nil {
		logger.Fatal("init formatter", zap.Error(err))
	}

	projectionService := service.NewProjectionService(projectionRepo, cache, publisher, logger)
	projectionHandler := httpLayer.NewProjectionHandler(projectionService, formatter, logger)

	scenarioService := service.NewScenarioService(cfg.Scenarios.Workers)
	defer scenarioService.Stop()
	scenarioHandler := httpLayer.NewScenarioHandler(scenarioService, logger)

	aiService := service.NewAIService(cfg.AI.APIKey, cfg.AI.APIURL, cfg.AI.Model, logger)
	goalService := service.NewGoalService(projectionService, aiService)
	goalHandler := httpLayer.NewGoalHandler(goalService, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	if err := rateLimiter.ScheduleCleanup(scheduler, cfg.RateLimit.CleanupCron); err != nil {
		logger.Fatal("schedule rate limiter cleanup", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(rateLimiter, projectionHandler, scenarioHandler, goalHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("investment calculator listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
