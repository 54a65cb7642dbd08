package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/config"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/events"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/handlers"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories/postgres"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/services"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
	"github.com/hoojinguyen/tech-interview-system-sub000/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(slogLogger)
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured). Production treats an unreachable
	// cache as a startup error; development degrades to cache misses.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			if cfg.IsProduction() {
				log.Fatalf("Failed to initialize Redis: %v", err)
			}
			logger.Warn("Redis unavailable, running without cache", "error", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	repo := repoManager.GetRepository()

	cacheManager := cache.NewCacheManager(redisClient)

	// Initialize event publisher
	var publisher events.EventPublisher = events.NewNoopEventPublisher()
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, slogLogger)
		if err != nil {
			if cfg.IsProduction() {
				log.Fatalf("Failed to initialize Kafka publisher: %v", err)
			}
			logger.Warn("Kafka unavailable, events will be dropped", "error", err)
		} else {
			publisher = kafkaPublisher
		}
	}

	// Initialize services
	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		Repository:     repo,
		CacheManager:   cacheManager,
		Publisher:      publisher,
		Logger:         slogLogger,
		SessionTimeout: cfg.SessionTimeout,
	})

	// Initialize handlers and routes
	handlerManager := handlers.NewHandlerManager(cfg, serviceManager, repo, cacheManager, logger)
	router := handlerManager.SetupRoutes()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Background sweep for stale interview sessions
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runCleanupLoop(sweepCtx, serviceManager.MockInterview(), cfg.CleanupInterval, logger)

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

// runCleanupLoop periodically flips stale active interviews to
// abandoned so sessions never stay open forever.
func runCleanupLoop(ctx context.Context, svc services.MockInterviewService, interval time.Duration, logger utils.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if _, err := svc.CleanupStale(sweepCtx); err != nil {
				logger.Error("Stale interview sweep failed", "error", err)
			}
			cancel()
		}
	}
}
