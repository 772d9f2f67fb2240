package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/zharashanus/push-analytic/internal/cache"
	"github.com/zharashanus/push-analytic/internal/config"
	"github.com/zharashanus/push-analytic/internal/db"
	"github.com/zharashanus/push-analytic/internal/messaging"
	"github.com/zharashanus/push-analytic/internal/repository"
	"github.com/zharashanus/push-analytic/internal/server"
	"github.com/zharashanus/push-analytic/internal/service"
)

func main() {
	log.Println("Starting Push Analytics Service...")

	// Load configuration
	cfg := config.Load()
	log.Printf("Configuration loaded: port=%s, analysis_period=%dd", cfg.Port, cfg.Analysis.PeriodDays)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional PostgreSQL benefit store
	var store service.BenefitStore
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer pool.Close()

		repo := repository.NewBenefitRepository(pool.Pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		store = repo
		log.Println("Successfully connected to PostgreSQL")
	} else {
		log.Println("DATABASE_URL not set, recommendation persistence disabled")
	}

	// Optional RabbitMQ push publisher
	var publisher service.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rabbit, err := messaging.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer rabbit.Close()
		publisher = rabbit
	} else {
		log.Println("RABBITMQ_URL not set, push event publishing disabled")
	}

	// Response cache: Redis when configured, in-process otherwise
	var responseCache service.ResponseCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		responseCache = redisCache
		log.Println("Successfully connected to Redis")
	} else {
		responseCache = cache.NewMemory()
		log.Println("REDIS_ADDR not set, using in-process response cache")
	}

	analyzer := service.NewAnalyzer(cfg.Analysis.PeriodDays, store, publisher, responseCache, cfg.Redis.CacheTTL)
	limiter := server.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(analyzer, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP server listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			cancel() // Signal shutdown on error
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v, initiating shutdown...", sig)
	case <-ctx.Done():
		log.Println("Context cancelled, initiating shutdown...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	cancel()
	wg.Wait()

	log.Println("Push Analytics Service stopped gracefully")
}
