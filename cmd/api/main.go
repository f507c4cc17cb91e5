package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"terreins-inventory-api/internal/ai"
	"terreins-inventory-api/internal/cache"
	"terreins-inventory-api/internal/config"
	"terreins-inventory-api/internal/handler"
	"terreins-inventory-api/internal/repository"
	"terreins-inventory-api/internal/router"
	"terreins-inventory-api/internal/seed"
	"terreins-inventory-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.MustLoad()

	log.Printf("Starting %s v%s (%s)", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	partRepo, err := newPartRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize part storage: %v", err)
	}
	defer partRepo.Close()

	reportCache := newReportCache(cfg)
	defer reportCache.Close()

	inventoryService := service.NewInventoryService(partRepo)
	reportService := service.NewReportService(inventoryService, reportCache, cfg.Cache.TTL)

	if cfg.App.SeedSampleData {
		seeded, err := inventoryService.Seed(context.Background(), seed.SampleParts(time.Now()))
		if err != nil {
			log.Printf("WARNING: seeding sample data failed: %v", err)
		} else if seeded > 0 {
			log.Printf("Seeded %d sample parts", seeded)
		}
	}

	var aiHandler *handler.AIHandler
	if cfg.AI.Enabled() {
		aiService, err := ai.New(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Printf("WARNING: AI assist disabled, client init failed: %v", err)
		} else {
			defer aiService.Close()
			aiHandler = handler.NewAIHandler(aiService)
			log.Printf("AI assist enabled (model: %s)", cfg.AI.Model)
		}
	} else {
		log.Println("AI assist disabled (GEMINI_API_KEY not set)")
	}

	r := router.New(router.Config{
		Handler:       handler.New(cfg.App.Name, cfg.App.Version),
		PartHandler:   handler.NewPartHandler(inventoryService),
		ReportHandler: handler.NewReportHandler(reportService),
		AIHandler:     aiHandler,
		AdminHandler:  handler.NewAdminHandler(partRepo, inventoryService, cfg.Storage.Type, cfg.Cache.Type),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newPartRepository selects the part storage backend from configuration.
func newPartRepository(cfg *config.Config) (repository.PartRepository, error) {
	switch cfg.Storage.Type {
	case "sqlite":
		log.Printf("Using SQLite part storage at %s", cfg.Storage.Path)
		return repository.NewSQLitePartRepository(cfg.Storage.Path)
	case "mysql":
		log.Printf("Using MySQL part storage at %s:%d/%s", cfg.Storage.Host, cfg.Storage.Port, cfg.Storage.Name)
		return repository.NewMySQLPartRepository(cfg.Storage.MySQLDSN())
	case "memory":
		log.Println("Using in-memory part storage")
		return repository.NewMemoryPartRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %q", cfg.Storage.Type)
	}
}

// newReportCache selects the report cache backend from configuration,
// falling back to the in-memory cache when Redis is unreachable.
func newReportCache(cfg *config.Config) cache.Cache {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err == nil {
			log.Printf("Using Redis report cache at %s", cfg.Cache.RedisAddress())
			return redisCache
		}
		log.Printf("WARNING: Redis unavailable (%v), falling back to in-memory cache", err)
	}
	log.Println("Using in-memory report cache")
	return cache.NewMemoryCache()
}
