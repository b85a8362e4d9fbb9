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

	"github.com/catalogue-dash/service-catalogue/config"
	"github.com/catalogue-dash/service-catalogue/internal/bootstrap"
	"github.com/catalogue-dash/service-catalogue/internal/catalogue"
	"github.com/catalogue-dash/service-catalogue/internal/dependencies/repository"
	"github.com/catalogue-dash/service-catalogue/internal/dependencies/service"
	"github.com/catalogue-dash/service-catalogue/internal/logger"
	"github.com/catalogue-dash/service-catalogue/internal/refresh"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const serviceName = "service-catalogue"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)
	logger.SetLevel(logger.ParseLevel(cfg.App.LogLevel))

	ctx := context.Background()

	var (
		rdb   *redis.Client
		cache service.Cache
	)
	if cfg.Redis.Enabled {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: redis unavailable, running without cache: %v", err)
		} else {
			defer rdb.Close()
			cache = repository.NewCacheRepository(rdb, cfg.Redis.CacheTTL)
		}
	}

	client := catalogue.NewClient(catalogue.Options{
		BaseURL:   cfg.Catalogue.BaseURL,
		Token:     cfg.Catalogue.Token,
		Timeout:   cfg.Catalogue.Timeout,
		RateLimit: rate.Limit(cfg.Catalogue.RateLimit),
		Burst:     cfg.Catalogue.Burst,
	})
	loader := service.NewDataService(client, cache, cfg.Catalogue.Timeout)

	scheduler := refresh.NewScheduler(loader, cfg.Catalogue.Timeout)
	if err := scheduler.Start(cfg.Refresh.Cron); err != nil {
		log.Fatalf("refresh scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Redis:       rdb,
		Loader:      loader,
		Snapshots:   loader,
		Components:  client,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
