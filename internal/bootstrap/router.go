package bootstrap

import (
	"time"

	httpapi "github.com/catalogue-dash/service-catalogue/internal/api/http"
	"github.com/catalogue-dash/service-catalogue/internal/api/http/middleware"
	"github.com/catalogue-dash/service-catalogue/internal/catalogue"
	dephttp "github.com/catalogue-dash/service-catalogue/internal/dependencies/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Redis       *redis.Client
	Loader      dephttp.DataLoader
	Snapshots   httpapi.SnapshotSource
	Components  catalogue.ComponentLister
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.Snapshots)
	healthHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	if dep.Components != nil {
		catalogue.NewHandler(dep.Components).Register(api)
	}

	dependencies := api.Group("/dependencies")
	dephttp.New(dep.Loader).Register(dependencies)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
