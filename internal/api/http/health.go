package http

import (
	"context"
	"net/http"
	"time"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SnapshotSource reports the last dependency info fetched from the catalogue
type SnapshotSource interface {
	Snapshot() (domain.SnapshotStatus, bool)
}

type DependencySnapshot struct {
	FetchedAt  time.Time              `json:"fetched_at"`
	AgeSeconds int64                  `json:"age_seconds"`
	Components map[domain.EnvType]int `json:"components"`
}

type HealthResponse struct {
	Status       string              `json:"status"`
	Timestamp    time.Time           `json:"timestamp"`
	Service      string              `json:"service"`
	Version      string              `json:"version"`
	Redis        string              `json:"redis,omitempty"`
	Dependencies *DependencySnapshot `json:"dependencies,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	redis       *redis.Client
	snapshots   SnapshotSource
}

// NewHealthHandler builds the health endpoint. rdb and snapshots may be nil.
func NewHealthHandler(serviceName, version string, rdb *redis.Client, snapshots SnapshotSource) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		redis:       rdb,
		snapshots:   snapshots,
	}
}

// HealthCheck always answers 200; degraded collaborators show up in the body.
// "degraded" means neither redis nor an in-memory snapshot can serve data.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	now := time.Now().UTC()
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: now,
		Service:   h.serviceName,
		Version:   h.version,
		Redis:     h.redisStatus(c.Request.Context()),
	}

	if h.snapshots != nil {
		if snap, ok := h.snapshots.Snapshot(); ok {
			resp.Dependencies = &DependencySnapshot{
				FetchedAt:  snap.FetchedAt,
				AgeSeconds: int64(now.Sub(snap.FetchedAt).Seconds()),
				Components: snap.Components,
			}
		}
	}

	if resp.Redis == "down" && resp.Dependencies == nil {
		resp.Status = "degraded"
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HealthHandler) redisStatus(ctx context.Context) string {
	if h.redis == nil {
		return "disabled"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := h.redis.Ping(pingCtx).Err(); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
