package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/catalogue-dash/service-catalogue/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	dependencyInfoKey = "catalogue:dependency:info"
	defaultCacheTTL   = 30 * time.Minute
)

// CacheRepository stores the latest dependency info snapshot in Redis
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheRepository creates a new CacheRepository
func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CacheRepository{client: client, ttl: ttl}
}

// Get returns the cached snapshot or domain.ErrCacheMiss
func (r *CacheRepository) Get(ctx context.Context) (domain.DependencyInfo, error) {
	data, err := r.client.Get(ctx, dependencyInfoKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to get dependency info: %w", err)
	}

	var info domain.DependencyInfo
	if err := json.Unmarshal(data, &info); err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to unmarshal dependency info: %w", err)
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return info.Normalize(), nil
}

// Set replaces the cached snapshot
func (r *CacheRepository) Set(ctx context.Context, info domain.DependencyInfo) error {
	data, err := json.Marshal(info.Normalize())
	if err != nil {
		return fmt.Errorf("failed to marshal dependency info: %w", err)
	}
	if err := r.client.Set(ctx, dependencyInfoKey, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache dependency info: %w", err)
	}
	return nil
}

// Delete drops the cached snapshot
func (r *CacheRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, dependencyInfoKey).Err(); err != nil {
		return fmt.Errorf("failed to delete dependency info: %w", err)
	}
	return nil
}
