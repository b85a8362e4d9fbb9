package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/catalogue-dash/service-catalogue/internal/logger"
	"github.com/catalogue-dash/service-catalogue/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	fetchKey            = "dependency-info"
	defaultFetchTimeout = 30 * time.Second
)

// Source fetches the dependency dataset from the catalogue
type Source interface {
	GetDependencyInfo(ctx context.Context) (domain.DependencyInfo, error)
}

// Cache stores the latest dependency dataset
type Cache interface {
	Get(ctx context.Context) (domain.DependencyInfo, error)
	Set(ctx context.Context, info domain.DependencyInfo) error
	Delete(ctx context.Context) error
}

type snapshot struct {
	info      domain.DependencyInfo
	fetchedAt time.Time
}

// DataService loads dependency info through the cache and keeps the last
// fetched snapshot in memory.
type DataService struct {
	source       Source
	cache        Cache
	fetchTimeout time.Duration
	group        singleflight.Group
	last         atomic.Pointer[snapshot]
}

// NewDataService creates a DataService. cache may be nil.
func NewDataService(source Source, cache Cache, fetchTimeout time.Duration) *DataService {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &DataService{source: source, cache: cache, fetchTimeout: fetchTimeout}
}

// Load returns the cached dataset, fetching it from the catalogue on a miss.
// Without a cache the last fetched snapshot is served. When the catalogue
// fails, a stale snapshot is preferred over an error.
func (s *DataService) Load(ctx context.Context) (domain.DependencyInfo, error) {
	lg := logger.New(ctx)

	if s.cache != nil {
		info, err := s.cache.Get(ctx)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			lg.LogWarnf("load_dependency_info", "cache read failed: %v", err)
			if snap := s.last.Load(); snap != nil {
				return snap.info, nil
			}
		}
	} else if snap := s.last.Load(); snap != nil {
		return snap.info, nil
	}

	info, err := s.fetchShared(ctx)
	if err != nil {
		if snap := s.last.Load(); snap != nil && ctx.Err() == nil {
			lg.LogWarnf("load_dependency_info", "serving snapshot from %s: %v", snap.fetchedAt.Format(time.RFC3339), err)
			return snap.info, nil
		}
		return nil, err
	}
	return info, nil
}

// Refresh always fetches from the catalogue and overwrites the cache.
// A fetch already in flight is not joined, since it may predate the request.
func (s *DataService) Refresh(ctx context.Context) (domain.DependencyInfo, error) {
	s.group.Forget(fetchKey)
	info, err := s.fetchShared(ctx)
	metrics.ObserveRefresh(err)
	return info, err
}

// Invalidate drops the cached and in-memory snapshots
func (s *DataService) Invalidate(ctx context.Context) error {
	s.last.Store(nil)
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx)
}

// Aggregator loads the dataset and wraps it for one request
func (s *DataService) Aggregator(ctx context.Context) (*Dependencies, error) {
	info, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewDependencies(info), nil
}

// Snapshot reports the last dataset fetched from the catalogue
func (s *DataService) Snapshot() (domain.SnapshotStatus, bool) {
	snap := s.last.Load()
	if snap == nil {
		return domain.SnapshotStatus{}, false
	}
	return snap.info.Status(snap.fetchedAt), true
}

// fetchShared collapses concurrent fetches into one call. The shared call is
// detached from any single caller's cancellation; each caller only waits on
// its own context.
func (s *DataService) fetchShared(ctx context.Context) (domain.DependencyInfo, error) {
	ch := s.group.DoChan(fetchKey, func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return s.fetchAndStore(fctx)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrNoDependencyData, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(domain.DependencyInfo), nil
	}
}

func (s *DataService) fetchAndStore(ctx context.Context) (domain.DependencyInfo, error) {
	lg := logger.New(ctx)

	info, err := s.source.GetDependencyInfo(ctx)
	if err != nil {
		lg.LogError("fetch_dependency_info", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNoDependencyData, err)
	}
	info = info.Normalize()
	s.last.Store(&snapshot{info: info, fetchedAt: time.Now().UTC()})

	if s.cache != nil {
		if err := s.cache.Set(ctx, info); err != nil {
			lg.LogWarnf("cache_dependency_info", "failed to store snapshot: %v", err)
		}
	}

	lg.LogInfof("fetch_dependency_info", "prod=%d preprod=%d dev=%d",
		info[domain.EnvProd].ComponentCount(),
		info[domain.EnvPreprod].ComponentCount(),
		info[domain.EnvDev].ComponentCount())
	return info, nil
}
