package refresh

import (
	"context"
	"log"
	"time"

	"github.com/catalogue-dash/service-catalogue/internal/dependencies/domain"
	"github.com/robfig/cron/v3"
)

const DefaultSpec = "0 */15 * * * *"

// Refresher reloads dependency info from the catalogue
type Refresher interface {
	Refresh(ctx context.Context) (domain.DependencyInfo, error)
}

type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
}

func NewScheduler(refresher Refresher, timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresher,
		timeout:   timeout,
	}
}

// Start registers the refresh job on spec and starts the cron runner
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = DefaultSpec
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return err
	}

	log.Printf("Dependency refresh scheduler started (spec=%q)", spec)
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce refreshes dependency info. A failure keeps the stale cache.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if _, err := s.refresher.Refresh(ctx); err != nil {
		log.Printf("Dependency refresh failed: %v", err)
		return
	}
	log.Printf("Dependency refresh completed in %s", time.Since(start))
}
