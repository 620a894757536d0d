package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	appLog "github.com/jismah/serverless-registro/internal/log"
)

// Revalidator is the part of the cache the scheduler drives.
type Revalidator interface {
	Revalidate(ctx context.Context) error
}

// RevalidatorFunc adapts a function to Revalidator.
type RevalidatorFunc func(ctx context.Context) error

func (f RevalidatorFunc) Revalidate(ctx context.Context) error { return f(ctx) }

// Scheduler refreshes the cache on a cron schedule. Revalidation runs are
// never concurrent with each other; a tick that lands while one is running
// is skipped.
type Scheduler struct {
	Spec    string
	Cache   Revalidator
	Timeout time.Duration

	mu sync.Mutex
}

func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.Spec, func() { s.tick(ctx) }); err != nil {
		return err
	}
	appLog.Info("scheduler: started", "spec", s.Spec)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	appLog.Info("scheduler: stopped")
	return ctx.Err()
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	start := time.Now()
	if err := s.Cache.Revalidate(ctx); err != nil {
		appLog.Error("scheduler: revalidate failed", err, "elapsed", time.Since(start))
		return
	}
	appLog.Debug("scheduler: revalidated", "elapsed", time.Since(start))
}
