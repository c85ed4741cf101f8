// Package scheduler runs the retention jobs on cron schedules.
package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Specs are cron expressions with a leading seconds field.
type Specs struct {
	CleanupLogs   string
	CleanupFiles  string
	SweepSessions string
}

type Scheduler struct {
	cron   *cron.Cron
	jobs   *JobRunner
	logger *zap.Logger
}

// New registers the jobs. An invalid spec is an error.
func New(jobs *JobRunner, specs Specs, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:   c,
		jobs:   jobs,
		logger: logger,
	}

	for _, job := range []struct {
		name string
		spec string
		fn   func()
	}{
		{"cleanup_logs", specs.CleanupLogs, jobs.PurgeActionLog},
		{"cleanup_files", specs.CleanupFiles, jobs.CleanupFiles},
		{"sweep_sessions", specs.SweepSessions, jobs.SweepSessions},
	} {
		if _, err := c.AddFunc(job.spec, job.fn); err != nil {
			return nil, fmt.Errorf("failed to register %s job %q: %w", job.name, job.spec, err)
		}
	}

	logger.Info("Cron jobs registered", zap.Int("jobs", len(c.Entries())))
	return s, nil
}

// Start cleans up stale report files once and begins the cron scheduler.
func (s *Scheduler) Start() {
	s.jobs.CleanupFiles()
	s.cron.Start()
	s.logger.Info("Cron scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler stopped")
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
