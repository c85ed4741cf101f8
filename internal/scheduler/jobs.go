package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/metrics"
)

type ActionLogPurger interface {
	PurgeActionLog(ctx context.Context, retention time.Duration) (int64, error)
}

type FileCleaner interface {
	Cleanup(maxAge time.Duration) (int, error)
}

type SessionSweeper interface {
	Sweep(maxIdle time.Duration) int
}

// JobConfig holds the retention thresholds of the maintenance jobs.
type JobConfig struct {
	LogRetention  time.Duration
	FileRetention time.Duration
	SessionIdle   time.Duration
	JobTimeout    time.Duration
}

// JobRunner executes the maintenance jobs. Failures are logged and counted,
// never propagated: the next run retries.
type JobRunner struct {
	purger  ActionLogPurger
	cleaner FileCleaner
	sweeper SessionSweeper
	cfg     JobConfig
	logger  *zap.Logger
}

func NewJobRunner(purger ActionLogPurger, cleaner FileCleaner, sweeper SessionSweeper, cfg JobConfig, logger *zap.Logger) *JobRunner {
	if cfg.JobTimeout == 0 {
		cfg.JobTimeout = time.Minute
	}
	return &JobRunner{
		purger:  purger,
		cleaner: cleaner,
		sweeper: sweeper,
		cfg:     cfg,
		logger:  logger,
	}
}

func (j *JobRunner) PurgeActionLog() {
	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.JobTimeout)
	defer cancel()

	removed, err := j.purger.PurgeActionLog(ctx, j.cfg.LogRetention)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("purge_action_log").Inc()
		j.logger.Error("Failed to purge action log", zap.Error(err))
		return
	}
	j.logger.Info("Purged action log", zap.Int64("removed", removed), zap.Duration("retention", j.cfg.LogRetention))
}

func (j *JobRunner) CleanupFiles() {
	removed, err := j.cleaner.Cleanup(j.cfg.FileRetention)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("cleanup_files").Inc()
		j.logger.Error("Failed to clean up report files", zap.Int("removed", removed), zap.Error(err))
		return
	}
	j.logger.Debug("Cleaned up report files", zap.Int("removed", removed))
}

func (j *JobRunner) SweepSessions() {
	if n := j.sweeper.Sweep(j.cfg.SessionIdle); n > 0 {
		j.logger.Info("Swept abandoned sessions", zap.Int("removed", n))
	}
}
