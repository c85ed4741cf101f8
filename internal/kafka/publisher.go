package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/repository"
)

type OutboxTaskRepository interface {
	Claim(ctx context.Context, limit, maxAttempts int, lease time.Duration) ([]*repository.OutboxTask, error)
	MarkDone(ctx context.Context, id uuid.UUID, attempts int, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error
}

type PublisherConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	// Lease is how long a claimed task may stay PROCESSING before another
	// poll takes it over.
	Lease time.Duration
}

// Publisher delivers outbox tasks to Kafka. Tasks that fail are retried on
// later polls until MaxAttempts; the rest stay in the table as FAILED.
type Publisher struct {
	repo     OutboxTaskRepository
	producer Producer
	config   PublisherConfig
	logger   *zap.Logger
	timeNow  func() time.Time

	wg             sync.WaitGroup
	shutdownSignal chan struct{}
	stopOnce       sync.Once
}

func NewPublisher(repo OutboxTaskRepository, producer Producer, config PublisherConfig, logger *zap.Logger) *Publisher {
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 5
	}
	if config.Lease <= 0 {
		config.Lease = time.Minute
	}
	return &Publisher{
		repo:           repo,
		producer:       producer,
		config:         config,
		logger:         logger,
		timeNow:        func() time.Time { return time.Now().UTC() },
		shutdownSignal: make(chan struct{}),
	}
}

// Run polls the outbox until ctx is cancelled or Shutdown is called.
func (p *Publisher) Run(ctx context.Context) error {
	p.wg.Add(1)
	defer p.wg.Done()

	p.logger.Info("Starting outbox publisher",
		zap.Duration("poll_interval", p.config.PollInterval),
		zap.Int("batch_size", p.config.BatchSize))

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				p.logger.Error("Outbox publisher failed to process batch", zap.Error(err))
			}
		case <-p.shutdownSignal:
			p.logger.Info("Outbox publisher received shutdown signal")
			return nil
		case <-ctx.Done():
			p.logger.Info("Outbox publisher stopped")
			return nil
		}
	}
}

// Shutdown stops polling and waits for the batch in progress.
func (p *Publisher) Shutdown(ctx context.Context) {
	p.stopOnce.Do(func() {
		close(p.shutdownSignal)

		done := make(chan struct{})
		go func() {
			p.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			p.logger.Info("Outbox publisher shutdown complete")
		case <-ctx.Done():
			p.logger.Warn("Outbox publisher shutdown timed out")
		}
	})
}

func (p *Publisher) processBatch(ctx context.Context) error {
	tasks, err := p.repo.Claim(ctx, p.config.BatchSize, p.config.MaxAttempts, p.config.Lease)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}
	p.logger.Debug("Claimed outbox tasks", zap.Int("count", len(tasks)))

	for _, task := range tasks {
		select {
		case <-p.shutdownSignal:
			// Unsent tasks are picked up again once their lease expires.
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		p.processSingleTask(ctx, task)
	}
	return nil
}

func (p *Publisher) processSingleTask(ctx context.Context, task *repository.OutboxTask) {
	logger := p.logger.With(zap.String("task_id", task.ID.String()), zap.Int("attempt", task.Attempts+1))
	attempts := task.Attempts + 1

	err := p.producer.SendMessages(ctx, task.Topic, Message{Key: []byte(task.ID.String()), Value: task.Payload})
	if err != nil {
		metrics.OutboxFailuresTotal.Inc()
		if attempts >= p.config.MaxAttempts {
			logger.Error("Outbox task reached max attempts, giving up", zap.Error(err))
		} else {
			logger.Warn("Failed to publish outbox task", zap.Error(err))
		}
		if updateErr := p.repo.MarkFailed(ctx, task.ID, attempts, err.Error()); updateErr != nil {
			logger.Error("Failed to mark outbox task as failed", zap.Error(updateErr))
		}
		return
	}

	metrics.OutboxPublishedTotal.Inc()
	if err := p.repo.MarkDone(ctx, task.ID, attempts, p.timeNow()); err != nil {
		// The task is sent again after its lease; consumers key on the event id.
		logger.Error("Failed to mark outbox task as done", zap.Error(err))
		return
	}
	logger.Debug("Published outbox task")
}
