package postgresql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
)

type OutboxTaskRepo struct {
	db db.DB
}

func NewOutboxTaskRepo(db db.DB) *OutboxTaskRepo {
	return &OutboxTaskRepo{db: db}
}

func (r *OutboxTaskRepo) CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.Status = repository.TaskStatusCreated
	task.UpdatedAt = task.CreatedAt

	_, err := tx.Exec(ctx, repository.CreateOutboxTask,
		task.ID,
		task.Status,
		task.Payload,
		task.Topic,
		task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outbox task: %w", err)
	}
	return nil
}

// Claim marks up to limit deliverable tasks as PROCESSING and returns them
// oldest first. Concurrent claimers never get the same task.
func (r *OutboxTaskRepo) Claim(ctx context.Context, limit, maxAttempts int, lease time.Duration) ([]*repository.OutboxTask, error) {
	var tasks []*repository.OutboxTask
	err := r.db.Select(ctx, &tasks, repository.ClaimOutboxTasks,
		repository.TaskStatusCreated,
		repository.TaskStatusProcessing,
		maxAttempts,
		limit,
		lease.Seconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to claim outbox tasks: %w", err)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.Before(tasks[j].CreatedAt) })
	return tasks, nil
}

func (r *OutboxTaskRepo) MarkDone(ctx context.Context, id uuid.UUID, attempts int, at time.Time) error {
	return r.updateStatus(ctx, id, repository.TaskStatusDone, attempts, nil, &at)
}

func (r *OutboxTaskRepo) MarkFailed(ctx context.Context, id uuid.UUID, attempts int, lastErr string) error {
	return r.updateStatus(ctx, id, repository.TaskStatusFailed, attempts, &lastErr, nil)
}

func (r *OutboxTaskRepo) updateStatus(ctx context.Context, id uuid.UUID, status repository.TaskStatus, attempts int, lastErr *string, completedAt *time.Time) error {
	tag, err := r.db.Exec(ctx, repository.UpdateOutboxTaskStatus, id, status, attempts, lastErr, completedAt)
	if err != nil {
		return fmt.Errorf("failed to update outbox task %s to %s: %w", id, status, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// DeleteDoneBefore removes delivered tasks completed before cutoff.
func (r *OutboxTaskRepo) DeleteDoneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, repository.CleanupDoneOutboxTasks, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up outbox: %w", err)
	}
	return tag.RowsAffected(), nil
}
