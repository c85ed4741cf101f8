package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
)

type ActionLogRepo struct {
	db db.DB
}

func NewActionLogRepo(db db.DB) storage.ActionLogRepository {
	return &ActionLogRepo{db: db}
}

func (r *ActionLogRepo) CreateTx(ctx context.Context, tx db.Tx, entry *repository.ActionLogEntry) error {
	_, err := tx.Exec(ctx, repository.LogAction, entry.ClientID, entry.ActionType, entry.Details, entry.EventTime)
	return err
}

func (r *ActionLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, repository.CleanupOldLogs, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up action log: %w", err)
	}
	return tag.RowsAffected(), nil
}
