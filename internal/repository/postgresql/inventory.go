package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
)

type InventoryRepo struct {
	db db.DB
}

func NewInventoryRepo(db db.DB) storage.InventoryRepository {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) AvailableSizes(ctx context.Context) ([]int, error) {
	var options []*repository.SizeOption
	if err := r.db.Select(ctx, &options, repository.GetAvailableSizes); err != nil {
		return nil, fmt.Errorf("failed to get available sizes: %w", err)
	}
	sizes := make([]int, 0, len(options))
	for _, o := range options {
		sizes = append(sizes, o.Size)
	}
	return sizes, nil
}

// FirstAvailable returns the available unit of the given size with the lowest
// id.
func (r *InventoryRepo) FirstAvailable(ctx context.Context, size int) (*repository.InventoryUnit, error) {
	return r.getUnit(ctx, repository.GetFirstAvailableUnit, size)
}

func (r *InventoryRepo) GetByID(ctx context.Context, id int64) (*repository.InventoryUnit, error) {
	return r.getUnit(ctx, repository.GetInventoryUnit, id)
}

func (r *InventoryRepo) getUnit(ctx context.Context, query string, arg interface{}) (*repository.InventoryUnit, error) {
	var unit repository.InventoryUnit
	err := r.db.Get(ctx, &unit, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &unit, nil
}

func (r *InventoryRepo) MarkRentedTx(ctx context.Context, tx db.Tx, id int64) (bool, error) {
	tag, err := tx.Exec(ctx, repository.MarkUnitRented, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetStatusTx moves the unit to status to only while it is in status from.
func (r *InventoryRepo) SetStatusTx(ctx context.Context, tx db.Tx, id int64, from, to repository.UnitStatus) (bool, error) {
	tag, err := tx.Exec(ctx, repository.UpdateInventoryStatus, id, string(to), string(from))
	if err != nil {
		return false, fmt.Errorf("failed to update inventory status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
