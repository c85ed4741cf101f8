package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
)

type RentalRepo struct {
	db db.DB
}

func NewRentalRepo(db db.DB) storage.RentalRepository {
	return &RentalRepo{db: db}
}

func (r *RentalRepo) CountActive(ctx context.Context, clientID int64) (int64, error) {
	var n int64
	if err := r.db.Scalar(ctx, &n, repository.CountActiveRentals, clientID); err != nil {
		return 0, fmt.Errorf("failed to count active rentals: %w", err)
	}
	return n, nil
}

func (r *RentalRepo) CountActiveTx(ctx context.Context, tx db.Tx, clientID int64) (int64, error) {
	var n int64
	if err := tx.Get(ctx, &n, repository.CountActiveRentals, clientID); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *RentalRepo) CreateTx(ctx context.Context, tx db.Tx, rental *repository.Rental) (int64, error) {
	var id int64
	err := tx.Get(ctx, &id, repository.CreateRental,
		rental.ClientID, rental.InventoryID, rental.PricePerHour, rental.StartTime)
	if err != nil {
		return 0, err
	}
	rental.ID = id
	rental.IsActive = true
	return id, nil
}

// CompleteTx closes the active rental of the client and returns it with its
// cost. It returns repository.ErrObjectNotFound when there is no such active
// rental.
func (r *RentalRepo) CompleteTx(ctx context.Context, tx db.Tx, id, clientID int64, end time.Time) (*repository.Rental, error) {
	var rental repository.Rental
	err := tx.Get(ctx, &rental, repository.CompleteRental, id, end, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &rental, nil
}

func (r *RentalRepo) ActiveByClient(ctx context.Context, clientID int64) ([]*repository.ActiveRental, error) {
	var rentals []*repository.ActiveRental
	if err := r.db.Select(ctx, &rentals, repository.GetActiveRentals, clientID); err != nil {
		return nil, fmt.Errorf("failed to get active rentals: %w", err)
	}
	return rentals, nil
}
