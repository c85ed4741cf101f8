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

type CustomerRepo struct {
	db db.DB
}

func NewCustomerRepo(db db.DB) storage.CustomerRepository {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*repository.Customer, error) {
	var customer repository.Customer
	err := r.db.Get(ctx, &customer, repository.GetCustomerByTelegramID, telegramID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.Scalar(ctx, &exists, repository.CheckEmailExists, email); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *CustomerRepo) CreateTx(ctx context.Context, tx db.Tx, customer *repository.Customer) (int64, error) {
	var id int64
	err := tx.Get(ctx, &id, repository.RegisterCustomer,
		customer.TelegramID, customer.Name, customer.Email, customer.Phone, customer.HashedPassword)
	if err != nil {
		return 0, err
	}
	customer.ID = id
	return id, nil
}
