//go:generate mockgen -source ./repositories.go -destination=./mocks/repositories.go -package=mock_storage
package storage

import (
	"context"
	"time"

	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
)

type CustomerRepository interface {
	GetByTelegramID(ctx context.Context, telegramID int64) (*repository.Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateTx(ctx context.Context, tx db.Tx, customer *repository.Customer) (int64, error)
}

type InventoryRepository interface {
	AvailableSizes(ctx context.Context) ([]int, error)
	FirstAvailable(ctx context.Context, size int) (*repository.InventoryUnit, error)
	GetByID(ctx context.Context, id int64) (*repository.InventoryUnit, error)
	MarkRentedTx(ctx context.Context, tx db.Tx, id int64) (bool, error)
	SetStatusTx(ctx context.Context, tx db.Tx, id int64, from, to repository.UnitStatus) (bool, error)
}

type RentalRepository interface {
	CountActive(ctx context.Context, clientID int64) (int64, error)
	CountActiveTx(ctx context.Context, tx db.Tx, clientID int64) (int64, error)
	CreateTx(ctx context.Context, tx db.Tx, rental *repository.Rental) (int64, error)
	CompleteTx(ctx context.Context, tx db.Tx, id, clientID int64, end time.Time) (*repository.Rental, error)
	ActiveByClient(ctx context.Context, clientID int64) ([]*repository.ActiveRental, error)
}

type ActionLogRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, entry *repository.ActionLogEntry) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// OutboxRepository stores audit events next to the action-log entries they
// mirror. The kafka.Publisher delivers them.
type OutboxRepository interface {
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	DeleteDoneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type ReportRepository interface {
	RentalHistory(ctx context.Context, clientID int64) ([]*repository.RentalHistoryRow, error)
	PopularSizes(ctx context.Context, limit int) ([]*repository.SizePopularity, error)
	DailyIncome(ctx context.Context) ([]*repository.DailyIncome, error)
}
