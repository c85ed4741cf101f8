package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/skaterent/rentbot/internal/apperr"
	"github.com/skaterent/rentbot/internal/audit"
	"github.com/skaterent/rentbot/internal/db"
	mock_database "github.com/skaterent/rentbot/internal/db/mocks"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
	mock_storage "github.com/skaterent/rentbot/internal/storage/mocks"
)

var fixedNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db        *mock_database.MockDB
	tx        *mock_database.MockTx
	customers *mock_storage.MockCustomerRepository
	inventory *mock_storage.MockInventoryRepository
	rentals   *mock_storage.MockRentalRepository
	actions   *mock_storage.MockActionLogRepository
	outbox    *mock_storage.MockOutboxRepository
	storage   *storage.RentalStorage
}

func newFixture(t *testing.T, opts storage.Options) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		db:        mock_database.NewMockDB(ctrl),
		tx:        mock_database.NewMockTx(ctrl),
		customers: mock_storage.NewMockCustomerRepository(ctrl),
		inventory: mock_storage.NewMockInventoryRepository(ctrl),
		rentals:   mock_storage.NewMockRentalRepository(ctrl),
		actions:   mock_storage.NewMockActionLogRepository(ctrl),
		outbox:    mock_storage.NewMockOutboxRepository(ctrl),
	}
	if opts.PasswordCost == 0 {
		opts.PasswordCost = bcrypt.MinCost
	}
	f.storage = storage.NewRentalStorage(f.db, f.customers, f.inventory, f.rentals, f.actions, f.outbox, opts, zap.NewNop())
	f.storage.SetTimeNow(func() time.Time { return fixedNow })
	return f
}

func (f *fixture) runTx() {
	f.db.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, db.Tx) error) error {
			return fn(ctx, f.tx)
		})
}

// expectRecord expects the action-log entry and its outbox event on the
// transaction and returns the decoded event once recorded.
func (f *fixture) expectRecord(t *testing.T, action string) *audit.Event {
	var ev audit.Event
	gomock.InOrder(
		f.actions.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, e *repository.ActionLogEntry) error {
				assert.Equal(t, action, e.ActionType)
				return nil
			}),
		f.outbox.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, task *repository.OutboxTask) error {
				assert.Equal(t, "rental_events", task.Topic)
				require.NoError(t, json.Unmarshal(task.Payload, &ev))
				assert.Equal(t, task.ID, ev.ID)
				return nil
			}),
	)
	return &ev
}

func TestRentalStorage_RegisterCustomer(t *testing.T) {
	ctx := context.Background()
	reg := storage.Registration{
		TelegramID: 42,
		Name:       "Ivan",
		Email:      "ivan@example.com",
		Password:   "secret1",
		Phone:      "+79991234567",
	}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		var stored *repository.Customer
		f.customers.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ db.Tx, c *repository.Customer) (int64, error) {
				stored = c
				c.ID = 7
				return 7, nil
			})
		ev := f.expectRecord(t, repository.ActionRegister)

		customer, err := f.storage.RegisterCustomer(ctx, reg)
		require.NoError(t, err)
		assert.Equal(t, int64(7), customer.ID)
		require.NotNil(t, stored)
		assert.NotEqual(t, reg.Password, stored.HashedPassword)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), storage.PasswordDigest(reg.Password)))

		assert.Equal(t, repository.ActionRegister, ev.Action)
		assert.Equal(t, int64(42), ev.TelegramID)
		require.NotNil(t, ev.ClientID)
		assert.Equal(t, int64(7), *ev.ClientID)
	})

	t.Run("passwords longer than 72 bytes", func(t *testing.T) {
		for _, password := range []string{strings.Repeat("a", 73), strings.Repeat("п", 40)} {
			f := newFixture(t, storage.Options{})
			f.runTx()

			var stored *repository.Customer
			f.customers.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ db.Tx, c *repository.Customer) (int64, error) {
					stored = c
					return 7, nil
				})
			f.expectRecord(t, repository.ActionRegister)

			long := reg
			long.Password = password
			_, err := f.storage.RegisterCustomer(ctx, long)
			require.NoError(t, err)

			require.NotNil(t, stored)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), storage.PasswordDigest(password)))
			assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), storage.PasswordDigest(password[:len(password)-1])))
		}
	})

	t.Run("outbox failure rolls the registration back", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		f.customers.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(int64(7), nil)
		f.actions.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(nil)
		f.outbox.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(errors.New("conn reset"))

		_, err := f.storage.RegisterCustomer(ctx, reg)
		assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
	})

	t.Run("unique violation is a conflict", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		f.customers.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
			Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: "clients_email_key"})

		_, err := f.storage.RegisterCustomer(ctx, reg)
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.ErrorIs(t, err, storage.ErrDuplicateCustomer)
	})

	t.Run("database failure is a persistence error", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		f.customers.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(int64(0), errors.New("conn reset"))

		_, err := f.storage.RegisterCustomer(ctx, reg)
		assert.Equal(t, apperr.KindPersistence, apperr.KindOf(err))
	})
}

func TestRentalStorage_CreateRental(t *testing.T) {
	ctx := context.Background()
	customer := &repository.Customer{ID: 7, TelegramID: 42}

	t.Run("claims unit and opens rental at configured rate", func(t *testing.T) {
		f := newFixture(t, storage.Options{HourlyRate: 300})
		f.runTx()

		gomock.InOrder(
			f.inventory.EXPECT().MarkRentedTx(gomock.Any(), f.tx, int64(3)).Return(true, nil),
			f.rentals.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ db.Tx, r *repository.Rental) (int64, error) {
					assert.Equal(t, float64(300), r.PricePerHour)
					assert.Equal(t, fixedNow, r.StartTime)
					r.ID = 99
					r.IsActive = true
					return 99, nil
				}),
		)
		ev := f.expectRecord(t, repository.ActionRentStart)

		rental, err := f.storage.CreateRental(ctx, customer, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(99), rental.ID)
		assert.True(t, rental.IsActive)
		assert.Equal(t, "Rental #99", ev.Details)
		assert.Equal(t, fixedNow, ev.OccurredAt)
	})

	t.Run("second confirmation of the same unit loses", func(t *testing.T) {
		f := newFixture(t, storage.Options{HourlyRate: 300})
		f.db.EXPECT().InTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, db.Tx) error) error {
				return fn(ctx, f.tx)
			}).Times(2)

		gomock.InOrder(
			f.inventory.EXPECT().MarkRentedTx(gomock.Any(), f.tx, int64(3)).Return(true, nil),
			f.inventory.EXPECT().MarkRentedTx(gomock.Any(), f.tx, int64(3)).Return(false, nil),
		)
		f.rentals.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(int64(99), nil).Times(1)
		f.actions.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(nil).Times(1)
		f.outbox.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).Return(nil).Times(1)

		_, err := f.storage.CreateRental(ctx, customer, 3)
		require.NoError(t, err)

		other := &repository.Customer{ID: 8, TelegramID: 43}
		_, err = f.storage.CreateRental(ctx, other, 3)
		require.Error(t, err)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.ErrorIs(t, err, storage.ErrUnitUnavailable)
	})

	t.Run("active unique index violation maps to unavailable", func(t *testing.T) {
		f := newFixture(t, storage.Options{HourlyRate: 300})
		f.runTx()

		f.inventory.EXPECT().MarkRentedTx(gomock.Any(), f.tx, int64(3)).Return(true, nil)
		f.rentals.EXPECT().CreateTx(gomock.Any(), f.tx, gomock.Any()).
			Return(int64(0), &pgconn.PgError{Code: "23505", ConstraintName: "rentals_one_active_per_unit"})

		_, err := f.storage.CreateRental(ctx, customer, 3)
		assert.ErrorIs(t, err, storage.ErrUnitUnavailable)
	})

	t.Run("active rental cap", func(t *testing.T) {
		f := newFixture(t, storage.Options{HourlyRate: 300, MaxActiveRentals: 1})
		f.runTx()

		f.rentals.EXPECT().CountActiveTx(gomock.Any(), f.tx, int64(7)).Return(int64(1), nil)

		_, err := f.storage.CreateRental(ctx, customer, 3)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.ErrorIs(t, err, storage.ErrActiveLimit)
	})
}

func TestRentalStorage_CanRent(t *testing.T) {
	ctx := context.Background()

	t.Run("unlimited", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		ok, err := f.storage.CanRent(ctx, 7)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("at cap", func(t *testing.T) {
		f := newFixture(t, storage.Options{MaxActiveRentals: 2})
		f.rentals.EXPECT().CountActive(gomock.Any(), int64(7)).Return(int64(2), nil)

		ok, err := f.storage.CanRent(ctx, 7)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRentalStorage_CompleteRental(t *testing.T) {
	ctx := context.Background()
	customer := &repository.Customer{ID: 7, TelegramID: 42}

	t.Run("success", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		cost := 600.0
		end := fixedNow
		gomock.InOrder(
			f.rentals.EXPECT().CompleteTx(gomock.Any(), f.tx, int64(99), int64(7), fixedNow).
				Return(&repository.Rental{ID: 99, ClientID: 7, EndTime: &end, TotalCost: &cost}, nil),
			f.tx.EXPECT().Exec(gomock.Any(), repository.ReleaseRentalUnit, int64(99)).Return(pgconn.CommandTag("UPDATE 1"), nil),
			f.tx.EXPECT().Exec(gomock.Any(), repository.RecordPayment, int64(99)).Return(pgconn.CommandTag("INSERT 0 1"), nil),
		)
		ev := f.expectRecord(t, repository.ActionRentEnd)

		rental, err := f.storage.CompleteRental(ctx, customer, 99)
		require.NoError(t, err)
		require.NotNil(t, rental.TotalCost)
		assert.Equal(t, 600.0, *rental.TotalCost)
		assert.Equal(t, "Rental #99", ev.Details)
	})

	t.Run("already returned", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		f.rentals.EXPECT().CompleteTx(gomock.Any(), f.tx, int64(99), int64(7), fixedNow).Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.CompleteRental(ctx, customer, 99)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.ErrorIs(t, err, storage.ErrRentalNotActive)
	})

	t.Run("unit release mismatch rolls back", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()

		f.rentals.EXPECT().CompleteTx(gomock.Any(), f.tx, int64(99), int64(7), fixedNow).
			Return(&repository.Rental{ID: 99}, nil)
		f.tx.EXPECT().Exec(gomock.Any(), repository.ReleaseRentalUnit, int64(99)).Return(pgconn.CommandTag("UPDATE 0"), nil)

		_, err := f.storage.CompleteRental(ctx, customer, 99)
		assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
		assert.ErrorIs(t, err, db.ErrUnexpectedRows)
	})
}

func TestRentalStorage_UpdatePhone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.Options{})
	f.runTx()
	customer := &repository.Customer{ID: 7, TelegramID: 42, Phone: "+79990000000"}

	f.tx.EXPECT().Exec(gomock.Any(), repository.UpdateCustomerProfile, int64(7), nil, "89991234567").
		Return(pgconn.CommandTag("UPDATE 1"), nil)
	ev := f.expectRecord(t, repository.ActionProfileUpdate)

	require.NoError(t, f.storage.UpdatePhone(ctx, customer, "89991234567"))
	assert.Equal(t, "89991234567", customer.Phone)
	assert.Equal(t, int64(42), ev.TelegramID)
}

func TestRentalStorage_SetUnitStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("available to repair", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()
		f.inventory.EXPECT().SetStatusTx(gomock.Any(), f.tx, int64(5), repository.UnitAvailable, repository.UnitRepair).Return(true, nil)
		ev := f.expectRecord(t, repository.ActionUnitStatus)

		assert.NoError(t, f.storage.SetUnitStatus(ctx, 1, 5, repository.UnitRepair))
		assert.Nil(t, ev.ClientID)
		assert.Equal(t, "Unit #5 available -> repair by 1", ev.Details)
	})

	t.Run("rented unit is refused", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()
		f.inventory.EXPECT().SetStatusTx(gomock.Any(), f.tx, int64(5), repository.UnitAvailable, repository.UnitRepair).Return(false, nil)
		f.inventory.EXPECT().GetByID(gomock.Any(), int64(5)).
			Return(&repository.InventoryUnit{ID: 5, Status: repository.UnitRented}, nil)

		err := f.storage.SetUnitStatus(ctx, 1, 5, repository.UnitRepair)
		assert.ErrorIs(t, err, storage.ErrStatusUnchanged)
	})

	t.Run("unknown unit", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		f.runTx()
		f.inventory.EXPECT().SetStatusTx(gomock.Any(), f.tx, int64(5), repository.UnitRepair, repository.UnitAvailable).Return(false, nil)
		f.inventory.EXPECT().GetByID(gomock.Any(), int64(5)).Return(nil, repository.ErrObjectNotFound)

		err := f.storage.SetUnitStatus(ctx, 1, 5, repository.UnitAvailable)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})

	t.Run("rented cannot be set manually", func(t *testing.T) {
		f := newFixture(t, storage.Options{})
		err := f.storage.SetUnitStatus(ctx, 1, 5, repository.UnitRented)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestRentalStorage_PurgeActionLog(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, storage.Options{})
	cutoff := fixedNow.Add(-30 * 24 * time.Hour)

	f.actions.EXPECT().DeleteOlderThan(gomock.Any(), cutoff).Return(int64(4), nil)
	f.outbox.EXPECT().DeleteDoneBefore(gomock.Any(), cutoff).Return(int64(9), nil)

	removed, err := f.storage.PurgeActionLog(ctx, 30*24*time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), removed)
}
