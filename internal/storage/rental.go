package storage

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/skaterent/rentbot/internal/apperr"
	"github.com/skaterent/rentbot/internal/audit"
	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
)

const uniqueViolation = "23505"

var (
	ErrUnitUnavailable   = errors.New("inventory unit is no longer available")
	ErrActiveLimit       = errors.New("active rental limit reached")
	ErrRentalNotActive   = errors.New("rental is not active")
	ErrDuplicateCustomer = errors.New("customer already registered")
	ErrStatusUnchanged   = errors.New("inventory unit is not in the expected status")
)

type Options struct {
	HourlyRate       float64
	MaxActiveRentals int
	PasswordCost     int
	// Topic is where the outbox publisher sends audit events.
	Topic string
}

// Registration is what the sign-up wizard collects.
type Registration struct {
	TelegramID int64
	Name       string
	Email      string
	Password   string
	Phone      string
}

type RentalStorage struct {
	db        db.DB
	customers CustomerRepository
	inventory InventoryRepository
	rentals   RentalRepository
	actions   ActionLogRepository
	outbox    OutboxRepository
	opts      Options
	logger    *zap.Logger
	timeNow   func() time.Time
}

func NewRentalStorage(
	database db.DB,
	customers CustomerRepository,
	inventory InventoryRepository,
	rentals RentalRepository,
	actions ActionLogRepository,
	outbox OutboxRepository,
	opts Options,
	logger *zap.Logger,
) *RentalStorage {
	if opts.PasswordCost == 0 {
		opts.PasswordCost = bcrypt.DefaultCost
	}
	if opts.Topic == "" {
		opts.Topic = "rental_events"
	}
	return &RentalStorage{
		db:        database,
		customers: customers,
		inventory: inventory,
		rentals:   rentals,
		actions:   actions,
		outbox:    outbox,
		opts:      opts,
		logger:    logger,
		timeNow:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *RentalStorage) HourlyRate() float64 {
	return s.opts.HourlyRate
}

// CustomerByTelegramID returns repository.ErrObjectNotFound for identities
// that never registered.
func (s *RentalStorage) CustomerByTelegramID(ctx context.Context, telegramID int64) (*repository.Customer, error) {
	customer, err := s.customers.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, err
		}
		return nil, apperr.Persistence("get customer", err)
	}
	return customer, nil
}

func (s *RentalStorage) EmailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := s.customers.EmailExists(ctx, email)
	if err != nil {
		return false, apperr.Persistence("check email", err)
	}
	return taken, nil
}

// RegisterCustomer hashes the password and inserts the customer together with
// its action-log entry.
func (s *RentalStorage) RegisterCustomer(ctx context.Context, reg Registration) (*repository.Customer, error) {
	const op = "register customer"

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(reg.Password), s.opts.PasswordCost)
	if err != nil {
		return nil, apperr.Persistence(op, fmt.Errorf("failed to hash password: %w", err))
	}

	now := s.timeNow()
	customer := &repository.Customer{
		TelegramID:     reg.TelegramID,
		Name:           reg.Name,
		Email:          reg.Email,
		Phone:          reg.Phone,
		HashedPassword: string(hash),
		CreatedAt:      now,
	}

	err = s.db.InTx(ctx, func(ctx context.Context, tx db.Tx) error {
		id, err := s.customers.CreateTx(ctx, tx, customer)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", ErrDuplicateCustomer, err)
			}
			return err
		}
		return s.record(ctx, tx, reg.TelegramID, &repository.ActionLogEntry{
			ClientID:   &id,
			ActionType: repository.ActionRegister,
			Details:    "Registered " + reg.Email,
			EventTime:  now,
		})
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return customer, nil
}

// UpdatePhone changes the customer's phone and logs the change atomically.
func (s *RentalStorage) UpdatePhone(ctx context.Context, customer *repository.Customer, phone string) error {
	now := s.timeNow()
	err := s.db.InTx(ctx, func(ctx context.Context, tx db.Tx) error {
		err := db.ExecTx(ctx, tx, []db.Statement{
			db.NewStatement(repository.UpdateCustomerProfile, customer.ID, nil, phone).Expect(1),
		})
		if err != nil {
			return err
		}
		return s.record(ctx, tx, customer.TelegramID, &repository.ActionLogEntry{
			ClientID:   &customer.ID,
			ActionType: repository.ActionProfileUpdate,
			Details:    fmt.Sprintf("Phone changed to %s", phone),
			EventTime:  now,
		})
	})
	if err != nil {
		return classify("update phone", err)
	}
	customer.Phone = phone
	return nil
}

func (s *RentalStorage) AvailableSizes(ctx context.Context) ([]int, error) {
	sizes, err := s.inventory.AvailableSizes(ctx)
	if err != nil {
		return nil, apperr.Persistence("available sizes", err)
	}
	return sizes, nil
}

// FindAvailableUnit returns repository.ErrObjectNotFound when no unit of the
// size is available.
func (s *RentalStorage) FindAvailableUnit(ctx context.Context, size int) (*repository.InventoryUnit, error) {
	unit, err := s.inventory.FirstAvailable(ctx, size)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, err
		}
		return nil, apperr.Persistence("find unit", err)
	}
	return unit, nil
}

// CanRent reports whether the customer is below the active rental cap.
func (s *RentalStorage) CanRent(ctx context.Context, customerID int64) (bool, error) {
	if s.opts.MaxActiveRentals <= 0 {
		return true, nil
	}
	n, err := s.rentals.CountActive(ctx, customerID)
	if err != nil {
		return false, apperr.Persistence("count rentals", err)
	}
	return n < int64(s.opts.MaxActiveRentals), nil
}

// CreateRental claims the unit and opens a rental at the configured hourly
// rate in one transaction. A unit claimed by someone else in between yields a
// Conflict wrapping ErrUnitUnavailable.
func (s *RentalStorage) CreateRental(ctx context.Context, customer *repository.Customer, unitID int64) (*repository.Rental, error) {
	const op = "create rental"

	now := s.timeNow()
	rental := &repository.Rental{
		ClientID:     customer.ID,
		InventoryID:  unitID,
		PricePerHour: s.opts.HourlyRate,
		StartTime:    now,
	}

	err := s.db.InTx(ctx, func(ctx context.Context, tx db.Tx) error {
		if s.opts.MaxActiveRentals > 0 {
			n, err := s.rentals.CountActiveTx(ctx, tx, customer.ID)
			if err != nil {
				return err
			}
			if n >= int64(s.opts.MaxActiveRentals) {
				return ErrActiveLimit
			}
		}

		claimed, err := s.inventory.MarkRentedTx(ctx, tx, unitID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrUnitUnavailable
		}

		id, err := s.rentals.CreateTx(ctx, tx, rental)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", ErrUnitUnavailable, err)
			}
			return err
		}

		return s.record(ctx, tx, customer.TelegramID, &repository.ActionLogEntry{
			ClientID:   &customer.ID,
			ActionType: repository.ActionRentStart,
			Details:    fmt.Sprintf("Rental #%d", id),
			EventTime:  now,
		})
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return rental, nil
}

func (s *RentalStorage) ActiveRentals(ctx context.Context, customerID int64) ([]*repository.ActiveRental, error) {
	rentals, err := s.rentals.ActiveByClient(ctx, customerID)
	if err != nil {
		return nil, apperr.Persistence("active rentals", err)
	}
	return rentals, nil
}

// CompleteRental closes an active rental of the customer: it stamps the end
// time, computes the cost, frees the unit and records the payment together.
// The returned rental is read in the same transaction.
func (s *RentalStorage) CompleteRental(ctx context.Context, customer *repository.Customer, rentalID int64) (*repository.Rental, error) {
	const op = "complete rental"

	now := s.timeNow()
	var rental *repository.Rental
	err := s.db.InTx(ctx, func(ctx context.Context, tx db.Tx) error {
		var err error
		rental, err = s.rentals.CompleteTx(ctx, tx, rentalID, customer.ID, now)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return ErrRentalNotActive
			}
			return err
		}

		err = db.ExecTx(ctx, tx, []db.Statement{
			db.NewStatement(repository.ReleaseRentalUnit, rentalID).Expect(1),
			db.NewStatement(repository.RecordPayment, rentalID).Expect(1),
		})
		if err != nil {
			return err
		}

		return s.record(ctx, tx, customer.TelegramID, &repository.ActionLogEntry{
			ClientID:   &customer.ID,
			ActionType: repository.ActionRentEnd,
			Details:    fmt.Sprintf("Rental #%d", rentalID),
			EventTime:  now,
		})
	})
	if err != nil {
		if errors.Is(err, ErrRentalNotActive) {
			return nil, apperr.Conflict(op, err)
		}
		return nil, classify(op, err)
	}
	return rental, nil
}

var errNoTransition = errors.New("no status transition")

// SetUnitStatus toggles a unit between available and repair. Rented units
// and units already in the target status are refused.
func (s *RentalStorage) SetUnitStatus(ctx context.Context, actorTelegramID, unitID int64, to repository.UnitStatus) error {
	const op = "set unit status"

	var from repository.UnitStatus
	switch to {
	case repository.UnitRepair:
		from = repository.UnitAvailable
	case repository.UnitAvailable:
		from = repository.UnitRepair
	default:
		return apperr.Validation(op, fmt.Sprintf("status %q cannot be set manually", to))
	}

	now := s.timeNow()
	err := s.db.InTx(ctx, func(ctx context.Context, tx db.Tx) error {
		changed, err := s.inventory.SetStatusTx(ctx, tx, unitID, from, to)
		if err != nil {
			return err
		}
		if !changed {
			return errNoTransition
		}
		return s.record(ctx, tx, actorTelegramID, &repository.ActionLogEntry{
			ActionType: repository.ActionUnitStatus,
			Details:    fmt.Sprintf("Unit #%d %s -> %s by %d", unitID, from, to, actorTelegramID),
			EventTime:  now,
		})
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errNoTransition):
	default:
		return apperr.Persistence(op, err)
	}

	if _, err := s.inventory.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return apperr.Conflict(op, err)
		}
		return apperr.Persistence(op, err)
	}
	return apperr.Conflict(op, ErrStatusUnchanged)
}

// PurgeActionLog deletes action-log entries older than retention, together
// with outbox tasks delivered before then.
func (s *RentalStorage) PurgeActionLog(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.timeNow().Add(-retention)
	removed, err := s.actions.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, apperr.Persistence("purge action log", err)
	}

	delivered, err := s.outbox.DeleteDoneBefore(ctx, cutoff)
	if err != nil {
		return removed, apperr.Persistence("purge outbox", err)
	}
	if delivered > 0 {
		s.logger.Info("Purged delivered outbox tasks", zap.Int64("removed", delivered))
	}
	return removed, nil
}

// record writes the action-log entry and its audit event on tx, so the event
// is published only if the change commits.
func (s *RentalStorage) record(ctx context.Context, tx db.Tx, telegramID int64, entry *repository.ActionLogEntry) error {
	if err := s.actions.CreateTx(ctx, tx, entry); err != nil {
		return err
	}

	event := audit.Event{
		ID:         uuid.New(),
		Action:     entry.ActionType,
		ClientID:   entry.ClientID,
		TelegramID: telegramID,
		Details:    entry.Details,
		OccurredAt: entry.EventTime,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}
	return s.outbox.CreateTx(ctx, tx, &repository.OutboxTask{
		ID:        event.ID,
		Topic:     s.opts.Topic,
		Payload:   payload,
		CreatedAt: entry.EventTime,
	})
}

// passwordDigest lets passwords of any length through bcrypt, which only
// reads the first 72 bytes.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func classify(op string, err error) error {
	switch {
	case errors.Is(err, ErrUnitUnavailable),
		errors.Is(err, ErrActiveLimit),
		errors.Is(err, ErrDuplicateCustomer),
		errors.Is(err, db.ErrUnexpectedRows),
		isUniqueViolation(err):
		return apperr.Conflict(op, err)
	default:
		return apperr.Persistence(op, err)
	}
}
