//go:generate mockgen -source ./machine.go -destination=./mocks/machine.go -package=mock_wizard
package wizard

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/apperr"
	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/report"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/session"
	"github.com/skaterent/rentbot/internal/storage"
)

type Storage interface {
	HourlyRate() float64
	CustomerByTelegramID(ctx context.Context, telegramID int64) (*repository.Customer, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	RegisterCustomer(ctx context.Context, reg storage.Registration) (*repository.Customer, error)
	UpdatePhone(ctx context.Context, customer *repository.Customer, phone string) error
	AvailableSizes(ctx context.Context) ([]int, error)
	FindAvailableUnit(ctx context.Context, size int) (*repository.InventoryUnit, error)
	CanRent(ctx context.Context, customerID int64) (bool, error)
	CreateRental(ctx context.Context, customer *repository.Customer, unitID int64) (*repository.Rental, error)
	ActiveRentals(ctx context.Context, customerID int64) ([]*repository.ActiveRental, error)
	CompleteRental(ctx context.Context, customer *repository.Customer, rentalID int64) (*repository.Rental, error)
	SetUnitStatus(ctx context.Context, actorTelegramID, unitID int64, to repository.UnitStatus) error
}

type Reporter interface {
	RentalReport(ctx context.Context, telegramID, customerID int64) (*report.Artifact, error)
	PopularityChart(ctx context.Context) (*report.Artifact, error)
	IncomeReport(ctx context.Context) (*report.Artifact, error)
	Cleanup(maxAge time.Duration) (int, error)
}

type Options struct {
	Admins         []int64
	SupportContact string
	// FileRetention is the age after which generated report files are
	// removed once a report has been sent.
	FileRetention time.Duration
}

// Machine drives the registration, rental, return and report conversations.
// It is safe for concurrent use; events of one identity are serialized.
type Machine struct {
	storage  Storage
	reporter Reporter
	sessions *session.Store[State]
	opts     Options
	logger   *zap.Logger
	timeNow  func() time.Time
}

func New(storage Storage, reporter Reporter, sessions *session.Store[State], opts Options, logger *zap.Logger) *Machine {
	if opts.FileRetention == 0 {
		opts.FileRetention = 24 * time.Hour
	}
	return &Machine{
		storage:  storage,
		reporter: reporter,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
		timeNow:  time.Now,
	}
}

// Stage returns the current wizard stage of the identity.
func (m *Machine) Stage(telegramID int64) Stage {
	st, ok := m.sessions.Get(telegramID)
	if !ok {
		return Idle
	}
	return st.Stage
}

// OnText handles a text message or command.
func (m *Machine) OnText(ctx context.Context, id Identity, input string) Response {
	unlock := m.sessions.Lock(id.TelegramID)
	defer unlock()

	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "/") {
		switch cmd, _ := parseCommand(input); cmd {
		case "start":
			return m.start(ctx, id)
		case "cancel":
			return m.cancel(id)
		}
	}

	st, ok := m.sessions.Get(id.TelegramID)
	if ok && st.Stage != Idle {
		return m.onStageText(ctx, id, st, input)
	}

	if strings.HasPrefix(input, "/") {
		cmd, args := parseCommand(input)
		return m.command(ctx, id, cmd, args)
	}

	switch input {
	case ButtonRent:
		return m.beginRental(ctx, id)
	case ButtonRentals:
		return m.listRentals(ctx, id)
	case ButtonReports:
		return m.reports(ctx, id)
	case ButtonSupport:
		return m.support()
	}
	return text(textUseMenu)
}

// OnCallback handles an inline button press.
func (m *Machine) OnCallback(ctx context.Context, id Identity, data string) Response {
	unlock := m.sessions.Lock(id.TelegramID)
	defer unlock()

	st, _ := m.sessions.Get(id.TelegramID)
	switch st.Stage {
	case AwaitingSizeSelection:
		if size, ok := parseSizeCallback(data); ok {
			return m.selectSize(ctx, id, size)
		}
	case AwaitingRentalConfirmation:
		if data == CallbackConfirm {
			return m.confirmRental(ctx, id, st)
		}
		m.sessions.Delete(id.TelegramID)
		return edit(textRentalCancelled)
	case AwaitingReturnSelection:
		if data == CallbackCancel {
			m.sessions.Delete(id.TelegramID)
			return edit(textReturnCancelled)
		}
		if rentalID, ok := parseReturnCallback(data); ok {
			return m.completeRental(ctx, id, rentalID)
		}
	case Idle:
		if data == CallbackReturnSkates {
			return m.chooseReturn(ctx, id)
		}
	}

	m.logger.Debug("Ignoring stale callback",
		zap.Int64("telegram_id", id.TelegramID),
		zap.String("stage", st.Stage.String()),
		zap.String("data", data))
	return text(textStaleButton)
}

func (m *Machine) onStageText(ctx context.Context, id Identity, st State, input string) Response {
	switch st.Stage {
	case AwaitingEmail:
		return m.onEmail(ctx, id, st, input)
	case AwaitingPassword:
		return m.onPassword(id, st, input)
	case AwaitingPhone:
		return m.onPhone(ctx, id, st, input)
	case AwaitingRentalConfirmation:
		m.sessions.Delete(id.TelegramID)
		return Response{Text: textRentalCancelled, Keyboard: mainMenu()}
	default:
		return text(textUseButtons)
	}
}

func (m *Machine) start(ctx context.Context, id Identity) Response {
	m.sessions.Delete(id.TelegramID)

	_, err := m.storage.CustomerByTelegramID(ctx, id.TelegramID)
	switch {
	case err == nil:
		return Response{Text: textWelcomeBack, Keyboard: mainMenu()}
	case errors.Is(err, repository.ErrObjectNotFound):
		m.sessions.Put(id.TelegramID, State{Stage: AwaitingEmail})
		return text(textWelcomeNew)
	default:
		return m.fail(id, "start", err, textGenericFailure)
	}
}

func (m *Machine) cancel(id Identity) Response {
	m.sessions.Delete(id.TelegramID)
	return Response{Text: textCancelled, Keyboard: mainMenu()}
}

func (m *Machine) support() Response {
	return text("🛠 Поддержка: напишите " + m.opts.SupportContact)
}

// customer loads the registered customer. ok is false when the returned
// response should be sent instead.
func (m *Machine) customer(ctx context.Context, id Identity, op string) (*repository.Customer, Response, bool) {
	c, err := m.storage.CustomerByTelegramID(ctx, id.TelegramID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			m.sessions.Delete(id.TelegramID)
			return nil, text(textNotRegistered), false
		}
		return nil, m.fail(id, op, err, textGenericFailure), false
	}
	return c, Response{}, true
}

// fail clears the session and logs err. Users only see msg.
func (m *Machine) fail(id Identity, op string, err error, msg string) Response {
	m.sessions.Delete(id.TelegramID)
	metrics.OperationErrorsTotal.WithLabelValues(op).Inc()

	fields := []zap.Field{
		zap.String("operation", op),
		zap.Int64("telegram_id", id.TelegramID),
		zap.String("kind", apperr.KindOf(err).String()),
		zap.Error(err),
	}
	if apperr.Is(err, apperr.KindConflict) {
		m.logger.Warn("Operation conflict", fields...)
	} else {
		m.logger.Error("Operation failed", fields...)
	}
	return text(msg)
}

func (m *Machine) isAdmin(telegramID int64) bool {
	for _, admin := range m.opts.Admins {
		if admin == telegramID {
			return true
		}
	}
	return false
}

// parseCommand splits "/cmd@bot args" into "cmd" and "args".
func parseCommand(input string) (string, string) {
	cmd, args, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(args)
}
