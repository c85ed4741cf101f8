package wizard

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/storage"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPassword(password string) bool {
	return utf8.RuneCountInString(password) >= minPasswordLength
}

// validPhone accepts 11 or 12 characters starting with +7 or 8.
func validPhone(phone string) bool {
	n := utf8.RuneCountInString(phone)
	if n != 11 && n != 12 {
		return false
	}
	return strings.HasPrefix(phone, "+7") || strings.HasPrefix(phone, "8")
}

func (m *Machine) onEmail(ctx context.Context, id Identity, st State, input string) Response {
	email := strings.ToLower(input)
	if !validEmail(email) {
		return text(textBadEmail)
	}

	taken, err := m.storage.EmailTaken(ctx, email)
	if err != nil {
		return m.fail(id, "check email", err, textRegistrationFailed)
	}
	if taken {
		return text(textEmailTaken)
	}

	st.Email = email
	st.Stage = AwaitingPassword
	m.sessions.Put(id.TelegramID, st)
	return text(textAskPassword)
}

func (m *Machine) onPassword(id Identity, st State, input string) Response {
	if !validPassword(input) {
		return text(textShortPassword)
	}

	st.Password = input
	st.Stage = AwaitingPhone
	m.sessions.Put(id.TelegramID, st)
	return text(textAskPhone)
}

func (m *Machine) onPhone(ctx context.Context, id Identity, st State, input string) Response {
	if !validPhone(input) {
		return text(textBadPhone)
	}

	customer, err := m.storage.RegisterCustomer(ctx, storage.Registration{
		TelegramID: id.TelegramID,
		Name:       id.DisplayName,
		Email:      st.Email,
		Password:   st.Password,
		Phone:      input,
	})
	if err != nil {
		// No retry loop: a duplicate ends the wizard like any other failure.
		return m.fail(id, "register", err, textRegistrationFailed)
	}

	m.sessions.Delete(id.TelegramID)
	metrics.RegistrationsTotal.Inc()
	m.logger.Info("Customer registered",
		zap.Int64("telegram_id", id.TelegramID),
		zap.Int64("customer_id", customer.ID))
	return Response{Text: textRegistered, Keyboard: mainMenu()}
}

// updatePhone serves /phone <number> for registered customers.
func (m *Machine) updatePhone(ctx context.Context, id Identity, phone string) Response {
	if phone == "" {
		return text(textPhoneUsage)
	}
	if !validPhone(phone) {
		return text(textBadPhone)
	}

	customer, resp, ok := m.customer(ctx, id, "update phone")
	if !ok {
		return resp
	}
	if err := m.storage.UpdatePhone(ctx, customer, phone); err != nil {
		return m.fail(id, "update phone", err, textGenericFailure)
	}
	return text("✅ Телефон обновлен: " + phone)
}
