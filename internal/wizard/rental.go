package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/report"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
)

func (m *Machine) beginRental(ctx context.Context, id Identity) Response {
	customer, resp, ok := m.customer(ctx, id, "rent")
	if !ok {
		return resp
	}

	allowed, err := m.storage.CanRent(ctx, customer.ID)
	if err != nil {
		return m.fail(id, "rent", err, textGenericFailure)
	}
	if !allowed {
		return text(textActiveLimit)
	}

	sizes, err := m.storage.AvailableSizes(ctx)
	if err != nil {
		return m.fail(id, "rent", err, textGenericFailure)
	}
	if len(sizes) == 0 {
		return text(textNoSkates)
	}

	m.sessions.Put(id.TelegramID, State{Stage: AwaitingSizeSelection})
	return Response{Text: textChooseSize, Keyboard: sizesKeyboard(sizes)}
}

func (m *Machine) selectSize(ctx context.Context, id Identity, size int) Response {
	unit, err := m.storage.FindAvailableUnit(ctx, size)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			m.sessions.Delete(id.TelegramID)
			return edit(textSizeUnavailable)
		}
		return m.fail(id, "find unit", err, textGenericFailure)
	}

	m.sessions.Put(id.TelegramID, State{
		Stage:  AwaitingRentalConfirmation,
		Size:   size,
		UnitID: unit.ID,
	})
	return Response{
		Text: fmt.Sprintf("🔍 Найден доступный инвентарь:\n• Модель: %s %s\n• Размер: %d\n\nПодтверждаете аренду?",
			unit.Brand, unit.ModelName, size),
		Keyboard:     confirmKeyboard(),
		EditPrevious: true,
	}
}

func (m *Machine) confirmRental(ctx context.Context, id Identity, st State) Response {
	customer, resp, ok := m.customer(ctx, id, "create rental")
	if !ok {
		return resp
	}
	m.sessions.Delete(id.TelegramID)

	rental, err := m.storage.CreateRental(ctx, customer, st.UnitID)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrUnitUnavailable):
		m.logger.Info("Unit taken before confirmation",
			zap.Int64("telegram_id", id.TelegramID),
			zap.Int64("unit_id", st.UnitID))
		return edit(textUnitJustTaken)
	case errors.Is(err, storage.ErrActiveLimit):
		return edit(textActiveLimit)
	default:
		return m.fail(id, "create rental", err, textRentalFailed)
	}

	metrics.RentalsCreatedTotal.Inc()
	m.logger.Info("Rental created",
		zap.Int64("telegram_id", id.TelegramID),
		zap.Int64("rental_id", rental.ID),
		zap.Int64("unit_id", st.UnitID))
	return edit(fmt.Sprintf("🎉 Аренда успешно оформлена!\nСтоимость: %s/час", report.FormatCurrency(rental.PricePerHour)))
}

func (m *Machine) listRentals(ctx context.Context, id Identity) Response {
	customer, resp, ok := m.customer(ctx, id, "list rentals")
	if !ok {
		return resp
	}

	rentals, err := m.storage.ActiveRentals(ctx, customer.ID)
	if err != nil {
		return m.fail(id, "list rentals", err, textGenericFailure)
	}
	if len(rentals) == 0 {
		return text(textNoActiveRentals)
	}

	now := m.timeNow()
	lines := []string{textActiveHeader}
	for i, r := range rentals {
		hours := now.Sub(r.StartTime).Hours()
		if hours < 0 {
			hours = 0
		}
		lines = append(lines, fmt.Sprintf("%d. %s %d\n   Начало: %s\n   Длительность: %.1f ч\n   Стоимость: %s",
			i+1, r.Brand, r.Size,
			r.StartTime.Format("02.01 15:04"),
			hours,
			report.FormatCurrency(r.PricePerHour*hours)))
	}
	return Response{Text: strings.Join(lines, "\n"), Keyboard: returnButtonKeyboard()}
}

func (m *Machine) chooseReturn(ctx context.Context, id Identity) Response {
	customer, resp, ok := m.customer(ctx, id, "return")
	if !ok {
		return resp
	}

	rentals, err := m.storage.ActiveRentals(ctx, customer.ID)
	if err != nil {
		return m.fail(id, "return", err, textGenericFailure)
	}
	if len(rentals) == 0 {
		return edit(textNoActiveRentals)
	}

	kb := &Keyboard{Kind: InlineKeyboard}
	for _, r := range rentals {
		kb.Rows = append(kb.Rows, []Button{{
			Text: fmt.Sprintf("%s %d (#%d)", r.Brand, r.Size, r.ID),
			Data: returnCallback(r.ID),
		}})
	}
	kb.Rows = append(kb.Rows, []Button{{Text: buttonCancel, Data: CallbackCancel}})

	m.sessions.Put(id.TelegramID, State{Stage: AwaitingReturnSelection})
	return Response{Text: textChooseReturn, Keyboard: kb, EditPrevious: true}
}

func (m *Machine) completeRental(ctx context.Context, id Identity, rentalID int64) Response {
	customer, resp, ok := m.customer(ctx, id, "complete rental")
	if !ok {
		return resp
	}
	m.sessions.Delete(id.TelegramID)

	rental, err := m.storage.CompleteRental(ctx, customer, rentalID)
	if err != nil {
		if errors.Is(err, storage.ErrRentalNotActive) {
			return edit(textAlreadyReturned)
		}
		return m.fail(id, "complete rental", err, textReturnFailed)
	}

	metrics.RentalsCompletedTotal.Inc()
	m.logger.Info("Rental completed",
		zap.Int64("telegram_id", id.TelegramID),
		zap.Int64("rental_id", rental.ID))

	var hours, cost float64
	if rental.EndTime != nil {
		hours = rental.EndTime.Sub(rental.StartTime).Hours()
	}
	if rental.TotalCost != nil {
		cost = *rental.TotalCost
	}
	return edit(fmt.Sprintf("✅ Коньки возвращены!\nДлительность: %.2f ч\nК оплате: %s", hours, report.FormatCurrency(cost)))
}

func parseSizeCallback(data string) (int, bool) {
	raw, ok := strings.CutPrefix(data, CallbackSizePrefix)
	if !ok {
		return 0, false
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

func parseReturnCallback(data string) (int64, bool) {
	raw, ok := strings.CutPrefix(data, CallbackReturnPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
