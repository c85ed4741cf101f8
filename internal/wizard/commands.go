package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/report"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
)

func (m *Machine) command(ctx context.Context, id Identity, cmd, args string) Response {
	switch cmd {
	case "phone":
		return m.updatePhone(ctx, id, args)
	case "repair":
		return m.setUnitStatus(ctx, id, args, repository.UnitRepair)
	case "release":
		return m.setUnitStatus(ctx, id, args, repository.UnitAvailable)
	case "finance":
		return m.finance(ctx, id)
	}
	return text(textUseMenu)
}

// reports sends the customer's rental history and the size popularity chart,
// then removes report files older than the retention.
func (m *Machine) reports(ctx context.Context, id Identity) Response {
	customer, resp, ok := m.customer(ctx, id, "report")
	if !ok {
		return resp
	}

	csvReport, err := m.reporter.RentalReport(ctx, id.TelegramID, customer.ID)
	if err != nil {
		return m.fail(id, "report", err, textReportFailed)
	}
	out := Response{Attachments: []Attachment{{
		Kind:    DocumentAttachment,
		Name:    reportFileName,
		Caption: textReportCaption,
		Data:    csvReport.Data,
	}}}

	chart, err := m.reporter.PopularityChart(ctx)
	switch {
	case err == nil:
		out.Attachments = append(out.Attachments, Attachment{
			Kind:    PhotoAttachment,
			Name:    chartFileName,
			Caption: textChartCaption,
			Data:    chart.Data,
		})
	case errors.Is(err, report.ErrNoData):
	default:
		return m.fail(id, "report", err, textReportFailed)
	}

	if removed, err := m.reporter.Cleanup(m.opts.FileRetention); err != nil {
		m.logger.Error("Failed to clean up report files", zap.Int("removed", removed), zap.Error(err))
	}

	metrics.ReportsGeneratedTotal.Inc()
	return out
}

func (m *Machine) finance(ctx context.Context, id Identity) Response {
	if !m.isAdmin(id.TelegramID) {
		return text(textAdminOnly)
	}

	income, err := m.reporter.IncomeReport(ctx)
	if err != nil {
		return m.fail(id, "finance", err, textReportFailed)
	}
	metrics.ReportsGeneratedTotal.Inc()
	return Response{Attachments: []Attachment{{
		Kind:    DocumentAttachment,
		Name:    incomeFileName,
		Caption: textIncomeCaption,
		Data:    income.Data,
	}}}
}

func (m *Machine) setUnitStatus(ctx context.Context, id Identity, args string, to repository.UnitStatus) Response {
	if !m.isAdmin(id.TelegramID) {
		return text(textAdminOnly)
	}

	unitID, err := strconv.ParseInt(args, 10, 64)
	if err != nil || unitID <= 0 {
		if to == repository.UnitRepair {
			return text("Использование: /repair <номер единицы>")
		}
		return text("Использование: /release <номер единицы>")
	}

	err = m.storage.SetUnitStatus(ctx, id.TelegramID, unitID, to)
	switch {
	case err == nil:
		m.logger.Info("Inventory status changed",
			zap.Int64("admin_id", id.TelegramID),
			zap.Int64("unit_id", unitID),
			zap.String("status", string(to)))
		return text(fmt.Sprintf(textUnitStatusChanged, unitID, to))
	case errors.Is(err, repository.ErrObjectNotFound):
		return text(fmt.Sprintf("Единица инвентаря #%d не найдена.", unitID))
	case errors.Is(err, storage.ErrStatusUnchanged):
		return text(fmt.Sprintf("Единица #%d сейчас не может перейти в статус %s.", unitID, to))
	default:
		return m.fail(id, "set unit status", err, textGenericFailure)
	}
}
