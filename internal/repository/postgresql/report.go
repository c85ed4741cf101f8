package postgresql

import (
	"context"
	"fmt"

	"github.com/skaterent/rentbot/internal/db"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/storage"
)

type ReportRepo struct {
	db db.DB
}

func NewReportRepo(db db.DB) storage.ReportRepository {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) RentalHistory(ctx context.Context, clientID int64) ([]*repository.RentalHistoryRow, error) {
	var rows []*repository.RentalHistoryRow
	if err := r.db.Select(ctx, &rows, repository.GetRentalHistory, clientID); err != nil {
		return nil, fmt.Errorf("failed to get rental history: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) PopularSizes(ctx context.Context, limit int) ([]*repository.SizePopularity, error) {
	var rows []*repository.SizePopularity
	if err := r.db.Select(ctx, &rows, repository.GetPopularSizes, limit); err != nil {
		return nil, fmt.Errorf("failed to get popular sizes: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) DailyIncome(ctx context.Context) ([]*repository.DailyIncome, error) {
	var rows []*repository.DailyIncome
	if err := r.db.Select(ctx, &rows, repository.GetFinancialReport); err != nil {
		return nil, fmt.Errorf("failed to get financial report: %w", err)
	}
	return rows, nil
}
