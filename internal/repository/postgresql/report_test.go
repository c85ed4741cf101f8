package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "github.com/skaterent/rentbot/internal/db/mocks"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/repository/postgresql"
)

func TestReportRepo_PopularSizes(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewReportRepo(mockDB)

	expected := []*repository.SizePopularity{{Size: 42, RentalsCount: 5}, {Size: 40, RentalsCount: 3}}
	mockDB.EXPECT().
		Select(gomock.Any(), gomock.Any(), repository.GetPopularSizes, 5).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]*repository.SizePopularity) = expected
			return nil
		})

	got, err := repo.PopularSizes(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestReportRepo_RentalHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewReportRepo(mockDB)

		expected := []*repository.RentalHistoryRow{{StartTime: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC), Brand: "Bauer", Size: 42}}
		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), repository.GetRentalHistory, int64(7)).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*[]*repository.RentalHistoryRow) = expected
				return nil
			})

		got, err := repo.RentalHistory(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewReportRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(expectedErr)

		_, err := repo.RentalHistory(ctx, 7)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestReportRepo_DailyIncome(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewReportRepo(mockDB)

	expected := []*repository.DailyIncome{{Day: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), TotalIncome: 1200, TransactionsCount: 3}}
	mockDB.EXPECT().
		Select(gomock.Any(), gomock.Any(), repository.GetFinancialReport).
		DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
			*dest.(*[]*repository.DailyIncome) = expected
			return nil
		})

	got, err := repo.DailyIncome(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestActionLogRepo(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewActionLogRepo(mockDB)

		clientID := int64(7)
		at := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
		entry := &repository.ActionLogEntry{ClientID: &clientID, ActionType: repository.ActionRentStart, Details: "Rental #99", EventTime: at}

		mockTx.EXPECT().
			Exec(gomock.Any(), repository.LogAction, &clientID, repository.ActionRentStart, "Rental #99", at).
			Return(pgconn.CommandTag("INSERT 0 1"), nil)

		assert.NoError(t, repo.CreateTx(ctx, mockTx, entry))
	})

	t.Run("delete older than", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewActionLogRepo(mockDB)

		cutoff := time.Date(2024, 12, 11, 0, 0, 0, 0, time.UTC)
		mockDB.EXPECT().
			Exec(gomock.Any(), repository.CleanupOldLogs, cutoff).
			Return(pgconn.CommandTag("DELETE 12"), nil)

		n, err := repo.DeleteOlderThan(ctx, cutoff)
		assert.NoError(t, err)
		assert.Equal(t, int64(12), n)
	})
}
