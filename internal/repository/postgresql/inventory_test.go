package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "github.com/skaterent/rentbot/internal/db/mocks"
	"github.com/skaterent/rentbot/internal/repository"
	"github.com/skaterent/rentbot/internal/repository/postgresql"
)

func TestInventoryRepo_AvailableSizes(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewInventoryRepo(mockDB)

		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), repository.GetAvailableSizes).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*[]*repository.SizeOption) = []*repository.SizeOption{{Size: 38}, {Size: 42}}
				return nil
			})

		sizes, err := repo.AvailableSizes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{38, 42}, sizes)
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewInventoryRepo(mockDB)

		expectedErr := errors.New("database error")
		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any()).Return(expectedErr)

		sizes, err := repo.AvailableSizes(ctx)
		assert.ErrorIs(t, err, expectedErr)
		assert.Nil(t, sizes)
	})
}

func TestInventoryRepo_FirstAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("lowest id unit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewInventoryRepo(mockDB)

		unit := &repository.InventoryUnit{ID: 3, Size: 42, Brand: "Bauer", ModelName: "X-LP", Status: repository.UnitAvailable}
		mockDB.EXPECT().
			Get(gomock.Any(), gomock.Any(), repository.GetFirstAvailableUnit, 42).
			DoAndReturn(func(_ context.Context, dest interface{}, _ string, _ ...interface{}) error {
				*dest.(*repository.InventoryUnit) = *unit
				return nil
			})

		got, err := repo.FirstAvailable(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, unit, got)
	})

	t.Run("none available", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewInventoryRepo(mockDB)

		mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), repository.GetFirstAvailableUnit, 44).Return(pgx.ErrNoRows)

		_, err := repo.FirstAvailable(ctx, 44)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestInventoryRepo_MarkRentedTx(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		tag  pgconn.CommandTag
		want bool
	}{
		{name: "unit was available", tag: pgconn.CommandTag("UPDATE 1"), want: true},
		{name: "unit already taken", tag: pgconn.CommandTag("UPDATE 0"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTx := mock_database.NewMockTx(ctrl)
			repo := postgresql.NewInventoryRepo(mock_database.NewMockDB(ctrl))

			mockTx.EXPECT().Exec(gomock.Any(), repository.MarkUnitRented, int64(3)).Return(tt.tag, nil)

			ok, err := repo.MarkRentedTx(ctx, mockTx, 3)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestInventoryRepo_SetStatusTx(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTx := mock_database.NewMockTx(ctrl)
	repo := postgresql.NewInventoryRepo(mock_database.NewMockDB(ctrl))

	mockTx.EXPECT().
		Exec(gomock.Any(), repository.UpdateInventoryStatus, int64(5), "repair", "available").
		Return(pgconn.CommandTag("UPDATE 1"), nil)

	ok, err := repo.SetStatusTx(ctx, mockTx, 5, repository.UnitAvailable, repository.UnitRepair)
	assert.NoError(t, err)
	assert.True(t, ok)
}
