package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/db"
	mock_database "github.com/skaterent/rentbot/internal/db/mocks"
)

func TestExecTx(t *testing.T) {
	ctx := context.Background()

	t.Run("all statements applied in order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := mock_database.NewMockTx(ctrl)
		gomock.InOrder(
			mockTx.EXPECT().Exec(ctx, "UPDATE a", 1).Return(pgconn.CommandTag("UPDATE 1"), nil),
			mockTx.EXPECT().Exec(ctx, "INSERT b", "x").Return(pgconn.CommandTag("INSERT 0 1"), nil),
		)

		err := db.ExecTx(ctx, mockTx, []db.Statement{
			db.NewStatement("UPDATE a", 1).Expect(1),
			db.NewStatement("INSERT b", "x"),
		})
		assert.NoError(t, err)
	})

	t.Run("row expectation mismatch stops the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := mock_database.NewMockTx(ctrl)
		mockTx.EXPECT().Exec(ctx, "UPDATE a", 1).Return(pgconn.CommandTag("UPDATE 0"), nil)

		err := db.ExecTx(ctx, mockTx, []db.Statement{
			db.NewStatement("UPDATE a", 1).Expect(1),
			db.NewStatement("INSERT b", "x"),
		})
		assert.ErrorIs(t, err, db.ErrUnexpectedRows)
	})

	t.Run("statement error is wrapped with its position", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		expectedErr := errors.New("database error")
		mockTx := mock_database.NewMockTx(ctrl)
		mockTx.EXPECT().Exec(ctx, "INSERT b").Return(nil, expectedErr)

		err := db.ExecTx(ctx, mockTx, []db.Statement{db.NewStatement("INSERT b")})
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "statement 0")
	})
}

func TestRunTx(t *testing.T) {
	ctx := context.Background()

	t.Run("statements run under the bounded context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := mock_database.NewMockTx(ctrl)
		begin := func(ctx context.Context) (db.Tx, error) { return mockTx, nil }

		var stmtCtx context.Context
		mockTx.EXPECT().Exec(gomock.Any(), "UPDATE a").
			DoAndReturn(func(ctx context.Context, _ string, _ ...interface{}) (pgconn.CommandTag, error) {
				stmtCtx = ctx
				return pgconn.CommandTag("UPDATE 1"), nil
			})
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)

		err := db.RunTx(ctx, 2*time.Second, begin, func(ctx context.Context, tx db.Tx) error {
			_, err := tx.Exec(ctx, "UPDATE a")
			return err
		}, zap.NewNop())
		require.NoError(t, err)

		require.NotNil(t, stmtCtx)
		deadline, ok := stmtCtx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
	})

	t.Run("error rolls back", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockTx := mock_database.NewMockTx(ctrl)
		begin := func(ctx context.Context) (db.Tx, error) { return mockTx, nil }
		expectedErr := errors.New("constraint")
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := db.RunTx(ctx, time.Second, begin, func(context.Context, db.Tx) error {
			return expectedErr
		}, zap.NewNop())
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("begin failure", func(t *testing.T) {
		begin := func(ctx context.Context) (db.Tx, error) { return nil, errors.New("pool closed") }

		err := db.RunTx(ctx, time.Second, begin, func(context.Context, db.Tx) error {
			t.Fatal("fn must not run")
			return nil
		}, zap.NewNop())
		assert.ErrorContains(t, err, "failed to begin transaction")
	})
}

func TestOptions_DSN(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "plain", password: "secret"},
		{name: "space and quote", password: "it's a secret"},
		{name: "url reserved", password: "p@ss:w/rd?#%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := db.Options{Host: "db.local", Port: 6432, User: "rent bot", Password: tt.password, Name: "skates"}

			cfg, err := pgconn.ParseConfig(opts.DSN())
			require.NoError(t, err)

			assert.Equal(t, "db.local", cfg.Host)
			assert.Equal(t, uint16(6432), cfg.Port)
			assert.Equal(t, "rent bot", cfg.User)
			assert.Equal(t, tt.password, cfg.Password)
			assert.Equal(t, "skates", cfg.Database)
		})
	}
}
