//go:generate mockgen -source ./database.go -destination=./mocks/database.go -package=mock_database
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// ErrUnexpectedRows aborts a batch whose statement touched a different number
// of rows than it declared.
var ErrUnexpectedRows = errors.New("unexpected number of affected rows")

const defaultQueryTimeout = 5 * time.Second

type DB interface {
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Scalar(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	ExecBatch(ctx context.Context, stmts []Statement) error
	BeginTx(ctx context.Context) (Tx, error)
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Ping(ctx context.Context) error
}

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Statement is one step of an ExecBatch. ExpectRows > 0 requires the
// statement to affect exactly that many rows.
type Statement struct {
	Query      string
	Args       []interface{}
	ExpectRows int64
}

func NewStatement(query string, args ...interface{}) Statement {
	return Statement{Query: query, Args: args}
}

func (s Statement) Expect(rows int64) Statement {
	s.ExpectRows = rows
	return s
}

type Database struct {
	cluster *pgxpool.Pool
	timeout time.Duration
	logger  *zap.Logger
}

func NewDatabase(cluster *pgxpool.Pool, timeout time.Duration, logger *zap.Logger) *Database {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Database{cluster: cluster, timeout: timeout, logger: logger}
}

func (db *Database) GetPool() *pgxpool.Pool {
	return db.cluster
}

func (db *Database) Close() {
	db.cluster.Close()
	db.logger.Info("Database pool closed")
}

func (db *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	return db.cluster.Ping(ctx)
}

func (db *Database) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	err := pgxscan.Get(ctx, db.cluster, dest, query, args...)
	db.logQueryError(query, err)
	return err
}

func (db *Database) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	err := pgxscan.Select(ctx, db.cluster, dest, query, args...)
	db.logQueryError(query, err)
	return err
}

// Scalar reads the single column of the single row returned by query into
// dest. It returns pgx.ErrNoRows when the query yields nothing.
func (db *Database) Scalar(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	err := db.cluster.QueryRow(ctx, query, args...).Scan(dest)
	db.logQueryError(query, err)
	return err
}

func (db *Database) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	ctx, cancel := context.WithTimeout(ctx, db.timeout)
	defer cancel()
	tag, err := db.cluster.Exec(ctx, query, args...)
	db.logQueryError(query, err)
	return tag, err
}

func (db *Database) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := db.cluster.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &Transaction{tx: tx}, nil
}

// InTx runs fn inside a transaction bounded by the query timeout. fn gets the
// bounded context and must use it for every statement. The transaction
// commits when fn returns nil and rolls back otherwise.
func (db *Database) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return runTx(ctx, db.timeout, db.BeginTx, fn, db.logger)
}

func runTx(
	ctx context.Context,
	timeout time.Duration,
	begin func(ctx context.Context) (Tx, error),
	fn func(ctx context.Context, tx Tx) error,
	logger *zap.Logger,
) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tx, err := begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logger.Error("Transaction rollback failed", zap.Error(rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExecBatch applies stmts in order inside one transaction. Any failure rolls
// the whole batch back.
func (db *Database) ExecBatch(ctx context.Context, stmts []Statement) error {
	if err := db.InTx(ctx, func(ctx context.Context, tx Tx) error {
		return ExecTx(ctx, tx, stmts)
	}); err != nil {
		return err
	}
	db.logger.Debug("Batch committed", zap.Int("statements", len(stmts)))
	return nil
}

// ExecTx applies stmts in order on tx, checking declared row counts.
func ExecTx(ctx context.Context, tx Tx, stmts []Statement) error {
	for i, st := range stmts {
		tag, err := tx.Exec(ctx, st.Query, st.Args...)
		if err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
		if st.ExpectRows > 0 && tag.RowsAffected() != st.ExpectRows {
			return fmt.Errorf("statement %d affected %d rows, want %d: %w",
				i, tag.RowsAffected(), st.ExpectRows, ErrUnexpectedRows)
		}
	}
	return nil
}

func (db *Database) logQueryError(query string, err error) {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return
	}
	db.logger.Error("SQL error", zap.Error(err), zap.String("query", shorten(query, 120)))
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

type Transaction struct {
	tx pgx.Tx
}

func (t *Transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Transaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *Transaction) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	return t.tx.Exec(ctx, query, args...)
}

func (t *Transaction) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return pgxscan.Get(ctx, t.tx, dest, query, args...)
}

func (t *Transaction) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return pgxscan.Select(ctx, t.tx, dest, query, args...)
}
