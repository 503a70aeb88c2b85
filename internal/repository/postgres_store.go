package repository

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresStore persists the ledger in PostgreSQL through a pgx pool.
type PostgresStore struct {
	*sqlStore
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		sqlStore: &sqlStore{
			sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
			db: pgxExecer{q: db},
			begin: func(ctx context.Context) (txExecer, error) {
				tx, err := db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
				if err != nil {
					return nil, err
				}
				return pgxTx{pgxExecer: pgxExecer{q: tx}, tx: tx}, nil
			},
			closer: func() error {
				db.Close()
				return nil
			},
			logger: logger,
		},
	}
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxExecer struct {
	q pgxQuerier
}

func (e pgxExecer) exec(ctx context.Context, sql string, args ...any) (int64, error) {
	tag, err := e.q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (e pgxExecer) query(ctx context.Context, sql string, args ...any) (rows, error) {
	rs, err := e.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (e pgxExecer) queryRow(ctx context.Context, sql string, args ...any) rowScanner {
	return pgxRow{row: e.q.QueryRow(ctx, sql, args...)}
}

type pgxRow struct {
	row pgx.Row
}

func (r pgxRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type pgxTx struct {
	pgxExecer
	tx pgx.Tx
}

func (t pgxTx) commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t pgxTx) rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }
