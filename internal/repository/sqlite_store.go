package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// SQLiteStore keeps the ledger in a local SQLite file.
type SQLiteStore struct {
	*sqlStore
}

func NewSQLiteStore(db *sql.DB, logger *zap.Logger) *SQLiteStore {
	return &SQLiteStore{
		sqlStore: &sqlStore{
			sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
			db: sqlExecer{q: db},
			begin: func(ctx context.Context) (txExecer, error) {
				tx, err := db.BeginTx(ctx, nil)
				if err != nil {
					return nil, err
				}
				return sqlTx{sqlExecer: sqlExecer{q: tx}, tx: tx}, nil
			},
			closer: db.Close,
			logger: logger,
		},
	}
}

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlExecer struct {
	q sqlQuerier
}

func (e sqlExecer) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := e.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (e sqlExecer) query(ctx context.Context, query string, args ...any) (rows, error) {
	rs, err := e.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{Rows: rs}, nil
}

func (e sqlExecer) queryRow(ctx context.Context, query string, args ...any) rowScanner {
	return sqlRow{row: e.q.QueryRowContext(ctx, query, args...)}
}

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() {
	_ = r.Rows.Close()
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type sqlTx struct {
	sqlExecer
	tx *sql.Tx
}

func (t sqlTx) commit(context.Context) error   { return t.tx.Commit() }
func (t sqlTx) rollback(context.Context) error { return t.tx.Rollback() }
