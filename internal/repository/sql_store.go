package repository

import (
	"context"
	"errors"
	"fmt"

	"budget-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var (
	budgetColumns = []string{
		"id", "organization_id", "creator_id", "title", "total_amount", "details",
		"budget_date", "status", "version", "created_at", "updated_at", "archived_at",
	}
	accountColumns = []string{
		"budget_id", "account_id", "name", "budgeted", "spent", "position",
	}
	transactionColumns = []string{
		"id", "budget_id", "account_id", "organization_id", "kind", "amount", "description",
		"tx_date", "author_id", "author_name", "status", "decided_by", "decided_at", "created_at",
	}
)

// rowScanner is satisfied by pgx rows and database/sql rows alike.
type rowScanner interface {
	Scan(dest ...any) error
}

type rows interface {
	rowScanner
	Next() bool
	Err() error
	Close()
}

// execer hides the difference between pgx and database/sql handles.
type execer interface {
	exec(ctx context.Context, sql string, args ...any) (int64, error)
	query(ctx context.Context, sql string, args ...any) (rows, error)
	queryRow(ctx context.Context, sql string, args ...any) rowScanner
}

type txExecer interface {
	execer
	commit(ctx context.Context) error
	rollback(ctx context.Context) error
}

// sqlStore implements Store on top of any SQL backend reachable through execer.
// Query text is built once with squirrel; only placeholders differ per backend.
type sqlStore struct {
	sb     squirrel.StatementBuilderType
	db     execer
	begin  func(ctx context.Context) (txExecer, error)
	closer func() error
	logger *zap.Logger
}

func (s *sqlStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	return s.inTx(ctx, func(tx execer) error {
		query := s.sb.Insert("budgets").
			Columns(budgetColumns...).
			Values(budget.ID, budget.OrganizationID, budget.CreatorID, budget.Title, budget.TotalAmount,
				budget.Details, budget.Date, budget.Status, budget.Version, budget.CreatedAt,
				budget.UpdatedAt, budget.ArchivedAt)
		if err := s.execBuilder(ctx, tx, query); err != nil {
			return err
		}

		if len(budget.Accounts) == 0 {
			return nil
		}
		accounts := s.sb.Insert("budget_accounts").Columns(accountColumns...)
		for i, acc := range budget.Accounts {
			accounts = accounts.Values(budget.ID, acc.ID, acc.Name, acc.Budgeted, acc.Spent, i)
		}
		return s.execBuilder(ctx, tx, accounts)
	})
}

func (s *sqlStore) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	budgets, err := s.listBudgets(ctx, s.db, BudgetFilter{IDs: []string{id}})
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, ErrNotFound
	}
	return budgets[0], nil
}

func (s *sqlStore) ListBudgets(ctx context.Context, filter BudgetFilter) ([]*models.Budget, error) {
	return s.listBudgets(ctx, s.db, filter)
}

func (s *sqlStore) listBudgets(ctx context.Context, ex execer, filter BudgetFilter) ([]*models.Budget, error) {
	query := s.sb.Select(budgetColumns...).
		From("budgets").
		OrderBy("created_at ASC", "id ASC")
	if filter.OrganizationID != "" {
		query = query.Where(squirrel.Eq{"organization_id": filter.OrganizationID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if len(filter.IDs) > 0 {
		query = query.Where(squirrel.Eq{"id": filter.IDs})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rs, err := ex.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	var budgets []*models.Budget
	byID := make(map[string]*models.Budget)
	for rs.Next() {
		b, err := scanBudget(rs)
		if err != nil {
			rs.Close()
			return nil, err
		}
		budgets = append(budgets, b)
		byID[b.ID] = b
	}
	err = rs.Err()
	// release the connection before the second query; sqlite runs on one
	rs.Close()
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.ID)
	}
	accQuery := s.sb.Select(accountColumns...).
		From("budget_accounts").
		Where(squirrel.Eq{"budget_id": ids}).
		OrderBy("budget_id ASC", "position ASC")

	sql, args, err = accQuery.ToSql()
	if err != nil {
		return nil, err
	}
	accRows, err := ex.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer accRows.Close()

	for accRows.Next() {
		var (
			budgetID string
			position int
			acc      models.Account
		)
		if err := accRows.Scan(&budgetID, &acc.ID, &acc.Name, &acc.Budgeted, &acc.Spent, &position); err != nil {
			return nil, err
		}
		if b, ok := byID[budgetID]; ok {
			b.Accounts = append(b.Accounts, acc)
		}
	}
	return budgets, accRows.Err()
}

func (s *sqlStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.RunAtomic(ctx, InsertTransaction{Transaction: tx})
}

func (s *sqlStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	query := s.sb.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	return scanTransaction(s.db.queryRow(ctx, sql, args...))
}

func (s *sqlStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	query := s.sb.Select(transactionColumns...).
		From("transactions").
		OrderBy("tx_date DESC", "created_at DESC", "id DESC")
	if filter.OrganizationID != "" {
		query = query.Where(squirrel.Eq{"organization_id": filter.OrganizationID})
	}
	if filter.BudgetID != "" {
		query = query.Where(squirrel.Eq{"budget_id": filter.BudgetID})
	}
	if filter.AccountID != "" {
		query = query.Where(squirrel.Eq{"account_id": filter.AccountID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}
	rs, err := s.db.query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()

	var transactions []*models.Transaction
	for rs.Next() {
		t, err := scanTransaction(rs)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rs.Err()
}

func (s *sqlStore) UpdateConditional(ctx context.Context, op Op) error {
	return s.RunAtomic(ctx, op)
}

func (s *sqlStore) RunAtomic(ctx context.Context, ops ...Op) error {
	return s.inTx(ctx, func(tx execer) error {
		for _, op := range ops {
			if err := s.apply(ctx, tx, op); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *sqlStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *sqlStore) apply(ctx context.Context, tx execer, op Op) error {
	switch o := op.(type) {
	case InsertTransaction:
		t := o.Transaction
		query := s.sb.Insert("transactions").
			Columns(transactionColumns...).
			Values(t.ID, t.BudgetID, t.AccountID, t.OrganizationID, t.Kind, t.Amount, t.Description,
				t.Date, t.AuthorID, t.AuthorName, t.Status, t.DecidedBy, t.DecidedAt, t.CreatedAt)
		return s.execBuilder(ctx, tx, query)

	case UpdateBudget:
		b := o.Budget
		query := s.sb.Update("budgets").
			Set("status", b.Status).
			Set("archived_at", b.ArchivedAt).
			Set("updated_at", b.UpdatedAt).
			Set("version", squirrel.Expr("version + 1")).
			Where(squirrel.Eq{"id": b.ID, "version": o.ExpectedVersion})
		affected, err := s.execCount(ctx, tx, query)
		if err != nil {
			return err
		}
		if affected == 0 {
			return s.missingOrConflict(ctx, tx, "budgets", b.ID)
		}
		for _, acc := range b.Accounts {
			accQuery := s.sb.Update("budget_accounts").
				Set("spent", acc.Spent).
				Where(squirrel.Eq{"budget_id": b.ID, "account_id": acc.ID})
			if err := s.execBuilder(ctx, tx, accQuery); err != nil {
				return err
			}
		}
		return nil

	case UpdateTransactionStatus:
		query := s.sb.Update("transactions").
			Set("status", o.To).
			Set("decided_by", o.DecidedBy).
			Set("decided_at", o.DecidedAt).
			Where(squirrel.Eq{"id": o.ID, "status": o.From})
		affected, err := s.execCount(ctx, tx, query)
		if err != nil {
			return err
		}
		if affected == 0 {
			return s.missingOrConflict(ctx, tx, "transactions", o.ID)
		}
		return nil
	}
	return fmt.Errorf("unsupported op %T", op)
}

// missingOrConflict explains a conditional update that touched no rows.
func (s *sqlStore) missingOrConflict(ctx context.Context, tx execer, table, id string) error {
	query := s.sb.Select("1").From(table).Where(squirrel.Eq{"id": id})
	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}
	var one int
	if err := tx.queryRow(ctx, sql, args...).Scan(&one); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%s %s: %w", table, id, ErrNotFound)
		}
		return err
	}
	return fmt.Errorf("%s %s changed concurrently: %w", table, id, ErrConflict)
}

func (s *sqlStore) inTx(ctx context.Context, fn func(tx execer) error) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.rollback(ctx); rbErr != nil {
			s.logger.Warn("Rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return tx.commit(ctx)
}

func (s *sqlStore) execBuilder(ctx context.Context, ex execer, query squirrel.Sqlizer) error {
	_, err := s.execCount(ctx, ex, query)
	return err
}

func (s *sqlStore) execCount(ctx context.Context, ex execer, query squirrel.Sqlizer) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}
	return ex.exec(ctx, sql, args...)
}

func scanBudget(row rowScanner) (*models.Budget, error) {
	var b models.Budget
	err := row.Scan(
		&b.ID, &b.OrganizationID, &b.CreatorID, &b.Title, &b.TotalAmount, &b.Details,
		&b.Date, &b.Status, &b.Version, &b.CreatedAt, &b.UpdatedAt, &b.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID, &t.BudgetID, &t.AccountID, &t.OrganizationID, &t.Kind, &t.Amount, &t.Description,
		&t.Date, &t.AuthorID, &t.AuthorName, &t.Status, &t.DecidedBy, &t.DecidedAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
