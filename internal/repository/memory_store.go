package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"budget-ledger/internal/models"

	"go.uber.org/zap"
)

// MemoryStore keeps the ledger in process memory. It backs STORAGE_DRIVER=memory
// and the service tests.
type MemoryStore struct {
	mu           sync.Mutex
	budgets      map[string]*models.Budget
	transactions map[string]*models.Transaction
	logger       *zap.Logger
}

func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		budgets:      make(map[string]*models.Budget),
		transactions: make(map[string]*models.Transaction),
		logger:       logger,
	}
}

func (s *MemoryStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[budget.ID]; ok {
		return fmt.Errorf("budget %s already exists", budget.ID)
	}
	s.budgets[budget.ID] = budget.Clone()
	return nil
}

func (s *MemoryStore) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b.Clone(), nil
}

func (s *MemoryStore) ListBudgets(ctx context.Context, filter BudgetFilter) ([]*models.Budget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids map[string]bool
	if len(filter.IDs) > 0 {
		ids = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = true
		}
	}

	var out []*models.Budget
	for _, b := range s.budgets {
		if filter.OrganizationID != "" && b.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if ids != nil && !ids[b.ID] {
			continue
		}
		out = append(out, b.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	return s.RunAtomic(ctx, InsertTransaction{Transaction: tx})
}

func (s *MemoryStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t.Clone(), nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.Transaction
	for _, t := range s.transactions {
		if filter.OrganizationID != "" && t.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.BudgetID != "" && t.BudgetID != filter.BudgetID {
			continue
		}
		if filter.AccountID != "" && t.AccountID != filter.AccountID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, t.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) UpdateConditional(ctx context.Context, op Op) error {
	return s.RunAtomic(ctx, op)
}

// RunAtomic validates every op against current state before touching it, so a
// failing op leaves the store unchanged.
func (s *MemoryStore) RunAtomic(ctx context.Context, ops ...Op) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// stage writes on copies; commit only if all succeed
	budgets := make(map[string]*models.Budget)
	txs := make(map[string]*models.Transaction)

	lookupBudget := func(id string) (*models.Budget, bool) {
		if b, ok := budgets[id]; ok {
			return b, true
		}
		b, ok := s.budgets[id]
		if !ok {
			return nil, false
		}
		c := b.Clone()
		budgets[id] = c
		return c, true
	}
	lookupTx := func(id string) (*models.Transaction, bool) {
		if t, ok := txs[id]; ok {
			return t, true
		}
		t, ok := s.transactions[id]
		if !ok {
			return nil, false
		}
		c := t.Clone()
		txs[id] = c
		return c, true
	}

	for _, op := range ops {
		switch o := op.(type) {
		case InsertTransaction:
			if _, exists := lookupTx(o.Transaction.ID); exists {
				return fmt.Errorf("transaction %s already exists", o.Transaction.ID)
			}
			if _, ok := lookupBudget(o.Transaction.BudgetID); !ok {
				return fmt.Errorf("transaction %s references unknown budget %s: %w", o.Transaction.ID, o.Transaction.BudgetID, ErrNotFound)
			}
			txs[o.Transaction.ID] = o.Transaction.Clone()

		case UpdateBudget:
			current, ok := lookupBudget(o.Budget.ID)
			if !ok {
				return fmt.Errorf("budget %s: %w", o.Budget.ID, ErrNotFound)
			}
			if current.Version != o.ExpectedVersion {
				return fmt.Errorf("budget %s at version %d, expected %d: %w", o.Budget.ID, current.Version, o.ExpectedVersion, ErrConflict)
			}
			current.Status = o.Budget.Status
			current.ArchivedAt = o.Budget.ArchivedAt
			current.UpdatedAt = o.Budget.UpdatedAt
			for _, acc := range o.Budget.Accounts {
				if target := current.Account(acc.ID); target != nil {
					target.Spent = acc.Spent
				}
			}
			current.Version++

		case UpdateTransactionStatus:
			current, ok := lookupTx(o.ID)
			if !ok {
				return fmt.Errorf("transaction %s: %w", o.ID, ErrNotFound)
			}
			if current.Status != o.From {
				return fmt.Errorf("transaction %s is %s, expected %s: %w", o.ID, current.Status, o.From, ErrConflict)
			}
			current.Status = o.To
			decidedBy := o.DecidedBy
			decidedAt := o.DecidedAt
			current.DecidedBy = &decidedBy
			current.DecidedAt = &decidedAt

		default:
			return fmt.Errorf("unsupported op %T", op)
		}
	}

	for id, b := range budgets {
		s.budgets[id] = b
	}
	for id, t := range txs {
		s.transactions[id] = t
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
