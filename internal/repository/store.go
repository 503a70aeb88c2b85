package repository

import (
	"context"
	"errors"
	"time"

	"budget-ledger/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict means a conditional write found the record changed since it was read.
	ErrConflict = errors.New("conditional update conflict")
)

// Store is the persistence collaborator of the ledger. Reads return copies;
// mutating a returned record never changes stored state.
type Store interface {
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]*models.Budget, error)

	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)

	// UpdateConditional applies a single op, returning ErrConflict if its
	// precondition does not hold.
	UpdateConditional(ctx context.Context, op Op) error
	// RunAtomic applies every op or none of them.
	RunAtomic(ctx context.Context, ops ...Op) error

	Close() error
}

// BudgetFilter narrows ListBudgets. Zero fields match everything.
type BudgetFilter struct {
	OrganizationID string
	Status         models.BudgetStatus
	IDs            []string
}

// TransactionFilter narrows ListTransactions. Results are newest date first.
type TransactionFilter struct {
	OrganizationID string
	BudgetID       string
	AccountID      string
	Status         models.TransactionStatus
	Limit          int
}

// Op is one write inside UpdateConditional or RunAtomic.
type Op interface {
	opName() string
}

// InsertTransaction adds a new transaction record.
type InsertTransaction struct {
	Transaction *models.Transaction
}

// UpdateBudget overwrites the budget's status, archive time and every
// account's spent, provided the stored version still equals ExpectedVersion.
// The stored version is incremented on success.
type UpdateBudget struct {
	Budget          *models.Budget
	ExpectedVersion int64
}

// UpdateTransactionStatus moves a transaction from From to To.
type UpdateTransactionStatus struct {
	ID        string
	From      models.TransactionStatus
	To        models.TransactionStatus
	DecidedBy string
	DecidedAt time.Time
}

func (InsertTransaction) opName() string       { return "insert_transaction" }
func (UpdateBudget) opName() string            { return "update_budget" }
func (UpdateTransactionStatus) opName() string { return "update_transaction_status" }
