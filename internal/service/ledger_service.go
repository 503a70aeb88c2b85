package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"budget-ledger/internal/models"
	"budget-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Options struct {
	// Policy applies when a create call does not name one.
	Policy AllocationPolicy
	// MaxRetries bounds the read-compute-write attempts of a balance update.
	MaxRetries int
	Now        func() time.Time
	NewID      func() string
}

// LedgerService owns the store and hands out session handles.
type LedgerService struct {
	store  repository.Store
	opts   Options
	logger *zap.Logger

	mu sync.Mutex
	// inFlight holds the callers with a mutation running. Entries are removed
	// on release, so the map never outgrows the number of concurrent writers.
	inFlight map[callerKey]struct{}
}

// callerKey identifies one user acting in one scope.
type callerKey struct {
	userID string
	scope  string
}

func NewLedgerService(store repository.Store, opts Options, logger *zap.Logger) *LedgerService {
	if !opts.Policy.valid() {
		opts.Policy = PolicyStrict
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 5
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	return &LedgerService{
		store:   store,
		opts:    opts,
		logger:  logger,
		inFlight: make(map[callerKey]struct{}),
	}
}

// Handle returns a ledger handle for session. Handles of the same user in
// the same scope share one guard: only one mutation runs at a time.
func (s *LedgerService) Handle(session Session) (*Handle, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}

	return &Handle{
		svc:     s,
		session: session,
		key:     callerKey{userID: session.UserID, scope: session.Scope()},
		logger: s.logger.With(
			zap.String("user_id", session.UserID),
			zap.String("scope", session.Scope()),
		),
	}, nil
}

// Handle runs ledger operations for a single session.
type Handle struct {
	svc     *LedgerService
	session Session
	key     callerKey
	logger  *zap.Logger
}

func (h *Handle) Session() Session {
	return h.session
}

// begin claims the caller's guard for one mutation. The returned func releases it.
func (h *Handle) begin() (func(), error) {
	s := h.svc
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[h.key]; busy {
		return nil, ErrMutationInFlight
	}
	s.inFlight[h.key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inFlight, h.key)
		s.mu.Unlock()
	}, nil
}

// mutationsInFlight reports how many callers currently hold a guard.
func (s *LedgerService) mutationsInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inFlight)
}

func (h *Handle) now() time.Time {
	return h.svc.opts.Now()
}

// canManageBudgets reports whether the session may create or archive budgets.
func (h *Handle) canManageBudgets() bool {
	return h.session.AccountType == AccountTypePersonal || h.session.IsAdmin()
}

// loadBudget reads a budget visible to the session. Budgets outside the
// session's scope are reported as not found.
func (h *Handle) loadBudget(ctx context.Context, id string) (*models.Budget, error) {
	if id == "" {
		return nil, invalid("budget_id", "is required")
	}
	budget, err := h.svc.store.GetBudget(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("budget %s: %w", id, ErrNotFound)
		}
		return nil, storeErr(err)
	}
	if budget.OrganizationID != h.session.Scope() {
		return nil, fmt.Errorf("budget %s: %w", id, ErrNotFound)
	}
	return budget, nil
}

func (h *Handle) loadTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	if id == "" {
		return nil, invalid("request_id", "is required")
	}
	tx, err := h.svc.store.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
		}
		return nil, storeErr(err)
	}
	if tx.OrganizationID != h.session.Scope() {
		return nil, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return tx, nil
}

// applySpend adds amount to one account's spent with an optimistic update,
// committing extra ops in the same atomic unit. On a version conflict the
// budget is re-read and the cycle repeats, up to MaxRetries attempts.
// onConflict may abort the retry loop by returning an error.
func (h *Handle) applySpend(
	ctx context.Context,
	budgetID, accountID string,
	amount decimal.Decimal,
	extra []repository.Op,
	onConflict func(ctx context.Context) error,
) error {
	maxRetries := h.svc.opts.MaxRetries

	for attempt := 1; attempt <= maxRetries; attempt++ {
		budget, err := h.loadBudget(ctx, budgetID)
		if err != nil {
			return err
		}
		if !budget.IsActive() {
			return fmt.Errorf("budget %s: %w", budgetID, ErrBudgetArchived)
		}
		account := budget.Account(accountID)
		if account == nil {
			return fmt.Errorf("account %q in budget %s: %w", accountID, budgetID, ErrNotFound)
		}

		expected := budget.Version
		account.Spent = account.Spent.Add(amount)
		budget.UpdatedAt = h.now()

		ops := append([]repository.Op{repository.UpdateBudget{Budget: budget, ExpectedVersion: expected}}, extra...)
		err = h.svc.store.RunAtomic(ctx, ops...)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return storeErr(err)
		}

		h.logger.Warn("Balance update conflict, retrying",
			zap.String("budget_id", budgetID),
			zap.String("account_id", accountID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if onConflict != nil {
			if err := onConflict(ctx); err != nil {
				return err
			}
		}
	}

	return fmt.Errorf("%w: budget %s not updated after %d attempts", ErrConcurrencyConflict, budgetID, maxRetries)
}

// storeErr turns any unexpected storage failure into ErrPersistenceUnavailable.
func storeErr(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
}
