package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budget-ledger/internal/models"
	"budget-ledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CreateBudgetInput struct {
	Title       string
	TotalAmount decimal.Decimal
	Allocations []Allocation
	Details     string
	Date        *time.Time
	// Policy overrides the service default when set.
	Policy AllocationPolicy
}

type CreateBudgetResult struct {
	Budget *models.Budget
	// Warning is set when a permissive create saved a mismatched allocation.
	Warning *AllocationMismatchError
}

// AccountOption is one entry of the account picker used for spending.
type AccountOption struct {
	BudgetID    string
	BudgetTitle string
	AccountID   string
	Name        string
}

// CreateBudget validates the allocation split and saves a new active budget.
func (h *Handle) CreateBudget(ctx context.Context, in CreateBudgetInput) (*CreateBudgetResult, error) {
	release, err := h.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	if !h.canManageBudgets() {
		return nil, fmt.Errorf("%w: only admins manage shared budgets", ErrForbidden)
	}

	policy := in.Policy
	if policy == "" {
		policy = h.svc.opts.Policy
	}
	if !policy.valid() {
		return nil, invalid("policy", "must be strict or permissive")
	}

	title := cleanText(in.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	if err := checkAmount("total_amount", in.TotalAmount); err != nil {
		return nil, err
	}

	accounts, allocated, err := buildAccounts(in.Allocations)
	if err != nil {
		return nil, err
	}

	result := &CreateBudgetResult{}
	if mismatch := checkAllocation(in.TotalAmount, allocated); mismatch != nil {
		if policy == PolicyStrict {
			return nil, mismatch
		}
		result.Warning = mismatch
	}

	var date *time.Time
	if in.Date != nil {
		d := in.Date.UTC()
		date = &d
	}

	now := h.now()
	budget := &models.Budget{
		ID:             h.svc.opts.NewID(),
		OrganizationID: h.session.Scope(),
		CreatorID:      h.session.UserID,
		Title:          title,
		TotalAmount:    in.TotalAmount,
		Details:        cleanText(in.Details),
		Date:           date,
		Status:         models.BudgetStatusActive,
		Accounts:       accounts,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.svc.store.CreateBudget(ctx, budget); err != nil {
		return nil, storeErr(err)
	}

	fields := []zap.Field{
		zap.String("budget_id", budget.ID),
		zap.String("total", budget.TotalAmount.String()),
		zap.Int("accounts", len(budget.Accounts)),
	}
	if result.Warning != nil {
		h.logger.Warn("Budget created with unbalanced allocation",
			append(fields, zap.String("allocated", allocated.String()))...)
	} else {
		h.logger.Info("Budget created", fields...)
	}

	result.Budget = budget
	return result, nil
}

// Archive moves an active budget to archived. There is no way back.
func (h *Handle) Archive(ctx context.Context, budgetID string) (*models.Budget, error) {
	release, err := h.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	if !h.canManageBudgets() {
		return nil, fmt.Errorf("%w: only admins manage shared budgets", ErrForbidden)
	}

	for attempt := 1; attempt <= h.svc.opts.MaxRetries; attempt++ {
		budget, err := h.loadBudget(ctx, budgetID)
		if err != nil {
			return nil, err
		}
		if !budget.IsActive() {
			return nil, fmt.Errorf("budget %s: %w", budgetID, ErrBudgetArchived)
		}

		expected := budget.Version
		now := h.now()
		budget.Status = models.BudgetStatusArchived
		budget.ArchivedAt = &now
		budget.UpdatedAt = now

		err = h.svc.store.UpdateConditional(ctx, repository.UpdateBudget{Budget: budget, ExpectedVersion: expected})
		if err == nil {
			budget.Version = expected + 1
			h.logger.Info("Budget archived", zap.String("budget_id", budgetID))
			return budget, nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, storeErr(err)
		}
		h.logger.Warn("Archive conflict, retrying", zap.String("budget_id", budgetID), zap.Int("attempt", attempt))
	}

	return nil, fmt.Errorf("%w: budget %s not archived after %d attempts", ErrConcurrencyConflict, budgetID, h.svc.opts.MaxRetries)
}

// ListBudgets returns the budgets in the session's scope. An empty status
// returns both active and archived budgets.
func (h *Handle) ListBudgets(ctx context.Context, status models.BudgetStatus) ([]*models.Budget, error) {
	switch status {
	case "", models.BudgetStatusActive, models.BudgetStatusArchived:
	default:
		return nil, invalid("status", "must be active or archived")
	}

	budgets, err := h.svc.store.ListBudgets(ctx, repository.BudgetFilter{
		OrganizationID: h.session.Scope(),
		Status:         status,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return budgets, nil
}

// ArchivedBudgets is the history view of budgets no longer in use.
func (h *Handle) ArchivedBudgets(ctx context.Context) ([]*models.Budget, error) {
	return h.ListBudgets(ctx, models.BudgetStatusArchived)
}

// GetBudget returns one budget in scope, archived or not.
func (h *Handle) GetBudget(ctx context.Context, budgetID string) (*models.Budget, error) {
	return h.loadBudget(ctx, budgetID)
}

// SpendingAccounts lists the accounts of active budgets, the only valid
// targets for new spending.
func (h *Handle) SpendingAccounts(ctx context.Context) ([]AccountOption, error) {
	budgets, err := h.ListBudgets(ctx, models.BudgetStatusActive)
	if err != nil {
		return nil, err
	}

	options := []AccountOption{}
	for _, b := range budgets {
		for _, acc := range b.Accounts {
			options = append(options, AccountOption{
				BudgetID:    b.ID,
				BudgetTitle: b.Title,
				AccountID:   acc.ID,
				Name:        acc.Name,
			})
		}
	}
	return options, nil
}

// Summarize recomputes totals over the active budgets in scope, optionally
// limited to budgetIDs. Unknown or archived ids contribute nothing.
func (h *Handle) Summarize(ctx context.Context, budgetIDs ...string) (*Summary, error) {
	budgets, err := h.svc.store.ListBudgets(ctx, repository.BudgetFilter{
		OrganizationID: h.session.Scope(),
		Status:         models.BudgetStatusActive,
		IDs:            budgetIDs,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	summary := Summarize(budgets)
	return &summary, nil
}

// AccountHistory lists the spending applied to one account split, newest
// first: logged entries and approved requests. Pending and rejected requests
// are left out. Archived budgets keep their history readable.
func (h *Handle) AccountHistory(ctx context.Context, budgetID, accountID string) ([]*models.Transaction, error) {
	budget, err := h.loadBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Account(accountID) == nil {
		return nil, fmt.Errorf("account %q in budget %s: %w", accountID, budgetID, ErrNotFound)
	}

	txs, err := h.svc.store.ListTransactions(ctx, repository.TransactionFilter{
		OrganizationID: h.session.Scope(),
		BudgetID:       budgetID,
		AccountID:      accountID,
	})
	if err != nil {
		return nil, storeErr(err)
	}

	applied := txs[:0]
	for _, tx := range txs {
		if tx.Applied() {
			applied = append(applied, tx)
		}
	}
	return applied, nil
}
