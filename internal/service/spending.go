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

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type SpendingInput struct {
	BudgetID    string
	AccountID   string
	Amount      decimal.Decimal
	Description string
	// Date defaults to the current time when zero.
	Date time.Time
}

func (in SpendingInput) validate() error {
	if in.BudgetID == "" {
		return invalid("budget_id", "is required")
	}
	if in.AccountID == "" {
		return invalid("account_id", "is required")
	}
	if err := checkAmount("amount", in.Amount); err != nil {
		return err
	}
	if cleanText(in.Description) == "" {
		return invalid("description", "is required")
	}
	return nil
}

func (h *Handle) newTransaction(in SpendingInput, kind models.TransactionKind, status models.TransactionStatus) *models.Transaction {
	now := h.now()
	date := in.Date.UTC()
	if in.Date.IsZero() {
		date = now
	}
	return &models.Transaction{
		ID:             h.svc.opts.NewID(),
		BudgetID:       in.BudgetID,
		AccountID:      in.AccountID,
		OrganizationID: h.session.Scope(),
		Kind:           kind,
		Amount:         in.Amount,
		Description:    cleanText(in.Description),
		Date:           date,
		AuthorID:       h.session.UserID,
		AuthorName:     h.session.Email,
		Status:         status,
		CreatedAt:      now,
	}
}

// LogSpending records spending that applies immediately: the logged
// transaction and the account's new spent are written as one unit.
// Overspending is allowed and shows up as a negative remaining balance.
func (h *Handle) LogSpending(ctx context.Context, in SpendingInput) (*models.Transaction, error) {
	release, err := h.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	if !h.session.DirectSpending() {
		return nil, fmt.Errorf("%w: shared spending must be submitted for approval", ErrForbidden)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	tx := h.newTransaction(in, models.TransactionKindSpending, models.TransactionStatusLogged)
	extra := []repository.Op{repository.InsertTransaction{Transaction: tx}}
	if err := h.applySpend(ctx, in.BudgetID, in.AccountID, in.Amount, extra, nil); err != nil {
		return nil, err
	}

	h.logger.Info("Spending logged",
		zap.String("transaction_id", tx.ID),
		zap.String("budget_id", tx.BudgetID),
		zap.String("account_id", tx.AccountID),
		zap.String("amount", tx.Amount.String()),
	)
	return tx, nil
}

// SubmitRequest records a pending spending request. Balances are untouched
// until an admin approves it.
func (h *Handle) SubmitRequest(ctx context.Context, in SpendingInput) (*models.Transaction, error) {
	release, err := h.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	if err := in.validate(); err != nil {
		return nil, err
	}

	budget, err := h.loadBudget(ctx, in.BudgetID)
	if err != nil {
		return nil, err
	}
	if !budget.IsActive() {
		return nil, fmt.Errorf("budget %s: %w", in.BudgetID, ErrBudgetArchived)
	}
	if budget.Account(in.AccountID) == nil {
		return nil, fmt.Errorf("account %q in budget %s: %w", in.AccountID, in.BudgetID, ErrNotFound)
	}

	tx := h.newTransaction(in, models.TransactionKindRequest, models.TransactionStatusPending)
	if err := h.svc.store.CreateTransaction(ctx, tx); err != nil {
		return nil, storeErr(err)
	}

	h.logger.Info("Spending request submitted",
		zap.String("transaction_id", tx.ID),
		zap.String("budget_id", tx.BudgetID),
		zap.String("account_id", tx.AccountID),
		zap.String("amount", tx.Amount.String()),
	)
	return tx, nil
}

// DecideRequest approves or rejects a pending request. Approval applies the
// amount to the account and marks the request approved in one atomic write;
// a request can be decided only once.
func (h *Handle) DecideRequest(ctx context.Context, requestID string, decision Decision) (*models.Transaction, error) {
	release, err := h.begin()
	if err != nil {
		return nil, err
	}
	defer release()

	if !h.session.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins decide requests", ErrForbidden)
	}
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, invalid("decision", "must be approve or reject")
	}

	tx, err := h.loadTransaction(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if tx.Status != models.TransactionStatusPending {
		return nil, fmt.Errorf("request %s is %s: %w", requestID, tx.Status, ErrAlreadyDecided)
	}

	now := h.now()
	transition := repository.UpdateTransactionStatus{
		ID:        tx.ID,
		From:      models.TransactionStatusPending,
		DecidedBy: h.session.UserID,
		DecidedAt: now,
	}

	switch decision {
	case DecisionReject:
		transition.To = models.TransactionStatusRejected
		if err := h.svc.store.UpdateConditional(ctx, transition); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return nil, fmt.Errorf("request %s: %w", requestID, ErrAlreadyDecided)
			}
			return nil, storeErr(err)
		}

	case DecisionApprove:
		transition.To = models.TransactionStatusApproved
		stillPending := func(ctx context.Context) error {
			current, err := h.loadTransaction(ctx, requestID)
			if err != nil {
				return err
			}
			if current.Status != models.TransactionStatusPending {
				return fmt.Errorf("request %s is %s: %w", requestID, current.Status, ErrAlreadyDecided)
			}
			return nil
		}
		extra := []repository.Op{transition}
		if err := h.applySpend(ctx, tx.BudgetID, tx.AccountID, tx.Amount, extra, stillPending); err != nil {
			return nil, err
		}
	}

	tx.Status = transition.To
	decidedBy := h.session.UserID
	tx.DecidedBy = &decidedBy
	tx.DecidedAt = &now

	h.logger.Info("Spending request decided",
		zap.String("transaction_id", tx.ID),
		zap.String("decision", string(decision)),
		zap.String("amount", tx.Amount.String()),
	)
	return tx, nil
}

// PendingRequests lists requests awaiting a decision in the session's scope.
func (h *Handle) PendingRequests(ctx context.Context) ([]*models.Transaction, error) {
	if !h.session.IsAdmin() {
		return nil, fmt.Errorf("%w: only admins review requests", ErrForbidden)
	}
	txs, err := h.svc.store.ListTransactions(ctx, repository.TransactionFilter{
		OrganizationID: h.session.Scope(),
		Status:         models.TransactionStatusPending,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return txs, nil
}
