package dto

import (
	"time"

	"budget-ledger/internal/models"
	"budget-ledger/internal/service"

	"github.com/shopspring/decimal"
)

type SpendingRequest struct {
	BudgetID    string          `json:"budget_id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"25000"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date,omitempty"`
}

func (r *SpendingRequest) ToInput() service.SpendingInput {
	in := service.SpendingInput{
		BudgetID:    r.BudgetID,
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		Description: r.Description,
	}
	if r.Date != nil {
		in.Date = r.Date.UTC()
	}
	return in
}

type DecisionRequest struct {
	// Decision is approve or reject.
	Decision string `json:"decision"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	BudgetID    string          `json:"budget_id"`
	AccountID   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	AuthorID    string          `json:"author_id"`
	AuthorName  string          `json:"author_name"`
	Status      string          `json:"status"`
	DecidedBy   string          `json:"decided_by,omitempty"`
	DecidedAt   string          `json:"decided_at,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		BudgetID:    t.BudgetID,
		AccountID:   t.AccountID,
		Kind:        string(t.Kind),
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date.Format(time.RFC3339),
		AuthorID:    t.AuthorID,
		AuthorName:  t.AuthorName,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.DecidedBy != nil {
		resp.DecidedBy = *t.DecidedBy
	}
	if t.DecidedAt != nil {
		resp.DecidedAt = t.DecidedAt.Format(time.RFC3339)
	}
	return resp
}

func NewTransactionList(txs []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}

type PendingRequestsResponse struct {
	Count    int                   `json:"count"`
	Requests []TransactionResponse `json:"requests"`
}
