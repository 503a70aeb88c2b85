package dto

import (
	"time"

	"budget-ledger/internal/models"
	"budget-ledger/internal/service"

	"github.com/shopspring/decimal"
)

type AllocationRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"100000"`
}

type CreateBudgetRequest struct {
	Title       string              `json:"title"`
	TotalAmount decimal.Decimal     `json:"total_amount" swaggertype:"string" example:"150000"`
	Allocations []AllocationRequest `json:"allocations"`
	Details     string              `json:"details,omitempty"`
	Date        *time.Time          `json:"date,omitempty"`
	// Policy is strict or permissive; empty uses the server default.
	Policy string `json:"policy,omitempty"`
}

func (r *CreateBudgetRequest) ToInput() service.CreateBudgetInput {
	return service.CreateBudgetInput{
		Title:       r.Title,
		TotalAmount: r.TotalAmount,
		Allocations: toAllocations(r.Allocations),
		Details:     r.Details,
		Date:        r.Date,
		Policy:      service.AllocationPolicy(r.Policy),
	}
}

type PreviewAllocationRequest struct {
	TotalAmount decimal.Decimal     `json:"total_amount" swaggertype:"string"`
	Allocations []AllocationRequest `json:"allocations"`
}

func (r *PreviewAllocationRequest) ToAllocations() []service.Allocation {
	return toAllocations(r.Allocations)
}

func toAllocations(in []AllocationRequest) []service.Allocation {
	out := make([]service.Allocation, 0, len(in))
	for _, a := range in {
		out = append(out, service.Allocation{Name: a.Name, Amount: a.Amount})
	}
	return out
}

type AllocationPreviewResponse struct {
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	Allocated decimal.Decimal `json:"allocated" swaggertype:"string"`
	Remaining decimal.Decimal `json:"remaining" swaggertype:"string"`
	State     string          `json:"state"`
	Balanced  bool            `json:"balanced"`
}

func NewAllocationPreviewResponse(p service.AllocationPreview) AllocationPreviewResponse {
	return AllocationPreviewResponse{
		Total:     p.Total,
		Allocated: p.Allocated,
		Remaining: p.Remaining,
		State:     string(p.State),
		Balanced:  p.Balanced,
	}
}

type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Budgeted  decimal.Decimal `json:"budgeted" swaggertype:"string"`
	Spent     decimal.Decimal `json:"spent" swaggertype:"string"`
	Remaining decimal.Decimal `json:"remaining" swaggertype:"string"`
}

type BudgetResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	TotalAmount decimal.Decimal   `json:"total_amount" swaggertype:"string"`
	Details     string            `json:"details,omitempty"`
	Date        string            `json:"date,omitempty"`
	Status      string            `json:"status"`
	CreatorID   string            `json:"creator_id"`
	Accounts    []AccountResponse `json:"accounts"`
	CreatedAt   string            `json:"created_at"`
	ArchivedAt  string            `json:"archived_at,omitempty"`
}

func NewBudgetResponse(b *models.Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:          b.ID,
		Title:       b.Title,
		TotalAmount: b.TotalAmount,
		Details:     b.Details,
		Status:      string(b.Status),
		CreatorID:   b.CreatorID,
		Accounts:    make([]AccountResponse, 0, len(b.Accounts)),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
	if b.Date != nil {
		resp.Date = b.Date.Format(time.RFC3339)
	}
	if b.ArchivedAt != nil {
		resp.ArchivedAt = b.ArchivedAt.Format(time.RFC3339)
	}
	for _, acc := range b.Accounts {
		resp.Accounts = append(resp.Accounts, AccountResponse{
			ID:        acc.ID,
			Name:      acc.Name,
			Budgeted:  acc.Budgeted,
			Spent:     acc.Spent,
			Remaining: acc.Remaining(),
		})
	}
	return resp
}

func NewBudgetList(budgets []*models.Budget) []BudgetResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, NewBudgetResponse(b))
	}
	return out
}

type MismatchWarning struct {
	Expected   decimal.Decimal `json:"expected" swaggertype:"string"`
	Actual     decimal.Decimal `json:"actual" swaggertype:"string"`
	Difference decimal.Decimal `json:"difference" swaggertype:"string"`
}

type CreateBudgetResponse struct {
	Budget  BudgetResponse   `json:"budget"`
	Warning *MismatchWarning `json:"warning,omitempty"`
}

func NewCreateBudgetResponse(res *service.CreateBudgetResult) CreateBudgetResponse {
	resp := CreateBudgetResponse{Budget: NewBudgetResponse(res.Budget)}
	if w := res.Warning; w != nil {
		resp.Warning = &MismatchWarning{Expected: w.Expected, Actual: w.Actual, Difference: w.Difference()}
	}
	return resp
}

type AccountOptionResponse struct {
	BudgetID    string `json:"budget_id"`
	BudgetTitle string `json:"budget_title"`
	AccountID   string `json:"account_id"`
	Name        string `json:"name"`
}

func NewAccountOptions(options []service.AccountOption) []AccountOptionResponse {
	out := make([]AccountOptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, AccountOptionResponse(o))
	}
	return out
}
