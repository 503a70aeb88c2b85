package dto

import (
	"budget-ledger/internal/service"
	"budget-ledger/pkg/money"

	"github.com/shopspring/decimal"
)

type AccountSummaryResponse struct {
	BudgetID         string          `json:"budget_id"`
	BudgetTitle      string          `json:"budget_title"`
	AccountID        string          `json:"account_id"`
	Name             string          `json:"name"`
	Budgeted         decimal.Decimal `json:"budgeted" swaggertype:"string"`
	Spent            decimal.Decimal `json:"spent" swaggertype:"string"`
	Remaining        decimal.Decimal `json:"remaining" swaggertype:"string"`
	State            string          `json:"state"`
	RemainingDisplay string          `json:"remaining_display"`
}

type SummaryResponse struct {
	TotalBudgeted  decimal.Decimal          `json:"total_budgeted" swaggertype:"string"`
	TotalSpent     decimal.Decimal          `json:"total_spent" swaggertype:"string"`
	TotalRemaining decimal.Decimal          `json:"total_remaining" swaggertype:"string"`
	Display        SummaryDisplay           `json:"display"`
	Accounts       []AccountSummaryResponse `json:"accounts"`
}

// SummaryDisplay holds the totals formatted with the configured currency symbol.
type SummaryDisplay struct {
	TotalBudgeted  string `json:"total_budgeted"`
	TotalSpent     string `json:"total_spent"`
	TotalRemaining string `json:"total_remaining"`
}

func NewSummaryResponse(s *service.Summary, currency string) SummaryResponse {
	resp := SummaryResponse{
		TotalBudgeted:  s.TotalBudgeted,
		TotalSpent:     s.TotalSpent,
		TotalRemaining: s.TotalRemaining,
		Display: SummaryDisplay{
			TotalBudgeted:  money.Format(s.TotalBudgeted, currency),
			TotalSpent:     money.Format(s.TotalSpent, currency),
			TotalRemaining: money.Format(s.TotalRemaining, currency),
		},
		Accounts: make([]AccountSummaryResponse, 0, len(s.Accounts)),
	}
	for _, a := range s.Accounts {
		resp.Accounts = append(resp.Accounts, AccountSummaryResponse{
			BudgetID:         a.BudgetID,
			BudgetTitle:      a.BudgetTitle,
			AccountID:        a.AccountID,
			Name:             a.Name,
			Budgeted:         a.Budgeted,
			Spent:            a.Spent,
			Remaining:        a.Remaining,
			State:            string(a.State),
			RemainingDisplay: money.Format(a.Remaining, currency),
		})
	}
	return resp
}
