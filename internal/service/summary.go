package service

import (
	"budget-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// BalanceState is the remaining-balance indicator of an account or allocation.
type BalanceState string

const (
	BalanceAvailable BalanceState = "available"
	BalanceExhausted BalanceState = "exhausted"
	BalanceOverspent BalanceState = "overspent"
)

func balanceState(remaining decimal.Decimal) BalanceState {
	switch remaining.Sign() {
	case 1:
		return BalanceAvailable
	case 0:
		return BalanceExhausted
	default:
		return BalanceOverspent
	}
}

type AccountSummary struct {
	BudgetID    string
	BudgetTitle string
	AccountID   string
	Name        string
	Budgeted    decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	State       BalanceState
}

type Summary struct {
	TotalBudgeted  decimal.Decimal
	TotalSpent     decimal.Decimal
	TotalRemaining decimal.Decimal
	Accounts       []AccountSummary
}

// Summarize totals the active budgets it is given. The budget total, not the
// sum of its splits, counts as budgeted; remaining may go negative.
func Summarize(budgets []*models.Budget) Summary {
	summary := Summary{
		TotalBudgeted: decimal.Zero,
		TotalSpent:    decimal.Zero,
		Accounts:      []AccountSummary{},
	}

	for _, b := range budgets {
		if !b.IsActive() {
			continue
		}
		summary.TotalBudgeted = summary.TotalBudgeted.Add(b.TotalAmount)
		for _, acc := range b.Accounts {
			remaining := acc.Remaining()
			summary.TotalSpent = summary.TotalSpent.Add(acc.Spent)
			summary.Accounts = append(summary.Accounts, AccountSummary{
				BudgetID:    b.ID,
				BudgetTitle: b.Title,
				AccountID:   acc.ID,
				Name:        acc.Name,
				Budgeted:    acc.Budgeted,
				Spent:       acc.Spent,
				Remaining:   remaining,
				State:       balanceState(remaining),
			})
		}
	}

	summary.TotalRemaining = summary.TotalBudgeted.Sub(summary.TotalSpent)
	return summary
}
