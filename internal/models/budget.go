package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "active"
	BudgetStatusArchived BudgetStatus = "archived"
)

// Budget is a titled envelope whose total is split into account allocations.
// Version increases on every write and backs the optimistic update check.
type Budget struct {
	ID             string
	OrganizationID string
	CreatorID      string
	Title          string
	TotalAmount    decimal.Decimal
	Details        string
	Date           *time.Time
	Status         BudgetStatus
	Accounts       []Account
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ArchivedAt     *time.Time
}

// Account is one named split of a budget. Iteration order of Budget.Accounts
// is the order the allocations were entered in.
type Account struct {
	ID       string
	Name     string
	Budgeted decimal.Decimal
	Spent    decimal.Decimal
}

func (a Account) Remaining() decimal.Decimal {
	return a.Budgeted.Sub(a.Spent)
}

// Account returns a pointer into b.Accounts, or nil if id is unknown.
func (b *Budget) Account(id string) *Account {
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			return &b.Accounts[i]
		}
	}
	return nil
}

func (b *Budget) IsActive() bool {
	return b.Status == BudgetStatusActive
}

// Clone returns a deep copy so callers can mutate without aliasing stored state.
func (b *Budget) Clone() *Budget {
	c := *b
	c.Accounts = append([]Account(nil), b.Accounts...)
	if b.Date != nil {
		d := *b.Date
		c.Date = &d
	}
	if b.ArchivedAt != nil {
		a := *b.ArchivedAt
		c.ArchivedAt = &a
	}
	return &c
}
