package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusLogged   TransactionStatus = "logged"
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

// TransactionKind tells direct spending apart from approval requests.
type TransactionKind string

const (
	TransactionKindSpending TransactionKind = "spending"
	TransactionKindRequest  TransactionKind = "request"
)

type Transaction struct {
	ID             string
	BudgetID       string
	AccountID      string
	OrganizationID string
	Kind           TransactionKind
	Amount         decimal.Decimal
	Description    string
	Date           time.Time
	AuthorID       string
	AuthorName     string
	Status         TransactionStatus
	DecidedBy      *string
	DecidedAt      *time.Time
	CreatedAt      time.Time
}

// Applied reports whether the transaction counts towards an account's spent.
func (t *Transaction) Applied() bool {
	return t.Status == TransactionStatusLogged || t.Status == TransactionStatusApproved
}

func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.DecidedBy != nil {
		s := *t.DecidedBy
		c.DecidedBy = &s
	}
	if t.DecidedAt != nil {
		d := *t.DecidedAt
		c.DecidedAt = &d
	}
	return &c
}
