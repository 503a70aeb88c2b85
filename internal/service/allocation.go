package service

import (
	"strconv"
	"strings"

	"budget-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// AllocationPolicy decides what happens when allocations do not add up to the total.
type AllocationPolicy string

const (
	// PolicyStrict rejects the budget with an AllocationMismatchError.
	PolicyStrict AllocationPolicy = "strict"
	// PolicyPermissive saves the budget and reports the mismatch as a warning.
	PolicyPermissive AllocationPolicy = "permissive"
)

func (p AllocationPolicy) valid() bool {
	return p == PolicyStrict || p == PolicyPermissive
}

// allocationTolerance is the largest accepted gap between total and allocated sum.
var allocationTolerance = decimal.New(1, -2)

// amountLimit is the exclusive upper bound of any stored amount.
var amountLimit = decimal.New(1, 16)

// checkAmount accepts positive amounts in whole cents below amountLimit,
// which every store keeps exactly.
func checkAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid(field, "must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(2)) {
		return invalid(field, "must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(amountLimit) {
		return invalid(field, "must be less than 10000000000000000")
	}
	return nil
}

type Allocation struct {
	Name   string
	Amount decimal.Decimal
}

// NormalizeAccountID derives an account id from a free-text name: trimmed,
// lowercased, with each whitespace run replaced by one underscore.
func NormalizeAccountID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

// AllocationPreview is the live "allocated / remaining" figure shown while a
// budget is being split.
type AllocationPreview struct {
	Total     decimal.Decimal
	Allocated decimal.Decimal
	Remaining decimal.Decimal
	State     BalanceState
	Balanced  bool
}

// PreviewAllocation sums the allocations without validating or saving anything.
func PreviewAllocation(total decimal.Decimal, allocations []Allocation) AllocationPreview {
	allocated := decimal.Zero
	for _, a := range allocations {
		allocated = allocated.Add(a.Amount)
	}
	remaining := total.Sub(allocated)
	return AllocationPreview{
		Total:     total,
		Allocated: allocated,
		Remaining: remaining,
		State:     balanceState(remaining),
		Balanced:  remaining.Abs().LessThanOrEqual(allocationTolerance),
	}
}

// buildAccounts validates allocations and turns them into zero-spent accounts,
// returning the allocated sum.
func buildAccounts(allocations []Allocation) ([]models.Account, decimal.Decimal, error) {
	accounts := make([]models.Account, 0, len(allocations))
	names := make(map[string]string, len(allocations))
	sum := decimal.Zero

	for i, a := range allocations {
		name := cleanText(a.Name)
		if name == "" {
			return nil, decimal.Zero, invalid(allocationField(i, "name"), "is required")
		}
		if err := checkAmount(allocationField(i, "amount"), a.Amount); err != nil {
			return nil, decimal.Zero, err
		}

		id := NormalizeAccountID(name)
		if first, ok := names[id]; ok {
			return nil, decimal.Zero, &DuplicateAccountIDError{AccountID: id, Names: [2]string{first, name}}
		}
		names[id] = name

		accounts = append(accounts, models.Account{
			ID:       id,
			Name:     name,
			Budgeted: a.Amount,
			Spent:    decimal.Zero,
		})
		sum = sum.Add(a.Amount)
	}
	return accounts, sum, nil
}

func checkAllocation(total, allocated decimal.Decimal) *AllocationMismatchError {
	if total.Sub(allocated).Abs().GreaterThan(allocationTolerance) {
		return &AllocationMismatchError{Expected: total, Actual: allocated}
	}
	return nil
}

func allocationField(i int, field string) string {
	return "allocations[" + strconv.Itoa(i) + "]." + field
}
