package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrValidation             = errors.New("validation failed")
	ErrAllocationMismatch     = errors.New("allocation does not match budget total")
	ErrDuplicateAccountID     = errors.New("duplicate account id")
	ErrNotFound               = errors.New("not found")
	ErrAlreadyDecided         = errors.New("request already decided")
	ErrConcurrencyConflict    = errors.New("concurrent update conflict")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrForbidden              = errors.New("forbidden")
	ErrMutationInFlight       = errors.New("another change is still being saved")
	ErrBudgetArchived         = errors.New("budget is archived")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AllocationMismatchError carries both sides of a failed allocation check.
type AllocationMismatchError struct {
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *AllocationMismatchError) Error() string {
	return fmt.Sprintf("allocated %s does not match total %s", e.Actual.String(), e.Expected.String())
}

func (e *AllocationMismatchError) Is(target error) bool {
	return target == ErrAllocationMismatch
}

// Difference is total minus allocated; positive means money left unallocated.
func (e *AllocationMismatchError) Difference() decimal.Decimal {
	return e.Expected.Sub(e.Actual)
}

type DuplicateAccountIDError struct {
	AccountID string
	Names     [2]string
}

func (e *DuplicateAccountIDError) Error() string {
	return fmt.Sprintf("allocations %q and %q both map to account id %q", e.Names[0], e.Names[1], e.AccountID)
}

func (e *DuplicateAccountIDError) Is(target error) bool {
	return target == ErrDuplicateAccountID
}
