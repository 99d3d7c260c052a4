package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound = errors.New("ledger account not found")

	// ErrInsufficientBalance is an expected outcome of TryDeduct, not a fault.
	ErrInsufficientBalance = errors.New("insufficient token balance")

	// ErrPlanChanged means a compare-and-set plan update lost a race.
	ErrPlanChanged = errors.New("plan changed concurrently")

	ErrInvalidAmount = errors.New("token amount must not be negative")
)

// InsufficientBalanceError carries the numbers a client needs to explain a 402.
type InsufficientBalanceError struct {
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient token balance: required %d, available %d", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
