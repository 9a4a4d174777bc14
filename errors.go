package vault

import (
	"errors"
	"fmt"

	"github.com/xraph/vault/token"
	"github.com/xraph/vault/types"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrUnauthorized  = errors.New("vault: unauthorized")
	ErrReentrantCall = errors.New("vault: reentrant call rejected")

	// Validation errors — bad input shape, surfaced immediately, never retried.
	ErrInvalidBeneficiary = errors.New("vault: invalid beneficiary")
	ErrInvalidHolder      = errors.New("vault: invalid holder")
	ErrInvalidAsset       = errors.New("vault: invalid asset")
	ErrInvalidAmount      = errors.New("vault: invalid amount")
	ErrInvalidDuration    = errors.New("vault: invalid duration")
	ErrIndexOutOfRange    = errors.New("vault: lock index out of range")

	// Vesting state errors
	ErrDuplicateSchedule = errors.New("vault: schedule already exists for beneficiary")
	ErrNoSchedule        = errors.New("vault: no schedule for beneficiary")
	ErrNothingToRelease  = errors.New("vault: nothing to release")

	// Timelock state errors
	ErrStillLocked      = errors.New("vault: lock has not expired")
	ErrAlreadyWithdrawn = errors.New("vault: lock already withdrawn")

	// Sale state errors
	ErrNoSale                = errors.New("vault: sale not initialized")
	ErrDuplicateSale         = errors.New("vault: sale already initialized")
	ErrSaleClosed            = errors.New("vault: sale is closed")
	ErrSaleOngoing           = errors.New("vault: sale is still ongoing")
	ErrCapacityExceeded      = errors.New("vault: purchase exceeds remaining capacity")
	ErrInsufficientInventory = errors.New("vault: vault holds less than requested")
	ErrPerTxCapExceeded      = errors.New("vault: purchase exceeds per-transaction cap")
	ErrPaymentMismatch       = errors.New("vault: payment does not match required amount")

	// Arithmetic errors — fatal for the call, never silently wrapped.
	ErrOverflow       = types.ErrOverflow
	ErrUnderflow      = types.ErrUnderflow
	ErrDivisionByZero = types.ErrDivisionByZero

	// Collaborator errors — propagated unchanged, no partial ledger mutation
	// precedes the failing call.
	ErrTransferFailed      = token.ErrTransferFailed
	ErrInsufficientBalance = token.ErrInsufficientBalance
	ErrUnknownAsset        = token.ErrUnknownAsset

	// Store errors
	ErrStoreNotReady = errors.New("vault: store not ready")
	ErrStoreClosed   = errors.New("vault: store is closed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("vault: validation failed for %s: %s", e.Field, e.Message)
}

// IsValidation returns true if the error rejects the input shape. Callers
// should not retry these.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.Is(err, ErrInvalidBeneficiary) ||
		errors.Is(err, ErrInvalidHolder) ||
		errors.Is(err, ErrInvalidAsset) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.As(err, &ve)
}

// IsStateError returns true if the error is a terminal rejection of the call
// given current ledger state. Time-dependent rejections may succeed if the
// caller re-attempts later.
func IsStateError(err error) bool {
	return errors.Is(err, ErrDuplicateSchedule) ||
		errors.Is(err, ErrNoSchedule) ||
		errors.Is(err, ErrNothingToRelease) ||
		errors.Is(err, ErrStillLocked) ||
		errors.Is(err, ErrAlreadyWithdrawn) ||
		errors.Is(err, ErrNoSale) ||
		errors.Is(err, ErrDuplicateSale) ||
		errors.Is(err, ErrSaleClosed) ||
		errors.Is(err, ErrSaleOngoing) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrPerTxCapExceeded) ||
		errors.Is(err, ErrPaymentMismatch)
}

// IsArithmetic returns true if the error is an overflow, underflow, or
// division failure in quantity or time math.
func IsArithmetic(err error) bool {
	return errors.Is(err, ErrOverflow) ||
		errors.Is(err, ErrUnderflow) ||
		errors.Is(err, ErrDivisionByZero)
}

// IsCollaborator returns true if the error originated in the asset transfer
// collaborator. No partial ledger mutation precedes such failures.
func IsCollaborator(err error) bool {
	return errors.Is(err, ErrTransferFailed) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrUnknownAsset) ||
		errors.Is(err, ErrInsufficientInventory)
}
