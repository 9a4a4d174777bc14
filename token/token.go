// Package token defines the fungible-asset transfer collaborator that Vault
// calls into once ledger state has been validated.
//
// Vault never assumes a transfer is benign: every call may fail, and every
// call may reenter the engine before returning (a transfer can invoke
// arbitrary code on the receiving side). The engine therefore updates its own
// ledger state before any outbound transfer and guards reentrant entry points.
package token

import (
	"context"
	"errors"

	"github.com/xraph/vault/types"
)

// Transfer failure sentinels.
var (
	// ErrTransferFailed is returned when the underlying asset movement is
	// rejected by the token implementation.
	ErrTransferFailed = errors.New("token: transfer failed")

	// ErrInsufficientBalance is returned when the source holds less than the
	// requested amount.
	ErrInsufficientBalance = errors.New("token: insufficient balance")
)

// Token moves a single fungible asset between holders.
type Token interface {
	// Transfer moves amount from the vault's own holdings to the recipient.
	Transfer(ctx context.Context, to types.Address, amount types.Amount) error

	// TransferFrom moves amount from a holder into the recipient's holdings,
	// typically the vault itself. Requires whatever authorization the token
	// implementation enforces.
	TransferFrom(ctx context.Context, from, to types.Address, amount types.Amount) error

	// BalanceOf returns the amount the holder currently owns.
	BalanceOf(ctx context.Context, holder types.Address) (types.Amount, error)

	// Burn destroys amount from the vault's own holdings.
	Burn(ctx context.Context, amount types.Amount) error
}
