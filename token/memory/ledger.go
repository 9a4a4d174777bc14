// Package memory provides an in-process token ledger for tests and examples.
package memory

import (
	"context"
	"sync"

	"github.com/xraph/vault/token"
	"github.com/xraph/vault/types"
)

// TransferHook observes every successful balance movement. Hooks run after the
// balances have been updated and before the transfer call returns, which lets
// tests simulate a token that calls back into the engine mid-transfer.
type TransferHook func(asset, from, to types.Address, amount types.Amount)

// Ledger is an in-memory multi-asset balance map implementing token.Registry.
// The zero Amount is indistinguishable from an absent balance.
type Ledger struct {
	mu       sync.Mutex
	vault    types.Address
	balances map[types.Address]map[types.Address]types.Amount // asset -> holder -> amount
	hook     TransferHook
}

// New creates a Ledger whose outbound transfers and burns draw from the given
// vault address.
func New(vault types.Address) *Ledger {
	return &Ledger{
		vault:    vault,
		balances: make(map[types.Address]map[types.Address]types.Amount),
	}
}

// SetTransferHook installs a hook observing every transfer. Pass nil to clear.
func (l *Ledger) SetTransferHook(h TransferHook) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hook = h
}

// Mint credits a holder with new supply of an asset.
func (l *Ledger) Mint(asset, holder types.Address, amount types.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.credit(asset, holder, amount)
}

// Balance returns the holder's balance of an asset.
func (l *Ledger) Balance(asset, holder types.Address) types.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[asset][holder]
}

// Token implements token.Registry. Every asset resolves; unseen assets simply
// have zero balances everywhere.
func (l *Ledger) Token(asset types.Address) (token.Token, error) {
	return &assetToken{ledger: l, asset: asset}, nil
}

func (l *Ledger) credit(asset, holder types.Address, amount types.Amount) {
	holders, ok := l.balances[asset]
	if !ok {
		holders = make(map[types.Address]types.Amount)
		l.balances[asset] = holders
	}
	holders[holder] += amount
}

// move debits from and credits to, returning an error when from is short.
// The hook fires outside the mutex so it can reenter the ledger.
func (l *Ledger) move(asset, from, to types.Address, amount types.Amount) error {
	l.mu.Lock()
	if l.balances[asset][from] < amount {
		l.mu.Unlock()
		return token.ErrInsufficientBalance
	}
	l.balances[asset][from] -= amount
	if to != types.ZeroAddress {
		l.credit(asset, to, amount)
	}
	hook := l.hook
	l.mu.Unlock()

	if hook != nil {
		hook(asset, from, to, amount)
	}
	return nil
}

// assetToken is the per-asset view implementing token.Token.
type assetToken struct {
	ledger *Ledger
	asset  types.Address
}

func (t *assetToken) Transfer(_ context.Context, to types.Address, amount types.Amount) error {
	return t.ledger.move(t.asset, t.ledger.vault, to, amount)
}

func (t *assetToken) TransferFrom(_ context.Context, from, to types.Address, amount types.Amount) error {
	return t.ledger.move(t.asset, from, to, amount)
}

func (t *assetToken) BalanceOf(_ context.Context, holder types.Address) (types.Amount, error) {
	return t.ledger.Balance(t.asset, holder), nil
}

func (t *assetToken) Burn(_ context.Context, amount types.Amount) error {
	// Burning moves supply to the zero address, i.e. destroys it.
	return t.ledger.move(t.asset, t.ledger.vault, types.ZeroAddress, amount)
}
