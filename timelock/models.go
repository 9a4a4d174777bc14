// Package timelock holds the lump-sum lock model. A holder owns an ordered
// sequence of independent locks per asset, each with its own unlock time.
package timelock

import (
	"github.com/xraph/vault/id"
	"github.com/xraph/vault/types"
)

// RemovalPolicy selects how a withdrawn lock leaves its sequence.
type RemovalPolicy string

const (
	// SoftDelete zeroes the withdrawn lock in place. Indices of the remaining
	// locks are stable; withdrawn slots reject re-use.
	SoftDelete RemovalPolicy = "soft_delete"

	// Compact swaps the withdrawn lock with the last element and truncates
	// the sequence. Indices of subsequent locks are NOT stable across
	// withdrawals — callers must re-fetch the sequence before addressing
	// another lock by index.
	Compact RemovalPolicy = "compact"
)

// Valid reports whether the policy is one of the defined strategies.
func (p RemovalPolicy) Valid() bool {
	return p == SoftDelete || p == Compact
}

// Lock is one timelocked deposit. Created by a lock operation, destroyed (or
// zeroed, depending on policy) on full withdrawal.
type Lock struct {
	types.Entity
	ID     id.LockID     `json:"id"`
	Holder types.Address `json:"holder"`
	Asset  types.Address `json:"asset"`

	// Amount held by this lock. Greater than zero while active; zero marks a
	// soft-deleted slot.
	Amount types.Amount `json:"amount"`

	// UnlockTime is the instant (unix seconds) from which withdrawal is
	// allowed. Fixed at creation as creation time plus the requested duration.
	UnlockTime uint64 `json:"unlock_time"`
}

// Withdrawn reports whether this lock slot has already been emptied.
func (l *Lock) Withdrawn() bool { return l.Amount.IsZero() }

// Remaining returns how many seconds remain until the lock opens, zero once
// the unlock time has passed.
func (l *Lock) Remaining(now uint64) uint64 {
	if now >= l.UnlockTime {
		return 0
	}
	return l.UnlockTime - now
}

// Remove applies the policy to the lock at index i and returns the updated
// sequence. The index must be in range; the engine checks before calling.
func Remove(locks []Lock, i int, policy RemovalPolicy) []Lock {
	if policy == Compact {
		locks[i] = locks[len(locks)-1]
		return locks[:len(locks)-1]
	}
	locks[i].Amount = 0
	locks[i].Touch()
	return locks
}

// Active counts the locks in the sequence that still hold funds.
func Active(locks []Lock) int {
	n := 0
	for i := range locks {
		if !locks[i].Withdrawn() {
			n++
		}
	}
	return n
}
