package timelock

import (
	"testing"

	"github.com/xraph/vault/types"
)

func sequence(amounts ...uint64) []Lock {
	locks := make([]Lock, len(amounts))
	for i, a := range amounts {
		locks[i] = Lock{
			Holder:     "alice",
			Asset:      "gold",
			Amount:     types.Tokens(a),
			UnlockTime: uint64(100 * (i + 1)),
		}
	}
	return locks
}

func TestRemovalPolicyValid(t *testing.T) {
	if !SoftDelete.Valid() {
		t.Error("SoftDelete should be valid")
	}
	if !Compact.Valid() {
		t.Error("Compact should be valid")
	}
	if RemovalPolicy("purge").Valid() {
		t.Error("unknown policy should be invalid")
	}
}

func TestRemaining(t *testing.T) {
	l := Lock{Amount: types.Tokens(1), UnlockTime: 100}

	tests := []struct {
		now  uint64
		want uint64
	}{
		{0, 100},
		{40, 60},
		{99, 1},
		{100, 0},
		{500, 0},
	}
	for _, tt := range tests {
		if got := l.Remaining(tt.now); got != tt.want {
			t.Errorf("Remaining(%d) = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestRemoveSoftDelete(t *testing.T) {
	locks := sequence(10, 20, 30)

	out := Remove(locks, 1, SoftDelete)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3 (soft delete keeps slots)", len(out))
	}
	if !out[1].Withdrawn() {
		t.Error("slot 1 should be zeroed")
	}
	if out[0].Amount != types.Tokens(10) || out[2].Amount != types.Tokens(30) {
		t.Error("neighboring slots must be untouched")
	}
}

func TestRemoveCompact(t *testing.T) {
	locks := sequence(10, 20, 30)

	out := Remove(locks, 0, Compact)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	// The last element moved into the removed slot.
	if out[0].Amount != types.Tokens(30) {
		t.Errorf("slot 0 = %s, want 30 tokens", out[0].Amount)
	}
	if out[1].Amount != types.Tokens(20) {
		t.Errorf("slot 1 = %s, want 20 tokens", out[1].Amount)
	}
}

func TestRemoveCompactLastElement(t *testing.T) {
	locks := sequence(10)

	out := Remove(locks, 0, Compact)
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestActive(t *testing.T) {
	locks := sequence(10, 20, 30)
	if got := Active(locks); got != 3 {
		t.Fatalf("Active = %d, want 3", got)
	}

	locks = Remove(locks, 1, SoftDelete)
	if got := Active(locks); got != 2 {
		t.Errorf("Active after soft delete = %d, want 2", got)
	}
}
